package config

import (
	"fmt"
	"log"

	"github.com/microcosm-cc/bluemonday"
)

// htmlPolicy sanitizes user-supplied HTML home-page content before it is
// pushed to any sink.
var htmlPolicy = bluemonday.UGCPolicy()

// UpdateSinks is the bag of caller-supplied setters Apply pushes into, one
// per configuration sub-area. ClearCustomMenus and SetMenuOrder are
// optional; every other sink is invoked when non-nil.
type UpdateSinks struct {
	SetAppConfig         func(AppConfig) error
	SetStylingConfig     func(StylingConfig) error
	SetStandardMenuField func(menuID, field string, value any) error
	ClearCustomMenus     func() error
	AddCustomMenu        func(CustomMenu) error
	SetMenuOrder         func([]string) error
	SetHomePage          func(HomePageConfig) error
	SetFullAppConfig     func(FullAppConfig) error
	SetUserConfig        func(UserConfig) error
}

// ApplyReport records per-area apply outcomes. Apply is best-effort, not
// transactional: a failure in one area is recorded and the rest still run.
type ApplyReport struct {
	Applied []string       `json:"applied"`
	Failed  []FieldFailure `json:"failed,omitempty"`
}

func (r ApplyReport) OK() bool { return len(r.Failed) == 0 }

func (r *ApplyReport) step(field string, fn func() error) {
	if err := fn(); err != nil {
		log.Printf("config: apply %s failed: %v", field, err)
		r.Failed = append(r.Failed, FieldFailure{Field: field, Detail: err.Error()})
		return
	}
	r.Applied = append(r.Applied, field)
}

// Apply pushes cfg into the supplied sinks. The order is significant for
// derived state: app config first, then normalized styling, then standard
// menu fields, then the home-icon sync, then custom menus (cleared first so
// repeated imports do not accumulate duplicates), then the filtered menu
// order, and finally home page, full-app, and user config.
func Apply(cfg Configuration, sinks UpdateSinks) ApplyReport {
	var rep ApplyReport

	if sinks.SetAppConfig != nil {
		rep.step("appConfig", func() error { return sinks.SetAppConfig(cfg.App) })
	}

	styling := normalizeStyling(cfg.Styling)
	if sinks.SetStylingConfig != nil {
		rep.step("stylingConfig", func() error { return sinks.SetStylingConfig(styling) })
	}

	if sinks.SetStandardMenuField != nil {
		rep.step("standardMenus", func() error {
			var firstErr error
			for _, m := range cfg.StandardMenus {
				if err := applyStandardMenu(m, sinks.SetStandardMenuField); err != nil && firstErr == nil {
					firstErr = fmt.Errorf("menu %s: %w", m.ID, err)
				}
			}
			return firstErr
		})
	}

	// Keep the favicon, app logo, and top-bar logo in sync with a customized
	// home menu icon.
	if home := findStandardMenu(cfg.StandardMenus, "home"); home != nil && home.Icon != "" {
		if home.Icon != cfg.App.Favicon || home.Icon != styling.TopBar.Logo {
			if sinks.SetAppConfig != nil {
				app := cfg.App
				app.Favicon = home.Icon
				app.Logo = home.Icon
				rep.step("appConfig.homeIcon", func() error { return sinks.SetAppConfig(app) })
			}
			if sinks.SetStylingConfig != nil {
				st := styling
				st.TopBar.Logo = home.Icon
				rep.step("stylingConfig.topBarLogo", func() error { return sinks.SetStylingConfig(st) })
			}
		}
	}

	if sinks.AddCustomMenu != nil {
		if sinks.ClearCustomMenus != nil {
			rep.step("customMenus.clear", func() error { return sinks.ClearCustomMenus() })
		}
		rep.step("customMenus", func() error {
			var firstErr error
			for _, m := range cfg.CustomMenus {
				if err := sinks.AddCustomMenu(m); err != nil {
					log.Printf("config: failed to add custom menu %s: %v", m.ID, err)
					if firstErr == nil {
						firstErr = fmt.Errorf("menu %s: %w", m.ID, err)
					}
				}
			}
			return firstErr
		})
	}

	if sinks.SetMenuOrder != nil {
		order := FilterMenuOrder(cfg.MenuOrder, cfg.StandardMenus, cfg.CustomMenus)
		rep.step("menuOrder", func() error { return sinks.SetMenuOrder(order) })
	}

	if sinks.SetHomePage != nil {
		home := cfg.HomePage
		if home.Type == HomePageHTML {
			home.Value = htmlPolicy.Sanitize(home.Value)
		}
		rep.step("homePageConfig", func() error { return sinks.SetHomePage(home) })
	}

	if sinks.SetFullAppConfig != nil {
		rep.step("fullAppConfig", func() error { return sinks.SetFullAppConfig(cfg.FullApp) })
	}

	if sinks.SetUserConfig != nil {
		users := filterUserAccess(cfg.Users, cfg.CustomMenus)
		rep.step("userConfig", func() error { return sinks.SetUserConfig(users) })
	}

	return rep
}

// applyStandardMenu pushes one menu's fields through the per-field setter.
// Menu-type-specific fields are only pushed when present.
func applyStandardMenu(m StandardMenu, set func(menuID, field string, value any) error) error {
	if err := set(m.ID, "name", m.Name); err != nil {
		return err
	}
	if err := set(m.ID, "enabled", m.Enabled); err != nil {
		return err
	}
	if err := set(m.ID, "icon", m.Icon); err != nil {
		return err
	}
	optional := map[string]string{
		"contentType":  m.ContentType,
		"contentValue": m.ContentValue,
		"modelId":      m.ModelID,
		"searchQuery":  m.SearchQuery,
	}
	for field, value := range optional {
		if value == "" {
			continue
		}
		if err := set(m.ID, field, value); err != nil {
			return err
		}
	}
	return nil
}

// FilterMenuOrder drops ids that match no standard or custom menu. Unknown
// ids are void, never an error.
func FilterMenuOrder(order []string, std []StandardMenu, custom []CustomMenu) []string {
	known := make(map[string]bool, len(std)+len(custom))
	for _, m := range std {
		known[m.ID] = true
	}
	for _, m := range custom {
		known[m.ID] = true
	}
	filtered := make([]string, 0, len(order))
	for _, id := range order {
		if known[id] {
			filtered = append(filtered, id)
		}
	}
	return filtered
}

// filterUserAccess drops custom-menu grants that reference no existing menu.
func filterUserAccess(uc UserConfig, custom []CustomMenu) UserConfig {
	known := make(map[string]bool, len(custom))
	for _, m := range custom {
		known[m.ID] = true
	}
	out := uc
	out.Users = make([]User, len(uc.Users))
	for i, u := range uc.Users {
		out.Users[i] = u
		var kept []string
		for _, id := range u.Access.CustomMenus {
			if known[id] {
				kept = append(kept, id)
			}
		}
		out.Users[i].Access.CustomMenus = kept
	}
	return out
}

// normalizeStyling fills the nested embeddedContent sub-fields that older
// documents omit, so sinks never see nil maps.
func normalizeStyling(s StylingConfig) StylingConfig {
	if s.EmbeddedContent.Strings == nil {
		s.EmbeddedContent.Strings = map[string]string{}
	}
	if s.EmbeddedContent.StringIDs == nil {
		s.EmbeddedContent.StringIDs = map[string]string{}
	}
	if s.EmbeddedContent.CSSVariables == nil {
		s.EmbeddedContent.CSSVariables = map[string]string{}
	}
	if s.EmbeddedContent.CSSRules == nil {
		s.EmbeddedContent.CSSRules = map[string]map[string]string{}
	}
	return s
}

func findStandardMenu(menus []StandardMenu, id string) *StandardMenu {
	for i := range menus {
		if menus[i].ID == id {
			return &menus[i]
		}
	}
	return nil
}
