// Package config owns the canonical shape of a shell Configuration and its
// load/merge/validate/apply/export lifecycle across three source kinds:
// the persistent key/value store, an uploaded JSON document, and a remote
// named preset.
package config

// Configuration is the full persisted settings object. Each top-level field
// is independently loadable and saveable under its own storage key.
type Configuration struct {
	StandardMenus []StandardMenu `json:"standardMenus"`
	CustomMenus   []CustomMenu   `json:"customMenus"`
	MenuOrder     []string       `json:"menuOrder"`
	HomePage      HomePageConfig `json:"homePageConfig"`
	App           AppConfig      `json:"appConfig"`
	FullApp       FullAppConfig  `json:"fullAppConfig"`
	Styling       StylingConfig  `json:"stylingConfig"`
	Users         UserConfig     `json:"userConfig"`
}

// StandardMenu is one of the fixed built-in navigation entries (home,
// favorites, my-reports, spotter, search, full-app). The content descriptor
// fields are menu-specific and may be empty for menus that do not use them.
type StandardMenu struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Icon         string `json:"icon"`
	Enabled      bool   `json:"enabled"`
	ContentType  string `json:"contentType,omitempty"`
	ContentValue string `json:"contentValue,omitempty"`
	ModelID      string `json:"modelId,omitempty"`
	SearchQuery  string `json:"searchQuery,omitempty"`
}

// CustomMenu is a user-defined navigation entry pointing at specific content
// items or a tag filter.
type CustomMenu struct {
	ID               string           `json:"id"`
	Name             string           `json:"name"`
	Icon             string           `json:"icon"`
	Enabled          bool             `json:"enabled"`
	ContentSelection ContentSelection `json:"contentSelection"`
}

// Content selection variants for a custom menu.
const (
	SelectionSpecific = "specific" // explicit list of content-item ids
	SelectionTag      = "tag"      // dynamic tag filter
)

type ContentSelection struct {
	Type    string   `json:"type"`
	ItemIDs []string `json:"itemIds,omitempty"`
	Tags    []string `json:"tags,omitempty"`
}

// Home page variants. Value's meaning depends on the type tag: an image URL,
// raw HTML, an iframe URL, a liveboard id, an answer id, or a spotter model id.
const (
	HomePageImage        = "image"
	HomePageHTML         = "html"
	HomePageIframe       = "iframe"
	HomePageLiveboard    = "liveboard"
	HomePageAnswer       = "answer"
	HomePageSpotterModel = "spotter-model"
)

type HomePageConfig struct {
	Type  string `json:"type"`
	Value string `json:"value"`
}

// AppConfig holds scalar application settings.
type AppConfig struct {
	ThoughtSpotURL   string `json:"thoughtspotUrl"`
	ApplicationName  string `json:"applicationName"`
	Logo             string `json:"logo"`
	Favicon          string `json:"favicon"`
	EarlyAccessFlags string `json:"earlyAccessFlags"`
	ShowFooter       bool   `json:"showFooter"`
}

// FullAppConfig holds the display toggles for the full-app embed mode.
type FullAppConfig struct {
	ShowPrimaryNavbar   bool `json:"showPrimaryNavbar"`
	HideHomepageLeftNav bool `json:"hideHomepageLeftNav"`
}

// StylingConfig is the nested styling record: per-region colors and logos,
// embedded-content customization, optional per-embed-type flag bags, and the
// optional double-click-event handling config.
type StylingConfig struct {
	TopBar          RegionStyle               `json:"topBar"`
	Sidebar         RegionStyle               `json:"sidebar"`
	Footer          RegionStyle               `json:"footer"`
	Dialogs         RegionStyle               `json:"dialogs"`
	EmbeddedContent EmbeddedContentStyle      `json:"embeddedContent"`
	EmbedFlags      map[string]map[string]any `json:"embedFlags,omitempty"`
	DoubleClick     *DoubleClickConfig        `json:"doubleClickHandling,omitempty"`
}

type RegionStyle struct {
	Background string `json:"background"`
	Foreground string `json:"foreground"`
	Logo       string `json:"logo,omitempty"`
}

// EmbeddedContentStyle customizes the embedded analytics content itself.
type EmbeddedContentStyle struct {
	Strings      map[string]string            `json:"strings"`
	StringIDs    map[string]string            `json:"stringIDs"`
	CSSURL       string                       `json:"cssUrl"`
	CSSVariables map[string]string            `json:"cssVariables"`
	CSSRules     map[string]map[string]string `json:"cssRules_UNSTABLE"`
}

type DoubleClickConfig struct {
	Enabled          bool   `json:"enabled"`
	ShowDefaultModal bool   `json:"showDefaultModal"`
	CustomScript     string `json:"customJavascript,omitempty"`
	ModalTitle       string `json:"modalTitle,omitempty"`
}

// UserConfig holds the user-access rules and the current-user pointer.
type UserConfig struct {
	Users         []User `json:"users"`
	CurrentUserID string `json:"currentUserId,omitempty"`
}

type User struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description,omitempty"`
	Locale      string     `json:"locale,omitempty"`
	Access      UserAccess `json:"access"`
}

// UserAccess controls which menus a user sees and which embed actions are
// suppressed for them.
type UserAccess struct {
	StandardMenus map[string]bool     `json:"standardMenus"`
	CustomMenus   []string            `json:"customMenus"`
	HiddenActions HiddenActionsConfig `json:"hiddenActions"`
}

type HiddenActionsConfig struct {
	Enabled bool     `json:"enabled"`
	Actions []string `json:"actions,omitempty"`
}
