package config

// Defaults returns the built-in Configuration every load is reconciled
// against. Any top-level field absent from a source document takes the
// corresponding value from here.
func Defaults() Configuration {
	return Configuration{
		StandardMenus: []StandardMenu{
			{ID: "home", Name: "Home", Icon: "home", Enabled: true},
			{ID: "favorites", Name: "Favorites", Icon: "star", Enabled: true},
			{ID: "my-reports", Name: "My Reports", Icon: "document", Enabled: true},
			{ID: "spotter", Name: "Spotter", Icon: "sparkles", Enabled: true},
			{ID: "search", Name: "Search", Icon: "search", Enabled: true},
			{ID: "full-app", Name: "Full App", Icon: "grid", Enabled: false},
		},
		CustomMenus: []CustomMenu{},
		MenuOrder:   []string{"home", "favorites", "my-reports", "spotter", "search", "full-app"},
		HomePage: HomePageConfig{
			Type:  HomePageHTML,
			Value: "<h1>Welcome</h1>",
		},
		App: AppConfig{
			ApplicationName: "ThoughtSpot Embed",
			ShowFooter:      true,
		},
		FullApp: FullAppConfig{
			ShowPrimaryNavbar: true,
		},
		Styling: StylingConfig{
			TopBar:  RegionStyle{Background: "#ffffff", Foreground: "#1a1a2e"},
			Sidebar: RegionStyle{Background: "#f5f7fa", Foreground: "#1a1a2e"},
			Footer:  RegionStyle{Background: "#ffffff", Foreground: "#6b7280"},
			Dialogs: RegionStyle{Background: "#ffffff", Foreground: "#1a1a2e"},
			EmbeddedContent: EmbeddedContentStyle{
				Strings:      map[string]string{},
				StringIDs:    map[string]string{},
				CSSVariables: map[string]string{},
				CSSRules:     map[string]map[string]string{},
			},
		},
		Users: UserConfig{Users: []User{}},
	}
}
