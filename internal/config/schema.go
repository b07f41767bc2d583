package config

import "encoding/json"

// fieldSpec describes one top-level Configuration field. The registry drives
// both required-field validation and field-by-field defaulting, so the two
// can never drift apart.
type fieldSpec struct {
	Name     string // top-level JSON field name
	Key      string // key/value store key
	Required bool   // absent from a file/remote document => whole load fails
}

const keyPrefix = "spotshell."

var fields = []fieldSpec{
	{Name: "standardMenus", Key: keyPrefix + "standardMenus", Required: true},
	{Name: "customMenus", Key: keyPrefix + "customMenus"},
	{Name: "menuOrder", Key: keyPrefix + "menuOrder"},
	{Name: "homePageConfig", Key: keyPrefix + "homePageConfig", Required: true},
	{Name: "appConfig", Key: keyPrefix + "appConfig", Required: true},
	{Name: "fullAppConfig", Key: keyPrefix + "fullAppConfig", Required: true},
	{Name: "stylingConfig", Key: keyPrefix + "stylingConfig", Required: true},
	{Name: "userConfig", Key: keyPrefix + "userConfig"},
}

// setField decodes raw into the named field of cfg. The decode goes through
// a temporary so a failed decode leaves cfg untouched.
func setField(cfg *Configuration, name string, raw json.RawMessage) error {
	switch name {
	case "standardMenus":
		tmp := cfg.StandardMenus
		if err := json.Unmarshal(raw, &tmp); err != nil {
			return err
		}
		cfg.StandardMenus = tmp
	case "customMenus":
		tmp := cfg.CustomMenus
		if err := json.Unmarshal(raw, &tmp); err != nil {
			return err
		}
		cfg.CustomMenus = tmp
	case "menuOrder":
		tmp := cfg.MenuOrder
		if err := json.Unmarshal(raw, &tmp); err != nil {
			return err
		}
		cfg.MenuOrder = tmp
	case "homePageConfig":
		tmp := cfg.HomePage
		if err := json.Unmarshal(raw, &tmp); err != nil {
			return err
		}
		cfg.HomePage = tmp
	case "appConfig":
		tmp := cfg.App
		if err := json.Unmarshal(raw, &tmp); err != nil {
			return err
		}
		cfg.App = tmp
	case "fullAppConfig":
		tmp := cfg.FullApp
		if err := json.Unmarshal(raw, &tmp); err != nil {
			return err
		}
		cfg.FullApp = tmp
	case "stylingConfig":
		tmp := cfg.Styling
		if err := json.Unmarshal(raw, &tmp); err != nil {
			return err
		}
		cfg.Styling = tmp
	case "userConfig":
		tmp := cfg.Users
		if err := json.Unmarshal(raw, &tmp); err != nil {
			return err
		}
		cfg.Users = tmp
	}
	return nil
}

// fieldJSON encodes the named field of cfg.
func fieldJSON(cfg *Configuration, name string) ([]byte, error) {
	switch name {
	case "standardMenus":
		return json.Marshal(cfg.StandardMenus)
	case "customMenus":
		return json.Marshal(cfg.CustomMenus)
	case "menuOrder":
		return json.Marshal(cfg.MenuOrder)
	case "homePageConfig":
		return json.Marshal(cfg.HomePage)
	case "appConfig":
		return json.Marshal(cfg.App)
	case "fullAppConfig":
		return json.Marshal(cfg.FullApp)
	case "stylingConfig":
		return json.Marshal(cfg.Styling)
	case "userConfig":
		return json.Marshal(cfg.Users)
	}
	return nil, nil
}
