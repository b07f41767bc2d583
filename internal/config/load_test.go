package config

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/spotshell/spotshell/internal/kvstore"
	"github.com/spotshell/spotshell/internal/presets"
)

// minimalDocument carries exactly the five required fields.
const minimalDocument = `{
	"standardMenus": [{"id": "home", "name": "Start", "icon": "home", "enabled": true}],
	"homePageConfig": {"type": "html", "value": "<p>hi</p>"},
	"appConfig": {"thoughtspotUrl": "https://ts.example.com", "applicationName": "Acme"},
	"fullAppConfig": {"showPrimaryNavbar": false},
	"stylingConfig": {"topBar": {"background": "#000000"}}
}`

func TestLoadFromBytesDefaultsOptionalFields(t *testing.T) {
	cfg, err := LoadFromBytes([]byte(minimalDocument))
	if err != nil {
		t.Fatalf("LoadFromBytes: %v", err)
	}

	if cfg.App.ApplicationName != "Acme" {
		t.Errorf("ApplicationName = %q, want Acme", cfg.App.ApplicationName)
	}
	if len(cfg.Users.Users) != 0 || cfg.Users.CurrentUserID != "" {
		t.Errorf("userConfig should default to empty, got %+v", cfg.Users)
	}
	def := Defaults()
	if len(cfg.MenuOrder) != len(def.MenuOrder) {
		t.Errorf("menuOrder should default, got %v", cfg.MenuOrder)
	}
}

func TestLoadFromBytesRejectsMissingRequiredField(t *testing.T) {
	doc := `{
		"standardMenus": [],
		"homePageConfig": {"type": "html", "value": ""},
		"fullAppConfig": {},
		"stylingConfig": {}
	}`
	_, err := LoadFromBytes([]byte(doc))

	var le *LoadError
	if !errors.As(err, &le) {
		t.Fatalf("want *LoadError, got %v", err)
	}
	if le.Kind != MissingField || le.Field != "appConfig" {
		t.Errorf("got kind=%s field=%s, want missing-field appConfig", le.Kind, le.Field)
	}
}

func TestLoadFromBytesTreatsNullAsMissing(t *testing.T) {
	doc := `{
		"standardMenus": null,
		"homePageConfig": {"type": "html", "value": ""},
		"appConfig": {},
		"fullAppConfig": {},
		"stylingConfig": {}
	}`
	_, err := LoadFromBytes([]byte(doc))

	var le *LoadError
	if !errors.As(err, &le) || le.Kind != MissingField || le.Field != "standardMenus" {
		t.Errorf("null required field should load-fail as missing, got %v", err)
	}
}

func TestLoadFromBytesRejectsWrongShape(t *testing.T) {
	doc := `{
		"standardMenus": {"not": "an array"},
		"homePageConfig": {"type": "html", "value": ""},
		"appConfig": {},
		"fullAppConfig": {},
		"stylingConfig": {}
	}`
	_, err := LoadFromBytes([]byte(doc))

	var le *LoadError
	if !errors.As(err, &le) {
		t.Fatalf("want *LoadError, got %v", err)
	}
	if le.Kind != InvalidShape || le.Field != "standardMenus" {
		t.Errorf("got kind=%s field=%s, want invalid-shape standardMenus", le.Kind, le.Field)
	}
}

func TestLoadFromBytesRejectsGarbage(t *testing.T) {
	_, err := LoadFromBytes([]byte("not json at all"))

	var le *LoadError
	if !errors.As(err, &le) || le.Kind != ParseFailure {
		t.Errorf("want parse-failure, got %v", err)
	}
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte(minimalDocument), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFromFile(path)
	if err != nil {
		t.Fatalf("LoadFromFile: %v", err)
	}
	if cfg.StandardMenus[0].Name != "Start" {
		t.Errorf("standardMenus not merged, got %+v", cfg.StandardMenus[0])
	}
}

func TestLoadFromStoreEmptyStoreYieldsDefaults(t *testing.T) {
	cfg := LoadFromStore(kvstore.NewMemoryStore())

	def := Defaults()
	if len(cfg.StandardMenus) != len(def.StandardMenus) {
		t.Errorf("got %d standard menus, want %d", len(cfg.StandardMenus), len(def.StandardMenus))
	}
	if cfg.HomePage.Type != def.HomePage.Type {
		t.Errorf("home page type = %q, want %q", cfg.HomePage.Type, def.HomePage.Type)
	}
}

func TestLoadFromStoreCorruptFieldKeepsDefault(t *testing.T) {
	kv := kvstore.NewMemoryStore()
	kv.Set(keyPrefix+"appConfig", `{"applicationName": "Stored"}`)
	kv.Set(keyPrefix+"menuOrder", `this is not json`)

	cfg := LoadFromStore(kv)
	if cfg.App.ApplicationName != "Stored" {
		t.Errorf("intact field should load, got %q", cfg.App.ApplicationName)
	}
	if len(cfg.MenuOrder) != len(Defaults().MenuOrder) {
		t.Errorf("corrupt field should keep default, got %v", cfg.MenuOrder)
	}
}

func TestSaveThenLoadRoundTrip(t *testing.T) {
	kv := kvstore.NewMemoryStore()

	want := Defaults()
	want.App.ApplicationName = "Round Trip"
	want.MenuOrder = []string{"search", "home"}
	want.Users.Users = []User{{ID: "u1", Name: "Pat"}}
	want.Users.CurrentUserID = "u1"

	if rep := SaveToStore(want, kv); !rep.OK() {
		t.Fatalf("SaveToStore failed: %+v", rep.Failed)
	}

	got := LoadFromStore(kv)
	if got.App.ApplicationName != "Round Trip" {
		t.Errorf("ApplicationName = %q", got.App.ApplicationName)
	}
	if len(got.MenuOrder) != 2 || got.MenuOrder[0] != "search" {
		t.Errorf("MenuOrder = %v", got.MenuOrder)
	}
	if got.Users.CurrentUserID != "u1" {
		t.Errorf("CurrentUserID = %q", got.Users.CurrentUserID)
	}
}

func TestLoadPreset(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/index.json", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"name": "retail.json", "downloadUrl": "/files/retail.json"}]`))
	})
	mux.HandleFunc("/files/retail.json", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(minimalDocument))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	cfg, err := LoadPreset(context.Background(), presets.NewClient(srv.URL), "retail.json")
	if err != nil {
		t.Fatalf("LoadPreset: %v", err)
	}
	if cfg.App.ApplicationName != "Acme" {
		t.Errorf("preset not merged, ApplicationName = %q", cfg.App.ApplicationName)
	}
}

func TestLoadPresetNetworkFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close() // refuse connections

	_, err := LoadPreset(context.Background(), presets.NewClient(srv.URL), "retail.json")

	var le *LoadError
	if !errors.As(err, &le) || le.Kind != NetworkFailure {
		t.Errorf("want network-failure, got %v", err)
	}
}
