package spotshell

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spotshell/spotshell/internal/llm"
)

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	engine, err := NewEngine(EngineConfig{DBPath: dbPath})
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	t.Cleanup(func() { engine.Close() })
	return engine
}

const testDocument = `{
	"standardMenus": [{"id": "home", "name": "Start", "icon": "home", "enabled": true}],
	"homePageConfig": {"type": "html", "value": "<p>hi</p>"},
	"appConfig": {"applicationName": "Imported"},
	"fullAppConfig": {},
	"stylingConfig": {}
}`

func TestNewEngineStartsFromDefaults(t *testing.T) {
	engine := newTestEngine(t)

	cur := engine.Current()
	if len(cur.StandardMenus) != 6 {
		t.Errorf("got %d standard menus, want 6", len(cur.StandardMenus))
	}
	if cur.App.ApplicationName == "" {
		t.Error("application name should default")
	}
}

func TestEnginePersistsAcrossReopen(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	engine, err := NewEngine(EngineConfig{DBPath: dbPath})
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	app := engine.Current().App
	app.ApplicationName = "Persisted"
	if rep := engine.SetAppConfig(app); !rep.OK() {
		t.Fatalf("SetAppConfig: %+v", rep.Failed)
	}
	engine.Close()

	engine, err = NewEngine(EngineConfig{DBPath: dbPath})
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer engine.Close()
	if got := engine.Current().App.ApplicationName; got != "Persisted" {
		t.Errorf("ApplicationName = %q after reopen", got)
	}
}

func TestEngineImportBytes(t *testing.T) {
	engine := newTestEngine(t)

	rep, err := engine.ImportBytes([]byte(testDocument))
	if err != nil {
		t.Fatalf("ImportBytes: %v", err)
	}
	if !rep.OK() {
		t.Fatalf("save failures: %+v", rep.Failed)
	}
	if engine.Current().App.ApplicationName != "Imported" {
		t.Errorf("ApplicationName = %q", engine.Current().App.ApplicationName)
	}
}

func TestEngineImportRejectsBadDocument(t *testing.T) {
	engine := newTestEngine(t)
	before := engine.Current()

	if _, err := engine.ImportBytes([]byte(`{"standardMenus": []}`)); err == nil {
		t.Fatal("missing required fields should fail the import")
	}
	if engine.Current().App.ApplicationName != before.App.ApplicationName {
		t.Error("failed import must leave the current configuration untouched")
	}
}

func TestEngineImportFile(t *testing.T) {
	engine := newTestEngine(t)

	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte(testDocument), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := engine.ImportFile(path); err != nil {
		t.Fatalf("ImportFile: %v", err)
	}
	if engine.Current().StandardMenus[0].Name != "Start" {
		t.Errorf("standardMenus not imported: %+v", engine.Current().StandardMenus[0])
	}
}

func TestEngineExportImportRoundTrip(t *testing.T) {
	engine := newTestEngine(t)

	app := engine.Current().App
	app.ApplicationName = "Round Trip"
	engine.SetAppConfig(app)

	name, data, err := engine.Export("backup")
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	if name != "backup.json" {
		t.Errorf("filename = %q", name)
	}

	engine.SetAppConfig(AppConfig{ApplicationName: "Changed"})
	if _, err := engine.ImportBytes(data); err != nil {
		t.Fatalf("re-import: %v", err)
	}
	if got := engine.Current().App.ApplicationName; got != "Round Trip" {
		t.Errorf("ApplicationName = %q after round trip", got)
	}
}

func TestEnginePresets(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/index.json", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"name": "retail.json", "downloadUrl": "/files/retail.json"}]`))
	})
	mux.HandleFunc("/files/retail.json", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(testDocument))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	engine, err := NewEngine(EngineConfig{
		DBPath:     filepath.Join(t.TempDir(), "test.db"),
		PresetsURL: srv.URL,
	})
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	defer engine.Close()

	files, err := engine.ListPresets(context.Background())
	if err != nil {
		t.Fatalf("ListPresets: %v", err)
	}
	if len(files) != 1 || files[0].Name != "retail.json" {
		t.Errorf("files = %+v", files)
	}

	if _, err := engine.LoadPreset(context.Background(), "retail.json"); err != nil {
		t.Fatalf("LoadPreset: %v", err)
	}
	if engine.Current().App.ApplicationName != "Imported" {
		t.Errorf("preset not applied: %q", engine.Current().App.ApplicationName)
	}
}

func TestEngineNoPresetRepository(t *testing.T) {
	engine := newTestEngine(t)
	if _, err := engine.ListPresets(context.Background()); err == nil {
		t.Error("ListPresets without a repository should fail")
	}
	if _, err := engine.LoadPreset(context.Background(), "x.json"); err == nil {
		t.Error("LoadPreset without a repository should fail")
	}
}

func TestEngineClearAll(t *testing.T) {
	engine := newTestEngine(t)

	engine.SetAppConfig(AppConfig{ApplicationName: "Doomed"})
	if err := engine.ClearAll(); err != nil {
		t.Fatalf("ClearAll: %v", err)
	}
	if engine.Current().App.ApplicationName == "Doomed" {
		t.Error("ClearAll should reset the in-memory configuration")
	}
	if h := engine.StorageHealth(); h.CurrentSize != 0 {
		t.Errorf("storage not empty after clear: %+v", h)
	}
}

func TestEngineStorageHealth(t *testing.T) {
	engine := newTestEngine(t)
	engine.Save()

	h := engine.StorageHealth()
	if !h.Available || !h.Healthy {
		t.Errorf("health = %+v", h)
	}
}

func TestEngineMenuOrderFiltering(t *testing.T) {
	engine := newTestEngine(t)

	engine.SetMenuOrder([]string{"home", "ghost-id", "favorites"})
	got := engine.Current().MenuOrder
	if len(got) != 2 || got[0] != "home" || got[1] != "favorites" {
		t.Errorf("MenuOrder = %v", got)
	}
}

func TestEngineUserLifecycle(t *testing.T) {
	engine := newTestEngine(t)

	if _, err := engine.AddUser(User{ID: "u1", Name: "Pat"}); err != nil {
		t.Fatalf("AddUser: %v", err)
	}
	if _, err := engine.AddUser(User{ID: "u2", Name: "Sam"}); err != nil {
		t.Fatalf("AddUser: %v", err)
	}
	if engine.Current().Users.CurrentUserID != "u1" {
		t.Errorf("first user should be current")
	}

	if _, err := engine.DeleteUser("u1"); err != nil {
		t.Fatalf("DeleteUser: %v", err)
	}
	if engine.Current().Users.CurrentUserID != "u2" {
		t.Errorf("current user not reassigned: %q", engine.Current().Users.CurrentUserID)
	}

	if _, err := engine.DeleteUser("u2"); err == nil {
		t.Error("deleting the last user should be rejected")
	}
}

func TestEngineClassifyWithoutBackend(t *testing.T) {
	// No backend selected: classification must still resolve via the
	// keyword heuristic.
	engine, err := NewEngine(EngineConfig{
		DBPath: filepath.Join(t.TempDir(), "test.db"),
		LLM:    &llm.Config{},
	})
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	defer engine.Close()

	got := engine.Classify(context.Background(), "How many customers do we have?", []ModelDescriptor{{ID: "m-1", Name: "Sales"}})
	if !got.IsDataQuestion {
		t.Error("heuristic should flag a count question as a data question")
	}
	if !strings.Contains(got.Reasoning, "heuristic") {
		t.Errorf("Reasoning = %q, want heuristic marker", got.Reasoning)
	}
	if got.SuggestedModel != "m-1" {
		t.Errorf("SuggestedModel = %q", got.SuggestedModel)
	}
}
