// Package spotshell is the embedding shell for ThoughtSpot analytics: a
// persisted, importable/exportable application configuration plus an
// LLM-backed question classifier with a deterministic fallback.
package spotshell

import (
	"context"
	"fmt"
	"log"

	"github.com/spotshell/spotshell/internal/classify"
	"github.com/spotshell/spotshell/internal/config"
	"github.com/spotshell/spotshell/internal/kvstore"
	"github.com/spotshell/spotshell/internal/llm"
	"github.com/spotshell/spotshell/internal/presets"
)

// Engine is the public API. It wraps the key/value store, the preset
// repository client, and the question classifier, and holds the current
// in-memory Configuration.
//
// The engine performs no internal locking: configuration mutations are
// expected to be user-triggered and single-flight, and concurrent writers
// get last-writer-wins semantics.
type Engine struct {
	kv         kvstore.Store
	presets    *presets.Client
	classifier *classify.Classifier
	current    Configuration
}

// NewEngine opens the configuration store and resolves the current
// Configuration from it (or defaults when empty). A missing or broken
// classification backend does not fail engine creation; classification
// degrades to the keyword heuristic.
func NewEngine(cfg EngineConfig) (*Engine, error) {
	var kv kvstore.Store
	if cfg.DBPath != "" {
		store, err := kvstore.NewSQLiteStore(cfg.DBPath)
		if err != nil {
			return nil, fmt.Errorf("open database: %w", err)
		}
		kv = store
	} else {
		kv = kvstore.NewMemoryStore()
	}

	lcfg := cfg.LLM
	if lcfg == nil {
		lcfg = llm.DefaultConfig()
	}
	backend, err := llm.NewBackend(lcfg)
	if err != nil {
		log.Printf("spotshell: classification backend unavailable: %v", err)
		backend = llm.Unavailable(err)
	}

	e := &Engine{
		kv:         kv,
		classifier: classify.New(backend),
		current:    config.LoadFromStore(kv),
	}
	if cfg.PresetsURL != "" {
		e.presets = presets.NewClient(cfg.PresetsURL)
	}
	return e, nil
}

// Close releases the underlying store.
func (e *Engine) Close() error { return e.kv.Close() }

// Current returns the in-memory Configuration.
func (e *Engine) Current() Configuration { return e.current }

// Reload re-resolves the Configuration from the store, discarding unsaved
// in-memory changes.
func (e *Engine) Reload() Configuration {
	e.current = config.LoadFromStore(e.kv)
	return e.current
}

// ImportBytes loads a whole configuration document, replaces the in-memory
// Configuration, and persists it. The load is all-or-nothing; persistence is
// best-effort per field.
func (e *Engine) ImportBytes(b []byte) (SaveReport, error) {
	cfg, err := config.LoadFromBytes(b)
	if err != nil {
		return SaveReport{}, err
	}
	e.current = cfg
	return config.SaveToStore(cfg, e.kv), nil
}

// ImportFile loads a configuration document from disk.
func (e *Engine) ImportFile(path string) (SaveReport, error) {
	cfg, err := config.LoadFromFile(path)
	if err != nil {
		return SaveReport{}, err
	}
	e.current = cfg
	return config.SaveToStore(cfg, e.kv), nil
}

// LoadPreset fetches a named preset from the remote repository, replaces the
// in-memory Configuration, and persists it.
func (e *Engine) LoadPreset(ctx context.Context, name string) (SaveReport, error) {
	if e.presets == nil {
		return SaveReport{}, fmt.Errorf("no preset repository configured")
	}
	cfg, err := config.LoadPreset(ctx, e.presets, name)
	if err != nil {
		return SaveReport{}, err
	}
	e.current = cfg
	return config.SaveToStore(cfg, e.kv), nil
}

// ListPresets enumerates the remote repository's preset files.
func (e *Engine) ListPresets(ctx context.Context) ([]PresetFile, error) {
	if e.presets == nil {
		return nil, fmt.Errorf("no preset repository configured")
	}
	return e.presets.List(ctx)
}

// Export serializes the current Configuration to an export document.
func (e *Engine) Export(name string) (string, []byte, error) {
	return config.Export(e.current, name)
}

// Save persists every field of the current Configuration, best-effort.
func (e *Engine) Save() SaveReport {
	return config.SaveToStore(e.current, e.kv)
}

// Apply pushes the current Configuration into the supplied sinks.
func (e *Engine) Apply(sinks UpdateSinks) ApplyReport {
	return config.Apply(e.current, sinks)
}

// StorageHealth reports configuration storage usage against the quota.
func (e *Engine) StorageHealth() StorageHealth {
	return config.CheckStorageHealth(e.kv)
}

// ClearAll removes every persisted field and resets the in-memory
// Configuration to defaults.
func (e *Engine) ClearAll() error {
	if err := config.ClearAll(e.kv); err != nil {
		return err
	}
	e.current = config.Defaults()
	return nil
}

// Classify decides whether a question routes to structured data. It never
// fails; backend errors degrade to the keyword heuristic.
func (e *Engine) Classify(ctx context.Context, question string, models []ModelDescriptor) QuestionClassification {
	return e.classifier.Classify(ctx, question, models)
}

// Field-group setters. Each mutates one area of the in-memory Configuration
// and persists the whole Configuration best-effort; load/import remain the
// only atomic replacements.

func (e *Engine) SetAppConfig(app AppConfig) SaveReport {
	e.current.App = app
	return e.Save()
}

func (e *Engine) SetStylingConfig(s StylingConfig) SaveReport {
	e.current.Styling = s
	return e.Save()
}

func (e *Engine) SetHomePage(h HomePageConfig) SaveReport {
	e.current.HomePage = h
	return e.Save()
}

func (e *Engine) SetFullAppConfig(f FullAppConfig) SaveReport {
	e.current.FullApp = f
	return e.Save()
}

func (e *Engine) SetStandardMenus(menus []StandardMenu) SaveReport {
	e.current.StandardMenus = menus
	return e.Save()
}

func (e *Engine) SetCustomMenus(menus []CustomMenu) SaveReport {
	e.current.CustomMenus = menus
	return e.Save()
}

// SetMenuOrder filters unknown ids before storing the order.
func (e *Engine) SetMenuOrder(order []string) SaveReport {
	e.current.MenuOrder = config.FilterMenuOrder(order, e.current.StandardMenus, e.current.CustomMenus)
	return e.Save()
}

// AddUser appends a user; the first user added becomes current.
func (e *Engine) AddUser(u User) (SaveReport, error) {
	if err := config.AddUser(&e.current, u); err != nil {
		return SaveReport{}, err
	}
	return e.Save(), nil
}

// DeleteUser removes a user. Deleting the last user is rejected; deleting
// the current user reassigns the pointer to the first remaining user.
func (e *Engine) DeleteUser(id string) (SaveReport, error) {
	if err := config.DeleteUser(&e.current, id); err != nil {
		return SaveReport{}, err
	}
	return e.Save(), nil
}

// SetCurrentUser points the current-user id at an existing user.
func (e *Engine) SetCurrentUser(id string) (SaveReport, error) {
	if err := config.SetCurrentUser(&e.current, id); err != nil {
		return SaveReport{}, err
	}
	return e.Save(), nil
}
