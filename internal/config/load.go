package config

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/spotshell/spotshell/internal/kvstore"
	"github.com/spotshell/spotshell/internal/presets"
)

// LoadErrorKind classifies a failed load.
type LoadErrorKind string

const (
	MissingField   LoadErrorKind = "missing-field"
	InvalidShape   LoadErrorKind = "invalid-shape"
	ParseFailure   LoadErrorKind = "parse-failure"
	NetworkFailure LoadErrorKind = "network-failure"
)

// LoadError describes why a file or remote-preset load was rejected. Field
// is set for the kinds that can name one, so callers can show a specific
// message instead of a generic failure.
type LoadError struct {
	Kind  LoadErrorKind
	Field string
	Err   error
}

func (e *LoadError) Error() string {
	switch e.Kind {
	case MissingField:
		return fmt.Sprintf("configuration is missing required field %q", e.Field)
	case InvalidShape:
		return fmt.Sprintf("configuration field %q has an invalid shape: %v", e.Field, e.Err)
	case ParseFailure:
		return fmt.Sprintf("configuration document is not valid JSON: %v", e.Err)
	case NetworkFailure:
		return fmt.Sprintf("failed to fetch configuration: %v", e.Err)
	}
	return fmt.Sprintf("configuration load failed: %v", e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// LoadFromStore reads each top-level field independently from the key/value
// store. A missing or corrupt value for any individual field is non-fatal:
// that field keeps its default and the failure is logged for diagnostics.
// An empty store therefore resolves to the full default Configuration.
func LoadFromStore(kv kvstore.Store) Configuration {
	cfg := Defaults()
	if kv == nil {
		return cfg
	}
	for _, f := range fields {
		raw, ok, err := kv.Get(f.Key)
		if err != nil {
			log.Printf("config: failed to read stored field %s, using default: %v", f.Name, err)
			continue
		}
		if !ok {
			continue
		}
		if err := setField(&cfg, f.Name, json.RawMessage(raw)); err != nil {
			log.Printf("config: corrupt stored field %s, using default: %v", f.Name, err)
		}
	}
	return cfg
}

// LoadFromBytes parses one whole JSON document and merges it against the
// defaults. A parse failure or a missing required field is fatal for the
// whole load; no partial Configuration is produced. The document may be a
// bare Configuration or an export wrapper (the version/timestamp/description
// fields are ignored).
func LoadFromBytes(b []byte) (Configuration, error) {
	var doc map[string]json.RawMessage
	if err := json.Unmarshal(b, &doc); err != nil {
		return Configuration{}, &LoadError{Kind: ParseFailure, Err: err}
	}
	return mergeDocument(doc)
}

// LoadFromFile loads and merges a configuration document from disk.
func LoadFromFile(path string) (Configuration, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Configuration{}, &LoadError{Kind: ParseFailure, Err: err}
	}
	return LoadFromBytes(b)
}

// LoadPreset fetches a named preset document from the remote repository and
// merges it. Network failures are fatal: there is no safe content to merge.
func LoadPreset(ctx context.Context, client *presets.Client, name string) (Configuration, error) {
	b, err := client.FetchByName(ctx, name)
	if err != nil {
		return Configuration{}, &LoadError{Kind: NetworkFailure, Err: err}
	}
	return LoadFromBytes(b)
}

// mergeDocument reconciles a (possibly partial) source document against the
// defaults, field by field per the schema registry. Required fields are
// checked before any merge; the array-typed fields are shape-checked as they
// decode, so a non-array value is rejected with the failing field named.
func mergeDocument(doc map[string]json.RawMessage) (Configuration, error) {
	for _, f := range fields {
		if !f.Required {
			continue
		}
		if raw, ok := doc[f.Name]; !ok || isJSONNull(raw) {
			return Configuration{}, &LoadError{Kind: MissingField, Field: f.Name}
		}
	}

	cfg := Defaults()
	for _, f := range fields {
		raw, ok := doc[f.Name]
		if !ok || isJSONNull(raw) {
			continue
		}
		if err := setField(&cfg, f.Name, raw); err != nil {
			return Configuration{}, &LoadError{Kind: InvalidShape, Field: f.Name, Err: err}
		}
	}
	return cfg, nil
}

func isJSONNull(raw json.RawMessage) bool {
	return len(bytes.TrimSpace(raw)) == 0 || bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}
