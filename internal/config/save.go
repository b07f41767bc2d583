package config

import (
	"fmt"
	"log"

	"github.com/spotshell/spotshell/internal/kvstore"
)

// FieldFailure names a top-level field whose write or apply step failed.
type FieldFailure struct {
	Field  string `json:"field"`
	Detail string `json:"detail"`
}

// SaveReport lists which fields persisted and which did not. Saving is
// best-effort, not transactional: one field's failure never rolls back or
// blocks the others.
type SaveReport struct {
	Saved  []string       `json:"saved"`
	Failed []FieldFailure `json:"failed,omitempty"`
}

func (r SaveReport) OK() bool { return len(r.Failed) == 0 }

// SaveToStore writes each top-level field of cfg under its own key.
func SaveToStore(cfg Configuration, kv kvstore.Store) SaveReport {
	var rep SaveReport
	for _, f := range fields {
		b, err := fieldJSON(&cfg, f.Name)
		if err != nil {
			rep.Failed = append(rep.Failed, FieldFailure{Field: f.Name, Detail: err.Error()})
			continue
		}
		if err := kv.Set(f.Key, string(b)); err != nil {
			log.Printf("config: failed to persist field %s: %v", f.Name, err)
			rep.Failed = append(rep.Failed, FieldFailure{Field: f.Name, Detail: err.Error()})
			continue
		}
		rep.Saved = append(rep.Saved, f.Name)
	}
	return rep
}

// ClearErrorKind classifies a failed clear.
type ClearErrorKind string

const (
	StorageUnavailable ClearErrorKind = "storage-unavailable"
	StorageThrew       ClearErrorKind = "storage-threw"
)

type ClearError struct {
	Kind   ClearErrorKind
	Detail string
}

func (e *ClearError) Error() string {
	return fmt.Sprintf("failed to clear configuration storage (%s): %s", e.Kind, e.Detail)
}

// ClearAll removes every persisted field key. It does not reload defaults
// into memory; callers wanting reset-to-default behavior follow up with
// LoadFromStore, which resolves to defaults against the now-empty store.
func ClearAll(kv kvstore.Store) error {
	if kv == nil {
		return &ClearError{Kind: StorageUnavailable, Detail: "no persistent store configured"}
	}
	for _, f := range fields {
		if err := kv.Delete(f.Key); err != nil {
			return &ClearError{Kind: StorageThrew, Detail: err.Error()}
		}
	}
	return nil
}
