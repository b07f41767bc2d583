package kvstore

import (
	"path/filepath"
	"testing"
)

func testStore(t *testing.T) Store {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	st, err := NewSQLiteStore(dbPath)
	if err != nil {
		t.Fatalf("NewSQLiteStore: %v", err)
	}
	t.Cleanup(func() { st.Close() })
	return st
}

func TestSetGet(t *testing.T) {
	st := testStore(t)

	if err := st.Set("appConfig", `{"applicationName":"Acme"}`); err != nil {
		t.Fatalf("Set: %v", err)
	}

	v, ok, err := st.Get("appConfig")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !ok {
		t.Fatal("key should exist after Set")
	}
	if v != `{"applicationName":"Acme"}` {
		t.Errorf("value: got %q", v)
	}
}

func TestGetMissing(t *testing.T) {
	st := testStore(t)

	_, ok, err := st.Get("nope")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if ok {
		t.Error("missing key should report ok=false")
	}
}

func TestSetOverwrite(t *testing.T) {
	st := testStore(t)

	st.Set("k", "v1")
	st.Set("k", "v2")

	v, _, err := st.Get("k")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if v != "v2" {
		t.Errorf("overwrite: got %q, want v2", v)
	}
}

func TestDeleteAndKeys(t *testing.T) {
	st := testStore(t)

	st.Set("b", "2")
	st.Set("a", "1")

	keys, err := st.Keys()
	if err != nil {
		t.Fatalf("Keys: %v", err)
	}
	if len(keys) != 2 || keys[0] != "a" || keys[1] != "b" {
		t.Errorf("keys: got %v", keys)
	}

	if err := st.Delete("a"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	// Deleting a missing key is not an error.
	if err := st.Delete("a"); err != nil {
		t.Errorf("Delete missing: %v", err)
	}

	keys, _ = st.Keys()
	if len(keys) != 1 || keys[0] != "b" {
		t.Errorf("keys after delete: got %v", keys)
	}
}

func TestMemoryStore(t *testing.T) {
	m := NewMemoryStore()

	m.Set("x", "1")
	v, ok, _ := m.Get("x")
	if !ok || v != "1" {
		t.Errorf("memory get: got %q, %v", v, ok)
	}

	m.Delete("x")
	if _, ok, _ := m.Get("x"); ok {
		t.Error("deleted key should be gone")
	}
}
