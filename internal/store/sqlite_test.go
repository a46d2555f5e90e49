package store

import (
	"errors"
	"path/filepath"
	"testing"
)

func openTestKV(t *testing.T) *SQLiteKV {
	t.Helper()
	kv, err := OpenSQLite(":memory:")
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { kv.Close() })
	return kv
}

func TestSQLiteKV_SetGet(t *testing.T) {
	kv := openTestKV(t)

	if err := kv.Set("token", "abc.def.ghi"); err != nil {
		t.Fatalf("set: %v", err)
	}
	got, err := kv.Get("token")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got != "abc.def.ghi" {
		t.Errorf("got %q, want %q", got, "abc.def.ghi")
	}
}

func TestSQLiteKV_Overwrite(t *testing.T) {
	kv := openTestKV(t)

	if err := kv.Set("role", "user"); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := kv.Set("role", "admin"); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	got, err := kv.Get("role")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got != "admin" {
		t.Errorf("got %q, want last-written value", got)
	}
}

func TestSQLiteKV_GetMissing(t *testing.T) {
	kv := openTestKV(t)

	if _, err := kv.Get("absent"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestSQLiteKV_Delete(t *testing.T) {
	kv := openTestKV(t)

	if err := kv.Set("username", "alice"); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := kv.Delete("username"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := kv.Get("username"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound after delete, got %v", err)
	}
	// Deleting an absent key is not an error.
	if err := kv.Delete("username"); err != nil {
		t.Errorf("delete absent: %v", err)
	}
}

func TestSQLiteKV_PersistsAcrossOpens(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state", "session.db")

	kv, err := OpenSQLite(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := kv.Set("token", "persisted"); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := kv.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	reopened, err := OpenSQLite(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer reopened.Close()

	got, err := reopened.Get("token")
	if err != nil {
		t.Fatalf("get after reopen: %v", err)
	}
	if got != "persisted" {
		t.Errorf("got %q, want value to survive reopen", got)
	}
}
