package store

import (
	"os"
	"path/filepath"
	"testing"
)

func openAll(t *testing.T) map[string]Store {
	t.Helper()
	dir := t.TempDir()

	stores := map[string]Store{}
	for driver, name := range map[string]string{
		DriverSQLite: "stopwatch.db",
		DriverFile:   "stopwatch.json",
		DriverMemory: "",
	} {
		s, err := Open(driver, filepath.Join(dir, name))
		if err != nil {
			t.Fatalf("Open(%q) returned unexpected error: %v", driver, err)
		}
		t.Cleanup(func() { s.Close() })
		stores[driver] = s
	}
	return stores
}

func TestStoreGetMissing(t *testing.T) {
	for driver, s := range openAll(t) {
		t.Run(driver, func(t *testing.T) {
			v, ok, err := s.GetItem("data")
			if err != nil {
				t.Fatalf("GetItem() returned unexpected error: %v", err)
			}
			if ok || v != "" {
				t.Errorf("GetItem() = (%q, %v), want absent", v, ok)
			}
		})
	}
}

func TestStoreSetOverwrites(t *testing.T) {
	for driver, s := range openAll(t) {
		t.Run(driver, func(t *testing.T) {
			for _, value := range []string{`["a"]`, `["a","b"]`, "null"} {
				if err := s.SetItem("data", value); err != nil {
					t.Fatalf("SetItem(%q) returned unexpected error: %v", value, err)
				}
				got, ok, err := s.GetItem("data")
				if err != nil {
					t.Fatalf("GetItem() returned unexpected error: %v", err)
				}
				if !ok || got != value {
					t.Errorf("GetItem() = (%q, %v), want (%q, true)", got, ok, value)
				}
			}
		})
	}
}

func TestStoreKeysIndependent(t *testing.T) {
	for driver, s := range openAll(t) {
		t.Run(driver, func(t *testing.T) {
			_ = s.SetItem("a", "1")
			_ = s.SetItem("b", "2")
			if v, _, _ := s.GetItem("a"); v != "1" {
				t.Errorf("GetItem(a) = %q, want 1", v)
			}
			if v, _, _ := s.GetItem("b"); v != "2" {
				t.Errorf("GetItem(b) = %q, want 2", v)
			}
		})
	}
}

func TestSQLiteStorePersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stopwatch.db")

	s, err := NewSQLiteStore(path)
	if err != nil {
		t.Fatalf("NewSQLiteStore() returned unexpected error: %v", err)
	}
	if err := s.SetItem("data", `["x"]`); err != nil {
		t.Fatalf("SetItem() returned unexpected error: %v", err)
	}
	s.Close()

	s, err = NewSQLiteStore(path)
	if err != nil {
		t.Fatalf("reopen returned unexpected error: %v", err)
	}
	defer s.Close()
	if v, ok, _ := s.GetItem("data"); !ok || v != `["x"]` {
		t.Errorf("GetItem() after reopen = (%q, %v)", v, ok)
	}
}

func TestFileStoreCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stopwatch.json")
	if err := os.WriteFile(path, []byte("{broken"), 0o644); err != nil {
		t.Fatal(err)
	}

	s := NewFileStore(path)
	if _, _, err := s.GetItem("data"); err == nil {
		t.Error("GetItem() on corrupt file expected error, got nil")
	}
}

func TestOpenUnknownDriver(t *testing.T) {
	if _, err := Open("redis", filepath.Join(t.TempDir(), "x")); err == nil {
		t.Error("Open() with unknown driver expected error, got nil")
	}
}

func TestOpenCreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "stopwatch.json")
	s, err := Open(DriverFile, path)
	if err != nil {
		t.Fatalf("Open() returned unexpected error: %v", err)
	}
	if err := s.SetItem("data", "[]"); err != nil {
		t.Fatalf("SetItem() returned unexpected error: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("expected store file to exist: %v", err)
	}
}
