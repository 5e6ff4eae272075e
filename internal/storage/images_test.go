package storage

import (
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/zap"
)

func newTestStore(t *testing.T) *ImageStore {
	t.Helper()
	store, err := NewImageStore(t.TempDir(), zap.NewNop())
	if err != nil {
		t.Fatalf("NewImageStore: %v", err)
	}
	return store
}

func TestSaveAndDelete(t *testing.T) {
	store := newTestStore(t)

	path, err := store.Save([]byte("jpeg bytes"), "p1")
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if filepath.Base(path) != "product_p1.jpg" {
		t.Errorf("unexpected file name: %s", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if string(data) != "jpeg bytes" {
		t.Errorf("unexpected content: %q", data)
	}

	if err := store.Delete(path); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("expected file removed")
	}
}

func TestSaveReplacesExistingImage(t *testing.T) {
	store := newTestStore(t)

	first, err := store.Save([]byte("old"), "p1")
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	second, err := store.Save([]byte("new"), "p1")
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if first != second {
		t.Errorf("expected same path, got %s and %s", first, second)
	}

	data, _ := os.ReadFile(second)
	if string(data) != "new" {
		t.Errorf("expected replaced content, got %q", data)
	}
}

func TestDeleteMissingFileIsNoError(t *testing.T) {
	store := newTestStore(t)

	if err := store.Delete(""); err != nil {
		t.Errorf("Delete(\"\"): %v", err)
	}

	path, _ := store.Save([]byte("x"), "p1")
	os.Remove(path)
	if err := store.Delete(path); err != nil {
		t.Errorf("Delete on missing file: %v", err)
	}
}

func TestDeleteRejectsOutsidePaths(t *testing.T) {
	store := newTestStore(t)

	if err := store.Delete("/etc/passwd"); err == nil {
		t.Error("expected error for path outside the store")
	}
}

func TestSaveSanitizesProductID(t *testing.T) {
	store := newTestStore(t)

	path, err := store.Save([]byte("x"), "../evil/id")
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if filepath.Base(path) != "product____evil_id.jpg" {
		t.Errorf("unexpected sanitized name: %s", filepath.Base(path))
	}
}
