package asset

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeAsset(t *testing.T, dir, sub, name string) {
	t.Helper()
	p := filepath.Join(dir, sub)
	if err := os.MkdirAll(p, 0755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(p, name), []byte("x"), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}
}

func TestNewStore_UsesEnvOverride(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(DirEnv, dir)

	store := NewStore("elsewhere")
	if store.BaseDir() != dir {
		t.Errorf("BaseDir: expected %q, got %q", dir, store.BaseDir())
	}
}

func TestNewStore_Default(t *testing.T) {
	t.Setenv(DirEnv, "")
	if got := NewStore("").BaseDir(); got != DefaultDir {
		t.Errorf("BaseDir: expected %q, got %q", DefaultDir, got)
	}
}

func TestDefaultIcon(t *testing.T) {
	if got := DefaultIcon("Go_Back"); got != "go_back.png" {
		t.Errorf("DefaultIcon: expected go_back.png, got %q", got)
	}
}

func TestStore_Icon(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(DirEnv, "")
	writeAsset(t, dir, "icons", "exit.png")
	store := NewStore(dir)

	got, err := store.Icon("exit.png")
	if err != nil {
		t.Fatalf("Icon: %v", err)
	}
	if want := filepath.Join(dir, "icons", "exit.png"); got != want {
		t.Errorf("Icon: expected %q, got %q", want, got)
	}

	_, err = store.Icon("missing.png")
	if !errors.Is(err, ErrMissing) {
		t.Errorf("Icon missing: expected ErrMissing, got %v", err)
	}
}

func TestStore_Font(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(DirEnv, "")
	writeAsset(t, dir, "fonts", DefaultFont)
	store := NewStore(dir)

	if _, err := store.Font(DefaultFont); err != nil {
		t.Errorf("Font: %v", err)
	}
	if err := os.MkdirAll(filepath.Join(dir, "fonts", "dir.ttf"), 0755); err != nil {
		t.Fatal(err)
	}
	if _, err := store.Font("dir.ttf"); !errors.Is(err, ErrMissing) {
		t.Errorf("Font dir: expected ErrMissing, got %v", err)
	}
}

func TestStore_LabelFont(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(DirEnv, "")
	writeAsset(t, dir, "fonts", "Mono.ttf")
	store := NewStore(dir)

	if _, err := store.LabelFont(); !errors.Is(err, ErrMissing) {
		t.Errorf("LabelFont default: expected ErrMissing, got %v", err)
	}
	store.SetLabelFont("Mono.ttf")
	got, err := store.LabelFont()
	if err != nil {
		t.Fatalf("LabelFont: %v", err)
	}
	if want := filepath.Join(dir, "fonts", "Mono.ttf"); got != want {
		t.Errorf("LabelFont: expected %q, got %q", want, got)
	}
}
