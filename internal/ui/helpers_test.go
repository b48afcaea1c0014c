package ui

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"streamydeck/internal/asset"
	"streamydeck/internal/deck/decktest"
)

// testStore creates an assets root holding the default font and the given icons.
func testStore(t *testing.T, icons ...string) *asset.Store {
	t.Helper()
	t.Setenv(asset.DirEnv, "")
	dir := t.TempDir()
	for _, sub := range []string{"icons", "fonts"} {
		if err := os.MkdirAll(filepath.Join(dir, sub), 0755); err != nil {
			t.Fatalf("mkdir: %v", err)
		}
	}
	write := func(p string) {
		if err := os.WriteFile(p, []byte("x"), 0644); err != nil {
			t.Fatalf("write %s: %v", p, err)
		}
	}
	write(filepath.Join(dir, "fonts", asset.DefaultFont))
	for _, icon := range icons {
		write(filepath.Join(dir, "icons", icon))
	}
	return asset.NewStore(dir)
}

// fakeClock is a manually advanced clock.
type fakeClock struct{ t time.Time }

func newFakeClock() *fakeClock {
	return &fakeClock{t: time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time { return c.t }

func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestView(t *testing.T, name string, opts ...ViewOption) (*View, *decktest.Recorder, *FocusRegistry) {
	t.Helper()
	dev := decktest.New(3, 5)
	focus := NewFocusRegistry()
	v := NewView(name, dev, decktest.Renderer(), focus, append([]ViewOption{WithPacing(0)}, opts...)...)
	return v, dev, focus
}
