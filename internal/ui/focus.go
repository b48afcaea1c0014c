package ui

import (
	"sort"
	"sync"
)

// FocusRegistry maps view names to views for one device and tracks which
// view is focused. The focused view is the one key events resolve against.
// Safe for concurrent use.
type FocusRegistry struct {
	mu      sync.RWMutex
	views   map[string]*View
	current string

	// OnChange, when set, is called after focus moves to a different view.
	// It runs without the registry lock held.
	OnChange func(from, to string)
}

// NewFocusRegistry creates an empty registry with no focused view.
func NewFocusRegistry() *FocusRegistry {
	return &FocusRegistry{views: make(map[string]*View)}
}

// Register adds v under its name, replacing any view with the same name.
// The first view registered into an empty focus becomes focused.
func (f *FocusRegistry) Register(v *View) {
	f.mu.Lock()
	f.views[v.Name()] = v
	if f.current == "" {
		f.current = v.Name()
	}
	f.mu.Unlock()
}

// Lookup returns the view registered under name.
func (f *FocusRegistry) Lookup(name string) (*View, bool) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	v, ok := f.views[name]
	return v, ok
}

// Current returns the focused view name, or "" when nothing is focused.
func (f *FocusRegistry) Current() string {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.current
}

// Focused returns the focused view, or nil.
func (f *FocusRegistry) Focused() *View {
	f.mu.RLock()
	defer f.mu.RUnlock()
	if f.current == "" {
		return nil
	}
	return f.views[f.current]
}

// IsFocused reports whether name is the focused view.
func (f *FocusRegistry) IsFocused(name string) bool {
	return f.Current() == name
}

// Focus makes name the focused view and reports whether it already was.
func (f *FocusRegistry) Focus(name string) (wasFocused bool) {
	f.mu.Lock()
	from := f.current
	f.current = name
	onChange := f.OnChange
	f.mu.Unlock()

	if from == name {
		return true
	}
	if onChange != nil {
		onChange(from, name)
	}
	return false
}

// Names returns the registered view names, sorted.
func (f *FocusRegistry) Names() []string {
	f.mu.RLock()
	defer f.mu.RUnlock()
	names := make([]string, 0, len(f.views))
	for name := range f.views {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
