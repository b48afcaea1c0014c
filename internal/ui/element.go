package ui

import (
	"fmt"
	"image"
	"strings"
	"sync"
	"sync/atomic"

	"streamydeck/internal/asset"
	"streamydeck/internal/deck"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const (
	// DefaultFontSize is the label size used when no WithFontSize option is given.
	DefaultFontSize = 14
	// DefaultBackground is the key background used when no WithBackground option is given.
	DefaultBackground = "black"
)

var nextElementID atomic.Uint64

// Element is one key face: an icon and/or label, and an optional action
// fired when the key is pressed.
//
// Elements are compared by pointer identity; ID is the stable key the
// Dispatcher keeps its cooldown ledger under.
type Element struct {
	id       uint64
	icon     string
	iconPath string
	fontPath string
	textOnly bool
	fontSize int
	hasLabel bool

	mu         sync.RWMutex
	name       string
	label      string
	background string
	cooldown   bool
	action     *action
}

// Option configures an Element at construction.
type Option func(*Element)

// WithIcon names the icon file (under the assets icons/ directory).
// The default is the lower-cased element name with a .png extension.
func WithIcon(icon string) Option {
	return func(e *Element) { e.icon = icon }
}

// WithLabel sets the label. The default is the name with underscores
// turned into spaces, title-cased.
func WithLabel(label string) Option {
	return func(e *Element) {
		e.label = label
		e.hasLabel = true
	}
}

// TextOnly draws the label centered on the background instead of under an icon.
func TextOnly() Option {
	return func(e *Element) { e.textOnly = true }
}

// WithFontSize sets the label font size.
func WithFontSize(size int) Option {
	return func(e *Element) { e.fontSize = size }
}

// WithBackground sets the background tag (a color name).
func WithBackground(bg string) Option {
	return func(e *Element) { e.background = bg }
}

// WithoutCooldown lets the key fire on every press, however close together.
func WithoutCooldown() Option {
	return func(e *Element) { e.cooldown = false }
}

// DefaultLabel derives a label from an element name: "go_back" -> "Go Back".
func DefaultLabel(name string) string {
	return cases.Title(language.Und).String(strings.ReplaceAll(name, "_", " "))
}

// NewElement builds an Element. The icon and font it references must exist
// in store; otherwise an error wrapping asset.ErrMissing is returned.
func NewElement(store *asset.Store, name string, opts ...Option) (*Element, error) {
	e := &Element{
		id:         nextElementID.Add(1),
		name:       name,
		fontSize:   DefaultFontSize,
		background: DefaultBackground,
		cooldown:   true,
	}
	for _, opt := range opts {
		opt(e)
	}
	if !e.hasLabel {
		e.label = DefaultLabel(name)
	}
	if e.icon == "" {
		e.icon = asset.DefaultIcon(name)
	}

	var err error
	if e.iconPath, err = store.Icon(e.icon); err != nil {
		return nil, fmt.Errorf("element %q: %w", name, err)
	}
	if e.fontPath, err = store.LabelFont(); err != nil {
		return nil, fmt.Errorf("element %q: %w", name, err)
	}
	return e, nil
}

// MustElement is NewElement for view construction code: a missing asset is
// a configuration error, so it panics.
func MustElement(store *asset.Store, name string, opts ...Option) *Element {
	e, err := NewElement(store, name, opts...)
	if err != nil {
		panic(err)
	}
	return e
}

// Bind sets the action fired on press: fn is called with args.
// Binding again replaces the previous action; a nil fn unbinds.
// Bind returns e for chaining.
func (e *Element) Bind(fn ActionFunc, args ...any) *Element {
	if fn == nil {
		return e.bind(nil)
	}
	return e.bind(&action{kind: plainAction, plain: fn, args: args, name: funcName(fn)})
}

// BindElement sets an action that receives the pressed Element ahead of args.
func (e *Element) BindElement(fn ElementActionFunc, args ...any) *Element {
	if fn == nil {
		return e.bind(nil)
	}
	return e.bind(&action{kind: elementAction, element: fn, args: args, name: funcName(fn)})
}

// BindFunc binds a callback that takes no arguments and cannot fail.
func (e *Element) BindFunc(fn func()) *Element {
	if fn == nil {
		return e.bind(nil)
	}
	return e.bind(&action{
		kind:  plainAction,
		plain: func(...any) error { fn(); return nil },
		name:  funcName(fn),
	})
}

func (e *Element) bind(a *action) *Element {
	e.mu.Lock()
	e.action = a
	e.mu.Unlock()
	return e
}

func (e *Element) boundAction() *action {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.action
}

// Bound reports whether an action is bound. Unbound elements ignore presses.
func (e *Element) Bound() bool {
	return e.boundAction() != nil
}

// PassesElement reports whether the bound action receives the Element.
func (e *Element) PassesElement() bool {
	a := e.boundAction()
	return a != nil && a.kind == elementAction
}

// Copy returns a new Element with the same name and icon, bound to fn when
// fn is non-nil.
func (e *Element) Copy(fn ActionFunc) *Element {
	e.mu.RLock()
	c := &Element{
		id:         nextElementID.Add(1),
		icon:       e.icon,
		iconPath:   e.iconPath,
		fontPath:   e.fontPath,
		fontSize:   DefaultFontSize,
		name:       e.name,
		label:      DefaultLabel(e.name),
		background: DefaultBackground,
		cooldown:   true,
	}
	e.mu.RUnlock()
	if fn != nil {
		c.Bind(fn)
	}
	return c
}

func (e *Element) ID() uint64 { return e.id }

func (e *Element) Name() string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.name
}

func (e *Element) Label() string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.label
}

// SetLabel replaces the label; the key shows it on the next render.
func (e *Element) SetLabel(label string) {
	e.mu.Lock()
	e.label = label
	e.mu.Unlock()
}

func (e *Element) Background() string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.background
}

// SetBackground changes the background. A text-only element is also renamed
// to the background tag, since a plain colored key is named by its color.
func (e *Element) SetBackground(bg string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.textOnly {
		e.name = bg
	}
	e.background = bg
}

// Cooldown reports whether repeated presses within the cooldown window are dropped.
func (e *Element) Cooldown() bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.cooldown
}

func (e *Element) SetCooldown(on bool) {
	e.mu.Lock()
	e.cooldown = on
	e.mu.Unlock()
}

func (e *Element) TextOnly() bool { return e.textOnly }

func (e *Element) FontSize() int { return e.fontSize }

func (e *Element) IconPath() string { return e.iconPath }

func (e *Element) FontPath() string { return e.fontPath }

// Face describes how the key is drawn. Text-only labels break lines at
// spaces and are centered; icon labels sit at the bottom, and an empty
// label is left out so it does not shift the icon.
func (e *Element) Face() deck.Face {
	e.mu.RLock()
	defer e.mu.RUnlock()
	f := deck.Face{
		IconPath:   e.iconPath,
		FontPath:   e.fontPath,
		Label:      e.label,
		TextOnly:   e.textOnly,
		Background: e.background,
		FontSize:   e.fontSize,
	}
	switch {
	case e.textOnly:
		f.Label = strings.ReplaceAll(e.label, " ", "\n")
		f.Placement = deck.PlaceCenter
	case e.label == "":
		f.Placement = deck.PlaceNone
	default:
		f.Placement = deck.PlaceBottom
	}
	return f
}

// Image renders the key face for a device of geometry g.
func (e *Element) Image(g deck.Geometry, r deck.Renderer) (image.Image, error) {
	return r.Render(g, e.Face())
}

// String returns the name, followed by the bound action if any.
func (e *Element) String() string {
	name := e.Name()
	if a := e.boundAction(); a != nil {
		return name + " - " + a.String()
	}
	return name
}
