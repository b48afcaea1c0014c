package main

import (
	"fmt"
	"sync"

	"streamydeck/internal/asset"
	"streamydeck/internal/calc"
	"streamydeck/internal/config"
	"streamydeck/internal/deck"
	"streamydeck/internal/ui"

	"go.uber.org/zap"
)

const (
	brightnessStep = 10
	calcFontSize   = 50
)

// app is a built example: the view shown first and the state that follows
// config reloads.
type app struct {
	session    *ui.Session
	home       *ui.View
	brightness *brightness // nil when the example has no settings view
}

// start shows the home view and starts dispatching key presses.
func (a *app) start() error {
	if err := a.home.Render(); err != nil {
		return err
	}
	a.session.Start()
	return nil
}

// reload applies a reloaded configuration. It runs between key presses so
// the focus check in brightness.set holds until the readout is drawn.
func (a *app) reload(vals config.Values) error {
	return a.session.Do(func() error {
		if a.brightness != nil {
			return a.brightness.set(vals.Brightness)
		}
		return a.session.Device.SetBrightness(vals.Brightness)
	})
}

// render is bound to keys that switch to the view in args[0].
func render(args ...any) error {
	return args[0].(*ui.View).Render()
}

// terminate is bound to keys that shut the device in args[0] down.
func terminate(args ...any) error {
	return deck.Terminate(args[0].(deck.Device))
}

// buildDemo creates the main, settings, calculator and confirm views.
func buildDemo(s *ui.Session, store *asset.Store, vals config.Values) (a *app, err error) {
	rows, cols := s.Device.KeyLayout()
	if rows < 3 || cols < 5 {
		return nil, fmt.Errorf("demo needs a 3x5 deck, got %dx%d", rows, cols)
	}
	// MustElement panics on a missing asset; report it as an error.
	defer func() {
		if r := recover(); r != nil {
			a, err = nil, fmt.Errorf("build demo: %v", r)
		}
	}()

	mainView := s.NewView("main")
	settings, b := newSettingsView(s, store, mainView, vals.Brightness)
	calculator := newCalculatorView(s, store, mainView)
	confirm := newConfirmView(s, store, mainView)

	mainView.MustSet(0, 0, ui.MustElement(store, "settings", ui.WithLabel("Settings"), ui.WithoutCooldown()).
		Bind(render, settings))
	mainView.MustSet(0, 1, ui.MustElement(store, "calc", ui.WithLabel("Calculator"), ui.WithoutCooldown()).
		Bind(render, calculator))
	mainView.MustSet(-1, -1, ui.MustElement(store, "exit", ui.WithoutCooldown()).
		Bind(render, confirm))

	return &app{session: s, home: mainView, brightness: b}, nil
}

// buildExitExample creates a single view with one exit key.
func buildExitExample(s *ui.Session, store *asset.Store, _ config.Values) (*app, error) {
	exit, err := ui.NewElement(store, "exit", ui.WithLabel("Exit"))
	if err != nil {
		return nil, err
	}
	v := s.NewView("main")
	if err := v.Set(0, 0, exit.Bind(terminate, s.Device)); err != nil {
		return nil, err
	}
	return &app{session: s, home: v}, nil
}

func newConfirmView(s *ui.Session, store *asset.Store, parent *ui.View) *ui.View {
	v := s.NewView("confirm")
	v.MustSet(-1, 0, ui.MustElement(store, "yes", ui.WithoutCooldown()).Bind(terminate, s.Device))
	v.MustSet(-1, -1, ui.MustElement(store, "no", ui.WithoutCooldown()).Bind(render, parent))
	return v
}

// brightness is the settings view state: the current level and the text
// key that shows it.
type brightness struct {
	mu    sync.Mutex
	value int

	dev     deck.Device
	focus   *ui.FocusRegistry
	view    *ui.View
	readout *ui.Element
}

func newSettingsView(s *ui.Session, store *asset.Store, parent *ui.View, initial int) (*ui.View, *brightness) {
	v := s.NewView("settings")
	b := &brightness{
		value:   deck.ClampBrightness(initial),
		dev:     s.Device,
		focus:   s.Focus,
		view:    v,
		readout: ui.MustElement(store, "black", ui.WithLabel(""), ui.TextOnly()),
	}

	v.MustSet(0, 0, ui.MustElement(store, "icon-up", ui.WithLabel("Brightness"), ui.WithoutCooldown()).
		Bind(b.adjust, brightnessStep))
	v.MustSet(1, 0, b.readout)
	v.MustSet(2, 0, ui.MustElement(store, "icon-down", ui.WithLabel("Brightness"), ui.WithoutCooldown()).
		Bind(b.adjust, -brightnessStep))
	v.MustSet(0, -1, ui.MustElement(store, "settings", ui.WithLabel("")))
	v.MustSet(-1, -1, ui.MustElement(store, "go_back", ui.WithoutCooldown()).Bind(render, parent))
	return v, b
}

// adjust moves the brightness by args[0] percent, within [0, 100].
func (b *brightness) adjust(args ...any) error {
	delta := args[0].(int)
	b.mu.Lock()
	next := deck.ClampBrightness(b.value + delta)
	if next == b.value {
		b.mu.Unlock()
		return nil
	}
	b.value = next
	b.mu.Unlock()
	return b.show(next, true)
}

// set applies a brightness from outside the settings view. The readout is
// redrawn only while the settings view is on the device.
func (b *brightness) set(percent int) error {
	percent = deck.ClampBrightness(percent)
	b.mu.Lock()
	b.value = percent
	b.mu.Unlock()
	return b.show(percent, b.focus.IsFocused(b.view.Name()))
}

func (b *brightness) current() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.value
}

func (b *brightness) show(percent int, redraw bool) error {
	if err := b.dev.SetBrightness(percent); err != nil {
		return fmt.Errorf("set brightness: %w", err)
	}
	b.readout.SetLabel(fmt.Sprintf("Brightness %d%%", percent))
	if !redraw {
		return nil
	}
	return b.view.RenderElement(b.readout)
}

// calculator collects digit and operator keys and shows results on a
// result view.
type calculator struct {
	calc.Calculator

	session *ui.Session
	store   *asset.Store
	home    *ui.View
	logger  *zap.SugaredLogger
}

func newCalculatorView(s *ui.Session, store *asset.Store, home *ui.View) *ui.View {
	c := &calculator{session: s, store: store, home: home, logger: s.Logger().Named("calc")}
	v := s.NewView("calculator")

	key := func(label string) *ui.Element {
		return ui.MustElement(store, "black", ui.WithLabel(label), ui.TextOnly(), ui.WithFontSize(calcFontSize)).
			BindElement(c.onKey)
	}
	for digit := 0; digit < 10; digit++ {
		v.MustSet(digit/5, digit%5, key(fmt.Sprint(digit)))
	}
	for col, op := range []string{"+", "-", "/", "*"} {
		v.MustSet(2, col, key(op))
	}
	v.MustSet(-1, -1, ui.MustElement(store, "black", ui.WithLabel("ENTER"), ui.TextOnly()).Bind(c.compute))

	rows, cols := v.Size()
	for k := 0; k < rows*cols; k++ {
		if e := v.GetKey(k); e != nil {
			e.SetCooldown(false)
		}
	}
	return v
}

func (c *calculator) onKey(e *ui.Element, _ ...any) error {
	c.Push(e.Label())
	return nil
}

// compute evaluates the typed keys and shows the result. Expressions that
// do not evaluate are logged and otherwise ignored.
func (c *calculator) compute(...any) error {
	expr := c.Expression()
	result, err := c.Compute()
	if err != nil {
		c.logger.Infow("Ignoring expression", "expression", expr, "error", err)
		return nil
	}
	c.logger.Debugw("Computed", "expression", expr, "result", result)

	v := c.session.NewView("result")
	rows, cols := v.Size()
	chars := calc.ResultKeys(result)
	if n := rows*cols - 1; len(chars) > n {
		chars = chars[:n]
	}
	for k, ch := range chars {
		e, err := ui.NewElement(c.store, "black", ui.WithLabel(ch), ui.TextOnly(), ui.WithFontSize(calcFontSize))
		if err != nil {
			return err
		}
		row, col := v.IndexFromKey(k)
		if err := v.Set(row, col, e); err != nil {
			return err
		}
	}
	goBack, err := ui.NewElement(c.store, "go_back", ui.WithoutCooldown())
	if err != nil {
		return err
	}
	if err := v.Set(-1, -1, goBack.Bind(render, c.home)); err != nil {
		return err
	}
	return v.Render()
}
