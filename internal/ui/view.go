package ui

import (
	"context"
	"errors"
	"fmt"
	"image"
	"strings"
	"sync"
	"time"

	"streamydeck/internal/deck"

	"go.uber.org/zap"
)

// DefaultPacing is the delay between cells in FullAssign.
const DefaultPacing = 10 * time.Millisecond

// ErrIndexOutOfRange is returned when a (row, col) falls outside the grid.
var ErrIndexOutOfRange = errors.New("index out of range")

// View is a named screen: one optional Element per physical key.
//
// Row and column arguments accept -1 for the last row / last column.
type View struct {
	name     string
	dev      deck.Device
	renderer deck.Renderer
	focus    *FocusRegistry
	logger   *zap.SugaredLogger

	rows, cols     int
	renderOnAssign bool
	pacing         time.Duration

	mu    sync.RWMutex // guards cells
	cells [][]*Element
}

// ViewOption configures a View.
type ViewOption func(*View)

// RenderOnAssign makes every Set push the affected key immediately.
func RenderOnAssign() ViewOption {
	return func(v *View) { v.renderOnAssign = true }
}

// WithPacing sets the delay between cells in FullAssign.
func WithPacing(d time.Duration) ViewOption {
	return func(v *View) { v.pacing = d }
}

// WithViewLogger sets the logger; views log nothing by default.
func WithViewLogger(logger *zap.SugaredLogger) ViewOption {
	return func(v *View) { v.logger = logger }
}

// NewView creates an empty view sized to the device's key layout and
// registers it in focus.
func NewView(name string, d deck.Device, r deck.Renderer, focus *FocusRegistry, opts ...ViewOption) *View {
	rows, cols := d.KeyLayout()
	v := &View{
		name:     name,
		dev:      d,
		renderer: r,
		focus:    focus,
		logger:   zap.NewNop().Sugar(),
		rows:     rows,
		cols:     cols,
		pacing:   DefaultPacing,
		cells:    make([][]*Element, rows),
	}
	for i := range v.cells {
		v.cells[i] = make([]*Element, cols)
	}
	for _, opt := range opts {
		opt(v)
	}
	v.logger = v.logger.With("view", name)
	focus.Register(v)
	return v
}

func (v *View) Name() string { return v.name }

// Size returns the grid dimensions.
func (v *View) Size() (rows, cols int) { return v.rows, v.cols }

// RendersOnAssign reports whether Set pushes to the device.
func (v *View) RendersOnAssign() bool { return v.renderOnAssign }

// KeyFromIndex returns the key index of (row, col).
func (v *View) KeyFromIndex(row, col int) int {
	return keyFromIndex(row, col, v.rows, v.cols)
}

// IndexFromKey returns the (row, col) of a key index.
func (v *View) IndexFromKey(key int) (row, col int) {
	return indexFromKey(key, v.cols)
}

// Get returns the Element at (row, col), or nil for an empty or out of range cell.
func (v *View) Get(row, col int) *Element {
	row, col = resolveIndex(row, col, v.rows, v.cols)
	if !inBounds(row, col, v.rows, v.cols) {
		return nil
	}
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.cells[row][col]
}

// GetKey returns the Element shown on key.
func (v *View) GetKey(key int) *Element {
	return v.Get(v.IndexFromKey(key))
}

// Set stores e (nil empties the cell). With RenderOnAssign the key is
// pushed to the device right away.
func (v *View) Set(row, col int, e *Element) error {
	row, col = resolveIndex(row, col, v.rows, v.cols)
	if !inBounds(row, col, v.rows, v.cols) {
		return fmt.Errorf("view %s (%d, %d): %w", v.name, row, col, ErrIndexOutOfRange)
	}
	v.mu.Lock()
	v.cells[row][col] = e
	v.mu.Unlock()

	if v.renderOnAssign {
		return v.push(row*v.cols+col, e)
	}
	return nil
}

// MustSet is Set for view construction code with literal indices.
func (v *View) MustSet(row, col int, e *Element) {
	if err := v.Set(row, col, e); err != nil {
		panic(err)
	}
}

// FullAssign sets every cell to e, one cell at a time, waiting the pacing
// delay between cells so the device's update channel is not saturated.
func (v *View) FullAssign(ctx context.Context, e *Element) error {
	for row := 0; row < v.rows; row++ {
		for col := 0; col < v.cols; col++ {
			if err := v.Set(row, col, e); err != nil {
				return err
			}
			if v.pacing <= 0 {
				continue
			}
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(v.pacing):
			}
		}
	}
	return nil
}

// Render focuses the view, blanks every key, then pushes every cell in
// row-major order.
func (v *View) Render() error {
	v.focus.Focus(v.name)
	v.logger.Debug("Rendering view")
	if err := v.Clear(); err != nil {
		return err
	}
	for key, e := range v.snapshot() {
		if err := v.push(key, e); err != nil {
			return err
		}
	}
	return nil
}

// RenderElement pushes only the keys holding e, leaving every other key as
// it is on the device. Used to refresh one key in place.
func (v *View) RenderElement(e *Element) error {
	for key, cell := range v.snapshot() {
		if cell != e {
			continue
		}
		if err := v.push(key, cell); err != nil {
			return err
		}
	}
	return nil
}

// Clear blanks every key of the device without touching the grid.
func (v *View) Clear() error {
	for key := 0; key < v.rows*v.cols; key++ {
		if err := v.push(key, nil); err != nil {
			return err
		}
	}
	return nil
}

// push sends the image of e to key. A push from a view that is not focused
// takes focus and blanks the device first.
func (v *View) push(key int, e *Element) error {
	if !v.focus.Focus(v.name) {
		v.logger.Debug("View gained focus, clearing device")
		if err := v.Clear(); err != nil {
			return err
		}
	}

	var img image.Image
	if e != nil {
		var err error
		img, err = e.Image(v.dev.Geometry(), v.renderer)
		if err != nil {
			return fmt.Errorf("render %s key %d: %w", v.name, key, err)
		}
	}

	v.dev.Lock()
	defer v.dev.Unlock()
	if err := v.dev.SetKeyImage(key, img); err != nil {
		return fmt.Errorf("push %s key %d: %w", v.name, key, err)
	}
	return nil
}

// snapshot returns the cells in key order.
func (v *View) snapshot() []*Element {
	v.mu.RLock()
	defer v.mu.RUnlock()
	out := make([]*Element, 0, v.rows*v.cols)
	for _, row := range v.cells {
		out = append(out, row...)
	}
	return out
}

// String dumps the grid, one tab-separated line per row.
func (v *View) String() string {
	v.mu.RLock()
	defer v.mu.RUnlock()
	lines := make([]string, len(v.cells))
	for i, row := range v.cells {
		parts := make([]string, len(row))
		for j, e := range row {
			if e == nil {
				parts[j] = "<nil>"
			} else {
				parts[j] = e.String()
			}
		}
		lines[i] = strings.Join(parts, "\t")
	}
	return strings.Join(lines, "\n")
}
