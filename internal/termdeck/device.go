// Package termdeck emulates a key-grid control surface in the terminal.
//
// Keys are drawn as bordered boxes in a Bubble Tea program. Keyboard keys
// (rows 12345…, qwert…, asdfg…, zxcvb…) and left mouse clicks press them.
// Key events are delivered to the registered callback from one goroutine,
// in arrival order, the way a hardware driver's read loop would.
package termdeck

import (
	"context"
	"errors"
	"fmt"
	"image"
	"sync"

	"streamydeck/internal/deck"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"
)

// ErrClosed is returned by operations on a closed device.
var ErrClosed = errors.New("termdeck: device closed")

type keyEvent struct {
	key     int
	pressed bool
}

// Device is a deck.Device backed by the terminal.
type Device struct {
	mu sync.Mutex // push lock, see deck.Device

	state      sync.RWMutex
	geom       deck.Geometry
	faces      []image.Image
	brightness int
	open       bool
	closed     bool
	callback   deck.KeyCallback
	program    *tea.Program

	keymap KeyMap
	serial string
	logger *zap.SugaredLogger

	queue *eventQueue
	dirty chan struct{}
	done  chan struct{}
}

var _ deck.Device = (*Device)(nil)

// Option configures a Device.
type Option func(*Device)

// WithLogger sets the device logger.
func WithLogger(logger *zap.SugaredLogger) Option {
	return func(d *Device) { d.logger = logger }
}

// WithSerial sets the serial number reported by Serial.
func WithSerial(serial string) Option {
	return func(d *Device) { d.serial = serial }
}

// New creates a closed rows x cols terminal deck.
func New(rows, cols int, opts ...Option) *Device {
	d := &Device{
		geom:       deck.Geometry{Rows: rows, Cols: cols, KeySize: image.Pt(KeyWidth, KeyHeight*2)},
		faces:      make([]image.Image, rows*cols),
		brightness: 100,
		keymap:     NewKeyMap(rows, cols),
		serial:     fmt.Sprintf("TERM-%dx%d", rows, cols),
		logger:     zap.NewNop().Sugar(),
		queue:      newEventQueue(),
		dirty:      make(chan struct{}, 1),
		done:       make(chan struct{}),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

func (d *Device) Lock()   { d.mu.Lock() }
func (d *Device) Unlock() { d.mu.Unlock() }

// Open starts the event pump. Key events are dropped until Open is called.
func (d *Device) Open() error {
	d.state.Lock()
	defer d.state.Unlock()
	if d.closed {
		return ErrClosed
	}
	if d.open {
		return nil
	}
	d.open = true
	go d.pump()
	return nil
}

// Reset blanks every key.
func (d *Device) Reset() error {
	d.state.Lock()
	if d.closed {
		d.state.Unlock()
		return ErrClosed
	}
	for i := range d.faces {
		d.faces[i] = nil
	}
	d.state.Unlock()
	d.markDirty()
	return nil
}

// Close stops the event pump and ends the terminal program.
func (d *Device) Close() error {
	d.state.Lock()
	if d.closed {
		d.state.Unlock()
		return nil
	}
	d.closed = true
	p := d.program
	d.state.Unlock()

	close(d.done)
	if p != nil {
		go p.Quit()
	}
	d.logger.Info("Closed device")
	return nil
}

func (d *Device) SetBrightness(percent int) error {
	d.state.Lock()
	if d.closed {
		d.state.Unlock()
		return ErrClosed
	}
	d.brightness = deck.ClampBrightness(percent)
	d.state.Unlock()
	d.markDirty()
	return nil
}

// Brightness returns the current brightness percentage.
func (d *Device) Brightness() int {
	d.state.RLock()
	defer d.state.RUnlock()
	return d.brightness
}

func (d *Device) KeyLayout() (int, int) { return d.geom.Rows, d.geom.Cols }

func (d *Device) Geometry() deck.Geometry { return d.geom }

// SetKeyImage stores img for key; the screen picks it up on the next frame.
func (d *Device) SetKeyImage(key int, img image.Image) error {
	if key < 0 || key >= len(d.faces) {
		return fmt.Errorf("termdeck: key %d out of range [0, %d)", key, len(d.faces))
	}
	d.state.Lock()
	if d.closed {
		d.state.Unlock()
		return ErrClosed
	}
	d.faces[key] = img
	d.state.Unlock()
	d.markDirty()
	return nil
}

// KeyImage returns what key currently shows, nil when blank.
func (d *Device) KeyImage(key int) image.Image {
	d.state.RLock()
	defer d.state.RUnlock()
	if key < 0 || key >= len(d.faces) {
		return nil
	}
	return d.faces[key]
}

func (d *Device) SetKeyCallback(cb deck.KeyCallback) {
	d.state.Lock()
	d.callback = cb
	d.state.Unlock()
}

func (d *Device) Type() string   { return "Terminal Deck" }
func (d *Device) Serial() string { return d.serial }

// Press queues a key transition as if it came from the hardware.
func (d *Device) Press(key int, pressed bool) {
	d.queue.push(keyEvent{key: key, pressed: pressed})
}

// Run shows the deck in the terminal until the device is closed, ctx is
// cancelled, or the user quits.
func (d *Device) Run(ctx context.Context, opts ...tea.ProgramOption) error {
	m := newModel(d)
	all := append([]tea.ProgramOption{tea.WithAltScreen(), tea.WithMouseCellMotion(), tea.WithContext(ctx)}, opts...)
	p := tea.NewProgram(m, all...)

	d.state.Lock()
	if d.closed {
		d.state.Unlock()
		return ErrClosed
	}
	d.program = p
	d.state.Unlock()

	go d.forwardRedraws(p)
	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return ctx.Err()
	}
	return err
}

// pump delivers queued key events to the callback, one at a time.
func (d *Device) pump() {
	for {
		select {
		case <-d.done:
			return
		case <-d.queue.ready:
		}
		for _, ev := range d.queue.drain() {
			select {
			case <-d.done:
				return
			default:
			}
			d.state.RLock()
			cb := d.callback
			d.state.RUnlock()
			if cb != nil {
				cb(d, ev.key, ev.pressed)
			}
		}
	}
}

func (d *Device) markDirty() {
	select {
	case d.dirty <- struct{}{}:
	default:
	}
}

// forwardRedraws asks the program for a new frame whenever a key changed.
func (d *Device) forwardRedraws(p *tea.Program) {
	for {
		select {
		case <-d.done:
			return
		case <-d.dirty:
			p.Send(redrawMsg{})
		}
	}
}

// snapshot returns the key images and brightness for drawing.
func (d *Device) snapshot() ([]image.Image, int) {
	d.state.RLock()
	defer d.state.RUnlock()
	return append([]image.Image(nil), d.faces...), d.brightness
}

// eventQueue is an unbounded FIFO, so the UI goroutine never blocks on a
// slow callback.
type eventQueue struct {
	mu    sync.Mutex
	items []keyEvent
	ready chan struct{}
}

func newEventQueue() *eventQueue {
	return &eventQueue{ready: make(chan struct{}, 1)}
}

func (q *eventQueue) push(ev keyEvent) {
	q.mu.Lock()
	q.items = append(q.items, ev)
	q.mu.Unlock()
	select {
	case q.ready <- struct{}{}:
	default:
	}
}

func (q *eventQueue) drain() []keyEvent {
	q.mu.Lock()
	defer q.mu.Unlock()
	items := q.items
	q.items = nil
	return items
}
