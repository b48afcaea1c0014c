// Package decktest provides an in-memory deck.Device that records every
// push, for tests of code that drives a device.
package decktest

import (
	"image"
	"image/color"
	"sync"

	"streamydeck/internal/deck"
)

// Push is one recorded SetKeyImage call.
type Push struct {
	Key   int
	Image image.Image // nil for a blanked key
}

// Recorder is a fake device with a fixed layout.
type Recorder struct {
	mu   sync.Mutex // scoped push lock (deck.Device's Locker)
	geom deck.Geometry

	state      sync.Mutex
	pushes     []Push
	brightness int
	opened     bool
	resets     int
	closed     bool
	locked     bool
	callback   deck.KeyCallback

	// PushErr, when set, is returned from SetKeyImage.
	PushErr error
}

var _ deck.Device = (*Recorder)(nil)

// New creates a Recorder with rows x cols keys of 72px.
func New(rows, cols int) *Recorder {
	return &Recorder{geom: deck.Geometry{Rows: rows, Cols: cols, KeySize: image.Pt(72, 72)}}
}

func (r *Recorder) Lock() {
	r.mu.Lock()
	r.state.Lock()
	r.locked = true
	r.state.Unlock()
}

func (r *Recorder) Unlock() {
	r.state.Lock()
	r.locked = false
	r.state.Unlock()
	r.mu.Unlock()
}

func (r *Recorder) Open() error {
	r.state.Lock()
	defer r.state.Unlock()
	r.opened = true
	return nil
}

func (r *Recorder) Reset() error {
	r.state.Lock()
	defer r.state.Unlock()
	r.resets++
	return nil
}

func (r *Recorder) Close() error {
	r.state.Lock()
	defer r.state.Unlock()
	r.closed = true
	return nil
}

func (r *Recorder) SetBrightness(percent int) error {
	r.state.Lock()
	defer r.state.Unlock()
	r.brightness = percent
	return nil
}

func (r *Recorder) KeyLayout() (int, int) { return r.geom.Rows, r.geom.Cols }

func (r *Recorder) Geometry() deck.Geometry { return r.geom }

// SetKeyImage records the push. It must be called with the device lock held.
func (r *Recorder) SetKeyImage(key int, img image.Image) error {
	r.state.Lock()
	defer r.state.Unlock()
	if r.PushErr != nil {
		return r.PushErr
	}
	if !r.locked {
		panic("decktest: SetKeyImage called without holding the device lock")
	}
	r.pushes = append(r.pushes, Push{Key: key, Image: img})
	return nil
}

func (r *Recorder) SetKeyCallback(cb deck.KeyCallback) {
	r.state.Lock()
	defer r.state.Unlock()
	r.callback = cb
}

func (r *Recorder) Type() string   { return "Recorder" }
func (r *Recorder) Serial() string { return "TEST0001" }

// Press delivers a key transition to the registered callback.
func (r *Recorder) Press(key int, pressed bool) {
	r.state.Lock()
	cb := r.callback
	r.state.Unlock()
	if cb != nil {
		cb(r, key, pressed)
	}
}

// Pushes returns a copy of all recorded pushes.
func (r *Recorder) Pushes() []Push {
	r.state.Lock()
	defer r.state.Unlock()
	return append([]Push(nil), r.pushes...)
}

// ResetPushes forgets recorded pushes.
func (r *Recorder) ResetPushes() {
	r.state.Lock()
	defer r.state.Unlock()
	r.pushes = nil
}

// Clears returns how many recorded pushes blanked a key.
func (r *Recorder) Clears() int {
	n := 0
	for _, p := range r.Pushes() {
		if p.Image == nil {
			n++
		}
	}
	return n
}

func (r *Recorder) Brightness() int {
	r.state.Lock()
	defer r.state.Unlock()
	return r.brightness
}

func (r *Recorder) Opened() bool {
	r.state.Lock()
	defer r.state.Unlock()
	return r.opened
}

func (r *Recorder) Resets() int {
	r.state.Lock()
	defer r.state.Unlock()
	return r.resets
}

func (r *Recorder) Closed() bool {
	r.state.Lock()
	defer r.state.Unlock()
	return r.closed
}

// Tagged is the image produced by Renderer: a 1x1 image carrying the label
// it was rendered from, so tests can tell pushes apart.
type Tagged struct {
	*image.Uniform
	Label string
}

// Renderer returns a deck.Renderer producing Tagged images.
func Renderer() deck.Renderer {
	return deck.RendererFunc(func(_ deck.Geometry, f deck.Face) (image.Image, error) {
		return &Tagged{Uniform: image.NewUniform(color.Black), Label: f.Label}, nil
	})
}
