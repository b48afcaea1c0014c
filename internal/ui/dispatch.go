package ui

import (
	"context"
	"sync"
	"time"

	"streamydeck/internal/deck"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
	"go.uber.org/zap"
)

// DefaultCooldown is how long a cooldown-enabled key ignores repeat presses.
const DefaultCooldown = 2 * time.Second

// Dispatcher turns raw key events into action invocations.
//
// A press resolves against the focused view of its registry. Empty keys,
// unbound elements and release events are ignored. A press on a
// cooldown-enabled element within the cooldown window of its last
// invocation is dropped. Every invocation is recorded in the ledger before
// the action runs, for cooldown-disabled elements too.
//
// Key events and work passed to Do run one at a time, so an outside redraw
// never interleaves with an action that moves focus.
type Dispatcher struct {
	focus  *FocusRegistry
	window time.Duration
	now    func() time.Time
	logger *zap.SugaredLogger
	tracer trace.Tracer

	serial sync.Mutex

	mu     sync.Mutex
	ledger map[uint64]time.Time // element ID -> last invocation
}

// DispatcherOption configures a Dispatcher.
type DispatcherOption func(*Dispatcher)

// WithCooldown sets the repeat-press window.
func WithCooldown(window time.Duration) DispatcherOption {
	return func(d *Dispatcher) { d.window = window }
}

// WithClock replaces time.Now, for tests.
func WithClock(now func() time.Time) DispatcherOption {
	return func(d *Dispatcher) { d.now = now }
}

// WithLogger sets the logger.
func WithLogger(logger *zap.SugaredLogger) DispatcherOption {
	return func(d *Dispatcher) { d.logger = logger }
}

// WithTracer records one span per dispatched press.
func WithTracer(tracer trace.Tracer) DispatcherOption {
	return func(d *Dispatcher) { d.tracer = tracer }
}

// NewDispatcher creates a dispatcher reading focus from registry.
func NewDispatcher(registry *FocusRegistry, opts ...DispatcherOption) *Dispatcher {
	d := &Dispatcher{
		focus:  registry,
		window: DefaultCooldown,
		now:    time.Now,
		logger: zap.NewNop().Sugar(),
		tracer: noop.NewTracerProvider().Tracer(""),
		ledger: make(map[uint64]time.Time),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// HandleKey is the device key callback. Actions run synchronously on the
// calling goroutine.
func (d *Dispatcher) HandleKey(_ deck.Device, key int, pressed bool) {
	d.serial.Lock()
	defer d.serial.Unlock()

	view := d.focus.Focused()
	if view == nil {
		return
	}
	elt := view.GetKey(key)
	if elt == nil {
		return
	}
	act := elt.boundAction()
	if act == nil || !pressed {
		return
	}

	_, span := d.tracer.Start(context.Background(), "key_press", trace.WithAttributes(
		attribute.Int("streamydeck.key", key),
		attribute.String("streamydeck.view", view.Name()),
		attribute.String("streamydeck.element", elt.Name()),
	))
	defer span.End()

	if !d.admit(elt) {
		d.logger.Warnw("Key pressed again, ignoring", "key", key, "element", elt.Name())
		span.SetAttributes(attribute.Bool("streamydeck.suppressed", true))
		return
	}
	span.SetAttributes(attribute.Bool("streamydeck.suppressed", false))

	d.logger.Infow("Key pressed", "key", key, "view", view.Name(), "callback", act.name)
	if err := act.invoke(elt); err != nil {
		d.logger.Errorw("Action failed", "key", key, "callback", act.name, "error", err)
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
}

// Do runs fn on the event path: it waits for the action in flight and keeps
// key events out until fn returns. Use it for updates that originate outside
// a key press, such as a config reload. Calling Do from an action deadlocks.
func (d *Dispatcher) Do(fn func() error) error {
	d.serial.Lock()
	defer d.serial.Unlock()
	return fn()
}

// admit applies the cooldown check and, when the press is let through,
// records it in the ledger.
func (d *Dispatcher) admit(e *Element) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	now := d.now()
	if last, ok := d.ledger[e.ID()]; ok && e.Cooldown() && now.Sub(last) < d.window {
		return false
	}
	d.ledger[e.ID()] = now
	return true
}

// LastInvocation returns when the element with id last fired.
func (d *Dispatcher) LastInvocation(id uint64) (time.Time, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	t, ok := d.ledger[id]
	return t, ok
}
