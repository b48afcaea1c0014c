package ui

import (
	"streamydeck/internal/deck"

	"go.uber.org/zap"
)

// Session binds one device to its renderer, focus registry and dispatcher.
// Each device gets its own Session, so focus and cooldown state never leak
// between devices.
type Session struct {
	Device     deck.Device
	Renderer   deck.Renderer
	Focus      *FocusRegistry
	Dispatcher *Dispatcher

	logger   *zap.SugaredLogger
	dispatch []DispatcherOption
	views    []ViewOption
}

// SessionOption configures a Session.
type SessionOption func(*Session)

// WithSessionLogger sets the logger shared by the dispatcher and views.
func WithSessionLogger(logger *zap.SugaredLogger) SessionOption {
	return func(s *Session) { s.logger = logger }
}

// WithDispatcherOptions passes options through to the Dispatcher.
func WithDispatcherOptions(opts ...DispatcherOption) SessionOption {
	return func(s *Session) { s.dispatch = append(s.dispatch, opts...) }
}

// WithDefaultViewOptions applies opts to every view created by NewView.
func WithDefaultViewOptions(opts ...ViewOption) SessionOption {
	return func(s *Session) { s.views = append(s.views, opts...) }
}

// NewSession creates a session for d. Key events reach the dispatcher once
// Start is called.
func NewSession(d deck.Device, r deck.Renderer, opts ...SessionOption) *Session {
	s := &Session{
		Device:   d,
		Renderer: r,
		Focus:    NewFocusRegistry(),
		logger:   zap.NewNop().Sugar(),
	}
	for _, opt := range opts {
		opt(s)
	}
	dispatch := append([]DispatcherOption{WithLogger(s.logger.Named("dispatch"))}, s.dispatch...)
	s.Dispatcher = NewDispatcher(s.Focus, dispatch...)
	s.Focus.OnChange = func(from, to string) {
		s.logger.Debugw("Focus changed", "from", from, "to", to)
	}
	return s
}

// Logger returns the session logger.
func (s *Session) Logger() *zap.SugaredLogger {
	return s.logger
}

// NewView creates a view on this session's device.
func (s *Session) NewView(name string, opts ...ViewOption) *View {
	all := append([]ViewOption{WithViewLogger(s.logger.Named("view"))}, s.views...)
	return NewView(name, s.Device, s.Renderer, s.Focus, append(all, opts...)...)
}

// Do runs fn serialized with key event delivery. See Dispatcher.Do.
func (s *Session) Do(fn func() error) error {
	return s.Dispatcher.Do(fn)
}

// Start registers the dispatcher as the device key callback.
func (s *Session) Start() {
	s.Device.SetKeyCallback(s.Dispatcher.HandleKey)
}
