// Package deck defines the contract between the view model and a physical
// (or emulated) grid of image keys, plus the open/reset/close lifecycle
// shared by every device implementation.
package deck

import (
	"errors"
	"fmt"
	"image"
	"sync"

	"go.uber.org/zap"
)

var (
	// ErrNoDevice is returned by Select when no device is connected.
	ErrNoDevice = errors.New("no device connected")
	// ErrMultipleDevices is returned by Select when more than one device is connected.
	ErrMultipleDevices = errors.New("more than one device connected")
)

// KeyCallback receives every physical key transition.
// pressed is true on the press edge and false on release.
type KeyCallback func(d Device, key int, pressed bool)

// Geometry describes the key grid and the pixel size of a single key.
type Geometry struct {
	Rows    int
	Cols    int
	KeySize image.Point // pixels per key face
}

// Keys returns the number of keys on the device.
func (g Geometry) Keys() int {
	return g.Rows * g.Cols
}

// Device is a grid of independently addressable image keys.
//
// The embedded Locker is the scoped accessor around image pushes; callers
// hold it for the duration of a SetKeyImage call. Implementations deliver
// key events for one device serially, in arrival order.
type Device interface {
	sync.Locker

	Open() error
	Reset() error
	Close() error
	SetBrightness(percent int) error
	KeyLayout() (rows, cols int)
	Geometry() Geometry
	// SetKeyImage pushes img to the key. A nil img blanks the key.
	SetKeyImage(key int, img image.Image) error
	SetKeyCallback(cb KeyCallback)
	Type() string
	Serial() string
}

// Select returns the single connected device. Zero or several devices are
// reported as ErrNoDevice / ErrMultipleDevices.
func Select(devices []Device) (Device, error) {
	switch len(devices) {
	case 0:
		return nil, ErrNoDevice
	case 1:
		return devices[0], nil
	default:
		return nil, fmt.Errorf("%w: found %d", ErrMultipleDevices, len(devices))
	}
}

// Init opens and resets d, then applies the initial brightness.
func Init(d Device, brightness int, logger *zap.SugaredLogger) error {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	if err := d.Open(); err != nil {
		return fmt.Errorf("open device: %w", err)
	}
	if err := d.Reset(); err != nil {
		return fmt.Errorf("reset device: %w", err)
	}
	logger.Infow("Opened device", "type", d.Type(), "serial", d.Serial())
	if err := d.SetBrightness(ClampBrightness(brightness)); err != nil {
		return fmt.Errorf("set brightness: %w", err)
	}
	return nil
}

// Terminate resets d and releases its handle while holding the device lock.
// Key events delivered after Terminate are dropped by the device.
func Terminate(d Device) error {
	d.Lock()
	defer d.Unlock()
	if err := d.Reset(); err != nil {
		return fmt.Errorf("reset device: %w", err)
	}
	if err := d.Close(); err != nil {
		return fmt.Errorf("close device: %w", err)
	}
	return nil
}

// ClampBrightness bounds a brightness percentage to [0, 100].
func ClampBrightness(percent int) int {
	if percent < 0 {
		return 0
	}
	if percent > 100 {
		return 100
	}
	return percent
}
