package deck_test

import (
	"errors"
	"image"
	"testing"

	"streamydeck/internal/deck"
	"streamydeck/internal/deck/decktest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelect(t *testing.T) {
	_, err := deck.Select(nil)
	assert.ErrorIs(t, err, deck.ErrNoDevice)

	one := decktest.New(3, 5)
	got, err := deck.Select([]deck.Device{one})
	require.NoError(t, err)
	assert.Same(t, one, got)

	_, err = deck.Select([]deck.Device{one, decktest.New(2, 3)})
	assert.ErrorIs(t, err, deck.ErrMultipleDevices)
}

func TestInit_OpensResetsAndSetsBrightness(t *testing.T) {
	d := decktest.New(3, 5)
	require.NoError(t, deck.Init(d, 30, nil))
	assert.True(t, d.Opened())
	assert.Equal(t, 1, d.Resets())
	assert.Equal(t, 30, d.Brightness())
}

func TestInit_ClampsBrightness(t *testing.T) {
	d := decktest.New(3, 5)
	require.NoError(t, deck.Init(d, 140, nil))
	assert.Equal(t, 100, d.Brightness())
}

func TestTerminate(t *testing.T) {
	d := decktest.New(3, 5)
	require.NoError(t, deck.Terminate(d))
	assert.Equal(t, 1, d.Resets())
	assert.True(t, d.Closed())
}

func TestClampBrightness(t *testing.T) {
	tests := []struct{ in, want int }{
		{-10, 0}, {0, 0}, {55, 55}, {100, 100}, {101, 100},
	}
	for _, tt := range tests {
		if got := deck.ClampBrightness(tt.in); got != tt.want {
			t.Errorf("ClampBrightness(%d) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestRendererFunc(t *testing.T) {
	boom := errors.New("boom")
	r := deck.RendererFunc(func(deck.Geometry, deck.Face) (img image.Image, err error) {
		return nil, boom
	})
	_, err := r.Render(deck.Geometry{}, deck.Face{})
	assert.ErrorIs(t, err, boom)
}
