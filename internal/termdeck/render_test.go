package termdeck

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"streamydeck/internal/deck"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writePNG(t *testing.T, c color.Color) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 72, 72))
	for y := 0; y < 72; y++ {
		for x := 0; x < 72; x++ {
			img.Set(x, y, c)
		}
	}
	path := filepath.Join(t.TempDir(), "icon.png")
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, img))
	return path
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		tag  string
		want color.RGBA
	}{
		{"black", color.RGBA{0, 0, 0, 0xff}},
		{"Red", color.RGBA{0xcc, 0, 0, 0xff}},
		{"#102030", color.RGBA{0x10, 0x20, 0x30, 0xff}},
		{"chartreuse", color.RGBA{0, 0, 0, 0xff}},
		{"#zzzzzz", color.RGBA{0, 0, 0, 0xff}},
	}
	for _, tt := range tests {
		if got := ParseColor(tt.tag); got != tt.want {
			t.Errorf("ParseColor(%q) = %v, want %v", tt.tag, got, tt.want)
		}
	}
}

func TestRenderer_TextOnly(t *testing.T) {
	r := NewRenderer()
	img, err := r.Render(deck.Geometry{}, deck.Face{
		Label:      "Brightness\n50%",
		TextOnly:   true,
		Background: "blue",
		Placement:  deck.PlaceCenter,
	})
	require.NoError(t, err)

	face, ok := img.(*KeyImage)
	require.True(t, ok)
	assert.Equal(t, "Brightness\n50%", face.Label)
	assert.Equal(t, 0, face.ThumbRows)
	assert.Equal(t, ParseColor("blue"), face.Background)
}

func TestRenderer_IconWithLabel(t *testing.T) {
	path := writePNG(t, color.RGBA{0xff, 0, 0, 0xff})
	r := NewRenderer()

	img, err := r.Render(deck.Geometry{}, deck.Face{IconPath: path, Label: "Exit", Placement: deck.PlaceBottom})
	require.NoError(t, err)
	face := img.(*KeyImage)
	assert.Equal(t, KeyHeight-1, face.ThumbRows)
	assert.Equal(t, image.Rect(0, 0, KeyWidth, (KeyHeight-1)*2), face.Bounds())

	cr, cg, cb, _ := face.At(KeyWidth/2, 1).RGBA()
	assert.Equal(t, uint32(0xffff), cr)
	assert.Equal(t, uint32(0), cg)
	assert.Equal(t, uint32(0), cb)

	img, err = r.Render(deck.Geometry{}, deck.Face{IconPath: path, Placement: deck.PlaceNone})
	require.NoError(t, err)
	assert.Equal(t, KeyHeight, img.(*KeyImage).ThumbRows)
}

func TestRenderer_BadIcon(t *testing.T) {
	r := NewRenderer()
	_, err := r.Render(deck.Geometry{}, deck.Face{IconPath: filepath.Join(t.TempDir(), "none.png")})
	assert.Error(t, err)

	junk := filepath.Join(t.TempDir(), "junk.png")
	require.NoError(t, os.WriteFile(junk, []byte("not a png"), 0644))
	_, err = r.Render(deck.Geometry{}, deck.Face{IconPath: junk})
	assert.ErrorContains(t, err, "decode icon")
}

func TestRenderer_CachesIcons(t *testing.T) {
	path := writePNG(t, color.White)
	r := NewRenderer()
	_, err := r.Render(deck.Geometry{}, deck.Face{IconPath: path, Placement: deck.PlaceNone})
	require.NoError(t, err)

	require.NoError(t, os.Remove(path))
	_, err = r.Render(deck.Geometry{}, deck.Face{IconPath: path, Placement: deck.PlaceNone})
	assert.NoError(t, err, "second render must come from the cache")
}
