package termdeck

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	_ "image/png" // icons are PNG files
	"os"
	"sync"

	"streamydeck/internal/deck"

	xdraw "golang.org/x/image/draw"
)

// Inner size of a key on screen, in terminal cells (border excluded).
const (
	KeyWidth  = 10
	KeyHeight = 4
)

// KeyImage is what Renderer produces: the key background, an optional
// icon thumbnail, and the label to print in text rows.
//
// The embedded image is the thumbnail, or a uniform background when the
// key has no icon, so a KeyImage can be pushed to any device.
type KeyImage struct {
	image.Image
	Label      string
	Background color.Color
	Placement  deck.Placement
	// ThumbRows is the number of text rows the thumbnail covers; each row
	// shows two pixel rows with half-block characters.
	ThumbRows int
}

// Renderer draws key faces for the terminal deck. Decoded icons are cached
// by path.
type Renderer struct {
	mu    sync.Mutex
	icons map[string]image.Image
}

var _ deck.Renderer = (*Renderer)(nil)

// NewRenderer creates a Renderer with an empty icon cache.
func NewRenderer() *Renderer {
	return &Renderer{icons: make(map[string]image.Image)}
}

// Render implements deck.Renderer.
func (r *Renderer) Render(_ deck.Geometry, f deck.Face) (image.Image, error) {
	bg := ParseColor(f.Background)
	img := &KeyImage{
		Image:      image.NewUniform(bg),
		Label:      f.Label,
		Background: bg,
		Placement:  f.Placement,
	}
	if f.TextOnly {
		img.Placement = deck.PlaceCenter
		return img, nil
	}

	rows := KeyHeight
	if f.Placement == deck.PlaceBottom {
		rows = KeyHeight - 1
	}
	icon, err := r.icon(f.IconPath)
	if err != nil {
		return nil, err
	}
	img.Image = Thumbnail(icon, bg, KeyWidth, rows*2)
	img.ThumbRows = rows
	return img, nil
}

func (r *Renderer) icon(path string) (image.Image, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if img, ok := r.icons[path]; ok {
		return img, nil
	}
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open icon: %w", err)
	}
	defer file.Close()
	img, _, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("decode icon %s: %w", path, err)
	}
	r.icons[path] = img
	return img, nil
}

// Thumbnail scales src onto a w x h canvas filled with bg.
func Thumbnail(src image.Image, bg color.Color, w, h int) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(dst, dst.Bounds(), image.NewUniform(bg), image.Point{}, draw.Src)
	xdraw.ApproxBiLinear.Scale(dst, dst.Bounds(), src, src.Bounds(), xdraw.Over, nil)
	return dst
}
