package deck

import "image"

// Placement says where the label sits on a key face.
type Placement int

const (
	// PlaceCenter vertically centers the label (text-only keys).
	PlaceCenter Placement = iota
	// PlaceBottom draws the label a few pixels above the bottom edge, under the icon.
	PlaceBottom
	// PlaceNone suppresses the label line so the icon keeps the full face.
	PlaceNone
)

func (p Placement) String() string {
	switch p {
	case PlaceCenter:
		return "center"
	case PlaceBottom:
		return "bottom"
	case PlaceNone:
		return "none"
	default:
		return "unknown"
	}
}

// Face is everything a Renderer needs to draw one key.
type Face struct {
	IconPath   string
	FontPath   string
	Label      string // already laid out: text-only labels have spaces turned into newlines
	TextOnly   bool
	Background string
	FontSize   int
	Placement  Placement
}

// Renderer turns a key face into a device-native image.
type Renderer interface {
	Render(g Geometry, f Face) (image.Image, error)
}

// RendererFunc adapts a function to the Renderer interface.
type RendererFunc func(g Geometry, f Face) (image.Image, error)

// Render calls fn(g, f).
func (fn RendererFunc) Render(g Geometry, f Face) (image.Image, error) {
	return fn(g, f)
}
