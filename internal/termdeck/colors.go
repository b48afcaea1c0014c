package termdeck

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Theme colors for the deck frame, following the 256-color palette.
const (
	ColorBorder = "241" // gray key bezel
	ColorLabel  = "252" // light gray label text
	ColorAccent = "86"  // status line
)

var namedColors = map[string]color.RGBA{
	"black":  {0x00, 0x00, 0x00, 0xff},
	"white":  {0xff, 0xff, 0xff, 0xff},
	"red":    {0xcc, 0x00, 0x00, 0xff},
	"green":  {0x00, 0xaa, 0x00, 0xff},
	"blue":   {0x00, 0x44, 0xcc, 0xff},
	"yellow": {0xcc, 0xcc, 0x00, 0xff},
	"orange": {0xff, 0x88, 0x00, 0xff},
	"purple": {0x88, 0x00, 0xcc, 0xff},
	"gray":   {0x80, 0x80, 0x80, 0xff},
	"grey":   {0x80, 0x80, 0x80, 0xff},
}

// ParseColor resolves a background tag: a color name or a #rrggbb value.
// Unknown tags are black.
func ParseColor(tag string) color.RGBA {
	tag = strings.ToLower(strings.TrimSpace(tag))
	if c, ok := namedColors[tag]; ok {
		return c
	}
	var r, g, b uint8
	if len(tag) == 7 && tag[0] == '#' {
		if _, err := fmt.Sscanf(tag, "#%02x%02x%02x", &r, &g, &b); err == nil {
			return color.RGBA{r, g, b, 0xff}
		}
	}
	return namedColors["black"]
}

// hexColor converts c to a lipgloss color.
func hexColor(c color.Color) lipgloss.Color {
	r, g, b, _ := c.RGBA()
	return lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", r>>8, g>>8, b>>8))
}

// dim scales c toward black by brightness percent.
func dim(c color.Color, percent int) color.Color {
	r, g, b, a := c.RGBA()
	scale := func(v uint32) uint8 { return uint8((v >> 8) * uint32(percent) / 100) }
	return color.RGBA{scale(r), scale(g), scale(b), uint8(a >> 8)}
}
