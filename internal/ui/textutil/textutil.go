// Package textutil lays out key labels in terminal cells, unicode-aware.
package textutil

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

// TruncateEllipsis is the unicode ellipsis character used for truncation.
const TruncateEllipsis = "…"

// VisualWidth returns the number of terminal columns s occupies.
func VisualWidth(s string) int {
	return runewidth.StringWidth(s)
}

// VisualWidthStyled returns the visual width of a styled string.
// This accounts for ANSI escape codes and unicode characters.
func VisualWidthStyled(s string) int {
	return lipgloss.Width(s)
}

// Truncate truncates a string to fit within maxWidth visual columns.
// If truncation is needed, it appends the unicode ellipsis character (…).
func Truncate(s string, maxWidth int) string {
	if maxWidth <= 0 {
		return ""
	}
	if VisualWidth(s) <= maxWidth {
		return s
	}
	return runewidth.Truncate(s, maxWidth, TruncateEllipsis)
}

// Center pads s with spaces on both sides to width columns; the odd
// column goes to the right. Wider strings are truncated.
func Center(s string, width int) string {
	s = Truncate(s, width)
	gap := width - VisualWidth(s)
	if gap <= 0 {
		return s
	}
	left := gap / 2
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", gap-left)
}

// Block lays label out in a width x height box of centered lines.
// Lines beyond height are dropped. valign places the text block:
// 0 for top, 1 for middle, 2 for bottom.
func Block(label string, width, height, valign int) []string {
	var lines []string
	if label != "" {
		lines = strings.Split(label, "\n")
	}
	if len(lines) > height {
		lines = lines[:height]
	}
	top := 0
	switch valign {
	case 1:
		top = (height - len(lines)) / 2
	case 2:
		top = height - len(lines)
	}
	out := make([]string, height)
	blank := strings.Repeat(" ", width)
	for i := range out {
		j := i - top
		if j >= 0 && j < len(lines) {
			out[i] = Center(lines[j], width)
		} else {
			out[i] = blank
		}
	}
	return out
}
