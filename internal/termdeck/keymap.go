package termdeck

import (
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
)

// keyRows are the keyboard rows laid over the deck grid, top to bottom.
var keyRows = []string{
	"12345678",
	"qwertyui",
	"asdfghjk",
	"zxcvbnm,",
}

// KeyMap maps keyboard keys onto deck keys, row by row.
type KeyMap struct {
	Keys []key.Binding // indexed by deck key
	Grid key.Binding   // summary of all mapped keys, for the short help
	Quit key.Binding
}

var _ help.KeyMap = KeyMap{}

// NewKeyMap lays keyRows over a rows x cols grid. Grids larger than the
// keyboard layout leave the extra keys unmapped (mouse only).
func NewKeyMap(rows, cols int) KeyMap {
	km := KeyMap{
		Keys: make([]key.Binding, rows*cols),
		Quit: key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
	}
	var all []string
	var summary string
	for r := 0; r < rows; r++ {
		if r < len(keyRows) {
			if summary != "" {
				summary += " "
			}
			summary += keyRows[r][:min(cols, len(keyRows[r]))]
		}
		for c := 0; c < cols; c++ {
			idx := r*cols + c
			if r >= len(keyRows) || c >= len(keyRows[r]) {
				km.Keys[idx] = key.NewBinding(key.WithDisabled())
				continue
			}
			k := string(keyRows[r][c])
			km.Keys[idx] = key.NewBinding(key.WithKeys(k), key.WithHelp(k, fmt.Sprintf("key %d", idx)))
			all = append(all, k)
		}
	}
	km.Grid = key.NewBinding(key.WithKeys(all...), key.WithHelp(summary, "press key"))
	return km
}

// Lookup returns the deck key bound to a keyboard key.
func (km KeyMap) Lookup(pressed string) (int, bool) {
	for idx, b := range km.Keys {
		if !b.Enabled() {
			continue
		}
		for _, k := range b.Keys() {
			if k == pressed {
				return idx, true
			}
		}
	}
	return 0, false
}

// ShortHelp implements help.KeyMap.
func (km KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{km.Grid, km.Quit}
}

// FullHelp implements help.KeyMap.
func (km KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{km.Keys, {km.Quit}}
}
