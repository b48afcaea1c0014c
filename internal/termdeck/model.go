package termdeck

import (
	"fmt"
	"image"
	"image/color"
	"strings"

	"streamydeck/internal/deck"
	"streamydeck/internal/ui/textutil"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Outer size of a key on screen, border included.
const (
	cellWidth  = KeyWidth + 2
	cellHeight = KeyHeight + 2
)

type redrawMsg struct{}

// model draws the device state; it never touches views or elements.
type model struct {
	dev  *Device
	help help.Model

	status lipgloss.Style
	border lipgloss.Style
}

var _ tea.Model = (*model)(nil)

func newModel(d *Device) *model {
	return &model{
		dev:    d,
		help:   help.New(),
		status: lipgloss.NewStyle().Foreground(lipgloss.Color(ColorAccent)),
		border: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(ColorBorder)).
			Foreground(lipgloss.Color(ColorLabel)),
	}
}

// Init implements tea.Model
func (m *model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model
func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		if key, ok := m.dev.keymap.Lookup(msg.String()); ok {
			// Terminals report no key-up, so a keystroke is a press and a release.
			m.dev.Press(key, true)
			m.dev.Press(key, false)
		}

	case tea.MouseMsg:
		if msg.Button != tea.MouseButtonLeft {
			break
		}
		key, ok := m.keyAt(msg.X, msg.Y)
		if !ok {
			break
		}
		switch msg.Action {
		case tea.MouseActionPress:
			m.dev.Press(key, true)
		case tea.MouseActionRelease:
			m.dev.Press(key, false)
		}

	case tea.WindowSizeMsg:
		m.help.Width = msg.Width

	case redrawMsg:
	}
	return m, nil
}

// keyAt maps a screen position to a deck key.
func (m *model) keyAt(x, y int) (int, bool) {
	rows, cols := m.dev.KeyLayout()
	col, row := x/cellWidth, y/cellHeight
	if x < 0 || y < 0 || col >= cols || row >= rows {
		return 0, false
	}
	return row*cols + col, true
}

// View implements tea.Model
func (m *model) View() string {
	faces, brightness := m.dev.snapshot()
	rows, cols := m.dev.KeyLayout()

	var b strings.Builder
	for r := 0; r < rows; r++ {
		cells := make([]string, cols)
		for c := 0; c < cols; c++ {
			cells[c] = m.border.Render(strings.Join(keyLines(faces[r*cols+c], brightness), "\n"))
		}
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, cells...))
		b.WriteString("\n")
	}
	b.WriteString(m.status.Render(fmt.Sprintf("%s %s  brightness %d%%", m.dev.Type(), m.dev.Serial(), brightness)))
	b.WriteString("\n")
	b.WriteString(m.help.View(m.dev.keymap))
	return b.String()
}

// keyLines draws one key face as KeyHeight lines of KeyWidth columns.
func keyLines(img image.Image, brightness int) []string {
	if img == nil {
		return textutil.Block("", KeyWidth, KeyHeight, 0)
	}
	face, ok := img.(*KeyImage)
	if !ok {
		return halfBlocks(Thumbnail(img, color.Black, KeyWidth, KeyHeight*2), KeyHeight, brightness)
	}

	bg := lipgloss.NewStyle().Background(hexColor(dim(face.Background, brightness)))
	if face.ThumbRows == 0 {
		lines := textutil.Block(face.Label, KeyWidth, KeyHeight, 1)
		for i, l := range lines {
			lines[i] = bg.Render(l)
		}
		return lines
	}

	lines := halfBlocks(face.Image, face.ThumbRows, brightness)
	if face.Placement == deck.PlaceBottom {
		label := textutil.Block(face.Label, KeyWidth, KeyHeight-face.ThumbRows, 2)
		for _, l := range label {
			lines = append(lines, bg.Render(l))
		}
	}
	return lines
}

// halfBlocks renders rows text lines of img using upper half blocks: the
// foreground is the upper pixel and the background the lower one.
func halfBlocks(img image.Image, rows, brightness int) []string {
	bounds := img.Bounds()
	lines := make([]string, rows)
	for r := 0; r < rows; r++ {
		var b strings.Builder
		for x := 0; x < KeyWidth; x++ {
			top := img.At(bounds.Min.X+x, bounds.Min.Y+2*r)
			bottom := img.At(bounds.Min.X+x, bounds.Min.Y+2*r+1)
			b.WriteString(lipgloss.NewStyle().
				Foreground(hexColor(dim(top, brightness))).
				Background(hexColor(dim(bottom, brightness))).
				Render("▀"))
		}
		lines[r] = b.String()
	}
	return lines
}
