package tui

import (
	"image/color"
	"strings"

	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"
)

// popupContent is what a popup can wrap: any widget that reacts to keys
// and renders itself. The popup frame stays the same regardless of what
// sits inside it.
type popupContent interface {
	handleKey(msg tea.KeyPressMsg) bool
	view(width int) string
}

// popupBox frames content in a bordered rectangle sized as a percentage
// of the terminal width.
func popupBox(title, content string, borderColor color.Color, termWidth, widthPct int) string {
	width := termWidth * widthPct / 100
	if width < minPopupWidth {
		width = minPopupWidth
	}

	boxStyle := lipgloss.NewStyle().
		Width(width).
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(borderColor).
		Padding(0, 1)

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(borderColor)

	var body strings.Builder
	body.WriteString(titleStyle.Render(title))
	body.WriteString("\n\n")
	body.WriteString(content)

	return boxStyle.Render(body.String())
}

// overlayCenter stamps popup over the middle of base. bubbletea repaints
// whole frames, so modality is achieved by replacing the covered lines of
// the base view; the popup box itself fully clears what sits beneath it.
func overlayCenter(base, popup string, width, height int) string {
	if width <= 0 || height <= 0 {
		return popup
	}

	baseLines := padLines(base, width, height)
	canvas := lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, popup)
	canvasLines := padLines(canvas, width, height)

	for i := 0; i < height; i++ {
		if strings.TrimSpace(ansi.Strip(canvasLines[i])) != "" {
			baseLines[i] = canvasLines[i]
		}
	}
	return strings.Join(baseLines, "\n")
}

// padToWidth right-pads line with spaces to the given display width.
func padToWidth(line string, width int) string {
	if w := ansi.StringWidth(line); w < width {
		return line + strings.Repeat(" ", width-w)
	}
	return line
}

// padLines splits s into exactly height lines of display width width.
func padLines(s string, width, height int) []string {
	lines := strings.Split(s, "\n")
	if len(lines) > height {
		lines = lines[:height]
	}
	for len(lines) < height {
		lines = append(lines, "")
	}
	for i, line := range lines {
		if w := ansi.StringWidth(line); w < width {
			lines[i] = line + strings.Repeat(" ", width-w)
		}
	}
	return lines
}

// menu is a cyclic single-choice list used by the save-mode popup.
type menu struct {
	items  []string
	cursor int
}

func newMenu(items []string) *menu {
	return &menu{items: items}
}

func (m *menu) next() {
	m.cursor = (m.cursor + 1) % len(m.items)
}

func (m *menu) previous() {
	if m.cursor == 0 {
		m.cursor = len(m.items) - 1
		return
	}
	m.cursor--
}

func (m *menu) selected() int {
	return m.cursor
}

func (m *menu) handleKey(msg tea.KeyPressMsg) bool {
	switch msg.String() {
	case "down", "j":
		m.next()
	case "up", "k":
		m.previous()
	default:
		return false
	}
	return true
}

func (m *menu) view(width int) string {
	var content strings.Builder
	for i, item := range m.items {
		cursor := "  "
		line := cursor + item
		if i == m.cursor {
			line = SelectedStyle.Render("> " + item)
		}
		content.WriteString(line)
		if i < len(m.items)-1 {
			content.WriteString("\n")
		}
	}
	content.WriteString("\n\n")
	content.WriteString(HelpStyle.Render("↑/↓: Navigate | Enter: Select | Esc: Cancel"))
	return content.String()
}
