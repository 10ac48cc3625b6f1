package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss/v2"
)

func (m *AppModel) View() string {
	if m.quitting {
		return ""
	}
	if m.width == 0 || m.height == 0 {
		return "loading..."
	}

	contentHeight := m.height - chromeVerticalPadding
	if contentHeight < 1 {
		contentHeight = 1
	}
	columnWidth := m.width/2 - panelBorderPadding

	base := strings.Join([]string{
		m.renderTitleBar(),
		m.renderColumns(columnWidth, contentHeight),
		m.renderStatusBar(),
	}, "\n")

	panel := m.selectedPanel()
	if m.focus == focusResponsePanel && panel != nil && panel.PopupActive() {
		base = overlayCenter(base, panel.renderPopup(m.width), m.width, m.height)
	}
	if m.message != nil {
		base = overlayCenter(base, m.message.render(m.width), m.width, m.height)
	}
	return base
}

func (m *AppModel) renderTitleBar() string {
	title := TitleStyle.Render("quiver")
	file := SubtitleStyle.Render(fmt.Sprintf(" %s | (%d requests)", m.fileName, len(m.requests)))
	return " " + title + file
}

func (m *AppModel) renderColumns(width, height int) string {
	content := ""
	if panel := m.selectedPanel(); panel != nil {
		content = panel.View(width, height)
	}

	left := columnStyle(width, height, m.focus == focusRequestList).
		Render(m.list.View(width))
	right := columnStyle(width, height, m.focus == focusResponsePanel).
		Render(content)

	return lipgloss.JoinHorizontal(lipgloss.Top, left, right)
}

func columnStyle(width, height int, focused bool) lipgloss.Style {
	borderColor := RGBGrey
	if focused {
		borderColor = RGBBlue
	}
	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(borderColor).
		Padding(0, 1)
}

func (m *AppModel) renderStatusBar() string {
	legend := "↑/↓: Navigate | Enter: Select | q: Quit"
	if m.focus == focusResponsePanel {
		legend = "↑/↓: Scroll | Enter: Send | s: Save | Esc: Back | q: Quit"
	}

	position := ""
	if m.list.Len() > 0 {
		position = fmt.Sprintf("Request %d/%d", m.list.Selected()+1, m.list.Len())
	}

	working := ""
	if m.dispatcher.Busy() {
		working = m.spin.View() + "sending "
	}

	left := " " + HelpStyle.Render(legend)
	right := working + SubtitleStyle.Render(position) + " "

	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	return left + strings.Repeat(" ", gap) + right
}
