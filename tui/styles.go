package tui

import (
	"github.com/charmbracelet/lipgloss/v2"
)

var (
	RGBBlue       = lipgloss.Color("45")
	RGBPink       = lipgloss.Color("201")
	RGBRed        = lipgloss.Color("196")
	RGBYellow     = lipgloss.Color("220")
	RGBGreen      = lipgloss.Color("46")
	RGBGrey       = lipgloss.Color("246")
	RGBSubtlePink = lipgloss.Color("#2a1a2a")
)

// General styles
var (
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(RGBPink)

	SubtitleStyle = lipgloss.NewStyle().
			Foreground(RGBGrey)

	HeaderKeyStyle = lipgloss.NewStyle().
			Foreground(RGBBlue)

	SelectedStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(RGBPink).
			Background(RGBSubtlePink)

	StatusOKStyle = lipgloss.NewStyle().
			Foreground(RGBGreen)

	StatusWarningStyle = lipgloss.NewStyle().
				Foreground(RGBYellow)

	StatusErrorStyle = lipgloss.NewStyle().
				Foreground(RGBRed)

	HelpStyle = lipgloss.NewStyle().
			Faint(true)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(RGBRed).
			Bold(true)

	EmptyStyle = lipgloss.NewStyle().
			Foreground(RGBYellow)

	PlaceholderStyle = lipgloss.NewStyle().
				Faint(true).
				Italic(true)
)

// Request method colors, matching the palette used for status codes
var (
	StyleMethodGreen  = lipgloss.NewStyle().Foreground(RGBGreen)  // GET
	StyleMethodYellow = lipgloss.NewStyle().Foreground(RGBYellow) // PATCH
	StyleMethodBlue   = lipgloss.NewStyle().Foreground(RGBBlue)   // PUT, POST
	StyleMethodRed    = lipgloss.NewStyle().Foreground(RGBRed)    // DELETE
	StyleMethodGrey   = lipgloss.NewStyle().Foreground(RGBGrey)   // HEAD, OPTIONS
)

// Syntax highlighting styles for JSON/YAML payloads
var (
	SyntaxKeyStyle    = lipgloss.NewStyle().Foreground(RGBBlue)
	SyntaxDashStyle   = lipgloss.NewStyle().Foreground(RGBPink)
	SyntaxNumberStyle = lipgloss.NewStyle().Foreground(RGBYellow)
)

// MethodStyle picks a color for an HTTP method.
func MethodStyle(method string) lipgloss.Style {
	switch method {
	case "GET":
		return StyleMethodGreen
	case "POST", "PUT":
		return StyleMethodBlue
	case "PATCH":
		return StyleMethodYellow
	case "DELETE":
		return StyleMethodRed
	default:
		return StyleMethodGrey
	}
}

// StatusStyle colors a response status: 2xx green, 3xx yellow, 4xx/5xx red.
func StatusStyle(status int) lipgloss.Style {
	switch {
	case status >= 200 && status < 300:
		return StatusOKStyle
	case status >= 300 && status < 400:
		return StatusWarningStyle
	case status >= 400:
		return StatusErrorStyle
	default:
		return lipgloss.NewStyle()
	}
}
