package tui

import (
	"fmt"
	"net/http"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss/v2"

	"github.com/pb33f/quiver/motor"
)

// RequestList shows every request parsed from the input file and tracks
// which one is selected. Navigation wraps at both ends.
type RequestList struct {
	requests []motor.Request
	cursor   int
}

func NewRequestList(requests []motor.Request) *RequestList {
	return &RequestList{requests: requests}
}

// Selected returns the index of the highlighted request.
func (l *RequestList) Selected() int {
	return l.cursor
}

// Len returns the number of requests in the list.
func (l *RequestList) Len() int {
	return len(l.requests)
}

// Next moves the cursor down, wrapping to the top after the last entry.
func (l *RequestList) Next() {
	if len(l.requests) == 0 {
		return
	}
	l.cursor = (l.cursor + 1) % len(l.requests)
}

// Previous moves the cursor up, wrapping to the bottom from the first entry.
func (l *RequestList) Previous() {
	if len(l.requests) == 0 {
		return
	}
	if l.cursor == 0 {
		l.cursor = len(l.requests) - 1
		return
	}
	l.cursor--
}

// HandleKey reacts to navigation keys. It reports whether the key was
// consumed.
func (l *RequestList) HandleKey(key string) bool {
	switch key {
	case "down", "j":
		l.Next()
	case "up", "k":
		l.Previous()
	default:
		return false
	}
	return true
}

// View renders the list. Each request occupies a block: the request line,
// its headers and, when present, a trimmed body preview.
func (l *RequestList) View(width int) string {
	if len(l.requests) == 0 {
		return EmptyStyle.Render("<Empty>")
	}

	var b strings.Builder
	for i, req := range l.requests {
		block := l.renderRequest(req, i == l.cursor, width)
		b.WriteString(block)
		if i < len(l.requests)-1 {
			b.WriteString("\n\n")
		}
	}
	return b.String()
}

func (l *RequestList) renderRequest(req motor.Request, selected bool, width int) string {
	marker := "  "
	if selected {
		marker = SelectedStyle.Render("> ")
	}

	line := fmt.Sprintf("%s %s %s",
		MethodStyle(req.Method).Bold(true).Render(req.Method),
		req.URL,
		SubtitleStyle.Render(req.Version))

	lines := []string{marker + line}
	for _, key := range sortedHeaderKeys(req.Headers) {
		for _, value := range req.Headers[key] {
			lines = append(lines, "  "+HeaderKeyStyle.Render(key+":")+" "+value)
		}
	}
	if req.Body != "" {
		for _, bodyLine := range strings.Split(req.Body, "\n") {
			lines = append(lines, "  "+SubtitleStyle.Render(truncateLine(bodyLine, width-4)))
		}
	}
	return strings.Join(lines, "\n")
}

func sortedHeaderKeys(headers http.Header) []string {
	keys := make([]string, 0, len(headers))
	for key := range headers {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

func truncateLine(line string, width int) string {
	if width <= 0 || lipgloss.Width(line) <= width {
		return line
	}
	runes := []rune(line)
	if len(runes) <= width {
		return line
	}
	return string(runes[:width-1]) + "…"
}
