package tui

import (
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea/v2"

	"github.com/pb33f/quiver/motor"
)

type panelState int

const (
	stateViewing panelState = iota
	stateChoosingSaveMode
	stateEnteringPath
)

type saveMode int

const (
	saveEntire saveMode = iota
	saveBody
	saveHAR
)

var saveModeLabels = []string{
	"Entire response",
	"Response body",
	"HAR entry",
}

// ResponsePanel owns the response for a single request: rendering it,
// scrolling through it, and the save workflow. One panel exists per
// request, so switching requests preserves scroll and response state.
type ResponsePanel struct {
	request  motor.Request
	response *motor.Response
	queue    *motor.MessageQueue

	state panelState
	mode  saveMode
	menu  *menu
	input *pathInput

	scroll int
}

func NewResponsePanel(request motor.Request, queue *motor.MessageQueue) *ResponsePanel {
	return &ResponsePanel{request: request, queue: queue}
}

// SetResponse installs a fresh response and resets the scroll position.
// A save flow still open at this point referred to the response being
// replaced, so it is cancelled rather than silently retargeted.
func (p *ResponsePanel) SetResponse(resp *motor.Response) {
	p.response = resp
	p.scroll = 0
	p.state = stateViewing
}

// Response returns the current response, nil when none has arrived.
func (p *ResponsePanel) Response() *motor.Response {
	return p.response
}

// PopupActive reports whether a save sub-popup is open. While one is, the
// panel owns the keyboard.
func (p *ResponsePanel) PopupActive() bool {
	return p.state != stateViewing
}

// HandleKey processes a key press. It reports whether the key was consumed.
func (p *ResponsePanel) HandleKey(msg tea.KeyPressMsg) bool {
	switch p.state {
	case stateChoosingSaveMode:
		p.handleMenuKey(msg)
		return true
	case stateEnteringPath:
		p.handleInputKey(msg)
		return true
	}

	switch msg.String() {
	case "down", "j":
		p.scrollDown()
	case "up", "k":
		p.scrollUp()
	case "s", "S":
		p.openSaveMenu()
	default:
		return false
	}
	return true
}

func (p *ResponsePanel) handleMenuKey(msg tea.KeyPressMsg) {
	switch msg.String() {
	case "esc":
		p.state = stateViewing
	case "enter":
		p.mode = saveMode(p.menu.selected())
		p.input = newPathInput()
		p.input.input.Placeholder = p.defaultFilename()
		p.state = stateEnteringPath
	default:
		p.menu.handleKey(msg)
	}
}

func (p *ResponsePanel) handleInputKey(msg tea.KeyPressMsg) {
	switch msg.String() {
	case "esc":
		p.state = stateViewing
	case "enter":
		if p.save(p.input.value()) {
			p.state = stateViewing
		}
	default:
		p.input.handleKey(msg)
	}
}

func (p *ResponsePanel) openSaveMenu() {
	if p.response == nil {
		p.queue.Error(motor.ErrNoResponse.Error())
		return
	}
	p.menu = newMenu(saveModeLabels)
	p.state = stateChoosingSaveMode
}

// save writes the response to path in the chosen mode. It reports whether
// the save completed; on failure the path input stays open so the user can
// correct the path.
func (p *ResponsePanel) save(path string) bool {
	if strings.TrimSpace(path) == "" {
		p.queue.Error(motor.ErrEmptyFilename.Error())
		return false
	}

	data, err := p.serialize()
	if err != nil {
		p.queue.Error(err.Error())
		return false
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		p.queue.Error(fmt.Sprintf("failed to save response: %v", err))
		return false
	}
	p.queue.Info(fmt.Sprintf("Saved to %s", path))
	return true
}

func (p *ResponsePanel) serialize() ([]byte, error) {
	switch p.mode {
	case saveBody:
		return payloadBytes(p.response.Payload), nil
	case saveHAR:
		return motor.MarshalHAR(motor.BuildHAR(p.request, p.response))
	default:
		return []byte(serializeResponse(p.response)), nil
	}
}

// serializeResponse flattens a response into its on-disk form: the status
// line, sorted headers, a blank line, then the body.
func serializeResponse(resp *motor.Response) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %d\n", resp.Version, resp.Status)
	for _, key := range sortedHeaderKeys(resp.Headers) {
		for _, value := range resp.Headers[key] {
			fmt.Fprintf(&b, "%s: %s\n", key, value)
		}
	}
	b.WriteString("\n\n")
	b.Write(payloadBytes(resp.Payload))
	return b.String()
}

func payloadBytes(payload motor.Payload) []byte {
	switch pl := payload.(type) {
	case motor.TextPayload:
		return []byte(pl.Text)
	case motor.BytePayload:
		return pl.Bytes
	}
	return nil
}

// defaultFilename suggests an output name based on the save mode and, for
// binary payloads, the content type.
func (p *ResponsePanel) defaultFilename() string {
	if p.mode == saveHAR {
		return "response.har"
	}
	if pl, ok := p.response.Payload.(motor.BytePayload); ok && p.mode == saveBody {
		return "response." + pl.Extension
	}
	return "response.txt"
}

func (p *ResponsePanel) scrollDown() {
	p.scroll++
}

func (p *ResponsePanel) scrollUp() {
	if p.scroll > 0 {
		p.scroll--
	}
}

// View renders the visible slice of the response for the given viewport
// size.
func (p *ResponsePanel) View(width, height int) string {
	if p.response == nil {
		return EmptyStyle.Render("<Empty>")
	}

	lines := p.contentLines(width)
	maxScroll := len(lines) - height
	if maxScroll < 0 {
		maxScroll = 0
	}
	if p.scroll > maxScroll {
		p.scroll = maxScroll
	}

	end := p.scroll + height
	if end > len(lines) {
		end = len(lines)
	}
	visible := lines[p.scroll:end]

	if len(lines) > height {
		visible = attachScrollbar(visible, p.scroll, len(lines), height, width)
	}
	return strings.Join(visible, "\n")
}

func (p *ResponsePanel) contentLines(width int) []string {
	resp := p.response
	lines := []string{
		StatusStyle(resp.Status).Bold(true).Render(fmt.Sprintf("%s %d", resp.Version, resp.Status)),
	}
	for _, key := range sortedHeaderKeys(resp.Headers) {
		for _, value := range resp.Headers[key] {
			lines = append(lines, HeaderKeyStyle.Render(key+":")+" "+value)
		}
	}
	lines = append(lines, "")
	lines = append(lines, p.bodyLines()...)
	return lines
}

func (p *ResponsePanel) bodyLines() []string {
	switch pl := p.response.Payload.(type) {
	case motor.TextPayload:
		return highlightBody(pl.Text, p.response.Headers.Get("Content-Type"))
	case motor.BytePayload:
		note := fmt.Sprintf("Raw bytes (%d), save the response body to inspect them", len(pl.Bytes))
		return []string{PlaceholderStyle.Render(note)}
	}
	return nil
}

func highlightBody(body, contentType string) []string {
	kind := detectContentType(contentType)
	if kind == "json" {
		body = prettyPrintJSON(body)
	}
	raw := strings.Split(body, "\n")
	if kind == "plain" {
		return raw
	}

	lines := make([]string, len(raw))
	for i, line := range raw {
		lines[i] = ApplySyntaxHighlightingToLine(line, kind == "yaml")
	}
	return lines
}

// attachScrollbar draws a thumb along the right edge marking the visible
// window within the full content.
func attachScrollbar(visible []string, scroll, total, height, width int) []string {
	thumbSize := height * height / total
	if thumbSize < 1 {
		thumbSize = 1
	}
	thumbStart := 0
	if total > height {
		thumbStart = scroll * (height - thumbSize) / (total - height)
	}

	out := make([]string, len(visible))
	for i, line := range visible {
		bar := "│"
		if i >= thumbStart && i < thumbStart+thumbSize {
			bar = "█"
		}
		out[i] = padToWidth(line, width-2) + " " + SubtitleStyle.Render(bar)
	}
	return out
}

func (p *ResponsePanel) renderPopup(termWidth int) string {
	var title string
	var body popupContent
	var widthPct int

	switch p.state {
	case stateChoosingSaveMode:
		title = " save response "
		body = p.menu
		widthPct = menuPopupWidthPct
	case stateEnteringPath:
		title = fmt.Sprintf(" output path (%s) ", strings.ToLower(saveModeLabels[p.mode]))
		body = p.input
		widthPct = inputPopupWidthPct
	default:
		return ""
	}
	return popupBox(title, body.view(termWidth), RGBBlue, termWidth, widthPct)
}
