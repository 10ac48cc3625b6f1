package tui

import (
	"encoding/json"
	"net/http"
	"os"
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pb33f/quiver/motor"
)

func textResponse(status int, body string) *motor.Response {
	return &motor.Response{
		Status:  status,
		Version: "HTTP/1.1",
		Headers: http.Header{"Content-Type": {"text/plain"}},
		Payload: motor.TextPayload{Charset: "utf-8", Text: body},
	}
}

func newTestPanel() (*ResponsePanel, *motor.MessageQueue) {
	queue := motor.NewMessageQueue()
	req := motor.Request{Method: "GET", URL: "http://localhost/x", Version: "HTTP/1.1", Headers: http.Header{}}
	return NewResponsePanel(req, queue), queue
}

func keyPress(k string) tea.KeyPressMsg {
	switch k {
	case "enter":
		return tea.KeyPressMsg{Code: tea.KeyEnter}
	case "esc":
		return tea.KeyPressMsg{Code: tea.KeyEscape}
	case "up":
		return tea.KeyPressMsg{Code: tea.KeyUp}
	case "down":
		return tea.KeyPressMsg{Code: tea.KeyDown}
	case "ctrl+c":
		return tea.KeyPressMsg{Code: 'c', Mod: tea.ModCtrl}
	}
	r := []rune(k)
	return tea.KeyPressMsg{Code: r[0], Text: k}
}

func typeString(p *ResponsePanel, s string) {
	for _, r := range s {
		p.HandleKey(tea.KeyPressMsg{Code: r, Text: string(r)})
	}
}

func TestSerializeResponse(t *testing.T) {
	resp := &motor.Response{
		Status:  200,
		Version: "HTTP/1.1",
		Headers: http.Header{
			"Content-Type":   {"text/plain"},
			"Cache-Control":  {"no-cache"},
			"X-Multi-Header": {"one", "two"},
		},
		Payload: motor.TextPayload{Charset: "utf-8", Text: "ok"},
	}

	want := "HTTP/1.1 200\n" +
		"Cache-Control: no-cache\n" +
		"Content-Type: text/plain\n" +
		"X-Multi-Header: one\n" +
		"X-Multi-Header: two\n" +
		"\n\nok"
	assert.Equal(t, want, serializeResponse(resp))
}

func TestResponsePanel_EmptyView(t *testing.T) {
	panel, _ := newTestPanel()
	assert.Contains(t, ansi.Strip(panel.View(40, 10)), "<Empty>")
}

func TestResponsePanel_ViewShowsStatusAndBody(t *testing.T) {
	panel, _ := newTestPanel()
	panel.SetResponse(textResponse(200, "ok"))

	view := ansi.Strip(panel.View(60, 20))
	assert.Contains(t, view, "HTTP/1.1 200")
	assert.Contains(t, view, "Content-Type: text/plain")
	assert.Contains(t, view, "ok")
}

func TestResponsePanel_BinaryPlaceholder(t *testing.T) {
	panel, _ := newTestPanel()
	panel.SetResponse(&motor.Response{
		Status:  200,
		Version: "HTTP/1.1",
		Headers: http.Header{"Content-Type": {"image/png"}},
		Payload: motor.BytePayload{Bytes: []byte{0x89, 0x50, 0x4e, 0x47}, Extension: "png"},
	})

	view := ansi.Strip(panel.View(60, 20))
	assert.Contains(t, view, "Raw bytes (4)")
	assert.NotContains(t, view, "\x89PNG")
}

func TestResponsePanel_ScrollSaturatesAtTop(t *testing.T) {
	panel, _ := newTestPanel()
	panel.SetResponse(textResponse(200, "line1\nline2\nline3"))

	panel.HandleKey(keyPress("up"))
	panel.HandleKey(keyPress("k"))
	assert.Equal(t, 0, panel.scroll)

	panel.HandleKey(keyPress("down"))
	panel.HandleKey(keyPress("j"))
	assert.Equal(t, 2, panel.scroll)
	panel.HandleKey(keyPress("up"))
	assert.Equal(t, 1, panel.scroll)
}

func TestResponsePanel_ScrollClampsToContent(t *testing.T) {
	panel, _ := newTestPanel()
	panel.SetResponse(textResponse(200, "a\nb"))

	for i := 0; i < 50; i++ {
		panel.HandleKey(keyPress("down"))
	}
	// rendering clamps the offset to the content
	panel.View(60, 10)
	assert.Equal(t, 0, panel.scroll, "short content should not scroll at all")
}

func TestResponsePanel_SaveWithoutResponse(t *testing.T) {
	panel, queue := newTestPanel()

	panel.HandleKey(keyPress("s"))
	assert.False(t, panel.PopupActive())

	msg, ok := queue.Pop()
	require.True(t, ok)
	assert.Equal(t, motor.MessageError, msg.Kind)
	assert.Contains(t, msg.Text, "request not sent")
}

func TestResponsePanel_SaveBody(t *testing.T) {
	panel, queue := newTestPanel()
	panel.SetResponse(textResponse(200, "hello world"))
	path := filepath.Join(t.TempDir(), "out.txt")

	panel.HandleKey(keyPress("s"))
	require.True(t, panel.PopupActive())

	// second entry is the body-only mode
	panel.HandleKey(keyPress("j"))
	panel.HandleKey(keyPress("enter"))
	typeString(panel, path)
	panel.HandleKey(keyPress("enter"))

	assert.False(t, panel.PopupActive())
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "hello world", string(data))

	msg, ok := queue.Pop()
	require.True(t, ok)
	assert.Equal(t, motor.MessageInfo, msg.Kind)
	assert.Equal(t, "Saved to "+path, msg.Text)
}

func TestResponsePanel_SaveEntireResponse(t *testing.T) {
	panel, _ := newTestPanel()
	panel.SetResponse(textResponse(200, "ok"))
	path := filepath.Join(t.TempDir(), "full.txt")

	panel.HandleKey(keyPress("s"))
	panel.HandleKey(keyPress("enter"))
	typeString(panel, path)
	panel.HandleKey(keyPress("enter"))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "HTTP/1.1 200\nContent-Type: text/plain\n\n\nok", string(data))
}

func TestResponsePanel_SaveHAR(t *testing.T) {
	panel, _ := newTestPanel()
	panel.SetResponse(textResponse(200, "ok"))
	path := filepath.Join(t.TempDir(), "entry.har")

	panel.HandleKey(keyPress("s"))
	panel.HandleKey(keyPress("j"))
	panel.HandleKey(keyPress("j"))
	panel.HandleKey(keyPress("enter"))
	typeString(panel, path)
	panel.HandleKey(keyPress("enter"))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal(data, &doc))
	log, ok := doc["log"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "1.2", log["version"])
}

func TestResponsePanel_EmptyPathKeepsInputOpen(t *testing.T) {
	panel, queue := newTestPanel()
	panel.SetResponse(textResponse(200, "ok"))

	panel.HandleKey(keyPress("s"))
	panel.HandleKey(keyPress("enter"))
	panel.HandleKey(keyPress("enter"))

	assert.True(t, panel.PopupActive(), "a rejected save should leave the input open")
	msg, ok := queue.Pop()
	require.True(t, ok)
	assert.Equal(t, motor.MessageError, msg.Kind)
}

func TestResponsePanel_WriteFailureKeepsInputOpen(t *testing.T) {
	panel, queue := newTestPanel()
	panel.SetResponse(textResponse(200, "ok"))

	panel.HandleKey(keyPress("s"))
	panel.HandleKey(keyPress("enter"))
	typeString(panel, filepath.Join(t.TempDir(), "missing", "dir", "out.txt"))
	panel.HandleKey(keyPress("enter"))

	assert.True(t, panel.PopupActive())
	msg, ok := queue.Pop()
	require.True(t, ok)
	assert.Equal(t, motor.MessageError, msg.Kind)
	assert.Contains(t, msg.Text, "failed to save response")
}

func TestResponsePanel_EscCancelsSaveFlow(t *testing.T) {
	panel, _ := newTestPanel()
	panel.SetResponse(textResponse(200, "ok"))
	path := filepath.Join(t.TempDir(), "never.txt")

	panel.HandleKey(keyPress("s"))
	panel.HandleKey(keyPress("enter"))
	typeString(panel, path)
	panel.HandleKey(keyPress("esc"))

	assert.False(t, panel.PopupActive())
	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err), "cancelled save must not create the file")
}

func TestResponsePanel_OverwriteCancelsSaveFlow(t *testing.T) {
	panel, _ := newTestPanel()
	panel.SetResponse(textResponse(200, "old"))
	path := filepath.Join(t.TempDir(), "out.txt")

	panel.HandleKey(keyPress("s"))
	panel.HandleKey(keyPress("j"))
	panel.HandleKey(keyPress("enter"))
	typeString(panel, path)

	// a re-sent request finishing mid-flow must not let the pending
	// save silently write a response the user never looked at
	panel.SetResponse(textResponse(200, "new"))
	assert.False(t, panel.PopupActive())

	panel.HandleKey(keyPress("enter")) // no longer confirms a save
	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err))

	// a fresh flow saves what is actually on screen
	panel.HandleKey(keyPress("s"))
	panel.HandleKey(keyPress("j"))
	panel.HandleKey(keyPress("enter"))
	typeString(panel, path)
	panel.HandleKey(keyPress("enter"))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "new", string(data))
}

func TestResponsePanel_DefaultFilenames(t *testing.T) {
	panel, _ := newTestPanel()
	panel.SetResponse(&motor.Response{
		Status:  200,
		Version: "HTTP/1.1",
		Headers: http.Header{},
		Payload: motor.BytePayload{Bytes: []byte{1}, Extension: "pdf"},
	})

	panel.mode = saveBody
	assert.Equal(t, "response.pdf", panel.defaultFilename())
	panel.mode = saveHAR
	assert.Equal(t, "response.har", panel.defaultFilename())
	panel.mode = saveEntire
	assert.Equal(t, "response.txt", panel.defaultFilename())
}
