package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/v2/spinner"
	tea "github.com/charmbracelet/bubbletea/v2"

	"github.com/pb33f/quiver/motor"
)

type focusArea int

const (
	focusRequestList focusArea = iota
	focusResponsePanel
)

// tickMsg drives the poll that drains dispatcher results and the message
// queue.
type tickMsg time.Time

// AppModel is the root bubbletea model: a request list on the left, one
// response panel per request on the right, and a dispatcher doing the work
// in the background.
type AppModel struct {
	fileName   string
	requests   []motor.Request
	list       *RequestList
	panels     []*ResponsePanel
	focus      focusArea
	queue      *motor.MessageQueue
	dispatcher *motor.Dispatcher
	history    *motor.History
	message    *messageDialog
	spin       spinner.Model

	width    int
	height   int
	quitting bool
}

func NewAppModel(fileName string, requests []motor.Request,
	dispatcher *motor.Dispatcher, queue *motor.MessageQueue, history *motor.History) *AppModel {

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = HeaderKeyStyle

	panels := make([]*ResponsePanel, len(requests))
	for i, req := range requests {
		panels[i] = NewResponsePanel(req, queue)
	}

	return &AppModel{
		fileName:   fileName,
		requests:   requests,
		list:       NewRequestList(requests),
		panels:     panels,
		queue:      queue,
		dispatcher: dispatcher,
		history:    history,
		spin:       s,
	}
}

func (m *AppModel) Init() tea.Cmd {
	return tea.Batch(tick(), m.spin.Tick)
}

func tick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m *AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case tickMsg:
		m.drainResult()
		m.drainMessage()
		return m, tick()

	case tea.KeyPressMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

// drainResult moves at most one finished response from the dispatcher into
// the panel of the request that produced it.
func (m *AppModel) drainResult() {
	res, ok := m.dispatcher.TryResult()
	if !ok {
		return
	}
	if res.Index >= 0 && res.Index < len(m.panels) {
		m.panels[res.Index].SetResponse(res.Response)
	}
}

// drainMessage promotes the oldest queued message to a dialog, one per
// tick, and only when no dialog is already showing.
func (m *AppModel) drainMessage() {
	if m.message != nil {
		return
	}
	if msg, ok := m.queue.Pop(); ok {
		m.message = newMessageDialog(msg)
	}
}

func (m *AppModel) handleKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	// an open message dialog captures everything
	if m.message != nil {
		m.message = nil
		return m, nil
	}

	if msg.String() == "ctrl+c" {
		return m.quit()
	}

	// a save popup owns the keyboard, including q
	panel := m.selectedPanel()
	if m.focus == focusResponsePanel && panel != nil && panel.PopupActive() {
		panel.HandleKey(msg)
		return m, nil
	}

	switch msg.String() {
	case "q", "Q":
		return m.quit()
	}

	if m.focus == focusRequestList {
		return m.handleListKey(msg)
	}
	return m.handlePanelKey(msg, panel)
}

func (m *AppModel) handleListKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "enter" {
		if m.list.Len() > 0 {
			m.focus = focusResponsePanel
		}
		return m, nil
	}
	m.list.HandleKey(msg.String())
	return m, nil
}

func (m *AppModel) handlePanelKey(msg tea.KeyPressMsg, panel *ResponsePanel) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.focus = focusRequestList
		return m, nil
	case "enter":
		m.submitSelected()
		return m, nil
	}
	if panel != nil {
		panel.HandleKey(msg)
	}
	return m, nil
}

// submitSelected hands the highlighted request to the dispatcher. A busy
// dispatcher rejects the submission and the rejection surfaces as an error
// message.
func (m *AppModel) submitSelected() {
	index := m.list.Selected()
	if err := m.dispatcher.Submit(m.requests[index], index); err != nil {
		m.queue.Error(err.Error())
	}
}

func (m *AppModel) selectedPanel() *ResponsePanel {
	if len(m.panels) == 0 {
		return nil
	}
	return m.panels[m.list.Selected()]
}

func (m *AppModel) quit() (tea.Model, tea.Cmd) {
	m.quitting = true
	return m, tea.Quit
}

// Cleanup stops the dispatcher worker and closes the history store. Call
// it after the program has exited.
func (m *AppModel) Cleanup() {
	m.dispatcher.Close()
	m.history.Close()
}
