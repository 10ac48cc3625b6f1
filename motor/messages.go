package motor

import "sync"

// MessageKind classifies a notification.
type MessageKind int

const (
	MessageInfo MessageKind = iota
	MessageError
)

// Message is one informational or error notification destined for the
// message popup.
type Message struct {
	Kind MessageKind
	Text string
}

// MessageQueue is an insertion-ordered notification queue. It is pushed to
// from both the UI goroutine and the dispatcher worker, so access is
// mutex-guarded. The UI pops at most one message per tick.
type MessageQueue struct {
	mu       sync.Mutex
	messages []Message
}

func NewMessageQueue() *MessageQueue {
	return &MessageQueue{}
}

// Info enqueues an informational message.
func (q *MessageQueue) Info(text string) {
	q.push(Message{Kind: MessageInfo, Text: text})
}

// Error enqueues an error message.
func (q *MessageQueue) Error(text string) {
	q.push(Message{Kind: MessageError, Text: text})
}

func (q *MessageQueue) push(m Message) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.messages = append(q.messages, m)
}

// Pop removes and returns the oldest message.
func (q *MessageQueue) Pop() (Message, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.messages) == 0 {
		return Message{}, false
	}
	m := q.messages[0]
	q.messages = q.messages[1:]
	return m, true
}

// Len reports the number of queued messages.
func (q *MessageQueue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.messages)
}
