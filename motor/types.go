package motor

import (
	"errors"
	"net/http"

	"github.com/cespare/xxhash/v2"
)

var (
	// ErrRequestInFlight is returned by Dispatcher.Submit when a previous
	// request has not finished and its result has not been drained yet.
	ErrRequestInFlight = errors.New("a request is already in flight")

	// ErrNoResponse indicates a panel operation that needs a response
	// before one has arrived.
	ErrNoResponse = errors.New("request not sent")

	// ErrEmptyFilename indicates a save was confirmed with an empty path.
	ErrEmptyFilename = errors.New("filename cannot be empty")
)

// Request is a single parsed definition from a request file. Requests are
// never mutated after parsing; the dispatcher works on a clone.
type Request struct {
	Method  string
	URL     string
	Version string
	Headers http.Header
	Body    string
}

// Clone returns a deep copy so the worker never shares header maps with
// the UI goroutine.
func (r Request) Clone() Request {
	c := r
	c.Headers = r.Headers.Clone()
	return c
}

// Fingerprint identifies a request by method, url and body. Used as the
// grouping key in the execution history.
func (r Request) Fingerprint() uint64 {
	d := xxhash.New()
	_, _ = d.WriteString(r.Method)
	_, _ = d.WriteString(" ")
	_, _ = d.WriteString(r.URL)
	_, _ = d.WriteString("\n")
	_, _ = d.WriteString(r.Body)
	return d.Sum64()
}

// Response is the result of executing a Request. Ownership transfers to
// the panel that displays it.
type Response struct {
	Status  int
	Version string
	Headers http.Header
	Payload Payload
}

// Payload distinguishes decoded text from opaque bytes.
type Payload interface {
	isPayload()
}

// TextPayload holds a body decoded with a known charset.
type TextPayload struct {
	Charset string
	Text    string
}

func (TextPayload) isPayload() {}

// BytePayload holds a body that could not be treated as text. Extension
// is a file extension hint derived from the MIME subtype, without the dot.
type BytePayload struct {
	Bytes     []byte
	Extension string
}

func (BytePayload) isPayload() {}

// Result pairs a completed response with the index of the request that
// produced it, so the UI can route it back to the right panel.
type Result struct {
	Response *Response
	Index    int
}
