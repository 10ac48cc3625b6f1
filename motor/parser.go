package motor

import (
	"fmt"
	"net/http"
	"strings"
)

// ParseError reports the line on which a request file stopped making sense.
type ParseError struct {
	Line int
	Msg  string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d: %s", e.Line, e.Msg)
}

var validMethods = map[string]bool{
	"GET":     true,
	"POST":    true,
	"PUT":     true,
	"DELETE":  true,
	"PATCH":   true,
	"HEAD":    true,
	"OPTIONS": true,
}

// parser state within a single request block
type parseState int

const (
	stateBetween parseState = iota // waiting for the next request line
	stateHeaders                   // reading headers
	stateBody                      // reading body lines
)

// Parse reads a request file and returns its requests in file order.
//
// The grammar is the usual .http one: a request line `METHOD URL [HTTP/x.y]`,
// header lines `Key: Value`, a blank line, then the body. `###` lines and
// blank lines separate requests; `#` and `//` lines between requests are
// comments. The version defaults to HTTP/1.1 when omitted.
func Parse(input string) ([]Request, error) {
	var (
		requests []Request
		current  *Request
		body     []string
		state    = stateBetween
	)

	flush := func() {
		if current == nil {
			return
		}
		current.Body = strings.Join(body, "\n")
		requests = append(requests, *current)
		current = nil
		body = nil
		state = stateBetween
	}

	lines := strings.Split(input, "\n")
	for i, raw := range lines {
		line := strings.TrimRight(raw, "\r")
		lineNo := i + 1

		if strings.HasPrefix(line, "###") {
			flush()
			continue
		}

		switch state {
		case stateBetween:
			trimmed := strings.TrimSpace(line)
			if trimmed == "" || strings.HasPrefix(trimmed, "#") || strings.HasPrefix(trimmed, "//") {
				continue
			}
			req, err := parseRequestLine(trimmed, lineNo)
			if err != nil {
				return nil, err
			}
			current = req
			state = stateHeaders

		case stateHeaders:
			if strings.TrimSpace(line) == "" {
				state = stateBody
				continue
			}
			if m, ok := requestLineStart(line); ok && m {
				// a new request line without a separator ends the previous one
				flush()
				req, err := parseRequestLine(strings.TrimSpace(line), lineNo)
				if err != nil {
					return nil, err
				}
				current = req
				state = stateHeaders
				continue
			}
			key, value, found := strings.Cut(line, ":")
			if !found {
				return nil, &ParseError{Line: lineNo, Msg: fmt.Sprintf("malformed header %q", line)}
			}
			current.Headers.Add(strings.TrimSpace(key), strings.TrimSpace(value))

		case stateBody:
			if m, ok := requestLineStart(line); ok && m && bodyBoundary(body) {
				// a request line after a blank line starts the next request
				flush()
				req, err := parseRequestLine(strings.TrimSpace(line), lineNo)
				if err != nil {
					return nil, err
				}
				current = req
				state = stateHeaders
				continue
			}
			body = append(body, line)
		}
	}
	flush()

	// trailing blank lines are block separators, not body content
	for i := range requests {
		requests[i].Body = strings.TrimRight(requests[i].Body, "\n")
	}

	if len(requests) == 0 {
		return nil, &ParseError{Line: 1, Msg: "no requests found"}
	}
	return requests, nil
}

// bodyBoundary reports whether the body so far ends in a blank line (or is
// empty), meaning a request line here belongs to a new request rather than
// to the body text.
func bodyBoundary(body []string) bool {
	if len(body) == 0 {
		return true
	}
	return strings.TrimSpace(body[len(body)-1]) == ""
}

// requestLineStart reports whether a line opens with a known HTTP method.
func requestLineStart(line string) (bool, bool) {
	fields := strings.Fields(line)
	if len(fields) < 2 {
		return false, false
	}
	return validMethods[fields[0]], true
}

func parseRequestLine(line string, lineNo int) (*Request, error) {
	fields := strings.Fields(line)
	if len(fields) < 2 {
		return nil, &ParseError{Line: lineNo, Msg: fmt.Sprintf("expected 'METHOD URL [VERSION]', got %q", line)}
	}
	method := strings.ToUpper(fields[0])
	if !validMethods[method] {
		return nil, &ParseError{Line: lineNo, Msg: fmt.Sprintf("unknown method %q", fields[0])}
	}

	version := "HTTP/1.1"
	if len(fields) >= 3 {
		if !strings.HasPrefix(fields[2], "HTTP/") {
			return nil, &ParseError{Line: lineNo, Msg: fmt.Sprintf("malformed version %q", fields[2])}
		}
		version = fields[2]
	}

	return &Request{
		Method:  method,
		URL:     fields[1],
		Version: version,
		Headers: make(http.Header),
	}, nil
}
