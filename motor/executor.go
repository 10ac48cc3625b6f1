package motor

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const requestTimeout = 10 * time.Second

// Executor performs the actual network call for the dispatcher. It owns a
// single http.Client; compression is left to the server so the recorded
// payload matches the wire bytes.
type Executor struct {
	client *http.Client
}

func NewExecutor() *Executor {
	return &Executor{
		client: &http.Client{
			Timeout: requestTimeout,
			Transport: &http.Transport{
				DisableCompression: true,
			},
		},
	}
}

// Execute sends req and materializes the full response, decoding the body
// according to its Content-Type.
func (e *Executor) Execute(ctx context.Context, req Request) (*Response, error) {
	var body io.Reader
	if req.Body != "" {
		body = strings.NewReader(req.Body)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, req.URL, body)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}

	// json in, json out unless the request file says otherwise
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")
	for key, values := range req.Headers {
		httpReq.Header.Del(key)
		for _, v := range values {
			httpReq.Header.Add(key, v)
		}
	}

	resp, err := e.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	return &Response{
		Status:  resp.StatusCode,
		Version: resp.Proto,
		Headers: resp.Header.Clone(),
		Payload: DecodePayload(resp.Header.Get("Content-Type"), raw),
	}, nil
}
