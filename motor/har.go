package motor

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"time"

	"github.com/pb33f/harhar"
)

// BuildHAR wraps one request/response pair in a single-entry HTTP Archive
// document, the third save mode of the response panel.
func BuildHAR(req Request, resp *Response) *harhar.HAR {
	if resp == nil {
		return nil
	}
	return &harhar.HAR{
		Log: harhar.Log{
			Version: "1.2",
			Creator: harhar.Creator{
				Name:    "quiver",
				Version: "1.0",
			},
			Entries: []harhar.Entry{
				{
					Start:    time.Now().UTC().Format(time.RFC3339),
					Request:  harRequest(req),
					Response: harResponse(resp),
				},
			},
		},
	}
}

// MarshalHAR renders the archive as indented JSON, ready to write to disk.
func MarshalHAR(har *harhar.HAR) ([]byte, error) {
	data, err := json.MarshalIndent(har, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal HAR: %w", err)
	}
	return data, nil
}

func harRequest(req Request) harhar.Request {
	r := harhar.Request{
		Method:      req.Method,
		URL:         req.URL,
		HTTPVersion: req.Version,
		Headers:     headerPairs(map[string][]string(req.Headers)),
		QueryParams: queryPairs(req.URL),
	}
	if req.Body != "" {
		r.Body = harhar.BodyType{
			MIMEType: req.Headers.Get("Content-Type"),
			Content:  req.Body,
		}
		r.BodySize = len(req.Body)
	}
	return r
}

func harResponse(resp *Response) harhar.Response {
	r := harhar.Response{
		StatusCode:  resp.Status,
		StatusText:  http.StatusText(resp.Status),
		HTTPVersion: resp.Version,
		Headers:     headerPairs(map[string][]string(resp.Headers)),
	}

	switch p := resp.Payload.(type) {
	case TextPayload:
		r.Body = harhar.BodyResponseType{
			Size:     len(p.Text),
			MIMEType: resp.Headers.Get("Content-Type"),
			Content:  p.Text,
		}
	case BytePayload:
		// HAR bodies are text, opaque bytes travel as base64
		r.Body = harhar.BodyResponseType{
			Size:     len(p.Bytes),
			MIMEType: resp.Headers.Get("Content-Type"),
			Content:  base64.StdEncoding.EncodeToString(p.Bytes),
			Encoding: "base64",
		}
	}
	return r
}

// headerPairs flattens a header multimap into name/value pairs with a
// stable key order.
func headerPairs(headers map[string][]string) []harhar.NameValuePair {
	keys := make([]string, 0, len(headers))
	for k := range headers {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var pairs []harhar.NameValuePair
	for _, k := range keys {
		for _, v := range headers[k] {
			pairs = append(pairs, harhar.NameValuePair{Name: k, Value: v})
		}
	}
	return pairs
}

func queryPairs(rawURL string) []harhar.NameValuePair {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil
	}
	values := u.Query()

	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var pairs []harhar.NameValuePair
	for _, k := range keys {
		for _, v := range values[k] {
			pairs = append(pairs, harhar.NameValuePair{Name: k, Value: v})
		}
	}
	return pairs
}
