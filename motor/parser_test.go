package motor

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_SingleRequest(t *testing.T) {
	requests, err := Parse("GET http://x HTTP/1.1")
	require.NoError(t, err)
	require.Len(t, requests, 1)

	assert.Equal(t, "GET", requests[0].Method)
	assert.Equal(t, "http://x", requests[0].URL)
	assert.Equal(t, "HTTP/1.1", requests[0].Version)
	assert.Empty(t, requests[0].Body)
}

func TestParse_VersionDefaults(t *testing.T) {
	requests, err := Parse("GET https://api.example.com/items")
	require.NoError(t, err)
	require.Len(t, requests, 1)
	assert.Equal(t, "HTTP/1.1", requests[0].Version)
}

func TestParse_Methods(t *testing.T) {
	for _, method := range []string{"GET", "POST", "PUT", "DELETE", "PATCH", "HEAD", "OPTIONS"} {
		requests, err := Parse(method + " https://test.dev HTTP/1.1")
		require.NoError(t, err, method)
		require.Len(t, requests, 1)
		assert.Equal(t, method, requests[0].Method)
	}
}

func TestParse_Headers(t *testing.T) {
	input := `POST https://test.dev HTTP/1.1
authorization: Bearer xxxx
accept: application/json
accept: text/plain
`
	requests, err := Parse(input)
	require.NoError(t, err)
	require.Len(t, requests, 1)

	req := requests[0]
	assert.Equal(t, "Bearer xxxx", req.Headers.Get("Authorization"))
	assert.Equal(t, []string{"application/json", "text/plain"}, req.Headers.Values("Accept"))
}

func TestParse_Body(t *testing.T) {
	input := `POST https://test.dev HTTP/1.1
content-type: application/json

{"name": "quiver"}
`
	requests, err := Parse(input)
	require.NoError(t, err)
	require.Len(t, requests, 1)
	assert.Equal(t, `{"name": "quiver"}`, requests[0].Body)
}

func TestParse_MultipleRequests(t *testing.T) {
	input := `POST https://test.dev HTTP/1.1
authorization: token

GET https://test.dev HTTP/1.1
`
	requests, err := Parse(input)
	require.NoError(t, err)
	require.Len(t, requests, 2)
	assert.Equal(t, "POST", requests[0].Method)
	assert.Equal(t, "GET", requests[1].Method)
	assert.Equal(t, "token", requests[0].Headers.Get("Authorization"))
}

func TestParse_SeparatorsAndComments(t *testing.T) {
	input := `### create
# a comment
POST https://test.dev HTTP/1.1

{"a": 1}

### fetch
// another comment
GET https://test.dev/a HTTP/1.1
`
	requests, err := Parse(input)
	require.NoError(t, err)
	require.Len(t, requests, 2)
	assert.Equal(t, `{"a": 1}`, requests[0].Body)
	assert.Equal(t, "https://test.dev/a", requests[1].URL)
}

func TestParse_MultilineBodyRunsToSeparator(t *testing.T) {
	input := `POST https://test.dev HTTP/1.1

line one

line three
###
GET https://test.dev HTTP/1.1
`
	requests, err := Parse(input)
	require.NoError(t, err)
	require.Len(t, requests, 2)
	assert.Equal(t, "line one\n\nline three", requests[0].Body)
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"empty file", "", "no requests found"},
		{"only comments", "# nothing here\n", "no requests found"},
		{"bad method", "FETCH https://test.dev HTTP/1.1", "unknown method"},
		{"bad version", "GET https://test.dev 1.1", "malformed version"},
		{"bad header", "GET https://test.dev HTTP/1.1\nnot-a-header\n", "malformed header"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.input)
			require.Error(t, err)

			var parseErr *ParseError
			require.ErrorAs(t, err, &parseErr)
			assert.True(t, strings.Contains(parseErr.Msg, tt.want),
				"error %q should contain %q", parseErr.Msg, tt.want)
		})
	}
}

func TestParseError_IncludesLine(t *testing.T) {
	_, err := Parse("GET https://test.dev HTTP/1.1\nbroken header line\n")
	require.Error(t, err)

	var parseErr *ParseError
	require.ErrorAs(t, err, &parseErr)
	assert.Equal(t, 2, parseErr.Line)
	assert.Contains(t, parseErr.Error(), "line 2")
}
