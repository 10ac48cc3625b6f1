package motor

import (
	"mime"
	"strings"

	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/unicode"
)

// textualSubtypes are non-text/* media types that still carry readable text.
var textualSubtypes = []string{"json", "xml", "yaml", "javascript", "x-www-form-urlencoded", "graphql"}

// DecodePayload turns raw response bytes into a Payload based on the
// Content-Type header. Bodies with a textual media type are decoded with
// their declared charset (UTF-8 when absent or unknown); everything else
// stays as raw bytes with an extension hint from the subtype.
func DecodePayload(contentType string, body []byte) Payload {
	mediaType, params, err := mime.ParseMediaType(contentType)
	if err != nil || !isTextual(mediaType) {
		return BytePayload{
			Bytes:     body,
			Extension: extensionHint(mediaType),
		}
	}

	charset := params["charset"]
	if charset == "" {
		charset = "utf-8"
	}

	text, resolved := decodeCharset(body, charset)
	return TextPayload{Charset: resolved, Text: text}
}

func isTextual(mediaType string) bool {
	if strings.HasPrefix(mediaType, "text/") {
		return true
	}
	_, subtype, found := strings.Cut(mediaType, "/")
	if !found {
		return false
	}
	for _, t := range textualSubtypes {
		if subtype == t || strings.HasSuffix(subtype, "+"+t) {
			return true
		}
	}
	return false
}

// decodeCharset decodes body with the named charset, falling back to a
// lossy UTF-8 interpretation when the label is unknown. Returns the text
// and the canonical name of the encoding actually used.
func decodeCharset(body []byte, charset string) (string, string) {
	enc, err := htmlindex.Get(charset)
	if err != nil {
		enc = unicode.UTF8
	}

	decoded, err := enc.NewDecoder().Bytes(body)
	if err != nil {
		return string(body), "utf-8"
	}

	name, err := htmlindex.Name(enc)
	if err != nil {
		name = "utf-8"
	}
	return string(decoded), name
}

// extensionHint maps a MIME subtype to a plausible file extension.
func extensionHint(mediaType string) string {
	_, subtype, found := strings.Cut(mediaType, "/")
	if !found || subtype == "" {
		return ""
	}
	if base, _, ok := strings.Cut(subtype, "+"); ok && base != "" {
		subtype = base
	}
	switch subtype {
	case "octet-stream":
		return "bin"
	case "jpeg":
		return "jpg"
	default:
		return subtype
	}
}
