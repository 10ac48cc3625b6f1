// Copyright 2025 Dave Shanley / Quobix / Princess Beef Heavy Industries, LLC
// SPDX-License-Identifier: MIT

package tui

import (
	"bytes"
	"encoding/json"
	"strings"
)

// detectContentType classifies a MIME type as json, yaml or plain for the
// payload highlighter.
func detectContentType(mimeType string) string {
	lower := strings.ToLower(mimeType)

	if strings.Contains(lower, "json") {
		return "json"
	}
	if strings.Contains(lower, "yaml") || strings.Contains(lower, "yml") {
		return "yaml"
	}

	return "plain"
}

// prettyPrintJSON formats JSON with indentation, returning the input
// unchanged when it does not indent cleanly.
func prettyPrintJSON(jsonStr string) string {
	if jsonStr == "" {
		return jsonStr
	}

	var buf bytes.Buffer
	if err := json.Indent(&buf, []byte(jsonStr), "", "  "); err != nil {
		return jsonStr
	}

	return buf.String()
}

// HighlightYAMLKeyValue handles key-value pair highlighting for YAML
func HighlightYAMLKeyValue(line string) (string, bool) {
	colonIdx := strings.Index(line, ":")
	if colonIdx == -1 {
		return "", false
	}

	leadingWhitespace := ""
	contentStart := 0
	for i, r := range line {
		if r != ' ' && r != '\t' {
			leadingWhitespace = line[:i]
			contentStart = i
			break
		}
	}

	trimmedLine := strings.TrimRight(line, " \t\r\n")
	trailingWhitespace := line[len(trimmedLine):]

	content := trimmedLine[contentStart:]

	var styledContent string
	contentColonIdx := strings.Index(content, ":")
	if contentColonIdx != -1 {
		keyPart := content[:contentColonIdx+1]
		valuePart := content[contentColonIdx+1:]
		styledContent = SyntaxKeyStyle.Render(keyPart) + valuePart
	} else {
		styledContent = SyntaxKeyStyle.Render(content)
	}

	return leadingWhitespace + styledContent + trailingWhitespace, true
}

// HighlightJSONLine handles JSON syntax highlighting
func HighlightJSONLine(line string) string {
	leadingWhitespace := ""
	contentStart := 0
	for i, r := range line {
		if r != ' ' && r != '\t' {
			leadingWhitespace = line[:i]
			contentStart = i
			break
		}
	}

	trimmedLine := strings.TrimRight(line, " \t\r\n")
	trailingWhitespace := line[len(trimmedLine):]

	content := trimmedLine[contentStart:]

	// JSON key-value pattern: "key":
	if idx := strings.Index(content, "\":"); idx > 0 {
		keyStart := strings.LastIndex(content[:idx], "\"")
		if keyStart >= 0 {
			beforeKey := content[:keyStart]
			keyPart := content[keyStart : idx+2]
			valuePart := content[idx+2:]

			styledContent := styleBrackets(beforeKey) + SyntaxKeyStyle.Render(keyPart) + styleBrackets(valuePart)
			return leadingWhitespace + styledContent + trailingWhitespace
		}
	}

	return leadingWhitespace + styleBrackets(content) + trailingWhitespace
}

// styleBrackets styles { } in pink and [ ] in yellow, leaving all other
// characters unstyled.
func styleBrackets(text string) string {
	if text == "" {
		return text
	}

	var result strings.Builder
	for _, r := range text {
		switch r {
		case '{', '}':
			result.WriteString(SyntaxDashStyle.Render(string(r)))
		case '[', ']':
			result.WriteString(SyntaxNumberStyle.Render(string(r)))
		default:
			result.WriteRune(r)
		}
	}
	return result.String()
}

// ApplySyntaxHighlightingToLine applies syntax highlighting to a single line
func ApplySyntaxHighlightingToLine(line string, isYAML bool) string {
	if line == "" {
		return line
	}

	if isYAML {
		if result, handled := HighlightYAMLKeyValue(line); handled {
			return result
		}
		return line
	}

	return HighlightJSONLine(line)
}
