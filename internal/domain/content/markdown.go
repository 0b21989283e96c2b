package content

import (
	"bytes"
	"html"
	"strings"
	"unicode/utf8"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
)

const PreviewLength = 200

var (
	md        = goldmark.New()
	ugcPolicy = bluemonday.UGCPolicy()
	strip     = bluemonday.StrictPolicy()
)

// RenderHTML converts page markdown into sanitized HTML.
func RenderHTML(body string) string {
	var buf bytes.Buffer
	if err := md.Convert([]byte(body), &buf); err != nil {
		return html.EscapeString(body)
	}
	return ugcPolicy.Sanitize(buf.String())
}

// PlainText renders markdown and drops every tag, leaving readable text.
func PlainText(body string) string {
	var buf bytes.Buffer
	if err := md.Convert([]byte(body), &buf); err != nil {
		return strings.Join(strings.Fields(body), " ")
	}
	text := html.UnescapeString(strip.Sanitize(buf.String()))
	return strings.Join(strings.Fields(text), " ")
}

// Preview is the plain text cut to n runes, with "..." when something was cut.
func Preview(body string, n int) string {
	text := PlainText(body)
	if utf8.RuneCountInString(text) <= n {
		return text
	}
	runes := []rune(text)
	return strings.TrimSpace(string(runes[:n])) + "..."
}
