package format

import (
	"fmt"
	"strings"
)

// htmlEscaper covers the three characters Telegram requires escaped in HTML
// parse mode message bodies.
var htmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
)

// EscapeHTML escapes user-supplied text for Telegram HTML parse mode.
func EscapeHTML(text string) string {
	return htmlEscaper.Replace(text)
}

// Bold wraps escaped text in <b> tags.
func Bold(text string) string {
	return "<b>" + EscapeHTML(text) + "</b>"
}

// Code wraps escaped text in <code> tags.
func Code(text string) string {
	return "<code>" + EscapeHTML(text) + "</code>"
}

// Strike wraps escaped text in <s> tags.
func Strike(text string) string {
	return "<s>" + EscapeHTML(text) + "</s>"
}

// Indexed renders a 1-based list index as inline code, matching the note
// listing style used across view output.
func Indexed(idx int, text string) string {
	return fmt.Sprintf("%s %s", Code(fmt.Sprintf("%d.", idx)), EscapeHTML(text))
}
