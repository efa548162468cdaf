// Package htmltext reduces HTML-bearing artifact strings to plain text.
package htmltext

import (
	"html"
	"strings"

	xhtml "golang.org/x/net/html"
)

// Strip removes markup from s and returns the concatenated text content,
// entity-decoded and whitespace-trimmed. Plain strings pass through.
func Strip(s string) string {
	if s == "" {
		return ""
	}
	if !strings.ContainsAny(s, "<&") {
		return strings.TrimSpace(s)
	}

	var b strings.Builder
	tokenizer := xhtml.NewTokenizer(strings.NewReader(s))
	for {
		kind := tokenizer.Next()
		if kind == xhtml.ErrorToken {
			break
		}
		if kind == xhtml.TextToken {
			b.Write(tokenizer.Text())
		}
	}
	return strings.TrimSpace(collapseSpaces(b.String()))
}

// Decode resolves HTML entities in s without altering markup structure.
func Decode(s string) string {
	if !strings.Contains(s, "&") {
		return s
	}
	return html.UnescapeString(s)
}

func collapseSpaces(s string) string {
	if !strings.Contains(s, "  ") && !strings.ContainsAny(s, "\n\t\r") {
		return s
	}
	return strings.Join(strings.Fields(s), " ")
}
