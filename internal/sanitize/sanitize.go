// Package sanitize cleans free-text request values before they are bound
// into SQL parameters.
package sanitize

import (
	"strings"

	"golang.org/x/net/html"
)

var escaper = strings.NewReplacer(
	"&", "&amp;",
	`"`, "&quot;",
	"'", "&#039;",
	"<", "&lt;",
	">", "&gt;",
)

// Text strips every markup tag from s and escapes the characters that have
// special meaning in HTML. Existing entities are escaped again, not decoded.
func Text(s string) string {
	return escaper.Replace(StripTags(s))
}

// StripTags removes tags, comments and declarations from s. The text between
// tags is kept byte for byte, including the body of <script> and <style>.
func StripTags(s string) string {
	if !strings.ContainsRune(s, '<') {
		return s
	}

	z := html.NewTokenizer(strings.NewReader(s))
	var b strings.Builder
	for {
		switch z.Next() {
		case html.ErrorToken:
			return b.String()
		case html.TextToken:
			b.Write(z.Raw())
		case html.StartTagToken:
			// Tags nested in script or style bodies are stripped too.
			z.NextIsNotRawText()
		}
	}
}
