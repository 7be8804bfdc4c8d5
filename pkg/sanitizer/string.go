package sanitizer

import (
	"html"
	"strings"
	"unicode"

	"github.com/microcosm-cc/bluemonday"
)

var strictPolicy = bluemonday.StrictPolicy()

func TrimAndNormalize(s string) string {
	s = strings.TrimSpace(s)

	if s == "" {
		return ""
	}

	var result strings.Builder
	var lastWasSpace bool

	for _, r := range s {
		if unicode.IsSpace(r) {
			if !lastWasSpace {
				result.WriteRune(' ')
				lastWasSpace = true
			}
		} else {
			result.WriteRune(r)
			lastWasSpace = false
		}
	}

	return result.String()
}

// PlainText strips every tag from s and returns readable text with entities
// decoded, suitable for drawing into a document.
func PlainText(s string) string {
	if s == "" {
		return ""
	}
	stripped := strictPolicy.Sanitize(s)
	return TrimAndNormalize(html.UnescapeString(stripped))
}
