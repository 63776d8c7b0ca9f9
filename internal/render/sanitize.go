package render

import (
	"regexp"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// richTextPolicy allows the markup a rich-text editor produces and nothing
// else. No attribute survives, so inline event handlers and styles go too.
var richTextPolicy = func() *bluemonday.Policy {
	p := bluemonday.NewPolicy()
	p.AllowElements("p", "br", "strong", "b", "em", "i", "u", "s", "ul", "ol", "li")
	return p
}()

var (
	javascriptScheme = regexp.MustCompile(`(?i)javascript:`)
	// bluemonday drops script content already; this also covers markup that
	// was entity-encoded in the input and decoded on the first pass.
	scriptBlock = regexp.MustCompile(`(?is)<script\b.*?</script\s*>`)
)

// maxSanitizePasses bounds the fixed-point loop in Sanitize.
const maxSanitizePasses = 4

// Sanitize strips unsafe markup from user- or AI-authored rich text. The
// result is still markup and is embedded as-is by the section composers.
// Sanitize never fails and Sanitize(Sanitize(x)) == Sanitize(x).
func Sanitize(raw string) string {
	out := sanitizeOnce(raw)
	for i := 0; i < maxSanitizePasses; i++ {
		next := sanitizeOnce(out)
		if next == out {
			break
		}
		out = next
	}
	return out
}

func sanitizeOnce(raw string) string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return ""
	}
	s = scriptBlock.ReplaceAllString(s, "")
	s = richTextPolicy.Sanitize(s)
	s = stripJavascript(s)
	return unwrapParagraph(strings.TrimSpace(s))
}

func stripJavascript(s string) string {
	for {
		next := javascriptScheme.ReplaceAllString(s, "")
		if next == s {
			return s
		}
		s = next
	}
}

// unwrapParagraph removes a lone <p>...</p> wrapper so single-line bullets
// don't pick up block spacing. Multiple paragraphs are left alone.
func unwrapParagraph(s string) string {
	if !strings.HasPrefix(s, "<p>") || !strings.HasSuffix(s, "</p>") {
		return s
	}
	if strings.Count(s, "<p>") != 1 || strings.Count(s, "</p>") != 1 {
		return s
	}
	return strings.TrimSpace(s[len("<p>") : len(s)-len("</p>")])
}
