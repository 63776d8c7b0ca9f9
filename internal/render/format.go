package render

import (
	"net/url"
	"strings"
	"time"

	"golang.org/x/net/html"
	"golang.org/x/net/publicsuffix"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// dateLayouts are tried in order. The calendar date written in the input is
// kept as-is (no conversion to the host zone) so every host agrees.
var dateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"2006-01",
}

// FormatDate renders an ISO date as "Mar 15, 2023". ok is false for empty
// input. Unparseable input is returned trimmed rather than dropped.
func FormatDate(iso string) (display string, ok bool) {
	iso = strings.TrimSpace(iso)
	if iso == "" {
		return "", false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, iso); err == nil {
			return t.Format("Jan 2, 2006"), true
		}
	}
	return iso, true
}

// StripProtocol turns "https://www.example.com/" into "example.com" for
// display text. Link targets keep the original URL.
func StripProtocol(u string) string {
	s := strings.TrimSpace(u)
	lower := strings.ToLower(s)
	switch {
	case strings.HasPrefix(lower, "https://"):
		s = s[len("https://"):]
	case strings.HasPrefix(lower, "http://"):
		s = s[len("http://"):]
	}
	if strings.HasPrefix(strings.ToLower(s), "www.") {
		s = s[len("www."):]
	}
	return strings.TrimSuffix(s, "/")
}

// EnsureScheme prefixes https:// to anything without an http(s) scheme, which
// also neutralises other schemes in href attributes.
func EnsureScheme(u string) string {
	s := strings.TrimSpace(u)
	if s == "" {
		return ""
	}
	lower := strings.ToLower(s)
	if strings.HasPrefix(lower, "https://") || strings.HasPrefix(lower, "http://") {
		return s
	}
	return "https://" + s
}

// JoinPresent joins the non-blank parts with sep, preserving order.
func JoinPresent(sep string, parts ...string) string {
	present := make([]string, 0, len(parts))
	for _, p := range parts {
		if strings.TrimSpace(p) != "" {
			present = append(present, p)
		}
	}
	return strings.Join(present, sep)
}

// Capitalize title-cases a role such as "full stack" -> "Full Stack".
func Capitalize(role string) string {
	// A Caser is stateful, so one is built per call.
	return cases.Title(language.English).String(strings.TrimSpace(role))
}

// LinkLabel returns a short label (eTLD+1) for a link, e.g.
// "https://www.credly.com/badges/123" -> "credly.com".
func LinkLabel(u string) string {
	s := EnsureScheme(u)
	if s == "" {
		return ""
	}
	parsed, err := url.Parse(s)
	if err != nil || parsed.Hostname() == "" {
		return StripProtocol(u)
	}
	host := parsed.Hostname()
	if etld, err := publicsuffix.EffectiveTLDPlusOne(host); err == nil {
		return strings.TrimPrefix(etld, "www.")
	}
	return strings.TrimPrefix(host, "www.")
}

// escape HTML-escapes plain text (names, titles, URLs) for embedding.
func escape(s string) string {
	return html.EscapeString(strings.TrimSpace(s))
}
