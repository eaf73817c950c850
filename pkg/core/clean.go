package core

import (
	"regexp"
	"strings"
	"time"
)

// epochDate is the fallback for missing or unparseable timestamps.
const epochDate = "1970-01-01"

var (
	colorOpenRegex = regexp.MustCompile(`\{color:[^}]+\}`)
	codeSpanRegex  = regexp.MustCompile(`(?s)\{\{.*?\}\}`)
	imageRegex     = regexp.MustCompile(`!\[?[^\]]*?!`)
	linkRegex      = regexp.MustCompile(`\[(.*?)\|[^\]]+\]`)
	newlinesRegex  = regexp.MustCompile(`\n+`)
)

// CleanText strips Jira wiki markup from text: color tags, {{...}} code
// spans, !...! image embeds, and [text|url] links (keeping the display
// text). Runs of newlines collapse to one and surrounding whitespace is
// trimmed.
func CleanText(text string) string {
	if text == "" {
		return ""
	}

	text = colorOpenRegex.ReplaceAllString(text, "")
	text = strings.ReplaceAll(text, "{color}", "")
	text = codeSpanRegex.ReplaceAllString(text, "")
	text = imageRegex.ReplaceAllString(text, "")
	text = linkRegex.ReplaceAllString(text, "$1")

	return strings.TrimSpace(newlinesRegex.ReplaceAllString(text, "\n"))
}

// jiraTimeLayouts covers the timestamp formats Jira Cloud emits for issue
// and comment created fields.
var jiraTimeLayouts = []string{
	"2006-01-02T15:04:05.999-0700",
	time.RFC3339,
}

// ParseJiraTime parses a Jira timestamp, falling back to the Unix epoch
// when the value is missing or malformed.
func ParseJiraTime(value string) time.Time {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Unix(0, 0).UTC()
	}

	for _, layout := range jiraTimeLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t
		}
	}

	return time.Unix(0, 0).UTC()
}

// FormatDate renders a timestamp as YYYY-MM-DD; the zero time maps to the
// Unix epoch date.
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return epochDate
	}
	return t.Format("2006-01-02")
}
