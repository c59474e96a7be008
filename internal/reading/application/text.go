package application

import (
	"html"
	"regexp"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var strictPolicy = bluemonday.StrictPolicy()

var (
	codeBlock = regexp.MustCompile(`(?is)<script\b[^>]*>.*?</script\s*>|<style\b[^>]*>.*?</style\s*>`)
	markupTag = regexp.MustCompile(`(?i)</?(?:a|abbr|b|blockquote|br|code|div|em|h[1-6]|hr|i|li|ol|p|pre|s|small|span|strong|sub|sup|table|tbody|td|th|thead|tr|u|ul)(?:\s[^<>]*)?/?>`)
)

// DisplayText renders backend interpretation text for a terminal. Known HTML
// markup is stripped; a literal "<" in the prose is left alone.
func DisplayText(text string) string {
	raw := strings.TrimSpace(text)
	if !strings.Contains(raw, "<") {
		return html.UnescapeString(raw)
	}

	clean := strings.TrimSpace(html.UnescapeString(strictPolicy.Sanitize(raw)))
	plain := strings.TrimSpace(html.UnescapeString(markupTag.ReplaceAllString(codeBlock.ReplaceAllString(raw, ""), "")))
	if squash(clean) == squash(plain) {
		return clean
	}
	return plain
}

func squash(s string) string {
	return strings.Join(strings.Fields(s), "")
}
