// Package text reduces noisy feed text to comparable plain strings.
package text

import (
	"html"
	"regexp"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var (
	// strict policy drops every tag, spaces keep words from adjacent elements apart
	stripPolicy = bluemonday.StrictPolicy().AddSpaceWhenStrippingTag(true)

	nonWord     = regexp.MustCompile(`[^\p{L}\p{M}\p{N}_\s]+`)
	sentenceEnd = regexp.MustCompile(`[.!?]\s+`)
)

// Normalize reduces a title to its comparison key: markup stripped, entities decoded,
// lower-cased, punctuation runs replaced by a space and whitespace collapsed.
// Normalized text is a fixed point, Normalize(Normalize(s)) == Normalize(s).
func Normalize(s string) string {
	if s == "" {
		return ""
	}
	s = html.UnescapeString(StripMarkup(s))
	s = strings.ToLower(s)
	s = nonWord.ReplaceAllString(s, " ")
	return CollapseSpace(s)
}

// StripMarkup removes tags, replacing each with a space, and returns plain text.
// A '<' never closed by '>' is kept as text, as in "a<b".
func StripMarkup(s string) string {
	if s == "" {
		return ""
	}
	// sanitizer re-escapes text it keeps, undo it to get the plain text back
	return html.UnescapeString(stripPolicy.Sanitize(escapeUnclosed(s)))
}

// escapeUnclosed replaces '<' with "&lt;" when no '>' follows it before the next '<'
// or the end of s, otherwise the tokenizer reads the rest of s as a tag.
func escapeUnclosed(s string) string {
	if !strings.Contains(s, "<") {
		return s
	}
	var sb strings.Builder
	sb.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if s[i] == '<' {
			rest := s[i+1:]
			if end := strings.IndexAny(rest, "<>"); end < 0 || rest[end] == '<' {
				sb.WriteString("&lt;")
				continue
			}
		}
		sb.WriteByte(s[i])
	}
	return sb.String()
}

// CollapseSpace replaces whitespace runs with a single space and trims the result
func CollapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// FirstSentence returns text up to and including the first sentence-ending
// punctuation followed by whitespace, or the whole string if there is none
func FirstSentence(s string) string {
	loc := sentenceEnd.FindStringIndex(s)
	if loc == nil {
		return s
	}
	return s[:loc[0]+1]
}

// Truncate limits s to at most n characters
func Truncate(s string, n int) string {
	if n <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
