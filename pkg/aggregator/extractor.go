package aggregator

import (
	"fmt"
	"html"
	"strings"
	"time"

	"github.com/araddon/dateparse"

	"github.com/umputun/topnews/pkg/domain"
	"github.com/umputun/topnews/pkg/text"
)

// maxTitleSummary limits summary built from the title when an entry has no content
const maxTitleSummary = 300

var (
	linkFields    = []string{"link", "id", "guid"}
	contentFields = []string{"summary", "description", "content"}
	timeFields    = []string{"published", "updated"}
)

// Extract derives an entry from a raw feed record. It never fails, a field
// that can't be derived is left empty.
func Extract(section, source string, raw domain.RawEntry) domain.Entry {
	title, _ := raw.Field("title")
	return domain.Entry{
		Section:   section,
		Source:    source,
		Title:     title,
		Link:      bestLink(raw),
		Summary:   summarize(raw, title),
		Published: publishedTime(raw),
	}
}

// bestLink returns the first non-blank of link, id and guid fields,
// falling back to the first href in the links list
func bestLink(raw domain.RawEntry) string {
	for _, key := range linkFields {
		if v, ok := raw.Field(key); ok && strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
	}

	links, _ := raw.FieldList("links")
	for _, l := range links {
		if l == nil {
			continue
		}
		if href, ok := l.Field("href"); ok && strings.TrimSpace(href) != "" {
			return strings.TrimSpace(href)
		}
	}
	return ""
}

// summarize returns the first sentence of the entry content, or the cleaned
// and truncated title if there is no usable content
func summarize(raw domain.RawEntry, title string) string {
	var parts []string
	for _, key := range contentFields {
		parts = append(parts, textValues(raw, key)...)
	}

	if len(parts) > 0 {
		plain := text.StripMarkup(html.UnescapeString(strings.Join(parts, " ")))
		if first := text.CollapseSpace(text.FirstSentence(strings.TrimSpace(plain))); first != "" {
			return first
		}
	}

	plainTitle := text.CollapseSpace(text.StripMarkup(html.UnescapeString(title)))
	return text.Truncate(plainTitle, maxTitleSummary)
}

// textValues returns non-empty text of a field which may be either a string
// or a list of content blocks carrying "value"
func textValues(raw domain.RawEntry, key string) []string {
	if v, ok := raw.Field(key); ok {
		if v == "" {
			return nil
		}
		return []string{v}
	}

	blocks, _ := raw.FieldList(key)
	res := make([]string, 0, len(blocks))
	for _, b := range blocks {
		if b == nil {
			continue
		}
		if v, ok := b.Field("value"); ok && v != "" {
			res = append(res, v)
		}
	}
	return res
}

// publishedTime parses published timestamp, or updated if published is missing.
// An unparsable timestamp makes the time unknown.
func publishedTime(raw domain.RawEntry) *time.Time {
	for _, key := range timeFields {
		v, ok := raw.Field(key)
		if !ok || strings.TrimSpace(v) == "" {
			continue
		}
		ts, err := parseTime(strings.TrimSpace(v))
		if err != nil {
			return nil
		}
		return &ts
	}
	return nil
}

// parseTime parses a timestamp in any common feed format, zone-less values are UTC
func parseTime(v string) (ts time.Time, err error) {
	// dateparse panics on some malformed inputs
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("parse time %q: %v", v, r)
		}
	}()

	ts, err = dateparse.ParseIn(v, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse time %q: %w", v, err)
	}
	return ts.UTC(), nil
}
