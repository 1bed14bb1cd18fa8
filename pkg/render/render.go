// Package render turns the ranked entry list into presentation text. Every
// renderer is a pure function of the entries and the run title.
package render

import (
	"fmt"
	"strings"
	"time"

	"github.com/umputun/topnews/pkg/domain"
)

// Format is an output format name
type Format string

// supported formats
const (
	FormatMarkdown Format = "markdown"
	FormatHTML     Format = "html"
	FormatJSON     Format = "json"
	FormatCSV      Format = "csv"
	FormatRSS      Format = "rss"
	FormatAtom     Format = "atom"
)

// AllFormats lists formats written by all-formats mode, in write order
var AllFormats = []Format{FormatMarkdown, FormatHTML, FormatJSON, FormatCSV}

// Formats lists every supported format
var Formats = []Format{FormatMarkdown, FormatHTML, FormatJSON, FormatCSV, FormatRSS, FormatAtom}

// ParseFormat converts a format name, case-insensitive, to Format
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Formats {
		if f == known {
			return f, nil
		}
	}
	return "", fmt.Errorf("unknown format %q, expected one of %s", s, formatNames())
}

// Ext returns file extension for the format, with leading dot
func (f Format) Ext() string {
	switch f {
	case FormatMarkdown:
		return ".md"
	case FormatHTML:
		return ".html"
	case FormatJSON:
		return ".json"
	case FormatCSV:
		return ".csv"
	case FormatRSS, FormatAtom:
		return ".xml"
	}
	return ".txt"
}

// ContentType returns http content type for the format
func (f Format) ContentType() string {
	switch f {
	case FormatMarkdown:
		return "text/markdown; charset=utf-8"
	case FormatHTML:
		return "text/html; charset=utf-8"
	case FormatJSON:
		return "application/json; charset=utf-8"
	case FormatCSV:
		return "text/csv; charset=utf-8"
	case FormatRSS:
		return "application/rss+xml; charset=utf-8"
	case FormatAtom:
		return "application/atom+xml; charset=utf-8"
	}
	return "text/plain; charset=utf-8"
}

// Render produces the text of entries in the given format
func Render(f Format, entries []domain.Entry, title string) (string, error) {
	switch f {
	case FormatMarkdown:
		return Markdown(entries), nil
	case FormatHTML:
		return HTML(entries, title)
	case FormatJSON:
		return JSON(entries)
	case FormatCSV:
		return CSV(entries)
	case FormatRSS:
		return RSS(entries, title)
	case FormatAtom:
		return Atom(entries, title)
	}
	return "", fmt.Errorf("unknown format %q", f)
}

func formatNames() string {
	names := make([]string, 0, len(Formats))
	for _, f := range Formats {
		names = append(names, string(f))
	}
	return strings.Join(names, ", ")
}

// timestamp formats published time as RFC3339 in UTC, empty for nil
func timestamp(e domain.Entry) string {
	if e.Published == nil {
		return ""
	}
	return e.Published.UTC().Format(time.RFC3339)
}
