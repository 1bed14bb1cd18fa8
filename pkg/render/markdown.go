package render

import (
	"strings"

	"github.com/umputun/topnews/pkg/domain"
	"github.com/umputun/topnews/pkg/text"
)

// noLink is printed in place of a missing link
const noLink = "(no link)"

// Markdown renders entries as a bullet list, one-liner followed by an indented link line.
// Entries with neither summary nor title are skipped.
func Markdown(entries []domain.Entry) string {
	lines := make([]string, 0, len(entries))
	for _, e := range entries {
		line := oneLiner(e)
		if line == "" {
			continue
		}
		link := e.Link
		if link == "" {
			link = noLink
		}
		lines = append(lines, "- "+line+"  \n  "+link)
	}
	if len(lines) == 0 {
		return ""
	}
	return strings.Join(lines, "\n") + "\n"
}

// oneLiner returns summary, or title if summary is empty, with whitespace collapsed
func oneLiner(e domain.Entry) string {
	if e.Summary != "" {
		return text.CollapseSpace(e.Summary)
	}
	return text.CollapseSpace(e.Title)
}
