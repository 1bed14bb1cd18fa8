package render

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/umputun/topnews/pkg/domain"
)

// jsonEntry is the json shape of a rendered entry, absent link and published are null
type jsonEntry struct {
	Section   string  `json:"section"`
	Source    string  `json:"source"`
	Title     string  `json:"title"`
	Link      *string `json:"link"`
	Summary   string  `json:"summary"`
	Published *string `json:"published"`
}

// JSON renders entries as an indented json array, non-ASCII text kept as is
func JSON(entries []domain.Entry) (string, error) {
	res := make([]jsonEntry, 0, len(entries))
	for _, e := range entries {
		je := jsonEntry{Section: e.Section, Source: e.Source, Title: e.Title, Summary: e.Summary}
		if e.Link != "" {
			link := e.Link
			je.Link = &link
		}
		if ts := timestamp(e); ts != "" {
			je.Published = &ts
		}
		res = append(res, je)
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(res); err != nil {
		return "", fmt.Errorf("encode json: %w", err)
	}
	return strings.TrimSuffix(buf.String(), "\n"), nil
}
