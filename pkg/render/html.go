package render

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"

	"github.com/umputun/topnews/pkg/domain"
)

//go:embed templates/news.html
var templatesFS embed.FS

var newsTmpl = template.Must(template.ParseFS(templatesFS, "templates/news.html"))

type htmlItem struct {
	Text   string
	Source string
	Link   string
}

// HTML renders entries as a minimal styled html page with the given title
func HTML(entries []domain.Entry, title string) (string, error) {
	items := make([]htmlItem, 0, len(entries))
	for _, e := range entries {
		txt := e.Summary
		if txt == "" {
			txt = e.Title
		}
		items = append(items, htmlItem{Text: txt, Source: e.Source, Link: e.Link})
	}

	var buf bytes.Buffer
	data := struct {
		Title string
		Items []htmlItem
	}{Title: title, Items: items}
	if err := newsTmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("execute html template: %w", err)
	}
	return buf.String(), nil
}
