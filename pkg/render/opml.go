package render

import (
	"encoding/xml"
	"fmt"

	"github.com/umputun/topnews/pkg/domain"
)

type opmlOutline struct {
	XMLName  xml.Name      `xml:"outline"`
	Text     string        `xml:"text,attr"`
	Title    string        `xml:"title,attr,omitempty"`
	Type     string        `xml:"type,attr,omitempty"`
	XMLURL   string        `xml:"xmlUrl,attr,omitempty"`
	Outlines []opmlOutline `xml:"outline,omitempty"`
}

type opmlDoc struct {
	XMLName xml.Name `xml:"opml"`
	Version string   `xml:"version,attr"`
	Head    struct {
		Title string `xml:"title"`
	} `xml:"head"`
	Body struct {
		Outlines []opmlOutline `xml:"outline"`
	} `xml:"body"`
}

// OPML renders the feed table as an OPML subscription list, one outline group per section
func OPML(table domain.FeedTable, title string) (string, error) {
	doc := opmlDoc{Version: "2.0"}
	doc.Head.Title = title

	for _, sec := range table {
		group := opmlOutline{Text: sec.Section, Title: sec.Section}
		for _, src := range sec.Sources {
			group.Outlines = append(group.Outlines, opmlOutline{Text: src.Name, Title: src.Name, Type: "rss", XMLURL: src.URL})
		}
		doc.Body.Outlines = append(doc.Body.Outlines, group)
	}

	output, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal OPML: %w", err)
	}
	return xml.Header + string(output), nil
}
