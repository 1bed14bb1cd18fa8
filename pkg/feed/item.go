package feed

import (
	"time"

	"github.com/mmcdole/gofeed"

	"github.com/umputun/topnews/pkg/domain"
)

// itemEntry exposes a gofeed item as domain.RawEntry.
//
// gofeed already folds RSS description and Atom summary into Description, and
// content:encoded and Atom content into Content, so "summary" and "content" are
// served from those and "description" is reported absent to avoid counting the
// same text twice. Both RSS guid and Atom id end up in GUID.
type itemEntry struct {
	item *gofeed.Item
}

// Field returns item field by name
func (e itemEntry) Field(name string) (string, bool) {
	it := e.item
	switch name {
	case "title":
		return present(it.Title)
	case "link":
		return present(it.Link)
	case "id", "guid":
		return present(it.GUID)
	case "summary":
		return present(it.Description)
	case "content":
		return present(it.Content)
	case "published":
		return timeField(it.PublishedParsed, it.Published)
	case "updated":
		return timeField(it.UpdatedParsed, it.Updated)
	}
	return "", false
}

// FieldList returns item links as records with href
func (e itemEntry) FieldList(name string) ([]domain.RawEntry, bool) {
	if name != "links" || len(e.item.Links) == 0 {
		return nil, false
	}
	res := make([]domain.RawEntry, 0, len(e.item.Links))
	for _, l := range e.item.Links {
		res = append(res, domain.MapEntry{"href": l})
	}
	return res, true
}

func present(v string) (string, bool) {
	return v, v != ""
}

// timeField prefers time parsed by gofeed, falling back to the raw string
func timeField(parsed *time.Time, raw string) (string, bool) {
	if parsed != nil {
		return parsed.UTC().Format(time.RFC3339), true
	}
	return present(raw)
}
