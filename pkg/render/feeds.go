package render

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/feeds"

	"github.com/umputun/topnews/pkg/domain"
	"github.com/umputun/topnews/pkg/text"
)

// RSS renders entries as an RSS 2.0 document
func RSS(entries []domain.Entry, title string) (string, error) {
	res, err := syndication(entries, title).ToRss()
	if err != nil {
		return "", fmt.Errorf("generate rss: %w", err)
	}
	return res, nil
}

// Atom renders entries as an Atom 1.0 document
func Atom(entries []domain.Entry, title string) (string, error) {
	res, err := syndication(entries, title).ToAtom()
	if err != nil {
		return "", fmt.Errorf("generate atom: %w", err)
	}
	return res, nil
}

// syndication builds the feed for rss and atom. Feed time is the newest published
// entry so output depends on entries only.
func syndication(entries []domain.Entry, title string) *feeds.Feed {
	feed := &feeds.Feed{
		Title:       title,
		Link:        &feeds.Link{Href: ""},
		Description: title,
		Items:       make([]*feeds.Item, 0, len(entries)),
	}

	for _, e := range entries {
		item := &feeds.Item{
			Title:       e.Title,
			Link:        &feeds.Link{Href: e.Link},
			Author:      &feeds.Author{Name: e.Source},
			Description: e.Summary,
			Id:          itemID(e),
		}
		if item.Title == "" {
			item.Title = e.Summary
		}
		if e.Published != nil {
			item.Created = e.Published.UTC()
			if item.Created.After(feed.Created) {
				feed.Created = item.Created
			}
		}
		feed.Items = append(feed.Items, item)
	}
	if feed.Created.IsZero() {
		feed.Created = time.Unix(0, 0).UTC()
	}
	feed.Updated = feed.Created
	return feed
}

// itemID is the link, or a name-based uuid of section, source and normalized title
// for entries without one. feeds would otherwise make a random id on every call.
func itemID(e domain.Entry) string {
	if e.Link != "" {
		return e.Link
	}
	name := e.Section + "\x00" + e.Source + "\x00" + text.Normalize(e.Title)
	return "urn:uuid:" + uuid.NewSHA1(uuid.NameSpaceURL, []byte(name)).String()
}
