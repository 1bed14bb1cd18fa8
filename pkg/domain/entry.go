package domain

import (
	"strings"
	"time"

	"github.com/umputun/topnews/pkg/text"
)

// Entry is a single headline derived from one raw feed entry
type Entry struct {
	Section   string
	Source    string
	Title     string     // raw title, may contain markup or entities
	Link      string     // empty if the feed provides none
	Summary   string     // single markup-free sentence
	Published *time.Time // UTC, nil if unknown
}

// Valid reports whether the entry has a title or a link.
// Entries with neither are dropped before merge.
func (e Entry) Valid() bool {
	return e.Title != "" || e.Link != ""
}

// Key returns dedup key of the entry
func (e Entry) Key() DedupKey {
	return DedupKey{Title: text.Normalize(e.Title), Link: strings.TrimSpace(e.Link)}
}

// DedupKey identifies duplicates. Both parts must match, so entries with the same
// title and different links (or one link missing) are kept apart, while two
// entries with the same title and no links at all collapse into one.
type DedupKey struct {
	Title string
	Link  string
}
