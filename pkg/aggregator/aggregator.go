// Package aggregator merges headlines from many feeds into one deduplicated, ranked list.
//
// A run fetches every source of the requested sections, extracts entries from raw
// feed records, drops invalid entries and duplicates (first occurrence wins) and
// orders the rest by the ranking policy, truncated to the limit. Nothing is kept
// between runs.
package aggregator

import (
	"context"
	"strings"
	"unicode"

	"github.com/go-pkgz/lgr"

	"github.com/umputun/topnews/pkg/domain"
)

// DefaultSections is the section order used when none are requested
var DefaultSections = []string{domain.SectionAI, domain.SectionUS, domain.SectionWorld}

// Aggregator runs merge and rank over a fixed feed table
type Aggregator struct {
	merger          *Merger
	table           domain.FeedTable
	prioritySection string
}

// Params configures Aggregator
type Params struct {
	Fetcher         Fetcher
	Table           domain.FeedTable
	MaxWorkers      int
	PrioritySection string
}

// Request defines a single aggregation run
type Request struct {
	Sections []string // DefaultSections if empty
	Limit    int      // clamped to [MinLimit, MaxLimit]
	Mode     Mode
}

// New makes an aggregator
func New(params Params) *Aggregator {
	return &Aggregator{
		merger:          NewMerger(params.Fetcher, params.MaxWorkers),
		table:           params.Table,
		prioritySection: params.PrioritySection,
	}
}

// Run fetches, merges and ranks entries for the request
func (a *Aggregator) Run(ctx context.Context, req Request) []domain.Entry {
	sections := req.Sections
	if len(sections) == 0 {
		sections = DefaultSections
	}
	limit := ClampLimit(req.Limit)

	lgr.Printf("[DEBUG] aggregate sections %v, limit %d, mode %s", sections, limit, req.Mode)
	merged := a.merger.Merge(ctx, a.table, sections)
	return Rank(merged, limit, Policy{Mode: req.Mode, PrioritySection: a.prioritySection})
}

// Title makes a list title from section names, i.e. "Top News (AI, U.S., World)"
func Title(sections []string) string {
	names := make([]string, 0, len(sections))
	for _, s := range sections {
		names = append(names, displayName(s))
	}
	return "Top News (" + strings.Join(names, ", ") + ")"
}

func displayName(section string) string {
	switch section {
	case domain.SectionAI:
		return "AI"
	case domain.SectionUS:
		return "U.S."
	case domain.SectionWorld:
		return "World"
	}
	return titleCase(section)
}

// titleCase upper-cases the first letter of every word and lower-cases the rest
func titleCase(s string) string {
	var sb strings.Builder
	prevLetter := false
	for _, r := range s {
		if prevLetter {
			sb.WriteRune(unicode.ToLower(r))
		} else {
			sb.WriteRune(unicode.ToUpper(r))
		}
		prevLetter = unicode.IsLetter(r)
	}
	return sb.String()
}
