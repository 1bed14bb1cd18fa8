package aggregator

import (
	"context"

	"github.com/go-pkgz/lgr"
	"golang.org/x/sync/errgroup"

	"github.com/umputun/topnews/pkg/domain"
)

//go:generate moq -out mocks/fetcher.go -pkg mocks -skip-ensure -fmt goimports . Fetcher

// DefaultMaxWorkers limits concurrent feed fetches
const DefaultMaxWorkers = 5

// Fetcher retrieves and parses a single feed
type Fetcher interface {
	Fetch(ctx context.Context, url string) ([]domain.RawEntry, error)
}

// Merger fetches feeds of the requested sections and merges their entries into
// one deduplicated list, first occurrence wins.
//
// Feeds are fetched concurrently, up to maxWorkers at a time. Each fetch task owns
// its own result slot and nothing else; the seen set and merged list are built by
// the calling goroutine after all fetches are done, in section and source order,
// so the result doesn't depend on which fetch completes first.
type Merger struct {
	fetcher    Fetcher
	maxWorkers int
}

// fetchResult is the outcome of one source fetch, either entries or an error
type fetchResult struct {
	section string
	source  domain.Source
	entries []domain.RawEntry
	err     error
}

// NewMerger makes a merger with the given fetcher and concurrency limit
func NewMerger(fetcher Fetcher, maxWorkers int) *Merger {
	if maxWorkers <= 0 {
		maxWorkers = DefaultMaxWorkers
	}
	return &Merger{fetcher: fetcher, maxWorkers: maxWorkers}
}

// Merge fetches all sources of sections (in the given order) from the table and returns
// merged entries in encounter order. A failed source contributes no entries.
// The result is not truncated, ranking decides what fits the limit.
func (m *Merger) Merge(ctx context.Context, table domain.FeedTable, sections []string) []domain.Entry {
	results := m.plan(table, sections)

	var g errgroup.Group
	g.SetLimit(m.maxWorkers)
	for i := range results {
		g.Go(func() error {
			r := &results[i]
			r.entries, r.err = m.fetcher.Fetch(ctx, r.source.URL)
			return nil
		})
	}
	_ = g.Wait() // tasks report failures in their results, never through the group

	return m.fold(results)
}

// plan lists fetch tasks in processing order
func (m *Merger) plan(table domain.FeedTable, sections []string) []fetchResult {
	var res []fetchResult
	for _, section := range sections {
		sources := table.Sources(section)
		if len(sources) == 0 {
			lgr.Printf("[DEBUG] no sources for section %q", section)
			continue
		}
		for _, src := range sources {
			res = append(res, fetchResult{section: section, source: src})
		}
	}
	return res
}

// fold merges fetch results in order, dropping failed sources, invalid entries and duplicates
func (m *Merger) fold(results []fetchResult) []domain.Entry {
	seen := make(map[domain.DedupKey]struct{})
	merged := make([]domain.Entry, 0)
	var invalid, dups, failed int

	for _, r := range results {
		if r.err != nil {
			failed++
			lgr.Printf("[WARN] skip source %q (%s): %v", r.source.Name, r.section, r.err)
			continue
		}

		added := 0
		for _, raw := range r.entries {
			if raw == nil {
				continue
			}
			entry := Extract(r.section, r.source.Name, raw)
			if !entry.Valid() {
				invalid++
				continue
			}
			key := entry.Key()
			if _, ok := seen[key]; ok {
				dups++
				continue
			}
			seen[key] = struct{}{}
			merged = append(merged, entry)
			added++
		}
		lgr.Printf("[DEBUG] source %q (%s): %d entries, %d added", r.source.Name, r.section, len(r.entries), added)
	}

	lgr.Printf("[INFO] merged %d entries from %d sources, %d failed, %d duplicates, %d invalid",
		len(merged), len(results), failed, dups, invalid)
	return merged
}
