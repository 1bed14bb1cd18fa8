package aggregator

import (
	"sort"
	"time"

	"github.com/umputun/topnews/pkg/domain"
)

// limits for the number of ranked entries
const (
	MinLimit     = 1
	MaxLimit     = 50
	DefaultLimit = 20
)

// DefaultPrioritySection is the section ranked first in priority mode
const DefaultPrioritySection = domain.SectionAI

// Mode selects ordering policy
type Mode int

// ordering modes
const (
	ModePriority Mode = iota // priority section first, then newest first, then source name
	ModeFlat                 // newest first, then source name
)

// String returns mode name
func (m Mode) String() string {
	if m == ModeFlat {
		return "flat"
	}
	return "priority"
}

// Policy defines how entries are ordered
type Policy struct {
	Mode            Mode
	PrioritySection string // DefaultPrioritySection if empty
}

// ClampLimit bounds requested number of entries to [MinLimit, MaxLimit]
func ClampLimit(n int) int {
	return max(MinLimit, min(n, MaxLimit))
}

// Rank sorts a copy of entries by the policy and keeps at most limit of them.
// Entries with missing time sort after all dated ones; the sort is stable, so
// fully equal entries keep merge order.
func Rank(entries []domain.Entry, limit int, policy Policy) []domain.Entry {
	prioritySection := policy.PrioritySection
	if prioritySection == "" {
		prioritySection = DefaultPrioritySection
	}
	weight := func(e domain.Entry) int {
		if e.Section == prioritySection {
			return 0
		}
		return 1
	}

	res := make([]domain.Entry, len(entries))
	copy(res, entries)

	sort.SliceStable(res, func(i, j int) bool {
		a, b := res[i], res[j]
		if policy.Mode == ModePriority {
			if wa, wb := weight(a), weight(b); wa != wb {
				return wa < wb
			}
		}
		if c := compareNewest(a.Published, b.Published); c != 0 {
			return c < 0
		}
		return a.Source < b.Source
	})

	if limit < 0 {
		limit = 0
	}
	if len(res) > limit {
		res = res[:limit]
	}
	return res
}

// compareNewest orders newer times first and missing times last
func compareNewest(a, b *time.Time) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return 1
	case b == nil:
		return -1
	case a.After(*b):
		return -1
	case a.Before(*b):
		return 1
	}
	return 0
}
