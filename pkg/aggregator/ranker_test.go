package aggregator

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/topnews/pkg/domain"
)

func TestRank_PriorityAndFlat(t *testing.T) {
	t0 := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	entries := []domain.Entry{
		{Section: "world", Source: "W", Title: "world story", Published: tp(t0)},
		{Section: "ai", Source: "A", Title: "ai story", Published: tp(t0.Add(-time.Hour))},
	}

	t.Run("priority mode puts ai first despite older time", func(t *testing.T) {
		res := Rank(entries, 10, Policy{Mode: ModePriority})
		assert.Equal(t, []string{"ai story", "world story"}, titles(res))
	})

	t.Run("flat mode puts newer first", func(t *testing.T) {
		res := Rank(entries, 10, Policy{Mode: ModeFlat})
		assert.Equal(t, []string{"world story", "ai story"}, titles(res))
	})

	t.Run("custom priority section", func(t *testing.T) {
		more := append([]domain.Entry{{Section: "us", Source: "U", Title: "us story", Published: tp(t0.Add(-2 * time.Hour))}}, entries...)
		res := Rank(more, 10, Policy{Mode: ModePriority, PrioritySection: "us"})
		assert.Equal(t, []string{"us story", "world story", "ai story"}, titles(res))
	})
}

func TestRank_MissingTimeLast(t *testing.T) {
	t0 := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	entries := []domain.Entry{
		{Section: "world", Source: "A", Title: "undated"},
		{Section: "world", Source: "B", Title: "dated", Published: tp(t0)},
	}

	for _, mode := range []Mode{ModePriority, ModeFlat} {
		t.Run(mode.String(), func(t *testing.T) {
			res := Rank(entries, 10, Policy{Mode: mode})
			assert.Equal(t, []string{"dated", "undated"}, titles(res))
		})
	}

	t.Run("undated priority entry still before other sections", func(t *testing.T) {
		res := Rank(append(entries, domain.Entry{Section: "ai", Source: "C", Title: "ai undated"}), 10, Policy{Mode: ModePriority})
		assert.Equal(t, []string{"ai undated", "dated", "undated"}, titles(res))
	})
}

func TestRank_SourceTieBreakAndStability(t *testing.T) {
	t0 := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	entries := []domain.Entry{
		{Section: "world", Source: "Zeta", Title: "z1", Published: tp(t0)},
		{Section: "world", Source: "Alpha", Title: "a1", Published: tp(t0)},
		{Section: "world", Source: "Zeta", Title: "z2", Published: tp(t0)},
		{Section: "us", Source: "Alpha", Title: "a2", Published: tp(t0)},
		{Section: "us", Source: "Mid", Title: "m1"},
		{Section: "world", Source: "Mid", Title: "m2"},
	}

	res := Rank(entries, 10, Policy{Mode: ModeFlat})
	assert.Equal(t, []string{"a1", "a2", "z1", "z2", "m1", "m2"}, titles(res))

	// same input, same output, input untouched
	for range 5 {
		assert.Equal(t, res, Rank(entries, 10, Policy{Mode: ModeFlat}))
	}
	assert.Equal(t, "z1", entries[0].Title)
}

func TestRank_Truncation(t *testing.T) {
	t0 := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	var entries []domain.Entry
	for i := range 30 {
		entries = append(entries, domain.Entry{
			Section:   "world",
			Source:    fmt.Sprintf("src-%02d", i),
			Title:     fmt.Sprintf("story %02d", i),
			Published: tp(t0.Add(time.Duration(i) * time.Minute)),
		})
	}

	for _, limit := range []int{0, 1, 5, 29, 30, 31, 50} {
		for _, mode := range []Mode{ModePriority, ModeFlat} {
			res := Rank(entries, limit, Policy{Mode: mode})
			assert.LessOrEqual(t, len(res), limit)
			if len(entries) <= limit {
				assert.Len(t, res, len(entries), "nothing dropped when under the limit")
			}
		}
	}

	res := Rank(entries, 3, Policy{Mode: ModeFlat})
	require.Len(t, res, 3)
	assert.Equal(t, []string{"story 29", "story 28", "story 27"}, titles(res), "limit keeps the newest")

	assert.Empty(t, Rank(entries, -1, Policy{}))
	assert.Empty(t, Rank(nil, 10, Policy{}))
}

func TestClampLimit(t *testing.T) {
	tests := []struct{ in, want int }{
		{-5, 1}, {0, 1}, {1, 1}, {20, 20}, {50, 50}, {51, 50}, {1000, 50},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ClampLimit(tt.in), "input %d", tt.in)
	}
}
