package aggregator

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/topnews/pkg/aggregator/mocks"
	"github.com/umputun/topnews/pkg/domain"
)

var testTable = domain.FeedTable{
	{Section: "world", Sources: []domain.Source{
		{Name: "World A", URL: "https://world-a.example/rss"},
		{Name: "World B", URL: "https://world-b.example/rss"},
	}},
	{Section: "ai", Sources: []domain.Source{
		{Name: "AI A", URL: "https://ai-a.example/rss"},
	}},
}

// staticFetcher returns a mock serving fixed entries (or errors) per url
func staticFetcher(feeds map[string][]domain.RawEntry, failing map[string]error) *mocks.FetcherMock {
	return &mocks.FetcherMock{
		FetchFunc: func(ctx context.Context, url string) ([]domain.RawEntry, error) {
			if err, ok := failing[url]; ok {
				return nil, err
			}
			return feeds[url], nil
		},
	}
}

func titles(entries []domain.Entry) []string {
	res := make([]string, 0, len(entries))
	for _, e := range entries {
		res = append(res, e.Title)
	}
	return res
}

func TestMerger_Merge(t *testing.T) {
	fetcher := staticFetcher(map[string][]domain.RawEntry{
		"https://world-a.example/rss": {
			domain.MapEntry{"title": "Storm hits coast", "link": "https://news.example/storm"},
			domain.MapEntry{"title": "Election results", "link": "https://news.example/election"},
		},
		"https://world-b.example/rss": {
			// same story, different punctuation and case, same link with spaces
			domain.MapEntry{"title": "STORM hits coast!", "link": " https://news.example/storm "},
			domain.MapEntry{"title": "Markets open", "link": "https://news.example/markets"},
		},
		"https://ai-a.example/rss": {
			domain.MapEntry{"title": "New model released", "link": "https://ai.example/model"},
		},
	}, nil)

	m := NewMerger(fetcher, 2)
	res := m.Merge(context.Background(), testTable, []string{"ai", "world"})

	assert.Equal(t, []string{"New model released", "Storm hits coast", "Election results", "Markets open"}, titles(res))
	assert.Equal(t, "World A", res[1].Source, "first occurrence wins")
	assert.Equal(t, "ai", res[0].Section)
	assert.Equal(t, "world", res[3].Section)
	assert.Len(t, fetcher.FetchCalls(), 3)
}

func TestMerger_MergeDedupKeyLinkRules(t *testing.T) {
	fetcher := staticFetcher(map[string][]domain.RawEntry{
		"https://world-a.example/rss": {
			domain.MapEntry{"title": "Same title"},
			domain.MapEntry{"title": "Other title", "link": "https://news.example/1"},
			domain.MapEntry{"title": "Shared", "link": "https://news.example/a"},
		},
		"https://world-b.example/rss": {
			// no link on both sides, merged
			domain.MapEntry{"title": "same TITLE"},
			// empty vs non-empty link, kept
			domain.MapEntry{"title": "Other title"},
			// different link, kept
			domain.MapEntry{"title": "Shared", "link": "https://news.example/b"},
		},
	}, nil)

	res := NewMerger(fetcher, 1).Merge(context.Background(), testTable, []string{"world"})
	require.Len(t, res, 5)
	assert.Equal(t, []string{"Same title", "Other title", "Shared", "Other title", "Shared"}, titles(res))
	assert.Equal(t, "World A", res[0].Source)
	assert.Equal(t, "https://news.example/1", res[1].Link)
	assert.Empty(t, res[3].Link)
	assert.Equal(t, "https://news.example/b", res[4].Link)
}

func TestMerger_MergeDropsInvalid(t *testing.T) {
	fetcher := staticFetcher(map[string][]domain.RawEntry{
		"https://ai-a.example/rss": {
			domain.MapEntry{"summary": "content but no title or link"},
			domain.MapEntry{},
			nil,
			domain.MapEntry{"link": "https://ai.example/link-only"},
			domain.MapEntry{"title": "Title only"},
		},
	}, nil)

	res := NewMerger(fetcher, 1).Merge(context.Background(), testTable, []string{"ai"})
	require.Len(t, res, 2)
	for _, e := range res {
		assert.True(t, e.Title != "" || e.Link != "")
	}
	assert.Equal(t, "https://ai.example/link-only", res[0].Link)
	assert.Equal(t, "Title only", res[1].Title)
}

func TestMerger_MergeSourceFailureIsolated(t *testing.T) {
	fetcher := staticFetcher(map[string][]domain.RawEntry{
		"https://world-b.example/rss": {domain.MapEntry{"title": "Survivor", "link": "https://b.example/1"}},
		"https://ai-a.example/rss":    {domain.MapEntry{"title": "AI news", "link": "https://ai.example/1"}},
	}, map[string]error{
		"https://world-a.example/rss": errors.New("connection refused"),
	})

	res := NewMerger(fetcher, 3).Merge(context.Background(), testTable, []string{"world", "ai"})
	assert.Equal(t, []string{"Survivor", "AI news"}, titles(res))
}

func TestMerger_MergeAllSourcesFail(t *testing.T) {
	fetcher := &mocks.FetcherMock{
		FetchFunc: func(ctx context.Context, url string) ([]domain.RawEntry, error) {
			return nil, errors.New("timeout")
		},
	}
	res := NewMerger(fetcher, 3).Merge(context.Background(), testTable, []string{"world", "ai"})
	assert.NotNil(t, res)
	assert.Empty(t, res)
}

func TestMerger_MergeUnknownSection(t *testing.T) {
	fetcher := staticFetcher(nil, nil)
	res := NewMerger(fetcher, 1).Merge(context.Background(), testTable, []string{"sports"})
	assert.Empty(t, res)
	assert.Empty(t, fetcher.FetchCalls())
}

func TestMerger_MergeOrderIndependentOfCompletion(t *testing.T) {
	// earlier sources finish last
	delays := map[string]time.Duration{
		"https://world-a.example/rss": 60 * time.Millisecond,
		"https://world-b.example/rss": 30 * time.Millisecond,
		"https://ai-a.example/rss":    0,
	}
	fetcher := &mocks.FetcherMock{
		FetchFunc: func(ctx context.Context, url string) ([]domain.RawEntry, error) {
			time.Sleep(delays[url])
			return []domain.RawEntry{
				domain.MapEntry{"title": "Shared story", "link": "https://shared.example/1"},
				domain.MapEntry{"title": "Own story " + url, "link": url + "/own"},
			}, nil
		},
	}

	for range 3 {
		res := NewMerger(fetcher, 3).Merge(context.Background(), testTable, []string{"world", "ai"})
		require.Len(t, res, 4)
		assert.Equal(t, "World A", res[0].Source, "shared story kept from first source in order")
		assert.Equal(t, "Own story https://world-a.example/rss", res[1].Title)
		assert.Equal(t, "Own story https://world-b.example/rss", res[2].Title)
		assert.Equal(t, "Own story https://ai-a.example/rss", res[3].Title)
	}
}

func TestMerger_MergeRespectsMaxWorkers(t *testing.T) {
	table := domain.FeedTable{{Section: "world"}}
	for i := range 10 {
		table[0].Sources = append(table[0].Sources, domain.Source{Name: "s", URL: "https://example.com/" + string(rune('a'+i))})
	}

	var active, peak int32
	fetcher := &mocks.FetcherMock{
		FetchFunc: func(ctx context.Context, url string) ([]domain.RawEntry, error) {
			n := atomic.AddInt32(&active, 1)
			for {
				p := atomic.LoadInt32(&peak)
				if n <= p || atomic.CompareAndSwapInt32(&peak, p, n) {
					break
				}
			}
			time.Sleep(10 * time.Millisecond)
			atomic.AddInt32(&active, -1)
			return nil, nil
		},
	}

	NewMerger(fetcher, 2).Merge(context.Background(), table, []string{"world"})
	assert.Len(t, fetcher.FetchCalls(), 10)
	assert.LessOrEqual(t, atomic.LoadInt32(&peak), int32(2))
}

func TestNewMerger_DefaultWorkers(t *testing.T) {
	m := NewMerger(&mocks.FetcherMock{}, 0)
	assert.Equal(t, DefaultMaxWorkers, m.maxWorkers)
}
