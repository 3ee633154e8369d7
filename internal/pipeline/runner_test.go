package pipeline

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/go-playground/assert/v2"

	"marketmind/internal/config"
	"marketmind/pkg/feeds"
	"marketmind/pkg/llm"
)

type fakeFetcher struct {
	feedsByURL map[string][]feeds.Feed
}

func (f *fakeFetcher) Fetch(ctx context.Context, urls []string) []feeds.Feed {
	var out []feeds.Feed
	for _, u := range urls {
		out = append(out, f.feedsByURL[u]...)
	}
	return out
}

type fakeGenerator struct {
	mu       sync.Mutex
	response string
	err      error
	calls    int
	failures int // fail this many calls before succeeding
}

func (g *fakeGenerator) Generate(ctx context.Context, req llm.Request) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.calls++
	if g.failures > 0 {
		g.failures--
		return "", errors.New("service unavailable")
	}
	if g.err != nil {
		return "", g.err
	}
	return g.response, nil
}

func (g *fakeGenerator) Name() string { return "fake" }

const wellFormedOutput = `## Executive Summary
The summary paragraph.

## Market & Business Implications
- First fact.
- Second fact.

## Beginner-Friendly Summary
The simple version.`

const twoSectionOutput = `## Executive Summary
The summary paragraph.

## Market & Business Implications
- First fact.`

func singleTopicRunner(gen llm.Generator) *Runner {
	fetcher := &fakeFetcher{feedsByURL: map[string][]feeds.Feed{
		"https://example.com/crypto.xml": {
			{Source: "Crypto Feed", Entries: []feeds.Entry{entry("c1"), entry("c2"), entry("c3")}},
		},
	}}
	topics := []config.TopicFeeds{{Name: "Crypto", URLs: []string{"https://example.com/crypto.xml"}}}
	return NewRunner(fetcher, &fakeExtractor{}, gen, topics, 5)
}

func TestRunBuildsDigestForHealthyTopic(t *testing.T) {
	gen := &fakeGenerator{response: wellFormedOutput}
	r := singleTopicRunner(gen)

	d, results := r.Run(context.Background())

	assert.Equal(t, 1, len(results))
	assert.Equal(t, nil, results[0].Err)

	topic := d.Topics["Crypto"]
	assert.Equal(t, "The summary paragraph.", topic.ExecutiveSummary)
	assert.Equal(t, []string{"First fact.", "Second fact."}, topic.Implications)
	assert.Equal(t, "The simple version.", topic.BeginnerSummary)
	assert.Equal(t, 3, len(topic.Sources))
	assert.Equal(t, "c1", topic.Sources[0].URL)
	assert.Equal(t, false, d.GeneratedAt.IsZero())
}

func TestRunExcludesTopicWithMalformedOutput(t *testing.T) {
	// Only two of the three requested sections come back, on both attempts.
	gen := &fakeGenerator{response: twoSectionOutput}
	r := singleTopicRunner(gen)

	d, results := r.Run(context.Background())

	assert.NotEqual(t, nil, results[0].Err)
	assert.Equal(t, 0, len(d.Topics))
	assert.Equal(t, 2, gen.calls)
}

func TestRunRetriesOnceThenSucceeds(t *testing.T) {
	gen := &fakeGenerator{response: wellFormedOutput, failures: 1}
	r := singleTopicRunner(gen)

	d, results := r.Run(context.Background())

	assert.Equal(t, nil, results[0].Err)
	assert.Equal(t, 1, len(d.Topics))
	assert.Equal(t, 2, gen.calls)
}

func TestRunOmitsTopicWithNoArticles(t *testing.T) {
	fetcher := &fakeFetcher{feedsByURL: map[string][]feeds.Feed{}}
	topics := []config.TopicFeeds{{Name: "Finance", URLs: []string{"https://example.com/empty.xml"}}}
	gen := &fakeGenerator{response: wellFormedOutput}
	r := NewRunner(fetcher, &fakeExtractor{}, gen, topics, 5)

	d, results := r.Run(context.Background())

	assert.Equal(t, true, errors.Is(results[0].Err, ErrNoArticles))
	_, present := d.Topics["Finance"]
	assert.Equal(t, false, present)
	// The generation service is never called for an empty topic.
	assert.Equal(t, 0, gen.calls)
}

func TestRunPartialFailureKeepsOtherTopics(t *testing.T) {
	fetcher := &fakeFetcher{feedsByURL: map[string][]feeds.Feed{
		"https://example.com/crypto.xml": {
			{Source: "Crypto Feed", Entries: []feeds.Entry{entry("c1")}},
		},
		// Tech's only feed yields nothing.
	}}
	topics := []config.TopicFeeds{
		{Name: "Crypto", URLs: []string{"https://example.com/crypto.xml"}},
		{Name: "Tech", URLs: []string{"https://example.com/tech.xml"}},
	}
	gen := &fakeGenerator{response: wellFormedOutput}
	r := NewRunner(fetcher, &fakeExtractor{}, gen, topics, 5)

	d, results := r.Run(context.Background())

	assert.Equal(t, 2, len(results))
	assert.Equal(t, 1, len(d.Topics))
	_, present := d.Topics["Crypto"]
	assert.Equal(t, true, present)
}

func TestRunIdempotentExceptGeneratedAt(t *testing.T) {
	gen := &fakeGenerator{response: wellFormedOutput}

	first, _ := singleTopicRunner(gen).Run(context.Background())
	second, _ := singleTopicRunner(gen).Run(context.Background())

	assert.Equal(t, len(first.Topics), len(second.Topics))
	a := first.Topics["Crypto"]
	b := second.Topics["Crypto"]
	assert.Equal(t, a.ExecutiveSummary, b.ExecutiveSummary)
	assert.Equal(t, a.Implications, b.Implications)
	assert.Equal(t, a.BeginnerSummary, b.BeginnerSummary)
	assert.Equal(t, len(a.Sources), len(b.Sources))
	for i := range a.Sources {
		assert.Equal(t, a.Sources[i], b.Sources[i])
	}
}
