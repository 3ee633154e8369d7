package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"marketmind/internal/config"
	"marketmind/internal/model"
	"marketmind/pkg/feeds"
	"marketmind/pkg/llm"
)

// ErrNoArticles marks a topic whose feeds yielded nothing extractable; the
// topic gets no digest entry rather than an entry with empty fields.
var ErrNoArticles = errors.New("no extractable articles")

const (
	generateTimeout  = 90 * time.Second
	generateAttempts = 2
)

// Fetcher parses a topic's feed URLs, skipping the ones that fail.
type Fetcher interface {
	Fetch(ctx context.Context, urls []string) []feeds.Feed
}

// Result is one topic's outcome: a digest on success, the reason on failure.
// Failures never abort the run; the writer simply excludes the topic.
type Result struct {
	Topic  string
	Digest *model.TopicDigest
	Err    error
}

type Runner struct {
	fetcher    Fetcher
	extractor  Extractor
	generator  llm.Generator
	topics     []config.TopicFeeds
	articleCap int
	genTimeout time.Duration
}

func NewRunner(fetcher Fetcher, extractor Extractor, generator llm.Generator, topics []config.TopicFeeds, articleCap int) *Runner {
	return &Runner{
		fetcher:    fetcher,
		extractor:  extractor,
		generator:  generator,
		topics:     topics,
		articleCap: articleCap,
		genTimeout: generateTimeout,
	}
}

// Run processes every topic concurrently and assembles whatever succeeded
// into a single document. Topics share no mutable state; each failure stays
// contained in its own Result.
func (r *Runner) Run(ctx context.Context) (*model.DailyDigest, []Result) {
	results := make([]Result, len(r.topics))

	var g errgroup.Group
	for i, topic := range r.topics {
		i, topic := i, topic
		g.Go(func() error {
			results[i] = r.runTopic(ctx, topic)
			return nil
		})
	}
	g.Wait()

	d := &model.DailyDigest{
		GeneratedAt: time.Now().UTC(),
		Topics:      make(map[string]model.TopicDigest),
	}
	for _, res := range results {
		if res.Err != nil {
			slog.Warn("topic excluded from digest", "topic", res.Topic, "error", res.Err)
			continue
		}
		d.Topics[res.Topic] = *res.Digest
	}

	return d, results
}

func (r *Runner) runTopic(ctx context.Context, topic config.TopicFeeds) Result {
	topicFeeds := r.fetcher.Fetch(ctx, topic.URLs)
	articles := SelectArticles(ctx, topicFeeds, r.extractor, r.articleCap)
	if len(articles) == 0 {
		return Result{Topic: topic.Name, Err: ErrNoArticles}
	}

	slog.Info("generating topic digest", "topic", topic.Name, "articles", len(articles))

	inputs := make([]llm.ArticleInput, len(articles))
	for i, a := range articles {
		inputs[i] = llm.ArticleInput{
			Title:     a.Title,
			Source:    a.Source,
			Published: formatPublished(a.PublishedAt),
			Text:      a.Text,
		}
	}

	sections, err := r.generate(ctx, llm.DigestRequest(topic.Name, inputs))
	if err != nil {
		return Result{Topic: topic.Name, Err: err}
	}

	return Result{
		Topic: topic.Name,
		Digest: &model.TopicDigest{
			Topic:            topic.Name,
			ExecutiveSummary: sections.ExecutiveSummary,
			Implications:     sections.Implications,
			BeginnerSummary:  sections.BeginnerSummary,
			Sources:          articles,
		},
	}
}

// generate calls the service with a bounded timeout and retries once before
// giving the topic up.
func (r *Runner) generate(ctx context.Context, req llm.Request) (*llm.DigestSections, error) {
	var lastErr error

	for attempt := 1; attempt <= generateAttempts; attempt++ {
		callCtx, cancel := context.WithTimeout(ctx, r.genTimeout)
		content, err := r.generator.Generate(callCtx, req)
		cancel()

		if err != nil {
			lastErr = fmt.Errorf("generation attempt %d: %w", attempt, err)
			continue
		}

		sections, err := llm.ParseDigestSections(content)
		if err != nil {
			lastErr = fmt.Errorf("generation attempt %d: %w", attempt, err)
			continue
		}

		return sections, nil
	}

	return nil, lastErr
}

func formatPublished(t time.Time) string {
	if t.IsZero() {
		return "Unknown"
	}
	return t.UTC().Format(time.RFC3339)
}
