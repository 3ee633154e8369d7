package pipeline

import (
	"context"
	"log/slog"

	"marketmind/internal/model"
	"marketmind/pkg/feeds"
)

// Extractor fetches one article's plain-text body.
type Extractor interface {
	Extract(ctx context.Context, url string) (string, error)
}

// SelectArticles picks up to max articles for a topic, round-robining across
// the topic's feeds: one article per feed per round, mixing sources instead
// of draining the first feed. A link already taken in this pass is skipped; an entry whose
// body extraction fails is dropped without counting against the cap. Output
// order is the round-robin encounter order; there is no relevance ranking
// and no deduplication beyond the in-pass link skip.
func SelectArticles(ctx context.Context, topicFeeds []feeds.Feed, extractor Extractor, max int) []model.Article {
	queues := make([]feeds.Feed, len(topicFeeds))
	copy(queues, topicFeeds)

	seen := make(map[string]bool)
	var selected []model.Article

	for len(selected) < max {
		progress := false

		for i := range queues {
			if len(selected) >= max {
				break
			}
			q := &queues[i]

			for len(q.Entries) > 0 {
				entry := q.Entries[0]
				q.Entries = q.Entries[1:]

				if entry.Link == "" || seen[entry.Link] {
					continue
				}
				seen[entry.Link] = true

				text, err := extractor.Extract(ctx, entry.Link)
				if err != nil {
					slog.Warn("skipping article", "url", entry.Link, "error", err)
					continue
				}

				selected = append(selected, model.Article{
					Title:       entry.Title,
					URL:         entry.Link,
					Source:      q.Source,
					PublishedAt: entry.PublishedAt,
					Text:        text,
				})
				progress = true
				break
			}
		}

		if !progress {
			break
		}
	}

	return selected
}
