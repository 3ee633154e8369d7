package feeds

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/mmcdole/gofeed"
)

const unknownSource = "Unknown Source"

type Entry struct {
	Title       string
	Link        string
	PublishedAt time.Time
}

// Feed is one successfully parsed feed: the feed's own title as source name
// plus its entries in feed order.
type Feed struct {
	Source  string
	Entries []Entry
}

type Reader struct {
	client *http.Client
}

func NewReader() *Reader {
	return &Reader{client: &http.Client{Timeout: 20 * time.Second}}
}

// Fetch parses every feed URL and returns the ones that succeeded. A feed
// that fails to fetch or parse is skipped, never fatal: the topic proceeds
// with whatever other feeds delivered.
//
// Each call gets its own gofeed parser: the parser initializes its
// translators lazily on first parse, so one shared instance is not safe for
// the concurrent per-topic fan-out. The HTTP client is shared; it is
// safe for concurrent use.
func (r *Reader) Fetch(ctx context.Context, urls []string) []Feed {
	parser := gofeed.NewParser()
	parser.Client = r.client

	var out []Feed

	for _, url := range urls {
		parsed, err := parser.ParseURLWithContext(url, ctx)
		if err != nil {
			slog.Warn("skipping feed", "url", url, "error", err)
			continue
		}

		source := parsed.Title
		if source == "" {
			source = unknownSource
		}

		entries := make([]Entry, 0, len(parsed.Items))
		for _, item := range parsed.Items {
			if item.Link == "" {
				continue
			}
			entry := Entry{
				Title: item.Title,
				Link:  item.Link,
			}
			if item.PublishedParsed != nil {
				entry.PublishedAt = *item.PublishedParsed
			}
			entries = append(entries, entry)
		}

		if len(entries) == 0 {
			continue
		}

		out = append(out, Feed{Source: source, Entries: entries})
	}

	return out
}
