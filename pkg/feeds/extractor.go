package feeds

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

type Extractor struct {
	client  *http.Client
	textCap int
}

// NewExtractor returns an article body extractor that hard-cuts extracted
// text at textCap characters to bound prompt size.
func NewExtractor(textCap int) *Extractor {
	return &Extractor{
		client:  &http.Client{Timeout: 20 * time.Second},
		textCap: textCap,
	}
}

// Extract fetches an article page and returns its plain-text body. Pages
// that cannot be fetched or yield no paragraph text count as extraction
// failures; the caller drops that single article.
func (e *Extractor) Extract(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("article request: %w", err)
	}
	req.Header.Set("User-Agent", "marketmind/1.0")

	resp, err := e.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("article fetch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("article fetch: status %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return "", fmt.Errorf("article parse: %w", err)
	}

	// Prefer paragraphs inside an <article> element, fall back to all <p>.
	selection := doc.Find("article p")
	if selection.Length() == 0 {
		selection = doc.Find("p")
	}

	var parts []string
	selection.Each(func(_ int, s *goquery.Selection) {
		text := strings.TrimSpace(s.Text())
		if text != "" {
			parts = append(parts, text)
		}
	})

	text := strings.Join(parts, "\n")
	if text == "" {
		return "", fmt.Errorf("article parse: no paragraph text")
	}

	return truncate(text, e.textCap), nil
}

// truncate cuts text at max characters. The cut is a hard one, not
// sentence-aware.
func truncate(text string, max int) string {
	runes := []rune(text)
	if len(runes) <= max {
		return text
	}
	return string(runes[:max])
}
