package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"sort"
	"time"

	"github.com/gin-gonic/gin"

	"marketmind/internal/digest"
	"marketmind/internal/model"
)

// DigestReader is the read-only view handlers get of the digest artifact;
// serving never mutates the document.
type DigestReader interface {
	Load(ctx context.Context) (*model.DailyDigest, error)
}

type DigestHandler struct {
	store DigestReader
}

func NewDigestHandler(store DigestReader) *DigestHandler {
	return &DigestHandler{store: store}
}

func (h *DigestHandler) loadDigest(c *gin.Context) (*model.DailyDigest, bool) {
	d, err := h.store.Load(c.Request.Context())
	if err != nil {
		if errors.Is(err, digest.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "No digest available"})
			return nil, false
		}
		slog.Error("error loading digest", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Storage error"})
		return nil, false
	}
	return d, true
}

func (h *DigestHandler) GetDigest(c *gin.Context) {
	d, ok := h.loadDigest(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, d)
}

func (h *DigestHandler) GetTopics(c *gin.Context) {
	d, ok := h.loadDigest(c)
	if !ok {
		return
	}

	names := make([]string, 0, len(d.Topics))
	for name := range d.Topics {
		names = append(names, name)
	}
	sort.Strings(names)

	c.JSON(http.StatusOK, TopicsResponse{
		GeneratedAt: d.GeneratedAt.UTC().Format(time.RFC3339),
		Topics:      names,
	})
}

func (h *DigestHandler) GetTopic(c *gin.Context) {
	d, ok := h.loadDigest(c)
	if !ok {
		return
	}

	topic, ok := d.Topics[c.Param("topic")]
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Topic not found"})
		return
	}

	c.JSON(http.StatusOK, toTopicResponse(topic, d.GeneratedAt))
}

func (h *DigestHandler) GetHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func toTopicResponse(t model.TopicDigest, generatedAt time.Time) TopicResponse {
	sources := make([]SourceResponse, len(t.Sources))
	for i, a := range t.Sources {
		s := SourceResponse{
			Title:  a.Title,
			URL:    a.URL,
			Source: a.Source,
			Text:   a.Text,
		}
		if !a.PublishedAt.IsZero() {
			s.PublishedAt = a.PublishedAt.UTC().Format(time.RFC3339)
		}
		sources[i] = s
	}

	return TopicResponse{
		Topic:            t.Topic,
		GeneratedAt:      generatedAt.UTC().Format(time.RFC3339),
		ExecutiveSummary: t.ExecutiveSummary,
		Implications:     t.Implications,
		BeginnerSummary:  t.BeginnerSummary,
		Sources:          sources,
	}
}
