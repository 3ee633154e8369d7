package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"marketmind/internal/digest"
	"marketmind/internal/model"
	"marketmind/pkg/llm"
)

// ChatHandler answers questions grounded on a topic's source articles,
// streaming the answer as SSE events: "delta" per generated chunk, then
// "done", or "error" when the service fails mid-stream.
type ChatHandler struct {
	store         DigestReader
	llm           llm.Streamer
	historyWindow int
}

func NewChatHandler(store DigestReader, streamer llm.Streamer, historyWindow int) *ChatHandler {
	return &ChatHandler{store: store, llm: streamer, historyWindow: historyWindow}
}

func (h *ChatHandler) Chat(c *gin.Context) {
	var req ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	if req.Message == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Message is required"})
		return
	}

	d, err := h.store.Load(c.Request.Context())
	if err != nil {
		if errors.Is(err, digest.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "No digest available"})
			return
		}
		slog.Error("error loading digest", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Storage error"})
		return
	}

	topicName := c.Param("topic")
	topic, ok := d.Topics[topicName]
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Topic not found"})
		return
	}

	inputs := make([]llm.ArticleInput, len(topic.Sources))
	for i, a := range topic.Sources {
		inputs[i] = llm.ArticleInput{Title: a.Title, Source: a.Source, Text: a.Text}
	}

	history := make([]llm.Message, len(req.History))
	for i, turn := range req.History {
		role := llm.RoleUser
		if turn.Role == model.RoleAssistant {
			role = llm.RoleAssistant
		}
		history[i] = llm.Message{Role: role, Content: turn.Content}
	}

	llmReq := llm.ChatRequest(llm.BuildChatContext(inputs), history, req.Message, h.historyWindow)

	started := false
	err = h.llm.GenerateStream(c.Request.Context(), llmReq, func(delta string) error {
		started = true
		c.SSEvent("delta", delta)
		c.Writer.Flush()
		return nil
	})

	if err != nil {
		slog.Error("chat stream failed", "topic", topicName, "error", err)
		if !started {
			c.JSON(http.StatusBadGateway, gin.H{"error": "AI service unavailable"})
			return
		}
		// The stream is already underway; surface the failure in-band.
		c.SSEvent("error", "AI service unavailable")
		c.Writer.Flush()
		return
	}

	c.SSEvent("done", "")
	c.Writer.Flush()
}
