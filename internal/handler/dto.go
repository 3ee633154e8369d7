package handler

import "marketmind/internal/model"

type SourceResponse struct {
	Title       string `json:"title"`
	URL         string `json:"url"`
	Source      string `json:"source"`
	PublishedAt string `json:"published_at,omitempty"`
	Text        string `json:"text"`
}

type TopicResponse struct {
	Topic            string           `json:"topic"`
	GeneratedAt      string           `json:"generated_at"`
	ExecutiveSummary string           `json:"executive_summary"`
	Implications     []string         `json:"implications"`
	BeginnerSummary  string           `json:"beginner_summary"`
	Sources          []SourceResponse `json:"sources"`
}

type TopicsResponse struct {
	GeneratedAt string   `json:"generated_at"`
	Topics      []string `json:"topics"`
}

type ChatRequest struct {
	Message string           `json:"message"`
	History []model.ChatTurn `json:"history"`
}
