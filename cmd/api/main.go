package main

import (
	"log"
	"log/slog"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"marketmind/internal/config"
	"marketmind/internal/digest"
	"marketmind/internal/handler"
	"marketmind/pkg/llm"
)

func main() {

	godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("error loading config: %v", err)
	}

	store, err := newStore(cfg)
	if err != nil {
		log.Fatalf("error opening digest store: %v", err)
	}

	streamer := newStreamer(cfg)
	if streamer == nil {
		log.Fatalf("no generation service API key configured")
	}

	digestHandler := handler.NewDigestHandler(store)
	chatHandler := handler.NewChatHandler(store, streamer, cfg.ChatHistoryWindow)

	r := gin.Default()

	allowedOrigins := []string{"http://localhost:3000"}

	if cfg.FrontendURL != "" {
		allowedOrigins = append(allowedOrigins, cfg.FrontendURL)
	}

	slog.Info("AllowOrigins URL:", "urls", allowedOrigins)

	r.Use(cors.New(cors.Config{
		AllowOrigins: allowedOrigins,
		AllowMethods: []string{"GET", "POST", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type"},
	}))

	r.GET("/digest", digestHandler.GetDigest)
	r.GET("/topics", digestHandler.GetTopics)
	r.GET("/topics/:topic", digestHandler.GetTopic)
	r.POST("/chat/:topic", chatHandler.Chat)
	r.GET("/health", digestHandler.GetHealth)

	err = r.Run(":" + cfg.Port)
	if err != nil {
		log.Fatalf("error starting server: %v", err)
	}
}

func newStore(cfg *config.Config) (digest.Store, error) {
	if cfg.RedisURL != "" {
		return digest.NewRedisStore(cfg.RedisURL, cfg.RedisKey)
	}
	return digest.NewFileStore(cfg.DigestPath), nil
}

func newStreamer(cfg *config.Config) llm.Streamer {
	if cfg.GroqAPIKey != "" {
		return llm.NewOpenAIClient(cfg.GroqAPIKey, cfg.LLMBaseURL, cfg.ChatModel)
	}
	if cfg.AnthropicAPIKey != "" {
		return llm.NewAnthropicClient(cfg.AnthropicAPIKey, cfg.ChatModel)
	}
	return nil
}
