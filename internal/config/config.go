package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

const (
	DefaultArticleCap        = 5
	DefaultArticleTextCap    = 2000
	DefaultChatHistoryWindow = 6
	DefaultBatchCron         = "0 6 * * *"
	DefaultLLMBaseURL        = "https://api.groq.com/openai/v1"
	DefaultDigestModel       = "llama-3.3-70b-versatile"
	DefaultChatModel         = "llama-3.1-8b-instant"
	DefaultDigestPath        = "data/daily_digest.json"
	DefaultRedisKey          = "marketmind:digest:daily"
)

type TopicFeeds struct {
	Name string   `yaml:"name"`
	URLs []string `yaml:"urls"`
}

type Config struct {
	GroqAPIKey      string
	AnthropicAPIKey string
	LLMBaseURL      string
	DigestModel     string
	ChatModel       string

	DigestPath string
	RedisURL   string
	RedisKey   string

	ArticleCap        int
	ArticleTextCap    int
	ChatHistoryWindow int
	BatchCron         string

	FrontendURL string
	Port        string

	Topics []TopicFeeds
}

// Load reads configuration from the environment. The feed table comes from
// FEEDS_FILE when set, otherwise the built-in topic list is used.
func Load() (*Config, error) {
	cfg := &Config{
		GroqAPIKey:        os.Getenv("GROQ_API_KEY"),
		AnthropicAPIKey:   os.Getenv("ANTHROPIC_API_KEY"),
		LLMBaseURL:        getEnv("LLM_BASE_URL", DefaultLLMBaseURL),
		DigestModel:       getEnv("LLM_MODEL", DefaultDigestModel),
		ChatModel:         getEnv("CHAT_MODEL", DefaultChatModel),
		DigestPath:        getEnv("DIGEST_PATH", DefaultDigestPath),
		RedisURL:          os.Getenv("DIGEST_REDIS_URL"),
		RedisKey:          getEnv("DIGEST_REDIS_KEY", DefaultRedisKey),
		ArticleCap:        getEnvInt("ARTICLE_CAP", DefaultArticleCap),
		ArticleTextCap:    getEnvInt("ARTICLE_TEXT_CAP", DefaultArticleTextCap),
		ChatHistoryWindow: getEnvInt("CHAT_HISTORY_WINDOW", DefaultChatHistoryWindow),
		BatchCron:         getEnv("BATCH_CRON", DefaultBatchCron),
		FrontendURL:       os.Getenv("FRONTEND_URL"),
		Port:              getEnv("PORT", "8080"),
	}

	if feedsFile := os.Getenv("FEEDS_FILE"); feedsFile != "" {
		topics, err := LoadFeedsFile(feedsFile)
		if err != nil {
			return nil, fmt.Errorf("loading feeds file: %w", err)
		}
		cfg.Topics = topics
	} else {
		cfg.Topics = DefaultTopics()
	}

	return cfg, nil
}

type feedsFile struct {
	Topics []TopicFeeds `yaml:"topics"`
}

// LoadFeedsFile reads a per-topic feed URL table from a YAML file.
func LoadFeedsFile(path string) ([]TopicFeeds, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var f feedsFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, err
	}

	if err := validateTopics(f.Topics); err != nil {
		return nil, err
	}

	return f.Topics, nil
}

func validateTopics(topics []TopicFeeds) error {
	if len(topics) == 0 {
		return fmt.Errorf("feeds file contains no topics")
	}
	for _, t := range topics {
		if t.Name == "" {
			return fmt.Errorf("topic with empty name")
		}
		if len(t.URLs) == 0 {
			return fmt.Errorf("topic %q has no feed urls", t.Name)
		}
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}
