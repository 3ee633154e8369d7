package llm

import "context"

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

type Message struct {
	Role    string
	Content string
}

type Request struct {
	System      string
	Messages    []Message
	Temperature float64
	MaxTokens   int
}

// Generator performs one synchronous completion.
type Generator interface {
	Generate(ctx context.Context, req Request) (string, error)
	Name() string
}

// Streamer delivers a completion incrementally. onDelta is called once per
// generated chunk, in order; returning an error stops the stream.
type Streamer interface {
	GenerateStream(ctx context.Context, req Request, onDelta func(delta string) error) error
	Name() string
}
