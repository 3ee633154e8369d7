package llm

import (
	"fmt"
	"strings"
)

const (
	DigestTemperature = 0.2
	ChatTemperature   = 0.3
	MaxOutputTokens   = 1024

	sectionExecutive    = "Executive Summary"
	sectionImplications = "Market & Business Implications"
	sectionBeginner     = "Beginner-Friendly Summary"
)

// DigestSystemPrompt enumerates the failure modes the model must avoid, not
// just the desired behavior.
const DigestSystemPrompt = "You are an expert news analyst who provides concise, factual daily briefings. " +
	"STRICT RULES — violating any of these is a critical failure:\n" +
	"1. ONLY state facts that are explicitly present in the provided articles. " +
	"Never predict, speculate, or extrapolate beyond what the text says.\n" +
	"2. NEVER give advisory language such as 'investors should', 'companies should be prepared', " +
	"or 'it is important to monitor'. Report what happened, not what to do about it.\n" +
	"3. NEVER contradict information stated in the source articles. " +
	"If two sources conflict, note the disagreement instead of picking a side.\n" +
	"4. If a claim cannot be directly supported by a quote or fact from the articles, do not include it."

const chatSystemTemplate = "You are MarketMind, an expert news analyst. " +
	"Answer the user's question based ONLY on the following news context. " +
	"If the answer is not in the context, say so honestly.\n\n" +
	"--- NEWS CONTEXT ---\n%s\n--- END CONTEXT ---"

// ArticleInput is one source article as the prompts see it.
type ArticleInput struct {
	Title     string
	Source    string
	Published string
	Text      string
}

// BuildDigestPrompt assembles the single user prompt for one topic: the
// concatenated article texts with source attribution, then the request for
// the three delineated sections.
func BuildDigestPrompt(topic string, articles []ArticleInput) string {
	var contextParts []string
	for i, a := range articles {
		contextParts = append(contextParts, fmt.Sprintf(
			"**Article %d: %s**\nSource: %s | Published: %s\n%s\n",
			i+1, a.Title, a.Source, a.Published, a.Text,
		))
	}

	var b strings.Builder
	fmt.Fprintf(&b, "You are an expert analyst. Below are the top news articles for the topic: **%s**.\n\n", topic)
	b.WriteString(strings.Join(contextParts, "\n---\n"))
	b.WriteString("\n\nBased on these articles, provide a response in the following Markdown format:\n\n")
	fmt.Fprintf(&b, "## %s\n", sectionExecutive)
	b.WriteString("Provide a concise 3-5 sentence overview of the most important developments.\n\n")
	fmt.Fprintf(&b, "## %s\n", sectionImplications)
	b.WriteString("Provide 3-5 bullet points on facts from the articles that are relevant to businesses, investors, or professionals. ")
	b.WriteString("Each bullet MUST be directly traceable to a specific article above. Do NOT speculate on future outcomes or give advice.\n\n")
	fmt.Fprintf(&b, "## %s\n", sectionBeginner)
	fmt.Fprintf(&b, "Re-explain the executive summary in simple, everyday language that someone with no background in %s could easily understand. ", topic)
	b.WriteString("Avoid jargon and use short sentences. Do NOT add any information that was not in the Executive Summary.\n")

	return b.String()
}

func DigestRequest(topic string, articles []ArticleInput) Request {
	return Request{
		System:      DigestSystemPrompt,
		Messages:    []Message{{Role: RoleUser, Content: BuildDigestPrompt(topic, articles)}},
		Temperature: DigestTemperature,
		MaxTokens:   MaxOutputTokens,
	}
}

// BuildChatContext concatenates a topic's source articles into the grounding
// context block for the chat system prompt.
func BuildChatContext(articles []ArticleInput) string {
	parts := make([]string, 0, len(articles))
	for _, a := range articles {
		parts = append(parts, fmt.Sprintf("Title: %s\nSource: %s\nContent: %s", a.Title, a.Source, a.Text))
	}
	return strings.Join(parts, "\n\n")
}

// ChatRequest builds the chat completion request, bounding prior history to
// the most recent window turns before appending the user's message.
func ChatRequest(contextText string, history []Message, userMessage string, window int) Request {
	if window > 0 && len(history) > window {
		history = history[len(history)-window:]
	}

	messages := make([]Message, 0, len(history)+1)
	messages = append(messages, history...)
	messages = append(messages, Message{Role: RoleUser, Content: userMessage})

	return Request{
		System:      fmt.Sprintf(chatSystemTemplate, contextText),
		Messages:    messages,
		Temperature: ChatTemperature,
		MaxTokens:   MaxOutputTokens,
	}
}

type DigestSections struct {
	ExecutiveSummary string
	Implications     []string
	BeginnerSummary  string
}

// ParseDigestSections splits the model output into the three requested
// sections. A missing or empty section is a parse error; the caller marks
// the topic failed rather than shipping a partial digest entry.
func ParseDigestSections(content string) (*DigestSections, error) {
	exec := sectionBody(content, sectionExecutive)
	if exec == "" {
		return nil, fmt.Errorf("malformed digest output: missing section %q", sectionExecutive)
	}

	implications := sectionBody(content, sectionImplications)
	bullets := parseBullets(implications)
	if len(bullets) == 0 {
		return nil, fmt.Errorf("malformed digest output: missing section %q", sectionImplications)
	}

	beginner := sectionBody(content, sectionBeginner)
	if beginner == "" {
		return nil, fmt.Errorf("malformed digest output: missing section %q", sectionBeginner)
	}

	return &DigestSections{
		ExecutiveSummary: exec,
		Implications:     bullets,
		BeginnerSummary:  beginner,
	}, nil
}

// sectionBody returns the text between the heading with the given title and
// the next heading. Heading match is case-insensitive and ignores the number
// of leading '#'.
func sectionBody(content, title string) string {
	lines := strings.Split(content, "\n")

	var body []string
	inSection := false
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "#") {
			heading := strings.TrimSpace(strings.TrimLeft(trimmed, "#"))
			if strings.EqualFold(heading, title) {
				inSection = true
				continue
			}
			if inSection {
				break
			}
			continue
		}
		if inSection {
			body = append(body, line)
		}
	}

	return strings.TrimSpace(strings.Join(body, "\n"))
}

func parseBullets(text string) []string {
	var bullets []string
	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		for _, marker := range []string{"- ", "* ", "• "} {
			if strings.HasPrefix(trimmed, marker) {
				if bullet := strings.TrimSpace(strings.TrimPrefix(trimmed, marker)); bullet != "" {
					bullets = append(bullets, bullet)
				}
				break
			}
		}
	}
	return bullets
}
