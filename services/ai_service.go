package services

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"notable-notes/notable/config"

	"github.com/go-resty/resty/v2"
)

const tagPrompt = "Suggest 3 to 5 relevant tags for the following note. " +
	"Respond with only the tags, comma separated, no other text.\n\nTitle: %s\n\nContent: %s"

type AIServiceInterface interface {
	GenerateTags(ctx context.Context, title, content string) ([]string, error)
}

// AIService calls an external generative-language endpoint to suggest
// tags for a note. The call is single-shot and synchronous: no retries,
// no caching, and it must never run inside a database transaction.
type AIService struct {
	client *resty.Client
	apiKey string
	model  string
}

func NewAIService(cfg config.Config) *AIService {
	client := resty.New().
		SetBaseURL(cfg.AIEndpoint).
		SetTimeout(time.Duration(cfg.AITimeoutSeconds) * time.Second)

	return &AIService{
		client: client,
		apiKey: cfg.GoogleAPIKey,
		model:  cfg.AIModel,
	}
}

type generateContentRequest struct {
	Contents []aiContent `json:"contents"`
}

type aiContent struct {
	Parts []aiPart `json:"parts"`
}

type aiPart struct {
	Text string `json:"text"`
}

type generateContentResponse struct {
	Candidates []struct {
		Content      aiContent `json:"content"`
		FinishReason string    `json:"finishReason"`
	} `json:"candidates"`
	PromptFeedback *struct {
		BlockReason string `json:"blockReason"`
	} `json:"promptFeedback"`
}

// GenerateTags asks the model for tag suggestions and parses its
// comma-separated answer. Every upstream failure mode (missing key,
// transport error, timeout, non-2xx, safety-blocked or empty response)
// comes back as ErrUpstream with a readable cause; the raw credential is
// never part of any error.
func (s *AIService) GenerateTags(ctx context.Context, title, content string) ([]string, error) {
	if strings.TrimSpace(title) == "" && strings.TrimSpace(content) == "" {
		return nil, fmt.Errorf("%w: provide a title or content to generate tags from", ErrInvalidInput)
	}

	if s.apiKey == "" {
		return nil, fmt.Errorf("%w: generative AI is not configured", ErrUpstream)
	}

	prompt := fmt.Sprintf(tagPrompt, title, content)
	body := generateContentRequest{
		Contents: []aiContent{{Parts: []aiPart{{Text: prompt}}}},
	}

	var result generateContentResponse
	resp, err := s.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetQueryParam("key", s.apiKey).
		SetBody(body).
		SetResult(&result).
		Post(fmt.Sprintf("/v1beta/models/%s:generateContent", s.model))
	if err != nil {
		log.Printf("AI tag suggestion request failed: %v", err)
		return nil, fmt.Errorf("%w: the tag suggestion service could not be reached", ErrUpstream)
	}

	if resp.IsError() {
		log.Printf("AI tag suggestion returned status %d: %s", resp.StatusCode(), resp.String())
		return nil, fmt.Errorf("%w: the tag suggestion service returned status %d", ErrUpstream, resp.StatusCode())
	}

	if result.PromptFeedback != nil && result.PromptFeedback.BlockReason != "" {
		log.Printf("AI tag suggestion blocked: %s", result.PromptFeedback.BlockReason)
		return nil, fmt.Errorf("%w: the request was blocked by the model's safety filters", ErrUpstream)
	}

	text := candidateText(result)
	tags := parseTagList(text)
	if len(tags) == 0 {
		log.Printf("AI tag suggestion produced no usable tags, raw response: %q", text)
		return nil, fmt.Errorf("%w: the model returned an empty response", ErrUpstream)
	}

	return tags, nil
}

func candidateText(result generateContentResponse) string {
	if len(result.Candidates) == 0 {
		return ""
	}
	var b strings.Builder
	for _, part := range result.Candidates[0].Content.Parts {
		b.WriteString(part.Text)
	}
	return b.String()
}

// parseTagList splits the model's answer on commas, trims each piece and
// drops empties. Tag content itself is not validated further.
func parseTagList(text string) []string {
	var tags []string
	for _, piece := range strings.Split(text, ",") {
		if tag := strings.TrimSpace(piece); tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}
