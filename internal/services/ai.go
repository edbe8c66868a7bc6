package services

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/sashabaranov/go-openai"
)

type AIService struct {
	client *openai.Client
}

type BountyDraft struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Category    string   `json:"category"`
	Project     string   `json:"project"`
	Tags        []string `json:"tags"`
}

func NewAIService(apiKey string) *AIService {
	return &AIService{
		client: openai.NewClient(apiKey),
	}
}

// DraftBountyFromText turns a free-text idea into a bounty draft using
// OpenAI GPT. The draft is a suggestion only; nothing is persisted.
func (s *AIService) DraftBountyFromText(ctx context.Context, text string) (*BountyDraft, error) {
	if s.client == nil {
		return nil, fmt.Errorf("OpenAI client not initialized")
	}

	prompt := fmt.Sprintf(`You are a bounty drafting assistant for a web3 bounty board. Turn the idea below into a bounty draft.

Idea:
%s

Return a single JSON object with exactly these fields:
{
  "title": "short bounty title",
  "description": "two or three sentences describing the expected work",
  "category": "one of: design, video, content, development, social, educational",
  "project": "the project or protocol the bounty is for, uppercase, empty string if unknown",
  "tags": ["one to four short tags"]
}

Rules:
- category must be exactly one of the listed values
- respond with JSON only, no explanations`, text)

	resp, err := s.client.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{
			Model: openai.GPT4o,
			Messages: []openai.ChatCompletionMessage{
				{
					Role:    openai.ChatMessageRoleUser,
					Content: prompt,
				},
			},
			Temperature: 0.3,
		},
	)

	if err != nil {
		return nil, fmt.Errorf("OpenAI API error: %w", err)
	}

	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("no response from OpenAI")
	}

	content := resp.Choices[0].Message.Content

	var draft BountyDraft
	if err := json.Unmarshal([]byte(content), &draft); err != nil {
		return nil, fmt.Errorf("failed to parse AI response: %w (response: %s)", err, content)
	}

	return &draft, nil
}
