package repository

import (
	"context"
	"fmt"

	"github.com/ayush6624/go-chatgpt"
)

// NarrativeRepository generates the RM-facing narrative from a serialized
// insights payload. The payload is the system of record; the narrative is
// advisory prose layered on top and failures here never block scoring.
type NarrativeRepository interface {
	GenerateNarrative(ctx context.Context, role string, payload string) (string, error)
}

const narrativeSystemPrompt = `
You are an assistant for private-banking relationship managers. You receive a
JSON document of deterministic, pre-computed client insights: loan product
eligibility scores, CASA deposit trend classification, asset allocation
deviations with rebalancing recommendations, and portfolio concentration risk
scores.

Write a concise advisory narrative for the relationship manager. Rules:
- Never recompute or contradict the numbers in the payload; cite them as given.
- Lead with the highest-priority items (HIGH rebalancing actions, eligible
  products with the top scores, significant deposit trend moves).
- Amounts are AED. Keep the tone factual; no greetings or sign-offs.
- If a section of the payload is empty or marked unavailable, say the data is
  not available rather than guessing.
`

type gptNarrativeHandler struct {
	GptClient *chatgpt.Client
}

func NewGptNarrativeRepository(apiKey string) (NarrativeRepository, error) {
	client, err := chatgpt.NewClient(apiKey)
	if err != nil {
		return nil, fmt.Errorf("failed to construct gpt client: %w", err)
	}

	return gptNarrativeHandler{
		GptClient: client,
	}, nil
}

func (h gptNarrativeHandler) GenerateNarrative(ctx context.Context, role string, payload string) (string, error) {
	res, err := h.GptClient.Send(ctx, &chatgpt.ChatCompletionRequest{
		Model: chatgpt.GPT35Turbo,
		Messages: []chatgpt.ChatMessage{
			{
				Role:    chatgpt.ChatGPTModelRoleSystem,
				Content: narrativeSystemPrompt,
			},
			{
				Role:    chatgpt.ChatGPTModelRoleUser,
				Content: fmt.Sprintf("Role: %s\n\nInsights payload:\n%s", role, payload),
			},
		},
	})
	if err != nil {
		return "", fmt.Errorf("failed to generate narrative: %w", err)
	}
	if len(res.Choices) == 0 {
		return "", fmt.Errorf("narrative response had no choices")
	}

	return res.Choices[0].Message.Content, nil
}
