package repository

import (
	"context"
	"fmt"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

type claudeNarrativeHandler struct {
	Client anthropic.Client
}

// NewClaudeNarrativeRepository is the Anthropic-backed narrative generator,
// selected via config when the deployment uses Claude instead of GPT.
func NewClaudeNarrativeRepository(apiKey string) NarrativeRepository {
	return claudeNarrativeHandler{
		Client: anthropic.NewClient(option.WithAPIKey(apiKey)),
	}
}

func (h claudeNarrativeHandler) GenerateNarrative(ctx context.Context, role string, payload string) (string, error) {
	msg, err := h.Client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.ModelClaudeSonnet4_0,
		MaxTokens: 1024,
		System: []anthropic.TextBlockParam{
			{Text: narrativeSystemPrompt},
		},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(
				anthropic.NewTextBlock(fmt.Sprintf("Role: %s\n\nInsights payload:\n%s", role, payload)),
			),
		},
	})
	if err != nil {
		return "", fmt.Errorf("failed to generate narrative: %w", err)
	}
	if len(msg.Content) == 0 {
		return "", fmt.Errorf("narrative response had no content")
	}

	return msg.Content[0].Text, nil
}
