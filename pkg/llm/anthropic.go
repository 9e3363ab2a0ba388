package llm

import (
	"context"
	"fmt"

	"newsquant/internal/model"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

type AnthropicScorer struct {
	client *anthropic.Client
	model  anthropic.Model
}

func NewAnthropicScorer(apiKey string) *AnthropicScorer {
	client := anthropic.NewClient(option.WithAPIKey(apiKey))
	return &AnthropicScorer{
		client: &client,
		// anthropic.ModelClaudeHaiku4_5 is not defined in SDK v1.5.0 (the
		// newest version buildable with the installed Go toolchain); use
		// its literal value instead.
		model: anthropic.Model("claude-haiku-4-5"),
	}
}

func (s *AnthropicScorer) Score(ctx context.Context, articleText string) (*model.AnalysisRecord, error) {
	resp, err := s.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     s.model,
		MaxTokens: 1024,
		System: []anthropic.TextBlockParam{
			{Text: systemPrompt},
		},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(userPrompt(articleText))),
		},
	})

	if err != nil {
		return nil, fmt.Errorf("anthropic API error: %w", err)
	}

	if len(resp.Content) == 0 {
		return nil, fmt.Errorf("no response from anthropic")
	}

	return decodeAnalysis(resp.Content[0].Text)
}
