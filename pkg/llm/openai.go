package llm

import (
	"context"
	"fmt"

	"newsquant/internal/model"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

type OpenAIScorer struct {
	client *openai.Client
	model  openai.ChatModel
}

func NewOpenAIScorer(apiKey string) *OpenAIScorer {
	client := openai.NewClient(option.WithAPIKey(apiKey))
	return &OpenAIScorer{
		client: &client,
		model:  openai.ChatModelGPT4oMini,
	}
}

func (s *OpenAIScorer) Score(ctx context.Context, articleText string) (*model.AnalysisRecord, error) {
	resp, err := s.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: s.model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(systemPrompt),
			openai.UserMessage(userPrompt(articleText)),
		},
	})

	if err != nil {
		return nil, fmt.Errorf("openai API error: %w", err)
	}

	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("no response from openai")
	}

	return decodeAnalysis(resp.Choices[0].Message.Content)
}
