package openai

import (
	"context"
	"errors"
	"fmt"

	openaisdk "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/doculens/SummarizeAPI/internal/customHttpClient"
	"github.com/doculens/SummarizeAPI/internal/summarize"
	"github.com/doculens/SummarizeAPI/pkg/logger_i"
)

type provider struct {
	modelName string
	logger    *logger_i.Logger
}

func NewProvider(modelName string) summarize.Provider {
	return &provider{
		modelName: modelName,
		logger:    logger_i.NewLogger("llm_openai"),
	}
}

func (p *provider) Generate(ctx context.Context, credential string, prompt string) (string, error) {
	client := openaisdk.NewClient(
		option.WithAPIKey(credential),
		option.WithHTTPClient(customHttpClient.Pooled()),
	)

	completion, err := client.Chat.Completions.New(ctx, openaisdk.ChatCompletionNewParams{
		Model: openaisdk.ChatModel(p.modelName),
		Messages: []openaisdk.ChatCompletionMessageParamUnion{
			openaisdk.UserMessage(prompt),
		},
	})
	if err != nil {
		return "", fmt.Errorf("openai completion: %w", err)
	}
	if len(completion.Choices) == 0 {
		return "", errors.New("openai returned no choices")
	}
	return completion.Choices[0].Message.Content, nil
}
