package gemini

import (
	"context"
	"errors"
	"fmt"

	"google.golang.org/genai"

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
		logger:    logger_i.NewLogger("llm_gemini"),
	}
}

// Generate makes one content call with one credential. A fresh client per
// credential keeps key state out of the provider - rotation happens above us.
func (p *provider) Generate(ctx context.Context, credential string, prompt string) (string, error) {
	c, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:     credential,
		HTTPClient: customHttpClient.Pooled(),
	})
	if err != nil {
		p.logger.Error("Error creating Gemini client:", "error", err)
		return "", fmt.Errorf("create gemini client: %w", err)
	}

	result, err := c.Models.GenerateContent(ctx, p.modelName, genai.Text(prompt), nil)
	if err != nil {
		return "", fmt.Errorf("gemini generate: %w", err)
	}

	text := result.Text()
	if text == "" {
		return "", errors.New("gemini returned an empty response")
	}
	return text, nil
}
