package relay

import (
	"context"
	"fmt"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/googleai"
)

type GeminiGenerator struct {
	llm *googleai.GoogleAI
}

func NewGeminiGenerator(ctx context.Context, apiKey, model string) (*GeminiGenerator, error) {
	llm, err := googleai.New(ctx, googleai.WithAPIKey(apiKey), googleai.WithDefaultModel(model))
	if err != nil {
		return nil, fmt.Errorf("could not create gemini client: %w", err)
	}
	return &GeminiGenerator{llm: llm}, nil
}

func (g *GeminiGenerator) Generate(ctx context.Context, prompt string, emit func(chunk string) error) error {
	messages := []llms.MessageContent{
		llms.TextParts(llms.ChatMessageTypeHuman, prompt),
	}

	_, err := g.llm.GenerateContent(ctx, messages, llms.WithStreamingFunc(func(_ context.Context, chunk []byte) error {
		return emit(string(chunk))
	}))
	return err
}
