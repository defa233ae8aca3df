// Package llm implements the generative fallback extractor: prompt
// construction, the external completion call, and validation of the
// untrusted response into normalized transactions.
package llm

import (
	"context"
	"fmt"

	"google.golang.org/genai"
)

// DefaultModelName is the default Gemini model used for extraction.
const DefaultModelName = "gemini-2.5-flash"

// Completer is the untrusted external text-completion service. The pipeline
// never trusts its output without the validation in this package. The
// context must cancel the underlying request when the caller abandons the
// operation; a late response is discarded, not applied.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// GeminiCompleter calls the Gemini API. Credentials come from the
// environment (GEMINI_API_KEY or Application Default Credentials).
type GeminiCompleter struct {
	model string
}

// NewGeminiCompleter creates a completer for the given model; an empty
// model falls back to DefaultModelName.
func NewGeminiCompleter(model string) *GeminiCompleter {
	if model == "" {
		model = DefaultModelName
	}
	return &GeminiCompleter{model: model}
}

// Complete sends the prompt and returns the raw response text.
func (g *GeminiCompleter) Complete(ctx context.Context, prompt string) (string, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		HTTPOptions: genai.HTTPOptions{APIVersion: "v1"},
	})
	if err != nil {
		return "", fmt.Errorf("create genai client: %w", err)
	}

	contents := []*genai.Content{
		{
			Role:  "user",
			Parts: []*genai.Part{{Text: prompt}},
		},
	}

	resp, err := client.Models.GenerateContent(ctx, g.model, contents, nil)
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}

	text := resp.Text()
	if text == "" {
		return "", fmt.Errorf("empty response from model")
	}
	return text, nil
}

var _ Completer = (*GeminiCompleter)(nil)
