package llm

import (
	"context"
	"errors"
)

// Client abstracts text-generation providers for skin analysis.
type Client interface {
	Generate(ctx context.Context, req GenerateRequest) (string, error)
}

// GenerateRequest captures the inputs for a single text-generation call.
type GenerateRequest struct {
	Prompt      string
	MaxTokens   int
	Temperature float32
}

// ErrNotConfigured is returned when no provider credentials are present.
var ErrNotConfigured = errors.New("llm provider not configured")
