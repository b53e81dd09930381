package openai

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	goopenai "github.com/sashabaranov/go-openai"

	"skinsano-backend/internal/llm"
)

const defaultMaxTokens = 1500

// Client implements llm.Client using OpenAI Chat Completions.
type Client struct {
	api     *goopenai.Client
	model   string
	timeout time.Duration
}

// NewClient constructs a new OpenAI client. A non-positive timeout falls
// back to 60 seconds.
func NewClient(apiKey, model string, timeoutSeconds int) (*Client, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY is required: %w", llm.ErrNotConfigured)
	}
	if strings.TrimSpace(model) == "" {
		return nil, fmt.Errorf("LLM_MODEL is required for OpenAI")
	}
	timeout := 60 * time.Second
	if timeoutSeconds > 0 {
		timeout = time.Duration(timeoutSeconds) * time.Second
	}
	return &Client{
		api:     goopenai.NewClient(apiKey),
		model:   model,
		timeout: timeout,
	}, nil
}

// Generate performs a single bounded chat-completion call and returns the raw
// message content. Callers are responsible for parsing.
func (c *Client) Generate(ctx context.Context, req llm.GenerateRequest) (string, error) {
	maxTokens := req.MaxTokens
	if maxTokens <= 0 {
		maxTokens = defaultMaxTokens
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	chatReq := goopenai.ChatCompletionRequest{
		Model:       c.model,
		Temperature: req.Temperature,
		Messages: []goopenai.ChatCompletionMessage{
			{Role: goopenai.ChatMessageRoleUser, Content: req.Prompt},
		},
	}
	// Reasoning models reject MaxTokens in favor of MaxCompletionTokens.
	if isReasoningModel(c.model) {
		chatReq.MaxCompletionTokens = maxTokens
	} else {
		chatReq.MaxTokens = maxTokens
	}

	resp, err := c.api.CreateChatCompletion(ctx, chatReq)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return "", fmt.Errorf("openai request timeout: %w", err)
		}
		return "", fmt.Errorf("openai chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("openai response missing choices")
	}

	content := strings.TrimSpace(resp.Choices[0].Message.Content)
	if content == "" {
		return "", fmt.Errorf("openai response empty content")
	}
	logUsage(c.model, resp.Usage)
	return content, nil
}

func isReasoningModel(model string) bool {
	m := strings.ToLower(strings.TrimSpace(model))
	return strings.HasPrefix(m, "o1") || strings.HasPrefix(m, "o3") || strings.HasPrefix(m, "o4") || strings.HasPrefix(m, "gpt-5")
}

func logUsage(model string, usage goopenai.Usage) {
	log.Printf("llm response model=%s prompt_tokens=%d completion_tokens=%d total_tokens=%d",
		model, usage.PromptTokens, usage.CompletionTokens, usage.TotalTokens)
}

var _ llm.Client = (*Client)(nil)
