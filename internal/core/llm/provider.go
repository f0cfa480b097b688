package llm

import (
	"context"
	"fmt"
)

// Message is a single turn in a conversation passed to a provider.
type Message struct {
	Role    string
	Content string
}

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Provider interface for multiple AI backends
type Provider interface {
	GenerateResponse(ctx context.Context, systemPrompt string, history []Message, userMessage string) (string, error)
	GetProviderName() string
}

// ProviderType for factory
type ProviderType string

const (
	ProviderGroq     ProviderType = "groq"
	ProviderOpenAI   ProviderType = "openai"
	ProviderDeepSeek ProviderType = "deepseek"
)

// ProviderConfig to create a provider
type ProviderConfig struct {
	Type ProviderType

	GroqKey     string
	OpenAIKey   string
	DeepSeekKey string

	Model       string
	Temperature float32
	MaxTokens   int
}

// NewProvider factory to create an LLM provider
func NewProvider(cfg *ProviderConfig) (Provider, error) {
	switch cfg.Type {
	case ProviderGroq:
		if cfg.GroqKey == "" {
			return nil, fmt.Errorf("GROQ_API_KEY is required")
		}
		return NewGroqProvider(cfg.GroqKey, cfg.Model, cfg.Temperature, cfg.MaxTokens), nil

	case ProviderOpenAI:
		if cfg.OpenAIKey == "" {
			return nil, fmt.Errorf("OPENAI_API_KEY is required")
		}
		return NewOpenAIProvider(cfg.OpenAIKey, cfg.Model, cfg.Temperature, cfg.MaxTokens), nil

	case ProviderDeepSeek:
		if cfg.DeepSeekKey == "" {
			return nil, fmt.Errorf("DEEPSEEK_API_KEY is required")
		}
		return NewDeepSeekProvider(cfg.DeepSeekKey, cfg.Model, cfg.Temperature, cfg.MaxTokens), nil

	default:
		return nil, fmt.Errorf("unknown LLM provider type: %s", cfg.Type)
	}
}
