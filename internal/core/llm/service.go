package llm

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
)

// Service wraps an LLM provider for dependency injection. A nil
// provider is valid and makes GenerateResponse return an error,
// which callers turn into a fallback reply.
type Service struct {
	provider Provider
}

// NewService creates an LLM service around an already-built provider
func NewService(provider Provider) *Service {
	return &Service{provider: provider}
}

// Configured reports whether a provider is available
func (s *Service) Configured() bool {
	return s.provider != nil
}

// ProviderName returns the active provider name, or "none"
func (s *Service) ProviderName() string {
	if s.provider == nil {
		return "none"
	}
	return s.provider.GetProviderName()
}

// GenerateResponse asks the provider for a completion
func (s *Service) GenerateResponse(ctx context.Context, systemPrompt string, history []Message, userMessage string) (string, error) {
	if s.provider == nil {
		return "", fmt.Errorf("no LLM provider configured")
	}

	reply, err := s.provider.GenerateResponse(ctx, systemPrompt, history, userMessage)
	if err != nil {
		log.Error().Err(err).Str("provider", s.provider.GetProviderName()).Msg("❌ LLM request failed")
		return "", err
	}
	return reply, nil
}
