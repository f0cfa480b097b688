package email

import (
	"fmt"
)

// Provider defines the interface for email providers
type Provider interface {
	SendEmail(to, subject, body string) error
	SendHTMLEmail(to, subject, textBody, htmlBody string) error
	GetProviderName() string
}

// Service wraps the email provider
type Service struct {
	provider Provider
}

// NewService creates a new email service with the specified provider
func NewService(provider Provider) *Service {
	return &Service{
		provider: provider,
	}
}

// SendEmail sends a plain text email
func (s *Service) SendEmail(to, subject, body string) error {
	if s.provider == nil {
		return fmt.Errorf("no email provider configured")
	}
	return s.provider.SendEmail(to, subject, body)
}

// SendHTMLEmail sends an email with both text and HTML parts
func (s *Service) SendHTMLEmail(to, subject, textBody, htmlBody string) error {
	if s.provider == nil {
		return fmt.Errorf("no email provider configured")
	}
	return s.provider.SendHTMLEmail(to, subject, textBody, htmlBody)
}

// GetProviderName returns the name of the current provider
func (s *Service) GetProviderName() string {
	if s.provider == nil {
		return "none"
	}
	return s.provider.GetProviderName()
}
