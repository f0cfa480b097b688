package llm

import (
	"context"
	"errors"
	"testing"

	openai "github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeProvider struct {
	reply string
	err   error
}

func (f *fakeProvider) GenerateResponse(ctx context.Context, systemPrompt string, history []Message, userMessage string) (string, error) {
	return f.reply, f.err
}

func (f *fakeProvider) GetProviderName() string { return "fake" }

func TestNewProvider(t *testing.T) {
	tests := []struct {
		name    string
		cfg     *ProviderConfig
		wantErr bool
	}{
		{
			name: "groq",
			cfg:  &ProviderConfig{Type: ProviderGroq, GroqKey: "gsk_test"},
		},
		{
			name:    "groq without key",
			cfg:     &ProviderConfig{Type: ProviderGroq},
			wantErr: true,
		},
		{
			name: "openai",
			cfg:  &ProviderConfig{Type: ProviderOpenAI, OpenAIKey: "sk_test"},
		},
		{
			name: "deepseek",
			cfg:  &ProviderConfig{Type: ProviderDeepSeek, DeepSeekKey: "dk_test"},
		},
		{
			name:    "unknown type",
			cfg:     &ProviderConfig{Type: "bard"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			provider, err := NewProvider(tt.cfg)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, provider)
		})
	}
}

func TestServiceWithoutProvider(t *testing.T) {
	s := NewService(nil)

	assert.False(t, s.Configured())
	assert.Equal(t, "none", s.ProviderName())

	_, err := s.GenerateResponse(context.Background(), "prompt", nil, "hi")
	assert.Error(t, err)
}

func TestServiceGenerateResponse(t *testing.T) {
	s := NewService(&fakeProvider{reply: "ciao"})

	reply, err := s.GenerateResponse(context.Background(), "prompt", nil, "hi")
	require.NoError(t, err)
	assert.Equal(t, "ciao", reply)

	s = NewService(&fakeProvider{err: errors.New("rate limited")})
	_, err = s.GenerateResponse(context.Background(), "prompt", nil, "hi")
	assert.Error(t, err)
}

func TestBuildMessages(t *testing.T) {
	history := []Message{
		{Role: RoleAssistant, Content: "first"},
		{Role: RoleAssistant, Content: "second"},
	}

	messages := buildMessages("be helpful", history, "question")

	require.Len(t, messages, 4)
	assert.Equal(t, openai.ChatMessageRoleSystem, messages[0].Role)
	assert.Equal(t, "be helpful", messages[0].Content)
	assert.Equal(t, "first", messages[1].Content)
	assert.Equal(t, "second", messages[2].Content)
	assert.Equal(t, openai.ChatMessageRoleUser, messages[3].Role)
	assert.Equal(t, "question", messages[3].Content)
}

func TestBuildMessagesNoHistory(t *testing.T) {
	messages := buildMessages("prompt", nil, "hi")

	require.Len(t, messages, 2)
	assert.Equal(t, openai.ChatMessageRoleSystem, messages[0].Role)
	assert.Equal(t, openai.ChatMessageRoleUser, messages[1].Role)
}
