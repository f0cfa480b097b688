package chat

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/jokkoai/multilingual-chatbot-be/internal/core/llm"
	"github.com/jokkoai/multilingual-chatbot-be/internal/core/translate"
)

const maxHistoryPerUser = 10

// Message is an incoming chat message
type Message struct {
	UserID    string
	Message   string
	Language  string
	SessionID *string
	Timestamp time.Time
}

// Response is the result of processing a chat message
type Response struct {
	Response           string  `json:"response"`
	OriginalLanguage   string  `json:"original_language"`
	TranslatedResponse string  `json:"translated_response"`
	TargetLanguage     string  `json:"target_language"`
	Category           string  `json:"category"`
	Confidence         float64 `json:"confidence"`
	ProcessingTime     float64 `json:"processing_time"`
}

type exchange struct {
	User      string
	Assistant string
	Timestamp time.Time
}

// Chatbot runs the multilingual chat pipeline: language detection,
// translation to Italian for processing, AI generation, and translation
// back to the user's language. Conversation history is kept in memory
// per user, bounded to the last exchanges.
type Chatbot struct {
	llm        *llm.Service
	translator *translate.Client

	mu      sync.Mutex
	history map[string][]exchange
}

// NewChatbot creates a chatbot over the given LLM and translator
func NewChatbot(llmService *llm.Service, translator *translate.Client) *Chatbot {
	return &Chatbot{
		llm:        llmService,
		translator: translator,
		history:    make(map[string][]exchange),
	}
}

// ProcessMessage runs the full pipeline for one chat message. It never
// returns an error: failures produce a localized apology response so the
// HTTP reply path always has something to send.
func (c *Chatbot) ProcessMessage(ctx context.Context, msg Message) *Response {
	start := time.Now()

	language := msg.Language
	if language == "" || language == "auto" {
		language = translate.DetectLanguage(msg.Message)
		log.Debug().Str("user_id", msg.UserID).Str("language", language).Msg("🌐 Language detected")
	}

	category, confidence := ClassifyCategory(msg.Message)

	// Process in Italian: translate the message in when needed
	messageForProcessing := msg.Message
	if language != "it" {
		messageForProcessing = c.translator.Translate(ctx, msg.Message, language, "it")
	}

	aiResponse, err := c.llm.GenerateResponse(ctx, SystemPrompt("it"), c.recentContext(msg.UserID), messageForProcessing)
	if err != nil {
		aiResponse = ApologyMessage("it")
	}

	// Translate the reply back to the user's language
	translatedResponse := aiResponse
	if language != "it" {
		translatedResponse = c.translator.Translate(ctx, aiResponse, "it", language)
	}

	c.recordExchange(msg.UserID, msg.Message, translatedResponse)

	return &Response{
		Response:           aiResponse,
		OriginalLanguage:   "it",
		TranslatedResponse: translatedResponse,
		TargetLanguage:     language,
		Category:           category,
		Confidence:         confidence,
		ProcessingTime:     time.Since(start).Seconds(),
	}
}

// SupportedLanguageNames returns the language code to name map
func (c *Chatbot) SupportedLanguageNames() map[string]string {
	return SupportedLanguages
}

// ClearHistory drops the conversation history for a user
func (c *Chatbot) ClearHistory(userID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.history, userID)
}

// recentContext returns the last assistant replies as LLM context
func (c *Chatbot) recentContext(userID string) []llm.Message {
	c.mu.Lock()
	defer c.mu.Unlock()

	exchanges := c.history[userID]
	if len(exchanges) > 3 {
		exchanges = exchanges[len(exchanges)-3:]
	}

	messages := make([]llm.Message, 0, len(exchanges))
	for _, ex := range exchanges {
		messages = append(messages, llm.Message{Role: llm.RoleAssistant, Content: ex.Assistant})
	}
	return messages
}

func (c *Chatbot) recordExchange(userID, userMessage, assistantReply string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.history[userID] = append(c.history[userID], exchange{
		User:      userMessage,
		Assistant: assistantReply,
		Timestamp: time.Now(),
	})
	if len(c.history[userID]) > maxHistoryPerUser {
		c.history[userID] = c.history[userID][len(c.history[userID])-maxHistoryPerUser:]
	}
}
