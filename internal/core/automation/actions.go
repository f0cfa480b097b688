package automation

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/jokkoai/multilingual-chatbot-be/internal/models"
	"github.com/rs/zerolog/log"
)

// logToStoreHandler writes one chat interaction row to the event log
type logToStoreHandler struct {
	store Store
}

func (h *logToStoreHandler) Kind() ActionKind { return ActionLogToStore }

func (h *logToStoreHandler) Execute(ctx context.Context, action Action, triggerData map[string]interface{}) (interface{}, error) {
	chatData, ok := triggerData["chat_data"].(map[string]interface{})
	if !ok {
		return "No chat data to log", nil
	}

	entry := &models.ChatLog{
		UserID:         stringField(chatData, "user_id"),
		Message:        stringField(chatData, "message"),
		Response:       stringField(chatData, "response"),
		Language:       stringField(chatData, "language"),
		ProcessingTime: floatField(chatData, "processing_time"),
	}
	if sid := stringField(chatData, "session_id"); sid != "" {
		entry.SessionID = &sid
	}

	if err := h.store.LogChat(entry); err != nil {
		return nil, fmt.Errorf("failed to log chat: %w", err)
	}
	return "Chat logged successfully", nil
}

// sendEmailHandler sends templated emails to the admin recipient
type sendEmailHandler struct {
	store    Store
	notifier Notifier
}

func (h *sendEmailHandler) Kind() ActionKind { return ActionSendEmail }

func (h *sendEmailHandler) Execute(ctx context.Context, action Action, triggerData map[string]interface{}) (interface{}, error) {
	if h.notifier == nil {
		return "Email manager not configured", nil
	}

	template, _ := configString(action.Config, "template")
	if template != "daily_stats" {
		return "Unknown email template", nil
	}

	stats, err := h.store.ChatStats(1)
	if err != nil {
		return nil, fmt.Errorf("failed to compute daily stats: %w", err)
	}

	byLanguage, _ := json.MarshalIndent(stats.MessagesByLanguage, "", "  ")
	body := fmt.Sprintf(`Daily Statistics Report:

Total Messages: %d
Unique Users: %d
Average Processing Time: %.2fs

Messages by Language:
%s
`, stats.TotalMessages, stats.UniqueUsers, stats.AverageProcessingTime, byLanguage)

	if err := h.notifier.SendEmail(h.notifier.AdminEmail(), "Daily Chatbot Statistics", body); err != nil {
		return nil, fmt.Errorf("failed to send stats email: %w", err)
	}
	return "Daily stats email sent", nil
}

// notifyAdminHandler sends an ad-hoc admin notification built from the
// trigger payload
type notifyAdminHandler struct {
	notifier Notifier
}

func (h *notifyAdminHandler) Kind() ActionKind { return ActionNotifyAdmin }

func (h *notifyAdminHandler) Execute(ctx context.Context, action Action, triggerData map[string]interface{}) (interface{}, error) {
	if h.notifier == nil {
		return "Email manager not configured", nil
	}

	subject := stringField(triggerData, "subject")
	if subject == "" {
		subject = "System Notification"
	}
	message := stringField(triggerData, "message")
	if message == "" {
		message = "No message provided"
	}

	if err := h.notifier.SendAdminNotification(subject, message, triggerData); err != nil {
		return nil, fmt.Errorf("failed to notify admin: %w", err)
	}
	return "Admin notification sent", nil
}

// apiRequestHandler posts the trigger payload to an external endpoint
type apiRequestHandler struct {
	client *http.Client
}

func (h *apiRequestHandler) Kind() ActionKind { return ActionAPIRequest }

func (h *apiRequestHandler) Execute(ctx context.Context, action Action, triggerData map[string]interface{}) (interface{}, error) {
	url, ok := configString(action.Config, "url")
	if !ok {
		return "No URL specified", nil
	}

	method, ok := configString(action.Config, "method")
	if !ok {
		method = "POST"
	}

	body, err := json.Marshal(triggerData)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal trigger data: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, bytes.NewBuffer(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create HTTP request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	if headers, ok := action.Config["headers"].(map[string]interface{}); ok {
		for key, value := range headers {
			if strValue, ok := value.(string); ok {
				req.Header.Set(key, strValue)
			}
		}
	}

	log.Info().Str("method", method).Str("url", url).Msg("🌐 Calling external API")
	resp, err := h.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("HTTP request failed: %w", err)
	}
	defer resp.Body.Close()

	// Drain so the connection can be reused; the response body itself
	// is not part of the result.
	_, _ = io.Copy(io.Discard, resp.Body)

	return fmt.Sprintf("API request completed: %d", resp.StatusCode), nil
}

func stringField(data map[string]interface{}, key string) string {
	if data == nil {
		return ""
	}
	v, _ := data[key].(string)
	return v
}

func floatField(data map[string]interface{}, key string) float64 {
	if data == nil {
		return 0
	}
	switch v := data[key].(type) {
	case float64:
		return v
	case float32:
		return float64(v)
	case int:
		return float64(v)
	default:
		return 0
	}
}
