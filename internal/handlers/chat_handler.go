package handlers

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/jokkoai/multilingual-chatbot-be/internal/core/automation"
	"github.com/jokkoai/multilingual-chatbot-be/internal/core/chat"
	"github.com/jokkoai/multilingual-chatbot-be/internal/repositories"
)

// ChatHandler handles chat webhook and API requests
type ChatHandler struct {
	chatbot   *chat.Chatbot
	engine    *automation.Engine
	logs      repositories.ChatLogRepo
	analytics repositories.AnalyticsRepo
}

// NewChatHandler creates a new chat handler. engine, logs and analytics
// may be nil when automation, persistence or analytics are disabled.
func NewChatHandler(chatbot *chat.Chatbot, engine *automation.Engine, logs repositories.ChatLogRepo, analytics repositories.AnalyticsRepo) *ChatHandler {
	return &ChatHandler{
		chatbot:   chatbot,
		engine:    engine,
		logs:      logs,
		analytics: analytics,
	}
}

// ChatRequest is the incoming chat payload
type ChatRequest struct {
	UserID    string  `json:"user_id"`
	Message   string  `json:"message"`
	Language  string  `json:"language"`
	SessionID *string `json:"session_id"`
}

// HandleChat godoc
// @Summary Process a chat message
// @Description Run a message through the multilingual chat pipeline and trigger chat workflows
// @Tags Chat
// @Accept json
// @Produce json
// @Param request body ChatRequest true "Chat message"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]string
// @Router /webhook/chat [post]
func (h *ChatHandler) HandleChat(c *fiber.Ctx) error {
	var req ChatRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body",
		})
	}

	if req.Message == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Message is required",
		})
	}

	if req.UserID == "" {
		req.UserID = fmt.Sprintf("user_%s", uuid.NewString()[:8])
	}
	if req.Language == "" {
		req.Language = "auto"
	}

	response := h.chatbot.ProcessMessage(c.Context(), chat.Message{
		UserID:    req.UserID,
		Message:   req.Message,
		Language:  req.Language,
		SessionID: req.SessionID,
		Timestamp: time.Now(),
	})

	// Fire chat workflows off the reply path
	if h.engine != nil {
		chatData := map[string]interface{}{
			"user_id":         req.UserID,
			"message":         req.Message,
			"response":        response.TranslatedResponse,
			"language":        response.TargetLanguage,
			"processing_time": response.ProcessingTime,
		}
		if req.SessionID != nil {
			chatData["session_id"] = *req.SessionID
		}
		automationData := map[string]interface{}{
			"chat_data": chatData,
		}
		go h.engine.TriggerWebhook(context.Background(), "/webhook/chat", automationData)
	}

	if h.analytics != nil {
		if err := h.analytics.RecordInteraction(req.UserID, response.TargetLanguage, []string{response.Category}); err != nil {
			log.Printf("⚠️ Failed to record user analytics: %v", err)
		}
	}

	return c.JSON(fiber.Map{
		"response":          response.TranslatedResponse,
		"original_response": response.Response,
		"detected_language": response.TargetLanguage,
		"category":          response.Category,
		"processing_time":   response.ProcessingTime,
		"timestamp":         time.Now().Format(time.RFC3339),
		"status":            "success",
		"user_id":           req.UserID,
		"session_id":        req.SessionID,
	})
}

// ClearHistory godoc
// @Summary Clear conversation history
// @Description Drop the in-memory conversation history for a user
// @Tags Chat
// @Produce json
// @Param user_id path string true "User ID"
// @Success 200 {object} map[string]string
// @Router /api/chat/{user_id}/history [delete]
func (h *ChatHandler) ClearHistory(c *fiber.Ctx) error {
	userID := c.Params("user_id")
	if userID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "user_id is required",
		})
	}

	h.chatbot.ClearHistory(userID)

	return c.JSON(fiber.Map{
		"status":  "success",
		"message": "Conversation history cleared",
	})
}

// GetChatLogs godoc
// @Summary Get persisted chat logs
// @Description Retrieve the most recent persisted chat interactions for a user
// @Tags Chat
// @Produce json
// @Param user_id path string true "User ID"
// @Param limit query int false "Limit number of results" default(50)
// @Success 200 {object} map[string]interface{}
// @Failure 503 {object} map[string]string
// @Router /api/chat/{user_id}/logs [get]
func (h *ChatHandler) GetChatLogs(c *fiber.Ctx) error {
	if h.logs == nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"error": "chat log storage is disabled",
		})
	}

	userID := c.Params("user_id")
	limit := c.QueryInt("limit", 50)

	logs, err := h.logs.FindByUserID(userID, limit)
	if err != nil {
		log.Printf("❌ Failed to get chat logs for %s: %v", userID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to retrieve chat logs",
		})
	}

	return c.JSON(fiber.Map{
		"status": "success",
		"count":  len(logs),
		"data":   logs,
	})
}

// GetUserAnalytics godoc
// @Summary Get per-user analytics
// @Description Retrieve the interaction counters recorded for a user
// @Tags Chat
// @Produce json
// @Param user_id path string true "User ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]string
// @Failure 503 {object} map[string]string
// @Router /api/analytics/{user_id} [get]
func (h *ChatHandler) GetUserAnalytics(c *fiber.Ctx) error {
	if h.analytics == nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"error": "analytics is disabled",
		})
	}

	userID := c.Params("user_id")

	record, err := h.analytics.FindByUserID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "no analytics for user",
			})
		}
		log.Printf("❌ Failed to get analytics for %s: %v", userID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to retrieve analytics",
		})
	}

	return c.JSON(fiber.Map{
		"status": "success",
		"data":   record,
	})
}
