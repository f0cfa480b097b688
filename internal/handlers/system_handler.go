package handlers

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jokkoai/multilingual-chatbot-be/internal/core/chat"
	"github.com/jokkoai/multilingual-chatbot-be/internal/core/translate"
	"github.com/jokkoai/multilingual-chatbot-be/internal/models"
)

// StatsSource provides aggregate chat statistics
type StatsSource interface {
	ChatStats(days int) (*models.ChatStats, error)
}

// SystemHandler handles health, languages and analytics requests
type SystemHandler struct {
	stats      StatsSource
	chatbot    *chat.Chatbot
	translator *translate.Client
	started    time.Time
}

// NewSystemHandler creates a new system handler. translator may be nil;
// the health endpoint then skips the translation probe.
func NewSystemHandler(stats StatsSource, chatbot *chat.Chatbot, translator *translate.Client) *SystemHandler {
	return &SystemHandler{
		stats:      stats,
		chatbot:    chatbot,
		translator: translator,
		started:    time.Now(),
	}
}

// GetHealth godoc
// @Summary Health check
// @Description Report service health, uptime and collaborator reachability
// @Tags System
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /api/health [get]
func (h *SystemHandler) GetHealth(c *fiber.Ctx) error {
	services := fiber.Map{}
	if h.translator != nil {
		if err := h.translator.Healthy(c.Context()); err != nil {
			services["translation"] = "unavailable"
		} else {
			services["translation"] = "ok"
		}
	}

	return c.JSON(fiber.Map{
		"status":    "healthy",
		"timestamp": time.Now().Format(time.RFC3339),
		"uptime":    time.Since(h.started).String(),
		"services":  services,
	})
}

// GetLanguages godoc
// @Summary List supported languages
// @Description Retrieve the language codes and names the chatbot supports
// @Tags System
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /api/languages [get]
func (h *SystemHandler) GetLanguages(c *fiber.Ctx) error {
	languages := h.chatbot.SupportedLanguageNames()
	return c.JSON(fiber.Map{
		"status":    "success",
		"count":     len(languages),
		"languages": languages,
	})
}

// GetStats godoc
// @Summary Get chat statistics
// @Description Aggregate chat activity over the requested period
// @Tags System
// @Produce json
// @Param days query int false "Period in days" default(7)
// @Success 200 {object} map[string]interface{}
// @Failure 500 {object} map[string]string
// @Router /api/stats [get]
func (h *SystemHandler) GetStats(c *fiber.Ctx) error {
	days := c.QueryInt("days", 7)
	if days < 1 {
		days = 7
	}

	stats, err := h.stats.ChatStats(days)
	if err != nil {
		log.Printf("❌ Failed to get chat stats: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to retrieve stats",
		})
	}

	return c.JSON(fiber.Map{
		"status": "success",
		"data":   stats,
	})
}
