package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/swagger"
	"github.com/joho/godotenv"

	_ "github.com/jokkoai/multilingual-chatbot-be/docs"
	"github.com/jokkoai/multilingual-chatbot-be/internal/config"
	"github.com/jokkoai/multilingual-chatbot-be/internal/core/automation"
	"github.com/jokkoai/multilingual-chatbot-be/internal/core/chat"
	"github.com/jokkoai/multilingual-chatbot-be/internal/core/email"
	"github.com/jokkoai/multilingual-chatbot-be/internal/core/llm"
	"github.com/jokkoai/multilingual-chatbot-be/internal/core/translate"
	"github.com/jokkoai/multilingual-chatbot-be/internal/database"
	"github.com/jokkoai/multilingual-chatbot-be/internal/handlers"
	"github.com/jokkoai/multilingual-chatbot-be/internal/repositories"
	"github.com/jokkoai/multilingual-chatbot-be/internal/utils"
)

// @title JOKKO Multilingual Chatbot API
// @version 1.0
// @description Multilingual chat backend with workflow automation
// @contact.name API Support
// @contact.email support@jokko.ai
// @license.name MIT
// @host localhost:8000
// @BasePath /
func main() {
	// Load .env file (ignored in production where env vars come from the platform)
	_ = godotenv.Load()

	// Load config
	cfg := config.LoadConfig()
	utils.InitLogger(os.Getenv("LOG_LEVEL"))

	for _, issue := range cfg.Validate() {
		log.Printf("⚠️  Config: %s", issue)
	}

	log.Printf("🚀 Starting chatbot API on %s:%s", cfg.Host, cfg.Port)

	// Init database
	db := database.NewDB(cfg.DatabaseURL)
	defer db.Close()

	// Init repositories (use GORM instance)
	store := repositories.NewEventStore(db.GORM)
	var analyticsRepo repositories.AnalyticsRepo
	if cfg.EnableAnalytics {
		analyticsRepo = repositories.NewAnalyticsRepo(db.GORM)
	}

	// Init LLM service (multi-provider support)
	var llmProvider llm.Provider
	if cfg.GroqAPIKey != "" {
		provider, err := llm.NewProvider(&llm.ProviderConfig{
			Type:        llm.ProviderGroq,
			GroqKey:     cfg.GroqAPIKey,
			Model:       cfg.GroqModel,
			Temperature: cfg.GroqTemperature,
			MaxTokens:   cfg.GroqMaxTokens,
		})
		if err != nil {
			log.Fatalf("Failed to initialize LLM provider: %v", err)
		}
		llmProvider = provider
	}
	llmService := llm.NewService(llmProvider)
	log.Printf("🤖 Using LLM provider: %s", llmService.ProviderName())

	// Init translation client
	translator := translate.NewClient(cfg.LibreTranslateURL, cfg.LibreTranslateKey)

	// Init email service (multi-provider support)
	var notifier automation.Notifier
	if cfg.EmailConfigured() {
		var emailProvider email.Provider
		switch cfg.EmailProvider {
		case "brevo":
			emailProvider = email.NewBrevoProvider(cfg.EmailAPIKey, cfg.EmailFrom, cfg.EmailFromName)
		default:
			emailProvider = email.NewResendProvider(cfg.EmailAPIKey, cfg.EmailFrom, cfg.EmailFromName)
		}
		emailService := email.NewService(emailProvider)
		notifier = email.NewNotifier(emailService, cfg.AdminEmail)
		log.Printf("📧 Using Email provider: %s", emailService.GetProviderName())
	} else {
		log.Printf("⚠️  Email service not configured")
	}

	// Init chatbot
	chatbot := chat.NewChatbot(llmService, translator)

	// Init automation engine
	var engine *automation.Engine
	var scheduler *automation.Scheduler
	if cfg.EnableAutomation {
		registry := automation.NewRegistry()
		engine = automation.NewEngine(registry, store, notifier)

		if err := automation.RegisterDefaultWorkflows(registry, cfg.DailyStatsTime); err != nil {
			log.Fatalf("Failed to register default workflows: %v", err)
		}

		scheduler = automation.NewScheduler(engine)
		if err := scheduler.AddDailyWorkflow(automation.WorkflowDailyStats, cfg.DailyStatsTime); err != nil {
			log.Fatalf("Failed to schedule daily stats workflow: %v", err)
		}
		scheduler.Start()
		defer scheduler.Stop()

		log.Printf("⏰ Automation enabled, daily stats at %s", cfg.DailyStatsTime)
	} else {
		log.Printf("⚠️  Automation disabled")
	}

	// Init handlers
	chatHandler := handlers.NewChatHandler(chatbot, engine, store.ChatLogs(), analyticsRepo)
	systemHandler := handlers.NewSystemHandler(store, chatbot, translator)

	// Init Fiber app
	app := fiber.New(fiber.Config{
		AppName: "JOKKO Multilingual Chatbot API",
	})

	// Middleware
	app.Use(cors.New())

	// Swagger
	app.Get("/swagger/*", swagger.HandlerDefault)

	// Chat routes
	app.Post("/webhook/chat", chatHandler.HandleChat)
	app.Post("/api/chat", chatHandler.HandleChat)
	app.Delete("/api/chat/:user_id/history", chatHandler.ClearHistory)
	app.Get("/api/chat/:user_id/logs", chatHandler.GetChatLogs)
	app.Get("/api/analytics/:user_id", chatHandler.GetUserAnalytics)

	// System routes
	app.Get("/api/health", systemHandler.GetHealth)
	app.Get("/api/languages", systemHandler.GetLanguages)
	app.Get("/api/stats", systemHandler.GetStats)

	// Workflow routes
	if engine != nil {
		workflowHandler := handlers.NewWorkflowHandler(engine, scheduler, store.Executions())
		app.Get("/api/workflows", workflowHandler.GetWorkflows)
		app.Post("/api/workflows/:id/execute", workflowHandler.ExecuteWorkflow)
		app.Patch("/api/workflows/:id", workflowHandler.UpdateWorkflow)
		app.Delete("/api/workflows/:id", workflowHandler.DeleteWorkflow)
		app.Get("/api/workflows/:id/executions", workflowHandler.GetWorkflowExecutions)
		app.Get("/api/executions/:execution_id", workflowHandler.GetExecution)
		app.Post("/api/error", workflowHandler.ReportError)
	}

	// Graceful shutdown on SIGINT/SIGTERM
	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
		<-quit
		log.Println("🛑 Shutting down...")
		if err := app.Shutdown(); err != nil {
			log.Printf("❌ Server shutdown error: %v", err)
		}
	}()

	// Start server
	if err := app.Listen(cfg.Host + ":" + cfg.Port); err != nil {
		log.Fatalf("❌ Server error: %v", err)
	}

	log.Println("✅ Server stopped")
}
