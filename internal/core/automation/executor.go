package automation

import (
	"context"
	"net/http"
	"time"

	"github.com/jokkoai/multilingual-chatbot-be/internal/models"
	"github.com/rs/zerolog/log"
)

// Store is the event log surface the engine needs: chat rows, aggregate
// stats, and execution records.
type Store interface {
	LogChat(entry *models.ChatLog) error
	ChatStats(days int) (*models.ChatStats, error)
	SaveExecution(record *models.WorkflowExecutionRecord) error
}

// Notifier delivers formatted messages to the admin recipient. A nil
// Notifier is a valid state: email-dependent actions report "not
// configured" instead of failing.
type Notifier interface {
	SendEmail(to, subject, body string) error
	SendAdminNotification(subject, message string, data map[string]interface{}) error
	AdminEmail() string
}

// ActionHandler executes one kind of action. Adding an action kind means
// implementing this interface and registering it, instead of extending a
// string switch.
type ActionHandler interface {
	Kind() ActionKind
	Execute(ctx context.Context, action Action, triggerData map[string]interface{}) (interface{}, error)
}

// Executor dispatches a single action to its registered handler
type Executor struct {
	handlers map[ActionKind]ActionHandler
}

// NewExecutor creates an executor with the built-in handlers registered.
// notifier may be nil.
func NewExecutor(store Store, notifier Notifier) *Executor {
	e := &Executor{handlers: make(map[ActionKind]ActionHandler)}

	httpClient := &http.Client{Timeout: 30 * time.Second}

	e.RegisterHandler(&logToStoreHandler{store: store})
	e.RegisterHandler(&sendEmailHandler{store: store, notifier: notifier})
	e.RegisterHandler(&notifyAdminHandler{notifier: notifier})
	e.RegisterHandler(&apiRequestHandler{client: httpClient})

	return e
}

// RegisterHandler registers a handler for its action kind, replacing any
// previous one.
func (e *Executor) RegisterHandler(handler ActionHandler) {
	e.handlers[handler.Kind()] = handler
}

// Execute runs a single action. An unregistered kind is logged and
// yields a nil result, not an error. Handler errors propagate to the
// runner, which aborts the rest of the workflow run.
func (e *Executor) Execute(ctx context.Context, action Action, triggerData map[string]interface{}) (interface{}, error) {
	handler, ok := e.handlers[action.Kind]
	if !ok {
		log.Warn().Str("action", action.ID).Str("kind", string(action.Kind)).Msg("Unknown action kind")
		return nil, nil
	}
	return handler.Execute(ctx, action, triggerData)
}
