package repositories

import (
	"github.com/jokkoai/multilingual-chatbot-be/internal/models"
	"gorm.io/gorm"
)

// EventStore bundles the repositories the automation engine writes to.
// It satisfies the engine's Store interface.
type EventStore struct {
	chatLogs   ChatLogRepo
	executions ExecutionRepo
}

// NewEventStore creates an event store over the given database
func NewEventStore(db *gorm.DB) *EventStore {
	return &EventStore{
		chatLogs:   NewChatLogRepo(db),
		executions: NewExecutionRepo(db),
	}
}

func (s *EventStore) LogChat(entry *models.ChatLog) error {
	return s.chatLogs.Create(entry)
}

func (s *EventStore) ChatStats(days int) (*models.ChatStats, error) {
	return s.chatLogs.Stats(days)
}

func (s *EventStore) SaveExecution(record *models.WorkflowExecutionRecord) error {
	return s.executions.Upsert(record)
}

// Executions exposes the execution repository for read paths
func (s *EventStore) Executions() ExecutionRepo {
	return s.executions
}

// ChatLogs exposes the chat log repository for read paths
func (s *EventStore) ChatLogs() ChatLogRepo {
	return s.chatLogs
}
