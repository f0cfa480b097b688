package automation

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jokkoai/multilingual-chatbot-be/internal/models"
)

type mockStore struct {
	chatLogs   []*models.ChatLog
	executions []*models.WorkflowExecutionRecord
	stats      *models.ChatStats

	logChatErr       error
	chatStatsErr     error
	saveExecutionErr error
}

func (m *mockStore) LogChat(entry *models.ChatLog) error {
	if m.logChatErr != nil {
		return m.logChatErr
	}
	m.chatLogs = append(m.chatLogs, entry)
	return nil
}

func (m *mockStore) ChatStats(days int) (*models.ChatStats, error) {
	if m.chatStatsErr != nil {
		return nil, m.chatStatsErr
	}
	if m.stats != nil {
		return m.stats, nil
	}
	return &models.ChatStats{PeriodDays: days, MessagesByLanguage: map[string]int64{}}, nil
}

func (m *mockStore) SaveExecution(record *models.WorkflowExecutionRecord) error {
	if m.saveExecutionErr != nil {
		return m.saveExecutionErr
	}
	m.executions = append(m.executions, record)
	return nil
}

type mockNotifier struct {
	emails        []string
	notifications []string
	sendErr       error
}

func (m *mockNotifier) SendEmail(to, subject, body string) error {
	if m.sendErr != nil {
		return m.sendErr
	}
	m.emails = append(m.emails, subject)
	return nil
}

func (m *mockNotifier) SendAdminNotification(subject, message string, data map[string]interface{}) error {
	if m.sendErr != nil {
		return m.sendErr
	}
	m.notifications = append(m.notifications, subject)
	return nil
}

func (m *mockNotifier) AdminEmail() string {
	return "admin@example.com"
}

func webhookWorkflow(id string, actions ...Action) Workflow {
	return Workflow{
		ID:   id,
		Name: "Test " + id,
		Trigger: Trigger{
			ID:      id + "_trigger",
			Kind:    TriggerWebhook,
			Config:  map[string]interface{}{"endpoint": "/webhook/chat"},
			Enabled: true,
		},
		Actions: actions,
		Enabled: true,
	}
}

func TestExecuteWorkflowUnknown(t *testing.T) {
	engine := NewEngine(NewRegistry(), &mockStore{}, nil)

	execution, err := engine.ExecuteWorkflow(context.Background(), "missing", nil)

	assert.Nil(t, execution)
	assert.ErrorIs(t, err, ErrWorkflowNotFound)
}

func TestExecuteWorkflowDisabled(t *testing.T) {
	store := &mockStore{}
	registry := NewRegistry()
	engine := NewEngine(registry, store, nil)

	wf := webhookWorkflow("wf1", Action{
		ID:      "a1",
		Kind:    ActionLogToStore,
		Enabled: true,
	})
	wf.Enabled = false
	require.NoError(t, registry.Register(wf))

	execution, err := engine.ExecuteWorkflow(context.Background(), "wf1", nil)

	assert.Nil(t, execution)
	assert.NoError(t, err)
	assert.Empty(t, store.executions, "skipped run must not be persisted")
}

func TestExecuteWorkflowCompleted(t *testing.T) {
	store := &mockStore{}
	registry := NewRegistry()
	engine := NewEngine(registry, store, nil)

	require.NoError(t, registry.Register(webhookWorkflow("wf1",
		Action{ID: "log_chat", Kind: ActionLogToStore, Enabled: true},
	)))

	triggerData := map[string]interface{}{
		"chat_data": map[string]interface{}{
			"user_id":         "u1",
			"message":         "ciao",
			"response":        "salve",
			"language":        "it",
			"processing_time": 0.42,
		},
	}

	execution, err := engine.ExecuteWorkflow(context.Background(), "wf1", triggerData)

	require.NoError(t, err)
	require.NotNil(t, execution)
	assert.Equal(t, StatusCompleted, execution.Status)
	assert.Equal(t, "Chat logged successfully", execution.Results["log_chat"])
	assert.NotNil(t, execution.EndTime)

	require.Len(t, store.chatLogs, 1)
	assert.Equal(t, "u1", store.chatLogs[0].UserID)
	assert.Equal(t, 0.42, store.chatLogs[0].ProcessingTime)

	require.Len(t, store.executions, 1)
	assert.Equal(t, "completed", store.executions[0].Status)

	wf, ok := registry.Get("wf1")
	require.True(t, ok)
	assert.NotNil(t, wf.LastRun, "last_run updates on success")
}

func TestExecutionPersistenceRoundTrip(t *testing.T) {
	store := &mockStore{}
	registry := NewRegistry()
	engine := NewEngine(registry, store, nil)

	require.NoError(t, registry.Register(webhookWorkflow("wf1",
		Action{ID: "log_chat", Kind: ActionLogToStore, Enabled: true},
	)))

	triggerData := map[string]interface{}{
		"chat_data": map[string]interface{}{
			"user_id":         "u1",
			"message":         "ciao",
			"response":        "salve",
			"language":        "it",
			"processing_time": 0.42,
			"session_id":      "s-42",
		},
	}

	execution, err := engine.ExecuteWorkflow(context.Background(), "wf1", triggerData)
	require.NoError(t, err)
	require.NotNil(t, execution)

	require.Len(t, store.executions, 1)
	record := store.executions[0]
	assert.Equal(t, execution.ExecutionID, record.ExecutionID)
	assert.Equal(t, "wf1", record.WorkflowID)
	assert.Equal(t, "completed", record.Status)

	// The serialized record must decode back to the exact input maps
	var gotTrigger map[string]interface{}
	require.NoError(t, json.Unmarshal(record.TriggerData, &gotTrigger))
	assert.Equal(t, triggerData, gotTrigger)

	var gotResults map[string]interface{}
	require.NoError(t, json.Unmarshal(record.Results, &gotResults))
	assert.Equal(t, map[string]interface{}{"log_chat": "Chat logged successfully"}, gotResults)
}

func TestExecuteWorkflowDisabledActionSkipped(t *testing.T) {
	store := &mockStore{}
	registry := NewRegistry()
	engine := NewEngine(registry, store, nil)

	require.NoError(t, registry.Register(webhookWorkflow("wf1",
		Action{ID: "off", Kind: ActionLogToStore, Enabled: false},
		Action{ID: "on", Kind: ActionLogToStore, Enabled: true},
	)))

	execution, err := engine.ExecuteWorkflow(context.Background(), "wf1", nil)

	require.NoError(t, err)
	require.NotNil(t, execution)
	assert.Equal(t, StatusCompleted, execution.Status)
	assert.NotContains(t, execution.Results, "off")
	assert.Contains(t, execution.Results, "on")
}

func TestExecuteWorkflowFailureDiscardsPartialResults(t *testing.T) {
	store := &mockStore{logChatErr: errors.New("db down")}
	registry := NewRegistry()
	engine := NewEngine(registry, store, nil)

	require.NoError(t, registry.Register(webhookWorkflow("wf1",
		Action{ID: "notify", Kind: ActionNotifyAdmin, Enabled: true},
		Action{ID: "log_chat", Kind: ActionLogToStore, Enabled: true},
		Action{ID: "never_runs", Kind: ActionNotifyAdmin, Enabled: true},
	)))

	triggerData := map[string]interface{}{
		"chat_data": map[string]interface{}{"user_id": "u1"},
	}
	execution, err := engine.ExecuteWorkflow(context.Background(), "wf1", triggerData)

	require.NoError(t, err)
	require.NotNil(t, execution)
	assert.Equal(t, StatusFailed, execution.Status)
	assert.Contains(t, execution.ErrorMessage, "db down")
	assert.Nil(t, execution.Results, "failed run keeps no partial results")

	// Failed runs are still persisted
	require.Len(t, store.executions, 1)
	assert.Equal(t, "failed", store.executions[0].Status)
	require.NotNil(t, store.executions[0].ErrorMessage)

	wf, ok := registry.Get("wf1")
	require.True(t, ok)
	assert.Nil(t, wf.LastRun, "last_run must not update on failure")
}

func TestExecuteWorkflowPersistError(t *testing.T) {
	store := &mockStore{saveExecutionErr: errors.New("insert failed")}
	registry := NewRegistry()
	engine := NewEngine(registry, store, nil)

	require.NoError(t, registry.Register(webhookWorkflow("wf1",
		Action{ID: "notify", Kind: ActionNotifyAdmin, Enabled: true},
	)))

	execution, err := engine.ExecuteWorkflow(context.Background(), "wf1", nil)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "insert failed")
	require.NotNil(t, execution, "execution is returned even when persistence fails")
	assert.Equal(t, StatusCompleted, execution.Status)
}

func TestTriggerWebhookIsolation(t *testing.T) {
	store := &mockStore{logChatErr: errors.New("db down")}
	registry := NewRegistry()
	engine := NewEngine(registry, store, &mockNotifier{})

	// First workflow fails, second must still run
	require.NoError(t, registry.Register(webhookWorkflow("failing",
		Action{ID: "log_chat", Kind: ActionLogToStore, Enabled: true},
	)))
	require.NoError(t, registry.Register(webhookWorkflow("healthy",
		Action{ID: "notify", Kind: ActionNotifyAdmin, Enabled: true},
	)))

	triggerData := map[string]interface{}{
		"chat_data": map[string]interface{}{"user_id": "u1"},
	}
	engine.TriggerWebhook(context.Background(), "/webhook/chat", triggerData)

	statuses := make(map[string]string)
	for _, rec := range store.executions {
		statuses[rec.WorkflowID] = rec.Status
	}
	assert.Equal(t, "failed", statuses["failing"])
	assert.Equal(t, "completed", statuses["healthy"])
}

func TestTriggerWebhookNoMatch(t *testing.T) {
	store := &mockStore{}
	engine := NewEngine(NewRegistry(), store, nil)

	engine.TriggerWebhook(context.Background(), "/webhook/unknown", nil)

	assert.Empty(t, store.executions)
}

func TestNewExecutionID(t *testing.T) {
	id1 := newExecutionID("daily_stats")
	id2 := newExecutionID("daily_stats")

	assert.True(t, strings.HasPrefix(id1, fmt.Sprintf("daily_stats_%d", time.Now().Unix())) ||
		strings.HasPrefix(id1, "daily_stats_"))
	assert.NotEqual(t, id1, id2, "two runs in the same second must not collide")

	parts := strings.Split(strings.TrimPrefix(id1, "daily_stats_"), "_")
	require.Len(t, parts, 2)
	assert.Len(t, parts[1], 8)
}
