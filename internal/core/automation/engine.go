package automation

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jokkoai/multilingual-chatbot-be/internal/models"
	"github.com/rs/zerolog/log"
)

// ErrWorkflowNotFound is returned when an unknown workflow id is executed
var ErrWorkflowNotFound = errors.New("workflow not found")

// Engine runs workflows: it matches incoming events to registered
// workflows, executes their actions in order, and records every run in
// the event log store. Construct one per process and pass it by handle;
// there is no package-level state.
type Engine struct {
	registry *Registry
	executor *Executor
	store    Store
}

// NewEngine creates an automation engine. notifier may be nil; email
// actions then degrade to "not configured" results.
func NewEngine(registry *Registry, store Store, notifier Notifier) *Engine {
	return &Engine{
		registry: registry,
		executor: NewExecutor(store, notifier),
		store:    store,
	}
}

// Registry exposes the engine's workflow registry
func (e *Engine) Registry() *Registry {
	return e.registry
}

// ExecuteWorkflow runs one workflow against the given trigger data.
// Unknown ids fail with ErrWorkflowNotFound. Disabled workflows are
// skipped: the returned execution is nil and nothing is persisted. Any
// action error aborts the remaining actions; partial results are
// discarded and only the error message is kept on the failed execution.
func (e *Engine) ExecuteWorkflow(ctx context.Context, workflowID string, triggerData map[string]interface{}) (*Execution, error) {
	wf, ok := e.registry.Get(workflowID)
	if !ok {
		return nil, fmt.Errorf("workflow %q: %w", workflowID, ErrWorkflowNotFound)
	}

	if !wf.Enabled {
		log.Info().Str("workflow", workflowID).Msg("Workflow is disabled, skipping")
		return nil, nil
	}

	execution := &Execution{
		ExecutionID: newExecutionID(workflowID),
		WorkflowID:  workflowID,
		TriggerData: triggerData,
		Status:      StatusRunning,
		StartTime:   time.Now(),
	}

	log.Info().Str("workflow", wf.Name).Str("execution", execution.ExecutionID).Msg("🚀 Executing workflow")

	results := make(map[string]interface{})
	var runErr error
	for _, action := range wf.Actions {
		if !action.Enabled {
			continue
		}
		result, err := e.executor.Execute(ctx, action, triggerData)
		if err != nil {
			runErr = err
			break
		}
		results[action.ID] = result
	}

	endTime := time.Now()
	execution.EndTime = &endTime

	if runErr != nil {
		execution.Status = StatusFailed
		execution.ErrorMessage = runErr.Error()
		log.Error().Err(runErr).Str("workflow", wf.Name).Msg("Workflow failed")
	} else {
		execution.Status = StatusCompleted
		execution.Results = results
		e.registry.UpdateLastRun(workflowID, endTime)
		log.Info().Str("workflow", wf.Name).Msg("✅ Workflow completed")
	}

	if err := e.persist(execution); err != nil {
		return execution, fmt.Errorf("failed to persist execution %s: %w", execution.ExecutionID, err)
	}

	return execution, nil
}

// TriggerWebhook executes every enabled workflow registered for the
// endpoint. Matches run sequentially and independently: one failing run
// does not stop the others.
func (e *Engine) TriggerWebhook(ctx context.Context, endpoint string, data map[string]interface{}) {
	for _, wf := range e.registry.FindByWebhookEndpoint(endpoint) {
		if _, err := e.ExecuteWorkflow(ctx, wf.ID, data); err != nil {
			log.Error().Err(err).Str("workflow", wf.ID).Str("endpoint", endpoint).Msg("Webhook workflow failed")
		}
	}
}

func (e *Engine) persist(execution *Execution) error {
	record := &models.WorkflowExecutionRecord{
		ExecutionID: execution.ExecutionID,
		WorkflowID:  execution.WorkflowID,
		Status:      string(execution.Status),
		StartTime:   execution.StartTime,
		EndTime:     execution.EndTime,
	}

	if execution.TriggerData != nil {
		raw, err := json.Marshal(execution.TriggerData)
		if err != nil {
			return fmt.Errorf("failed to marshal trigger data: %w", err)
		}
		record.TriggerData = raw
	}
	if execution.Results != nil {
		raw, err := json.Marshal(execution.Results)
		if err != nil {
			return fmt.Errorf("failed to marshal results: %w", err)
		}
		record.Results = raw
	}
	if execution.ErrorMessage != "" {
		msg := execution.ErrorMessage
		record.ErrorMessage = &msg
	}

	return e.store.SaveExecution(record)
}

// newExecutionID builds a unique execution id. The timestamp keeps ids
// grep-able by time; the random suffix prevents two runs of the same
// workflow within one second from colliding and silently overwriting
// each other on upsert.
func newExecutionID(workflowID string) string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
	return fmt.Sprintf("%s_%d_%s", workflowID, time.Now().Unix(), suffix)
}
