package automation

import "time"

// TriggerKind identifies what external event activates a workflow
type TriggerKind string

const (
	TriggerWebhook  TriggerKind = "webhook"
	TriggerSchedule TriggerKind = "schedule"
	TriggerEmail    TriggerKind = "email"
	TriggerDatabase TriggerKind = "database"
	TriggerAPICall  TriggerKind = "api_call"
)

// ActionKind identifies one kind of side-effecting step
type ActionKind string

const (
	ActionSendEmail     ActionKind = "send_email"
	ActionLogToStore    ActionKind = "log_to_store"
	ActionAPIRequest    ActionKind = "api_request"
	ActionProcessChat   ActionKind = "process_chat"
	ActionTranslateText ActionKind = "translate_text"
	ActionNotifyAdmin   ActionKind = "notify_admin"
)

// ExecutionStatus tracks the lifecycle of one workflow run
type ExecutionStatus string

const (
	StatusRunning   ExecutionStatus = "running"
	StatusCompleted ExecutionStatus = "completed"
	StatusFailed    ExecutionStatus = "failed"
)

// Trigger is the condition under which a workflow fires
type Trigger struct {
	ID      string                 `json:"id"`
	Kind    TriggerKind            `json:"kind"`
	Config  map[string]interface{} `json:"config"`
	Enabled bool                   `json:"enabled"`
}

// Action is a single step of work within a workflow
type Action struct {
	ID      string                 `json:"id"`
	Kind    ActionKind             `json:"kind"`
	Config  map[string]interface{} `json:"config"`
	Enabled bool                   `json:"enabled"`
}

// Workflow pairs one trigger with an ordered list of actions. The
// workflow owns its trigger and actions by value.
type Workflow struct {
	ID          string     `json:"id" validate:"required"`
	Name        string     `json:"name" validate:"required"`
	Description string     `json:"description"`
	Trigger     Trigger    `json:"trigger"`
	Actions     []Action   `json:"actions" validate:"min=1"`
	Enabled     bool       `json:"enabled"`
	CreatedAt   time.Time  `json:"created_at"`
	LastRun     *time.Time `json:"last_run,omitempty"`
}

// Execution records one concrete invocation of a workflow. Finalized
// exactly once before persistence, never mutated afterwards.
type Execution struct {
	ExecutionID  string                 `json:"execution_id"`
	WorkflowID   string                 `json:"workflow_id"`
	TriggerData  map[string]interface{} `json:"trigger_data"`
	Status       ExecutionStatus        `json:"status"`
	StartTime    time.Time              `json:"start_time"`
	EndTime      *time.Time             `json:"end_time,omitempty"`
	ErrorMessage string                 `json:"error_message,omitempty"`
	Results      map[string]interface{} `json:"results,omitempty"` // action_id -> result
}

// WorkflowStatus is a read-only summary of one registered workflow
type WorkflowStatus struct {
	ID      string  `json:"id"`
	Name    string  `json:"name"`
	Enabled bool    `json:"enabled"`
	LastRun *string `json:"last_run"` // ISO-8601 or null
}

// StatusSnapshot summarizes the registry at a point in time
type StatusSnapshot struct {
	TotalWorkflows   int              `json:"total_workflows"`
	EnabledWorkflows int              `json:"enabled_workflows"`
	Workflows        []WorkflowStatus `json:"workflows"`
}

// configString reads a string value from an untyped config map.
func configString(config map[string]interface{}, key string) (string, bool) {
	if config == nil {
		return "", false
	}
	v, ok := config[key].(string)
	return v, ok && v != ""
}
