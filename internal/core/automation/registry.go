package automation

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"
)

// requiredConfigKeys lists the config keys each trigger/action kind needs
// at registration time. Kinds not listed have no required keys.
var (
	requiredTriggerKeys = map[TriggerKind][]string{
		TriggerWebhook:  {"endpoint"},
		TriggerSchedule: {"time"},
		TriggerAPICall:  {"endpoint"},
	}
	requiredActionKeys = map[ActionKind][]string{
		ActionSendEmail:  {"template"},
		ActionAPIRequest: {"url"},
	}
)

// Registry holds named workflows keyed by id. All mutation goes through
// the mutex so concurrent request handlers and the scheduler stay safe.
type Registry struct {
	mu        sync.RWMutex
	workflows map[string]*Workflow
	validate  *validator.Validate
}

// NewRegistry creates an empty workflow registry
func NewRegistry() *Registry {
	return &Registry{
		workflows: make(map[string]*Workflow),
		validate:  validator.New(),
	}
}

// Register inserts or overwrites a workflow by id. Required config keys
// are checked here so a misconfigured workflow fails fast instead of at
// execution time.
func (r *Registry) Register(wf Workflow) error {
	if err := r.validate.Struct(wf); err != nil {
		return fmt.Errorf("invalid workflow: %w", err)
	}

	seen := make(map[string]struct{}, len(wf.Actions))
	for _, action := range wf.Actions {
		if action.ID == "" {
			return fmt.Errorf("workflow %s: action with empty id", wf.ID)
		}
		if _, dup := seen[action.ID]; dup {
			return fmt.Errorf("workflow %s: duplicate action id %q", wf.ID, action.ID)
		}
		seen[action.ID] = struct{}{}

		for _, key := range requiredActionKeys[action.Kind] {
			if _, ok := configString(action.Config, key); !ok {
				return fmt.Errorf("workflow %s: action %s (%s) missing config key %q",
					wf.ID, action.ID, action.Kind, key)
			}
		}
	}

	for _, key := range requiredTriggerKeys[wf.Trigger.Kind] {
		if _, ok := configString(wf.Trigger.Config, key); !ok {
			return fmt.Errorf("workflow %s: trigger (%s) missing config key %q",
				wf.ID, wf.Trigger.Kind, key)
		}
	}

	if wf.CreatedAt.IsZero() {
		wf.CreatedAt = time.Now()
	}

	r.mu.Lock()
	r.workflows[wf.ID] = &wf
	r.mu.Unlock()

	log.Info().Str("workflow", wf.ID).Str("name", wf.Name).Msg("Registered workflow")
	return nil
}

// Remove deletes a workflow if present; no-op otherwise.
func (r *Registry) Remove(workflowID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.workflows[workflowID]; ok {
		delete(r.workflows, workflowID)
		log.Info().Str("workflow", workflowID).Msg("Removed workflow")
	}
}

// Get returns a copy of the workflow, or false if unknown.
func (r *Registry) Get(workflowID string) (Workflow, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	wf, ok := r.workflows[workflowID]
	if !ok {
		return Workflow{}, false
	}
	return *wf, true
}

// SetEnabled toggles a workflow; returns false if unknown.
func (r *Registry) SetEnabled(workflowID string, enabled bool) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	wf, ok := r.workflows[workflowID]
	if !ok {
		return false
	}
	wf.Enabled = enabled
	return true
}

// UpdateLastRun records the completion time of a successful run.
func (r *Registry) UpdateLastRun(workflowID string, at time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if wf, ok := r.workflows[workflowID]; ok {
		wf.LastRun = &at
	}
}

// FindByWebhookEndpoint returns all enabled workflows whose trigger is a
// webhook on the given endpoint. Match order is not guaranteed.
func (r *Registry) FindByWebhookEndpoint(endpoint string) []Workflow {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var matches []Workflow
	for _, wf := range r.workflows {
		if !wf.Enabled || wf.Trigger.Kind != TriggerWebhook {
			continue
		}
		if ep, ok := configString(wf.Trigger.Config, "endpoint"); ok && ep == endpoint {
			matches = append(matches, *wf)
		}
	}
	return matches
}

// StatusSnapshot returns counts and a per-workflow summary. Workflows
// are sorted by id so repeated calls without mutation yield identical
// output.
func (r *Registry) StatusSnapshot() StatusSnapshot {
	r.mu.RLock()
	defer r.mu.RUnlock()

	snapshot := StatusSnapshot{
		TotalWorkflows: len(r.workflows),
		Workflows:      make([]WorkflowStatus, 0, len(r.workflows)),
	}

	for _, wf := range r.workflows {
		if wf.Enabled {
			snapshot.EnabledWorkflows++
		}
		status := WorkflowStatus{
			ID:      wf.ID,
			Name:    wf.Name,
			Enabled: wf.Enabled,
		}
		if wf.LastRun != nil {
			iso := wf.LastRun.Format(time.RFC3339)
			status.LastRun = &iso
		}
		snapshot.Workflows = append(snapshot.Workflows, status)
	}

	sort.Slice(snapshot.Workflows, func(i, j int) bool {
		return snapshot.Workflows[i].ID < snapshot.Workflows[j].ID
	})

	return snapshot
}
