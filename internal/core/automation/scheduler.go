package automation

import (
	"context"
	"fmt"
	"sync"

	"github.com/jokkoai/multilingual-chatbot-be/internal/config"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"
)

// Scheduler fires time-based workflow triggers independently of request
// traffic. It wraps a cron runner; daily "HH:MM" schedules are converted
// to cron expressions on the process-local clock.
type Scheduler struct {
	engine  *Engine
	cron    *cron.Cron
	jobs    map[string]cron.EntryID // workflow_id -> entry_id
	mu      sync.Mutex
	running bool
}

// NewScheduler creates a scheduler bound to an engine
func NewScheduler(engine *Engine) *Scheduler {
	return &Scheduler{
		engine: engine,
		cron:   cron.New(cron.WithSeconds()),
		jobs:   make(map[string]cron.EntryID),
	}
}

// AddDailyWorkflow schedules a workflow to run once a day at "HH:MM".
// Re-adding a workflow replaces its previous schedule.
func (s *Scheduler) AddDailyWorkflow(workflowID, dailyTime string) error {
	hour, minute, err := config.ParseDailyTime(dailyTime)
	if err != nil {
		return fmt.Errorf("invalid schedule for workflow %s: %w", workflowID, err)
	}
	spec := fmt.Sprintf("0 %d %d * * *", minute, hour)

	s.mu.Lock()
	defer s.mu.Unlock()

	if entryID, exists := s.jobs[workflowID]; exists {
		s.cron.Remove(entryID)
		delete(s.jobs, workflowID)
	}

	entryID, err := s.cron.AddFunc(spec, func() {
		s.runScheduled(workflowID)
	})
	if err != nil {
		return fmt.Errorf("failed to add cron job: %w", err)
	}

	s.jobs[workflowID] = entryID
	log.Info().Str("workflow", workflowID).Str("at", dailyTime).Msg("⏰ Scheduled daily workflow")
	return nil
}

// RemoveWorkflow removes a workflow from the schedule; no-op if absent.
func (s *Scheduler) RemoveWorkflow(workflowID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if entryID, exists := s.jobs[workflowID]; exists {
		s.cron.Remove(entryID)
		delete(s.jobs, workflowID)
	}
}

// Start begins firing schedules. Calling Start on a running scheduler is
// a no-op.
func (s *Scheduler) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return
	}
	s.running = true
	s.cron.Start()
	log.Info().Msg("⏰ Automation scheduler started")
}

// Stop signals the scheduler to exit and blocks until in-flight
// scheduled runs finish.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}
	s.running = false
	s.mu.Unlock()

	<-s.cron.Stop().Done()
	log.Info().Msg("⏰ Automation scheduler stopped")
}

// ScheduledWorkflows returns the ids currently on the schedule
func (s *Scheduler) ScheduledWorkflows() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	ids := make([]string, 0, len(s.jobs))
	for id := range s.jobs {
		ids = append(ids, id)
	}
	return ids
}

// runScheduled is the supervised entry point for timer fires: the run's
// outcome is logged instead of being dropped.
func (s *Scheduler) runScheduled(workflowID string) {
	log.Info().Str("workflow", workflowID).Msg("⏰ Scheduled workflow triggered")

	execution, err := s.engine.ExecuteWorkflow(context.Background(), workflowID, map[string]interface{}{})
	if err != nil {
		log.Error().Err(err).Str("workflow", workflowID).Msg("Scheduled workflow execution failed")
		return
	}
	if execution == nil {
		log.Info().Str("workflow", workflowID).Msg("Scheduled workflow skipped (disabled)")
		return
	}
	if execution.Status == StatusFailed {
		log.Error().Str("workflow", workflowID).Str("error", execution.ErrorMessage).Msg("Scheduled workflow completed with failure")
	}
}
