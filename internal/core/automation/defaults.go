package automation

import "fmt"

// Default workflow ids preloaded at startup
const (
	WorkflowChatLogging       = "chat_logging"
	WorkflowDailyStats        = "daily_stats"
	WorkflowErrorNotification = "error_notification"
)

// RegisterDefaultWorkflows preloads the three stock workflows: chat
// logging on the chat webhook, the daily stats report on a schedule,
// and admin notification on reported API errors.
func RegisterDefaultWorkflows(registry *Registry, dailyStatsTime string) error {
	defaults := []Workflow{
		{
			ID:          WorkflowChatLogging,
			Name:        "Chat Interaction Logging",
			Description: "Log all chat interactions to database",
			Trigger: Trigger{
				ID:      "chat_trigger",
				Kind:    TriggerWebhook,
				Config:  map[string]interface{}{"endpoint": "/webhook/chat"},
				Enabled: true,
			},
			Actions: []Action{
				{
					ID:      "log_chat",
					Kind:    ActionLogToStore,
					Config:  map[string]interface{}{"table": "chat_logs"},
					Enabled: true,
				},
			},
			Enabled: true,
		},
		{
			ID:          WorkflowDailyStats,
			Name:        "Daily Statistics Report",
			Description: "Send daily usage statistics to admin",
			Trigger: Trigger{
				ID:      "daily_schedule",
				Kind:    TriggerSchedule,
				Config:  map[string]interface{}{"schedule": "daily", "time": dailyStatsTime},
				Enabled: true,
			},
			Actions: []Action{
				{
					ID:      "send_stats_email",
					Kind:    ActionSendEmail,
					Config:  map[string]interface{}{"template": "daily_stats"},
					Enabled: true,
				},
			},
			Enabled: true,
		},
		{
			ID:          WorkflowErrorNotification,
			Name:        "Error Notification",
			Description: "Notify admin of system errors",
			Trigger: Trigger{
				ID:      "error_trigger",
				Kind:    TriggerAPICall,
				Config:  map[string]interface{}{"endpoint": "/api/error"},
				Enabled: true,
			},
			Actions: []Action{
				{
					ID:      "notify_admin",
					Kind:    ActionNotifyAdmin,
					Config:  map[string]interface{}{"priority": "high"},
					Enabled: true,
				},
			},
			Enabled: true,
		},
	}

	for _, wf := range defaults {
		if err := registry.Register(wf); err != nil {
			return fmt.Errorf("failed to register default workflow %s: %w", wf.ID, err)
		}
	}
	return nil
}
