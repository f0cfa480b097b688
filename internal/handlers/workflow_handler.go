package handlers

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/jokkoai/multilingual-chatbot-be/internal/core/automation"
	"github.com/jokkoai/multilingual-chatbot-be/internal/repositories"
)

// WorkflowHandler handles workflow management requests
type WorkflowHandler struct {
	engine     *automation.Engine
	scheduler  *automation.Scheduler
	executions repositories.ExecutionRepo
}

// NewWorkflowHandler creates a new workflow handler
func NewWorkflowHandler(engine *automation.Engine, scheduler *automation.Scheduler, executions repositories.ExecutionRepo) *WorkflowHandler {
	return &WorkflowHandler{
		engine:     engine,
		scheduler:  scheduler,
		executions: executions,
	}
}

// GetWorkflows godoc
// @Summary Get workflow status
// @Description Retrieve a snapshot of all registered workflows
// @Tags Workflows
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /api/workflows [get]
func (h *WorkflowHandler) GetWorkflows(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status": "success",
		"data":   h.engine.Registry().StatusSnapshot(),
	})
}

// ExecuteWorkflow godoc
// @Summary Manually execute a workflow
// @Description Run a workflow with optional trigger data
// @Tags Workflows
// @Accept json
// @Produce json
// @Param id path string true "Workflow ID"
// @Param request body map[string]interface{} false "Trigger data"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]string
// @Router /api/workflows/{id}/execute [post]
func (h *WorkflowHandler) ExecuteWorkflow(c *fiber.Ctx) error {
	workflowID := c.Params("id")

	triggerData := make(map[string]interface{})
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&triggerData); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid request body",
			})
		}
	}
	triggerData["triggered_by"] = "manual"

	execution, err := h.engine.ExecuteWorkflow(c.Context(), workflowID, triggerData)
	if err != nil {
		if errors.Is(err, automation.ErrWorkflowNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "workflow not found",
			})
		}
		// Failed executions still carry the execution record
		if execution != nil {
			return c.JSON(fiber.Map{
				"status": "success",
				"data":   execution,
			})
		}
		log.Printf("❌ Failed to execute workflow %s: %v", workflowID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to execute workflow",
		})
	}

	if execution == nil {
		return c.JSON(fiber.Map{
			"status":  "skipped",
			"message": "workflow is disabled",
		})
	}

	return c.JSON(fiber.Map{
		"status": "success",
		"data":   execution,
	})
}

// UpdateWorkflowRequest toggles a workflow on or off
type UpdateWorkflowRequest struct {
	Enabled *bool `json:"enabled"`
}

// UpdateWorkflow godoc
// @Summary Enable or disable a workflow
// @Description Toggle the enabled flag of a registered workflow
// @Tags Workflows
// @Accept json
// @Produce json
// @Param id path string true "Workflow ID"
// @Param request body UpdateWorkflowRequest true "Update"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /api/workflows/{id} [patch]
func (h *WorkflowHandler) UpdateWorkflow(c *fiber.Ctx) error {
	workflowID := c.Params("id")

	var req UpdateWorkflowRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body",
		})
	}
	if req.Enabled == nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "enabled is required",
		})
	}

	if !h.engine.Registry().SetEnabled(workflowID, *req.Enabled) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "workflow not found",
		})
	}

	return c.JSON(fiber.Map{
		"status":  "success",
		"message": "Workflow updated successfully",
	})
}

// DeleteWorkflow godoc
// @Summary Delete a workflow
// @Description Remove a workflow from the registry and scheduler
// @Tags Workflows
// @Produce json
// @Param id path string true "Workflow ID"
// @Success 200 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /api/workflows/{id} [delete]
func (h *WorkflowHandler) DeleteWorkflow(c *fiber.Ctx) error {
	workflowID := c.Params("id")

	if _, ok := h.engine.Registry().Get(workflowID); !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "workflow not found",
		})
	}

	if h.scheduler != nil {
		h.scheduler.RemoveWorkflow(workflowID)
	}
	h.engine.Registry().Remove(workflowID)

	return c.JSON(fiber.Map{
		"status":  "success",
		"message": "Workflow deleted successfully",
	})
}

// GetWorkflowExecutions godoc
// @Summary Get workflow execution history
// @Description Retrieve persisted execution records for a workflow
// @Tags Workflows
// @Produce json
// @Param id path string true "Workflow ID"
// @Param limit query int false "Limit number of results" default(50)
// @Success 200 {object} map[string]interface{}
// @Failure 500 {object} map[string]string
// @Router /api/workflows/{id}/executions [get]
func (h *WorkflowHandler) GetWorkflowExecutions(c *fiber.Ctx) error {
	workflowID := c.Params("id")
	limit := c.QueryInt("limit", 50)

	records, err := h.executions.FindByWorkflowID(workflowID, limit)
	if err != nil {
		log.Printf("❌ Failed to get executions: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to retrieve executions",
		})
	}

	return c.JSON(fiber.Map{
		"status": "success",
		"count":  len(records),
		"data":   records,
	})
}

// GetExecution godoc
// @Summary Get a single execution
// @Description Retrieve one persisted execution record by its id
// @Tags Workflows
// @Produce json
// @Param execution_id path string true "Execution ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]string
// @Router /api/executions/{execution_id} [get]
func (h *WorkflowHandler) GetExecution(c *fiber.Ctx) error {
	executionID := c.Params("execution_id")

	record, err := h.executions.FindByExecutionID(executionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "execution not found",
			})
		}
		log.Printf("❌ Failed to get execution %s: %v", executionID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to retrieve execution",
		})
	}

	return c.JSON(fiber.Map{
		"status": "success",
		"data":   record,
	})
}

// ReportError godoc
// @Summary Report an API error
// @Description Run the error notification workflow with the reported error details
// @Tags Workflows
// @Accept json
// @Produce json
// @Param request body map[string]interface{} true "Error details"
// @Success 200 {object} map[string]interface{}
// @Router /api/error [post]
func (h *WorkflowHandler) ReportError(c *fiber.Ctx) error {
	errorData := make(map[string]interface{})
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&errorData); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid request body",
			})
		}
	}

	execution, err := h.engine.ExecuteWorkflow(c.Context(), automation.WorkflowErrorNotification, errorData)
	if err != nil && execution == nil {
		log.Printf("❌ Error notification failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to process error report",
		})
	}

	return c.JSON(fiber.Map{
		"status": "success",
		"data":   execution,
	})
}
