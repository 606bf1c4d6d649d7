package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hsaito/project-tracking-api/internal/dto"
	apierrors "github.com/hsaito/project-tracking-api/internal/errors"
	"github.com/hsaito/project-tracking-api/internal/middleware"
	"github.com/hsaito/project-tracking-api/internal/models"
	"github.com/hsaito/project-tracking-api/internal/services"
)

// TaskHandler coordinates task CRUD HTTP handlers. Every route runs behind
// RequireProjectAccess, so the parent project in context is known to belong
// to the caller.
type TaskHandler struct {
	taskService *services.TaskService
}

// NewTaskHandler creates a new TaskHandler.
func NewTaskHandler(taskService *services.TaskService) *TaskHandler {
	return &TaskHandler{
		taskService: taskService,
	}
}

// ListTasks returns all tasks under the resolved project.
func (h *TaskHandler) ListTasks(c *gin.Context) {
	project, ok := middleware.GetProject(c)
	if !ok {
		apierrors.InternalError(c, "Project not found in context")
		return
	}

	tasks, err := h.taskService.ListTasks(project.ID)
	if err != nil {
		apierrors.InternalError(c, "Failed to fetch tasks")
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTOs(tasks))
}

// CreateTask creates a task under the resolved project. Status defaults to
// todo; due dates are accepted as-is, past dates included.
func (h *TaskHandler) CreateTask(c *gin.Context) {
	project, ok := middleware.GetProject(c)
	if !ok {
		apierrors.InternalError(c, "Project not found in context")
		return
	}

	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	type CreateTaskRequest struct {
		Title       string `json:"title" binding:"required"`
		Description string `json:"description"`
		Status      string `json:"status" binding:"omitempty,oneof=todo in_progress done"`
		DueDate     string `json:"due_date"`
	}

	var req CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	var dueDate *time.Time
	if req.DueDate != "" {
		parsed, err := parseDate(req.DueDate)
		if err != nil {
			apierrors.BadRequest(c, "Invalid due date")
			return
		}
		dueDate = parsed
	}

	task, err := h.taskService.CreateTask(services.CreateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		Status:      models.TaskStatus(req.Status),
		DueDate:     dueDate,
		ProjectID:   project.ID,
		OwnerID:     userID,
	})
	if err != nil {
		apierrors.InternalError(c, "Failed to create task")
		return
	}

	c.JSON(http.StatusCreated, dto.ToTaskDTO(*task))
}

// GetTask returns a task already resolved and authorized by
// RequireTaskAccess.
func (h *TaskHandler) GetTask(c *gin.Context) {
	task, ok := middleware.GetTask(c)
	if !ok {
		apierrors.InternalError(c, "Task not found in context")
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTO(task))
}

// UpdateTask handles both full (PUT) and partial (PATCH) updates. Status
// moves freely between states; the updater stamp is reset to the caller.
func (h *TaskHandler) UpdateTask(c *gin.Context) {
	task, ok := middleware.GetTask(c)
	if !ok {
		apierrors.InternalError(c, "Task not found in context")
		return
	}

	userID, _ := middleware.GetUserID(c)

	if c.Request.Method == http.MethodPut {
		type UpdateTaskRequest struct {
			Title       string `json:"title" binding:"required"`
			Description string `json:"description"`
			Status      string `json:"status" binding:"omitempty,oneof=todo in_progress done"`
			DueDate     string `json:"due_date"`
		}

		var req UpdateTaskRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			apierrors.BadRequest(c, "Invalid request body")
			return
		}

		task.Title = req.Title
		task.Description = req.Description
		if req.Status != "" {
			task.Status = models.TaskStatus(req.Status)
		}
		task.DueDate = nil
		if req.DueDate != "" {
			parsed, err := parseDate(req.DueDate)
			if err != nil {
				apierrors.BadRequest(c, "Invalid due date")
				return
			}
			task.DueDate = parsed
		}
	} else {
		// Parse raw JSON to detect which fields were sent
		var rawReq map[string]any
		if err := c.ShouldBindJSON(&rawReq); err != nil {
			apierrors.BadRequest(c, "Invalid request body")
			return
		}

		if title, ok := rawReq["title"].(string); ok {
			task.Title = title
		}
		if description, ok := rawReq["description"].(string); ok {
			task.Description = description
		}
		if status, ok := rawReq["status"].(string); ok {
			if !validStatus(status) {
				apierrors.BadRequest(c, "Invalid status")
				return
			}
			task.Status = models.TaskStatus(status)
		}
		if _, ok := rawReq["due_date"]; ok {
			// due_date was provided (might be null)
			if rawReq["due_date"] == nil {
				task.DueDate = nil
			} else if dueDateStr, ok := rawReq["due_date"].(string); ok {
				parsed, err := parseDate(dueDateStr)
				if err != nil {
					apierrors.BadRequest(c, "Invalid due date")
					return
				}
				task.DueDate = parsed
			}
		}
	}

	updated, err := h.taskService.UpdateTask(&task, userID)
	if err != nil {
		apierrors.InternalError(c, "Failed to update task")
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTO(*updated))
}

// DeleteTask removes a task.
func (h *TaskHandler) DeleteTask(c *gin.Context) {
	task, ok := middleware.GetTask(c)
	if !ok {
		apierrors.InternalError(c, "Task not found in context")
		return
	}

	if err := h.taskService.DeleteTask(task.ID); err != nil {
		apierrors.InternalError(c, "Failed to delete task")
		return
	}

	c.Status(http.StatusNoContent)
}

func validStatus(value string) bool {
	switch models.TaskStatus(value) {
	case models.TaskStatusTodo, models.TaskStatusInProgress, models.TaskStatusDone:
		return true
	default:
		return false
	}
}

// parseDate accepts a date-only value, falling back to RFC3339 timestamps.
func parseDate(value string) (*time.Time, error) {
	parsed, err := time.Parse("2006-01-02", value)
	if err != nil {
		parsed, err = time.Parse(time.RFC3339, value)
		if err != nil {
			return nil, err
		}
	}
	return &parsed, nil
}
