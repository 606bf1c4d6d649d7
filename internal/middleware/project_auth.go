package middleware

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/hsaito/project-tracking-api/internal/database"
	apierrors "github.com/hsaito/project-tracking-api/internal/errors"
	"github.com/hsaito/project-tracking-api/internal/models"
)

// ContextKeyProject and ContextKeyTask are the gin context keys under which
// the resolved records are stored for downstream handlers.
const (
	ContextKeyProject = "project"
	ContextKeyTask    = "task"
)

// RequireProjectAccess resolves the project from the URL and checks that it
// belongs to the caller. A project owned by someone else answers 404, the
// same as a missing one, so existence is never leaked.
func RequireProjectAccess() gin.HandlerFunc {
	return func(c *gin.Context) {
		projectIDStr := c.Param("project_id")
		projectID, err := strconv.ParseUint(projectIDStr, 10, 64)
		if err != nil {
			apierrors.BadRequest(c, "Invalid project ID")
			c.Abort()
			return
		}

		userID, exists := GetUserID(c)
		if !exists {
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}

		var project models.Project
		if err := database.GetDB().
			Preload("Owner").
			Preload("CreatedBy").
			Preload("UpdatedBy").
			First(&project, projectID).Error; err != nil {
			apierrors.NotFound(c, "Project not found")
			c.Abort()
			return
		}

		if !project.OwnedBy(userID) {
			apierrors.NotFound(c, "Project not found")
			c.Abort()
			return
		}

		c.Set(ContextKeyProject, project)
		c.Next()
	}
}

// RequireTaskAccess resolves a task within the already-authorized project.
// Runs after RequireProjectAccess, so the project in context is known to
// belong to the caller; the task must belong to that project.
func RequireTaskAccess() gin.HandlerFunc {
	return func(c *gin.Context) {
		project, ok := GetProject(c)
		if !ok {
			apierrors.InternalError(c, "Project not found in context")
			c.Abort()
			return
		}

		taskIDStr := c.Param("id")
		taskID, err := strconv.ParseUint(taskIDStr, 10, 64)
		if err != nil {
			apierrors.BadRequest(c, "Invalid task ID")
			c.Abort()
			return
		}

		userID, _ := GetUserID(c)

		var task models.Task
		if err := database.GetDB().
			Preload("Owner").
			Preload("CreatedBy").
			Preload("UpdatedBy").
			Where("project_id = ?", project.ID).
			First(&task, taskID).Error; err != nil {
			apierrors.NotFound(c, "Task not found")
			c.Abort()
			return
		}

		if !task.OwnedBy(userID) {
			apierrors.NotFound(c, "Task not found")
			c.Abort()
			return
		}

		c.Set(ContextKeyTask, task)
		c.Next()
	}
}

// GetProject retrieves the resolved project from context.
func GetProject(c *gin.Context) (models.Project, bool) {
	v, exists := c.Get(ContextKeyProject)
	if !exists {
		return models.Project{}, false
	}
	project, ok := v.(models.Project)
	return project, ok
}

// GetTask retrieves the resolved task from context.
func GetTask(c *gin.Context) (models.Task, bool) {
	v, exists := c.Get(ContextKeyTask)
	if !exists {
		return models.Task{}, false
	}
	task, ok := v.(models.Task)
	return task, ok
}
