package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/hsaito/project-tracking-api/internal/dto"
	apierrors "github.com/hsaito/project-tracking-api/internal/errors"
	"github.com/hsaito/project-tracking-api/internal/middleware"
	"github.com/hsaito/project-tracking-api/internal/models"
	"github.com/hsaito/project-tracking-api/internal/services"
)

// ProjectHandler coordinates project CRUD HTTP handlers.
type ProjectHandler struct {
	projectService *services.ProjectService
}

// NewProjectHandler creates a new ProjectHandler.
func NewProjectHandler(projectService *services.ProjectService) *ProjectHandler {
	return &ProjectHandler{
		projectService: projectService,
	}
}

// ListProjects returns the caller's projects.
func (h *ProjectHandler) ListProjects(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	projects, err := h.projectService.ListProjects(userID)
	if err != nil {
		apierrors.InternalError(c, "Failed to fetch projects")
		return
	}

	c.JSON(http.StatusOK, dto.ToProjectDTOs(projects))
}

// CreateProject creates a project owned by the caller. Owner, audit fields
// and is_owner are read-only; anything the client sends for them is
// ignored.
func (h *ProjectHandler) CreateProject(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	type CreateProjectRequest struct {
		Name        string `json:"name" binding:"required"`
		Description string `json:"description"`
		Categories  string `json:"categories" binding:"omitempty,oneof=personal work hobby other"`
	}

	var req CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	project, err := h.projectService.CreateProject(services.CreateProjectInput{
		Name:        req.Name,
		Description: req.Description,
		Categories:  models.ProjectCategory(req.Categories),
		OwnerID:     userID,
	})
	if err != nil {
		apierrors.InternalError(c, "Failed to create project")
		return
	}

	c.JSON(http.StatusCreated, dto.ToProjectDTO(*project))
}

// GetProject returns a project already resolved and authorized by
// RequireProjectAccess.
func (h *ProjectHandler) GetProject(c *gin.Context) {
	project, ok := middleware.GetProject(c)
	if !ok {
		apierrors.InternalError(c, "Project not found in context")
		return
	}

	c.JSON(http.StatusOK, dto.ToProjectDTO(project))
}

// UpdateProject handles both full (PUT) and partial (PATCH) updates. The
// updater stamp is reset to the caller on every update.
func (h *ProjectHandler) UpdateProject(c *gin.Context) {
	project, ok := middleware.GetProject(c)
	if !ok {
		apierrors.InternalError(c, "Project not found in context")
		return
	}

	userID, _ := middleware.GetUserID(c)

	if c.Request.Method == http.MethodPut {
		type UpdateProjectRequest struct {
			Name        string `json:"name" binding:"required"`
			Description string `json:"description"`
			Categories  string `json:"categories" binding:"omitempty,oneof=personal work hobby other"`
		}

		var req UpdateProjectRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			apierrors.BadRequest(c, "Invalid request body")
			return
		}

		project.Name = req.Name
		project.Description = req.Description
		if req.Categories != "" {
			project.Categories = models.ProjectCategory(req.Categories)
		}
	} else {
		// Parse raw JSON to detect which fields were sent
		var rawReq map[string]any
		if err := c.ShouldBindJSON(&rawReq); err != nil {
			apierrors.BadRequest(c, "Invalid request body")
			return
		}

		if name, ok := rawReq["name"].(string); ok {
			project.Name = name
		}
		if description, ok := rawReq["description"].(string); ok {
			project.Description = description
		}
		if categories, ok := rawReq["categories"].(string); ok {
			if !validCategory(categories) {
				apierrors.BadRequest(c, "Invalid category")
				return
			}
			project.Categories = models.ProjectCategory(categories)
		}
	}

	updated, err := h.projectService.UpdateProject(&project, userID)
	if err != nil {
		apierrors.InternalError(c, "Failed to update project")
		return
	}

	c.JSON(http.StatusOK, dto.ToProjectDTO(*updated))
}

// DeleteProject removes the project and all of its tasks.
func (h *ProjectHandler) DeleteProject(c *gin.Context) {
	project, ok := middleware.GetProject(c)
	if !ok {
		apierrors.InternalError(c, "Project not found in context")
		return
	}

	userID, _ := middleware.GetUserID(c)

	if err := h.projectService.DeleteProject(project.ID, userID); err != nil {
		apierrors.InternalError(c, "Failed to delete project")
		return
	}

	c.Status(http.StatusNoContent)
}

func validCategory(value string) bool {
	switch models.ProjectCategory(value) {
	case models.CategoryPersonal, models.CategoryWork, models.CategoryHobby, models.CategoryOther:
		return true
	default:
		return false
	}
}
