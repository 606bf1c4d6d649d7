package dto

import (
	"time"

	"github.com/hsaito/project-tracking-api/internal/models"
)

// ProjectDTO represents a project in API responses
type ProjectDTO struct {
	ID          uint64                 `json:"id"`
	Owner       string                 `json:"owner"`
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	Categories  models.ProjectCategory `json:"categories"`
	IsOwner     bool                   `json:"is_owner"`
	CreatedAt   time.Time              `json:"created_at"`
	UpdatedAt   time.Time              `json:"updated_at"`
	CreatedBy   *string                `json:"created_by"`
	UpdatedBy   *string                `json:"updated_by"`
}

// ToProjectDTO converts a Project model to ProjectDTO. Owner, CreatedBy
// and UpdatedBy are expected to be preloaded.
func ToProjectDTO(project models.Project) ProjectDTO {
	return ProjectDTO{
		ID:          project.ID,
		Owner:       project.Owner.Email,
		Name:        project.Name,
		Description: project.Description,
		Categories:  project.Categories,
		IsOwner:     project.IsOwner,
		CreatedAt:   project.CreatedAt,
		UpdatedAt:   project.UpdatedAt,
		CreatedBy:   auditEmail(project.CreatedBy),
		UpdatedBy:   auditEmail(project.UpdatedBy),
	}
}

// ToProjectDTOs converts a slice of projects
func ToProjectDTOs(projects []models.Project) []ProjectDTO {
	dtos := make([]ProjectDTO, len(projects))
	for i, project := range projects {
		dtos[i] = ToProjectDTO(project)
	}
	return dtos
}
