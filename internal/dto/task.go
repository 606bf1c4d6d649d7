package dto

import (
	"time"

	"github.com/hsaito/project-tracking-api/internal/models"
)

// TaskDTO represents a task in API responses
type TaskDTO struct {
	ID          uint64            `json:"id"`
	Project     uint64            `json:"project"`
	Owner       string            `json:"owner"`
	Title       string            `json:"title"`
	Description string            `json:"description"`
	Status      models.TaskStatus `json:"status"`
	DueDate     *string           `json:"due_date"`
	CreatedBy   *string           `json:"created_by"`
	UpdatedBy   *string           `json:"updated_by"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
}

// ToTaskDTO converts a Task model to TaskDTO. Owner, CreatedBy and
// UpdatedBy are expected to be preloaded.
func ToTaskDTO(task models.Task) TaskDTO {
	return TaskDTO{
		ID:          task.ID,
		Project:     task.ProjectID,
		Owner:       task.Owner.Email,
		Title:       task.Title,
		Description: task.Description,
		Status:      task.Status,
		DueDate:     formatDate(task.DueDate),
		CreatedBy:   auditEmail(task.CreatedBy),
		UpdatedBy:   auditEmail(task.UpdatedBy),
		CreatedAt:   task.CreatedAt,
		UpdatedAt:   task.UpdatedAt,
	}
}

// ToTaskDTOs converts a slice of tasks
func ToTaskDTOs(tasks []models.Task) []TaskDTO {
	dtos := make([]TaskDTO, len(tasks))
	for i, task := range tasks {
		dtos[i] = ToTaskDTO(task)
	}
	return dtos
}
