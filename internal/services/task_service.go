package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/hsaito/project-tracking-api/internal/models"
	"github.com/hsaito/project-tracking-api/internal/repository"
	"gorm.io/gorm"
)

var ErrTaskNotFound = errors.New("task not found")

// TaskService provides business logic for task operations. Callers are
// expected to have resolved and authorized the parent project already; the
// service scopes every operation to that project.
type TaskService struct {
	taskRepo repository.TaskRepository
}

// NewTaskService creates a new TaskService.
func NewTaskService(taskRepo repository.TaskRepository) *TaskService {
	return &TaskService{
		taskRepo: taskRepo,
	}
}

// CreateTaskInput represents parameters to create a new task.
type CreateTaskInput struct {
	Title       string
	Description string
	Status      models.TaskStatus
	DueDate     *time.Time
	ProjectID   uint64
	OwnerID     uint64
}

// CreateTask creates a task under an owned project. Status defaults to
// todo; due dates are stored as given, including dates in the past.
func (s *TaskService) CreateTask(input CreateTaskInput) (*models.Task, error) {
	status := input.Status
	if status == "" {
		status = models.TaskStatusTodo
	}

	ownerID := input.OwnerID
	task := &models.Task{
		Title:       input.Title,
		Description: input.Description,
		Status:      status,
		DueDate:     input.DueDate,
		ProjectID:   input.ProjectID,
		OwnerID:     ownerID,
		CreatedByID: &ownerID,
		UpdatedByID: &ownerID,
	}

	if err := s.taskRepo.Create(task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	return s.reload(task.ID)
}

// ListTasks returns all tasks under the given project.
func (s *TaskService) ListTasks(projectID uint64) ([]models.Task, error) {
	tasks, err := s.taskRepo.ListByProject(projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	return tasks, nil
}

// UpdateTask persists field changes and stamps the updater. Status moves
// between any of the three states in any order; no transition rules apply.
func (s *TaskService) UpdateTask(task *models.Task, updaterID uint64) (*models.Task, error) {
	task.UpdatedByID = &updaterID

	if err := s.taskRepo.Update(task); err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	return s.reload(task.ID)
}

// DeleteTask removes a task.
func (s *TaskService) DeleteTask(taskID uint64) error {
	if err := s.taskRepo.Delete(taskID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTaskNotFound
		}
		return fmt.Errorf("failed to delete task: %w", err)
	}
	return nil
}

func (s *TaskService) reload(id uint64) (*models.Task, error) {
	task, err := s.taskRepo.FindByID(id, "Owner", "CreatedBy", "UpdatedBy")
	if err != nil {
		return nil, fmt.Errorf("failed to reload task: %w", err)
	}
	return task, nil
}
