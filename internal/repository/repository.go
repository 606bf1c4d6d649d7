package repository

import (
	"time"

	"github.com/hsaito/project-tracking-api/internal/models"
)

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(user *models.User) error

	// FindByID finds a user by ID
	FindByID(id uint64) (*models.User, error)

	// FindByEmail finds a user by email
	FindByEmail(email string) (*models.User, error)
}

// ProjectRepository defines the interface for project data access
type ProjectRepository interface {
	// Create creates a new project
	Create(project *models.Project) error

	// FindByID finds a project by ID with optional preloading
	FindByID(id uint64, preload ...string) (*models.Project, error)

	// ListByOwner retrieves all projects owned by a user
	ListByOwner(ownerID uint64) ([]models.Project, error)

	// Update updates a project
	Update(project *models.Project) error

	// DeleteWithTasks deletes a project and all of its tasks atomically
	DeleteWithTasks(id uint64) error
}

// TaskRepository defines the interface for task data access
type TaskRepository interface {
	// Create creates a new task
	Create(task *models.Task) error

	// FindByID finds a task by ID with optional preloading
	FindByID(id uint64, preload ...string) (*models.Task, error)

	// ListByProject retrieves all tasks under a project
	ListByProject(projectID uint64) ([]models.Task, error)

	// Update updates a task
	Update(task *models.Task) error

	// Delete deletes a task
	Delete(id uint64) error
}

// TokenRepository defines the interface for refresh token revocation
type TokenRepository interface {
	// Blacklist records a revoked refresh token
	Blacklist(token *models.BlacklistedToken) error

	// IsBlacklisted reports whether a token JTI has been revoked
	IsBlacklisted(jti string) (bool, error)

	// DeleteExpired removes blacklist rows whose tokens have expired anyway
	DeleteExpired(now time.Time) error
}
