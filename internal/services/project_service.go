package services

import (
	"errors"
	"fmt"

	"github.com/hsaito/project-tracking-api/internal/models"
	"github.com/hsaito/project-tracking-api/internal/repository"
	"gorm.io/gorm"
)

var ErrProjectNotFound = errors.New("project not found")

// ProjectService provides business logic for project operations.
type ProjectService struct {
	projectRepo repository.ProjectRepository
}

// NewProjectService creates a new ProjectService.
func NewProjectService(projectRepo repository.ProjectRepository) *ProjectService {
	return &ProjectService{
		projectRepo: projectRepo,
	}
}

// CreateProjectInput represents parameters to create a new project.
type CreateProjectInput struct {
	Name        string
	Description string
	Categories  models.ProjectCategory
	OwnerID     uint64
}

// CreateProject creates a project owned by the caller. Owner and audit
// fields always come from the authenticated user, never from client input.
func (s *ProjectService) CreateProject(input CreateProjectInput) (*models.Project, error) {
	categories := input.Categories
	if categories == "" {
		categories = models.CategoryPersonal
	}

	ownerID := input.OwnerID
	project := &models.Project{
		Name:        input.Name,
		Description: input.Description,
		Categories:  categories,
		IsOwner:     true,
		OwnerID:     ownerID,
		CreatedByID: &ownerID,
		UpdatedByID: &ownerID,
	}

	if err := s.projectRepo.Create(project); err != nil {
		return nil, fmt.Errorf("failed to create project: %w", err)
	}

	return s.reload(project.ID)
}

// ListProjects returns all projects owned by the user.
func (s *ProjectService) ListProjects(ownerID uint64) ([]models.Project, error) {
	projects, err := s.projectRepo.ListByOwner(ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	return projects, nil
}

// GetProject fetches a project and applies the ownership check. Records
// owned by someone else are reported as not found.
func (s *ProjectService) GetProject(projectID, userID uint64) (*models.Project, error) {
	project, err := s.projectRepo.FindByID(projectID, "Owner", "CreatedBy", "UpdatedBy")
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to find project: %w", err)
	}

	if !project.OwnedBy(userID) {
		return nil, ErrProjectNotFound
	}

	return project, nil
}

// UpdateProject persists field changes and stamps the updater. The owner
// field is immutable after creation.
func (s *ProjectService) UpdateProject(project *models.Project, updaterID uint64) (*models.Project, error) {
	project.UpdatedByID = &updaterID

	if err := s.projectRepo.Update(project); err != nil {
		return nil, fmt.Errorf("failed to update project: %w", err)
	}

	return s.reload(project.ID)
}

// DeleteProject removes the project together with all of its tasks.
func (s *ProjectService) DeleteProject(projectID, userID uint64) error {
	project, err := s.GetProject(projectID, userID)
	if err != nil {
		return err
	}

	if err := s.projectRepo.DeleteWithTasks(project.ID); err != nil {
		return fmt.Errorf("failed to delete project: %w", err)
	}

	return nil
}

func (s *ProjectService) reload(id uint64) (*models.Project, error) {
	project, err := s.projectRepo.FindByID(id, "Owner", "CreatedBy", "UpdatedBy")
	if err != nil {
		return nil, fmt.Errorf("failed to reload project: %w", err)
	}
	return project, nil
}
