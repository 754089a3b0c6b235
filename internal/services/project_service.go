package services

import (
	"errors"

	apperrors "litreview_go_backend/internal/errors"
	"litreview_go_backend/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ProjectUpdate carries the fields a PATCH may change. Nil means "leave as is".
type ProjectUpdate struct {
	Name        *string
	Description *string
}

// ProjectService defines the interface for project-related operations.
// GetOwnedProject is the ownership guard: every project-scoped operation goes
// through it before touching sub-resources.
type ProjectService interface {
	ListProjects(ownerID uuid.UUID, skip, limit int) ([]models.Project, error)
	CreateProject(ownerID uuid.UUID, name string, description *string) (*models.Project, error)
	GetOwnedProject(projectID, ownerID uuid.UUID) (*models.Project, error)
	UpdateProject(projectID, ownerID uuid.UUID, update ProjectUpdate) (*models.Project, error)
	DeleteProject(projectID, ownerID uuid.UUID) error
}

// DefaultProjectService implements ProjectService
type DefaultProjectService struct {
	db *gorm.DB
}

// NewProjectService creates a new DefaultProjectService
func NewProjectService(db *gorm.DB) ProjectService {
	return &DefaultProjectService{db: db}
}

func (s *DefaultProjectService) ListProjects(ownerID uuid.UUID, skip, limit int) ([]models.Project, error) {
	var projects []models.Project
	result := s.db.
		Where("owner_id = ?", ownerID).
		Order("created_at").
		Offset(skip).
		Limit(limit).
		Find(&projects)
	if result.Error != nil {
		return nil, result.Error
	}
	return projects, nil
}

func (s *DefaultProjectService) CreateProject(ownerID uuid.UUID, name string, description *string) (*models.Project, error) {
	project := models.Project{
		OwnerID:     ownerID,
		Name:        name,
		Description: description,
	}
	if err := s.db.Create(&project).Error; err != nil {
		return nil, err
	}
	return &project, nil
}

// GetOwnedProject loads a project scoped to its owner. A missing project and a
// project owned by someone else produce the same NotFound error, here and not
// further up the stack, so no layer can tell the two apart.
func (s *DefaultProjectService) GetOwnedProject(projectID, ownerID uuid.UUID) (*models.Project, error) {
	var project models.Project
	err := s.db.Where("id = ? AND owner_id = ?", projectID, ownerID).First(&project).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.New404Error("Project not found")
		}
		return nil, err
	}
	return &project, nil
}

func (s *DefaultProjectService) UpdateProject(projectID, ownerID uuid.UUID, update ProjectUpdate) (*models.Project, error) {
	project, err := s.GetOwnedProject(projectID, ownerID)
	if err != nil {
		return nil, err
	}
	if update.Name != nil {
		project.Name = *update.Name
	}
	if update.Description != nil {
		project.Description = update.Description
	}
	if err := s.db.Save(project).Error; err != nil {
		return nil, err
	}
	return project, nil
}

// DeleteProject removes an owned project together with its runs and paper
// links in one transaction. Canonical papers are global and stay untouched.
func (s *DefaultProjectService) DeleteProject(projectID, ownerID uuid.UUID) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var project models.Project
		err := tx.Where("id = ? AND owner_id = ?", projectID, ownerID).First(&project).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.New404Error("Project not found")
			}
			return err
		}
		if err := tx.Where("project_id = ?", projectID).Delete(&models.Run{}).Error; err != nil {
			return err
		}
		if err := tx.Where("project_id = ?", projectID).Delete(&models.ProjectPaper{}).Error; err != nil {
			return err
		}
		return tx.Delete(&project).Error
	})
}
