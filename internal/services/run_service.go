package services

import (
	"errors"

	apperrors "litreview_go_backend/internal/errors"
	"litreview_go_backend/internal/models"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// RunService defines the interface for run-related operations. Runs are
// created pending and never transition here: the execution engine that would
// update status and completed_at is a separate system.
type RunService interface {
	ListRuns(projectID uuid.UUID, skip, limit int) ([]models.Run, error)
	CreateRun(projectID uuid.UUID, configSnapshot datatypes.JSONMap) (*models.Run, error)
	GetRun(projectID, runID uuid.UUID) (*models.Run, error)
}

// DefaultRunService implements RunService
type DefaultRunService struct {
	db *gorm.DB
}

// NewRunService creates a new DefaultRunService
func NewRunService(db *gorm.DB) RunService {
	return &DefaultRunService{db: db}
}

func (s *DefaultRunService) ListRuns(projectID uuid.UUID, skip, limit int) ([]models.Run, error) {
	var runs []models.Run
	result := s.db.
		Where("project_id = ?", projectID).
		Order("created_at").
		Offset(skip).
		Limit(limit).
		Find(&runs)
	if result.Error != nil {
		return nil, result.Error
	}
	return runs, nil
}

// CreateRun stores the configuration snapshot verbatim. The snapshot is
// immutable from this point on: no code path updates the column again.
func (s *DefaultRunService) CreateRun(projectID uuid.UUID, configSnapshot datatypes.JSONMap) (*models.Run, error) {
	if configSnapshot == nil {
		configSnapshot = datatypes.JSONMap{}
	}
	run := models.Run{
		ProjectID:      projectID,
		Status:         models.RunStatusPending,
		ConfigSnapshot: configSnapshot,
	}
	if err := s.db.Create(&run).Error; err != nil {
		return nil, err
	}
	return &run, nil
}

func (s *DefaultRunService) GetRun(projectID, runID uuid.UUID) (*models.Run, error) {
	var run models.Run
	err := s.db.Where("id = ? AND project_id = ?", runID, projectID).First(&run).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.New404Error("Run not found")
		}
		return nil, err
	}
	return &run, nil
}
