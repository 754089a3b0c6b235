package services

import (
	"errors"
	"fmt"

	apperrors "litreview_go_backend/internal/errors"
	"litreview_go_backend/internal/models"
	"litreview_go_backend/internal/utils/bibtexparser"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// PaperInput holds candidate identifying fields for paper resolution.
type PaperInput struct {
	DOI      *string
	ArxivID  *string
	Title    string
	Authors  []string
	Year     *int
	Abstract *string
}

// LinkMetadata is the optional per-link payload attached to a project-paper link.
type LinkMetadata struct {
	InclusionReason *string
	Score           *float64
}

// ImportResult reports the outcome of a BibTeX batch import.
type ImportResult struct {
	Added   []models.ProjectPaper `json:"added"`
	Skipped int                   `json:"skipped"`
}

// PaperService defines the interface for the paper catalog and the
// project-paper links built on top of it.
type PaperService interface {
	AddPaperToProject(projectID uuid.UUID, input PaperInput, meta LinkMetadata) (*models.ProjectPaper, error)
	LinkPaperByID(projectID, paperID uuid.UUID, meta LinkMetadata) (*models.ProjectPaper, error)
	ListProjectPapers(projectID uuid.UUID, skip, limit int) ([]models.ProjectPaper, error)
	GetProjectPaper(projectID, paperID uuid.UUID) (*models.ProjectPaper, error)
	ImportBibtex(projectID uuid.UUID, content string) (*ImportResult, error)
}

// DefaultPaperService implements PaperService
type DefaultPaperService struct {
	db *gorm.DB
}

// NewPaperService creates a new DefaultPaperService
func NewPaperService(db *gorm.DB) PaperService {
	return &DefaultPaperService{db: db}
}

// resolvePaper returns the canonical paper for the given identifiers,
// reusing an existing row when one matches. DOI is looked up first, arXiv id
// second; a stored paper always wins over the submitted payload, so
// conflicting titles or authors in the payload are ignored. When neither
// identifier matches, a new paper is created; a concurrent create racing on
// the same identifier loses against the unique constraint and surfaces as
// Conflict rather than being retried or merged.
func (s *DefaultPaperService) resolvePaper(tx *gorm.DB, input PaperInput) (*models.Paper, error) {
	doi := normalizeIdentifier(input.DOI)
	arxivID := normalizeIdentifier(input.ArxivID)

	var paper models.Paper
	if doi != nil {
		err := tx.Where("doi = ?", *doi).First(&paper).Error
		if err == nil {
			return &paper, nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
	}
	if arxivID != nil {
		err := tx.Where("arxiv_id = ?", *arxivID).First(&paper).Error
		if err == nil {
			return &paper, nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
	}

	authors := input.Authors
	if authors == nil {
		authors = []string{}
	}
	paper = models.Paper{
		DOI:      doi,
		ArxivID:  arxivID,
		Title:    input.Title,
		Authors:  datatypes.NewJSONSlice(authors),
		Year:     input.Year,
		Abstract: input.Abstract,
	}
	if err := tx.Create(&paper).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperrors.New409Error("Paper with this identifier already exists")
		}
		return nil, err
	}
	return &paper, nil
}

// createLink inserts the project-paper link, relying on the
// (project_id, paper_id) unique constraint instead of a pre-check, and
// returns the stored row with the canonical paper embedded.
func (s *DefaultPaperService) createLink(tx *gorm.DB, projectID, paperID uuid.UUID, meta LinkMetadata) (*models.ProjectPaper, error) {
	link := models.ProjectPaper{
		ProjectID:       projectID,
		PaperID:         paperID,
		InclusionReason: meta.InclusionReason,
		Score:           meta.Score,
	}
	if err := tx.Create(&link).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperrors.New409Error("Paper already in project")
		}
		return nil, err
	}
	if err := tx.Preload("Paper").First(&link, "id = ?", link.ID).Error; err != nil {
		return nil, err
	}
	return &link, nil
}

// AddPaperToProject resolves the payload to a canonical paper, then links it
// into the project, all in one transaction.
func (s *DefaultPaperService) AddPaperToProject(projectID uuid.UUID, input PaperInput, meta LinkMetadata) (*models.ProjectPaper, error) {
	var link *models.ProjectPaper
	err := s.db.Transaction(func(tx *gorm.DB) error {
		paper, err := s.resolvePaper(tx, input)
		if err != nil {
			return err
		}
		link, err = s.createLink(tx, projectID, paper.ID, meta)
		return err
	})
	if err != nil {
		return nil, err
	}
	return link, nil
}

// LinkPaperByID links an already-known paper into the project. The paper must
// exist; there is no implicit creation on this path.
func (s *DefaultPaperService) LinkPaperByID(projectID, paperID uuid.UUID, meta LinkMetadata) (*models.ProjectPaper, error) {
	var link *models.ProjectPaper
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var paper models.Paper
		if err := tx.Where("id = ?", paperID).First(&paper).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.New404Error("Paper not found")
			}
			return err
		}
		var err error
		link, err = s.createLink(tx, projectID, paper.ID, meta)
		return err
	})
	if err != nil {
		return nil, err
	}
	return link, nil
}

func (s *DefaultPaperService) ListProjectPapers(projectID uuid.UUID, skip, limit int) ([]models.ProjectPaper, error) {
	var links []models.ProjectPaper
	result := s.db.
		Preload("Paper").
		Where("project_id = ?", projectID).
		Order("added_at").
		Offset(skip).
		Limit(limit).
		Find(&links)
	if result.Error != nil {
		return nil, result.Error
	}
	return links, nil
}

func (s *DefaultPaperService) GetProjectPaper(projectID, paperID uuid.UUID) (*models.ProjectPaper, error) {
	var link models.ProjectPaper
	err := s.db.
		Preload("Paper").
		Where("project_id = ? AND paper_id = ?", projectID, paperID).
		First(&link).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.New404Error("Paper not in project")
		}
		return nil, err
	}
	return &link, nil
}

// ImportBibtex resolves and links every entry of a BibTeX document. Entries
// already linked to the project are rolled back to a savepoint and counted as
// skipped instead of failing the whole batch.
func (s *DefaultPaperService) ImportBibtex(projectID uuid.UUID, content string) (*ImportResult, error) {
	entries, err := bibtexparser.Parse(content)
	if err != nil {
		return nil, apperrors.New400Error(fmt.Sprintf("Invalid BibTeX: %v", err))
	}

	result := &ImportResult{Added: []models.ProjectPaper{}}
	err = s.db.Transaction(func(tx *gorm.DB) error {
		for i, entry := range entries {
			doi := entry.DOI
			arxivID := entry.ArxivID
			input := PaperInput{
				DOI:     normalizeIdentifier(&doi),
				ArxivID: normalizeIdentifier(&arxivID),
				Title:   entry.Title,
				Authors: entry.Authors,
				Year:    entry.Year,
			}
			if entry.Abstract != "" {
				abstract := entry.Abstract
				input.Abstract = &abstract
			}

			savepoint := fmt.Sprintf("bib_entry_%d", i)
			tx.SavePoint(savepoint)

			paper, err := s.resolvePaper(tx, input)
			if err == nil {
				var link *models.ProjectPaper
				link, err = s.createLink(tx, projectID, paper.ID, LinkMetadata{})
				if err == nil {
					result.Added = append(result.Added, *link)
					continue
				}
			}

			var customErr *apperrors.CustomError
			if errors.As(err, &customErr) && customErr.Type == apperrors.ErrorTypeConflict {
				tx.RollbackTo(savepoint)
				result.Skipped++
				continue
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// normalizeIdentifier maps absent and empty identifiers to nil so they never
// hit the unique indexes as empty strings.
func normalizeIdentifier(s *string) *string {
	if s == nil || *s == "" {
		return nil
	}
	return s
}
