package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Paper is the canonical bibliographic record. It is global: the same row is
// shared by every project that links it, and deleting a project never touches it.
type Paper struct {
	ID       uuid.UUID                   `gorm:"type:uuid;primaryKey" json:"id"`
	DOI      *string                     `gorm:"column:doi;size:255;uniqueIndex" json:"doi"`
	ArxivID  *string                     `gorm:"column:arxiv_id;size:64;uniqueIndex" json:"arxiv_id"`
	Title    string                      `gorm:"type:text;not null" json:"title"`
	Authors  datatypes.JSONSlice[string] `gorm:"type:jsonb" json:"authors"`
	Year     *int                        `json:"year"`
	Abstract *string                     `gorm:"type:text" json:"abstract"`

	CreatedAt time.Time `json:"created_at"`

	ProjectPapers []ProjectPaper `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}

// ProjectPaper joins a Paper into a Project with per-link metadata.
// The (project_id, paper_id) unique index is the authoritative guard against
// double-linking; services translate its violation into a Conflict error.
type ProjectPaper struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	ProjectID       uuid.UUID `gorm:"type:uuid;not null;index:idx_project_paper,unique" json:"project_id"`
	PaperID         uuid.UUID `gorm:"type:uuid;not null;index:idx_project_paper,unique" json:"paper_id"`
	InclusionReason *string   `gorm:"type:text" json:"inclusion_reason"`
	Score           *float64  `json:"score"`
	AddedAt         time.Time `gorm:"autoCreateTime" json:"added_at"`

	Paper Paper `json:"paper"`
}

func (p *Paper) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

func (pp *ProjectPaper) BeforeCreate(tx *gorm.DB) error {
	if pp.ID == uuid.Nil {
		pp.ID = uuid.New()
	}
	return nil
}
