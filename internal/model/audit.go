package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Store struct {
	ID   uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name string    `gorm:"not null" json:"name"`
}

func (Store) TableName() string { return "stores" }

// Audit is one run of a template against a store. SubmittedAt moves from
// nil to a timestamp exactly once.
type Audit struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	StoreID     uuid.UUID  `gorm:"type:uuid;not null;index" json:"store_id"`
	Store       Store      `gorm:"foreignKey:StoreID" json:"store,omitempty"`
	TemplateID  uuid.UUID  `gorm:"type:uuid;not null;index" json:"template_id"`
	Template    Template   `gorm:"foreignKey:TemplateID" json:"template,omitempty"`
	AuditorID   uuid.UUID  `gorm:"type:uuid;not null;index" json:"auditor_id"`
	StartedAt   time.Time  `gorm:"not null" json:"started_at"`
	SubmittedAt *time.Time `json:"submitted_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

func (Audit) TableName() string { return "audits" }

func (a *Audit) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}

func (a *Audit) Submitted() bool { return a.SubmittedAt != nil }
