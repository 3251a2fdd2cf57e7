package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Answer is unique per (audit_id, question_id); writes go through an upsert
// on that pair.
type Answer struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	AuditID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_answer_audit_question" json:"audit_id"`
	QuestionID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_answer_audit_question" json:"question_id"`
	ValueBool  *bool     `json:"value_bool"`
	ValueNum   *float64  `json:"value_num"`
	ValueText  *string   `gorm:"type:text" json:"value_text"`
	Notes      *string   `gorm:"type:text" json:"notes"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func (Answer) TableName() string { return "audit_answers" }

func (a *Answer) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}

// AuditFile is a generated document registered against an audit.
type AuditFile struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	AuditID   uuid.UUID `gorm:"type:uuid;not null;index" json:"audit_id"`
	Name      string    `gorm:"not null" json:"name"`
	URL       string    `gorm:"type:text;not null" json:"url"`
	CreatedAt time.Time `json:"created_at"`
}

func (AuditFile) TableName() string { return "audit_files" }

func (f *AuditFile) BeforeCreate(tx *gorm.DB) error {
	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}
	return nil
}
