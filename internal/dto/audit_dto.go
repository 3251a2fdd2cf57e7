package dto

import (
	"time"

	"github.com/google/uuid"
)

type AuditCreateDTO struct {
	StoreID    uuid.UUID `json:"store_id"`
	TemplateID uuid.UUID `json:"template_id"`
}

type AuditCreatedDTO struct {
	ID uuid.UUID `json:"id"`
}

type AuditResponseDTO struct {
	ID              uuid.UUID  `json:"id"`
	StoreID         uuid.UUID  `json:"store_id"`
	StoreName       string     `json:"store_name"`
	TemplateID      uuid.UUID  `json:"template_id"`
	TemplateName    string     `json:"template_name"`
	TemplateVersion int        `json:"template_version"`
	AuditorID       uuid.UUID  `json:"auditor_id"`
	Status          string     `json:"status"`
	StartedAt       time.Time  `json:"started_at"`
	SubmittedAt     *time.Time `json:"submitted_at,omitempty"`
}

// AnswerPatchDTO updates one draft entry. Omitted fields are left unchanged.
type AnswerPatchDTO struct {
	ValueBool *bool    `json:"value_bool"`
	ValueNum  *float64 `json:"value_num"`
	ValueText *string  `json:"value_text"`
	Notes     *string  `json:"notes"`
}

type DraftEntryDTO struct {
	QuestionID uuid.UUID `json:"question_id"`
	Section    string    `json:"section"`
	Code       string    `json:"code"`
	Prompt     string    `json:"prompt"`
	AnswerType string    `json:"answer_type"`
	MaxPoints  int       `json:"max_points"`
	ValueBool  *bool     `json:"value_bool"`
	ValueNum   *float64  `json:"value_num"`
	ValueText  *string   `json:"value_text"`
	Notes      *string   `json:"notes"`
}

type ScoreDTO struct {
	Earned   float64 `json:"earned"`
	Possible float64 `json:"possible"`
	Percent  float64 `json:"percent"`
	Excluded int     `json:"excluded"`
}

// DraftResponseDTO is the full editable answer set of an audit.
type DraftResponseDTO struct {
	AuditID uuid.UUID       `json:"audit_id"`
	Status  string          `json:"status"`
	Dirty   bool            `json:"dirty"`
	Entries []DraftEntryDTO `json:"entries"`
	Score   ScoreDTO        `json:"score"`
}

type SaveResponseDTO struct {
	AuditID uuid.UUID `json:"audit_id"`
	Saved   int       `json:"saved"`
}

type AuditFileDTO struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	URL       string    `json:"url"`
	CreatedAt time.Time `json:"created_at"`
}

// SubmitResponseDTO reports a submission. Warnings list export problems that
// did not undo the submission.
type SubmitResponseDTO struct {
	Audit    AuditResponseDTO `json:"audit"`
	File     *AuditFileDTO    `json:"file,omitempty"`
	Warnings []string         `json:"warnings,omitempty"`
}
