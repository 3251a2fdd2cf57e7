package dto

import (
	"time"

	"github.com/google/uuid"
)

// ScoreScaleDTO shows the points behind each choice of a score question.
type ScoreScaleDTO struct {
	Pass int `json:"pass"`
	Fair int `json:"fair"`
	Fail int `json:"fail"`
}

type QuestionDTO struct {
	ID         uuid.UUID      `json:"id"`
	Code       string         `json:"code"`
	Prompt     string         `json:"prompt"`
	AnswerType string         `json:"answer_type"`
	MaxPoints  int            `json:"max_points"`
	SortOrder  int            `json:"sort_order"`
	Scale      *ScoreScaleDTO `json:"scale,omitempty"`
}

type SectionDTO struct {
	ID        uuid.UUID     `json:"id"`
	Title     string        `json:"title"`
	SortOrder int           `json:"sort_order"`
	Questions []QuestionDTO `json:"questions"`
}

// TemplateResponseDTO is a template with its ordered structure.
type TemplateResponseDTO struct {
	ID        uuid.UUID    `json:"id"`
	Name      string       `json:"name"`
	Version   int          `json:"version"`
	Active    bool         `json:"active"`
	Sections  []SectionDTO `json:"sections"`
	CreatedAt time.Time    `json:"created_at"`
}

// TemplateSummaryDTO is used for listing templates an audit can be started from.
type TemplateSummaryDTO struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Version   int       `json:"version"`
	CreatedAt time.Time `json:"created_at"`
}
