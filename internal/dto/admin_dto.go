package dto

import "github.com/google/uuid"

// QuestionCreateDTO is one question of a template created by an admin.
type QuestionCreateDTO struct {
	Code       string `json:"code" binding:"required,max=32"`
	Prompt     string `json:"prompt" binding:"required"`
	AnswerType string `json:"answer_type" binding:"required,answer_type"`
	MaxPoints  int    `json:"max_points" binding:"min=0,max=100"`
	SortOrder  int    `json:"sort_order" binding:"min=0"`
}

type SectionCreateDTO struct {
	Title     string              `json:"title" binding:"required"`
	SortOrder int                 `json:"sort_order" binding:"min=0"`
	Questions []QuestionCreateDTO `json:"questions" binding:"required,min=1,dive"`
}

// TemplateCreateDTO creates a template with all of its sections and questions.
// StoreIDs limits the template to those stores; empty means every store.
type TemplateCreateDTO struct {
	Name     string             `json:"name" binding:"required"`
	Version  int                `json:"version" binding:"required,min=1"`
	StoreIDs []uuid.UUID        `json:"store_ids"`
	Sections []SectionCreateDTO `json:"sections" binding:"required,min=1,dive"`
}
