package model

import (
	"sort"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AnswerType is the answer contract of a question.
type AnswerType string

const (
	AnswerTypeBinary AnswerType = "binary"
	AnswerTypeScore  AnswerType = "score"
	AnswerTypeText   AnswerType = "text"
	AnswerTypePhoto  AnswerType = "photo"
)

// AnswerTypes lists every supported answer type.
func AnswerTypes() []AnswerType {
	return []AnswerType{AnswerTypeBinary, AnswerTypeScore, AnswerTypeText, AnswerTypePhoto}
}

func (t AnswerType) Valid() bool {
	switch t {
	case AnswerTypeBinary, AnswerTypeScore, AnswerTypeText, AnswerTypePhoto:
		return true
	}
	return false
}

type Template struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name      string    `gorm:"not null;uniqueIndex:idx_template_name_version" json:"name"`
	Version   int       `gorm:"not null;uniqueIndex:idx_template_name_version" json:"version"`
	Active    bool      `gorm:"not null;default:true;index" json:"active"`
	Sections  []Section `gorm:"foreignKey:TemplateID;constraint:OnDelete:CASCADE" json:"sections,omitempty"`
	Stores    []Store   `gorm:"many2many:audit_template_stores;" json:"-"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Template) TableName() string { return "audit_templates" }

func (t *Template) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

// OrderedQuestions flattens the template in display order: sections by
// sort_order, then questions by sort_order within each section.
func (t *Template) OrderedQuestions() []Question {
	sections := make([]Section, len(t.Sections))
	copy(sections, t.Sections)
	sort.SliceStable(sections, func(i, j int) bool { return sections[i].SortOrder < sections[j].SortOrder })

	var out []Question
	for _, s := range sections {
		qs := make([]Question, len(s.Questions))
		copy(qs, s.Questions)
		sort.SliceStable(qs, func(i, j int) bool { return qs[i].SortOrder < qs[j].SortOrder })
		out = append(out, qs...)
	}
	return out
}

type Section struct {
	ID         uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	TemplateID uuid.UUID  `gorm:"type:uuid;not null;index" json:"template_id"`
	Title      string     `gorm:"not null" json:"title"`
	SortOrder  int        `gorm:"not null" json:"sort_order"`
	Questions  []Question `gorm:"foreignKey:SectionID;constraint:OnDelete:CASCADE" json:"questions,omitempty"`
}

func (Section) TableName() string { return "audit_sections" }

func (s *Section) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

type Question struct {
	ID         uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	SectionID  uuid.UUID  `gorm:"type:uuid;not null;index" json:"section_id"`
	Code       string     `gorm:"not null" json:"code"`
	Prompt     string     `gorm:"type:text;not null" json:"prompt"`
	AnswerType AnswerType `gorm:"type:text;not null" json:"answer_type"`
	MaxPoints  int        `gorm:"not null;default:0" json:"max_points"`
	SortOrder  int        `gorm:"not null" json:"sort_order"`
}

func (Question) TableName() string { return "audit_questions" }

func (q *Question) BeforeCreate(tx *gorm.DB) error {
	if q.ID == uuid.Nil {
		q.ID = uuid.New()
	}
	return nil
}
