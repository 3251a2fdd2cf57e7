package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/lshigami/storeaudit/internal/model"
	"gorm.io/gorm"
)

type TemplateRepository interface {
	// ListActive returns active templates. With storeIDs set, only templates
	// assigned to one of those stores or assigned to no store at all.
	ListActive(ctx context.Context, storeIDs []uuid.UUID) ([]model.Template, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.Template, error)
	FindByIDWithStructure(ctx context.Context, id uuid.UUID) (*model.Template, error)
	Create(ctx context.Context, template *model.Template) error
	SetActive(ctx context.Context, id uuid.UUID, active bool) error
}

type templateRepository struct {
	db *gorm.DB
}

func NewTemplateRepository(db *gorm.DB) TemplateRepository {
	return &templateRepository{db: db}
}

func (r *templateRepository) ListActive(ctx context.Context, storeIDs []uuid.UUID) ([]model.Template, error) {
	var templates []model.Template
	query := r.db.WithContext(ctx).Where("active = ?", true)
	if len(storeIDs) > 0 {
		query = query.Where(
			"id NOT IN (SELECT template_id FROM audit_template_stores) OR id IN (SELECT template_id FROM audit_template_stores WHERE store_id IN ?)",
			storeIDs,
		)
	}
	err := query.Order("name ASC").Order("version DESC").Find(&templates).Error
	return templates, err
}

func (r *templateRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Template, error) {
	var template model.Template
	err := r.db.WithContext(ctx).First(&template, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &template, nil
}

func (r *templateRepository) FindByIDWithStructure(ctx context.Context, id uuid.UUID) (*model.Template, error) {
	var template model.Template
	err := r.db.WithContext(ctx).
		Preload("Sections", func(db *gorm.DB) *gorm.DB {
			return db.Order("audit_sections.sort_order ASC")
		}).
		Preload("Sections.Questions", func(db *gorm.DB) *gorm.DB {
			return db.Order("audit_questions.sort_order ASC")
		}).
		First(&template, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &template, nil
}

func (r *templateRepository) Create(ctx context.Context, template *model.Template) error {
	// Sections and questions are written with the template. Stores are only
	// linked; unknown store ids must not create placeholder stores.
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Omit("Stores.*").Create(template).Error
	})
}

func (r *templateRepository) SetActive(ctx context.Context, id uuid.UUID, active bool) error {
	res := r.db.WithContext(ctx).Model(&model.Template{}).Where("id = ?", id).Update("active", active)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
