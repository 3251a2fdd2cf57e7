package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/lshigami/storeaudit/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type AuditRepository interface {
	Create(ctx context.Context, audit *model.Audit) error
	FindByIDWithDetails(ctx context.Context, id uuid.UUID) (*model.Audit, error)
	// MarkSubmitted sets submitted_at only while it is still null. It reports
	// false when the audit was already submitted (or does not exist).
	MarkSubmitted(ctx context.Context, id uuid.UUID, at time.Time) (bool, error)
}

type auditRepository struct {
	db *gorm.DB
}

func NewAuditRepository(db *gorm.DB) AuditRepository {
	return &auditRepository{db: db}
}

func (r *auditRepository) Create(ctx context.Context, audit *model.Audit) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(audit).Error
}

func (r *auditRepository) FindByIDWithDetails(ctx context.Context, id uuid.UUID) (*model.Audit, error) {
	var audit model.Audit
	err := r.db.WithContext(ctx).
		Preload("Store").
		Preload("Template").
		First(&audit, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &audit, nil
}

func (r *auditRepository) MarkSubmitted(ctx context.Context, id uuid.UUID, at time.Time) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&model.Audit{}).
		Where("id = ? AND submitted_at IS NULL", id).
		Update("submitted_at", at)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}
