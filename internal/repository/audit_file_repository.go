package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/lshigami/storeaudit/internal/model"
	"gorm.io/gorm"
)

type AuditFileRepository interface {
	Create(ctx context.Context, file *model.AuditFile) error
	ListByAudit(ctx context.Context, auditID uuid.UUID) ([]model.AuditFile, error)
}

type auditFileRepository struct {
	db *gorm.DB
}

func NewAuditFileRepository(db *gorm.DB) AuditFileRepository {
	return &auditFileRepository{db: db}
}

func (r *auditFileRepository) Create(ctx context.Context, file *model.AuditFile) error {
	return r.db.WithContext(ctx).Create(file).Error
}

func (r *auditFileRepository) ListByAudit(ctx context.Context, auditID uuid.UUID) ([]model.AuditFile, error) {
	var files []model.AuditFile
	err := r.db.WithContext(ctx).Where("audit_id = ?", auditID).Order("created_at DESC").Find(&files).Error
	return files, err
}
