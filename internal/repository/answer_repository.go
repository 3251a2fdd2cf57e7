package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/lshigami/storeaudit/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type AnswerRepository interface {
	FindByAudit(ctx context.Context, auditID uuid.UUID) ([]model.Answer, error)
	// UpsertBatch writes all rows in one statement keyed on
	// (audit_id, question_id). Either every row commits or none do.
	UpsertBatch(ctx context.Context, answers []model.Answer) error
}

type answerRepository struct {
	db *gorm.DB
}

func NewAnswerRepository(db *gorm.DB) AnswerRepository {
	return &answerRepository{db: db}
}

func (r *answerRepository) FindByAudit(ctx context.Context, auditID uuid.UUID) ([]model.Answer, error) {
	var answers []model.Answer
	err := r.db.WithContext(ctx).Where("audit_id = ?", auditID).Find(&answers).Error
	return answers, err
}

func (r *answerRepository) UpsertBatch(ctx context.Context, answers []model.Answer) error {
	if len(answers) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "audit_id"}, {Name: "question_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"value_bool", "value_num", "value_text", "notes", "updated_at"}),
		}).Create(&answers).Error
	})
}
