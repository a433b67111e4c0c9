package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/classforge/contest-api/internal/models"
)

// ResultRepository exposes persistence operations for graded outcomes.
type ResultRepository interface {
	Upsert(ctx context.Context, result *models.Result) error
	ListByUsername(ctx context.Context, username string) ([]models.Result, error)
	ListAll(ctx context.Context) ([]models.Result, error)
}

// NewResultRepository constructs a result repository.
func NewResultRepository(db *gorm.DB) ResultRepository {
	return &resultRepository{db: db}
}

type resultRepository struct {
	db *gorm.DB
}

// Upsert records a grading outcome, replacing any prior result for the same
// (username, question) pair so re-grading never leaves mixed rows.
func (r *resultRepository) Upsert(ctx context.Context, result *models.Result) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "username"}, {Name: "question_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"status", "updated_at"}),
	}).Create(result).Error
}

func (r *resultRepository) ListByUsername(ctx context.Context, username string) ([]models.Result, error) {
	var results []models.Result
	err := r.db.WithContext(ctx).
		Where("username = ?", username).
		Order("question_id ASC").
		Find(&results).Error
	if err != nil {
		return nil, err
	}
	return results, nil
}

func (r *resultRepository) ListAll(ctx context.Context) ([]models.Result, error) {
	var results []models.Result
	if err := r.db.WithContext(ctx).Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
