package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/classforge/contest-api/internal/models"
)

// DraftRepository exposes persistence operations for in-progress code.
type DraftRepository interface {
	Upsert(ctx context.Context, draft *models.Draft) error
	ListByUsername(ctx context.Context, username string) ([]models.Draft, error)
	Get(ctx context.Context, username, questionID string) (models.Draft, error)
}

// NewDraftRepository constructs a draft repository.
func NewDraftRepository(db *gorm.DB) DraftRepository {
	return &draftRepository{db: db}
}

type draftRepository struct {
	db *gorm.DB
}

// Upsert writes the draft, replacing any prior code for the same
// (username, question) pair. Last write wins.
func (r *draftRepository) Upsert(ctx context.Context, draft *models.Draft) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "username"}, {Name: "question_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"code", "language_id", "updated_at"}),
	}).Create(draft).Error
}

func (r *draftRepository) ListByUsername(ctx context.Context, username string) ([]models.Draft, error) {
	var drafts []models.Draft
	err := r.db.WithContext(ctx).
		Where("username = ?", username).
		Order("question_id ASC").
		Find(&drafts).Error
	if err != nil {
		return nil, err
	}
	return drafts, nil
}

func (r *draftRepository) Get(ctx context.Context, username, questionID string) (models.Draft, error) {
	var draft models.Draft
	err := r.db.WithContext(ctx).
		First(&draft, "username = ? AND question_id = ?", username, questionID).Error
	if err != nil {
		return models.Draft{}, err
	}
	return draft, nil
}
