package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/classforge/contest-api/internal/models"
)

// ContestRepository covers operations spanning multiple tables.
type ContestRepository interface {
	// Reset wipes all students, drafts and results in a single transaction.
	// Questions and settings survive. In-flight requests may observe either
	// the pre- or post-reset state, never a partially cleared one.
	Reset(ctx context.Context) error
}

// NewContestRepository constructs a contest repository.
func NewContestRepository(db *gorm.DB) ContestRepository {
	return &contestRepository{db: db}
}

type contestRepository struct {
	db *gorm.DB
}

func (r *contestRepository) Reset(ctx context.Context) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&models.Result{}).Error; err != nil {
			return err
		}
		if err := tx.Where("1 = 1").Delete(&models.Draft{}).Error; err != nil {
			return err
		}
		return tx.Where("1 = 1").Delete(&models.User{}).Error
	})
}
