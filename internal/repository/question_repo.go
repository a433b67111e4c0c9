package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/classforge/contest-api/internal/models"
)

// QuestionRepository exposes persistence operations for contest questions.
type QuestionRepository interface {
	Create(ctx context.Context, question *models.Question) error
	GetByID(ctx context.Context, id string) (models.Question, error)
	ListActive(ctx context.Context) ([]models.Question, error)
	ListAll(ctx context.Context) ([]models.Question, error)
	Delete(ctx context.Context, id string) error
	ToggleActive(ctx context.Context, id string) error
}

// NewQuestionRepository constructs a question repository.
func NewQuestionRepository(db *gorm.DB) QuestionRepository {
	return &questionRepository{db: db}
}

type questionRepository struct {
	db *gorm.DB
}

func (r *questionRepository) Create(ctx context.Context, question *models.Question) error {
	return r.db.WithContext(ctx).Create(question).Error
}

func (r *questionRepository) GetByID(ctx context.Context, id string) (models.Question, error) {
	var question models.Question
	if err := r.db.WithContext(ctx).First(&question, "id = ?", id).Error; err != nil {
		return models.Question{}, err
	}
	return question, nil
}

func (r *questionRepository) ListActive(ctx context.Context) ([]models.Question, error) {
	var questions []models.Question
	err := r.db.WithContext(ctx).
		Where("active = ?", true).
		Order("created_at ASC").
		Find(&questions).Error
	if err != nil {
		return nil, err
	}
	return questions, nil
}

func (r *questionRepository) ListAll(ctx context.Context) ([]models.Question, error) {
	var questions []models.Question
	if err := r.db.WithContext(ctx).Order("created_at ASC").Find(&questions).Error; err != nil {
		return nil, err
	}
	return questions, nil
}

func (r *questionRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&models.Question{}, "id = ?", id).Error
}

func (r *questionRepository) ToggleActive(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Model(&models.Question{}).
		Where("id = ?", id).
		Update("active", gorm.Expr("NOT active")).Error
}
