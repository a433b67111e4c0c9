package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/classforge/contest-api/internal/models"
)

// ErrUsernameTaken indicates the username was already claimed by another
// student.
var ErrUsernameTaken = errors.New("username already taken")

// UserRepository exposes persistence operations for contest participants.
type UserRepository interface {
	Register(ctx context.Context, user *models.User) error
	GetByUsername(ctx context.Context, username string) (models.User, error)
	MarkFinished(ctx context.Context, username string, finishedAt time.Time) error
	ListFinished(ctx context.Context) ([]models.User, error)
}

// NewUserRepository constructs a user repository.
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

type userRepository struct {
	db *gorm.DB
}

// Register inserts the user, relying on the primary key constraint so that
// concurrent logins with the same username cannot both succeed.
func (r *userRepository) Register(ctx context.Context, user *models.User) error {
	err := r.db.WithContext(ctx).Create(user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrUsernameTaken
		}
		return err
	}
	return nil
}

func (r *userRepository) GetByUsername(ctx context.Context, username string) (models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).First(&user, "username = ?", username).Error; err != nil {
		return models.User{}, err
	}
	return user, nil
}

func (r *userRepository) MarkFinished(ctx context.Context, username string, finishedAt time.Time) error {
	return r.db.WithContext(ctx).Model(&models.User{}).
		Where("username = ?", username).
		Updates(map[string]interface{}{
			"finished":    true,
			"finished_at": finishedAt,
		}).Error
}

func (r *userRepository) ListFinished(ctx context.Context) ([]models.User, error) {
	var users []models.User
	err := r.db.WithContext(ctx).
		Where("finished = ? AND role = ?", true, models.RoleStudent).
		Find(&users).Error
	if err != nil {
		return nil, err
	}
	return users, nil
}
