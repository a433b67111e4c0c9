package service

import (
	"context"
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/classforge/contest-api/internal/dto"
	"github.com/classforge/contest-api/internal/models"
	"github.com/classforge/contest-api/internal/repository"
	"github.com/classforge/contest-api/pkg/judge"
)

// ErrUserNotFound indicates the session's user row no longer exists, which
// happens after an admin reset.
var ErrUserNotFound = errors.New("user not found")

// DraftService persists students' in-progress code.
type DraftService interface {
	Save(ctx context.Context, username string, payload dto.DraftSaveRequest) (dto.DraftResponse, error)
	List(ctx context.Context, username string) ([]dto.DraftResponse, error)
}

type draftService struct {
	drafts    repository.DraftRepository
	users     repository.UserRepository
	questions repository.QuestionRepository
	validator *validator.Validate
	logger    zerolog.Logger
}

// NewDraftService constructs the draft service.
func NewDraftService(drafts repository.DraftRepository, users repository.UserRepository, questions repository.QuestionRepository, validate *validator.Validate, logger zerolog.Logger) DraftService {
	return &draftService{
		drafts:    drafts,
		users:     users,
		questions: questions,
		validator: validate,
		logger:    logger.With().Str("component", "draft_service").Logger(),
	}
}

// Save upserts the draft. The finished latch is enforced here: a finished
// student can no longer change the artifact that was graded.
func (s *draftService) Save(ctx context.Context, username string, payload dto.DraftSaveRequest) (dto.DraftResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.DraftResponse{}, err
	}
	if !judge.IsSupportedLanguage(payload.LanguageID) {
		return dto.DraftResponse{}, ErrUnsupportedLanguage
	}

	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.DraftResponse{}, ErrUserNotFound
		}
		return dto.DraftResponse{}, err
	}
	if user.Finished {
		return dto.DraftResponse{}, ErrAlreadyFinished
	}

	if _, err := s.questions.GetByID(ctx, payload.QuestionID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.DraftResponse{}, ErrQuestionNotFound
		}
		return dto.DraftResponse{}, err
	}

	draft := models.Draft{
		Username:   username,
		QuestionID: payload.QuestionID,
		Code:       payload.Code,
		LanguageID: payload.LanguageID,
	}
	if err := s.drafts.Upsert(ctx, &draft); err != nil {
		return dto.DraftResponse{}, err
	}

	return dto.NewDraftResponse(draft), nil
}

func (s *draftService) List(ctx context.Context, username string) ([]dto.DraftResponse, error) {
	drafts, err := s.drafts.ListByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.DraftResponse, 0, len(drafts))
	for _, draft := range drafts {
		responses = append(responses, dto.NewDraftResponse(draft))
	}
	return responses, nil
}
