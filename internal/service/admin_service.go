package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/classforge/contest-api/internal/dto"
	"github.com/classforge/contest-api/internal/repository"
)

// ErrDraftNotFound indicates no draft exists for the requested pair.
var ErrDraftNotFound = errors.New("draft not found")

// AdminService covers contest administration: inspecting graded submissions
// and resetting the contest.
type AdminService interface {
	ListSubmissions(ctx context.Context, username string) ([]dto.SubmissionReview, error)
	GetSubmissionCode(ctx context.Context, username, questionID string) (dto.SubmissionCodeResponse, error)
	ResetContest(ctx context.Context) error
}

type adminService struct {
	contest   repository.ContestRepository
	results   repository.ResultRepository
	drafts    repository.DraftRepository
	questions repository.QuestionRepository
	logger    zerolog.Logger
}

// NewAdminService constructs the admin service.
func NewAdminService(contest repository.ContestRepository, results repository.ResultRepository, drafts repository.DraftRepository, questions repository.QuestionRepository, logger zerolog.Logger) AdminService {
	return &adminService{
		contest:   contest,
		results:   results,
		drafts:    drafts,
		questions: questions,
		logger:    logger.With().Str("component", "admin_service").Logger(),
	}
}

func (s *adminService) ListSubmissions(ctx context.Context, username string) ([]dto.SubmissionReview, error) {
	results, err := s.results.ListByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	titles := map[string]string{}
	questions, err := s.questions.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	for _, question := range questions {
		titles[question.ID] = question.Title
	}

	reviews := make([]dto.SubmissionReview, 0, len(results))
	for _, result := range results {
		reviews = append(reviews, dto.SubmissionReview{
			QuestionID:    result.QuestionID,
			QuestionTitle: titles[result.QuestionID],
			Status:        result.Status,
			GradedAt:      result.UpdatedAt,
		})
	}
	return reviews, nil
}

func (s *adminService) GetSubmissionCode(ctx context.Context, username, questionID string) (dto.SubmissionCodeResponse, error) {
	draft, err := s.drafts.Get(ctx, username, questionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.SubmissionCodeResponse{}, ErrDraftNotFound
		}
		return dto.SubmissionCodeResponse{}, err
	}

	response := dto.SubmissionCodeResponse{
		Username:   username,
		QuestionID: questionID,
		Code:       draft.Code,
		LanguageID: draft.LanguageID,
	}

	results, err := s.results.ListByUsername(ctx, username)
	if err == nil {
		for _, result := range results {
			if result.QuestionID == questionID {
				response.Status = result.Status
				break
			}
		}
	}

	return response, nil
}

// ResetContest wipes all student state in one transaction. Questions and
// settings survive.
func (s *adminService) ResetContest(ctx context.Context) error {
	if err := s.contest.Reset(ctx); err != nil {
		return err
	}
	s.logger.Warn().Msg("contest reset: all users, drafts and results cleared")
	return nil
}
