package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"

	"github.com/classforge/contest-api/internal/dto"
	"github.com/classforge/contest-api/internal/models"
	"github.com/classforge/contest-api/internal/observability"
	"github.com/classforge/contest-api/internal/repository"
	"github.com/classforge/contest-api/pkg/judge"
)

// GradingService runs the finish-contest pass: flip the finished latch, grade
// every draft against its question's hidden test cases, persist one result
// per draft.
type GradingService interface {
	FinishContest(ctx context.Context, username string) (dto.FinishResponse, error)
}

type gradingService struct {
	users       repository.UserRepository
	drafts      repository.DraftRepository
	questions   repository.QuestionRepository
	results     repository.ResultRepository
	judge       judge.Client
	leaderboard LeaderboardService
	events      *ContestEvents
	logger      zerolog.Logger
	tracer      trace.Tracer
	now         func() time.Time
}

// NewGradingService constructs the grading service. events may be nil.
func NewGradingService(users repository.UserRepository, drafts repository.DraftRepository, questions repository.QuestionRepository, results repository.ResultRepository, judgeClient judge.Client, leaderboard LeaderboardService, events *ContestEvents, logger zerolog.Logger) GradingService {
	return &gradingService{
		users:       users,
		drafts:      drafts,
		questions:   questions,
		results:     results,
		judge:       judgeClient,
		leaderboard: leaderboard,
		events:      events,
		logger:      logger.With().Str("component", "grading_service").Logger(),
		tracer:      otel.Tracer("github.com/classforge/contest-api/internal/service/grading"),
		now:         time.Now,
	}
}

// FinishContest grades all of the student's drafts. A failure grading one
// draft never aborts the others; each draft gets exactly one result row.
func (s *gradingService) FinishContest(ctx context.Context, username string) (dto.FinishResponse, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.FinishResponse{}, ErrUserNotFound
		}
		return dto.FinishResponse{}, err
	}
	if user.Finished {
		return dto.FinishResponse{}, ErrAlreadyFinished
	}

	finishedAt := s.now()
	if err := s.users.MarkFinished(ctx, username, finishedAt); err != nil {
		return dto.FinishResponse{}, err
	}

	ctx, span := s.tracer.Start(ctx, "grading.finish_contest",
		trace.WithAttributes(attribute.String("username", username)))
	defer span.End()

	start := time.Now()
	drafts, err := s.drafts.ListByUsername(ctx, username)
	if err != nil {
		return dto.FinishResponse{}, err
	}

	statuses := make(map[string]string, len(drafts))
	for _, draft := range drafts {
		question, err := s.questions.GetByID(ctx, draft.QuestionID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				// Question deleted after the draft was written; skip silently.
				continue
			}
			return dto.FinishResponse{}, err
		}

		status := s.gradeDraft(ctx, draft, question)
		result := models.Result{
			Username:   username,
			QuestionID: draft.QuestionID,
			Status:     status,
		}
		if err := s.results.Upsert(ctx, &result); err != nil {
			return dto.FinishResponse{}, err
		}
		statuses[draft.QuestionID] = status
	}
	observability.GradingDuration().Observe(time.Since(start).Seconds())

	s.logger.Info().
		Str("username", username).
		Int("drafts", len(drafts)).
		Msg("contest finished and graded")

	s.publishFinished(ctx, username, finishedAt)

	return dto.FinishResponse{Username: username, FinishedAt: finishedAt, Results: statuses}, nil
}

// gradeDraft runs the draft against every test case in stored order. The
// first non-accepted verdict classifies the whole submission; a judge
// transport failure yields the system-error sentinel. Verdicts are never
// treated as errors and nothing is retried.
func (s *gradingService) gradeDraft(ctx context.Context, draft models.Draft, question models.Question) string {
	cases, err := question.DecodeTestCases()
	if err != nil {
		s.logger.Error().Err(err).Str("question_id", question.ID).Msg("failed to decode test cases")
		return models.StatusSystemError
	}

	for _, testCase := range cases {
		result, err := s.judge.Execute(ctx, judge.Submission{
			SourceCode:     draft.Code,
			LanguageID:     draft.LanguageID,
			Stdin:          testCase.Input,
			ExpectedOutput: testCase.ExpectedOutput,
		})
		if err != nil {
			observability.JudgeCalls().WithLabelValues("grade", "error").Inc()
			s.logger.Error().Err(err).
				Str("username", draft.Username).
				Str("question_id", question.ID).
				Msg("judge call failed during grading")
			return models.StatusSystemError
		}
		if !result.Accepted() {
			observability.JudgeCalls().WithLabelValues("grade", "rejected").Inc()
			return result.StatusDescription
		}
		observability.JudgeCalls().WithLabelValues("grade", "accepted").Inc()
	}

	return models.StatusAccepted
}

func (s *gradingService) publishFinished(ctx context.Context, username string, finishedAt time.Time) {
	if s.events == nil {
		return
	}

	board, err := s.leaderboard.Get(ctx)
	if err != nil {
		s.logger.Warn().Err(err).Msg("failed to refresh leaderboard for event")
		board = dto.LeaderboardResponse{GeneratedAt: finishedAt}
	}

	s.events.Publish(ContestEvent{
		Username:    username,
		FinishedAt:  finishedAt,
		Leaderboard: board,
	})
}
