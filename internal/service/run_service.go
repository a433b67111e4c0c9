package service

import (
	"context"
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/classforge/contest-api/internal/dto"
	"github.com/classforge/contest-api/internal/observability"
	"github.com/classforge/contest-api/internal/repository"
	"github.com/classforge/contest-api/pkg/judge"
)

// ErrExecutionFailed indicates the judge could not run the code at all.
var ErrExecutionFailed = errors.New("execution engine failed")

// ErrAlreadyFinished indicates the student's finish latch is set.
var ErrAlreadyFinished = errors.New("contest already finished")

// BlindModePlaceholder replaces diagnostic text when blind mode is active.
// Output text is never hidden, only error text.
const BlindModePlaceholder = "Error details hidden (blind mode active). Check your syntax and logic carefully."

// RunService executes code against custom input without any grading. It is a
// pass-through over the judge for the editor's Run button.
type RunService interface {
	Run(ctx context.Context, username string, payload dto.RunRequest) (dto.RunResponse, error)
}

type runService struct {
	judge     judge.Client
	users     repository.UserRepository
	settings  SettingsService
	validator *validator.Validate
	logger    zerolog.Logger
}

// NewRunService constructs the run service.
func NewRunService(judgeClient judge.Client, users repository.UserRepository, settings SettingsService, validate *validator.Validate, logger zerolog.Logger) RunService {
	return &runService{
		judge:     judgeClient,
		users:     users,
		settings:  settings,
		validator: validate,
		logger:    logger.With().Str("component", "run_service").Logger(),
	}
}

func (s *runService) Run(ctx context.Context, username string, payload dto.RunRequest) (dto.RunResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.RunResponse{}, err
	}

	// Admins have no user row; the latch only applies to registered students.
	if user, err := s.users.GetByUsername(ctx, username); err == nil && user.Finished {
		return dto.RunResponse{}, ErrAlreadyFinished
	}
	if !judge.IsSupportedLanguage(payload.LanguageID) {
		return dto.RunResponse{}, ErrUnsupportedLanguage
	}

	result, err := s.judge.Execute(ctx, judge.Submission{
		SourceCode: payload.Code,
		LanguageID: payload.LanguageID,
		Stdin:      payload.Stdin,
	})
	if err != nil {
		observability.JudgeCalls().WithLabelValues("run", "error").Inc()
		s.logger.Error().Err(err).Msg("judge run failed")
		return dto.RunResponse{}, ErrExecutionFailed
	}
	observability.JudgeCalls().WithLabelValues("run", "completed").Inc()

	response := dto.RunResponse{
		Output: result.Stdout,
		Error:  result.ErrorText(),
	}

	if response.Error != "" {
		blind, err := s.settings.BlindMode(ctx)
		if err != nil {
			s.logger.Warn().Err(err).Msg("failed to read blind mode, leaving diagnostics visible")
		} else if blind {
			response.Error = BlindModePlaceholder
		}
	}

	return response, nil
}
