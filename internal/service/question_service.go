package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/classforge/contest-api/internal/dto"
	"github.com/classforge/contest-api/internal/models"
	"github.com/classforge/contest-api/internal/observability"
	"github.com/classforge/contest-api/internal/repository"
	"github.com/classforge/contest-api/pkg/judge"
)

// ErrQuestionNotFound indicates the question does not exist.
var ErrQuestionNotFound = errors.New("question not found")

// ErrUnsupportedLanguage indicates a language id outside the judge table.
var ErrUnsupportedLanguage = errors.New("unsupported language")

// GenerationError reports a reference-solution failure during test-case
// generation. It names the offending input and carries the judge diagnostic
// so the admin can fix the question before students ever see it.
type GenerationError struct {
	Input      string
	Verdict    string
	Diagnostic string
}

func (e *GenerationError) Error() string {
	if e.Diagnostic != "" {
		return fmt.Sprintf("reference solution failed on input %q: %s: %s", e.Input, e.Verdict, e.Diagnostic)
	}
	return fmt.Sprintf("reference solution failed on input %q: %s", e.Input, e.Verdict)
}

// QuestionService owns the question lifecycle, including deriving hidden
// test cases from the reference solution at creation time.
type QuestionService interface {
	Create(ctx context.Context, payload dto.QuestionCreateRequest) (dto.AdminQuestionResponse, error)
	ListActive(ctx context.Context) ([]dto.QuestionResponse, error)
	ListAll(ctx context.Context) ([]dto.AdminQuestionResponse, error)
	Delete(ctx context.Context, id string) error
	ToggleActive(ctx context.Context, id string) error
}

type questionService struct {
	questions repository.QuestionRepository
	judge     judge.Client
	validator *validator.Validate
	sanitizer *bluemonday.Policy
	logger    zerolog.Logger
	tracer    trace.Tracer
}

// NewQuestionService constructs the question service.
func NewQuestionService(questions repository.QuestionRepository, judgeClient judge.Client, validate *validator.Validate, logger zerolog.Logger) QuestionService {
	return &questionService{
		questions: questions,
		judge:     judgeClient,
		validator: validate,
		sanitizer: bluemonday.UGCPolicy(),
		logger:    logger.With().Str("component", "question_service").Logger(),
		tracer:    otel.Tracer("github.com/classforge/contest-api/internal/service/question"),
	}
}

// Create runs the reference solution on every declared input to materialize
// the expected outputs, then persists the question. Any non-accepted verdict
// aborts the whole operation with nothing persisted.
func (s *questionService) Create(ctx context.Context, payload dto.QuestionCreateRequest) (dto.AdminQuestionResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.AdminQuestionResponse{}, err
	}

	languageID := payload.SolutionLanguageID
	if languageID == 0 {
		languageID = judge.DefaultReferenceLanguageID
	}
	if !judge.IsSupportedLanguage(languageID) {
		return dto.AdminQuestionResponse{}, ErrUnsupportedLanguage
	}
	for key := range payload.Templates {
		id, err := strconv.Atoi(key)
		if err != nil || !judge.IsSupportedLanguage(id) {
			return dto.AdminQuestionResponse{}, ErrUnsupportedLanguage
		}
	}

	cases, err := s.generateTestCases(ctx, payload.SolutionCode, languageID, payload.TestInputs)
	if err != nil {
		return dto.AdminQuestionResponse{}, err
	}

	casesJSON, err := json.Marshal(cases)
	if err != nil {
		return dto.AdminQuestionResponse{}, fmt.Errorf("encode test cases: %w", err)
	}
	templatesJSON, err := json.Marshal(payload.Templates)
	if err != nil {
		return dto.AdminQuestionResponse{}, fmt.Errorf("encode templates: %w", err)
	}

	question := models.Question{
		ID:          newQuestionID(),
		Title:       strings.TrimSpace(payload.Title),
		Description: s.sanitizer.Sanitize(payload.Description),
		Templates:   datatypes.JSON(templatesJSON),
		TestCases:   datatypes.JSON(casesJSON),
		Active:      true,
	}

	if err := s.questions.Create(ctx, &question); err != nil {
		return dto.AdminQuestionResponse{}, err
	}

	s.logger.Info().
		Str("question_id", question.ID).
		Int("test_cases", len(cases)).
		Msg("question created")

	return dto.NewAdminQuestionResponse(question), nil
}

// generateTestCases invokes the judge sequentially, one input at a time, and
// short-circuits on the first failure. Ordering matters for diagnostics;
// throughput does not, test volumes are small.
func (s *questionService) generateTestCases(ctx context.Context, solution string, languageID int, inputs []string) ([]models.TestCase, error) {
	ctx, span := s.tracer.Start(ctx, "question.generate_test_cases",
		trace.WithAttributes(attribute.Int("inputs", len(inputs))))
	defer span.End()

	cases := make([]models.TestCase, 0, len(inputs))
	for _, input := range inputs {
		if strings.TrimSpace(input) == "" {
			continue
		}

		result, err := s.judge.Execute(ctx, judge.Submission{
			SourceCode: solution,
			LanguageID: languageID,
			Stdin:      input,
		})
		if err != nil {
			observability.JudgeCalls().WithLabelValues("generate", "error").Inc()
			return nil, fmt.Errorf("judge call failed on input %q: %w", input, err)
		}
		if !result.Accepted() {
			observability.JudgeCalls().WithLabelValues("generate", "rejected").Inc()
			return nil, &GenerationError{
				Input:      input,
				Verdict:    result.StatusDescription,
				Diagnostic: result.ErrorText(),
			}
		}

		observability.JudgeCalls().WithLabelValues("generate", "accepted").Inc()
		cases = append(cases, models.TestCase{Input: input, ExpectedOutput: result.Stdout})
	}

	return cases, nil
}

func (s *questionService) ListActive(ctx context.Context) ([]dto.QuestionResponse, error) {
	questions, err := s.questions.ListActive(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.QuestionResponse, 0, len(questions))
	for _, question := range questions {
		responses = append(responses, dto.NewQuestionResponse(question))
	}
	return responses, nil
}

func (s *questionService) ListAll(ctx context.Context) ([]dto.AdminQuestionResponse, error) {
	questions, err := s.questions.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.AdminQuestionResponse, 0, len(questions))
	for _, question := range questions {
		responses = append(responses, dto.NewAdminQuestionResponse(question))
	}
	return responses, nil
}

func (s *questionService) Delete(ctx context.Context, id string) error {
	if _, err := s.questions.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrQuestionNotFound
		}
		return err
	}
	return s.questions.Delete(ctx, id)
}

func (s *questionService) ToggleActive(ctx context.Context, id string) error {
	if _, err := s.questions.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrQuestionNotFound
		}
		return err
	}
	return s.questions.ToggleActive(ctx, id)
}

func newQuestionID() string {
	return "Q-" + strings.ToUpper(uuid.NewString()[:8])
}
