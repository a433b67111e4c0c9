package dto

import (
	"time"

	"github.com/classforge/contest-api/internal/models"
)

// QuestionCreateRequest is the admin payload for creating a question. The
// reference solution is executed against every test input to derive the
// expected outputs before anything is persisted.
type QuestionCreateRequest struct {
	Title              string            `json:"title" validate:"required,max=255"`
	Description        string            `json:"description"`
	SolutionCode       string            `json:"solution_code" validate:"required,min=1"`
	SolutionLanguageID int               `json:"solution_language_id"`
	TestInputs         []string          `json:"test_inputs" validate:"required,min=1"`
	Templates          map[string]string `json:"templates" validate:"required,min=1"`
}

// QuestionResponse is the student-facing view of a question. Test cases are
// never included.
type QuestionResponse struct {
	ID          string            `json:"id"`
	Title       string            `json:"title"`
	Description string            `json:"description"`
	Templates   map[string]string `json:"templates"`
}

// AdminQuestionResponse adds the admin-only fields.
type AdminQuestionResponse struct {
	QuestionResponse
	Active        bool      `json:"active"`
	TestCaseCount int       `json:"test_case_count"`
	CreatedAt     time.Time `json:"created_at"`
}

// NewQuestionResponse builds the student view from a model.
func NewQuestionResponse(question models.Question) QuestionResponse {
	templates, err := question.DecodeTemplates()
	if err != nil {
		templates = map[string]string{}
	}
	return QuestionResponse{
		ID:          question.ID,
		Title:       question.Title,
		Description: question.Description,
		Templates:   templates,
	}
}

// NewAdminQuestionResponse builds the admin view from a model.
func NewAdminQuestionResponse(question models.Question) AdminQuestionResponse {
	cases, err := question.DecodeTestCases()
	if err != nil {
		cases = nil
	}
	return AdminQuestionResponse{
		QuestionResponse: NewQuestionResponse(question),
		Active:           question.Active,
		TestCaseCount:    len(cases),
		CreatedAt:        question.CreatedAt,
	}
}
