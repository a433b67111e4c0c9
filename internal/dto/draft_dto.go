package dto

import (
	"time"

	"github.com/classforge/contest-api/internal/models"
)

// DraftSaveRequest upserts a student's in-progress code for one question.
type DraftSaveRequest struct {
	QuestionID string `json:"question_id" validate:"required"`
	Code       string `json:"code"`
	LanguageID int    `json:"language_id" validate:"required,gt=0"`
}

// DraftResponse is one saved draft.
type DraftResponse struct {
	QuestionID string    `json:"question_id"`
	Code       string    `json:"code"`
	LanguageID int       `json:"language_id"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// NewDraftResponse converts a draft model into its API form.
func NewDraftResponse(draft models.Draft) DraftResponse {
	return DraftResponse{
		QuestionID: draft.QuestionID,
		Code:       draft.Code,
		LanguageID: draft.LanguageID,
		UpdatedAt:  draft.UpdatedAt,
	}
}
