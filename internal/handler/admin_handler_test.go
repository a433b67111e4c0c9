package handler_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/classforge/contest-api/internal/dto"
	"github.com/classforge/contest-api/internal/handler"
	"github.com/classforge/contest-api/internal/service"
)

type mockAdminService struct {
	lastUsername   string
	lastQuestionID string
	resetCalled    bool
	submissions    []dto.SubmissionReview
	code           dto.SubmissionCodeResponse
	err            error
}

func (m *mockAdminService) ListSubmissions(_ context.Context, username string) ([]dto.SubmissionReview, error) {
	m.lastUsername = username
	return m.submissions, m.err
}

func (m *mockAdminService) GetSubmissionCode(_ context.Context, username, questionID string) (dto.SubmissionCodeResponse, error) {
	m.lastUsername = username
	m.lastQuestionID = questionID
	if m.err != nil {
		return dto.SubmissionCodeResponse{}, m.err
	}
	return m.code, nil
}

func (m *mockAdminService) ResetContest(_ context.Context) error {
	m.resetCalled = true
	return m.err
}

func newAdminApp(svc *mockAdminService) *fiber.App {
	app := fiber.New()
	group := app.Group("/api/admin", withUser("admin", "admin"))
	handler.NewAdminHandler(svc, zerolog.New(io.Discard)).Register(group)
	return app
}

func TestAdminHandler_ListSubmissions(t *testing.T) {
	svc := &mockAdminService{submissions: []dto.SubmissionReview{{QuestionID: "Q-1", Status: "Accepted"}}}
	app := newAdminApp(svc)

	req := jsonRequest(t, http.MethodGet, "/api/admin/submissions/silas", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.Equal(t, "silas", svc.lastUsername)

	var envelope apiEnvelope
	decodeResponse(t, resp, &envelope)
	var submissions []dto.SubmissionReview
	require.NoError(t, json.Unmarshal(envelope.Data, &submissions))
	require.Len(t, submissions, 1)
}

func TestAdminHandler_SubmissionCode(t *testing.T) {
	svc := &mockAdminService{code: dto.SubmissionCodeResponse{Username: "silas", QuestionID: "Q-1", Code: "x = 1", LanguageID: 71}}
	app := newAdminApp(svc)

	req := jsonRequest(t, http.MethodGet, "/api/admin/submission-code?username=silas&question_id=Q-1", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.Equal(t, "Q-1", svc.lastQuestionID)
}

func TestAdminHandler_SubmissionCodeMissingParams(t *testing.T) {
	app := newAdminApp(&mockAdminService{})

	req := jsonRequest(t, http.MethodGet, "/api/admin/submission-code?username=silas", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestAdminHandler_SubmissionCodeNotFound(t *testing.T) {
	app := newAdminApp(&mockAdminService{err: service.ErrDraftNotFound})

	req := jsonRequest(t, http.MethodGet, "/api/admin/submission-code?username=ghost&question_id=Q-1", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestAdminHandler_Reset(t *testing.T) {
	svc := &mockAdminService{}
	app := newAdminApp(svc)

	req := jsonRequest(t, http.MethodPost, "/api/admin/reset", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.True(t, svc.resetCalled)
}
