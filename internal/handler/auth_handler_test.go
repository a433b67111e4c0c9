package handler_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/classforge/contest-api/internal/dto"
	"github.com/classforge/contest-api/internal/handler"
	"github.com/classforge/contest-api/internal/service"
)

type mockAuthService struct {
	lastPayload dto.LoginRequest
	response    dto.LoginResponse
	err         error
}

func (m *mockAuthService) Login(_ context.Context, payload dto.LoginRequest) (dto.LoginResponse, error) {
	m.lastPayload = payload
	if m.err != nil {
		return dto.LoginResponse{}, m.err
	}
	return m.response, nil
}

func newAuthApp(svc *mockAuthService) *fiber.App {
	app := fiber.New()
	handler.NewAuthHandler(svc, zerolog.New(io.Discard)).Register(app.Group("/api"))
	return app
}

func TestAuthHandler_LoginSuccess(t *testing.T) {
	svc := &mockAuthService{response: dto.LoginResponse{
		Username:  "silas",
		Role:      "student",
		Token:     "token-1",
		StartedAt: time.Now().UTC(),
	}}
	app := newAuthApp(svc)

	req := jsonRequest(t, http.MethodPost, "/api/login", dto.LoginRequest{Username: "silas", ClassPIN: "4242"})
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var envelope apiEnvelope
	decodeResponse(t, resp, &envelope)
	require.True(t, envelope.Success)

	var session dto.LoginResponse
	require.NoError(t, json.Unmarshal(envelope.Data, &session))
	require.Equal(t, "silas", session.Username)
	require.Equal(t, "token-1", session.Token)
	require.Equal(t, "silas", svc.lastPayload.Username)
}

func TestAuthHandler_LoginErrors(t *testing.T) {
	cases := []struct {
		name       string
		err        error
		statusCode int
	}{
		{name: "wrong pin", err: service.ErrInvalidPIN, statusCode: fiber.StatusUnauthorized},
		{name: "duplicate username", err: service.ErrUsernameTaken, statusCode: fiber.StatusConflict},
		{name: "contest closed", err: service.ErrContestClosed, statusCode: fiber.StatusForbidden},
		{name: "generic", err: errors.New("boom"), statusCode: fiber.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			app := newAuthApp(&mockAuthService{err: tc.err})
			req := jsonRequest(t, http.MethodPost, "/api/login", dto.LoginRequest{Username: "silas", ClassPIN: "0000"})
			resp, err := app.Test(req)
			require.NoError(t, err)
			require.Equal(t, tc.statusCode, resp.StatusCode)
		})
	}
}

func TestAuthHandler_Logout(t *testing.T) {
	app := fiber.New()
	handler.NewAuthHandler(&mockAuthService{}, zerolog.New(io.Discard)).RegisterProtected(app.Group("/api", withUser("silas", "student")))

	req := jsonRequest(t, http.MethodPost, "/api/logout", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestAuthHandler_MalformedBody(t *testing.T) {
	app := newAuthApp(&mockAuthService{})
	req := jsonRequest(t, http.MethodPost, "/api/login", "not an object")
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}
