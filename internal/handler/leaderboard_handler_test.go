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
)

type mockLeaderboardService struct {
	board dto.LeaderboardResponse
	err   error
}

func (m *mockLeaderboardService) Get(_ context.Context) (dto.LeaderboardResponse, error) {
	return m.board, m.err
}

func newLeaderboardApp(svc *mockLeaderboardService) *fiber.App {
	app := fiber.New()
	group := app.Group("/api/admin/leaderboard", withUser("admin", "admin"))
	handler.NewLeaderboardHandler(svc, nil, zerolog.New(io.Discard)).Register(group)
	return app
}

func TestLeaderboardHandler_Snapshot(t *testing.T) {
	svc := &mockLeaderboardService{board: dto.LeaderboardResponse{
		Entries: []dto.LeaderboardEntry{
			{Username: "ada", Solved: 3, Total: 3, ElapsedSeconds: 540},
			{Username: "grace", Solved: 2, Total: 3, ElapsedSeconds: 600},
		},
		GeneratedAt: time.Now().UTC(),
	}}
	app := newLeaderboardApp(svc)

	req := jsonRequest(t, http.MethodGet, "/api/admin/leaderboard", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var envelope apiEnvelope
	decodeResponse(t, resp, &envelope)
	var board dto.LeaderboardResponse
	require.NoError(t, json.Unmarshal(envelope.Data, &board))
	require.Len(t, board.Entries, 2)
	require.Equal(t, "ada", board.Entries[0].Username)
}

func TestLeaderboardHandler_SnapshotError(t *testing.T) {
	app := newLeaderboardApp(&mockLeaderboardService{err: errors.New("db down")})

	req := jsonRequest(t, http.MethodGet, "/api/admin/leaderboard", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
}
