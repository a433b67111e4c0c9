package handler

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/rs/zerolog"

	"github.com/classforge/contest-api/internal/service"
	"github.com/classforge/contest-api/internal/utils"
)

// LeaderboardHandler serves the standings snapshot and a live websocket feed
// that pushes an update whenever a student finishes.
type LeaderboardHandler struct {
	service service.LeaderboardService
	events  *service.ContestEvents
	logger  zerolog.Logger
}

// NewLeaderboardHandler builds a leaderboard handler instance.
func NewLeaderboardHandler(service service.LeaderboardService, events *service.ContestEvents, logger zerolog.Logger) *LeaderboardHandler {
	return &LeaderboardHandler{
		service: service,
		events:  events,
		logger:  logger.With().Str("component", "leaderboard_handler").Logger(),
	}
}

// Register attaches the routes to the provided router group.
func (h *LeaderboardHandler) Register(router fiber.Router) {
	router.Get("", h.snapshot)

	router.Use("/live", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})
	router.Get("/live", websocket.New(h.live))
}

func (h *LeaderboardHandler) snapshot(c *fiber.Ctx) error {
	board, err := h.service.Get(c.Context())
	if err != nil {
		requestLogger(h.logger, c).Error().Err(err).Msg("leaderboard request failed")
		return utils.SendError(c, fiber.StatusInternalServerError, "internal server error")
	}

	return utils.SendSuccess(c, "leaderboard retrieved", board)
}

func (h *LeaderboardHandler) live(conn *websocket.Conn) {
	defer conn.Close()

	board, err := h.service.Get(context.Background())
	if err != nil {
		h.logger.Error().Err(err).Msg("initial leaderboard push failed")
		return
	}
	if err := conn.WriteJSON(board); err != nil {
		return
	}

	if h.events == nil {
		return
	}
	updates, cancel := h.events.Subscribe()
	defer cancel()

	// Reader goroutine detects the client going away.
	closed := make(chan struct{})
	go func() {
		defer close(closed)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case event, ok := <-updates:
			if !ok {
				return
			}
			if err := conn.WriteJSON(event); err != nil {
				return
			}
		case <-closed:
			return
		}
	}
}
