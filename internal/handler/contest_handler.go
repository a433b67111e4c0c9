package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/classforge/contest-api/internal/service"
	"github.com/classforge/contest-api/internal/utils"
)

// ContestHandler manages the finish-contest endpoint.
type ContestHandler struct {
	grading service.GradingService
	logger  zerolog.Logger
}

// NewContestHandler builds a contest handler instance.
func NewContestHandler(grading service.GradingService, logger zerolog.Logger) *ContestHandler {
	return &ContestHandler{
		grading: grading,
		logger:  logger.With().Str("component", "contest_handler").Logger(),
	}
}

// Register attaches the routes to the provided router group.
func (h *ContestHandler) Register(router fiber.Router) {
	router.Post("/finish", h.finish)
}

func (h *ContestHandler) finish(c *fiber.Ctx) error {
	username := usernameFromContext(c)
	if username == "" {
		return utils.SendError(c, fiber.StatusUnauthorized, "authentication required")
	}

	summary, err := h.grading.FinishContest(c.Context(), username)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "contest finished", summary)
}

func (h *ContestHandler) handleError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, service.ErrUserNotFound):
		return utils.SendError(c, fiber.StatusUnauthorized, "unknown user")
	case errors.Is(err, service.ErrAlreadyFinished):
		return utils.SendError(c, fiber.StatusForbidden, "contest already finished")
	default:
		requestLogger(h.logger, c).Error().Err(err).Msg("finish request failed")
		return utils.SendError(c, fiber.StatusInternalServerError, "internal server error")
	}
}
