package handler

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/classforge/contest-api/internal/dto"
	"github.com/classforge/contest-api/internal/service"
	"github.com/classforge/contest-api/internal/utils"
)

// RunHandler manages the ungraded code execution endpoint.
type RunHandler struct {
	service service.RunService
	logger  zerolog.Logger
}

// NewRunHandler builds a run handler instance.
func NewRunHandler(service service.RunService, logger zerolog.Logger) *RunHandler {
	return &RunHandler{
		service: service,
		logger:  logger.With().Str("component", "run_handler").Logger(),
	}
}

// Register attaches the routes to the provided router group.
func (h *RunHandler) Register(router fiber.Router) {
	router.Post("", h.run)
}

func (h *RunHandler) run(c *fiber.Ctx) error {
	username := usernameFromContext(c)
	if username == "" {
		return utils.SendError(c, fiber.StatusUnauthorized, "authentication required")
	}

	var payload dto.RunRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	output, err := h.service.Run(c.Context(), username, payload)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "run completed", output)
}

func (h *RunHandler) handleError(c *fiber.Ctx, err error) error {
	var validationErrors validator.ValidationErrors
	switch {
	case errors.Is(err, service.ErrUnsupportedLanguage):
		return utils.SendError(c, fiber.StatusBadRequest, "unsupported language")
	case errors.Is(err, service.ErrAlreadyFinished):
		return utils.SendError(c, fiber.StatusForbidden, "contest already finished")
	case errors.Is(err, service.ErrExecutionFailed):
		return utils.SendError(c, fiber.StatusBadGateway, "execution engine unavailable")
	case errors.As(err, &validationErrors):
		return utils.SendError(c, fiber.StatusBadRequest, validationErrors.Error())
	default:
		requestLogger(h.logger, c).Error().Err(err).Msg("run request failed")
		return utils.SendError(c, fiber.StatusInternalServerError, "internal server error")
	}
}
