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

// DraftHandler manages editor draft endpoints.
type DraftHandler struct {
	service service.DraftService
	logger  zerolog.Logger
}

// NewDraftHandler builds a draft handler instance.
func NewDraftHandler(service service.DraftService, logger zerolog.Logger) *DraftHandler {
	return &DraftHandler{
		service: service,
		logger:  logger.With().Str("component", "draft_handler").Logger(),
	}
}

// Register attaches the routes to the provided router group.
func (h *DraftHandler) Register(router fiber.Router) {
	router.Get("", h.list)
	router.Post("", h.save)
}

func (h *DraftHandler) list(c *fiber.Ctx) error {
	username := usernameFromContext(c)
	if username == "" {
		return utils.SendError(c, fiber.StatusUnauthorized, "authentication required")
	}

	drafts, err := h.service.List(c.Context(), username)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "drafts retrieved", drafts)
}

func (h *DraftHandler) save(c *fiber.Ctx) error {
	username := usernameFromContext(c)
	if username == "" {
		return utils.SendError(c, fiber.StatusUnauthorized, "authentication required")
	}

	var payload dto.DraftSaveRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	draft, err := h.service.Save(c.Context(), username, payload)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "draft saved", draft)
}

func (h *DraftHandler) handleError(c *fiber.Ctx, err error) error {
	var validationErrors validator.ValidationErrors
	switch {
	case errors.Is(err, service.ErrUserNotFound):
		return utils.SendError(c, fiber.StatusUnauthorized, "unknown user")
	case errors.Is(err, service.ErrQuestionNotFound):
		return utils.SendError(c, fiber.StatusNotFound, "question not found")
	case errors.Is(err, service.ErrUnsupportedLanguage):
		return utils.SendError(c, fiber.StatusBadRequest, "unsupported language")
	case errors.Is(err, service.ErrAlreadyFinished):
		return utils.SendError(c, fiber.StatusForbidden, "contest already finished")
	case errors.As(err, &validationErrors):
		return utils.SendError(c, fiber.StatusBadRequest, validationErrors.Error())
	default:
		requestLogger(h.logger, c).Error().Err(err).Msg("draft request failed")
		return utils.SendError(c, fiber.StatusInternalServerError, "internal server error")
	}
}
