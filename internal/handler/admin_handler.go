package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/classforge/contest-api/internal/service"
	"github.com/classforge/contest-api/internal/utils"
)

// AdminHandler manages submission inspection and contest reset endpoints.
type AdminHandler struct {
	service service.AdminService
	logger  zerolog.Logger
}

// NewAdminHandler builds an admin handler instance.
func NewAdminHandler(service service.AdminService, logger zerolog.Logger) *AdminHandler {
	return &AdminHandler{
		service: service,
		logger:  logger.With().Str("component", "admin_handler").Logger(),
	}
}

// Register attaches the routes to the provided router group.
func (h *AdminHandler) Register(router fiber.Router) {
	router.Get("/submissions/:username", h.listSubmissions)
	router.Get("/submission-code", h.submissionCode)
	router.Post("/reset", h.reset)
}

func (h *AdminHandler) listSubmissions(c *fiber.Ctx) error {
	username := c.Params("username")
	submissions, err := h.service.ListSubmissions(c.Context(), username)
	if err != nil {
		return h.handleError(c, err)
	}
	return utils.SendSuccess(c, "submissions retrieved", submissions)
}

func (h *AdminHandler) submissionCode(c *fiber.Ctx) error {
	username := c.Query("username")
	questionID := c.Query("question_id")
	if username == "" || questionID == "" {
		return utils.SendError(c, fiber.StatusBadRequest, "username and question_id are required")
	}

	code, err := h.service.GetSubmissionCode(c.Context(), username, questionID)
	if err != nil {
		return h.handleError(c, err)
	}
	return utils.SendSuccess(c, "submission code retrieved", code)
}

func (h *AdminHandler) reset(c *fiber.Ctx) error {
	if err := h.service.ResetContest(c.Context()); err != nil {
		return h.handleError(c, err)
	}
	requestLogger(h.logger, c).Warn().Msg("contest reset executed")
	return utils.SendSuccess(c, "contest reset", nil)
}

func (h *AdminHandler) handleError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, service.ErrDraftNotFound):
		return utils.SendError(c, fiber.StatusNotFound, "submission not found")
	default:
		requestLogger(h.logger, c).Error().Err(err).Msg("admin request failed")
		return utils.SendError(c, fiber.StatusInternalServerError, "internal server error")
	}
}
