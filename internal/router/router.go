package router

import (
	"github.com/gofiber/fiber/v2"

	"github.com/classforge/contest-api/internal/config"
	"github.com/classforge/contest-api/internal/handler"
	"github.com/classforge/contest-api/internal/middleware"
	"github.com/classforge/contest-api/internal/observability"
)

// Dependencies groups router dependencies for registration.
type Dependencies struct {
	AuthHandler        *handler.AuthHandler
	QuestionHandler    *handler.QuestionHandler
	DraftHandler       *handler.DraftHandler
	RunHandler         *handler.RunHandler
	ContestHandler     *handler.ContestHandler
	LeaderboardHandler *handler.LeaderboardHandler
	SettingsHandler    *handler.SettingsHandler
	AdminHandler       *handler.AdminHandler
	JWTMiddleware      fiber.Handler
	RunRateLimiter     fiber.Handler
}

// Register wires the HTTP routes into the fiber application.
func Register(app *fiber.App, cfg config.Config, deps Dependencies) {
	api := app.Group("/api", func(c *fiber.Ctx) error {
		c.Set("X-Application", cfg.AppName)
		return c.Next()
	})
	api.Get("/health", handler.HealthCheck(cfg))

	app.Get("/metrics", observability.MetricsHandler())

	jwtMiddleware := deps.JWTMiddleware
	if jwtMiddleware == nil {
		jwtMiddleware = func(c *fiber.Ctx) error { return c.Next() }
	}

	if deps.AuthHandler != nil {
		deps.AuthHandler.Register(api)
	}

	protected := api.Group("", jwtMiddleware)

	if deps.AuthHandler != nil {
		deps.AuthHandler.RegisterProtected(protected)
	}
	if deps.QuestionHandler != nil {
		deps.QuestionHandler.Register(protected.Group("/questions"))
	}
	if deps.DraftHandler != nil {
		deps.DraftHandler.Register(protected.Group("/drafts"))
	}
	if deps.RunHandler != nil {
		runGroup := protected.Group("/run")
		if deps.RunRateLimiter != nil {
			runGroup.Use(deps.RunRateLimiter)
		}
		deps.RunHandler.Register(runGroup)
	}
	if deps.ContestHandler != nil {
		deps.ContestHandler.Register(protected)
	}
	if deps.SettingsHandler != nil {
		deps.SettingsHandler.Register(protected.Group("/settings"))
	}

	admin := api.Group("/admin", jwtMiddleware, middleware.RequireRole("admin"))

	if deps.QuestionHandler != nil {
		deps.QuestionHandler.RegisterAdmin(admin.Group("/questions"))
	}
	if deps.LeaderboardHandler != nil {
		deps.LeaderboardHandler.Register(admin.Group("/leaderboard"))
	}
	if deps.SettingsHandler != nil {
		deps.SettingsHandler.RegisterAdmin(admin.Group("/settings"))
	}
	if deps.AdminHandler != nil {
		deps.AdminHandler.Register(admin)
	}
}
