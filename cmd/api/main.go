package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog"

	"github.com/classforge/contest-api/internal/config"
	"github.com/classforge/contest-api/internal/database"
	"github.com/classforge/contest-api/internal/handler"
	"github.com/classforge/contest-api/internal/middleware"
	"github.com/classforge/contest-api/internal/models"
	"github.com/classforge/contest-api/internal/repository"
	"github.com/classforge/contest-api/internal/router"
	"github.com/classforge/contest-api/internal/service"
	"github.com/classforge/contest-api/pkg/judge"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	db, err := database.ConnectPostgres(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	if err := db.AutoMigrate(&models.User{}, &models.Question{}, &models.Draft{}, &models.Result{}, &models.Setting{}); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	if err := repository.SeedDefaults(context.Background(), db); err != nil {
		log.Fatalf("failed to seed settings: %v", err)
	}

	redisClient, err := database.ConnectRedis(cfg.RedisURL)
	if err != nil {
		log.Fatalf("failed to connect to redis: %v", err)
	}
	defer redisClient.Close()

	var natsConn *nats.Conn
	if cfg.NATSURL != "" {
		natsConn, err = nats.Connect(cfg.NATSURL)
		if err != nil {
			log.Fatalf("failed to connect to nats: %v", err)
		}
		defer natsConn.Close()
	}

	judgeClient, err := judge.NewHTTPClient(judge.Config{
		BaseURL: cfg.JudgeURL,
		Timeout: cfg.JudgeTimeout,
	}, logger)
	if err != nil {
		log.Fatalf("failed to create judge client: %v", err)
	}

	validate := validator.New(validator.WithRequiredStructEnabled())

	userRepo := repository.NewUserRepository(db)
	questionRepo := repository.NewQuestionRepository(db)
	draftRepo := repository.NewDraftRepository(db)
	resultRepo := repository.NewResultRepository(db)
	settingRepo := repository.NewSettingRepository(db)
	contestRepo := repository.NewContestRepository(db)

	settingsService := service.NewSettingsService(settingRepo, redisClient, cfg.SettingsCacheTTL, validate, logger)
	authService := service.NewAuthService(userRepo, settingsService, validate, logger, service.AuthConfig{
		ClassPIN:      cfg.ClassPIN,
		AdminUsername: cfg.AdminUsername,
		JWTSecret:     cfg.JWTSecret,
		TokenTTL:      cfg.TokenTTL,
	})
	questionService := service.NewQuestionService(questionRepo, judgeClient, validate, logger)
	draftService := service.NewDraftService(draftRepo, userRepo, questionRepo, validate, logger)
	runService := service.NewRunService(judgeClient, userRepo, settingsService, validate, logger)
	leaderboardService := service.NewLeaderboardService(userRepo, resultRepo, questionRepo, logger)
	contestEvents := service.NewContestEvents(natsConn, "", logger)
	gradingService := service.NewGradingService(userRepo, draftRepo, questionRepo, resultRepo, judgeClient, leaderboardService, contestEvents, logger)
	adminService := service.NewAdminService(contestRepo, resultRepo, draftRepo, questionRepo, logger)

	authHandler := handler.NewAuthHandler(authService, logger)
	questionHandler := handler.NewQuestionHandler(questionService, logger)
	draftHandler := handler.NewDraftHandler(draftService, logger)
	runHandler := handler.NewRunHandler(runService, logger)
	contestHandler := handler.NewContestHandler(gradingService, logger)
	leaderboardHandler := handler.NewLeaderboardHandler(leaderboardService, contestEvents, logger)
	settingsHandler := handler.NewSettingsHandler(settingsService, logger)
	adminHandler := handler.NewAdminHandler(adminService, logger)

	app := fiber.New(fiber.Config{
		AppName:      cfg.AppName,
		ServerHeader: cfg.AppName,
	})

	middleware.Register(app, middleware.Config{Logger: &logger})
	router.Register(app, cfg, router.Dependencies{
		AuthHandler:        authHandler,
		QuestionHandler:    questionHandler,
		DraftHandler:       draftHandler,
		RunHandler:         runHandler,
		ContestHandler:     contestHandler,
		LeaderboardHandler: leaderboardHandler,
		SettingsHandler:    settingsHandler,
		AdminHandler:       adminHandler,
		JWTMiddleware:      middleware.JWTProtected(cfg.JWTSecret),
		RunRateLimiter:     middleware.RateLimit("run", cfg.RunRateLimit, cfg.RunRateWindow),
	})

	go func() {
		if err := app.Listen(cfg.HTTPAddress()); err != nil {
			log.Fatalf("failed to start server: %v", err)
		}
	}()

	waitForShutdown(app)
}

func waitForShutdown(app *fiber.App) {
	shutdownCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-shutdownCtx.Done()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(ctx); err != nil {
		log.Printf("graceful shutdown failed: %v", err)
	}

	log.Println("server stopped")
}
