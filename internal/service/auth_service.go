package service

import (
	"context"
	"crypto/subtle"
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"

	"github.com/classforge/contest-api/internal/dto"
	"github.com/classforge/contest-api/internal/models"
	"github.com/classforge/contest-api/internal/repository"
)

// ErrInvalidPIN indicates the class PIN did not match.
var ErrInvalidPIN = errors.New("invalid class pin")

// ErrUsernameTaken re-exports the repository sentinel for handler mapping.
var ErrUsernameTaken = repository.ErrUsernameTaken

// ErrContestClosed indicates student logins are currently disabled.
var ErrContestClosed = errors.New("contest is closed")

// AuthService handles shared-PIN login and session token issuance.
type AuthService interface {
	Login(ctx context.Context, payload dto.LoginRequest) (dto.LoginResponse, error)
}

// AuthConfig carries the login secrets and token settings.
type AuthConfig struct {
	ClassPIN      string
	AdminUsername string
	JWTSecret     string
	TokenTTL      time.Duration
}

type authService struct {
	users     repository.UserRepository
	settings  SettingsService
	validator *validator.Validate
	logger    zerolog.Logger
	config    AuthConfig
	now       func() time.Time
}

// NewAuthService constructs the auth service.
func NewAuthService(users repository.UserRepository, settings SettingsService, validate *validator.Validate, logger zerolog.Logger, cfg AuthConfig) AuthService {
	if cfg.TokenTTL <= 0 {
		cfg.TokenTTL = 8 * time.Hour
	}
	return &authService{
		users:     users,
		settings:  settings,
		validator: validate,
		logger:    logger.With().Str("component", "auth_service").Logger(),
		config:    cfg,
		now:       time.Now,
	}
}

// Login checks the class PIN, then either recognizes the admin username or
// registers a new student first come first served. Re-using a claimed
// username is rejected; the insert itself is the race guard.
func (s *authService) Login(ctx context.Context, payload dto.LoginRequest) (dto.LoginResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.LoginResponse{}, err
	}

	if subtle.ConstantTimeCompare([]byte(payload.ClassPIN), []byte(s.config.ClassPIN)) != 1 {
		return dto.LoginResponse{}, ErrInvalidPIN
	}

	username := strings.TrimSpace(payload.Username)
	now := s.now()

	if username == s.config.AdminUsername {
		token, err := s.issueToken(username, models.RoleAdmin, now)
		if err != nil {
			return dto.LoginResponse{}, err
		}
		return dto.LoginResponse{Username: username, Role: models.RoleAdmin, Token: token, StartedAt: now}, nil
	}

	open, err := s.settings.ContestOpen(ctx)
	if err != nil {
		return dto.LoginResponse{}, err
	}
	if !open {
		return dto.LoginResponse{}, ErrContestClosed
	}

	user := models.User{Username: username, Role: models.RoleStudent, StartedAt: now}
	if err := s.users.Register(ctx, &user); err != nil {
		if errors.Is(err, repository.ErrUsernameTaken) {
			return dto.LoginResponse{}, ErrUsernameTaken
		}
		return dto.LoginResponse{}, err
	}

	token, err := s.issueToken(username, models.RoleStudent, now)
	if err != nil {
		return dto.LoginResponse{}, err
	}

	s.logger.Info().Str("username", username).Msg("student registered")
	return dto.LoginResponse{Username: username, Role: models.RoleStudent, Token: token, StartedAt: now}, nil
}

func (s *authService) issueToken(username, role string, issuedAt time.Time) (string, error) {
	claims := jwt.MapClaims{
		"sub":  username,
		"role": role,
		"iat":  issuedAt.Unix(),
		"exp":  issuedAt.Add(s.config.TokenTTL).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.config.JWTSecret))
}
