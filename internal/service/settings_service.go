package service

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/classforge/contest-api/internal/dto"
	"github.com/classforge/contest-api/internal/models"
	"github.com/classforge/contest-api/internal/repository"
)

const settingsCacheKey = "contest:settings"

// SettingsService reads and toggles contest-wide flags. Values live in the
// database so every server instance agrees; a short-TTL cache absorbs the
// per-request reads.
type SettingsService interface {
	Get(ctx context.Context) (dto.SettingsResponse, error)
	Update(ctx context.Context, payload dto.SettingUpdateRequest) (dto.SettingsResponse, error)
	BlindMode(ctx context.Context) (bool, error)
	ContestOpen(ctx context.Context) (bool, error)
}

type settingsService struct {
	repo      repository.SettingRepository
	cache     *redis.Client
	cacheTTL  time.Duration
	validator *validator.Validate
	logger    zerolog.Logger
}

// NewSettingsService constructs the settings service.
func NewSettingsService(repo repository.SettingRepository, cache *redis.Client, ttl time.Duration, validate *validator.Validate, logger zerolog.Logger) SettingsService {
	if ttl <= 0 {
		ttl = 5 * time.Second
	}
	return &settingsService{
		repo:      repo,
		cache:     cache,
		cacheTTL:  ttl,
		validator: validate,
		logger:    logger.With().Str("component", "settings_service").Logger(),
	}
}

func (s *settingsService) Get(ctx context.Context) (dto.SettingsResponse, error) {
	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, settingsCacheKey).Result(); err == nil {
			var response dto.SettingsResponse
			if unmarshalErr := json.Unmarshal([]byte(cached), &response); unmarshalErr == nil {
				return response, nil
			}
		} else if err != redis.Nil {
			s.logger.Warn().Err(err).Msg("failed to read settings cache")
		}
	}

	settings, err := s.repo.GetAll(ctx)
	if err != nil {
		return dto.SettingsResponse{}, err
	}

	response := dto.SettingsResponse{ContestOpen: true}
	for _, setting := range settings {
		switch setting.Key {
		case models.SettingBlindMode:
			response.BlindMode = setting.Bool()
		case models.SettingContestOpen:
			response.ContestOpen = setting.Bool()
		}
	}

	if s.cache != nil {
		if payload, err := json.Marshal(response); err == nil {
			if err := s.cache.Set(ctx, settingsCacheKey, payload, s.cacheTTL).Err(); err != nil {
				s.logger.Warn().Err(err).Msg("failed to store settings cache")
			}
		}
	}

	return response, nil
}

func (s *settingsService) Update(ctx context.Context, payload dto.SettingUpdateRequest) (dto.SettingsResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.SettingsResponse{}, err
	}

	if err := s.repo.Set(ctx, payload.Key, strconv.FormatBool(payload.Value)); err != nil {
		return dto.SettingsResponse{}, err
	}

	if s.cache != nil {
		if err := s.cache.Del(ctx, settingsCacheKey).Err(); err != nil {
			s.logger.Warn().Err(err).Msg("failed to invalidate settings cache")
		}
	}

	s.logger.Info().Str("key", payload.Key).Bool("value", payload.Value).Msg("setting updated")
	return s.Get(ctx)
}

func (s *settingsService) BlindMode(ctx context.Context) (bool, error) {
	settings, err := s.Get(ctx)
	if err != nil {
		return false, err
	}
	return settings.BlindMode, nil
}

func (s *settingsService) ContestOpen(ctx context.Context) (bool, error) {
	settings, err := s.Get(ctx)
	if err != nil {
		return false, err
	}
	return settings.ContestOpen, nil
}
