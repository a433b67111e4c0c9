package service

import (
	"context"
	"sort"
	"time"

	"github.com/rs/zerolog"

	"github.com/classforge/contest-api/internal/dto"
	"github.com/classforge/contest-api/internal/repository"
)

// LeaderboardService joins finished users with their results into a ranked
// list. It is a read-only derived view with no storage of its own.
type LeaderboardService interface {
	Get(ctx context.Context) (dto.LeaderboardResponse, error)
}

type leaderboardService struct {
	users     repository.UserRepository
	results   repository.ResultRepository
	questions repository.QuestionRepository
	logger    zerolog.Logger
	now       func() time.Time
}

// NewLeaderboardService constructs the leaderboard aggregator.
func NewLeaderboardService(users repository.UserRepository, results repository.ResultRepository, questions repository.QuestionRepository, logger zerolog.Logger) LeaderboardService {
	return &leaderboardService{
		users:     users,
		results:   results,
		questions: questions,
		logger:    logger.With().Str("component", "leaderboard_service").Logger(),
		now:       time.Now,
	}
}

// Get ranks finished students by solved count descending, ties broken by
// ascending elapsed time. Students still in progress are excluded entirely.
func (s *leaderboardService) Get(ctx context.Context) (dto.LeaderboardResponse, error) {
	users, err := s.users.ListFinished(ctx)
	if err != nil {
		return dto.LeaderboardResponse{}, err
	}

	results, err := s.results.ListAll(ctx)
	if err != nil {
		return dto.LeaderboardResponse{}, err
	}

	questions, err := s.questions.ListAll(ctx)
	if err != nil {
		return dto.LeaderboardResponse{}, err
	}

	solvedByUser := map[string]int{}
	for _, result := range results {
		if result.Solved() {
			solvedByUser[result.Username]++
		}
	}

	entries := make([]dto.LeaderboardEntry, 0, len(users))
	for _, user := range users {
		if user.FinishedAt == nil {
			continue
		}
		entries = append(entries, dto.LeaderboardEntry{
			Username:       user.Username,
			Solved:         solvedByUser[user.Username],
			Total:          len(questions),
			ElapsedSeconds: int64(user.Elapsed() / time.Second),
			FinishedAt:     *user.FinishedAt,
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].Solved != entries[j].Solved {
			return entries[i].Solved > entries[j].Solved
		}
		return entries[i].ElapsedSeconds < entries[j].ElapsedSeconds
	})

	return dto.LeaderboardResponse{Entries: entries, GeneratedAt: s.now()}, nil
}
