package service

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog"

	"github.com/classforge/contest-api/internal/dto"
)

const contestEventBufferSize = 8

// ContestEvent is broadcast whenever a student finishes and grading
// completes. Live admin views consume it instead of polling.
type ContestEvent struct {
	Username    string                  `json:"username"`
	FinishedAt  time.Time               `json:"finished_at"`
	Leaderboard dto.LeaderboardResponse `json:"leaderboard"`
}

// ContestEvents fans grading events out to in-process subscribers and,
// when a NATS connection is configured, to other server instances.
type ContestEvents struct {
	mu          sync.RWMutex
	subscribers map[chan ContestEvent]struct{}
	nats        *nats.Conn
	natsSubject string
	logger      zerolog.Logger
}

// NewContestEvents constructs the event broker. natsConn may be nil, in
// which case events stay in-process.
func NewContestEvents(natsConn *nats.Conn, subject string, logger zerolog.Logger) *ContestEvents {
	if subject == "" {
		subject = "contest.finished"
	}
	return &ContestEvents{
		subscribers: make(map[chan ContestEvent]struct{}),
		nats:        natsConn,
		natsSubject: subject,
		logger:      logger.With().Str("component", "contest_events").Logger(),
	}
}

// Publish delivers the event to all subscribers. Slow subscribers are
// skipped rather than blocking the grading pass.
func (e *ContestEvents) Publish(event ContestEvent) {
	e.mu.RLock()
	for subscriber := range e.subscribers {
		select {
		case subscriber <- event:
		default:
		}
	}
	e.mu.RUnlock()

	if e.nats != nil {
		payload, err := json.Marshal(event)
		if err != nil {
			e.logger.Error().Err(err).Msg("failed to encode contest event")
			return
		}
		if err := e.nats.Publish(e.natsSubject, payload); err != nil {
			e.logger.Warn().Err(err).Msg("failed to publish contest event to nats")
		}
	}
}

// Subscribe registers an in-process listener. The returned cancel function
// must be called to release the channel.
func (e *ContestEvents) Subscribe() (<-chan ContestEvent, func()) {
	channel := make(chan ContestEvent, contestEventBufferSize)

	e.mu.Lock()
	e.subscribers[channel] = struct{}{}
	e.mu.Unlock()

	cancel := func() {
		e.mu.Lock()
		delete(e.subscribers, channel)
		e.mu.Unlock()
		close(channel)
	}
	return channel, cancel
}
