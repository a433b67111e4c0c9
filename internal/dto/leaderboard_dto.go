package dto

import "time"

// LeaderboardEntry is one finished student's standing. Rank is positional:
// the first entry is first place.
type LeaderboardEntry struct {
	Username       string    `json:"username"`
	Solved         int       `json:"solved"`
	Total          int       `json:"total"`
	ElapsedSeconds int64     `json:"elapsed_seconds"`
	FinishedAt     time.Time `json:"finished_at"`
}

// LeaderboardResponse is the full ordered ranking.
type LeaderboardResponse struct {
	Entries     []LeaderboardEntry `json:"entries"`
	GeneratedAt time.Time          `json:"generated_at"`
}

// FinishResponse summarizes one student's grading pass after they end the
// contest.
type FinishResponse struct {
	Username   string            `json:"username"`
	FinishedAt time.Time         `json:"finished_at"`
	Results    map[string]string `json:"results"`
}

// SubmissionReview is the admin view of one graded result.
type SubmissionReview struct {
	QuestionID    string    `json:"question_id"`
	QuestionTitle string    `json:"question_title"`
	Status        string    `json:"status"`
	GradedAt      time.Time `json:"graded_at"`
}

// SubmissionCodeResponse carries the graded draft code for admin review.
type SubmissionCodeResponse struct {
	Username   string `json:"username"`
	QuestionID string `json:"question_id"`
	Code       string `json:"code"`
	LanguageID int    `json:"language_id"`
	Status     string `json:"status,omitempty"`
}
