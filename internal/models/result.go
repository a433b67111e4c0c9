package models

import "time"

// Result statuses. Verdict statuses other than Accepted carry the judge's
// own description verbatim ("Wrong Answer", "Compilation Error", ...);
// StatusSystemError marks a judge transport failure, not a verdict.
const (
	StatusAccepted    = "Accepted"
	StatusSystemError = "System Error"
)

// Result is the final graded outcome for one (student, question) pair,
// produced by the finish-contest grading pass. Re-grading overwrites it.
type Result struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	Username   string    `gorm:"size:64;not null;uniqueIndex:idx_result_owner" json:"username"`
	QuestionID string    `gorm:"size:16;not null;uniqueIndex:idx_result_owner" json:"question_id"`
	Status     string    `gorm:"size:64;not null" json:"status"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// Solved reports whether the result counts toward the leaderboard.
func (r Result) Solved() bool {
	return r.Status == StatusAccepted
}
