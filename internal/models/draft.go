package models

import "time"

// Draft holds a student's latest code for one question. There is at most one
// row per (username, question) pair; saves upsert with last write wins. The
// draft is also the artifact graded when the student finishes the contest.
type Draft struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	Username   string    `gorm:"size:64;not null;uniqueIndex:idx_draft_owner" json:"username"`
	QuestionID string    `gorm:"size:16;not null;uniqueIndex:idx_draft_owner" json:"question_id"`
	Code       string    `gorm:"type:text" json:"code"`
	LanguageID int       `gorm:"not null" json:"language_id"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
