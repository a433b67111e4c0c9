package models

import "time"

// Roles assigned at login.
const (
	RoleAdmin   = "admin"
	RoleStudent = "student"
)

// User represents a contest participant. Usernames are claimed first come
// first served; the unique primary key makes registration an atomic
// insert-if-absent at the storage layer.
type User struct {
	Username   string     `gorm:"primaryKey;size:64" json:"username"`
	Role       string     `gorm:"size:16;not null" json:"role"`
	StartedAt  time.Time  `gorm:"not null" json:"started_at"`
	FinishedAt *time.Time `json:"finished_at,omitempty"`
	Finished   bool       `gorm:"not null;default:false" json:"finished"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

// Elapsed returns the contest duration for a finished user.
func (u User) Elapsed() time.Duration {
	if u.FinishedAt == nil {
		return 0
	}
	return u.FinishedAt.Sub(u.StartedAt)
}
