package models

// Contest-wide setting keys.
const (
	SettingBlindMode   = "blind_mode"
	SettingContestOpen = "contest_open"
)

// Setting is one contest-wide flag. Settings are persisted so multiple
// server instances observe the same values; a short-lived cache sits in
// front of this table.
type Setting struct {
	Key   string `gorm:"primaryKey;size:64" json:"key"`
	Value string `gorm:"size:255;not null" json:"value"`
}

// Bool interprets the stored value as a boolean flag.
func (s Setting) Bool() bool {
	return s.Value == "true"
}
