package models

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"
)

// TestCase pairs an input with the expected output captured from the
// reference solution. Expected outputs are derived, never authored.
type TestCase struct {
	Input          string `json:"input"`
	ExpectedOutput string `json:"expected_output"`
}

// Question is a contest problem. Test cases are generated once at creation
// time and are immutable afterwards; they are never exposed to students.
type Question struct {
	ID          string         `gorm:"primaryKey;size:16" json:"id"`
	Title       string         `gorm:"size:255;not null" json:"title"`
	Description string         `gorm:"type:text" json:"description"`
	Templates   datatypes.JSON `gorm:"type:json" json:"templates"`
	TestCases   datatypes.JSON `gorm:"type:json" json:"-"`
	Active      bool           `gorm:"not null;default:true" json:"active"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

// DecodeTestCases unmarshals the stored test-case sequence.
func (q Question) DecodeTestCases() ([]TestCase, error) {
	if len(q.TestCases) == 0 {
		return nil, nil
	}
	var cases []TestCase
	if err := json.Unmarshal(q.TestCases, &cases); err != nil {
		return nil, err
	}
	return cases, nil
}

// DecodeTemplates unmarshals the per-language starter templates, keyed by the
// judge language id rendered as a string.
func (q Question) DecodeTemplates() (map[string]string, error) {
	if len(q.Templates) == 0 {
		return map[string]string{}, nil
	}
	var templates map[string]string
	if err := json.Unmarshal(q.Templates, &templates); err != nil {
		return nil, err
	}
	return templates, nil
}
