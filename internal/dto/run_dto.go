package dto

// RunRequest executes code against optional custom input without grading.
type RunRequest struct {
	Code       string `json:"code" validate:"required,min=1"`
	LanguageID int    `json:"language_id" validate:"required,gt=0"`
	Stdin      string `json:"stdin"`
}

// RunResponse carries the judge's raw output for display in the editor
// terminal. Error holds stderr or compiler output; when blind mode is on it
// is replaced with a placeholder.
type RunResponse struct {
	Output string `json:"output"`
	Error  string `json:"error"`
}
