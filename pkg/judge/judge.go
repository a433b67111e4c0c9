// Package judge talks to a Judge0-compatible code execution service. The
// platform delegates all compilation, sandboxing and output comparison to it;
// this package only moves submissions over the wire.
package judge

import "context"

// Judge0 status identifiers. Accepted is the single success sentinel; every
// other status is surfaced to callers verbatim through StatusDescription.
const (
	StatusInQueue           = 1
	StatusProcessing        = 2
	StatusAccepted          = 3
	StatusWrongAnswer       = 4
	StatusTimeLimitExceeded = 5
	StatusCompilationError  = 6
)

// Submission is a single execution request.
type Submission struct {
	SourceCode string `json:"source_code"`
	LanguageID int    `json:"language_id"`
	Stdin      string `json:"stdin,omitempty"`
	// ExpectedOutput, when set, makes the judge compare stdout itself and
	// report Wrong Answer instead of Accepted on mismatch.
	ExpectedOutput string `json:"expected_output,omitempty"`
}

// Result is the judge's verdict for one submission.
type Result struct {
	StatusID          int
	StatusDescription string
	Stdout            string
	Stderr            string
	CompileOutput     string
	Time              string
	MemoryKB          int
}

// Accepted reports whether the run passed.
func (r Result) Accepted() bool {
	return r.StatusID == StatusAccepted
}

// ErrorText returns the diagnostic text of a failed run, preferring stderr
// over compiler output.
func (r Result) ErrorText() string {
	if r.Stderr != "" {
		return r.Stderr
	}
	return r.CompileOutput
}

// Client executes submissions against the remote judge. Transport failures
// are returned as errors; verdicts, including failing ones, are values.
type Client interface {
	Execute(ctx context.Context, submission Submission) (Result, error)
}
