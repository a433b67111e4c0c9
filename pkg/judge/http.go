package judge

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Config configures the HTTP judge client.
type Config struct {
	BaseURL string
	Timeout time.Duration
}

// HTTPClient implements Client against a Judge0 instance using the
// synchronous wait=true submission endpoint.
type HTTPClient struct {
	baseURL string
	client  *http.Client
	logger  zerolog.Logger
}

// NewHTTPClient constructs an HTTP judge client.
func NewHTTPClient(cfg Config, logger zerolog.Logger) (*HTTPClient, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("judge base url must not be empty")
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}

	return &HTTPClient{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		client:  &http.Client{Timeout: cfg.Timeout},
		logger:  logger.With().Str("component", "judge_client").Logger(),
	}, nil
}

type submissionResponse struct {
	Status struct {
		ID          int    `json:"id"`
		Description string `json:"description"`
	} `json:"status"`
	Stdout        *string `json:"stdout"`
	Stderr        *string `json:"stderr"`
	CompileOutput *string `json:"compile_output"`
	Time          *string `json:"time"`
	Memory        *int    `json:"memory"`
}

// Execute runs a submission and blocks until the judge reports a verdict.
func (c *HTTPClient) Execute(ctx context.Context, submission Submission) (Result, error) {
	payload, err := json.Marshal(submission)
	if err != nil {
		return Result{}, fmt.Errorf("encode submission: %w", err)
	}

	url := c.baseURL + "/submissions?base64_encoded=false&wait=true"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return Result{}, fmt.Errorf("build judge request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		return Result{}, fmt.Errorf("judge request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return Result{}, fmt.Errorf("read judge response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return Result{}, fmt.Errorf("judge returned HTTP %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var decoded submissionResponse
	if err := json.Unmarshal(body, &decoded); err != nil {
		return Result{}, fmt.Errorf("decode judge response: %w", err)
	}

	result := Result{
		StatusID:          decoded.Status.ID,
		StatusDescription: decoded.Status.Description,
		Stdout:            stringValue(decoded.Stdout),
		Stderr:            stringValue(decoded.Stderr),
		CompileOutput:     stringValue(decoded.CompileOutput),
		Time:              stringValue(decoded.Time),
	}
	if decoded.Memory != nil {
		result.MemoryKB = *decoded.Memory
	}

	c.logger.Debug().
		Int("language_id", submission.LanguageID).
		Int("status_id", result.StatusID).
		Str("status", result.StatusDescription).
		Dur("latency", time.Since(start)).
		Msg("judge submission completed")

	return result, nil
}

func stringValue(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
