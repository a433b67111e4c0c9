package judge

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func TestHTTPClientExecuteDecodesVerdict(t *testing.T) {
	var received Submission
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/submissions", r.URL.Path)
		require.Equal(t, "true", r.URL.Query().Get("wait"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))

		stdout := "7\n"
		response := submissionResponse{Stdout: &stdout}
		response.Status.ID = StatusAccepted
		response.Status.Description = "Accepted"
		require.NoError(t, json.NewEncoder(w).Encode(response))
	}))
	defer server.Close()

	client, err := NewHTTPClient(Config{BaseURL: server.URL}, zerolog.Nop())
	require.NoError(t, err)

	result, err := client.Execute(context.Background(), Submission{
		SourceCode: "print(int(input())+int(input()))",
		LanguageID: 71,
		Stdin:      "3\n4",
	})
	require.NoError(t, err)
	require.True(t, result.Accepted())
	require.Equal(t, "7\n", result.Stdout)
	require.Equal(t, 71, received.LanguageID)
	require.Equal(t, "3\n4", received.Stdin)
}

func TestHTTPClientExecuteSurfacesHTTPErrors(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "queue full", http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client, err := NewHTTPClient(Config{BaseURL: server.URL}, zerolog.Nop())
	require.NoError(t, err)

	_, err = client.Execute(context.Background(), Submission{SourceCode: "x", LanguageID: 71})
	require.Error(t, err)
	require.Contains(t, err.Error(), "503")
}

func TestHTTPClientRequiresBaseURL(t *testing.T) {
	_, err := NewHTTPClient(Config{}, zerolog.Nop())
	require.Error(t, err)
}

func TestResultErrorTextPrefersStderr(t *testing.T) {
	result := Result{Stderr: "traceback", CompileOutput: "warning"}
	require.Equal(t, "traceback", result.ErrorText())

	result = Result{CompileOutput: "syntax error"}
	require.Equal(t, "syntax error", result.ErrorText())
}

func TestSupportedLanguages(t *testing.T) {
	require.True(t, IsSupportedLanguage(71))
	require.False(t, IsSupportedLanguage(999))
	require.Equal(t, "Python (3.8.1)", LanguageName(71))
	require.Empty(t, LanguageName(999))
}
