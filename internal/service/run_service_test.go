package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/classforge/contest-api/internal/dto"
	"github.com/classforge/contest-api/internal/models"
	"github.com/classforge/contest-api/pkg/judge"
)

func TestRunReturnsOutputAndDiagnostics(t *testing.T) {
	judgeStub := &scriptedJudge{results: []judge.Result{{
		StatusID:          judge.StatusAccepted,
		StatusDescription: "Accepted",
		Stdout:            "hello\n",
	}}}
	svc := NewRunService(judgeStub, newStubUserRepo(), staticSettings{open: true}, newTestValidator(), zerolog.Nop())

	response, err := svc.Run(context.Background(), "silas", dto.RunRequest{Code: "print('hello')", LanguageID: 71, Stdin: ""})
	require.NoError(t, err)
	require.Equal(t, "hello\n", response.Output)
	require.Empty(t, response.Error)
}

func TestRunBlindModeHidesErrorTextOnly(t *testing.T) {
	judgeStub := &scriptedJudge{results: []judge.Result{{
		StatusID:          judge.StatusCompilationError,
		StatusDescription: "Compilation Error",
		Stdout:            "partial output",
		CompileOutput:     "SyntaxError: invalid syntax",
	}}}
	svc := NewRunService(judgeStub, newStubUserRepo(), staticSettings{blind: true, open: true}, newTestValidator(), zerolog.Nop())

	response, err := svc.Run(context.Background(), "silas", dto.RunRequest{Code: "print(", LanguageID: 71})
	require.NoError(t, err)
	require.Equal(t, "partial output", response.Output, "stdout is never hidden")
	require.Equal(t, BlindModePlaceholder, response.Error)
}

func TestRunBlindModeLeavesCleanRunsAlone(t *testing.T) {
	judgeStub := &scriptedJudge{results: []judge.Result{acceptedResult("42\n")}}
	svc := NewRunService(judgeStub, newStubUserRepo(), staticSettings{blind: true, open: true}, newTestValidator(), zerolog.Nop())

	response, err := svc.Run(context.Background(), "silas", dto.RunRequest{Code: "print(42)", LanguageID: 71})
	require.NoError(t, err)
	require.Empty(t, response.Error)
}

func TestRunRejectedAfterFinish(t *testing.T) {
	finishedAt := time.Now()
	users := newStubUserRepo(models.User{
		Username:   "silas",
		Role:       models.RoleStudent,
		Finished:   true,
		FinishedAt: &finishedAt,
	})
	svc := NewRunService(&scriptedJudge{}, users, staticSettings{open: true}, newTestValidator(), zerolog.Nop())

	_, err := svc.Run(context.Background(), "silas", dto.RunRequest{Code: "print(1)", LanguageID: 71})
	require.ErrorIs(t, err, ErrAlreadyFinished)
}

func TestRunAllowsAdminWithoutUserRow(t *testing.T) {
	judgeStub := &scriptedJudge{results: []judge.Result{acceptedResult("ok\n")}}
	svc := NewRunService(judgeStub, newStubUserRepo(), staticSettings{open: true}, newTestValidator(), zerolog.Nop())

	response, err := svc.Run(context.Background(), "admin", dto.RunRequest{Code: "print('ok')", LanguageID: 71})
	require.NoError(t, err)
	require.Equal(t, "ok\n", response.Output)
}

func TestRunTransportFailure(t *testing.T) {
	judgeStub := &scriptedJudge{errs: []error{errors.New("dial tcp: refused")}}
	svc := NewRunService(judgeStub, newStubUserRepo(), staticSettings{open: true}, newTestValidator(), zerolog.Nop())

	_, err := svc.Run(context.Background(), "silas", dto.RunRequest{Code: "print(1)", LanguageID: 71})
	require.ErrorIs(t, err, ErrExecutionFailed)
}

func TestRunRejectsUnsupportedLanguage(t *testing.T) {
	svc := NewRunService(&scriptedJudge{}, newStubUserRepo(), staticSettings{open: true}, newTestValidator(), zerolog.Nop())

	_, err := svc.Run(context.Background(), "silas", dto.RunRequest{Code: "x", LanguageID: 999})
	require.ErrorIs(t, err, ErrUnsupportedLanguage)
}
