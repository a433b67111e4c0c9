package service

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/classforge/contest-api/internal/models"
	"github.com/classforge/contest-api/pkg/judge"
)

// scriptedJudge replays canned results in order; err applies to every call.
type scriptedJudge struct {
	results []judge.Result
	errs    []error
	calls   []judge.Submission
}

func (j *scriptedJudge) Execute(_ context.Context, submission judge.Submission) (judge.Result, error) {
	index := len(j.calls)
	j.calls = append(j.calls, submission)
	if index < len(j.errs) && j.errs[index] != nil {
		return judge.Result{}, j.errs[index]
	}
	if index < len(j.results) {
		return j.results[index], nil
	}
	return judge.Result{StatusID: judge.StatusAccepted, StatusDescription: "Accepted"}, nil
}

func acceptedResult(stdout string) judge.Result {
	return judge.Result{StatusID: judge.StatusAccepted, StatusDescription: "Accepted", Stdout: stdout}
}

func rejectedResult(description, stderr string) judge.Result {
	return judge.Result{StatusID: judge.StatusWrongAnswer, StatusDescription: description, Stderr: stderr}
}

type stubUserRepo struct {
	users map[string]models.User
	err   error
}

func newStubUserRepo(users ...models.User) *stubUserRepo {
	repo := &stubUserRepo{users: map[string]models.User{}}
	for _, user := range users {
		repo.users[user.Username] = user
	}
	return repo
}

func (r *stubUserRepo) Register(_ context.Context, user *models.User) error {
	if r.err != nil {
		return r.err
	}
	if _, exists := r.users[user.Username]; exists {
		return ErrUsernameTaken
	}
	r.users[user.Username] = *user
	return nil
}

func (r *stubUserRepo) GetByUsername(_ context.Context, username string) (models.User, error) {
	if r.err != nil {
		return models.User{}, r.err
	}
	user, ok := r.users[username]
	if !ok {
		return models.User{}, gorm.ErrRecordNotFound
	}
	return user, nil
}

func (r *stubUserRepo) MarkFinished(_ context.Context, username string, finishedAt time.Time) error {
	user, ok := r.users[username]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	user.Finished = true
	user.FinishedAt = &finishedAt
	r.users[username] = user
	return nil
}

func (r *stubUserRepo) ListFinished(_ context.Context) ([]models.User, error) {
	var finished []models.User
	for _, user := range r.users {
		if user.Finished && user.Role == models.RoleStudent {
			finished = append(finished, user)
		}
	}
	return finished, nil
}

type stubQuestionRepo struct {
	questions map[string]models.Question
	created   []models.Question
	err       error
}

func newStubQuestionRepo(questions ...models.Question) *stubQuestionRepo {
	repo := &stubQuestionRepo{questions: map[string]models.Question{}}
	for _, question := range questions {
		repo.questions[question.ID] = question
	}
	return repo
}

func (r *stubQuestionRepo) Create(_ context.Context, question *models.Question) error {
	if r.err != nil {
		return r.err
	}
	r.questions[question.ID] = *question
	r.created = append(r.created, *question)
	return nil
}

func (r *stubQuestionRepo) GetByID(_ context.Context, id string) (models.Question, error) {
	if r.err != nil {
		return models.Question{}, r.err
	}
	question, ok := r.questions[id]
	if !ok {
		return models.Question{}, gorm.ErrRecordNotFound
	}
	return question, nil
}

func (r *stubQuestionRepo) ListActive(_ context.Context) ([]models.Question, error) {
	var active []models.Question
	for _, question := range r.questions {
		if question.Active {
			active = append(active, question)
		}
	}
	return active, nil
}

func (r *stubQuestionRepo) ListAll(_ context.Context) ([]models.Question, error) {
	var all []models.Question
	for _, question := range r.questions {
		all = append(all, question)
	}
	return all, nil
}

func (r *stubQuestionRepo) Delete(_ context.Context, id string) error {
	delete(r.questions, id)
	return nil
}

func (r *stubQuestionRepo) ToggleActive(_ context.Context, id string) error {
	question := r.questions[id]
	question.Active = !question.Active
	r.questions[id] = question
	return nil
}

type stubDraftRepo struct {
	drafts []models.Draft
	err    error
}

func (r *stubDraftRepo) Upsert(_ context.Context, draft *models.Draft) error {
	if r.err != nil {
		return r.err
	}
	for i, existing := range r.drafts {
		if existing.Username == draft.Username && existing.QuestionID == draft.QuestionID {
			r.drafts[i] = *draft
			return nil
		}
	}
	r.drafts = append(r.drafts, *draft)
	return nil
}

func (r *stubDraftRepo) ListByUsername(_ context.Context, username string) ([]models.Draft, error) {
	if r.err != nil {
		return nil, r.err
	}
	var owned []models.Draft
	for _, draft := range r.drafts {
		if draft.Username == username {
			owned = append(owned, draft)
		}
	}
	return owned, nil
}

func (r *stubDraftRepo) Get(_ context.Context, username, questionID string) (models.Draft, error) {
	for _, draft := range r.drafts {
		if draft.Username == username && draft.QuestionID == questionID {
			return draft, nil
		}
	}
	return models.Draft{}, gorm.ErrRecordNotFound
}

type stubResultRepo struct {
	results []models.Result
	err     error
}

func (r *stubResultRepo) Upsert(_ context.Context, result *models.Result) error {
	if r.err != nil {
		return r.err
	}
	for i, existing := range r.results {
		if existing.Username == result.Username && existing.QuestionID == result.QuestionID {
			r.results[i] = *result
			return nil
		}
	}
	r.results = append(r.results, *result)
	return nil
}

func (r *stubResultRepo) ListByUsername(_ context.Context, username string) ([]models.Result, error) {
	var owned []models.Result
	for _, result := range r.results {
		if result.Username == username {
			owned = append(owned, result)
		}
	}
	return owned, nil
}

func (r *stubResultRepo) ListAll(_ context.Context) ([]models.Result, error) {
	return r.results, nil
}

func mustEncodeCases(t *testing.T, cases []models.TestCase) datatypes.JSON {
	t.Helper()
	payload, err := json.Marshal(cases)
	if err != nil {
		t.Fatalf("encode test cases: %v", err)
	}
	return datatypes.JSON(payload)
}
