package service

import (
	"context"
	"database/sql"
	"strconv"
	"testing"
	"time"

	"github.com/alexanderramin/psyche/internal/aggregate"
	"github.com/alexanderramin/psyche/internal/contract"
	"github.com/alexanderramin/psyche/internal/db"
	"github.com/alexanderramin/psyche/internal/domain"
	"github.com/alexanderramin/psyche/internal/instrument"
	"github.com/alexanderramin/psyche/internal/intelligence"
	"github.com/alexanderramin/psyche/internal/llm"
	"github.com/alexanderramin/psyche/internal/logging"
	"github.com/alexanderramin/psyche/internal/repository"
	"github.com/alexanderramin/psyche/internal/testutil"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2025, 3, 30, 12, 0, 0, 0, time.UTC)

func fixedClock() time.Time { return fixedNow }

type testEnv struct {
	db              *sql.DB
	registry        *instrument.Registry
	results         *repository.SQLiteResultRepo
	interpretations *repository.SQLiteInterpretationRepo
	moods           *repository.SQLiteMoodRepo
	profiles        *repository.SQLiteProfileRepo
	content         *repository.SQLiteContentRepo
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	database := testutil.NewTestDB(t)
	registry, err := instrument.Load("")
	require.NoError(t, err)
	return &testEnv{
		db:              database,
		registry:        registry,
		results:         repository.NewSQLiteResultRepo(database),
		interpretations: repository.NewSQLiteInterpretationRepo(database),
		moods:           repository.NewSQLiteMoodRepo(database),
		profiles:        repository.NewSQLiteProfileRepo(database),
		content:         repository.NewSQLiteContentRepo(database),
	}
}

func (e *testEnv) profileService(uow db.UnitOfWork, narrator intelligence.Narrator) *profileService {
	svc := NewProfileService(e.results, e.moods, e.profiles, uow, e.registry, narrator,
		aggregate.DefaultThresholds(), logging.Discard()).(*profileService)
	svc.now = fixedClock
	return svc
}

func (e *testEnv) submissionService(uow db.UnitOfWork, profiles ProfileService) *submissionService {
	svc := NewSubmissionService(e.registry, uow, profiles, logging.Discard()).(*submissionService)
	svc.now = fixedClock
	return svc
}

func uniformAnswers(prefix string, n int, v float64) domain.AnswerSet {
	answers := domain.AnswerSet{}
	for i := 1; i <= n; i++ {
		answers[prefix+strconv.Itoa(i)] = v
	}
	return answers
}

type mockLLMClient struct {
	response string
	err      error
	calls    int
}

func (m *mockLLMClient) Generate(_ context.Context, _ llm.GenerateRequest) (*llm.GenerateResponse, error) {
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	return &llm.GenerateResponse{Text: m.response, Model: "llama3.2"}, nil
}

func (m *mockLLMClient) Available(context.Context) bool { return true }

type recordingObserver struct {
	events []UseCaseEvent
}

func (o *recordingObserver) ObserveUseCase(_ context.Context, event UseCaseEvent) {
	o.events = append(o.events, event)
}

func contractMood(userID, mood string) contract.MoodLogRequest {
	return contract.MoodLogRequest{UserID: userID, Mood: mood}
}
