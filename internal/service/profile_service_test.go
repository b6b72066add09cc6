package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/alexanderramin/psyche/internal/contract"
	"github.com/alexanderramin/psyche/internal/domain"
	"github.com/alexanderramin/psyche/internal/intelligence"
	"github.com/alexanderramin/psyche/internal/llm"
	"github.com/alexanderramin/psyche/internal/repository"
	"github.com/alexanderramin/psyche/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProfileGet_ColdStartPlaceholderIsNotStored(t *testing.T) {
	env := newTestEnv(t)
	svc := env.profileService(testutil.NewTestUoW(env.db), nil)
	ctx := context.Background()

	p, err := svc.Get(ctx, "new-user")
	require.NoError(t, err)
	assert.Equal(t, domain.PhaseColdStart, p.Phase)
	assert.Equal(t, domain.RiskUnknown, p.RiskLevel)
	assert.Empty(t, p.ID)
	assert.Equal(t, domain.NarrativeDeterministic, p.NarrativeSource)
	assert.Contains(t, p.CombinedReport, "not taken any tests")

	_, err = env.profiles.GetByUser(ctx, "new-user")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestProfileGet_WithoutRowAggregatesStoredHistory(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	// A submit whose profile refresh failed leaves results but no profile row.
	require.NoError(t, env.results.Create(ctx, testutil.NewTestResult("phq9", 2.5,
		testutil.WithUser("u1"), testutil.WithCreatedAt(fixedNow.Add(-time.Hour)), testutil.WithTier(4, "severe"))))
	svc := env.profileService(testutil.NewTestUoW(env.db), nil)

	p, err := svc.Get(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, domain.PhaseTestsOnly, p.Phase)
	assert.Equal(t, 1, p.Stats.TotalTests)
	assert.Equal(t, domain.RiskHigh, p.RiskLevel)
	assert.Empty(t, p.ID)
	assert.NotContains(t, p.CombinedReport, "not taken any tests")

	_, err = env.profiles.GetByUser(ctx, "u1")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestProfileRefresh_ColdStartUpserts(t *testing.T) {
	env := newTestEnv(t)
	svc := env.profileService(testutil.NewTestUoW(env.db), nil)

	p, err := svc.Refresh(context.Background(), "u1")
	require.NoError(t, err)
	assert.NotEmpty(t, p.ID)
	assert.Equal(t, domain.PhaseColdStart, p.Phase)
	require.Len(t, p.Recommendations, 1)
	assert.Equal(t, "gad7", p.Recommendations[0].InstrumentID)
}

func TestProfileRefresh_IdempotentAndPreservesID(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	for i, m := range []domain.Mood{domain.MoodGood, domain.MoodNeutral, domain.MoodLow} {
		require.NoError(t, env.moods.Create(ctx, testutil.NewTestMood("u1", fixedNow.AddDate(0, 0, -i), m)))
	}
	require.NoError(t, env.results.Create(ctx, testutil.NewTestResult("phq9", 1.2,
		testutil.WithUser("u1"), testutil.WithCreatedAt(fixedNow.Add(-time.Hour)))))

	svc := env.profileService(testutil.NewTestUoW(env.db), nil)
	first, err := svc.Refresh(ctx, "u1")
	require.NoError(t, err)
	second, err := svc.Refresh(ctx, "u1")
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, domain.PhaseSteady, second.Phase)

	stored, err := env.profiles.GetByUser(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, first.ID, stored.ID)
	assert.Equal(t, first.RiskLevel, stored.RiskLevel)
	assert.Equal(t, first.State, stored.State)
	assert.Equal(t, first.ChartData, stored.ChartData)
	assert.Equal(t, first.Recommendations, stored.Recommendations)
	assert.Equal(t, first.CombinedReport, stored.CombinedReport)
}

func TestProfileRefresh_FailedUpsertLeavesPriorProfile(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	good := env.profileService(testutil.NewTestUoW(env.db), nil)
	before, err := good.Refresh(ctx, "u1")
	require.NoError(t, err)
	require.Equal(t, domain.PhaseColdStart, before.Phase)

	require.NoError(t, env.results.Create(ctx, testutil.NewTestResult("gad7", 2.5, testutil.WithUser("u1"))))

	failing := env.profileService(&testutil.FailOnNthExecUoW{
		DB:     env.db,
		FailOn: 1,
		Err:    fmt.Errorf("injected upsert failure"),
	}, nil)
	_, err = failing.Refresh(ctx, "u1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "injected upsert failure")

	after, err := env.profiles.GetByUser(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, before.ID, after.ID)
	assert.Equal(t, domain.PhaseColdStart, after.Phase)
	assert.Equal(t, 0, after.Stats.TotalTests)
}

func TestProfileRefresh_LLMTimeoutFallsBackToDeterministic(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	require.NoError(t, env.results.Create(ctx, testutil.NewTestResult("gad7", 1.0, testutil.WithUser("u1"))))

	client := &mockLLMClient{err: llm.ErrTimeout}
	svc := env.profileService(testutil.NewTestUoW(env.db), intelligence.NewLLMNarrator(client))

	p, err := svc.Refresh(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, 1, client.calls)
	assert.Equal(t, domain.NarrativeDeterministic, p.NarrativeSource)
	assert.True(t, p.NarrativeDegraded)
	assert.Contains(t, p.CombinedReport, "Overall risk is")
}

func TestProfileRefresh_UsesLLMNarrativeWhenValid(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	require.NoError(t, env.results.Create(ctx, testutil.NewTestResult("gad7", 1.0, testutil.WithUser("u1"))))

	client := &mockLLMClient{response: `{"overview":"Things look manageable.","tests":"One anxiety check so far.","mood":"","next_steps":"Log your mood."}`}
	svc := env.profileService(testutil.NewTestUoW(env.db), intelligence.NewLLMNarrator(client))

	p, err := svc.Refresh(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, domain.NarrativeLLM, p.NarrativeSource)
	assert.False(t, p.NarrativeDegraded)
	assert.Equal(t, "Things look manageable.\n\nOne anxiety check so far.\n\nLog your mood.", p.CombinedReport)
}

type failingNarrator struct{}

func (failingNarrator) Narrate(context.Context, intelligence.NarrativeTrace) (*intelligence.Narrative, error) {
	return nil, fmt.Errorf("narrator exploded")
}

func TestProfileAggregate_NarratorErrorIsDegradedNotFatal(t *testing.T) {
	env := newTestEnv(t)
	svc := env.profileService(testutil.NewTestUoW(env.db), failingNarrator{})

	history := []domain.ScoredResult{*testutil.NewTestResult("gad7", 2.8, testutil.WithUser("u1"), testutil.WithCreatedAt(fixedNow))}
	p, err := svc.Aggregate(context.Background(), "u1", history, nil)
	require.NoError(t, err)
	assert.True(t, p.NarrativeDegraded)
	assert.NotEmpty(t, p.CombinedReport)
	assert.Equal(t, domain.PhaseTestsOnly, p.Phase)
}

func TestProfileAggregate_Deterministic(t *testing.T) {
	env := newTestEnv(t)
	svc := env.profileService(testutil.NewTestUoW(env.db), nil)
	history := []domain.ScoredResult{
		*testutil.NewTestResult("phq9", 1.5, testutil.WithUser("u1"), testutil.WithCreatedAt(fixedNow.AddDate(0, 0, -2))),
		*testutil.NewTestResult("gad7", 0.4, testutil.WithUser("u1"), testutil.WithCreatedAt(fixedNow.AddDate(0, 0, -1))),
	}
	moods := []domain.MoodEntry{*testutil.NewTestMood("u1", fixedNow, domain.MoodGood)}

	a, err := svc.Aggregate(context.Background(), "u1", history, moods)
	require.NoError(t, err)
	b, err := svc.Aggregate(context.Background(), "u1", history, moods)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestMoodLog_RefreshesProfile(t *testing.T) {
	env := newTestEnv(t)
	profiles := env.profileService(testutil.NewTestUoW(env.db), nil)
	svc := NewMoodService(env.moods, profiles, nil).(*moodService)
	svc.now = fixedClock
	ctx := context.Background()

	entry, err := svc.Log(ctx, contract.MoodLogRequest{UserID: "u1", Mood: "😊", Note: "sunny"})
	require.NoError(t, err)
	assert.Equal(t, domain.MoodGreat, entry.Mood)
	assert.Equal(t, "2025-03-30", entry.DayKey())

	p, err := env.profiles.GetByUser(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, 1, p.Stats.TotalMoodDays)
}
