package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/alexanderramin/psyche/internal/catalog"
	"github.com/alexanderramin/psyche/internal/domain"
	"github.com/alexanderramin/psyche/internal/recommend"
	"github.com/alexanderramin/psyche/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContentImport_StarterCatalogKeepsFileOrder(t *testing.T) {
	env := newTestEnv(t)
	svc := NewContentService(env.content, testutil.NewTestUoW(env.db))
	ctx := context.Background()

	items, err := catalog.Starter()
	require.NoError(t, err)
	n, err := svc.Import(ctx, items)
	require.NoError(t, err)
	assert.Equal(t, len(items), n)

	listed, err := svc.List(ctx, "")
	require.NoError(t, err)
	require.Len(t, listed, len(items))
	for i := range items {
		assert.Equal(t, items[i].ID, listed[i].ID)
	}

	stress, err := svc.List(ctx, "stress")
	require.NoError(t, err)
	for _, it := range stress {
		assert.Equal(t, "stress", it.Category)
	}
}

func TestContentImport_AllOrNothing(t *testing.T) {
	env := newTestEnv(t)
	failUoW := &testutil.FailOnNthExecUoW{
		DB:     env.db,
		FailOn: 3,
		Err:    fmt.Errorf("injected content failure"),
	}
	svc := NewContentService(env.content, failUoW)
	ctx := context.Background()

	items := []domain.ContentItem{
		*testutil.NewTestContent("a", "stress"),
		*testutil.NewTestContent("b", "stress"),
		*testutil.NewTestContent("c", "general"),
	}
	_, err := svc.Import(ctx, items)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "injected content failure")

	listed, err := env.content.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, listed)
}

func TestContentImport_ReimportUpdatesInPlace(t *testing.T) {
	env := newTestEnv(t)
	svc := NewContentService(env.content, testutil.NewTestUoW(env.db))
	ctx := context.Background()

	first := []domain.ContentItem{*testutil.NewTestContent("a", "stress"), *testutil.NewTestContent("b", "stress")}
	_, err := svc.Import(ctx, first)
	require.NoError(t, err)

	renamed := *testutil.NewTestContent("a", "stress")
	renamed.Title = "Renamed"
	_, err = svc.Import(ctx, []domain.ContentItem{renamed})
	require.NoError(t, err)

	listed, err := svc.List(ctx, "stress")
	require.NoError(t, err)
	require.Len(t, listed, 2)
	assert.Equal(t, "a", listed[0].ID)
	assert.Equal(t, "Renamed", listed[0].Title)
}

func TestRecommend_UsesProfileState(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	uow := testutil.NewTestUoW(env.db)

	items, err := catalog.Starter()
	require.NoError(t, err)
	_, err = NewContentService(env.content, uow).Import(ctx, items)
	require.NoError(t, err)

	profiles := env.profileService(uow, nil)
	svc := NewRecommendationService(profiles, recommend.New(env.content, nil))

	// No history at all: cold start reads as inactive.
	rec, err := svc.Recommend(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, domain.StateInactive, rec.State)
	assert.NotEmpty(t, rec.ContentID)
	assert.False(t, rec.Degraded)

	// A severe recent result makes the user stressed.
	require.NoError(t, env.results.Create(ctx, testutil.NewTestResult("gad7", 3.0,
		testutil.WithUser("u1"), testutil.WithCreatedAt(fixedNow))))
	_, err = profiles.Refresh(ctx, "u1")
	require.NoError(t, err)

	rec, err = svc.Recommend(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, domain.StateStressed, rec.State)
	assert.Contains(t, []string{"stress", "anxiety"}, rec.Category)
}

func TestRecommend_EmptyCatalogReturnsDefault(t *testing.T) {
	env := newTestEnv(t)
	svc := NewRecommendationService(env.profileService(testutil.NewTestUoW(env.db), nil), recommend.New(env.content, nil))

	rec, err := svc.Recommend(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, recommend.DefaultPayload().ContentID, rec.ContentID)
	assert.True(t, rec.Fallback)
}

func TestMoodService_ValidationAndWindow(t *testing.T) {
	env := newTestEnv(t)
	svc := NewMoodService(env.moods, nil, nil).(*moodService)
	svc.now = fixedClock
	ctx := context.Background()

	_, err := svc.Log(ctx, contractMood("u1", "meh"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "INVALID_MOOD")

	_, err = svc.Log(ctx, contractMood("", "good"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "INVALID_REQUEST")

	for i := 0; i < 10; i++ {
		day := fixedNow.AddDate(0, 0, -i)
		req := contractMood("u1", "good")
		req.Day = &day
		_, err := svc.Log(ctx, req)
		require.NoError(t, err)
	}

	week, err := svc.ListRecent(ctx, "u1", 7)
	require.NoError(t, err)
	require.Len(t, week, 7)
	assert.Equal(t, "2025-03-24", week[0].DayKey())
	assert.Equal(t, "2025-03-30", week[6].DayKey())

	all, err := svc.ListRecent(ctx, "u1", 0)
	require.NoError(t, err)
	assert.Len(t, all, 10)
}
