package service

import (
	"context"

	"github.com/alexanderramin/psyche/internal/contract"
	"github.com/alexanderramin/psyche/internal/domain"
)

// SubmissionService scores, interprets and stores one answer set, then
// refreshes the user's profile.
type SubmissionService interface {
	Submit(ctx context.Context, req contract.SubmitRequest) (*contract.SubmitResponse, error)
}

// ResultService reads stored results.
type ResultService interface {
	// List returns a user's results newest first. limit <= 0 means all.
	List(ctx context.Context, userID string, limit int) ([]*domain.ScoredResult, error)
	Get(ctx context.Context, id string) (*domain.ScoredResult, *domain.Interpretation, error)
}

// ProfileService owns the aggregated per-user profile.
type ProfileService interface {
	// Get returns the stored profile. Without one it returns an unsaved
	// profile built from stored history, a cold start when there is none.
	Get(ctx context.Context, userID string) (*domain.MentalHealthProfile, error)
	// Refresh rebuilds the profile from stored history and upserts it.
	Refresh(ctx context.Context, userID string) (*domain.MentalHealthProfile, error)
	// Aggregate builds a profile from the given history without storing it.
	Aggregate(ctx context.Context, userID string, history []domain.ScoredResult, moods []domain.MoodEntry) (*domain.MentalHealthProfile, error)
}

// RecommendationService picks catalog content for a user's profile.
type RecommendationService interface {
	Recommend(ctx context.Context, userID string) (domain.RecommendationResult, error)
}

// MoodService records daily moods.
type MoodService interface {
	Log(ctx context.Context, req contract.MoodLogRequest) (*domain.MoodEntry, error)
	// ListRecent returns entries from the last days calendar days, oldest
	// first. days <= 0 returns the full history.
	ListRecent(ctx context.Context, userID string, days int) ([]*domain.MoodEntry, error)
}

// ContentService manages the content catalog.
type ContentService interface {
	// Import upserts every item in one transaction.
	Import(ctx context.Context, items []domain.ContentItem) (int, error)
	// List returns the catalog, or one category of it when category is set.
	List(ctx context.Context, category string) ([]*domain.ContentItem, error)
}
