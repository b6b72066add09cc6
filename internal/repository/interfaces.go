package repository

import (
	"context"
	"time"

	"github.com/alexanderramin/psyche/internal/domain"
)

// ResultRepo persists scored results.
type ResultRepo interface {
	Create(ctx context.Context, r *domain.ScoredResult) error
	GetByID(ctx context.Context, id string) (*domain.ScoredResult, error)
	// ListByUser returns results newest first. limit <= 0 means no limit.
	ListByUser(ctx context.Context, userID string, limit int) ([]*domain.ScoredResult, error)
}

// InterpretationRepo persists interpretations keyed by result id.
type InterpretationRepo interface {
	Create(ctx context.Context, in *domain.Interpretation) error
	GetByResult(ctx context.Context, resultID string) (*domain.Interpretation, error)
}

// MoodRepo persists mood entries.
type MoodRepo interface {
	Create(ctx context.Context, m *domain.MoodEntry) error
	// ListByUser returns entries on or after since, oldest first. A zero since
	// returns the full history.
	ListByUser(ctx context.Context, userID string, since time.Time) ([]*domain.MoodEntry, error)
}

// ProfileRepo is the only write path for profiles. Upsert is keyed by user id
// and keeps the stored id and created_at of an existing row.
type ProfileRepo interface {
	GetByUser(ctx context.Context, userID string) (*domain.MentalHealthProfile, error)
	Upsert(ctx context.Context, p *domain.MentalHealthProfile) error
}

// ContentRepo persists the content catalog. Upsert is keyed by item id.
type ContentRepo interface {
	Upsert(ctx context.Context, item *domain.ContentItem) error
	// ListByCategory returns items in catalog order (created_at, then id).
	ListByCategory(ctx context.Context, category string) ([]*domain.ContentItem, error)
	List(ctx context.Context) ([]*domain.ContentItem, error)
}
