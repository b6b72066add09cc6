package recommend

import (
	"context"
	"log/slog"

	"github.com/alexanderramin/psyche/internal/domain"
)

// CatalogReader is the content source the recommender reads from. Items are
// expected in catalog order.
type CatalogReader interface {
	ListByCategory(ctx context.Context, category string) ([]*domain.ContentItem, error)
}

type Recommender struct {
	catalog CatalogReader
	log     *slog.Logger
}

// New creates a Recommender over catalog.
func New(catalog CatalogReader, log *slog.Logger) *Recommender {
	if log == nil {
		log = slog.Default()
	}
	return &Recommender{catalog: catalog, log: log.With("component", "recommend")}
}

// Recommend resolves state against the catalog. It never returns an error:
// a catalog failure yields the default payload marked degraded.
func (r *Recommender) Recommend(ctx context.Context, state domain.ProfileState) domain.RecommendationResult {
	if !domain.ValidProfileStates[state] {
		state = domain.StateBalanced
	}
	rule := RuleFor(state)

	for _, category := range rule.Categories {
		items, err := r.catalog.ListByCategory(ctx, category)
		if err != nil {
			return r.degraded(state, err)
		}
		if item := pick(items, rule); item != nil {
			return result(item, rule.Reason, rule.Priority, state, false)
		}
	}

	items, err := r.catalog.ListByCategory(ctx, FallbackCategory)
	if err != nil {
		return r.degraded(state, err)
	}
	if len(items) > 0 {
		return result(items[0], "A gentle place to start while more specific content is added.", 1, state, true)
	}

	out := DefaultPayload()
	out.State = state
	return out
}

func (r *Recommender) degraded(state domain.ProfileState, err error) domain.RecommendationResult {
	r.log.Warn("catalog unavailable, using default recommendation", "state", state, "error", err)
	out := DefaultPayload()
	out.State = state
	out.Degraded = true
	return out
}

func pick(items []*domain.ContentItem, rule Rule) *domain.ContentItem {
	if len(items) == 0 {
		return nil
	}
	for _, item := range items {
		if rule.prefers(item) {
			return item
		}
	}
	return items[0]
}

func result(item *domain.ContentItem, reason string, priority int, state domain.ProfileState, fallback bool) domain.RecommendationResult {
	return domain.RecommendationResult{
		ContentID: item.ID,
		Title:     item.Title,
		Category:  item.Category,
		Type:      item.Type,
		Reason:    reason,
		Priority:  priority,
		State:     state,
		Fallback:  fallback,
	}
}
