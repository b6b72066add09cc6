package service

import (
	"context"
	"time"

	"github.com/alexanderramin/psyche/internal/domain"
	"github.com/alexanderramin/psyche/internal/recommend"
)

type recommendationService struct {
	profiles    ProfileService
	recommender *recommend.Recommender
	observer    UseCaseObserver
}

// NewRecommendationService creates a new RecommendationService.
func NewRecommendationService(profiles ProfileService, recommender *recommend.Recommender, observers ...UseCaseObserver) RecommendationService {
	return &recommendationService{
		profiles:    profiles,
		recommender: recommender,
		observer:    useCaseObserverOrNoop(observers),
	}
}

// Recommend picks content for the state of the user's current profile. A
// user without a profile gets the cold-start state.
func (s *recommendationService) Recommend(ctx context.Context, userID string) (rec domain.RecommendationResult, err error) {
	startedAt := time.Now()
	fields := map[string]any{"user_id": userID}
	defer observe(ctx, s.observer, "recommend", startedAt, fields, &err)

	profile, err := s.profiles.Get(ctx, userID)
	if err != nil {
		return domain.RecommendationResult{}, err
	}
	rec = s.recommender.Recommend(ctx, profile.State)
	fields["state"] = rec.State
	fields["content_id"] = rec.ContentID
	fields["degraded"] = rec.Degraded
	return rec, nil
}
