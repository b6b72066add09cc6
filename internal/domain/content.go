package domain

import "time"

// ContentItem is a catalog entry the recommender can suggest.
type ContentItem struct {
	ID         string    `yaml:"id" json:"id" validate:"required"`
	Title      string    `yaml:"title" json:"title" validate:"required"`
	Category   string    `yaml:"category" json:"category" validate:"required"`
	Type       string    `yaml:"type" json:"type" validate:"omitempty,oneof=exercise meditation worksheet article audio"`
	Difficulty string    `yaml:"difficulty" json:"difficulty" validate:"omitempty,oneof=easy medium hard"`
	CreatedAt  time.Time `yaml:"-" json:"created_at"`
}

// RecommendationResult is one content pick with the reason it was chosen.
type RecommendationResult struct {
	ContentID string       `json:"content_id"`
	Title     string       `json:"title"`
	Category  string       `json:"category"`
	Type      string       `json:"type,omitempty"`
	Reason    string       `json:"reason"`
	Priority  int          `json:"priority"`
	State     ProfileState `json:"state"`
	Fallback  bool         `json:"fallback"`
	Degraded  bool         `json:"degraded"`
}
