package recommend

import "github.com/alexanderramin/psyche/internal/domain"

// Rule maps one profile state to the content it should surface. Categories
// are tried in order; within the first category that has items, an item
// matching the preferences wins over the first item.
type Rule struct {
	Categories       []string
	PreferType       string
	PreferDifficulty []string
	Reason           string
	Priority         int
}

// FallbackCategory is searched when no rule category has content.
const FallbackCategory = "general"

var rules = map[domain.ProfileState]Rule{
	domain.StateStressed: {
		Categories: []string{"stress", "anxiety"},
		PreferType: "meditation",
		Reason:     "Your recent results point to high stress, so a calming practice comes first.",
		Priority:   5,
	},
	domain.StateInactive: {
		Categories:       []string{"general"},
		PreferType:       "exercise",
		PreferDifficulty: []string{"easy"},
		Reason:           "A short, easy exercise is a good way to build a regular routine.",
		Priority:         4,
	},
	domain.StateNeedsSupport: {
		Categories: []string{"depression", "anxiety"},
		PreferType: "worksheet",
		Reason:     "Your test results suggest focused support could help right now.",
		Priority:   5,
	},
	domain.StateActive: {
		Categories:       []string{"general"},
		PreferDifficulty: []string{"medium", "hard"},
		Reason:           "You are making steady progress, so a more challenging practice fits.",
		Priority:         3,
	},
	domain.StateBalanced: {
		Categories: []string{"general"},
		PreferType: "meditation",
		Reason:     "A balanced practice to keep things going well.",
		Priority:   2,
	},
}

// RuleFor returns the rule for state. Unknown states use the balanced rule.
func RuleFor(state domain.ProfileState) Rule {
	if r, ok := rules[state]; ok {
		return r
	}
	return rules[domain.StateBalanced]
}

func (r Rule) prefers(item *domain.ContentItem) bool {
	if r.PreferType != "" && item.Type != r.PreferType {
		return false
	}
	if len(r.PreferDifficulty) == 0 {
		return r.PreferType != ""
	}
	for _, d := range r.PreferDifficulty {
		if item.Difficulty == d {
			return true
		}
	}
	return false
}

// DefaultPayload is returned when the catalog is empty or unreadable.
func DefaultPayload() domain.RecommendationResult {
	return domain.RecommendationResult{
		ContentID: "default-breathing-exercise",
		Title:     "Two-minute breathing exercise",
		Category:  "stress",
		Type:      "exercise",
		Reason:    "A short breathing exercise to help you relax and ease stress.",
		Priority:  3,
		Fallback:  true,
	}
}
