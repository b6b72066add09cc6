package scoring

import (
	"fmt"
	"sort"
	"strings"

	"github.com/alexanderramin/psyche/internal/domain"
)

// Classifier turns scored dimensions into a classification label.
type Classifier interface {
	Classify(inst *domain.Instrument, overall float64, dims map[string]float64) (domain.Classification, []domain.ScoringWarning)
}

var classifiers = map[domain.PolicyKind]Classifier{
	domain.PolicySeverityTier: severityTierPolicy{},
	domain.PolicyTypeCode:     typeCodePolicy{},
}

// ClassifierFor returns the classifier registered for a policy kind.
func ClassifierFor(kind domain.PolicyKind) (Classifier, error) {
	c, ok := classifiers[kind]
	if !ok {
		return nil, fmt.Errorf("unknown classification policy %q", kind)
	}
	return c, nil
}

type severityTierPolicy struct{}

func (severityTierPolicy) Classify(inst *domain.Instrument, overall float64, dims map[string]float64) (domain.Classification, []domain.ScoringWarning) {
	var warnings []domain.ScoringWarning
	score := overall
	if dim := inst.Policy.SummaryDimension; dim != "" {
		if v, ok := dims[dim]; ok {
			score = v
		} else {
			warnings = append(warnings, domain.ScoringWarning{
				Code:      domain.WarnEmptyDimension,
				Dimension: dim,
				Message:   fmt.Sprintf("summary dimension %s unscored, classifying on overall", dim),
			})
		}
	}

	idx := TierIndex(inst.Policy.Cutoffs, score)
	cls := domain.Classification{
		Kind:      domain.PolicySeverityTier,
		TierIndex: idx,
	}
	if idx < len(inst.Policy.Tiers) {
		cls.TierID = inst.Policy.Tiers[idx].ID
		cls.TierLabel = inst.Policy.Tiers[idx].Label
	} else {
		cls.TierID = fmt.Sprintf("tier_%d", idx)
	}
	return cls, warnings
}

// TierIndex returns the number of ascending cutoffs that are <= score. A
// score equal to a cutoff belongs to the tier that cutoff opens, so the index
// never decreases as the score grows.
func TierIndex(cutoffs []float64, score float64) int {
	return sort.Search(len(cutoffs), func(i int) bool { return cutoffs[i] > score })
}

type typeCodePolicy struct{}

// Classify builds the type code from dichotomy dimensions in declared order.
// An average exactly at the midpoint resolves to the high letter.
func (typeCodePolicy) Classify(inst *domain.Instrument, _ float64, dims map[string]float64) (domain.Classification, []domain.ScoringWarning) {
	var warnings []domain.ScoringWarning
	var code strings.Builder
	for _, d := range inst.Dimensions {
		if d.Letters == nil {
			continue
		}
		avg, ok := dims[d.ID]
		if !ok {
			code.WriteString("X")
			warnings = append(warnings, domain.ScoringWarning{
				Code:      domain.WarnEmptyDimension,
				Dimension: d.ID,
				Message:   fmt.Sprintf("dimension %s unscored, letter unresolved", d.ID),
			})
			continue
		}
		if avg >= inst.Policy.Midpoint {
			code.WriteString(d.Letters.High)
		} else {
			code.WriteString(d.Letters.Low)
		}
	}
	return domain.Classification{
		Kind: domain.PolicyTypeCode,
		Code: code.String(),
	}, warnings
}
