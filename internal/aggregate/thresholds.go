package aggregate

import (
	"fmt"

	"github.com/alexanderramin/psyche/internal/domain"
)

// RiskCutoffs split a normalized severity in [0,1] into three risk levels:
// below Low is low, above High is high, anything in between is medium.
type RiskCutoffs struct {
	Low  float64 `mapstructure:"low" validate:"gte=0,lte=1"`
	High float64 `mapstructure:"high" validate:"gte=0,lte=1,gtefield=Low"`
}

// Level classifies a normalized severity.
func (c RiskCutoffs) Level(severity float64) domain.RiskLevel {
	switch {
	case severity < c.Low:
		return domain.RiskLow
	case severity > c.High:
		return domain.RiskHigh
	default:
		return domain.RiskMedium
	}
}

type Thresholds struct {
	SeverityWindow int                    `mapstructure:"severity_window" validate:"gte=1"`
	DefaultCutoffs RiskCutoffs            `mapstructure:"default_cutoffs"`
	DomainCutoffs  map[string]RiskCutoffs `mapstructure:"domain_cutoffs" validate:"dive"`
	MoodWindowDays int                    `mapstructure:"mood_window_days" validate:"gte=1"`
	MoodDeadband   float64                `mapstructure:"mood_deadband" validate:"gte=0"`
	MoodSharpDrop  float64                `mapstructure:"mood_sharp_drop" validate:"gtefield=MoodDeadband"`
	EngagementDays int                    `mapstructure:"engagement_days" validate:"gte=1"`
	InactiveBelow  int                    `mapstructure:"inactive_below" validate:"gte=0"`
	ActiveAtLeast  int                    `mapstructure:"active_at_least" validate:"gtefield=InactiveBelow"`
	StarterTestID  string                 `mapstructure:"starter_test_id"`
}

// DefaultThresholds returns the thresholds used when no configuration
// overrides them.
func DefaultThresholds() Thresholds {
	return Thresholds{
		SeverityWindow: 5,
		DefaultCutoffs: RiskCutoffs{Low: 0.33, High: 0.66},
		// Derived from published sum-score cutoffs over each scale's range.
		DomainCutoffs: map[string]RiskCutoffs{
			"anxiety":    {Low: 0.24, High: 0.71},
			"depression": {Low: 0.19, High: 0.55},
			"stress":     {Low: 0.34, High: 0.67},
		},
		MoodWindowDays: 7,
		MoodDeadband:   0.5,
		MoodSharpDrop:  1.5,
		EngagementDays: 30,
		InactiveBelow:  3,
		ActiveAtLeast:  10,
		StarterTestID:  "gad7",
	}
}

// CutoffsFor returns the cutoffs for an instrument domain.
func (t Thresholds) CutoffsFor(domainName string) RiskCutoffs {
	if c, ok := t.DomainCutoffs[domainName]; ok {
		return c
	}
	return t.DefaultCutoffs
}

// Validate checks cross-field constraints that struct tags cannot express.
func (t Thresholds) Validate() error {
	if t.DefaultCutoffs.Low > t.DefaultCutoffs.High {
		return fmt.Errorf("default cutoffs: low %.2f above high %.2f", t.DefaultCutoffs.Low, t.DefaultCutoffs.High)
	}
	for name, c := range t.DomainCutoffs {
		if c.Low > c.High {
			return fmt.Errorf("domain %s cutoffs: low %.2f above high %.2f", name, c.Low, c.High)
		}
	}
	if t.MoodSharpDrop < t.MoodDeadband {
		return fmt.Errorf("mood sharp drop %.2f below deadband %.2f", t.MoodSharpDrop, t.MoodDeadband)
	}
	return nil
}
