package aggregate

import "github.com/alexanderramin/psyche/internal/domain"

// MoreSevere returns whichever of two risk levels is more severe. Disagreeing
// signals are never averaged; the worse one wins.
func MoreSevere(a, b domain.RiskLevel) domain.RiskLevel {
	if b.Rank() > a.Rank() {
		return b
	}
	if a == "" {
		return domain.RiskUnknown
	}
	return a
}

// StateInput carries the signals state derivation depends on.
type StateInput struct {
	SeverityRisk     domain.RiskLevel
	DecliningSharply bool
	Trend            domain.Trend
	ActiveDays       int
}

// DeriveState picks the recommender state. Rules are checked in priority
// order: stressed, inactive, needs_support, active, balanced. Only severity
// drives needs_support; a mood dip alone is not a support signal.
func DeriveState(in StateInput, th Thresholds) domain.ProfileState {
	switch {
	case in.SeverityRisk == domain.RiskHigh || in.DecliningSharply:
		return domain.StateStressed
	case in.ActiveDays < th.InactiveBelow:
		return domain.StateInactive
	case in.SeverityRisk.Rank() >= domain.RiskMedium.Rank():
		return domain.StateNeedsSupport
	case in.ActiveDays >= th.ActiveAtLeast && in.Trend == domain.TrendImproving:
		return domain.StateActive
	default:
		return domain.StateBalanced
	}
}
