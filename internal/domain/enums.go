package domain

type Polarity string

const (
	PolarityHigherIsWorse  Polarity = "higher_is_worse"
	PolarityHigherIsBetter Polarity = "higher_is_better"
)

type PolicyKind string

const (
	PolicySeverityTier PolicyKind = "severity_tier"
	PolicyTypeCode     PolicyKind = "type_code"
)

// Bucket is the three-way split used by interpretation templates.
type Bucket string

const (
	BucketLow    Bucket = "low"
	BucketMedium Bucket = "medium"
	BucketHigh   Bucket = "high"
)

type RiskLevel string

const (
	RiskUnknown RiskLevel = "unknown"
	RiskLow     RiskLevel = "low"
	RiskMedium  RiskLevel = "medium"
	RiskHigh    RiskLevel = "high"
)

// Rank orders risk levels from least to most severe. Unknown ranks lowest so
// that any concrete signal takes precedence over it.
func (r RiskLevel) Rank() int {
	switch r {
	case RiskLow:
		return 1
	case RiskMedium:
		return 2
	case RiskHigh:
		return 3
	default:
		return 0
	}
}

type Trend string

const (
	TrendUnknown   Trend = "unknown"
	TrendImproving Trend = "improving"
	TrendStable    Trend = "stable"
	TrendDeclining Trend = "declining"
)

type ProfileState string

const (
	StateStressed     ProfileState = "stressed"
	StateInactive     ProfileState = "inactive"
	StateNeedsSupport ProfileState = "needs_support"
	StateActive       ProfileState = "active"
	StateBalanced     ProfileState = "balanced"
)

// ValidProfileStates is the canonical set of recommender input states.
var ValidProfileStates = map[ProfileState]bool{
	StateStressed: true, StateInactive: true, StateNeedsSupport: true,
	StateActive: true, StateBalanced: true,
}

// AggregationPhase describes how much data a profile was built from.
type AggregationPhase string

const (
	PhaseColdStart AggregationPhase = "cold_start"
	PhaseTestsOnly AggregationPhase = "tests_only"
	PhaseSteady    AggregationPhase = "steady"
)

type NarrativeSource string

const (
	NarrativeDeterministic NarrativeSource = "deterministic"
	NarrativeLLM           NarrativeSource = "llm"
)
