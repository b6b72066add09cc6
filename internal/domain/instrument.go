package domain

// Instrument is a questionnaire definition. Instances are loaded once and
// treated as read-only afterwards.
type Instrument struct {
	ID          string      `yaml:"id" validate:"required"`
	Title       string      `yaml:"title" validate:"required"`
	Description string      `yaml:"description"`
	Domain      string      `yaml:"domain" validate:"required"`
	Scale       Scale       `yaml:"scale"`
	Polarity    Polarity    `yaml:"polarity" validate:"omitempty,oneof=higher_is_worse higher_is_better"`
	Dimensions  []Dimension `yaml:"dimensions" validate:"required,min=1,dive"`
	Questions   []Question  `yaml:"questions" validate:"required,min=1,dive"`
	Policy      Policy      `yaml:"policy"`
	Templates   Templates   `yaml:"templates"`
	// Recommendations suggest further instruments from this one's scores.
	Recommendations []RecommendationRule `yaml:"recommendations" validate:"dive"`
}

// Scale is the inclusive response-value domain shared by all questions.
type Scale struct {
	Min float64 `yaml:"min"`
	Max float64 `yaml:"max" validate:"gtfield=Min"`
}

// Dimension is one independently scored facet. Letters makes it a
// dichotomy for type_code instruments.
type Dimension struct {
	ID      string      `yaml:"id" validate:"required"`
	Label   string      `yaml:"label"`
	Letters *LetterPair `yaml:"letters,omitempty"`
}

// LetterPair holds the two poles of a dichotomy dimension.
type LetterPair struct {
	High string `yaml:"high" validate:"required"`
	Low  string `yaml:"low" validate:"required"`
}

// Question maps one item to a dimension. An empty Dimension marks the item
// as unmapped.
type Question struct {
	ID        string `yaml:"id" validate:"required"`
	Text      string `yaml:"text" validate:"required"`
	Dimension string `yaml:"dimension"`
	Reverse   bool   `yaml:"reverse"`
}

// Policy is the classification variant selected by Kind.
type Policy struct {
	Kind             PolicyKind `yaml:"kind" validate:"required,oneof=severity_tier type_code"`
	Cutoffs          []float64  `yaml:"cutoffs"`
	Tiers            []Tier     `yaml:"tiers" validate:"dive"`
	SummaryDimension string     `yaml:"summary_dimension"`
	Midpoint         float64    `yaml:"midpoint"`
}

// Tier is one severity band. FollowUps name instruments worth taking next
// when a result lands here.
type Tier struct {
	ID        string   `yaml:"id" validate:"required"`
	Label     string   `yaml:"label"`
	FollowUps []string `yaml:"follow_ups"`
}

// RuleTarget selects the score a rule condition reads.
type RuleTarget string

const (
	TargetTotal    RuleTarget = "total"
	TargetSubscale RuleTarget = "subscale"
)

// Comparator is the relation a condition checks against its value.
type Comparator string

const (
	CompareLT  Comparator = "lt"
	CompareLTE Comparator = "lte"
	CompareGT  Comparator = "gt"
	CompareGTE Comparator = "gte"
)

// Holds reports whether score stands in relation c to value.
func (c Comparator) Holds(score, value float64) bool {
	switch c {
	case CompareLT:
		return score < value
	case CompareLTE:
		return score <= value
	case CompareGT:
		return score > value
	case CompareGTE:
		return score >= value
	}
	return false
}

// RecommendationRule fires when every condition holds. It suggests Tests
// and adds Message to the result.
type RecommendationRule struct {
	Conditions []RuleCondition `yaml:"conditions" validate:"required,min=1,dive"`
	Tests      []string        `yaml:"tests" validate:"required,min=1,dive,required"`
	Message    string          `yaml:"message"`
}

// RuleCondition compares the overall score, or one subscale, with Value.
// A subscale that received no answers fails the condition.
type RuleCondition struct {
	Target     RuleTarget `yaml:"target" validate:"required,oneof=total subscale"`
	Subscale   string     `yaml:"subscale" validate:"required_if=Target subscale"`
	Comparator Comparator `yaml:"comparator" validate:"required,oneof=lt lte gt gte"`
	Value      float64    `yaml:"value"`
}

// Templates holds the interpretation text for overall levels and subscales.
type Templates struct {
	Level     *LevelTemplates           `yaml:"level,omitempty"`
	Subscales map[string]LevelTemplates `yaml:"subscales,omitempty"`
}

// Boundaries is the three-way split: low <= Low, medium <= High, else high.
type Boundaries struct {
	Low  float64 `yaml:"low"`
	High float64 `yaml:"high" validate:"gtefield=Low"`
}

// LevelTemplates maps the three buckets of a score to chunk templates.
type LevelTemplates struct {
	Boundaries Boundaries     `yaml:"boundaries"`
	Low        *ChunkTemplate `yaml:"low,omitempty"`
	Medium     *ChunkTemplate `yaml:"medium,omitempty"`
	High       *ChunkTemplate `yaml:"high,omitempty"`
}

// Bucket returns the bucket that score falls into.
func (t LevelTemplates) Bucket(score float64) Bucket {
	switch {
	case score <= t.Boundaries.Low:
		return BucketLow
	case score <= t.Boundaries.High:
		return BucketMedium
	default:
		return BucketHigh
	}
}

// For returns the template for a bucket, or nil if none is declared.
func (t LevelTemplates) For(b Bucket) *ChunkTemplate {
	switch b {
	case BucketLow:
		return t.Low
	case BucketMedium:
		return t.Medium
	case BucketHigh:
		return t.High
	}
	return nil
}

// ChunkTemplate is the static text of one interpretation chunk.
type ChunkTemplate struct {
	ID    string `yaml:"id" validate:"required"`
	Title string `yaml:"title" validate:"required"`
	Body  string `yaml:"body" validate:"required"`
}

// EffectivePolarity defaults an unset polarity to higher-is-worse.
func (i *Instrument) EffectivePolarity() Polarity {
	if i.Polarity == "" {
		return PolarityHigherIsWorse
	}
	return i.Polarity
}

// Normalize maps a score on the instrument's scale to [0,1] where 1 is the
// most severe end regardless of polarity.
func (i *Instrument) Normalize(score float64) float64 {
	span := i.Scale.Max - i.Scale.Min
	if span <= 0 {
		return 0
	}
	n := (score - i.Scale.Min) / span
	if n < 0 {
		n = 0
	}
	if n > 1 {
		n = 1
	}
	if i.EffectivePolarity() == PolarityHigherIsBetter {
		return 1 - n
	}
	return n
}

// Dimension returns the dimension with the given id.
func (i *Instrument) Dimension(id string) (Dimension, bool) {
	for _, d := range i.Dimensions {
		if d.ID == id {
			return d, true
		}
	}
	return Dimension{}, false
}

// Tier returns the tier with the given id.
func (i *Instrument) Tier(id string) (Tier, bool) {
	for _, t := range i.Policy.Tiers {
		if t.ID == id {
			return t, true
		}
	}
	return Tier{}, false
}

// HasSeverity reports whether results of this instrument carry a severity
// signal usable for risk derivation.
func (i *Instrument) HasSeverity() bool {
	return i.Policy.Kind == PolicySeverityTier
}
