package instrument

import (
	"errors"
	"fmt"
	"sort"

	"github.com/alexanderramin/psyche/internal/domain"
	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks an instrument definition and returns every problem found.
// Struct tags cover per-field rules; the cross-field rules below cover
// references between questions, dimensions, policy and templates.
func Validate(inst *domain.Instrument) []error {
	var errs []error

	if err := validate.Struct(inst); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			for _, fe := range verrs {
				errs = append(errs, fmt.Errorf("%s: failed %q", fe.Namespace(), fe.Tag()))
			}
		} else {
			errs = append(errs, err)
		}
	}

	dims := map[string]bool{}
	for _, d := range inst.Dimensions {
		if dims[d.ID] {
			errs = append(errs, fmt.Errorf("dimension %q declared twice", d.ID))
		}
		dims[d.ID] = true
	}

	questions := map[string]bool{}
	for _, q := range inst.Questions {
		if questions[q.ID] {
			errs = append(errs, fmt.Errorf("question %q declared twice", q.ID))
		}
		questions[q.ID] = true
		if q.Dimension != "" && !dims[q.Dimension] {
			errs = append(errs, fmt.Errorf("question %q references unknown dimension %q", q.ID, q.Dimension))
		}
	}

	errs = append(errs, validatePolicy(inst, dims)...)
	errs = append(errs, validateTemplates(inst, dims)...)
	errs = append(errs, validateRecommendations(inst, dims)...)
	return errs
}

func validatePolicy(inst *domain.Instrument, dims map[string]bool) []error {
	var errs []error
	p := inst.Policy

	switch p.Kind {
	case domain.PolicySeverityTier:
		if !sort.Float64sAreSorted(p.Cutoffs) {
			errs = append(errs, fmt.Errorf("policy.cutoffs must be ascending"))
		}
		for i := 1; i < len(p.Cutoffs); i++ {
			if p.Cutoffs[i] == p.Cutoffs[i-1] {
				errs = append(errs, fmt.Errorf("policy.cutoffs contains duplicate %g", p.Cutoffs[i]))
			}
		}
		if len(p.Tiers) != len(p.Cutoffs)+1 {
			errs = append(errs, fmt.Errorf("policy.tiers: need %d tiers for %d cutoffs, got %d",
				len(p.Cutoffs)+1, len(p.Cutoffs), len(p.Tiers)))
		}
		if p.SummaryDimension != "" && !dims[p.SummaryDimension] {
			errs = append(errs, fmt.Errorf("policy.summary_dimension references unknown dimension %q", p.SummaryDimension))
		}
	case domain.PolicyTypeCode:
		if p.Midpoint < inst.Scale.Min || p.Midpoint > inst.Scale.Max {
			errs = append(errs, fmt.Errorf("policy.midpoint %g outside scale %g..%g", p.Midpoint, inst.Scale.Min, inst.Scale.Max))
		}
		lettered := 0
		for _, d := range inst.Dimensions {
			if d.Letters != nil {
				lettered++
			}
		}
		if lettered == 0 {
			errs = append(errs, fmt.Errorf("type_code policy needs at least one dimension with letters"))
		}
	}

	for _, tier := range p.Tiers {
		for _, id := range tier.FollowUps {
			if id == inst.ID {
				errs = append(errs, fmt.Errorf("tier %q lists its own instrument as a follow-up", tier.ID))
			}
		}
	}
	return errs
}

func validateTemplates(inst *domain.Instrument, dims map[string]bool) []error {
	var errs []error
	if lvl := inst.Templates.Level; lvl != nil && lvl.Boundaries.Low > lvl.Boundaries.High {
		errs = append(errs, fmt.Errorf("templates.level: low boundary above high"))
	}

	// Sorted for a stable error order.
	keys := make([]string, 0, len(inst.Templates.Subscales))
	for k := range inst.Templates.Subscales {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		t := inst.Templates.Subscales[k]
		if !dims[k] {
			errs = append(errs, fmt.Errorf("templates.subscales references unknown dimension %q", k))
		}
		if t.Boundaries.Low > t.Boundaries.High {
			errs = append(errs, fmt.Errorf("templates.subscales.%s: low boundary above high", k))
		}
		for _, c := range []*domain.ChunkTemplate{t.Low, t.Medium, t.High} {
			if c != nil && (c.ID == "" || c.Title == "" || c.Body == "") {
				errs = append(errs, fmt.Errorf("templates.subscales.%s: chunk needs id, title and body", k))
			}
		}
	}
	return errs
}

func validateRecommendations(inst *domain.Instrument, dims map[string]bool) []error {
	var errs []error
	for i, rule := range inst.Recommendations {
		for _, c := range rule.Conditions {
			if c.Target == domain.TargetSubscale && c.Subscale != "" && !dims[c.Subscale] {
				errs = append(errs, fmt.Errorf("recommendations[%d] references unknown dimension %q", i, c.Subscale))
			}
		}
		for _, id := range rule.Tests {
			if id == inst.ID {
				errs = append(errs, fmt.Errorf("recommendations[%d] lists its own instrument as a test", i))
			}
		}
	}
	return errs
}
