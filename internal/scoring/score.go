package scoring

import (
	"fmt"
	"math"

	"github.com/alexanderramin/psyche/internal/domain"
)

type accumulator struct {
	sum   float64
	count int
}

// Score computes per-dimension averages, the overall score and the
// classification for one answer set. It is pure: the returned result carries
// no ID or timestamp, and identical input yields an identical result.
//
// Answers are visited in the instrument's question order so that warnings
// are emitted deterministically. Answers for questions the instrument does
// not declare are ignored.
func Score(inst *domain.Instrument, answers domain.AnswerSet) domain.ScoredResult {
	result := domain.ScoredResult{
		InstrumentID: inst.ID,
		Dimensions:   map[string]float64{},
	}

	acc := make(map[string]*accumulator, len(inst.Dimensions))
	for _, d := range inst.Dimensions {
		acc[d.ID] = &accumulator{}
	}

	for _, q := range inst.Questions {
		v, ok := answers[q.ID]
		if !ok {
			continue
		}
		a, mapped := acc[q.Dimension]
		if q.Dimension == "" || !mapped {
			result.Warnings = append(result.Warnings, domain.ScoringWarning{
				Code:       domain.WarnUnmappedQuestion,
				QuestionID: q.ID,
				Message:    fmt.Sprintf("question %s has no scored dimension", q.ID),
			})
			continue
		}
		if math.IsNaN(v) || math.IsInf(v, 0) {
			result.Warnings = append(result.Warnings, domain.ScoringWarning{
				Code:       domain.WarnInvalidValue,
				QuestionID: q.ID,
				Dimension:  q.Dimension,
				Message:    fmt.Sprintf("question %s has a non-finite value", q.ID),
			})
			continue
		}
		if v < inst.Scale.Min || v > inst.Scale.Max {
			result.Warnings = append(result.Warnings, domain.ScoringWarning{
				Code:       domain.WarnOutOfRange,
				QuestionID: q.ID,
				Dimension:  q.Dimension,
				Message: fmt.Sprintf("question %s value %g outside %g..%g",
					q.ID, v, inst.Scale.Min, inst.Scale.Max),
			})
			continue
		}
		if q.Reverse {
			v = inst.Scale.Min + inst.Scale.Max - v
		}
		a.sum += v
		a.count++
		result.Answered++
	}

	// Dimensions are averaged in declared order; the overall score is the
	// mean of dimension averages, not of raw answers.
	var overallSum float64
	var computed int
	raw := make(map[string]float64, len(inst.Dimensions))
	for _, d := range inst.Dimensions {
		a := acc[d.ID]
		if a.count == 0 {
			continue
		}
		avg := a.sum / float64(a.count)
		raw[d.ID] = avg
		overallSum += avg
		computed++
	}

	if computed == 0 {
		result.Unscored = true
		result.Overall = 0
		return result
	}

	overall := overallSum / float64(computed)
	for id, avg := range raw {
		result.Dimensions[id] = Round2(avg)
	}
	result.Overall = Round2(overall)

	// Classification and rules read the unrounded scores.
	result.RecommendedTests, result.RecommendationMessages = EvaluateRules(inst.Recommendations, overall, raw)

	classifier, err := ClassifierFor(inst.Policy.Kind)
	if err != nil {
		return result
	}
	cls, warnings := classifier.Classify(inst, overall, raw)
	result.Classification = cls
	result.Warnings = append(result.Warnings, warnings...)
	return result
}

// Round2 rounds to two decimal places, half away from zero.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
