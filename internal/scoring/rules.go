package scoring

import "github.com/alexanderramin/psyche/internal/domain"

// EvaluateRules returns the tests and messages of every rule whose conditions
// all hold. Tests are deduplicated keeping the first occurrence. A condition
// on a subscale that was not scored never holds.
func EvaluateRules(rules []domain.RecommendationRule, overall float64, dims map[string]float64) ([]string, []string) {
	var tests, messages []string
	seen := map[string]bool{}
	for _, rule := range rules {
		if !ruleHolds(rule, overall, dims) {
			continue
		}
		for _, id := range rule.Tests {
			if seen[id] {
				continue
			}
			seen[id] = true
			tests = append(tests, id)
		}
		if rule.Message != "" {
			messages = append(messages, rule.Message)
		}
	}
	return tests, messages
}

func ruleHolds(rule domain.RecommendationRule, overall float64, dims map[string]float64) bool {
	if len(rule.Conditions) == 0 {
		return false
	}
	for _, c := range rule.Conditions {
		score := overall
		if c.Target == domain.TargetSubscale {
			v, ok := dims[c.Subscale]
			if !ok {
				return false
			}
			score = v
		}
		if !c.Comparator.Holds(score, c.Value) {
			return false
		}
	}
	return true
}
