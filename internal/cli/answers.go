package cli

import (
	"bytes"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/alexanderramin/psyche/internal/domain"
	"gopkg.in/yaml.v3"
)

// answerFlag collects repeated --answer q=v values. One flag may also carry
// several pairs separated by commas.
type answerFlag struct {
	answers domain.AnswerSet
}

func (a *answerFlag) String() string {
	if len(a.answers) == 0 {
		return ""
	}
	keys := make([]string, 0, len(a.answers))
	for k := range a.answers {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = k + "=" + strconv.FormatFloat(a.answers[k], 'f', -1, 64)
	}
	return strings.Join(parts, ",")
}

func (a *answerFlag) Set(s string) error {
	if a.answers == nil {
		a.answers = domain.AnswerSet{}
	}
	for _, pair := range strings.Split(s, ",") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		id, raw, ok := strings.Cut(pair, "=")
		id = strings.TrimSpace(id)
		if !ok || id == "" {
			return fmt.Errorf("answer %q must look like question=value", pair)
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
		if err != nil {
			return fmt.Errorf("answer %q: value is not a number", pair)
		}
		a.answers[id] = v
	}
	return nil
}

func (a *answerFlag) Type() string { return "question=value" }

// readAnswersFile loads a flat question→value map. JSON files are valid
// YAML, so one decoder reads both.
func readAnswersFile(path string) (domain.AnswerSet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	var answers domain.AnswerSet
	if err := dec.Decode(&answers); err != nil {
		return nil, fmt.Errorf("parsing answers file %s: %w", path, err)
	}
	return answers, nil
}

// mergeAnswers overlays flag answers on file answers.
func mergeAnswers(file, flags domain.AnswerSet) domain.AnswerSet {
	out := domain.AnswerSet{}
	for k, v := range file {
		out[k] = v
	}
	for k, v := range flags {
		out[k] = v
	}
	return out
}
