// Package catalog reads content catalog files.
package catalog

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"os"

	"github.com/alexanderramin/psyche/internal/domain"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

//go:embed starter.yaml
var starter []byte

var validate = validator.New(validator.WithRequiredStructEnabled())

type file struct {
	Items []domain.ContentItem `yaml:"items"`
}

// Parse decodes and validates a catalog document. Every problem is reported,
// not just the first.
func Parse(data []byte) ([]domain.ContentItem, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	var f file
	if err := dec.Decode(&f); err != nil {
		return nil, fmt.Errorf("parsing catalog: %w", err)
	}
	if len(f.Items) == 0 {
		return nil, errors.New("catalog has no items")
	}

	var errs []error
	seen := map[string]bool{}
	for i := range f.Items {
		it := &f.Items[i]
		if err := validate.Struct(it); err != nil {
			var verrs validator.ValidationErrors
			if errors.As(err, &verrs) {
				for _, fe := range verrs {
					errs = append(errs, fmt.Errorf("items[%d].%s: failed %q", i, fe.Field(), fe.Tag()))
				}
			} else {
				errs = append(errs, err)
			}
		}
		if it.ID != "" && seen[it.ID] {
			errs = append(errs, fmt.Errorf("items[%d]: duplicate id %q", i, it.ID))
		}
		seen[it.ID] = true
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return f.Items, nil
}

func LoadFile(path string) ([]domain.ContentItem, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	items, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return items, nil
}

// Starter returns the catalog shipped with the binary.
func Starter() ([]domain.ContentItem, error) {
	return Parse(starter)
}
