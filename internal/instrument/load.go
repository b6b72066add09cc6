package instrument

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/alexanderramin/psyche/internal/domain"
	"gopkg.in/yaml.v3"
)

//go:embed builtin/*.yaml
var builtinFS embed.FS

// Parse decodes one instrument definition. Unknown keys are rejected so typos
// in definition files surface at load time.
func Parse(data []byte) (*domain.Instrument, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	var inst domain.Instrument
	if err := dec.Decode(&inst); err != nil {
		return nil, fmt.Errorf("parsing instrument: %w", err)
	}
	return &inst, nil
}

// LoadFile reads, parses and validates a single definition file.
func LoadFile(path string) (*domain.Instrument, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return parseAndValidate(path, data)
}

// LoadFS loads every *.yaml / *.yml file directly under root in fsys, in
// lexical order.
func LoadFS(fsys fs.FS, root string) ([]*domain.Instrument, error) {
	entries, err := fs.ReadDir(fsys, root)
	if err != nil {
		return nil, fmt.Errorf("reading instrument dir %s: %w", root, err)
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(e.Name()))
		if ext == ".yaml" || ext == ".yml" {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	out := make([]*domain.Instrument, 0, len(names))
	for _, name := range names {
		p := path.Join(root, name)
		data, err := fs.ReadFile(fsys, p)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", p, err)
		}
		inst, err := parseAndValidate(p, data)
		if err != nil {
			return nil, err
		}
		out = append(out, inst)
	}
	return out, nil
}

// Builtins returns the instruments shipped with the binary.
func Builtins() ([]*domain.Instrument, error) {
	return LoadFS(builtinFS, "builtin")
}

func parseAndValidate(name string, data []byte) (*domain.Instrument, error) {
	inst, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	if errs := Validate(inst); len(errs) > 0 {
		return nil, fmt.Errorf("%s: %w", name, errors.Join(errs...))
	}
	return inst, nil
}
