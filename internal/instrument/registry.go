package instrument

import (
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/alexanderramin/psyche/internal/domain"
)

// ErrUnknownInstrument is returned when an instrument id is not registered.
var ErrUnknownInstrument = errors.New("unknown instrument")

// Registry is the read-only set of instruments available to the core.
// Definitions are registered at startup and never mutated afterwards.
type Registry struct {
	mu    sync.RWMutex
	byID  map[string]*domain.Instrument
	order []string
}

func NewRegistry() *Registry {
	return &Registry{byID: map[string]*domain.Instrument{}}
}

// Load builds a registry from the built-in definitions plus any definitions
// found in dir. A definition in dir replaces a built-in with the same id.
// An empty dir, or one that does not exist, loads built-ins only.
func Load(dir string) (*Registry, error) {
	r := NewRegistry()
	builtins, err := Builtins()
	if err != nil {
		return nil, fmt.Errorf("loading built-in instruments: %w", err)
	}
	for _, inst := range builtins {
		r.Register(inst)
	}

	if dir == "" {
		return r, nil
	}
	if _, err := os.Stat(dir); errors.Is(err, os.ErrNotExist) {
		return r, nil
	}
	custom, err := LoadFS(os.DirFS(dir), ".")
	if err != nil {
		return nil, err
	}
	for _, inst := range custom {
		r.Register(inst)
	}
	return r, nil
}

// Register adds or replaces an instrument. Listing order is first
// registration order.
func (r *Registry) Register(inst *domain.Instrument) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.byID[inst.ID]; !exists {
		r.order = append(r.order, inst.ID)
	}
	r.byID[inst.ID] = inst
}

func (r *Registry) Get(id string) (*domain.Instrument, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	inst, ok := r.byID[id]
	return inst, ok
}

// Require is Get with an ErrUnknownInstrument error.
func (r *Registry) Require(id string) (*domain.Instrument, error) {
	inst, ok := r.Get(id)
	if !ok {
		return nil, fmt.Errorf("instrument %q: %w", id, ErrUnknownInstrument)
	}
	return inst, nil
}

func (r *Registry) List() []*domain.Instrument {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*domain.Instrument, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.byID[id])
	}
	return out
}
