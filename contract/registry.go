package contract

import (
	"errors"
	"fmt"
	"sort"
	"sync"
)

var (
	ErrSpecExists     = errors.New("formula already registered")
	ErrSpecBadInput   = errors.New("invalid formula spec")
	ErrRegistryFrozen = errors.New("registry is frozen")
)

// Registry is the table of formula specs. The formula packages fill it
// at package init and it is frozen before first use, so reads never
// contend; the RWMutex only arbitrates the init/freeze handshake.
type Registry struct {
	mu     sync.RWMutex
	specs  map[string]*FormulaSpec
	frozen bool
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{specs: make(map[string]*FormulaSpec)}
}

// Register validates and inserts a spec. Names are unique; a frozen
// registry refuses all inserts.
func (r *Registry) Register(s *FormulaSpec) error {
	if err := s.validate(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.frozen {
		return fmt.Errorf("%w: cannot register %q", ErrRegistryFrozen, s.Name)
	}
	if _, exists := r.specs[s.Name]; exists {
		return fmt.Errorf("%w: %q", ErrSpecExists, s.Name)
	}
	r.specs[s.Name] = s
	return nil
}

// MustRegister is Register that panics on error and hands the spec back,
// so formula packages can bind package-level spec vars in one line.
func (r *Registry) MustRegister(s *FormulaSpec) *FormulaSpec {
	if err := r.Register(s); err != nil {
		panic(err)
	}
	return s
}

// Lookup returns the spec registered under name, or nil.
func (r *Registry) Lookup(name string) *FormulaSpec {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.specs[name]
}

// Names returns all registered formula names, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]string, 0, len(r.specs))
	for name := range r.specs {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Len returns the number of registered specs.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.specs)
}

// Freeze closes the registry for registration. Idempotent.
func (r *Registry) Freeze() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.frozen = true
}

// Frozen reports whether the registry has been frozen.
func (r *Registry) Frozen() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.frozen
}

// Default is the process-wide registry the formula packages register
// into at package init.
var Default = NewRegistry()

// Register inserts a spec into the Default registry.
func Register(s *FormulaSpec) error { return Default.Register(s) }

// MustRegister inserts a spec into the Default registry, panicking on
// error.
func MustRegister(s *FormulaSpec) *FormulaSpec { return Default.MustRegister(s) }

// Lookup returns the Default-registry spec under name, or nil.
func Lookup(name string) *FormulaSpec { return Default.Lookup(name) }
