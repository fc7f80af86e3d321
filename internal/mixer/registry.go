package mixer

import (
	"fmt"
	"sort"
	"sync"
)

// DefaultName is the registry key of the default mixer.
const DefaultName = "xorshift"

// Registry maps mixer names to implementations. It is safe for concurrent use.
type Registry struct {
	mu     sync.RWMutex
	mixers map[string]Mixer
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{mixers: make(map[string]Mixer)}
}

// NewDefaultRegistry returns a registry holding every built-in mixer.
func NewDefaultRegistry() *Registry {
	r := NewRegistry()
	r.MustRegister(DefaultName, Xorshift{})
	r.MustRegister("xorshift-star", XorshiftStar{})
	r.MustRegister("rotate", Rotate{})
	r.MustRegister("splitmix", SplitMix{})
	return r
}

// Register adds m under name. Names must be unique and m must not be nil.
func (r *Registry) Register(name string, m Mixer) error {
	if name == "" {
		return fmt.Errorf("mixer name must not be empty")
	}
	if m == nil {
		return fmt.Errorf("mixer %q is nil", name)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.mixers[name]; exists {
		return fmt.Errorf("mixer %q already registered", name)
	}
	r.mixers[name] = m
	return nil
}

// MustRegister is like Register but panics on error.
func (r *Registry) MustRegister(name string, m Mixer) {
	if err := r.Register(name, m); err != nil {
		panic(err)
	}
}

// Get returns the mixer registered under name.
func (r *Registry) Get(name string) (Mixer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	m, ok := r.mixers[name]
	if !ok {
		return nil, fmt.Errorf("unknown mixer %q", name)
	}
	return m, nil
}

// MustGet is like Get but panics when name is unknown.
func (r *Registry) MustGet(name string) Mixer {
	m, err := r.Get(name)
	if err != nil {
		panic(err)
	}
	return m
}

// List returns the registered names in sorted order.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.mixers))
	for name := range r.mixers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
