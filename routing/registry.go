package routing

import (
	"sort"

	"github.com/pkg/errors"
)

// ErrUnknownAlgorithm is returned when no algorithm is registered under the
// requested name.
var ErrUnknownAlgorithm = errors.New("unknown routing algorithm")

// ErrUnknownSelection is returned when no selection strategy is registered
// under the requested name.
var ErrUnknownSelection = errors.New("unknown selection strategy")

// Registry maps configuration names to routing algorithms and selection
// strategies.
type Registry struct {
	algorithms map[string]Algorithm
	selections map[string]SelectionStrategy
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		algorithms: make(map[string]Algorithm),
		selections: make(map[string]SelectionStrategy),
	}
}

// DefaultRegistry creates a registry with every algorithm and selection
// strategy of this package.
func DefaultRegistry() *Registry {
	r := NewRegistry()

	r.mustRegister("XY", XY{})
	r.mustRegister("PATH", Path{})
	r.mustRegister("RPATH", RPath{})
	r.mustRegister("LOADAWARE", LoadAware{})

	r.mustRegisterSelection("FIRST", FirstCandidate{})
	r.mustRegisterSelection("BUFFER_LEVEL", BufferLevel{})

	return r
}

// Register adds an algorithm under the given name.
func (r *Registry) Register(name string, a Algorithm) error {
	if _, found := r.algorithms[name]; found {
		return errors.Errorf("routing algorithm %q already registered", name)
	}

	r.algorithms[name] = a

	return nil
}

// Lookup returns the algorithm registered under the given name.
func (r *Registry) Lookup(name string) (Algorithm, error) {
	a, found := r.algorithms[name]
	if !found {
		return nil, errors.Wrap(ErrUnknownAlgorithm, name)
	}

	return a, nil
}

// RegisterSelection adds a selection strategy under the given name.
func (r *Registry) RegisterSelection(
	name string,
	s SelectionStrategy,
) error {
	if _, found := r.selections[name]; found {
		return errors.Errorf("selection strategy %q already registered", name)
	}

	r.selections[name] = s

	return nil
}

// LookupSelection returns the selection strategy registered under the given
// name.
func (r *Registry) LookupSelection(name string) (SelectionStrategy, error) {
	s, found := r.selections[name]
	if !found {
		return nil, errors.Wrap(ErrUnknownSelection, name)
	}

	return s, nil
}

// Names returns the sorted names of the registered algorithms.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.algorithms))
	for name := range r.algorithms {
		names = append(names, name)
	}

	sort.Strings(names)

	return names
}

// SelectionNames returns the sorted names of the registered selection
// strategies.
func (r *Registry) SelectionNames() []string {
	names := make([]string, 0, len(r.selections))
	for name := range r.selections {
		names = append(names, name)
	}

	sort.Strings(names)

	return names
}

func (r *Registry) mustRegister(name string, a Algorithm) {
	if err := r.Register(name, a); err != nil {
		panic(err)
	}
}

func (r *Registry) mustRegisterSelection(name string, s SelectionStrategy) {
	if err := r.RegisterSelection(name, s); err != nil {
		panic(err)
	}
}
