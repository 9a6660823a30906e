package simulation

import "sync"

// FirstLayerNumber is the number given to the first registered name.
const FirstLayerNumber = 1000

// Registry assigns layer numbers to layer names. A name keeps its number
// for the lifetime of the registry.
type Registry struct {
	mu      sync.Mutex
	numbers map[string]int
	next    int
}

// NewRegistry ...
func NewRegistry() *Registry {
	return &Registry{numbers: map[string]int{}, next: FirstLayerNumber}
}

// GetOrCreate returns number of name, registering it on first use.
func (r *Registry) GetOrCreate(name string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	if n, ok := r.numbers[name]; ok {
		return n
	}
	n := r.next
	r.numbers[name] = n
	r.next++
	return n
}

// Lookup returns number of a registered name.
func (r *Registry) Lookup(name string) (int, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	n, ok := r.numbers[name]
	return n, ok
}
