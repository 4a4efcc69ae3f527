package contract

import "sync"

// Registry keeps known contracts by their code hashes. It's used to decode
// states and events of contracts touched by simulations and calls.
type Registry struct {
	mtx    sync.RWMutex
	byHash map[string]*Contract
}

// DefaultRegistry is used by all package functions, generated bindings
// register their contracts in it.
var DefaultRegistry = NewRegistry()

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{byHash: make(map[string]*Contract)}
}

// Register adds the contract to the registry replacing any contract with
// the same code hash.
func (r *Registry) Register(c *Contract) {
	r.mtx.Lock()
	r.byHash[c.CodeHash()] = c
	r.mtx.Unlock()
}

// LookupByCodeHash returns the contract with the given code hash.
func (r *Registry) LookupByCodeHash(h string) (*Contract, bool) {
	r.mtx.RLock()
	defer r.mtx.RUnlock()
	c, ok := r.byHash[h]
	return c, ok
}

// Register adds the contract to DefaultRegistry.
func Register(c *Contract) {
	DefaultRegistry.Register(c)
}

// MustRegisterJSON creates a contract from the JSON artifact and registers
// it in DefaultRegistry. It panics on invalid artifacts, generated bindings
// use it in init().
func MustRegisterJSON(data []byte) *Contract {
	c, err := FromJSON(data)
	if err != nil {
		panic(err)
	}
	Register(c)
	return c
}
