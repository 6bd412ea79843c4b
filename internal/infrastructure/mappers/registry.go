// Package mappers wires the per-domain mappers into a registry.
package mappers

import (
	"sort"
	"sync"

	"github.com/felixgeelhaar/firesalamander/internal/application/ports"
	"github.com/felixgeelhaar/firesalamander/internal/domain/seo"
)

// Registry manages the available mappers.
// It implements ports.MapperRegistry.
type Registry struct {
	mu      sync.RWMutex
	mappers map[seo.Domain]ports.Mapper
}

// NewRegistry creates an empty mapper registry.
func NewRegistry() *Registry {
	return &Registry{
		mappers: make(map[seo.Domain]ports.Mapper),
	}
}

// Register adds a mapper, replacing any mapper of the same domain.
func (r *Registry) Register(m ports.Mapper) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.mappers[m.Domain()] = m
}

// Get returns the mapper of a domain.
func (r *Registry) Get(domain seo.Domain) (ports.Mapper, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	m, ok := r.mappers[domain]
	return m, ok
}

// All returns the registered mappers, known domains first in display
// order and any others sorted by name.
func (r *Registry) All() []ports.Mapper {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]ports.Mapper, 0, len(r.mappers))
	for _, d := range r.domainsLocked() {
		result = append(result, r.mappers[d])
	}
	return result
}

// Domains returns the registered domains in the order of All.
func (r *Registry) Domains() []seo.Domain {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.domainsLocked()
}

func (r *Registry) domainsLocked() []seo.Domain {
	domains := make([]seo.Domain, 0, len(r.mappers))
	for _, d := range seo.AllDomains() {
		if _, ok := r.mappers[d]; ok {
			domains = append(domains, d)
		}
	}

	var extra []seo.Domain
	for d := range r.mappers {
		if !d.IsValid() {
			extra = append(extra, d)
		}
	}
	sort.Slice(extra, func(i, j int) bool { return extra[i] < extra[j] })
	return append(domains, extra...)
}

// Count returns the number of registered mappers.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.mappers)
}

// Unregister removes the mapper of a domain.
func (r *Registry) Unregister(domain seo.Domain) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.mappers[domain]; exists {
		delete(r.mappers, domain)
		return true
	}
	return false
}

// Ensure Registry implements ports.MapperRegistry
var _ ports.MapperRegistry = (*Registry)(nil)
