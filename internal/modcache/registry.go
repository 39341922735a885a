package modcache

import (
	"sync"

	"github.com/pkl-community/pklcore/internal/class"
)

// registry is the cross-module namespace of realized classes and
// typealiases, keyed by qualified name ("moduleName#SimpleName"). It backs
// ModuleCache's internal/class.Resolver implementation.
type registry struct {
	mu          sync.RWMutex
	classes     map[string]*class.Class
	typeAliases map[string]*class.TypeAlias
}

func newRegistry() *registry {
	return &registry{
		classes:     make(map[string]*class.Class),
		typeAliases: make(map[string]*class.TypeAlias),
	}
}

func (r *registry) RegisterClass(c *class.Class) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.classes[c.QualifiedName()] = c
}

func (r *registry) RegisterTypeAlias(a *class.TypeAlias) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.typeAliases[a.QualifiedName()] = a
}

// ResolveClass implements internal/class.Resolver.
func (r *registry) ResolveClass(qualifiedName string) (*class.Class, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.classes[qualifiedName]
	return c, ok
}

// ResolveTypeAlias implements internal/class.Resolver.
func (r *registry) ResolveTypeAlias(qualifiedName string) (*class.TypeAlias, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	a, ok := r.typeAliases[qualifiedName]
	return a, ok
}
