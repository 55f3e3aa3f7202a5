package migration

import (
	"strings"
	"sync"

	"github.com/patrickmn/go-cache"
)

// RemoteRef points at an entity that exists in the destination system
type RemoteRef struct {
	ID  int
	URL string
}

// Registry maps normalized legacy names to remote entity references. One
// registry exists per entity kind (categories, tags, authors); it is seeded
// from a full remote listing at the start of a run and grows as the resolver
// creates missing entities, so later records reuse them.
type Registry struct {
	mu      sync.Mutex
	entries *cache.Cache
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{entries: cache.New(cache.NoExpiration, 0)}
}

// Lookup returns the remote reference stored under name, if any
func (r *Registry) Lookup(name string) (RemoteRef, bool) {
	v, ok := r.entries.Get(normalizeName(name))
	if !ok {
		return RemoteRef{}, false
	}
	return v.(RemoteRef), true
}

// Insert stores a remote reference under name
func (r *Registry) Insert(name string, ref RemoteRef) {
	r.entries.Set(normalizeName(name), ref, cache.NoExpiration)
}

// Resolve returns the reference stored under name, calling create to make
// the remote entity on a miss. The whole lookup-create-insert sequence is
// serialized so two concurrent resolutions of a new name cannot create the
// entity twice: a name resolves to exactly one remote ID within a run.
func (r *Registry) Resolve(name string, create func() (RemoteRef, error)) (RemoteRef, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if ref, ok := r.Lookup(name); ok {
		return ref, nil
	}

	ref, err := create()
	if err != nil {
		return RemoteRef{}, err
	}

	r.Insert(name, ref)
	return ref, nil
}

// Len returns the number of cached references
func (r *Registry) Len() int {
	return r.entries.ItemCount()
}

func normalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
