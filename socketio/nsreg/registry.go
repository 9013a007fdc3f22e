// Package nsreg implements the per-client namespace registry: an
// ordered mapping from namespace path to the server-assigned session id
// for that namespace.
package nsreg

import (
	"errors"
	"sync"
)

// ErrNotFound is returned by Delete when the namespace is not registered.
var ErrNotFound = errors.New("nsreg: namespace not registered")

// ErrExists is returned by Add when the namespace is already registered.
var ErrExists = errors.New("nsreg: namespace already registered")

// entry is one (nsp, sid) pair. The default namespace is represented by
// an empty nsp, never the literal "/", to keep comparison cheap — this
// mirrors the source's use of a NULL nsp pointer for the default.
type entry struct {
	nsp string
	sid string
}

// Registry is an insertion-ordered set of namespace entries. A mutex
// guarded slice gives O(n) search, which the spec calls sufficient for
// the expected population (a few dozen namespaces at most).
type Registry struct {
	mu      sync.Mutex
	entries []entry
}

// New returns an empty registry.
func New() *Registry {
	return &Registry{}
}

func normalize(nsp string) string {
	if nsp == "/" {
		return ""
	}
	return nsp
}

// Add appends (nsp, sid). Default namespace is named by "" or "/",
// interchangeably. Adding a namespace already present fails with
// ErrExists — duplicates are the caller's logic error, not silently
// ignored.
func (r *Registry) Add(nsp, sid string) error {
	nsp = normalize(nsp)

	r.mu.Lock()
	defer r.mu.Unlock()

	for _, e := range r.entries {
		if e.nsp == nsp {
			return ErrExists
		}
	}
	r.entries = append(r.entries, entry{nsp: nsp, sid: sid})
	return nil
}

// Exists reports whether nsp is registered.
func (r *Registry) Exists(nsp string) bool {
	nsp = normalize(nsp)

	r.mu.Lock()
	defer r.mu.Unlock()

	for _, e := range r.entries {
		if e.nsp == nsp {
			return true
		}
	}
	return false
}

// SearchSid returns the sid registered for nsp and true, or "" and
// false if nsp is not registered.
func (r *Registry) SearchSid(nsp string) (string, bool) {
	nsp = normalize(nsp)

	r.mu.Lock()
	defer r.mu.Unlock()

	for _, e := range r.entries {
		if e.nsp == nsp {
			return e.sid, true
		}
	}
	return "", false
}

// Delete removes the first entry matching nsp. Fails with ErrNotFound
// if absent.
func (r *Registry) Delete(nsp string) error {
	nsp = normalize(nsp)

	r.mu.Lock()
	defer r.mu.Unlock()

	for i, e := range r.entries {
		if e.nsp == nsp {
			r.entries = append(r.entries[:i], r.entries[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

// Count returns the number of registered namespaces.
func (r *Registry) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return len(r.entries)
}

// Destroy releases all entries.
func (r *Registry) Destroy() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.entries = nil
}
