package di

import (
	"reflect"
	"sync"
)

// Lifetime determines how often a registration's builder runs.
type Lifetime int

const (
	Transient Lifetime = iota // Build on every resolve
	Singleton                 // Build on first resolve, then reuse
)

// String returns the lowercase lifetime name used in logs and metrics.
func (l Lifetime) String() string {
	switch l {
	case Transient:
		return "transient"
	case Singleton:
		return "singleton"
	default:
		return "unknown"
	}
}

// buildFunc is the arity-erased form of a typed builder. args has exactly
// len(entry.argTypes) elements, already checked against argTypes.
type buildFunc func(c *Container, args []any) (any, error)

// entry is one registration. A re-registration creates a new entry, so the
// cache below never outlives the builder that filled it.
type entry struct {
	key        TypeKey
	lifetime   Lifetime
	argTypes   []reflect.Type
	build      buildFunc
	generation uint64

	mu        sync.Mutex
	built     bool
	instance  any
	builtArgs []any
}

func (e *entry) arity() int {
	return len(e.argTypes)
}

// cached returns the singleton instance and the arguments it was built with.
func (e *entry) cached() (instance any, args []any, ok bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.instance, e.builtArgs, e.built
}

func (e *entry) store(instance any, args []any) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.instance = instance
	e.builtArgs = args
	e.built = true
}
