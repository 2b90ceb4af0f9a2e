package di

import (
	"reflect"

	apperrors "github.com/kbukum/dikit/errors"
)

// Resolve returns an instance of T from a builder registered without
// arguments.
//
// Example:
//
//	repo, err := di.Resolve[contracts.OrderRepository](c)
//	if err != nil {
//	    return fmt.Errorf("failed to get order repository: %w", err)
//	}
func Resolve[T any](c *Container) (T, error) {
	return resolveAs[T](c, nil, nil)
}

// Resolve1 returns an instance of T built with one argument. For a singleton
// that is already built the argument is ignored unless the container is
// strict.
func Resolve1[T, A any](c *Container, a A) (T, error) {
	return resolveAs[T](c, argTypes1[A](), []any{a})
}

// Resolve2 returns an instance of T built with two arguments.
func Resolve2[T, A, B any](c *Container, a A, b B) (T, error) {
	return resolveAs[T](c, argTypes2[A, B](), []any{a, b})
}

// Resolve3 returns an instance of T built with three arguments.
//
// Example:
//
//	addr, err := di.Resolve3[*Address](c, "Sydney", "NSW", "Australia")
func Resolve3[T, A, B, C any](c *Container, a A, b B, cc C) (T, error) {
	return resolveAs[T](c, argTypes3[A, B, C](), []any{a, b, cc})
}

// Resolve4 returns an instance of T built with four arguments.
func Resolve4[T, A, B, C, D any](c *Container, a A, b B, cc C, d D) (T, error) {
	return resolveAs[T](c, argTypes4[A, B, C, D](), []any{a, b, cc, d})
}

// MustResolve resolves T and panics with the resolve error on failure.
// Use this during start-up wiring where a missing registration is a bug.
//
// Example:
//
//	repo := di.MustResolve[contracts.OrderRepository](c)
func MustResolve[T any](c *Container) T {
	return must(Resolve[T](c))
}

// MustResolve1 is Resolve1 that panics on failure.
func MustResolve1[T, A any](c *Container, a A) T {
	return must(Resolve1[T](c, a))
}

// MustResolve2 is Resolve2 that panics on failure.
func MustResolve2[T, A, B any](c *Container, a A, b B) T {
	return must(Resolve2[T](c, a, b))
}

// MustResolve3 is Resolve3 that panics on failure.
func MustResolve3[T, A, B, C any](c *Container, a A, b B, cc C) T {
	return must(Resolve3[T](c, a, b, cc))
}

// MustResolve4 is Resolve4 that panics on failure.
func MustResolve4[T, A, B, C, D any](c *Container, a A, b B, cc C, d D) T {
	return must(Resolve4[T](c, a, b, cc, d))
}

// TryResolve resolves T, returning the zero value and false on any failure.
// Use this when a dependency is optional.
//
// Example:
//
//	if m, ok := di.TryResolve[MetricsClient](c); ok {
//	    m.RecordEvent(...)
//	}
func TryResolve[T any](c *Container) (T, bool) {
	v, err := Resolve[T](c)
	if err != nil {
		var zero T
		return zero, false
	}
	return v, true
}

func resolveAs[T any](c *Container, argTypes []reflect.Type, args []any) (T, error) {
	var zero T
	key := KeyOf[T]()
	instance, err := c.resolve(key, argTypes, args)
	if err != nil {
		return zero, err
	}
	if instance == nil {
		return zero, nil
	}
	result, ok := instance.(T)
	if !ok {
		return zero, apperrors.ResultMismatch(key.String(), instance)
	}
	return result, nil
}

func must[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}
	return v
}
