package di

import (
	"reflect"
)

// TypeKey identifies a registration by the type it produces.
type TypeKey struct {
	t reflect.Type
}

// KeyOf returns the key for T. Interface types are keyed by the interface
// itself, not by whatever implementation gets registered.
func KeyOf[T any]() TypeKey {
	return TypeKey{t: reflect.TypeFor[T]()}
}

// Type returns the underlying reflect.Type, or nil for the zero key.
func (k TypeKey) Type() reflect.Type {
	return k.t
}

// String renders named types with their full package path so that two types
// with the same name in different packages stay distinguishable in logs.
func (k TypeKey) String() string {
	return typeName(k.t)
}

func typeName(t reflect.Type) string {
	if t == nil {
		return "<nil>"
	}
	if t.Name() != "" && t.PkgPath() != "" {
		return t.PkgPath() + "." + t.Name()
	}
	if t.Kind() == reflect.Pointer {
		return "*" + typeName(t.Elem())
	}
	return t.String()
}
