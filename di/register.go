package di

import (
	"reflect"
)

// Register registers a transient builder for T. The builder runs on every
// resolve. Any previous registration for T is replaced.
func Register[T any](c *Container, build func(c *Container) (T, error)) {
	mustBuilder[T](build == nil)
	c.register(KeyOf[T](), Transient, nil, adapt0(build))
}

// Register1 registers a transient builder for T taking one argument.
func Register1[T, A any](c *Container, build func(c *Container, a A) (T, error)) {
	mustBuilder[T](build == nil)
	c.register(KeyOf[T](), Transient, argTypes1[A](), adapt1(build))
}

// Register2 registers a transient builder for T taking two arguments.
func Register2[T, A, B any](c *Container, build func(c *Container, a A, b B) (T, error)) {
	mustBuilder[T](build == nil)
	c.register(KeyOf[T](), Transient, argTypes2[A, B](), adapt2(build))
}

// Register3 registers a transient builder for T taking three arguments.
func Register3[T, A, B, C any](c *Container, build func(c *Container, a A, b B, cc C) (T, error)) {
	mustBuilder[T](build == nil)
	c.register(KeyOf[T](), Transient, argTypes3[A, B, C](), adapt3(build))
}

// Register4 registers a transient builder for T taking four arguments.
func Register4[T, A, B, C, D any](c *Container, build func(c *Container, a A, b B, cc C, d D) (T, error)) {
	mustBuilder[T](build == nil)
	c.register(KeyOf[T](), Transient, argTypes4[A, B, C, D](), adapt4(build))
}

// RegisterSingleton registers a singleton builder for T. The builder runs on
// the first resolve and the result is returned by every later resolve until T
// is registered again.
func RegisterSingleton[T any](c *Container, build func(c *Container) (T, error)) {
	mustBuilder[T](build == nil)
	c.register(KeyOf[T](), Singleton, nil, adapt0(build))
}

// RegisterSingleton1 registers a singleton builder for T taking one argument.
// Arguments only matter for the resolve that builds the instance.
func RegisterSingleton1[T, A any](c *Container, build func(c *Container, a A) (T, error)) {
	mustBuilder[T](build == nil)
	c.register(KeyOf[T](), Singleton, argTypes1[A](), adapt1(build))
}

// RegisterSingleton2 registers a singleton builder for T taking two arguments.
func RegisterSingleton2[T, A, B any](c *Container, build func(c *Container, a A, b B) (T, error)) {
	mustBuilder[T](build == nil)
	c.register(KeyOf[T](), Singleton, argTypes2[A, B](), adapt2(build))
}

// RegisterSingleton3 registers a singleton builder for T taking three arguments.
func RegisterSingleton3[T, A, B, C any](c *Container, build func(c *Container, a A, b B, cc C) (T, error)) {
	mustBuilder[T](build == nil)
	c.register(KeyOf[T](), Singleton, argTypes3[A, B, C](), adapt3(build))
}

// RegisterSingleton4 registers a singleton builder for T taking four arguments.
func RegisterSingleton4[T, A, B, C, D any](c *Container, build func(c *Container, a A, b B, cc C, d D) (T, error)) {
	mustBuilder[T](build == nil)
	c.register(KeyOf[T](), Singleton, argTypes4[A, B, C, D](), adapt4(build))
}

func mustBuilder[T any](isNil bool) {
	if isNil {
		panic("di: nil builder for " + KeyOf[T]().String())
	}
}

func argTypes1[A any]() []reflect.Type {
	return []reflect.Type{reflect.TypeFor[A]()}
}

func argTypes2[A, B any]() []reflect.Type {
	return []reflect.Type{reflect.TypeFor[A](), reflect.TypeFor[B]()}
}

func argTypes3[A, B, C any]() []reflect.Type {
	return []reflect.Type{reflect.TypeFor[A](), reflect.TypeFor[B](), reflect.TypeFor[C]()}
}

func argTypes4[A, B, C, D any]() []reflect.Type {
	return []reflect.Type{reflect.TypeFor[A](), reflect.TypeFor[B](), reflect.TypeFor[C](), reflect.TypeFor[D]()}
}

// argAs converts a stored argument back to its static type. A nil interface
// argument stays the zero value instead of panicking in the assertion.
func argAs[A any](v any) A {
	if v == nil {
		var zero A
		return zero
	}
	return v.(A)
}

func boxed[T any](v T, err error) (any, error) {
	if err != nil {
		return nil, err
	}
	return v, nil
}

func adapt0[T any](build func(*Container) (T, error)) buildFunc {
	return func(c *Container, _ []any) (any, error) {
		return boxed(build(c))
	}
}

func adapt1[T, A any](build func(*Container, A) (T, error)) buildFunc {
	return func(c *Container, args []any) (any, error) {
		return boxed(build(c, argAs[A](args[0])))
	}
}

func adapt2[T, A, B any](build func(*Container, A, B) (T, error)) buildFunc {
	return func(c *Container, args []any) (any, error) {
		return boxed(build(c, argAs[A](args[0]), argAs[B](args[1])))
	}
}

func adapt3[T, A, B, C any](build func(*Container, A, B, C) (T, error)) buildFunc {
	return func(c *Container, args []any) (any, error) {
		return boxed(build(c, argAs[A](args[0]), argAs[B](args[1]), argAs[C](args[2])))
	}
}

func adapt4[T, A, B, C, D any](build func(*Container, A, B, C, D) (T, error)) buildFunc {
	return func(c *Container, args []any) (any, error) {
		return boxed(build(c, argAs[A](args[0]), argAs[B](args[1]), argAs[C](args[2]), argAs[D](args[3])))
	}
}
