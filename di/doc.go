// Package di provides a typed dependency injection container.
//
// Registrations are keyed by the Go type they produce. A builder receives the
// container (for nested resolution) and zero to four arguments supplied at
// resolve time. Transient registrations call the builder on every resolve;
// singleton registrations call it once and cache the result until the type is
// registered again.
//
// # Registration
//
//	c := di.New()
//	di.RegisterSingleton(c, func(c *di.Container) (*Config, error) {
//	    return LoadConfig()
//	})
//	di.Register3(c, func(c *di.Container, city, state, country string) (*Address, error) {
//	    return &Address{City: city, State: state, Country: country}, nil
//	})
//
// # Resolution
//
//	cfg := di.MustResolve[*Config](c)
//	addr, err := di.Resolve3[*Address](c, "Sydney", "NSW", "Australia")
//
// Resolve functions return *errors.AppError values for wiring mistakes
// (unregistered type, wrong argument count or types). Errors returned by a
// builder are passed through unchanged.
package di
