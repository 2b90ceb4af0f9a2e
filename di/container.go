package di

import (
	"reflect"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
	"golang.org/x/sync/singleflight"

	apperrors "github.com/kbukum/dikit/errors"
	"github.com/kbukum/dikit/logger"
)

// Container maps types to builders and caches singleton instances.
// It is safe for concurrent use. Builders run without any container lock
// held, so they may resolve other types from the same container.
type Container struct {
	id  string
	log *logger.Logger

	mu            sync.RWMutex
	registrations map[TypeKey]*entry
	generation    uint64

	// flights collapses concurrent first resolves of one singleton entry.
	flights singleflight.Group

	metrics             *metrics
	strictSingletonArgs bool
}

type options struct {
	logger              *logger.Logger
	meterProvider       metric.MeterProvider
	strictSingletonArgs bool
}

// Option configures a Container.
type Option func(*options)

// WithLogger sets the logger used for registration and construction events.
func WithLogger(l *logger.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithMeterProvider sets the provider for the container's instruments.
// The global otel provider is used by default.
func WithMeterProvider(mp metric.MeterProvider) Option {
	return func(o *options) { o.meterProvider = mp }
}

// WithStrictSingletonArgs makes resolving a built singleton with arguments
// different from its first construction fail with SINGLETON_ARGUMENTS_CHANGED
// instead of returning the cached instance.
func WithStrictSingletonArgs() Option {
	return func(o *options) { o.strictSingletonArgs = true }
}

// New creates an empty container.
func New(opts ...Option) *Container {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = logger.Get("di")
	}
	if o.meterProvider == nil {
		o.meterProvider = otel.GetMeterProvider()
	}

	id := uuid.NewString()
	log := o.logger.WithFields(logger.Fields(logger.FieldContainerID, id))

	return &Container{
		id:                  id,
		log:                 log,
		registrations:       make(map[TypeKey]*entry),
		metrics:             newMetrics(o.meterProvider, log),
		strictSingletonArgs: o.strictSingletonArgs,
	}
}

// ID returns the container's unique identifier.
func (c *Container) ID() string {
	return c.id
}

// Contains reports whether key has a registration. It does not build anything.
func (c *Container) Contains(key TypeKey) bool {
	_, ok := c.lookup(key)
	return ok
}

// Contains reports whether T has a registration.
func Contains[T any](c *Container) bool {
	return c.Contains(KeyOf[T]())
}

func (c *Container) lookup(key TypeKey) (*entry, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	e, ok := c.registrations[key]
	return e, ok
}

// register stores a new entry for key, dropping any previous entry together
// with its cached instance.
func (c *Container) register(key TypeKey, lifetime Lifetime, argTypes []reflect.Type, build buildFunc) {
	c.mu.Lock()
	c.generation++
	e := &entry{
		key:        key,
		lifetime:   lifetime,
		argTypes:   argTypes,
		build:      build,
		generation: c.generation,
	}
	prev, replaced := c.registrations[key]
	c.registrations[key] = e
	c.mu.Unlock()

	fields := logger.Fields(
		logger.FieldType, key.String(),
		logger.FieldLifetime, lifetime.String(),
		logger.FieldArity, e.arity(),
	)
	if replaced {
		fields["previous_lifetime"] = prev.lifetime.String()
		c.log.Debug("registration replaced", fields)
	} else {
		c.log.Debug("registration stored", fields)
	}
	c.metrics.registered(key, lifetime, replaced)
}

// resolve returns an instance for key built with args. argTypes are the
// static types of args at the call site.
func (c *Container) resolve(key TypeKey, argTypes []reflect.Type, args []any) (any, error) {
	e, ok := c.lookup(key)
	if !ok {
		c.metrics.resolved(key, "", outcomeError)
		return nil, apperrors.NotRegistered(key.String())
	}
	if err := checkArgs(e, argTypes); err != nil {
		c.metrics.resolved(key, e.lifetime.String(), outcomeError)
		return nil, err
	}

	if e.lifetime == Transient {
		instance, err := c.invoke(e, args)
		if err != nil {
			c.metrics.resolved(key, e.lifetime.String(), outcomeError)
			return nil, err
		}
		c.metrics.resolved(key, e.lifetime.String(), outcomeBuilt)
		return instance, nil
	}

	instance, builtHere, err := c.singleton(e, args)
	if err != nil {
		c.metrics.resolved(key, e.lifetime.String(), outcomeError)
		return nil, err
	}
	if builtHere {
		c.metrics.resolved(key, e.lifetime.String(), outcomeBuilt)
	} else {
		c.metrics.resolved(key, e.lifetime.String(), outcomeCached)
	}
	return instance, nil
}

// singleton returns the cached instance of e, building it first if needed.
// builtHere is true only for the call that ran the builder.
func (c *Container) singleton(e *entry, args []any) (instance any, builtHere bool, err error) {
	if instance, builtArgs, ok := e.cached(); ok {
		return instance, false, c.checkSingletonArgs(e, builtArgs, args)
	}

	v, err, _ := c.flights.Do(strconv.FormatUint(e.generation, 10), func() (any, error) {
		if instance, _, ok := e.cached(); ok {
			return instance, nil
		}
		start := time.Now()
		instance, err := c.invoke(e, args)
		if err != nil {
			return nil, err
		}
		e.store(instance, args)
		builtHere = true
		c.log.Debug("singleton constructed", logger.MergeWithDuration(logger.Fields(
			logger.FieldType, e.key.String(),
			logger.FieldArity, e.arity(),
		), time.Since(start)))
		return instance, nil
	})
	if err != nil {
		return nil, false, err
	}
	if !builtHere {
		_, builtArgs, _ := e.cached()
		if err := c.checkSingletonArgs(e, builtArgs, args); err != nil {
			return nil, false, err
		}
	}
	return v, builtHere, nil
}

func (c *Container) checkSingletonArgs(e *entry, builtArgs, args []any) error {
	if !c.strictSingletonArgs || reflect.DeepEqual(builtArgs, args) {
		return nil
	}
	return apperrors.SingletonArgumentsChanged(e.key.String())
}

// invoke runs the builder once. Builder errors are returned unchanged.
func (c *Container) invoke(e *entry, args []any) (any, error) {
	start := time.Now()
	instance, err := e.build(c, args)
	elapsed := time.Since(start)
	c.metrics.built(e.key, e.lifetime, elapsed, err)
	if err != nil {
		c.log.Warn("builder failed", logger.MergeWithError(logger.Fields(
			logger.FieldType, e.key.String(),
			logger.FieldLifetime, e.lifetime.String(),
		), err))
		return nil, err
	}
	return instance, nil
}

func checkArgs(e *entry, argTypes []reflect.Type) error {
	if len(argTypes) != e.arity() {
		return apperrors.ArityMismatch(e.key.String(), e.arity(), len(argTypes))
	}
	for i, t := range argTypes {
		if t != e.argTypes[i] {
			return apperrors.ArgumentMismatch(e.key.String(), i+1, typeName(e.argTypes[i]), typeName(t))
		}
	}
	return nil
}
