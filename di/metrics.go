package di

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"

	"github.com/kbukum/dikit/logger"
)

const meterName = "github.com/kbukum/dikit/di"

// Resolve outcomes recorded on di.resolve.total.
const (
	outcomeBuilt  = "built"
	outcomeCached = "cached"
	outcomeError  = "error"
)

// metrics holds the container's OpenTelemetry instruments.
type metrics struct {
	resolveTotal      metric.Int64Counter
	buildDuration     metric.Float64Histogram
	registrationTotal metric.Int64Counter
}

// newMetrics creates the instruments on mp. If any instrument cannot be
// created the container falls back to no-op instruments.
func newMetrics(mp metric.MeterProvider, log *logger.Logger) *metrics {
	m, err := createMetrics(mp.Meter(meterName))
	if err != nil {
		log.Warn("metrics disabled", logger.ErrorFields("create_instruments", err))
		m, _ = createMetrics(noop.NewMeterProvider().Meter(meterName))
	}
	return m
}

func createMetrics(meter metric.Meter) (*metrics, error) {
	resolveTotal, err := meter.Int64Counter("di.resolve.total",
		metric.WithDescription("Total number of resolve calls by outcome"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating di.resolve.total counter: %w", err)
	}

	buildDuration, err := meter.Float64Histogram("di.build.duration",
		metric.WithDescription("Duration of builder invocations in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating di.build.duration histogram: %w", err)
	}

	registrationTotal, err := meter.Int64Counter("di.registration.total",
		metric.WithDescription("Total number of registrations"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating di.registration.total counter: %w", err)
	}

	return &metrics{
		resolveTotal:      resolveTotal,
		buildDuration:     buildDuration,
		registrationTotal: registrationTotal,
	}, nil
}

// resolved records one resolve call. lifetime is empty for unregistered types.
func (m *metrics) resolved(key TypeKey, lifetime, outcome string) {
	m.resolveTotal.Add(context.Background(), 1, metric.WithAttributes(
		attribute.String("type", key.String()),
		attribute.String("lifetime", lifetime),
		attribute.String("outcome", outcome),
	))
}

func (m *metrics) built(key TypeKey, lifetime Lifetime, d time.Duration, err error) {
	m.buildDuration.Record(context.Background(), d.Seconds(), metric.WithAttributes(
		attribute.String("type", key.String()),
		attribute.String("lifetime", lifetime.String()),
		attribute.Bool("error", err != nil),
	))
}

func (m *metrics) registered(key TypeKey, lifetime Lifetime, replaced bool) {
	m.registrationTotal.Add(context.Background(), 1, metric.WithAttributes(
		attribute.String("type", key.String()),
		attribute.String("lifetime", lifetime.String()),
		attribute.Bool("replaced", replaced),
	))
}
