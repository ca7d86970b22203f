package navigator

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const instrumentationName = "github.com/ansipixels/twincam/navigator"

type metrics struct {
	flights metric.Int64Counter
	picks   metric.Int64Counter
	alerts  metric.Int64Counter
	tours   metric.Int64Counter
}

// newMetrics creates the counters on mp, or on the global provider (a
// no-op unless the host installed one) when mp is nil.
func newMetrics(mp metric.MeterProvider) (*metrics, error) {
	var m metric.Meter
	if mp != nil {
		m = mp.Meter(instrumentationName)
	} else {
		m = otel.Meter(instrumentationName)
	}
	var (
		out metrics
		err error
	)
	out.flights, err = m.Int64Counter(
		"twincam.flights",
		metric.WithDescription("Camera flights started"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating flights counter: %w", err)
	}
	out.picks, err = m.Int64Counter(
		"twincam.picks",
		metric.WithDescription("Scene clicks by outcome"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating picks counter: %w", err)
	}
	out.alerts, err = m.Int64Counter(
		"twincam.alerts.armed",
		metric.WithDescription("Alert targets armed"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating alerts counter: %w", err)
	}
	out.tours, err = m.Int64Counter(
		"twincam.tour.ticks",
		metric.WithDescription("Auto-tour ticks that advanced the camera"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating tour counter: %w", err)
	}
	return &out, nil
}

func (m *metrics) flight(kind string) {
	m.flights.Add(context.Background(), 1, metric.WithAttributes(attribute.String("kind", kind)))
}

func (m *metrics) pick(kind string) {
	m.picks.Add(context.Background(), 1, metric.WithAttributes(attribute.String("kind", kind)))
}

func (m *metrics) alert(key string) {
	m.alerts.Add(context.Background(), 1, metric.WithAttributes(attribute.String("key", key)))
}

func (m *metrics) tour() {
	m.tours.Add(context.Background(), 1)
}
