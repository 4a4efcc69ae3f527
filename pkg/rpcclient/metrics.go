package rpcclient

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const metricsNamespace = "alephium_go"

// metrics holds per-endpoint request counters and timings.
type metrics struct {
	requests *prometheus.CounterVec
	times    *prometheus.HistogramVec
}

func newMetrics(reg prometheus.Registerer) (*metrics, error) {
	m := &metrics{
		requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Help:      "Number of requests made to node endpoints",
				Name:      "rpc_requests_total",
				Namespace: metricsNamespace,
			},
			[]string{"endpoint"},
		),
		times: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Help:      "Node request handling time",
				Name:      "rpc_request_duration_seconds",
				Namespace: metricsNamespace,
			},
			[]string{"endpoint"},
		),
	}
	var err error
	m.requests, err = register(reg, m.requests)
	if err != nil {
		return nil, err
	}
	m.times, err = register(reg, m.times)
	if err != nil {
		return nil, err
	}
	return m, nil
}

// register registers c, the already registered collector is reused if
// several clients share the registerer.
func register[C prometheus.Collector](reg prometheus.Registerer, c C) (C, error) {
	err := reg.Register(c)
	if err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(C); ok {
				return existing, nil
			}
		}
		return c, err
	}
	return c, nil
}

func (m *metrics) observe(endpoint string, d time.Duration) {
	m.requests.WithLabelValues(endpoint).Inc()
	m.times.WithLabelValues(endpoint).Observe(d.Seconds())
}
