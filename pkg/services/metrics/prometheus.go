package metrics

import (
	"github.com/nspcc-dev/alephium-go/pkg/config"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// NewPrometheusService creates a new service exposing metrics gathered by
// the registry, the default gatherer is used if it's nil.
func NewPrometheusService(cfg config.BasicService, g prometheus.Gatherer, log *zap.Logger) *Service {
	if g == nil {
		g = prometheus.DefaultGatherer
	}
	return NewService("Prometheus", promhttp.HandlerFor(g, promhttp.HandlerOpts{}), cfg, log)
}
