/*
Package metrics contains HTTP services exposing process metrics: prometheus
metrics of the node client and pprof profiles.
*/
package metrics

import (
	"context"
	"errors"
	"net/http"

	"github.com/nspcc-dev/alephium-go/pkg/config"
	"go.uber.org/zap"
)

// Service serves metrics.
type Service struct {
	*http.Server
	config      config.BasicService
	log         *zap.Logger
	serviceType string
}

// NewService creates a new Service of the given type serving the handler at
// the configured address.
func NewService(name string, handler http.Handler, cfg config.BasicService, log *zap.Logger) *Service {
	return &Service{
		Server: &http.Server{
			Addr:    cfg.Address,
			Handler: handler,
		},
		config:      cfg,
		serviceType: name,
		log:         log.With(zap.String("service", name)),
	}
}

// Name returns the service type.
func (ms *Service) Name() string {
	return ms.serviceType
}

// Start runs http service with the exposed endpoint on the configured port,
// it returns immediately.
func (ms *Service) Start() {
	if !ms.config.Enabled {
		ms.log.Info("service hasn't started since it's disabled")
		return
	}
	ms.log.Info("service is running", zap.String("endpoint", ms.Addr))
	go func() {
		err := ms.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			ms.log.Warn("service couldn't start on configured port", zap.Error(err))
		}
	}()
}

// ShutDown stops the service.
func (ms *Service) ShutDown() {
	if !ms.config.Enabled {
		return
	}
	ms.log.Info("shutting down service", zap.String("endpoint", ms.Addr))
	err := ms.Shutdown(context.Background())
	if err != nil {
		ms.log.Error("can't shut service down", zap.Error(err))
	}
}
