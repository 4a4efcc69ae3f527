package metrics

import (
	"net/http"
	"net/http/pprof"

	"github.com/nspcc-dev/alephium-go/pkg/config"
	"go.uber.org/zap"
)

// PprofPath is the prefix pprof handlers are served under.
const PprofPath = "/debug/pprof/"

// NewPprofService creates a service exposing runtime profiles of the
// process, it's mostly useful for long compilations and simulations.
func NewPprofService(cfg config.BasicService, log *zap.Logger) *Service {
	mux := http.NewServeMux()
	mux.HandleFunc(PprofPath, pprof.Index)
	for name, h := range map[string]http.HandlerFunc{
		"cmdline": pprof.Cmdline,
		"profile": pprof.Profile,
		"symbol":  pprof.Symbol,
		"trace":   pprof.Trace,
	} {
		mux.HandleFunc(PprofPath+name, h)
	}
	return NewService("Pprof", mux, cfg, log)
}
