package profiler

import (
	"fmt"
	"net/http"
	_ "net/http/pprof"
	"sync"

	"github.com/forest33/shark/pkg/logger"
)

type Config struct {
	Enabled bool
	Host    string
	Port    int
}

var (
	once = sync.Once{}
)

// Start serves pprof handlers in background, repeated calls are no-op
func Start(cfg *Config, log *logger.Logger) {
	if cfg == nil || !cfg.Enabled {
		return
	}

	once.Do(func() {
		addr := fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)
		log = log.Layer("profiler")
		log.Info().Str("addr", addr).Msg("starting profiler")

		go func() {
			if err := http.ListenAndServe(addr, nil); err != nil {
				log.Error().Err(err).Msg("profiler stopped")
			}
		}()
	})
}
