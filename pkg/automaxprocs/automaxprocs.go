package automaxprocs

import (
	"runtime"

	"go.uber.org/automaxprocs/maxprocs"

	"github.com/forest33/shark/pkg/logger"
)

// Init sets GOMAXPROCS, a positive procs value overrides the container CPU quota
func Init(log *logger.Logger, procs int) {
	if procs > 0 {
		prev := runtime.GOMAXPROCS(procs)
		log.Debug().Int("previous", prev).Int("current", procs).Msg("GOMAXPROCS set from config")
		return
	}

	undo, err := maxprocs.Set(maxprocs.Logger(log.Printf))
	if err != nil {
		log.Error().Err(err).Msg("failed to set automaxprocs")
		undo()
	}
}
