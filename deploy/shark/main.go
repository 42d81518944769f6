// Package main shark command line dissector
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gookit/color"
	"golang.org/x/term"

	"github.com/forest33/shark/adapter/capture"
	rest "github.com/forest33/shark/adapter/http"
	"github.com/forest33/shark/adapter/registry"
	"github.com/forest33/shark/adapter/server"
	"github.com/forest33/shark/business/entity"
	"github.com/forest33/shark/business/usecase"
	"github.com/forest33/shark/pkg/automaxprocs"
	"github.com/forest33/shark/pkg/config"
	"github.com/forest33/shark/pkg/format"
	"github.com/forest33/shark/pkg/logger"
	"github.com/forest33/shark/pkg/profiler"
	"github.com/forest33/shark/pkg/structs"
)

const shutdownTimeout = 5 * time.Second

var (
	cfg        = &entity.SharkConfig{}
	cfgHandler *config.Config
	zlog       *logger.Logger

	registryAdapter *registry.Registry
	captureAdapter  *capture.Reader

	sharkUseCase *usecase.SharkUseCase
)

func main() {
	command, data := parseCommandLine()

	initConfig(data)
	initLogger()
	initAdapters()
	initUseCases()

	os.Exit(commandHandlers[command](data))
}

func initConfig(data *commandData) {
	var err error
	if data.configPath != "" {
		cfgHandler, err = config.Load(data.configPath, cfg)
	} else {
		cfgHandler, err = config.New(entity.DefaultConfigFileName, "", cfg)
	}
	if err != nil {
		log.Fatalf("failed to parse config file: %v", err)
	}

	if data.protocol != "" {
		cfg.Dissection.RootProtocol = data.protocol
	}
	if data.tolerant {
		cfg.Dissection.Tolerant = structs.Ref(true)
	}
	if data.inputFormat != "" {
		cfg.Capture.Format = data.inputFormat
	}
	if data.outputFormat != "" {
		cfg.Output.Format = data.outputFormat
	}
	if data.color != "" {
		cfg.Output.Color = data.color
	}
	if data.verbose {
		cfg.Logger.Level = "debug"
	}

	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}
}

func initLogger() {
	// stdout carries dissections, logs always go to stderr
	zlog = logger.New(logger.Config{
		Level:             cfg.Logger.Level,
		TimeFieldFormat:   cfg.Logger.TimeFieldFormat,
		PrettyPrint:       *cfg.Logger.PrettyPrint,
		DisableSampling:   *cfg.Logger.DisableSampling,
		RedirectStdLogger: *cfg.Logger.RedirectStdLogger,
		ErrorStack:        *cfg.Logger.ErrorStack,
		ShowCaller:        *cfg.Logger.ShowCaller,
		FileName:          cfg.Logger.FileName,
		Output:            os.Stderr,
	})

	automaxprocs.Init(zlog, cfg.Runtime.GoMaxProcs)

	profiler.Start(&profiler.Config{
		Enabled: *cfg.Profiler.Enabled,
		Host:    cfg.Profiler.Host,
		Port:    cfg.Profiler.Port,
	}, zlog)
}

func initAdapters() {
	var err error

	registryAdapter, err = registry.New(zlog, cfg.Dissectors)
	if err != nil {
		zlog.Fatalf("failed to create dissector registry: %v", err)
	}

	captureAdapter = capture.New(zlog, cfg.Capture)
}

func initUseCases() {
	var err error

	sharkUseCase, err = usecase.NewSharkUseCase(zlog, cfg.Dissection, registryAdapter)
	if err != nil {
		zlog.Fatalf("failed to create dissection engine: %v", err)
	}
}

func newFormatter() format.Formatter {
	f, err := format.New(cfg.Output.Format, format.Options{
		Color:        useColor(cfg.Output.Color),
		ShowWarnings: *cfg.Output.ShowWarnings,
	})
	if err != nil {
		zlog.Fatalf("failed to create formatter: %v", err)
	}
	return f
}

func useColor(mode string) bool {
	switch mode {
	case entity.ColorAlways:
		color.ForceOpenColor()
		return true
	case entity.ColorNever:
		return false
	default:
		return term.IsTerminal(int(os.Stdout.Fd()))
	}
}

func serve() int {
	if err := sharkUseCase.Watch(cfgHandler); err != nil {
		zlog.Error().Err(err).Msg("config hot reload disabled")
	}

	if *cfg.Rest.Enabled {
		srv, err := rest.New(&rest.Config{
			Host:         cfg.Rest.Host,
			Port:         cfg.Rest.Port,
			ShowWarnings: *cfg.Output.ShowWarnings,
		}, zlog, sharkUseCase)
		if err != nil {
			zlog.Fatalf("failed to start HTTP server: %v", err)
		}
		srv.Start()
	}

	var ingest *server.Server
	if *cfg.Ingest.Enabled {
		ingest = server.New(&server.Config{
			Host:      cfg.Ingest.Host,
			Port:      cfg.Ingest.Port,
			Multicore: *cfg.Ingest.Multicore,
		}, zlog, sharkUseCase, newFormatter(), os.Stdout)
		ingest.Run()
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	if ingest != nil {
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := ingest.Stop(ctx); err != nil {
			zlog.Error().Err(err).Msg("failed to stop UDP ingest")
		}
	}

	return 0
}
