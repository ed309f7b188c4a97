// Command medview is a desktop viewer for CT, MRI, X-Ray, and ultrasound
// studies with overlays, measurements, and an embedded report assistant.
package main

import (
	"context"
	"flag"
	"time"

	fyneapp "fyne.io/fyne/v2/app"
	"go.uber.org/zap"

	"medview/internal/api"
	"medview/internal/app"
	"medview/internal/assistant"
	"medview/internal/config"
	"medview/internal/study"
	"medview/internal/version"
	"medview/ui/mainwindow"
	"medview/ui/prefs"
)

func main() {
	configPath := flag.String("config", "", "Path to YAML configuration file")
	flag.Parse()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		panic(err)
	}

	log := newLogger(cfg.Output.Verbose)
	defer log.Sync()
	log.Info("starting medview",
		zap.String("version", version.Version),
		zap.String("commit", version.GitCommit))

	appPrefs := prefs.Load()

	repo := study.FixtureRepository()
	state := app.NewState(repo, cfg.Viewer.PlaybackSpeed)
	defer state.Close()

	responder := assistant.NewResponder(
		cfg.Assistant.LLMEndpoint,
		cfg.Assistant.Model,
		time.Duration(cfg.Assistant.ProbeTimeoutSeconds*float64(time.Second)),
		log,
	)

	client := api.NewClient(cfg.API.BaseURL, appPrefs, log)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if cfg.Assistant.ListenAddr != "" {
		server := assistant.NewServer(cfg.Assistant.ListenAddr, responder, log)
		go func() {
			if err := server.Start(ctx); err != nil {
				log.Warn("assistant server stopped", zap.Error(err))
			}
		}()
	}

	a := fyneapp.NewWithID("io.medview.viewer")
	a.Settings().SetTheme(&app.MedViewTheme{})

	win := mainwindow.New(a, state, responder, client, cfg, log)
	win.Window().ShowAndRun()
}

// newLogger builds the process logger. Verbose mode lowers the level to
// debug.
func newLogger(verbose bool) *zap.Logger {
	zcfg := zap.NewProductionConfig()
	if verbose {
		zcfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	}
	logger, err := zcfg.Build()
	if err != nil {
		panic(err)
	}
	return logger
}
