/*
This is an example of application that will use the
engine package to test things out
*/
package main

import (
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spaghettifunk/glengine/engine"
	"github.com/spaghettifunk/glengine/engine/assets"
	"github.com/spaghettifunk/glengine/engine/core"
	"github.com/spaghettifunk/glengine/engine/khr"
	"github.com/spaghettifunk/glengine/engine/platform"
	"github.com/spaghettifunk/glengine/testbed"
)

func main() {
	configPath := flag.String("config", "engine.toml", "path to the engine configuration file")
	flag.Parse()

	cfg, err := engine.LoadApplicationConfig(*configPath)
	if errors.Is(err, os.ErrNotExist) {
		core.LogWarn("config `%s` not found, using defaults", *configPath)
		cfg = engine.DefaultApplicationConfig()
	} else if err != nil {
		core.LogFatal("failed to load config: %s", err)
	}
	core.SetLogLevel(cfg.Level())

	metrics, err := core.NewMetrics(prometheus.DefaultRegisterer)
	if err != nil {
		core.LogFatal("failed to register metrics: %s", err)
	}
	if cfg.MetricsAddr != "" {
		srv := core.NewMetricsServer(cfg.MetricsAddr, prometheus.DefaultGatherer)
		go func() {
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				core.LogError("metrics server stopped: %s", err)
			}
		}()
		defer srv.Close()
	}

	windowConfig, err := cfg.WindowConfig()
	if err != nil {
		core.LogFatal(err.Error())
	}

	e, err := engine.New(platform.New(), khr.New(windowConfig.API),
		engine.WithApplicationConfig(cfg),
		engine.WithMetrics(metrics),
	)
	if err != nil {
		core.LogFatal(err.Error())
	}
	tb := testbed.NewTestGame(e)

	if !e.Create(cfg.Name, cfg.Window.PosX, cfg.Window.PosY, cfg.Window.Width, cfg.Window.Height) {
		core.LogFatal("failed to create the engine")
	}
	tb.Initialize()

	if cfg.Watch {
		w, err := assets.NewWatcher()
		if err != nil {
			core.LogFatal(err.Error())
		}
		defer w.Close()

		err = w.Watch(*configPath, func(path string) {
			reloaded, err := engine.LoadApplicationConfig(path)
			if err != nil {
				core.LogWarn("ignoring config change: %s", err)
				return
			}
			if err := e.ApplyConfig(reloaded); err != nil {
				core.LogWarn("ignoring config change: %s", err)
				return
			}
			core.LogInfo("config reloaded")
		})
		if err != nil {
			core.LogError("failed to watch config: %s", err)
		}
	}

	// signal channel to capture system calls
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGTERM, syscall.SIGINT, syscall.SIGQUIT)

	// start shutdown goroutine
	go func() {
		// capture sigterm and other system call here
		<-sigCh
		e.Stop()
	}()

	// run engine
	e.Loop()
}
