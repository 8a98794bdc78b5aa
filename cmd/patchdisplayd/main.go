// Command patchdisplayd runs the UDP-driven cell-grid renderer: it
// binds the Datagram Receiver, drives the Render Tick against the
// Cell Model, and presents either a real Fyne window or (in --headless
// mode) nothing but the recording Null surface.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"patchdisplay/internal/cellmodel"
	"patchdisplay/internal/coalesce"
	"patchdisplay/internal/config"
	"patchdisplay/internal/netsrc"
	"patchdisplay/internal/queue"
	"patchdisplay/internal/render"
	"patchdisplay/internal/surface"
	"patchdisplay/internal/telemetry"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	v := viper.New()

	cmd := &cobra.Command{
		Use:   "patchdisplayd",
		Short: "Kiosk audio-production console cell-grid renderer",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfgFile, _ := cmd.Flags().GetString("config")
			cfg, err := config.Load(v, cfgFile)
			if err != nil {
				return err
			}
			return run(cfg)
		},
	}

	if err := config.BindFlags(cmd.Flags(), v); err != nil {
		panic(err)
	}

	return cmd
}

func run(cfg config.Config) error {
	logger := telemetry.New(os.Stderr, cfg.LogLevel)
	stats := telemetry.NewStats()

	var surf surface.Surface
	var window fyne.Window
	if cfg.Headless {
		surf = surface.NewNull()
	} else {
		fyneApp := app.New()
		fyneSurf := surface.NewFyne()
		window = fyneApp.NewWindow("patchdisplay")
		window.SetContent(fyneSurf.Container())
		surf = fyneSurf
	}

	model := cellmodel.New(cfg.Geometry(), surf)
	q := queue.New()
	coalescer := coalesce.New(q, cfg.Tick.MaxApplies)

	recv := netsrc.New(cfg.Net.Bind, cfg.Net.RecvBuffer, q, logger.Component("netsrc"), stats)
	if err := recv.Start(); err != nil {
		return fmt.Errorf("patchdisplayd: starting receiver: %w", err)
	}

	driver := render.New(time.Duration(cfg.Tick.PeriodMs)*time.Millisecond, func() int {
		return coalescer.Tick(model)
	}, func(applied int) {
		if applied > 0 {
			logger.Debug("tick applied commands", "count", applied)
		}
	})

	ctx, cancel := context.WithCancel(context.Background())
	driver.Start(ctx)

	var statsSrv *http.Server
	if cfg.StatsAddr != "" {
		statsSrv = startStatsServer(cfg.StatsAddr, stats, logger)
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	if window != nil {
		go func() {
			<-sigCh
			shutdown(cancel, driver, recv, statsSrv)
			window.Close()
		}()
		window.ShowAndRun()
		return nil
	}

	<-sigCh
	shutdown(cancel, driver, recv, statsSrv)
	return nil
}

func shutdown(cancel context.CancelFunc, driver *render.Driver, recv *netsrc.Receiver, statsSrv *http.Server) {
	cancel()
	driver.Stop()
	recv.Stop()
	if statsSrv != nil {
		ctx, done := context.WithTimeout(context.Background(), 2*time.Second)
		defer done()
		_ = statsSrv.Shutdown(ctx)
	}
}

func startStatsServer(addr string, stats *telemetry.Stats, logger *telemetry.Logger) *http.Server {
	mux := http.NewServeMux()
	mux.HandleFunc("/stats", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(stats.Snapshot())
	})
	srv := &http.Server{Addr: addr, Handler: mux}
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("stats server stopped", "error", err)
		}
	}()
	return srv
}
