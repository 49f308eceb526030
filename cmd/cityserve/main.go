// Command cityserve runs the mock city Data Source and calculator endpoint.
package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bastiangx/citycomplete/internal/logger"
	"github.com/bastiangx/citycomplete/internal/utils"
	"github.com/bastiangx/citycomplete/pkg/cityapi"
	"github.com/bastiangx/citycomplete/pkg/config"
	"github.com/bastiangx/citycomplete/pkg/dictionary"
	"github.com/charmbracelet/log"
)

func main() {
	configPath := flag.String("config", "", "Path to a custom config.toml")
	addr := flag.String("addr", "", "Listen address (overrides config)")
	delay := flag.Duration("delay", -1, "Artificial response delay (overrides config)")
	citiesFile := flag.String("cities", "", "City list to serve (name<TAB>region<TAB>id per line)")
	debugMode := flag.Bool("d", false, "Toggle debug mode")

	flag.Parse()

	if *debugMode {
		log.SetLevel(log.DebugLevel)
		log.SetReportTimestamp(false)
	} else {
		log.SetLevel(log.InfoLevel)
	}
	l := logger.New("cityserve")

	cfg, _, err := config.LoadConfigWithPriority(*configPath)
	if err != nil {
		l.Fatalf("Failed to load config: %v", err)
	}
	if *addr != "" {
		cfg.Server.Addr = *addr
	}
	if *delay >= 0 {
		cfg.Server.ResponseDelayMs = int(*delay / time.Millisecond)
	}

	var entries []dictionary.Entry
	if *citiesFile != "" {
		entries, err = dictionary.LoadFile(utils.GetAbsolutePath(*citiesFile))
		if err != nil {
			l.Fatalf("Failed to load cities: %v", err)
		}
	}

	api := cityapi.New(entries, cfg.Server.ResponseDelay(), cfg.Server.MaxLimit)
	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           api.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		l.Info("Listening", "addr", cfg.Server.Addr, "delay", cfg.Server.ResponseDelay())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			l.Fatalf("Server error: %v", err)
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		l.Errorf("Shutdown: %v", err)
	}
	l.Info("Stopped")
}
