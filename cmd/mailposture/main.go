// Command mailposture serves the DNS posture checker over HTTP.
package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/optimode/mailposture/internal/config"
	"github.com/optimode/mailposture/internal/logging"
	"github.com/optimode/mailposture/internal/server"
)

func main() {
	iniPath := flag.String("config", "", "optional INI configuration file (environment variables take precedence)")
	flag.Parse()

	// 1. Load configuration
	var cfg *config.Config
	var err error
	if *iniPath != "" {
		cfg, err = config.LoadFromINI(*iniPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 2. Initialize logger
	logger, err := logging.New(os.Stderr, cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	entry := logger.WithField("service", "mailposture")

	// 3. Initialize checker and router
	checker := cfg.NewChecker(entry)
	gin.SetMode(cfg.GinMode)
	router := server.NewRouter(server.Config{Checker: checker, Logger: entry})

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		entry.WithField("addr", cfg.HTTPAddr).Info("server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			entry.WithError(err).Fatal("server failed")
		}
	}()

	<-ctx.Done()
	entry.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		entry.WithError(err).Error("graceful shutdown failed")
	}
}
