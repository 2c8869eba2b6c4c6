package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
)

func main() {
	dotenv := flag.String("env-file", ".env", "optional dotenv file read before the environment")
	flag.Parse()

	cfg, err := loadConfig(*dotenv)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	logger, err := newLogger(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dash := NewDashboard(cfg, NewLoader(nil), logger)

	// A failed startup load is not fatal: the page shows the failure
	// placeholder until a reload succeeds.
	if err := dash.Reload(ctx); err != nil {
		var loadErr *LoadError
		if errors.As(err, &loadErr) {
			logger.WithField("dataset", loadErr.Dataset).Warn("serving load-failure page")
		}
	}

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           dash.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go shutdownOnDone(ctx, srv, logger)

	logger.WithField("addr", cfg.Addr).Info("dashboard listening")
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.WithError(err).Fatal("server stopped")
	}
}

type shutdowner interface {
	Shutdown(ctx context.Context) error
}

// shutdownOnDone drains srv once ctx is cancelled, allowing 5s for
// in-flight requests.
func shutdownOnDone(ctx context.Context, srv shutdowner, log logrus.FieldLogger) {
	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("graceful shutdown failed")
	}
}
