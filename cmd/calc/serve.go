// Copyright (c) 2025 Michael D Henderson. All rights reserved.

package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mdhender/calc/batch"
	"github.com/mdhender/calc/metrics"
	store "github.com/mdhender/calc/stores/sqlite"
	"github.com/mdhender/calc/web/handlers"
	"github.com/spf13/cobra"
)

func cmdServe() *cobra.Command {
	var addr, dbPath string
	var timeout time.Duration
	addFlags := func(cmd *cobra.Command) error {
		cmd.Flags().StringVar(&addr, "addr", addr, "HTTP listen address (default: server.addr from config)")
		cmd.Flags().StringVar(&dbPath, "db", dbPath, "journal runs to this SQLite file (default: store.path from config)")
		cmd.Flags().DurationVar(&timeout, "timeout", 0, "auto-shutdown after duration (e.g., 5s, 1m)")
		return nil
	}
	var cmd = &cobra.Command{
		Use:          "serve",
		Short:        "serve the web form and JSON API",
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr == "" {
				addr = cfg.Server.Addr
			}
			if dbPath == "" {
				dbPath = cfg.Store.Path
			}
			return serve(addr, dbPath, timeout)
		},
	}
	if err := addFlags(cmd); err != nil {
		log.Fatal(err)
	}
	return cmd
}

func serve(addr, dbPath string, timeout time.Duration) error {
	if dbPath == "" {
		logger.Info("store: using in-memory SQLite")
	} else {
		logger.Info("store: using file-based SQLite", "path", dbPath)
	}
	sqlStore, err := store.Open(dbPath)
	if err != nil {
		return fmt.Errorf("failed to create SQLite store: %w", err)
	}
	defer sqlStore.Close()

	collector := metrics.NewCollector("")
	svc := batch.NewService(sqlStore, collector, logger)
	h := handlers.New(sqlStore, svc, logger)
	h.SetRecentRuns(cfg.Server.RecentRuns)

	mux := http.NewServeMux()
	h.Routes(mux)
	mux.Handle("GET "+cfg.Server.MetricsPath, collector.Handler())

	server := &http.Server{
		Addr:         addr,
		Handler:      mux,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  60 * time.Second,
	}

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(shutdown)

	if timeout > 0 {
		go func() {
			logger.Info("server: will auto-shutdown", "after", timeout)
			time.Sleep(timeout)
			logger.Info("server: timeout reached, initiating shutdown")
			shutdown <- os.Interrupt
		}()
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("server: listening", "addr", addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case <-shutdown:
	case err := <-serverErr:
		return fmt.Errorf("server: %w", err)
	}
	logger.Info("server: shutting down gracefully")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server: shutdown error: %w", err)
	}

	logger.Info("server: stopped")
	return nil
}
