package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/gyaneshwarpardhi/dialoguegraph/internal/api"
	"github.com/gyaneshwarpardhi/dialoguegraph/internal/config"
	"github.com/gyaneshwarpardhi/dialoguegraph/internal/editor"
)

func newServeCmd() *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the editor API for a dialogue document",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfgPath, _ := cmd.Flags().GetString("config")
			return serve(cfgPath, addr)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "HTTP listen address (overrides server.addr)")
	return cmd
}

func serve(cfgPath, addr string) error {
	// ── Load document ─────────────────────────────────────────────────────────
	loader, err := config.NewLoader(cfgPath)
	if err != nil {
		return err
	}
	doc := loader.Config()
	if err := config.Validate(doc); err != nil {
		return err
	}
	if addr == "" {
		addr = doc.Server.Addr
	}

	// ── Editing session ───────────────────────────────────────────────────────
	ed, err := editor.New(doc, slog.Default())
	if err != nil {
		return fmt.Errorf("build dialogue: %w", err)
	}
	snap := ed.Snapshot()
	slog.Info("dialogue loaded", "dialogue", snap.ID, "nodes", len(snap.Nodes), "roots", len(snap.Roots))

	// ── Hot-reload watcher ────────────────────────────────────────────────────
	ed.Follow(loader)
	stopWatch, err := loader.Watch()
	if err != nil {
		slog.Warn("config watcher unavailable (hot-reload disabled)", "err", err)
	} else {
		defer stopWatch()
	}

	// ── HTTP server ───────────────────────────────────────────────────────────
	srv := &http.Server{
		Addr:         addr,
		Handler:      api.New(ed, loader),
		ReadTimeout:  time.Duration(doc.Server.ReadTimeoutMs) * time.Millisecond,
		WriteTimeout: time.Duration(doc.Server.WriteTimeoutMs) * time.Millisecond,
		IdleTimeout:  60 * time.Second,
	}

	errC := make(chan error, 1)
	go func() {
		slog.Info("server starting", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errC <- err
		}
	}()

	// ── Graceful shutdown ─────────────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-errC:
		return fmt.Errorf("server error: %w", err)
	case <-quit:
	}
	slog.Info("shutting down…")

	shutCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	_ = srv.Shutdown(shutCtx)
	slog.Info("goodbye")
	return nil
}
