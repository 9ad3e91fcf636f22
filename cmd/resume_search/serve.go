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

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/resumematcher/resume-search/api"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Index the corpus and serve the HTTP API",
	Long: `Loads the corpus at startup and serves the HTTP API until SIGINT or SIGTERM.

A corpus that cannot be loaded at startup is logged; the server still starts
and answers searches with 503 until a reload succeeds.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := newApp(ctx, cfg, os.Stdout)
	if err != nil {
		return err
	}
	defer a.close()

	if _, err := a.searcher.Load(ctx, cfg.Corpus.Dir); err != nil {
		slog.Error("initial corpus load failed; serving without an index", "directory", cfg.Corpus.Dir, "error", err)
	}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	api.SetupRoutes(router, api.Dependencies{
		Engine:         a.searcher,
		Reloader:       a.engine,
		Jobs:           a.engine.GetJobManager(),
		Documents:      a.engine,
		Analytics:      a.analytics,
		Metrics:        a.metrics,
		CorpusDir:      cfg.Corpus.Dir,
		ReloadRoot:     cfg.Corpus.ReloadRoot,
		AllowedOrigins: cfg.Server.AllowedOrigins,
	})

	server := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		<-ctx.Done()
		slog.Info("shutdown signal received")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Error("server shutdown error", "error", err)
		}
	}()

	slog.Info("server starting", "addr", server.Addr, "corpus", cfg.Corpus.Dir)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server error: %w", err)
	}
	slog.Info("server stopped")
	return nil
}
