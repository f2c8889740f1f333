package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/pdiddy/legifrance-proxy/internal/dispatch"
	"github.com/pdiddy/legifrance-proxy/internal/history"
	"github.com/pdiddy/legifrance-proxy/internal/piste"
	"github.com/pdiddy/legifrance-proxy/internal/plan"
	"github.com/pdiddy/legifrance-proxy/internal/resolve"
	"github.com/pdiddy/legifrance-proxy/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP proxy service",
	Long: `Serve exposes the resolver over HTTP: /resolve/code-article for direct
lookups, /resolve/dispatch for pre-classified intent payloads, /plan for
the LLM extraction-plan pipeline, plus /health and /metrics.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
			cfg.Server.Addr = addr
		}

		log, err := zap.NewProduction()
		if err != nil {
			return fmt.Errorf("creating logger: %w", err)
		}
		defer log.Sync()

		client, err := piste.NewClient(cfg.Piste)
		if err != nil {
			return err
		}
		defer client.Close()

		resolver := resolve.NewResolver(client)
		dispatcher := dispatch.New(resolver)

		var planner *plan.Planner
		if cfg.Plan.APIKey != "" {
			llm, err := plan.NewGemini(cmd.Context(), cfg.Plan)
			if err != nil {
				return err
			}
			planner = plan.NewPlanner(llm, cfg.Plan.MaxRetries)
		} else {
			log.Warn("no Gemini API key configured; /plan is disabled")
		}

		var hist *history.Store
		if cfg.Server.HistoryPath != "" {
			hist, err = history.Open(cfg.Server.HistoryPath)
			if err != nil {
				return err
			}
			defer hist.Close()
		}

		srv := server.NewHTTPServer(cfg.Server.Addr, server.New(log, resolver, dispatcher, planner, hist).Router())

		log.Info("starting legifrance-proxy", zap.String("addr", cfg.Server.Addr))
		errCh := make(chan error, 1)
		go func() {
			if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				errCh <- err
			}
		}()

		quit := make(chan os.Signal, 1)
		signal.Notify(quit, os.Interrupt)

		select {
		case err := <-errCh:
			return err
		case <-quit:
		}

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			return fmt.Errorf("graceful shutdown: %w", err)
		}
		log.Info("stopped")
		return nil
	},
}

func init() {
	serveCmd.Flags().String("addr", "", "listen address (overrides config)")

	rootCmd.AddCommand(serveCmd)
}
