package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/hcallahan/scoutdeck/internal/api"
	"github.com/hcallahan/scoutdeck/internal/api/handlers"
)

// apiCmd starts the HTTP API server.
var apiCmd = &cobra.Command{
	Use:   "api",
	Short: "Start the API server",
	Long: `Start the REST API server.

Endpoints:
  GET  /health                 - Service and database health
  POST /api/pipeline/analyze   - Run one prospect evaluation cycle
  POST /api/pipeline/scan      - Run one market scan cycle
  GET  /api/prospects/top      - Latest scored prospects
  GET  /api/deals              - Stored deals for one user

Example:
  go run ./cmd/scoutdeck api
  go run ./cmd/scoutdeck api --port 8090`,
	RunE: runAPIServer,
}

var apiPort string

func init() {
	rootCmd.AddCommand(apiCmd)

	apiCmd.Flags().StringVar(&apiPort, "port", "", "API server port (overrides PORT)")
}

func runAPIServer(cmd *cobra.Command, args []string) error {
	app, err := newApp()
	if err != nil {
		return err
	}
	defer app.Close()

	if apiPort != "" {
		app.cfg.Port = apiPort
	}

	pipelineHandler := handlers.NewPipelineHandler(app.analyzer, app.scanner, app.log)
	prospectHandler := handlers.NewProspectHandler(app.prospectRepo, app.log)
	dealHandler := handlers.NewDealHandler(app.dealRepo, app.log)
	healthHandler := handlers.NewHealthHandler(app.db, app.log)

	router := api.NewRouter(pipelineHandler, prospectHandler, dealHandler, healthHandler, app.log)
	server := api.New(app.cfg, app.log, router)

	go func() {
		if err := server.Start(); err != nil {
			app.log.WithError(err).Fatal("Failed to start server")
		}
	}()

	fmt.Printf("Server running on http://localhost:%s\n", app.cfg.Port)
	fmt.Println("Press Ctrl+C to stop")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	return nil
}
