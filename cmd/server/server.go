package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/axellelanca/refcheck/cmd"
	"github.com/axellelanca/refcheck/internal/api"
	"github.com/axellelanca/refcheck/internal/logger"
	"github.com/axellelanca/refcheck/internal/repository"
)

var portFlag int

// ServeCmd exposes the status table of <file> over a small read-only JSON API.
var ServeCmd = &cobra.Command{
	Use:   "serve <file>",
	Short: "Serve the status table of <file> as JSON",
	Long: `Starts an HTTP server answering:
  GET /health
  GET /api/v1/links
  GET /api/v1/links/active
  GET /api/v1/links/:code
from the status table last written to <file> by check, browse or scrape.`,
	Args: cmd.RequireInputFile,
	RunE: func(c *cobra.Command, args []string) error {
		cfg := cmd.Cfg
		if c.Flags().Changed("port") {
			cfg.Server.Port = portFlag
		}

		linkRepo := repository.NewLinkRepository(afero.NewOsFs(), args[0], cfg.Report.SummaryFile)
		if _, err := linkRepo.Load(); err != nil {
			return err
		}

		if !cfg.Log.Development {
			gin.SetMode(gin.ReleaseMode)
		}
		router := gin.New()
		router.Use(gin.Recovery())
		api.SetupRoutes(router, linkRepo, cfg.Report.UnitValue, cmd.Log)

		serverAddr := fmt.Sprintf(":%d", cfg.Server.Port)
		srv := &http.Server{
			Addr:              serverAddr,
			Handler:           router,
			ReadHeaderTimeout: 5 * time.Second,
		}

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		errCh := make(chan error, 1)
		go func() {
			cmd.Log.Info("Starting report server", logger.String("addr", serverAddr), logger.String("file", args[0]))
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errCh <- err
			}
			close(errCh)
		}()

		select {
		case err := <-errCh:
			if err != nil {
				return fmt.Errorf("report server: %w", err)
			}
			return nil
		case <-ctx.Done():
		}

		cmd.Log.Info("Shutdown signal received, stopping report server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	},
}

func init() {
	ServeCmd.Flags().IntVar(&portFlag, "port", 8080, "Port to listen on (overrides server.port)")

	cmd.RootCmd.AddCommand(ServeCmd)
}
