// ABOUTME: CLI command for starting the dashboard HTTP API.
// ABOUTME: Runs the gin router until SIGINT/SIGTERM, then shuts down gracefully.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/harperreed/healthdash/internal/api"
	"github.com/harperreed/healthdash/internal/chat"
)

const shutdownTimeout = 5 * time.Second

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the dashboard HTTP API",
	Long: `Start the JSON API used by the web dashboard.

ENDPOINTS:

  GET    /ping                        Health check
  GET    /api/metrics                 Metrics, selection and time range
  GET    /api/metrics/:id             One metric with filtered history
  GET    /api/tasks?view=today        Tasks in a view
  POST   /api/tasks                   Create a task
  PUT    /api/tasks/:id               Edit a task
  DELETE /api/tasks/:id               Delete a task
  POST   /api/tasks/:id/toggle        Toggle completion (undo window applies)
  POST   /api/tasks/:id/undo          Undo a pending toggle
  GET    /api/preferences             Selected metrics and time range
  PUT    /api/preferences             Update preferences
  GET    /api/achievements            Achievements
  POST   /api/chat                    Send a chat message
  POST   /api/chat/create             Start an empty conversation
  GET    /api/chat/:conversationId    Conversation history
  DELETE /api/chat/:conversationId    Delete a conversation

The address comes from --addr, then HEALTHDASH_LISTEN_ADDR, then :8080.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		addr := serveAddr
		if addr == "" {
			addr = cfg.GetListenAddr()
		}
		if logger.GetLevel() > log.DebugLevel {
			gin.SetMode(gin.ReleaseMode)
		}

		chatService := chat.NewService(chat.NewMemoryRepository(), nil)
		srv := &http.Server{
			Addr:              addr,
			Handler:           api.NewAPI(dash, chatService, logger).Router(),
			ReadHeaderTimeout: 10 * time.Second,
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return runServer(ctx, srv)
	},
}

// runServer serves until ctx ends, then drains connections.
func runServer(ctx context.Context, srv *http.Server) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()
	logger.Info("listening", "addr", srv.Addr)

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown failed: %w", err)
	}
	return nil
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (default from config, :8080)")
	rootCmd.AddCommand(serveCmd)
}
