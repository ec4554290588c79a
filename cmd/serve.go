package cmd

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/yogeshramchandani7/cr360-backend/internal/server"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the CR360 analytics API server",
	Long:  `Starts the HTTP API server with the chat endpoint, WebSocket stream, session management, and Prometheus metrics.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if servePort != 0 {
			cfg.Server.Port = servePort
		}

		log, err := newLogger()
		if err != nil {
			return err
		}
		defer log.Sync()

		engine, db, err := buildEngine(cfg, log)
		if err != nil {
			return err
		}
		defer db.Close()

		srv := server.New(server.Config{
			Port:     cfg.Server.Port,
			AllowAll: cfg.Server.AllowAllOrigins,
		}, engine, log)

		errCh := make(chan error, 1)
		go func() {
			if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errCh <- err
			}
		}()

		stop := make(chan os.Signal, 1)
		signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

		select {
		case err := <-errCh:
			return err
		case sig := <-stop:
			log.Info("shutting down", zap.String("signal", sig.String()))
		}

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(ctx)
	},
}

func init() {
	serveCmd.Flags().IntVarP(&servePort, "port", "p", 0, "override the configured server port")
	rootCmd.AddCommand(serveCmd)
}
