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

	"github.com/spf13/cobra"

	"github.com/ahsanfayaz52/notesapi/internal/config"
	"github.com/ahsanfayaz52/notesapi/internal/db"
	"github.com/ahsanfayaz52/notesapi/internal/handlers"
	"github.com/ahsanfayaz52/notesapi/internal/logger"
	"github.com/ahsanfayaz52/notesapi/internal/middleware"
	"github.com/ahsanfayaz52/notesapi/internal/store"
)

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		envFile  string
		port     string
		dbURI    string
		logLevel string
	)

	cmd := &cobra.Command{
		Use:          "notes-server",
		Short:        "Serve the notes HTTP API",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig(envFile)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}

			flags := cmd.Flags()
			if flags.Changed("port") {
				cfg.Port = port
			}
			if flags.Changed("db-uri") {
				cfg.DatabaseURI = dbURI
			}
			if flags.Changed("log-level") {
				cfg.LogLevel = logLevel
			}

			return run(cmd.Context(), cfg)
		},
	}

	cmd.Flags().StringVar(&envFile, "env-file", ".env", "dotenv file to load before reading the environment")
	cmd.Flags().StringVar(&port, "port", "", "port to listen on (overrides PORT)")
	cmd.Flags().StringVar(&dbURI, "db-uri", "", "database connection string (overrides DB_URI)")
	cmd.Flags().StringVar(&logLevel, "log-level", "", "log level (overrides LOG_LEVEL)")

	return cmd
}

func run(ctx context.Context, cfg *config.Config) error {
	log, err := logger.New().WithLevel(cfg.LogLevel).WithFormat(cfg.LogFormat).Make()
	if err != nil {
		return err
	}

	src, err := cfg.DatabaseSource()
	if err != nil {
		return err
	}

	dbConn, err := db.InitDB(ctx, src)
	if err != nil {
		return err
	}
	defer dbConn.Close()
	log.Info().Str("driver", src.Driver).Msg("database ready")

	noteStore := store.NewNoteStore(dbConn)
	router := handlers.NewRouter(handlers.NewNoteHandler(noteStore), handlers.HealthHandler(noteStore))

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           middleware.CORS(cfg.CORSOrigins)(middleware.Logging(log)(router)),
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", srv.Addr).Msg("starting server")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	log.Info().Msg("server stopped")
	return nil
}
