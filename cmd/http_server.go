package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"admin-dashboard/internal"
	"admin-dashboard/internal/auth"
	authJSONStore "admin-dashboard/internal/auth/jsonstore"
	"admin-dashboard/internal/record"
	"admin-dashboard/internal/store"
	"admin-dashboard/internal/transport/rest"
	"admin-dashboard/internal/user"
	userJSONStore "admin-dashboard/internal/user/jsonstore"
	"admin-dashboard/pkg/logger"

	"github.com/go-chi/chi"
	"github.com/spf13/cobra"
)

var httpServerCmd = &cobra.Command{
	Use:   "server",
	Short: "Start HTTP server",
	Long:  `Start the HTTP server to handle API requests`,
	Run: func(cmd *cobra.Command, args []string) {
		startHTTPServer()
	},
}

type Dependencies struct {
	Config        *internal.Config
	Store         *store.DocumentStore
	Router        *chi.Mux
	AuthHandler   *auth.Handler
	UserHandler   *user.Handler
	RecordHandler *record.Handler
	Logger        *slog.Logger
}

func startHTTPServer() {
	deps, err := initializeDependencies()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize dependencies: %v\n", err)
		os.Exit(1)
	}

	rest.RegisterAllRoutes(
		deps.Router,
		deps.Store,
		deps.AuthHandler,
		deps.UserHandler,
		deps.RecordHandler,
		deps.Config.Server.AllowedOrigins,
		deps.Logger,
	)

	addr := fmt.Sprintf(":%d", deps.Config.Server.Port)
	slog.Info("Starting HTTP server", "address", addr)

	server := &http.Server{
		Addr:              addr,
		Handler:           deps.Router,
		ReadHeaderTimeout: deps.Config.Server.ReadHeaderTimeout,
		ReadTimeout:       deps.Config.Server.ReadTimeout,
		WriteTimeout:      deps.Config.Server.WriteTimeout,
		IdleTimeout:       deps.Config.Server.IdleTimeout,
	}

	// Signal handling for graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	serverErrChan := make(chan error, 1)
	go func() {
		serverErrChan <- server.ListenAndServe()
	}()

	select {
	case sig := <-sigChan:
		slog.Info("Received signal, shutting down...", "signal", sig)
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			slog.Error("Server shutdown error", "error", err)
		}
	case err := <-serverErrChan:
		if err != nil && err != http.ErrServerClosed {
			slog.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}

	slog.Info("Server stopped")
}

func initializeDependencies() (*Dependencies, error) {
	config, err := loadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger.Init(config.Observability.Logging.Level, config.Observability.Logging.Format)
	lg := logger.LoggerWrapper()

	docStore := store.NewDocumentStore(config.Store.Path)
	if err := docStore.Ping(); err != nil {
		return nil, fmt.Errorf("failed to open document store: %w", err)
	}

	tokenGen := auth.NewJWTTokenGenerator(
		config.Security.JWTSecret,
		config.Security.TokenDuration,
	)

	authService := auth.NewService(authJSONStore.NewRepository(docStore), tokenGen, config.Security.BCryptCost)
	userService := user.NewService(userJSONStore.NewRepository(docStore))

	return &Dependencies{
		Config:        config,
		Store:         docStore,
		Router:        chi.NewRouter(),
		AuthHandler:   auth.NewHandler(authService),
		UserHandler:   user.NewHandler(userService),
		RecordHandler: record.NewHandler(docStore),
		Logger:        lg,
	}, nil
}
