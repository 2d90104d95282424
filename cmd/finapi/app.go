package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/nordveil/finapi/internal/db"
	"github.com/nordveil/finapi/internal/handlers"
	"github.com/nordveil/finapi/internal/logger"
	"github.com/nordveil/finapi/internal/repository"
	"github.com/nordveil/finapi/internal/repository/memory"
	"github.com/nordveil/finapi/internal/repository/postgres"
	"github.com/nordveil/finapi/internal/service/auth"
	"github.com/nordveil/finapi/internal/service/auth/tokenmanager"
	"github.com/nordveil/finapi/internal/service/statement"
	"github.com/nordveil/finapi/internal/service/user"
)

type ServerApp struct {
	ListenAddr string
	Handler    http.Handler
}

func NewServerApp(ctx context.Context, c *Config) (*ServerApp, error) {
	// Initialize logger
	logger, err := logger.New(c.Environment, c.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("error while initializing logger: %w", err)
	}

	if c.SecretKey == "" {
		return nil, errors.New("secret key must be set, generate one with cmd/gensecret")
	}

	storage, err := newStorage(ctx, c, logger)
	if err != nil {
		return nil, err
	}

	// Initialize services
	tokenManager, err := tokenmanager.New(tokenmanager.Config{SecretKey: c.SecretKey})
	if err != nil {
		return nil, fmt.Errorf("error while creating token manager. Err: %w", err)
	}
	userService := user.NewService(user.DefaultHasher, storage)
	authService, err := auth.NewService(tokenManager, userService)
	if err != nil {
		return nil, fmt.Errorf("error while creating auth service. Err: %w", err)
	}
	statementService := statement.NewService(storage)
	statementQuery := statement.NewQuery(storage)

	mux := handlers.NewRouter(
		authService,
		statementService,
		statementQuery,
		logger,
	)

	return &ServerApp{
		ListenAddr: c.ListenAddr,
		Handler:    mux,
	}, nil
}

const (
	storageMemory   = "memory"
	storagePostgres = "postgres"
)

// newStorage picks the backend: explicit STORAGE option wins, otherwise
// postgres when DSN is set and in-memory when it is not
func newStorage(ctx context.Context, c *Config, logger logger.Logger) (repository.Storage, error) {
	backend := c.Storage
	if backend == "" {
		backend = storageMemory
		if c.DatabaseDSN != "" {
			backend = storagePostgres
		}
	}

	switch backend {
	case storageMemory:
		logger.Warn("Using in-memory storage: all data is lost on restart")
		return memory.NewStorage(), nil
	case storagePostgres:
		if c.DatabaseDSN == "" {
			return nil, errors.New("postgres storage requires database DSN to be set")
		}
		pool, err := db.ConnectAndMigrate(ctx, c.DatabaseDSN)
		if err != nil {
			return nil, fmt.Errorf("error while connecting to db. Err: %w", err)
		}
		return postgres.NewStorage(pool), nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q, want %q or %q", c.Storage, storageMemory, storagePostgres)
	}
}

// Run starts http server and closes gracefully on context cancellation
func (s *ServerApp) Run(ctx context.Context) error {
	httpServer := &http.Server{
		Addr:    s.ListenAddr,
		Handler: s.Handler,
	}

	idleConnsClosed := make(chan struct{})
	srvCtx, srvCtxCancel := context.WithCancel(ctx)
	defer srvCtxCancel()

	go func() {
		<-srvCtx.Done()

		timeoutCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := httpServer.Shutdown(timeoutCtx); err == context.DeadlineExceeded {
			slog.Error("HTTP server shutdown timeout exceeded, forcing shutdown...")
		}
		slog.Info("HTTP server stopped")
		close(idleConnsClosed)
	}()

	// Listen and serve until context is cancelled; then close gracefully connections
	slog.Info("Starting server", "address", s.ListenAddr)
	err := httpServer.ListenAndServe()
	srvCtxCancel()
	<-idleConnsClosed

	return err
}
