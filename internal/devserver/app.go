// Package devserver assembles and runs the development backend: the REST
// API the client talks to, backed by an in-memory or Postgres user store.
package devserver

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/creatorlink/creatorlink/internal/devserver/avatars"
	"github.com/creatorlink/creatorlink/internal/devserver/config"
	"github.com/creatorlink/creatorlink/internal/devserver/google"
	"github.com/creatorlink/creatorlink/internal/devserver/httpapi"
	"github.com/creatorlink/creatorlink/internal/devserver/users"
	"github.com/creatorlink/creatorlink/internal/logging"
)

type App struct {
	config  *config.Config
	logger  logging.Logger
	handler *httpapi.Handler
	closeDB func() error
}

func NewApp(c *config.Config) (*App, error) {
	logger := logging.NewJSONLogger(os.Stdout)

	var repo users.Repository
	closeDB := func() error { return nil }
	if c.DatabaseDSN != "" {
		db, err := users.InitPostgres(context.Background(), c.DatabaseDSN)
		if err != nil {
			return nil, fmt.Errorf("db init error: %w", err)
		}
		repo = users.NewPostgresRepository(db)
		closeDB = db.Close
	} else {
		logger.Info(context.Background(), "no database DSN configured, using in-memory user store")
		repo = users.NewMemoryRepository()
	}

	userService := users.NewService(repo, []byte(c.SecretKey), c.AccessTokenValidityDuration)
	handler := httpapi.New(userService, google.NewExchanger(c), avatars.NewService(c), logger)

	return &App{config: c, logger: logger, handler: handler, closeDB: closeDB}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) Run(ctx context.Context) {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...", "addr", app.config.EndpointAddr)

	app.initSignalHandler(cancelFunc)

	srv := &http.Server{
		Addr:    app.config.EndpointAddr,
		Handler: app.handler.Routes(),
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, release := context.WithTimeout(context.Background(), 5*time.Second)
		defer release()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			app.logger.Error(ctx, "shutdown error", "error", err)
		}
		<-errCh
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			app.logger.Error(ctx, "server error", "error", err)
		}
	}

	if err := app.closeDB(); err != nil {
		app.logger.Error(ctx, "closing database", "error", err)
	}
}
