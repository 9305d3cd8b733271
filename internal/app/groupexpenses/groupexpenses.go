// Package groupexpenses собирает HTTP-приложение: хранилище, миграции,
// сервисы и маршруты.
package groupexpenses

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"

	"github.com/saraevns/group-expenses/internal/config"
	"github.com/saraevns/group-expenses/internal/lib/jwt"
	"github.com/saraevns/group-expenses/internal/migrations"
	authservice "github.com/saraevns/group-expenses/internal/services/auth"
	expenseservice "github.com/saraevns/group-expenses/internal/services/expense"
	groupservice "github.com/saraevns/group-expenses/internal/services/group"
	"github.com/saraevns/group-expenses/internal/storage/repository"
)

type App struct {
	server *http.Server
	logger *slog.Logger
	db     *repository.Storage
}

func New(_ context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	db, err := repository.New(cfg.StorageConnectionString)
	if err != nil {
		return nil, err
	}
	if err = migrations.Run(db.DB, "./migrations"); err != nil {
		return nil, err
	}

	jwtMaker := jwt.NewMaker(cfg.JWTSecretKey, cfg.AccessTokenTTL, cfg.RefreshTokenTTL)

	authService := authservice.NewAuthService(db, jwtMaker, cfg.BcryptCost)
	groupService := groupservice.NewGroupService(db, db)
	expenseService := expenseservice.NewExpenseService(db, groupService)

	router := chi.NewRouter()

	RegisterRoutes(router, logger, cfg, authService, groupService, expenseService)

	srv := &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return &App{
		server: srv,
		logger: logger,
		db:     db,
	}, nil
}

func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server starting on", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		err := a.server.Shutdown(timeoutCtx)
		a.db.DB.Close()
		return err
	}
}
