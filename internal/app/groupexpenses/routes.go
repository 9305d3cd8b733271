// Package groupexpenses предоставляет маршруты для основного приложения.
package groupexpenses

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/saraevns/group-expenses/internal/config"
	"github.com/saraevns/group-expenses/internal/http/handlers/auth/login"
	"github.com/saraevns/group-expenses/internal/http/handlers/auth/me"
	"github.com/saraevns/group-expenses/internal/http/handlers/auth/refresh"
	"github.com/saraevns/group-expenses/internal/http/handlers/auth/register"
	"github.com/saraevns/group-expenses/internal/http/handlers/expense/expensecreate"
	"github.com/saraevns/group-expenses/internal/http/handlers/expense/expenselist"
	"github.com/saraevns/group-expenses/internal/http/handlers/expense/expensestats"
	"github.com/saraevns/group-expenses/internal/http/handlers/group/categoryadd"
	"github.com/saraevns/group-expenses/internal/http/handlers/group/categorylist"
	"github.com/saraevns/group-expenses/internal/http/handlers/group/create"
	"github.com/saraevns/group-expenses/internal/http/handlers/group/list"
	"github.com/saraevns/group-expenses/internal/http/handlers/group/memberadd"
	"github.com/saraevns/group-expenses/internal/http/handlers/group/memberpromote"
	"github.com/saraevns/group-expenses/internal/http/handlers/group/memberremove"
	"github.com/saraevns/group-expenses/internal/http/handlers/group/read"
	"github.com/saraevns/group-expenses/internal/http/handlers/health"
	"github.com/saraevns/group-expenses/internal/http/middlewarectx"
	authservice "github.com/saraevns/group-expenses/internal/services/auth"
	expenseservice "github.com/saraevns/group-expenses/internal/services/expense"
	groupservice "github.com/saraevns/group-expenses/internal/services/group"
)

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger, cfg *config.Config, authService *authservice.AuthService, groupService *groupservice.GroupService, expenseService *expenseservice.ExpenseService) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
		middlewarectx.CORSMiddleware(cfg.CORSOrigins),
	)

	r.Route("/api/v1", func(r chi.Router) {
		// Открытые конечные точки
		r.Post("/auth/register", register.New(logger, authService).ServeHTTP)
		r.Post("/auth/login", login.New(logger, authService).ServeHTTP)
		r.Post("/auth/refresh", refresh.New(logger, authService).ServeHTTP)
		r.Get("/health", health.New(logger).ServeHTTP)

		// Группа с JWT аутентификацией
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.JWTMiddleware(authService, logger))
			r.Use(middlewarectx.RateLimitMiddleware(logger))
			r.Get("/auth/me", me.New(logger, authService).ServeHTTP)
			r.Post("/groups", create.New(logger, groupService).ServeHTTP)
			r.Get("/groups", list.New(logger, groupService).ServeHTTP)
			r.Get("/groups/{groupUID}", read.New(logger, groupService).ServeHTTP)
			r.Post("/groups/{groupUID}/members", memberadd.New(logger, groupService).ServeHTTP)
			r.Patch("/groups/{groupUID}/members/{userUID}/promote", memberpromote.New(logger, groupService).ServeHTTP)
			r.Delete("/groups/{groupUID}/members/{userUID}", memberremove.New(logger, groupService).ServeHTTP)
			r.Get("/groups/{groupUID}/categories", categorylist.New(logger, groupService).ServeHTTP)
			r.Post("/groups/{groupUID}/categories", categoryadd.New(logger, groupService).ServeHTTP)
			r.Post("/groups/{groupUID}/expenses", expensecreate.New(logger, expenseService).ServeHTTP)
			r.Get("/groups/{groupUID}/expenses", expenselist.New(logger, expenseService).ServeHTTP)
			r.Get("/groups/{groupUID}/stats", expensestats.New(logger, expenseService).ServeHTTP)
		})
	})

	r.Handle("/metrics", promhttp.Handler())
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
