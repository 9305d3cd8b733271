// Package list реализует HTTP-обработчик для получения списка групп
// текущего пользователя.
package list

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/saraevns/group-expenses/internal/http/middlewarectx"
	"github.com/saraevns/group-expenses/internal/http/response"
	"github.com/saraevns/group-expenses/internal/lib/sl"
	"github.com/saraevns/group-expenses/internal/models"
)

// Handler управляет HTTP-запросами на получение списка групп.
type Handler struct {
	log     *slog.Logger // Логгер для записи операций и ошибок
	service Service      // Сервис бизнес-логики групп
}

// Service описывает интерфейс бизнес-логики выборки групп пользователя.
type Service interface {
	ListForUser(ctx context.Context, userUID string) ([]*models.Group, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Список групп пользователя
// @Description Возвращает все группы, в которых состоит текущий пользователь.
// @Tags Groups
// @Produce  json
// @Success 200 {object} response.Response "Список групп"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Security BearerAuth
// @Router /groups [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.group.list"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	userUID, ok := r.Context().Value(middlewarectx.User).(string)
	if !ok || userUID == "" {
		log.Error("user uid not found in context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}

	groups, err := h.service.ListForUser(r.Context(), userUID)
	if err != nil {
		log.Error("failed to list groups", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not list groups"))
		return
	}
	if groups == nil {
		groups = []*models.Group{}
	}

	log.Info("groups listed", slog.Int("count", len(groups)))
	render.JSON(w, r, response.StatusOKWithData(groups))
}
