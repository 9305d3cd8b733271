// Package categorylist реализует HTTP-обработчик для получения допустимых
// категорий расходов группы.
package categorylist

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/google/uuid"

	"github.com/saraevns/group-expenses/internal/http/middlewarectx"
	"github.com/saraevns/group-expenses/internal/http/response"
	"github.com/saraevns/group-expenses/internal/lib/sl"
	"github.com/saraevns/group-expenses/internal/services/group"
)

// Handler управляет HTTP-запросами на получение категорий группы.
type Handler struct {
	log     *slog.Logger // Логгер для записи операций и ошибок
	service Service      // Сервис бизнес-логики групп
}

// Service описывает интерфейс бизнес-логики выборки категорий.
type Service interface {
	Categories(ctx context.Context, groupUID, userUID string) ([]string, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Категории группы
// @Description Возвращает объединенный список допустимых категорий группы без дубликатов. Доступно участникам.
// @Tags Groups
// @Produce  json
// @Param groupUID path string true "UID группы"
// @Success 200 {object} response.Response "Категории группы"
// @Failure 400 {object} response.ErrorResponse "Некорректный UID группы"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 403 {object} response.ErrorResponse "Пользователь не состоит в группе"
// @Failure 404 {object} response.ErrorResponse "Группа не найдена"
// @Security BearerAuth
// @Router /groups/{groupUID}/categories [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.group.categorylist"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	groupUID := chi.URLParam(r, "groupUID")
	if _, err := uuid.Parse(groupUID); err != nil {
		log.Error("invalid group uid", slog.String("group_uid", groupUID))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid group id"))
		return
	}

	userUID, ok := r.Context().Value(middlewarectx.User).(string)
	if !ok || userUID == "" {
		log.Error("user uid not found in context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}

	categories, err := h.service.Categories(r.Context(), groupUID, userUID)
	if err != nil {
		switch {
		case errors.Is(err, group.ErrGroupNotFound):
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("group not found"))
		case errors.Is(err, group.ErrNotMember):
			w.WriteHeader(http.StatusForbidden)
			render.JSON(w, r, response.Error("not a member of this group"))
		default:
			log.Error("failed to list categories", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error("could not list categories"))
			return
		}
		log.Error("list categories rejected", sl.Err(err))
		return
	}

	log.Info("categories listed", slog.String("group_uid", groupUID))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"categories": categories,
	}))
}
