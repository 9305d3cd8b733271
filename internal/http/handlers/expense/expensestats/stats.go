// Package expensestats реализует HTTP-обработчик для получения агрегированной
// статистики расходов группы: общая сумма, разбивка по категориям,
// по участникам и по месяцам.
package expensestats

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
	"github.com/saraevns/group-expenses/internal/models"
	"github.com/saraevns/group-expenses/internal/services/group"
)

// Handler управляет HTTP-запросами на получение статистики расходов.
type Handler struct {
	log     *slog.Logger // Логгер для записи операций и ошибок
	service Service      // Сервис бизнес-логики расходов
}

// Service описывает интерфейс бизнес-логики агрегации расходов.
type Service interface {
	Stats(ctx context.Context, groupUID, userUID string) (*models.Stats, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Статистика расходов группы
// @Description Возвращает общую сумму и разбивку расходов по категориям, участникам и месяцам.
// @Tags Expenses
// @Produce  json
// @Param groupUID path string true "UID группы"
// @Success 200 {object} response.Response "Статистика расходов"
// @Failure 400 {object} response.ErrorResponse "Некорректный UID группы"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 403 {object} response.ErrorResponse "Пользователь не состоит в группе"
// @Failure 404 {object} response.ErrorResponse "Группа не найдена"
// @Security BearerAuth
// @Router /groups/{groupUID}/stats [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.expense.stats"

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

	stats, err := h.service.Stats(r.Context(), groupUID, userUID)
	if err != nil {
		switch {
		case errors.Is(err, group.ErrGroupNotFound):
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("group not found"))
		case errors.Is(err, group.ErrNotMember):
			w.WriteHeader(http.StatusForbidden)
			render.JSON(w, r, response.Error("not a member of this group"))
		default:
			log.Error("failed to get stats", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error("could not get stats"))
			return
		}
		log.Error("stats rejected", sl.Err(err))
		return
	}

	log.Info("stats calculated", slog.String("group_uid", groupUID))
	render.JSON(w, r, response.StatusOKWithData(stats))
}
