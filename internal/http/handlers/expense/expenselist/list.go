// Package expenselist реализует HTTP-обработчик для постраничной выборки
// расходов группы.
//
// Параметры запроса: page (номер страницы от 1), limit (размер страницы),
// sort_order (-1 — от новых к старым, 1 — от старых к новым).
package expenselist

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/google/uuid"

	"github.com/saraevns/group-expenses/internal/http/middlewarectx"
	"github.com/saraevns/group-expenses/internal/http/response"
	"github.com/saraevns/group-expenses/internal/lib/sl"
	"github.com/saraevns/group-expenses/internal/models"
	"github.com/saraevns/group-expenses/internal/services/expense"
	"github.com/saraevns/group-expenses/internal/services/group"
)

// Handler управляет HTTP-запросами на выборку расходов.
type Handler struct {
	log     *slog.Logger // Логгер для записи операций и ошибок
	service Service      // Сервис бизнес-логики расходов
}

// Service описывает интерфейс бизнес-логики постраничной выборки расходов.
type Service interface {
	List(ctx context.Context, groupUID, userUID string, page, limit, sortOrder int) (*models.ExpensePage, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Список расходов группы
// @Description Возвращает страницу расходов группы, отсортированных по дате.
// @Tags Expenses
// @Produce  json
// @Param groupUID path string true "UID группы"
// @Param page query int false "Номер страницы, по умолчанию 1"
// @Param limit query int false "Размер страницы, по умолчанию 20"
// @Param sort_order query int false "-1 — от новых к старым, 1 — от старых к новым"
// @Success 200 {object} response.Response "Страница расходов"
// @Failure 400 {object} response.ErrorResponse "Некорректный UID группы"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 403 {object} response.ErrorResponse "Пользователь не состоит в группе"
// @Failure 404 {object} response.ErrorResponse "Группа не найдена"
// @Security BearerAuth
// @Router /groups/{groupUID}/expenses [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.expense.list"

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

	page := queryInt(r, "page", expense.DefaultPage)
	limit := queryInt(r, "limit", expense.DefaultLimit)
	sortOrder := queryInt(r, "sort_order", -1)

	result, err := h.service.List(r.Context(), groupUID, userUID, page, limit, sortOrder)
	if err != nil {
		switch {
		case errors.Is(err, group.ErrGroupNotFound):
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("group not found"))
		case errors.Is(err, group.ErrNotMember):
			w.WriteHeader(http.StatusForbidden)
			render.JSON(w, r, response.Error("not a member of this group"))
		default:
			log.Error("failed to list expenses", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error("could not list expenses"))
			return
		}
		log.Error("list expenses rejected", sl.Err(err))
		return
	}

	log.Info("expenses listed",
		slog.String("group_uid", groupUID),
		slog.Int("total", result.Total),
		slog.Int("page", result.Page))
	render.JSON(w, r, response.StatusOKWithData(result))
}

func queryInt(r *http.Request, name string, def int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return v
}
