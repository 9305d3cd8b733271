// Package expensecreate реализует HTTP-обработчик для добавления расхода в группу.
//
// Handler принимает JSON-запрос с данными расхода, валидирует их, проверяет
// членство пользователя в группе и принадлежность категории к разрешенным,
// после чего сохраняет расход через сервис.
package expensecreate

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/saraevns/group-expenses/internal/http/middlewarectx"
	"github.com/saraevns/group-expenses/internal/http/response"
	"github.com/saraevns/group-expenses/internal/lib/sl"
	"github.com/saraevns/group-expenses/internal/models"
	"github.com/saraevns/group-expenses/internal/services/expense"
	"github.com/saraevns/group-expenses/internal/services/group"
)

// Handler управляет HTTP-запросами на добавление расходов.
type Handler struct {
	log      *slog.Logger        // Логгер для записи операций и ошибок
	service  Service             // Сервис бизнес-логики расходов
	validate *validator.Validate // Валидатор структуры входящих данных
}

// Service описывает интерфейс бизнес-логики добавления расхода.
type Service interface {
	Create(ctx context.Context, groupUID, userUID string, req models.DummyExpense) (*models.Expense, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Добавить расход
// @Description Добавляет расход в группу. Категория обязана входить в разрешенные для группы.
// @Tags Expenses
// @Accept  json
// @Produce  json
// @Param groupUID path string true "UID группы"
// @Param request body models.DummyExpense true "Данные расхода"
// @Success 201 {object} response.Response "Созданный расход"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON или запрещенная категория"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 403 {object} response.ErrorResponse "Пользователь не состоит в группе"
// @Failure 404 {object} response.ErrorResponse "Группа не найдена"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Security BearerAuth
// @Router /groups/{groupUID}/expenses [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.expense.create"

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

	var req models.DummyExpense
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}
	log.Info("request body decoded", slog.Any("request", req))

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusUnprocessableEntity)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}
	log.Info("all fields are validated")

	userUID, ok := r.Context().Value(middlewarectx.User).(string)
	if !ok || userUID == "" {
		log.Error("user uid not found in context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}

	result, err := h.service.Create(r.Context(), groupUID, userUID, req)
	if err != nil {
		switch {
		case errors.Is(err, group.ErrGroupNotFound):
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("group not found"))
		case errors.Is(err, group.ErrNotMember):
			w.WriteHeader(http.StatusForbidden)
			render.JSON(w, r, response.Error("not a member of this group"))
		case errors.Is(err, expense.ErrInvalidCategory):
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error(err.Error()))
		case errors.Is(err, expense.ErrInvalidDate):
			w.WriteHeader(http.StatusUnprocessableEntity)
			render.JSON(w, r, response.Error("date must be in YYYY-MM-DD format"))
		default:
			log.Error("failed to create expense", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error("could not create expense"))
			return
		}
		log.Error("create expense rejected", sl.Err(err))
		return
	}

	log.Info("expense created", slog.String("expense_uid", result.UID))
	w.WriteHeader(http.StatusCreated)
	render.JSON(w, r, response.StatusOKWithData(result))
}
