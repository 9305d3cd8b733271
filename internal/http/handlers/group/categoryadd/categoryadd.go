// Package categoryadd реализует HTTP-обработчик для добавления
// пользовательской категории расходов в группу.
package categoryadd

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
	"github.com/saraevns/group-expenses/internal/services/group"
)

// Handler управляет HTTP-запросами на добавление категорий.
type Handler struct {
	log      *slog.Logger        // Логгер для записи операций и ошибок
	service  Service             // Сервис бизнес-логики групп
	validate *validator.Validate // Валидатор структуры входящих данных
}

// Service описывает интерфейс бизнес-логики добавления категории.
type Service interface {
	AddCategory(ctx context.Context, groupUID, actorUID, category string) (*models.Group, error)
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
// @Summary Добавить пользовательскую категорию
// @Description Добавляет категорию расходов в группу. Доступно только администраторам.
// @Tags Groups
// @Accept  json
// @Produce  json
// @Param groupUID path string true "UID группы"
// @Param request body models.DummyAddCategory true "Название категории"
// @Success 201 {object} response.Response "Обновленная группа"
// @Failure 400 {object} response.ErrorResponse "Категория уже существует или превышен лимит"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 403 {object} response.ErrorResponse "Недостаточно прав"
// @Failure 404 {object} response.ErrorResponse "Группа не найдена"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Security BearerAuth
// @Router /groups/{groupUID}/categories [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.group.categoryadd"

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

	var req models.DummyAddCategory
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}

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

	result, err := h.service.AddCategory(r.Context(), groupUID, userUID, req.Category)
	if err != nil {
		switch {
		case errors.Is(err, group.ErrGroupNotFound):
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("group not found"))
		case errors.Is(err, group.ErrNotMember), errors.Is(err, group.ErrNotAdmin):
			w.WriteHeader(http.StatusForbidden)
			render.JSON(w, r, response.Error("admin role required"))
		case errors.Is(err, group.ErrCategoryExists):
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error("category already exists"))
		case errors.Is(err, group.ErrTooManyCategories):
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error("custom category limit reached"))
		default:
			log.Error("failed to add category", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error("could not add category"))
			return
		}
		log.Error("add category rejected", sl.Err(err))
		return
	}

	log.Info("category added", slog.String("group_uid", groupUID), slog.String("category", req.Category))
	w.WriteHeader(http.StatusCreated)
	render.JSON(w, r, response.StatusOKWithData(result))
}
