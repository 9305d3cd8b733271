// Package memberremove реализует HTTP-обработчик для удаления участника из группы.
//
// Удаление доступно только администраторам группы. Удаление последнего
// администратора запрещено.
package memberremove

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

// Handler управляет HTTP-запросами на удаление участников.
type Handler struct {
	log     *slog.Logger // Логгер для записи операций и ошибок
	service Service      // Сервис бизнес-логики групп
}

// Service описывает интерфейс бизнес-логики удаления участника.
type Service interface {
	RemoveMember(ctx context.Context, groupUID, actorUID, memberUID string) (*models.Group, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Удалить участника из группы
// @Description Удаляет участника группы. Доступно только администраторам. Последний администратор защищен от удаления.
// @Tags Groups
// @Produce  json
// @Param groupUID path string true "UID группы"
// @Param userUID path string true "UID участника"
// @Success 200 {object} response.Response "Обновленная группа"
// @Failure 400 {object} response.ErrorResponse "Некорректный UID или последний администратор"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 403 {object} response.ErrorResponse "Недостаточно прав"
// @Failure 404 {object} response.ErrorResponse "Группа или участник не найдены"
// @Security BearerAuth
// @Router /groups/{groupUID}/members/{userUID} [delete]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.group.memberremove"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	groupUID := chi.URLParam(r, "groupUID")
	memberUID := chi.URLParam(r, "userUID")
	if _, err := uuid.Parse(groupUID); err != nil {
		log.Error("invalid group uid", slog.String("group_uid", groupUID))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid group id"))
		return
	}
	if _, err := uuid.Parse(memberUID); err != nil {
		log.Error("invalid member uid", slog.String("member_uid", memberUID))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid user id"))
		return
	}

	userUID, ok := r.Context().Value(middlewarectx.User).(string)
	if !ok || userUID == "" {
		log.Error("user uid not found in context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}

	result, err := h.service.RemoveMember(r.Context(), groupUID, userUID, memberUID)
	if err != nil {
		switch {
		case errors.Is(err, group.ErrGroupNotFound):
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("group not found"))
		case errors.Is(err, group.ErrMemberNotFound):
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("member not found"))
		case errors.Is(err, group.ErrNotMember), errors.Is(err, group.ErrNotAdmin):
			w.WriteHeader(http.StatusForbidden)
			render.JSON(w, r, response.Error("insufficient permissions"))
		case errors.Is(err, group.ErrLastAdmin):
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error("cannot remove the last admin"))
		default:
			log.Error("failed to remove member", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error("could not remove member"))
			return
		}
		log.Error("remove member rejected", sl.Err(err))
		return
	}

	log.Info("member removed", slog.String("group_uid", groupUID), slog.String("member_uid", memberUID))
	render.JSON(w, r, response.StatusOKWithData(result))
}
