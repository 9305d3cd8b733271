package memberremove

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/saraevns/group-expenses/internal/http/middlewarectx"
	"github.com/saraevns/group-expenses/internal/models"
	"github.com/saraevns/group-expenses/internal/services/group"
)

type GroupServiceMock struct {
	mock.Mock
}

func (m *GroupServiceMock) RemoveMember(ctx context.Context, groupUID, actorUID, memberUID string) (*models.Group, error) {
	args := m.Called(ctx, groupUID, actorUID, memberUID)
	g, _ := args.Get(0).(*models.Group)
	return g, args.Error(1)
}

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}

const (
	groupUID  = "0b5e2a50-96f5-4f3b-bb8e-8cb04a2bcb6c"
	memberUID = "9a0cfa6f-118c-4d35-9f8c-6a7b3b5f4748"
	actorUID  = "c6c7ff1c-32bb-4b91-b1f3-bc012fa2e70e"
)

func newRequest(actor string) *http.Request {
	req := httptest.NewRequest(http.MethodDelete, "/groups/"+groupUID+"/members/"+memberUID, nil)

	routeCtx := chi.NewRouteContext()
	routeCtx.URLParams.Add("groupUID", groupUID)
	routeCtx.URLParams.Add("userUID", memberUID)

	ctx := context.WithValue(req.Context(), chi.RouteCtxKey, routeCtx)
	ctx = context.WithValue(ctx, middleware.RequestIDKey, "reqid123")
	if actor != "" {
		ctx = context.WithValue(ctx, middlewarectx.User, actor)
	}
	return req.WithContext(ctx)
}

func TestMemberRemoveHandler_ServeHTTP(t *testing.T) {
	tests := []struct {
		name           string
		actor          string
		mockGroup      *models.Group
		mockErr        error
		skipMock       bool
		wantStatusCode int
		wantError      string
	}{
		{
			name:           "успешное удаление участника",
			actor:          actorUID,
			mockGroup:      &models.Group{UID: groupUID},
			wantStatusCode: http.StatusOK,
		},
		{
			name:           "пользователь не авторизован",
			actor:          "",
			skipMock:       true,
			wantStatusCode: http.StatusUnauthorized,
			wantError:      "unauthorized",
		},
		{
			name:           "группа не найдена",
			actor:          actorUID,
			mockErr:        group.ErrGroupNotFound,
			wantStatusCode: http.StatusNotFound,
			wantError:      "group not found",
		},
		{
			name:           "недостаточно прав",
			actor:          actorUID,
			mockErr:        group.ErrNotAdmin,
			wantStatusCode: http.StatusForbidden,
			wantError:      "insufficient permissions",
		},
		{
			name:           "последний администратор защищен",
			actor:          actorUID,
			mockErr:        group.ErrLastAdmin,
			wantStatusCode: http.StatusBadRequest,
			wantError:      "cannot remove the last admin",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			serviceMock := new(GroupServiceMock)
			handler := New(newNoopLogger(), serviceMock)

			if !tt.skipMock {
				serviceMock.On("RemoveMember", mock.Anything, groupUID, tt.actor, memberUID).
					Return(tt.mockGroup, tt.mockErr).Once()
			}

			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, newRequest(tt.actor))

			assert.Equal(t, tt.wantStatusCode, rec.Code)

			var got map[string]any
			assert.NoError(t, json.NewDecoder(rec.Body).Decode(&got))

			if tt.wantError != "" {
				assert.Equal(t, "Error", got["status"])
				assert.Equal(t, tt.wantError, got["error"])
				return
			}
			assert.Equal(t, "OK", got["status"])
			serviceMock.AssertExpectations(t)
		})
	}
}

func TestMemberRemoveHandler_InvalidUID(t *testing.T) {
	serviceMock := new(GroupServiceMock)
	handler := New(newNoopLogger(), serviceMock)

	req := httptest.NewRequest(http.MethodDelete, "/groups/not-a-uuid/members/"+memberUID, nil)
	routeCtx := chi.NewRouteContext()
	routeCtx.URLParams.Add("groupUID", "not-a-uuid")
	routeCtx.URLParams.Add("userUID", memberUID)
	ctx := context.WithValue(req.Context(), chi.RouteCtxKey, routeCtx)
	ctx = context.WithValue(ctx, middlewarectx.User, actorUID)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req.WithContext(ctx))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	serviceMock.AssertNotCalled(t, "RemoveMember")
}
