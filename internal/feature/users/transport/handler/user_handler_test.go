package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"user_backend/internal/feature/auth/domain"
	"user_backend/internal/feature/auth/domain/entity"
)

// mockUserUsecase is a mock implementation of the UserUsecase interface.
type mockUserUsecase struct {
	ListFunc   func(ctx context.Context) ([]entity.PublicUser, error)
	GetFunc    func(ctx context.Context, id uuid.UUID) (*entity.PublicUser, error)
	UpdateFunc func(ctx context.Context, id uuid.UUID, upd entity.UserUpdate) (*entity.PublicUser, error)
	DeleteFunc func(ctx context.Context, id uuid.UUID) error
}

func (m *mockUserUsecase) List(ctx context.Context) ([]entity.PublicUser, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx)
	}
	return nil, nil
}

func (m *mockUserUsecase) Get(ctx context.Context, id uuid.UUID) (*entity.PublicUser, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, id)
	}
	return nil, domain.ErrUserNotFound
}

func (m *mockUserUsecase) Update(ctx context.Context, id uuid.UUID, upd entity.UserUpdate) (*entity.PublicUser, error) {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, id, upd)
	}
	return nil, domain.ErrUserNotFound
}

func (m *mockUserUsecase) Delete(ctx context.Context, id uuid.UUID) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return domain.ErrUserNotFound
}

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	m.Run()
}

func newRouter(h *UserHandler) *gin.Engine {
	router := gin.New()
	router.GET("/users", h.List)
	router.GET("/users/:id", h.Get)
	router.PUT("/users/:id", h.Update)
	router.DELETE("/users/:id", h.Delete)
	return router
}

func serve(router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

var ada = entity.PublicUser{
	ID:        uuid.MustParse("0b6c1f0e-3f3a-4c1e-8a55-1d2a4f6b7c8d"),
	Email:     "ada@example.com",
	FirstName: "Ada",
	LastName:  "Lovelace",
	CreatedAt: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
	UpdatedAt: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
}

func TestUserHandler_List(t *testing.T) {
	t.Parallel()

	t.Run("returns users", func(t *testing.T) {
		t.Parallel()

		router := newRouter(NewUserHandler(&mockUserUsecase{
			ListFunc: func(context.Context) ([]entity.PublicUser, error) {
				return []entity.PublicUser{ada}, nil
			},
		}))

		w := serve(router, http.MethodGet, "/users", "")

		assert.Equal(t, http.StatusOK, w.Code)
		var body []map[string]interface{}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		require.Len(t, body, 1)
		assert.Equal(t, "ada@example.com", body[0]["email"])
		assert.NotContains(t, body[0], "passwordHash")
		assert.NotContains(t, body[0], "refreshTokenHash")
	})

	t.Run("empty list is an array", func(t *testing.T) {
		t.Parallel()

		w := serve(newRouter(NewUserHandler(&mockUserUsecase{})), http.MethodGet, "/users", "")

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `[]`, w.Body.String())
	})

	t.Run("store failure", func(t *testing.T) {
		t.Parallel()

		router := newRouter(NewUserHandler(&mockUserUsecase{
			ListFunc: func(context.Context) ([]entity.PublicUser, error) {
				return nil, errors.New("connection refused")
			},
		}))

		w := serve(router, http.MethodGet, "/users", "")

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.JSONEq(t, `{"error":"internal server error"}`, w.Body.String())
	})
}

func TestUserHandler_Get(t *testing.T) {
	t.Parallel()

	router := newRouter(NewUserHandler(&mockUserUsecase{
		GetFunc: func(_ context.Context, id uuid.UUID) (*entity.PublicUser, error) {
			if id == ada.ID {
				u := ada
				return &u, nil
			}
			return nil, domain.ErrUserNotFound
		},
	}))

	tests := []struct {
		name           string
		path           string
		expectedStatus int
	}{
		{name: "existing user", path: "/users/" + ada.ID.String(), expectedStatus: http.StatusOK},
		{name: "unknown user", path: "/users/" + uuid.NewString(), expectedStatus: http.StatusNotFound},
		{name: "malformed id", path: "/users/not-a-uuid", expectedStatus: http.StatusNotFound},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			w := serve(router, http.MethodGet, tt.path, "")

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedStatus == http.StatusNotFound {
				assert.JSONEq(t, `{"error":"user not found"}`, w.Body.String())
			}
		})
	}
}

func TestUserHandler_Update(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name           string
		body           string
		updateFunc     func(ctx context.Context, id uuid.UUID, upd entity.UserUpdate) (*entity.PublicUser, error)
		expectedStatus int
		expectedError  string
	}{
		{
			name: "partial update",
			body: `{"firstName":"Augusta"}`,
			updateFunc: func(_ context.Context, _ uuid.UUID, upd entity.UserUpdate) (*entity.PublicUser, error) {
				if upd.FirstName == nil || upd.Email != nil || upd.LastName != nil {
					return nil, errors.New("unexpected update")
				}
				u := ada
				u.FirstName = *upd.FirstName
				return &u, nil
			},
			expectedStatus: http.StatusOK,
		},
		{
			name: "duplicate email",
			body: `{"email":"taken@example.com"}`,
			updateFunc: func(context.Context, uuid.UUID, entity.UserUpdate) (*entity.PublicUser, error) {
				return nil, domain.ErrDuplicateEmail
			},
			expectedStatus: http.StatusBadRequest,
			expectedError:  "email is already registered",
		},
		{
			name:           "malformed JSON",
			body:           `{"firstName":`,
			expectedStatus: http.StatusBadRequest,
			expectedError:  "invalid request",
		},
		{
			name:           "unknown user",
			body:           `{"lastName":"King"}`,
			expectedStatus: http.StatusNotFound,
			expectedError:  "user not found",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			router := newRouter(NewUserHandler(&mockUserUsecase{UpdateFunc: tt.updateFunc}))

			w := serve(router, http.MethodPut, "/users/"+ada.ID.String(), tt.body)

			assert.Equal(t, tt.expectedStatus, w.Code)
			var body map[string]interface{}
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			if tt.expectedError != "" {
				assert.Equal(t, tt.expectedError, body["error"])
			} else {
				assert.Equal(t, "Augusta", body["firstName"])
			}
		})
	}
}

func TestUserHandler_Delete(t *testing.T) {
	t.Parallel()

	deleted := false
	router := newRouter(NewUserHandler(&mockUserUsecase{
		DeleteFunc: func(_ context.Context, id uuid.UUID) error {
			if id != ada.ID || deleted {
				return domain.ErrUserNotFound
			}
			deleted = true
			return nil
		},
	}))

	w := serve(router, http.MethodDelete, "/users/"+ada.ID.String(), "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message":"User deleted successfully"}`, w.Body.String())

	w = serve(router, http.MethodDelete, "/users/"+ada.ID.String(), "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}
