package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"user_backend/internal/feature/auth/domain"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	m.Run()
}

func TestWriteError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		err         error
		wantStatus  int
		wantError   string
		wantDetails bool
	}{
		{
			name:        "validation",
			err:         &domain.ValidationError{Fields: []domain.FieldError{{Field: "email", Message: "must be a valid email address"}}},
			wantStatus:  http.StatusBadRequest,
			wantError:   "validation failed",
			wantDetails: true,
		},
		{
			name:       "duplicate email",
			err:        domain.ErrDuplicateEmail,
			wantStatus: http.StatusBadRequest,
			wantError:  "email is already registered",
		},
		{
			name:       "invalid credentials",
			err:        domain.ErrInvalidCredentials,
			wantStatus: http.StatusBadRequest,
			wantError:  "invalid credentials",
		},
		{
			name:       "invalid token hides the tag",
			err:        fmt.Errorf("%w: %w", domain.ErrInvalidToken, domain.ErrTokenExpired),
			wantStatus: http.StatusUnauthorized,
			wantError:  "token expired or invalid",
		},
		{
			name:       "not found",
			err:        fmt.Errorf("lookup: %w", domain.ErrUserNotFound),
			wantStatus: http.StatusNotFound,
			wantError:  "user not found",
		},
		{
			name:       "unexpected",
			err:        errors.New("connection refused"),
			wantStatus: http.StatusInternalServerError,
			wantError:  "internal server error",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

			WriteError(c, tt.err)

			assert.Equal(t, tt.wantStatus, w.Code)
			var body ErrorResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, tt.wantError, body.Error)
			assert.Equal(t, tt.wantDetails, len(body.Details) > 0)
		})
	}
}

func TestBindPathUUID(t *testing.T) {
	t.Parallel()

	id := uuid.New()

	tests := []struct {
		name    string
		value   string
		want    uuid.UUID
		wantErr bool
	}{
		{name: "valid", value: id.String(), want: id},
		{name: "not a uuid", value: "42", wantErr: true},
		{name: "empty", value: "", wantErr: true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			c, _ := gin.CreateTestContext(httptest.NewRecorder())
			c.Params = gin.Params{{Key: "id", Value: tt.value}}

			got, err := BindPathUUID(c, "id")

			if tt.wantErr {
				assert.ErrorIs(t, err, domain.ErrUserNotFound)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
