package signup

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/oforha-backend/internal/models"
	"github.com/magabrotheeeer/oforha-backend/internal/services/auth"
)

type ServiceMock struct {
	mock.Mock
}

func (m *ServiceMock) Signup(ctx context.Context, username, email, password string) (*models.Account, string, error) {
	args := m.Called(ctx, username, email, password)
	account, _ := args.Get(0).(*models.Account)
	return account, args.String(1), args.Error(2)
}

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}

func TestSignupHandler_ServeHTTP(t *testing.T) {
	account := &models.Account{ID: "id-1", Username: "alice", Email: "alice@example.com"}
	valid := `{"username":"alice","email":"alice@example.com","password":"secret1"}`

	tests := []struct {
		name       string
		body       string
		setupMock  func(m *ServiceMock)
		wantStatus int
		wantBody   string
	}{
		{
			name: "created",
			body: valid,
			setupMock: func(m *ServiceMock) {
				m.On("Signup", mock.Anything, "alice", "alice@example.com", "secret1").Return(account, "tok", nil).Once()
			},
			wantStatus: http.StatusCreated,
			wantBody: `{"status":"OK","message":"User created successfully","data":{"token":"tok",` +
				`"user":{"id":"id-1","username":"alice","email":"alice@example.com"}}}`,
		},
		{
			name:       "invalid json",
			body:       `{`,
			setupMock:  func(*ServiceMock) {},
			wantStatus: http.StatusBadRequest,
			wantBody:   `{"status":"Error","error":"invalid request body"}`,
		},
		{
			name:       "missing password",
			body:       `{"username":"alice","email":"alice@example.com"}`,
			setupMock:  func(*ServiceMock) {},
			wantStatus: http.StatusBadRequest,
			wantBody:   `{"status":"Error","error":"field password is a required field"}`,
		},
		{
			name: "email taken",
			body: valid,
			setupMock: func(m *ServiceMock) {
				m.On("Signup", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil, "", auth.ErrEmailTaken).Once()
			},
			wantStatus: http.StatusBadRequest,
			wantBody:   `{"status":"Error","error":"Email already registered"}`,
		},
		{
			name: "username taken",
			body: valid,
			setupMock: func(m *ServiceMock) {
				m.On("Signup", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil, "", auth.ErrUsernameTaken).Once()
			},
			wantStatus: http.StatusBadRequest,
			wantBody:   `{"status":"Error","error":"Username already taken"}`,
		},
		{
			name: "store failure",
			body: valid,
			setupMock: func(m *ServiceMock) {
				m.On("Signup", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil, "", errors.New("db down")).Once()
			},
			wantStatus: http.StatusInternalServerError,
			wantBody:   `{"status":"Error","error":"Error creating user"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(ServiceMock)
			tt.setupMock(svc)
			handler := New(newNoopLogger(), svc)

			req := httptest.NewRequest(http.MethodPost, "/api/auth/signup", bytes.NewBufferString(tt.body))
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.JSONEq(t, tt.wantBody, rec.Body.String())
			svc.AssertExpectations(t)
		})
	}
}

func TestSignupHandler_ShortPassword(t *testing.T) {
	handler := New(newNoopLogger(), new(ServiceMock))
	body, err := json.Marshal(Request{Username: "alice", Email: "alice@example.com", Password: "123"})
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/auth/signup", bytes.NewReader(body)))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "field password must be at least 6 characters long")
}
