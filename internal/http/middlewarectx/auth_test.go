package middlewarectx_test

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/oforha-backend/internal/http/middlewarectx"
	"github.com/magabrotheeeer/oforha-backend/internal/lib/jwt"
)

// Мок для TokenVerifier
type VerifierMock struct {
	mock.Mock
}

func (m *VerifierMock) VerifyToken(token string) (*jwt.CustomClaims, error) {
	args := m.Called(token)
	claims, _ := args.Get(0).(*jwt.CustomClaims)
	return claims, args.Error(1)
}

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}

func TestRequireAuth(t *testing.T) {
	claims := &jwt.CustomClaims{UserID: "id-1", Username: "alice"}

	tests := []struct {
		name       string
		authHeader string
		setupMock  func(m *VerifierMock)
		wantStatus int
		wantBody   string
		wantCalled bool
	}{
		{
			name:       "missing header",
			authHeader: "",
			setupMock:  func(*VerifierMock) {},
			wantStatus: http.StatusUnauthorized,
			wantBody:   `{"status":"Error","error":"Token is missing"}`,
		},
		{
			name:       "invalid token",
			authHeader: "Bearer bad",
			setupMock: func(m *VerifierMock) {
				m.On("VerifyToken", "bad").Return(nil, jwt.ErrInvalidToken).Once()
			},
			wantStatus: http.StatusUnauthorized,
			wantBody:   `{"status":"Error","error":"Invalid or expired token"}`,
		},
		{
			name:       "valid bearer token",
			authHeader: "Bearer good",
			setupMock: func(m *VerifierMock) {
				m.On("VerifyToken", "good").Return(claims, nil).Once()
			},
			wantStatus: http.StatusOK,
			wantCalled: true,
		},
		{
			name:       "valid token without prefix",
			authHeader: "good",
			setupMock: func(m *VerifierMock) {
				m.On("VerifyToken", "good").Return(claims, nil).Once()
			},
			wantStatus: http.StatusOK,
			wantCalled: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			verifier := new(VerifierMock)
			tt.setupMock(verifier)

			called := false
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				called = true
				got, ok := middlewarectx.ClaimsFromContext(r.Context())
				assert.True(t, ok)
				assert.Equal(t, "id-1", got.UserID)
				w.WriteHeader(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, "/api/auth/profile", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}
			rec := httptest.NewRecorder()
			middlewarectx.RequireAuth(verifier, newNoopLogger())(next).ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantCalled, called)
			if tt.wantBody != "" {
				assert.JSONEq(t, tt.wantBody, rec.Body.String())
			}
			verifier.AssertExpectations(t)
		})
	}
}

func TestOptionalAuth(t *testing.T) {
	verifier := new(VerifierMock)
	verifier.On("VerifyToken", "good").Return(&jwt.CustomClaims{UserID: "id-1"}, nil)
	verifier.On("VerifyToken", "bad").Return(nil, errors.New("expired"))

	var gotID string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotID = ""
		if claims, ok := middlewarectx.ClaimsFromContext(r.Context()); ok {
			gotID = claims.UserID
		}
		w.WriteHeader(http.StatusNoContent)
	})
	h := middlewarectx.OptionalAuth(verifier)(next)

	for header, wantID := range map[string]string{"": "", "Bearer good": "id-1", "Bearer bad": ""} {
		req := httptest.NewRequest(http.MethodPost, "/api/forms/submit", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNoContent, rec.Code, header)
		assert.Equal(t, wantID, gotID, header)
	}
}
