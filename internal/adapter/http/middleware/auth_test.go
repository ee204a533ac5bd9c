package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/auradigitalchile/agendamiento-fletes/internal/domain"
	"github.com/auradigitalchile/agendamiento-fletes/internal/infrastructure/auth"
	"github.com/auradigitalchile/agendamiento-fletes/internal/usecase"
)

func newTestToken(t *testing.T, manager *auth.JWTManager) string {
	t.Helper()
	token, err := manager.Generate(&usecase.Session{
		User:           &domain.User{ID: "user-1", Email: "andres@fletessur.cl"},
		OrganizationID: "org-1",
		Role:           domain.RoleOwner,
	})
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}
	return token
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	manager := auth.NewJWTManager("test-secret", time.Hour)
	token := newTestToken(t, manager)

	var got *Session
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, _ = GetSessionFromContext(r.Context())
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()

	AuthMiddleware(manager)(next).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if got == nil {
		t.Fatal("expected session in context")
	}
	if got.OrganizationID != "org-1" {
		t.Errorf("expected organization org-1, got %q", got.OrganizationID)
	}
	if got.Role != domain.RoleOwner {
		t.Errorf("expected OWNER role, got %q", got.Role)
	}
}

func TestAuthMiddleware_Rejections(t *testing.T) {
	manager := auth.NewJWTManager("test-secret", time.Hour)
	otherManager := auth.NewJWTManager("other-secret", time.Hour)

	tests := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"not bearer", "Basic abc123"},
		{"garbage token", "Bearer not.a.jwt"},
		{"wrong secret", "Bearer " + newTestToken(t, otherManager)},
	}

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler should not be reached")
	})

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()

			AuthMiddleware(manager)(next).ServeHTTP(rec, req)

			if rec.Code != http.StatusUnauthorized {
				t.Errorf("expected 401, got %d", rec.Code)
			}
		})
	}
}

func contextWithSession(r *http.Request, s *Session) context.Context {
	return context.WithValue(r.Context(), SessionContextKey, s)
}

func TestRequireOwner(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req = req.WithContext(contextWithSession(req, &Session{UserID: "user-1", OrganizationID: "org-1", Role: domain.RoleMember}))
	rec := httptest.NewRecorder()
	RequireOwner(next).ServeHTTP(rec, req)
	if rec.Code != http.StatusForbidden {
		t.Errorf("expected 403 for MEMBER, got %d", rec.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req = req.WithContext(contextWithSession(req, &Session{UserID: "user-1", OrganizationID: "org-1", Role: domain.RoleOwner}))
	rec = httptest.NewRecorder()
	RequireOwner(next).ServeHTTP(rec, req)
	if rec.Code != http.StatusNoContent {
		t.Errorf("expected 204 for OWNER, got %d", rec.Code)
	}
}
