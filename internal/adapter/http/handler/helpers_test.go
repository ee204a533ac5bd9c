package handler

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/auradigitalchile/agendamiento-fletes/internal/domain"
)

func TestMapDomainError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"validation", domain.NewValidationError("amount", "must be positive"), http.StatusBadRequest},
		{"not found", domain.NewNotFoundError("movement"), http.StatusNotFound},
		{"conflict", domain.NewConflictError("name taken"), http.StatusConflict},
		{"duplicate close", domain.NewDuplicateCloseError(time.Now()), http.StatusConflict},
		{"unauthorized", domain.ErrUnauthorized, http.StatusUnauthorized},
		{"invalid token", domain.ErrInvalidToken, http.StatusUnauthorized},
		{"expired token", domain.ErrExpiredToken, http.StatusUnauthorized},
		{"no organization", domain.ErrNoOrganization, http.StatusForbidden},
		{"unknown", errors.New("connection reset"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := mapDomainError(tt.err); got != tt.want {
				t.Errorf("mapDomainError(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}

func TestParseTimeQuery(t *testing.T) {
	tests := []struct {
		name    string
		query   string
		want    *time.Time
		wantErr bool
	}{
		{"absent", "", nil, false},
		{"rfc3339", "when=2025-06-15T10:30:00Z", timePtr(time.Date(2025, 6, 15, 10, 30, 0, 0, time.UTC)), false},
		{"date only", "when=2025-06-15", timePtr(time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)), false},
		{"garbage", "when=15/06/2025", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/?"+tt.query, nil)
			got, err := parseTimeQuery(req, "when")
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				if !domain.IsValidation(err) {
					t.Errorf("expected validation error, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tt.want == nil {
				if got != nil {
					t.Fatalf("expected nil, got %v", got)
				}
				return
			}
			if got == nil || !got.Equal(*tt.want) {
				t.Errorf("parseTimeQuery() = %v, want %v", got, tt.want)
			}
		})
	}
}

func timePtr(t time.Time) *time.Time {
	return &t
}
