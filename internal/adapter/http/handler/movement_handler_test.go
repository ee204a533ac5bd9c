package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/auradigitalchile/agendamiento-fletes/internal/adapter/http/dto"
	"github.com/auradigitalchile/agendamiento-fletes/internal/adapter/http/middleware"
	"github.com/auradigitalchile/agendamiento-fletes/internal/domain"
	"github.com/auradigitalchile/agendamiento-fletes/internal/infrastructure/metrics"
	"github.com/auradigitalchile/agendamiento-fletes/internal/usecase"
	"github.com/auradigitalchile/agendamiento-fletes/internal/usecase/mocks"
)

var testMetrics = metrics.New()

// withSession attaches the authenticated session the way the auth middleware
// does in production.
func withSession(r *http.Request, orgID string) *http.Request {
	session := &middleware.Session{
		UserID:         "user-1",
		Email:          "andres@fletessur.cl",
		OrganizationID: orgID,
		Role:           domain.RoleOwner,
	}
	ctx := context.WithValue(r.Context(), middleware.SessionContextKey, session)
	return r.WithContext(ctx)
}

func newMovementHandler() (*MovementHandler, *mocks.MockMovementRepository, *mocks.MockTransferAccountRepository) {
	movementRepo := mocks.NewMockMovementRepository()
	accountRepo := mocks.NewMockTransferAccountRepository()
	uc := usecase.NewMovementUseCase(movementRepo, accountRepo, mocks.NewMockIDGenerator(), &mocks.MockClock{Time: time.Now()})
	return NewMovementHandler(uc, testMetrics), movementRepo, accountRepo
}

func TestMovementHandler_Create_Success(t *testing.T) {
	handler, _, _ := newMovementHandler()

	body, _ := json.Marshal(dto.RecordMovementRequest{
		Type:   "INCOME",
		Amount: 25000,
		Method: "CASH",
	})

	req := withSession(httptest.NewRequest(http.MethodPost, "/cash/movements", bytes.NewReader(body)), "org-1")
	rec := httptest.NewRecorder()

	handler.Create(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp dto.MovementResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Amount != 25000 {
		t.Errorf("expected amount 25000, got %f", resp.Amount)
	}
	if resp.ID == "" {
		t.Error("expected generated id")
	}
}

func TestMovementHandler_Create_ValidationError(t *testing.T) {
	handler, _, _ := newMovementHandler()

	body, _ := json.Marshal(dto.RecordMovementRequest{
		Type:   "INCOME",
		Amount: -5,
		Method: "CASH",
	})

	req := withSession(httptest.NewRequest(http.MethodPost, "/cash/movements", bytes.NewReader(body)), "org-1")
	rec := httptest.NewRecorder()

	handler.Create(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestMovementHandler_Create_NoSession(t *testing.T) {
	handler, _, _ := newMovementHandler()

	req := httptest.NewRequest(http.MethodPost, "/cash/movements", bytes.NewReader([]byte(`{}`)))
	rec := httptest.NewRecorder()

	handler.Create(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestMovementHandler_Get_CrossTenant(t *testing.T) {
	handler, movementRepo, _ := newMovementHandler()

	now := time.Now()
	_ = movementRepo.Create(context.Background(), &domain.CashMovement{
		ID:             "mov-1",
		OrganizationID: "org-other",
		Type:           domain.MovementIncome,
		Amount:         1000,
		Method:         domain.MethodCash,
		Date:           now,
		CreatedAt:      now,
		UpdatedAt:      now,
	})

	router := chi.NewRouter()
	router.Get("/cash/movements/{id}", handler.Get)

	req := withSession(httptest.NewRequest(http.MethodGet, "/cash/movements/mov-1", nil), "org-1")
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for another tenant's movement, got %d", rec.Code)
	}
}

func TestMovementHandler_List_InvalidDateFilter(t *testing.T) {
	handler, _, _ := newMovementHandler()

	req := withSession(httptest.NewRequest(http.MethodGet, "/cash/movements?from=not-a-date", nil), "org-1")
	rec := httptest.NewRecorder()

	handler.List(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}
