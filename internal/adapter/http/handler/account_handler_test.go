package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/auradigitalchile/agendamiento-fletes/internal/adapter/http/dto"
	"github.com/auradigitalchile/agendamiento-fletes/internal/domain"
	"github.com/auradigitalchile/agendamiento-fletes/internal/usecase"
	"github.com/auradigitalchile/agendamiento-fletes/internal/usecase/mocks"
)

func newAccountHandler() (*AccountHandler, *mocks.MockTransferAccountRepository, *mocks.MockMovementRepository) {
	accountRepo := mocks.NewMockTransferAccountRepository()
	movementRepo := mocks.NewMockMovementRepository()
	uc := usecase.NewTransferAccountUseCase(accountRepo, movementRepo, mocks.NewMockIDGenerator(), &mocks.MockClock{Time: time.Now()})
	return NewAccountHandler(uc), accountRepo, movementRepo
}

func TestAccountHandler_Create_Success(t *testing.T) {
	handler, _, _ := newAccountHandler()

	body, _ := json.Marshal(dto.CreateAccountRequest{Name: "Transfer. Andrés"})
	req := withSession(httptest.NewRequest(http.MethodPost, "/transfer-accounts", bytes.NewReader(body)), "org-1")
	rec := httptest.NewRecorder()

	handler.Create(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp dto.AccountResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Name != "Transfer. Andrés" {
		t.Errorf("expected name to round-trip, got %q", resp.Name)
	}
	if !resp.IsActive {
		t.Error("expected new account to be active")
	}
}

func TestAccountHandler_Create_DuplicateName(t *testing.T) {
	handler, accountRepo, _ := newAccountHandler()

	now := time.Now()
	_ = accountRepo.Create(context.Background(), &domain.TransferAccount{
		ID:             "acc-1",
		OrganizationID: "org-1",
		Name:           "Transfer. Andrés",
		IsActive:       true,
		CreatedAt:      now,
		UpdatedAt:      now,
	})

	body, _ := json.Marshal(dto.CreateAccountRequest{Name: "Transfer. Andrés"})
	req := withSession(httptest.NewRequest(http.MethodPost, "/transfer-accounts", bytes.NewReader(body)), "org-1")
	rec := httptest.NewRecorder()

	handler.Create(rec, req)

	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", rec.Code)
	}
}

func TestAccountHandler_Delete_Referenced(t *testing.T) {
	handler, accountRepo, movementRepo := newAccountHandler()

	now := time.Now()
	accountID := "acc-1"
	_ = accountRepo.Create(context.Background(), &domain.TransferAccount{
		ID:             accountID,
		OrganizationID: "org-1",
		Name:           "Transfer. Leonardo",
		IsActive:       true,
		CreatedAt:      now,
		UpdatedAt:      now,
	})
	_ = movementRepo.Create(context.Background(), &domain.CashMovement{
		ID:                "mov-1",
		OrganizationID:    "org-1",
		Type:              domain.MovementIncome,
		Amount:            10000,
		Method:            domain.MethodTransfer,
		TransferAccountID: &accountID,
		Date:              now,
		CreatedAt:         now,
		UpdatedAt:         now,
	})

	router := chi.NewRouter()
	router.Delete("/transfer-accounts/{id}", handler.Delete)

	req := withSession(httptest.NewRequest(http.MethodDelete, "/transfer-accounts/acc-1", nil), "org-1")
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409 for referenced account, got %d: %s", rec.Code, rec.Body.String())
	}

	// The response body tells the caller how many movements block the delete.
	var resp dto.ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if !strings.Contains(resp.Message, "referenced by 1 movements") {
		t.Errorf("expected blocking count in message, got %q", resp.Message)
	}
}

func TestAccountHandler_List_ActiveOnlyByDefault(t *testing.T) {
	handler, accountRepo, _ := newAccountHandler()

	now := time.Now()
	_ = accountRepo.Create(context.Background(), &domain.TransferAccount{
		ID: "acc-1", OrganizationID: "org-1", Name: "Activa", IsActive: true, CreatedAt: now, UpdatedAt: now,
	})
	_ = accountRepo.Create(context.Background(), &domain.TransferAccount{
		ID: "acc-2", OrganizationID: "org-1", Name: "Retirada", IsActive: false, CreatedAt: now, UpdatedAt: now,
	})

	req := withSession(httptest.NewRequest(http.MethodGet, "/transfer-accounts", nil), "org-1")
	rec := httptest.NewRecorder()
	handler.List(rec, req)

	var active []dto.AccountResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &active); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(active) != 1 || active[0].Name != "Activa" {
		t.Fatalf("expected only the active account, got %v", active)
	}

	req = withSession(httptest.NewRequest(http.MethodGet, "/transfer-accounts?all=true", nil), "org-1")
	rec = httptest.NewRecorder()
	handler.List(rec, req)

	var all []dto.AccountResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &all); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("expected both accounts with all=true, got %d", len(all))
	}
}
