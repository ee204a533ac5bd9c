package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/auradigitalchile/agendamiento-fletes/internal/adapter/http/dto"
	"github.com/auradigitalchile/agendamiento-fletes/internal/domain"
	"github.com/auradigitalchile/agendamiento-fletes/internal/usecase"
	"github.com/auradigitalchile/agendamiento-fletes/internal/usecase/mocks"
)

func newServiceHandler() (*ServiceHandler, *mocks.MockServiceRepository, *mocks.MockClientRepository) {
	serviceRepo := mocks.NewMockServiceRepository()
	clientRepo := mocks.NewMockClientRepository()
	uc := usecase.NewServiceUseCase(serviceRepo, clientRepo, mocks.NewMockIDGenerator(), &mocks.MockClock{Time: time.Now()})
	return NewServiceHandler(uc, testMetrics), serviceRepo, clientRepo
}

func seedService(t *testing.T, repo *mocks.MockServiceRepository, id, orgID string, clientID *string, scheduled time.Time) {
	t.Helper()
	now := time.Now()
	err := repo.Create(context.Background(), &domain.Service{
		ID:             id,
		OrganizationID: orgID,
		ClientID:       clientID,
		ClientName:     "María Soto",
		ClientPhone:    "+56 9 5555 5555",
		Type:           domain.ServiceFlete,
		Status:         domain.StatusPendiente,
		ScheduledDate:  scheduled,
		Price:          decimal.NewFromInt(45000),
		CreatedAt:      now,
		UpdatedAt:      now,
	})
	if err != nil {
		t.Fatalf("failed to seed service: %v", err)
	}
}

func TestServiceHandler_List_FiltersByClient(t *testing.T) {
	handler, serviceRepo, _ := newServiceHandler()

	clientID := "cli-1"
	otherID := "cli-2"
	base := time.Date(2025, 6, 10, 9, 0, 0, 0, time.UTC)
	seedService(t, serviceRepo, "svc-1", "org-1", &clientID, base)
	seedService(t, serviceRepo, "svc-2", "org-1", &otherID, base.Add(24*time.Hour))
	seedService(t, serviceRepo, "svc-3", "org-1", nil, base.Add(48*time.Hour))

	req := withSession(httptest.NewRequest(http.MethodGet, "/services?client_id=cli-1", nil), "org-1")
	rec := httptest.NewRecorder()

	handler.List(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp []dto.ServiceResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(resp) != 1 {
		t.Fatalf("expected only the linked service, got %d", len(resp))
	}
	if resp[0].ID != "svc-1" {
		t.Errorf("expected svc-1, got %s", resp[0].ID)
	}
}

func TestServiceHandler_List_NoClientFilterReturnsAll(t *testing.T) {
	handler, serviceRepo, _ := newServiceHandler()

	clientID := "cli-1"
	base := time.Date(2025, 6, 10, 9, 0, 0, 0, time.UTC)
	seedService(t, serviceRepo, "svc-1", "org-1", &clientID, base)
	seedService(t, serviceRepo, "svc-2", "org-1", nil, base.Add(24*time.Hour))

	req := withSession(httptest.NewRequest(http.MethodGet, "/services", nil), "org-1")
	rec := httptest.NewRecorder()

	handler.List(rec, req)

	var resp []dto.ServiceResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(resp) != 2 {
		t.Fatalf("expected both services without a client filter, got %d", len(resp))
	}
}
