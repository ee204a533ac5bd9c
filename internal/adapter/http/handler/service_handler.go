package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/auradigitalchile/agendamiento-fletes/internal/adapter/http/dto"
	"github.com/auradigitalchile/agendamiento-fletes/internal/domain"
	"github.com/auradigitalchile/agendamiento-fletes/internal/infrastructure/metrics"
	"github.com/auradigitalchile/agendamiento-fletes/internal/usecase"
)

// ServiceHandler handles scheduled service HTTP requests.
type ServiceHandler struct {
	serviceUC *usecase.ServiceUseCase
	metrics   *metrics.Metrics
}

// NewServiceHandler creates a new ServiceHandler.
func NewServiceHandler(serviceUC *usecase.ServiceUseCase, m *metrics.Metrics) *ServiceHandler {
	return &ServiceHandler{serviceUC: serviceUC, metrics: m}
}

// Create schedules a service.
func (h *ServiceHandler) Create(w http.ResponseWriter, r *http.Request) {
	s, ok := session(w, r)
	if !ok {
		return
	}

	var req dto.ServiceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	service, err := h.serviceUC.Create(r.Context(), s.OrganizationID, req.ToUseCaseInput())
	if err != nil {
		writeError(w, mapDomainError(err), "failed to create service", err.Error())
		return
	}

	h.metrics.ServicesCreated.WithLabelValues(string(service.Type)).Inc()

	writeJSON(w, http.StatusCreated, dto.ServiceFromDomain(service))
}

// List lists the organization's services, newest first.
func (h *ServiceHandler) List(w http.ResponseWriter, r *http.Request) {
	s, ok := session(w, r)
	if !ok {
		return
	}

	filter, err := serviceFilterFromQuery(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid filter", err.Error())
		return
	}

	services, err := h.serviceUC.List(r.Context(), s.OrganizationID, filter)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to list services", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.ServicesFromDomain(services))
}

// Get retrieves a service by ID.
func (h *ServiceHandler) Get(w http.ResponseWriter, r *http.Request) {
	s, ok := session(w, r)
	if !ok {
		return
	}

	service, err := h.serviceUC.Get(r.Context(), s.OrganizationID, chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, mapDomainError(err), "failed to get service", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.ServiceFromDomain(service))
}

// Update replaces a service's payload.
func (h *ServiceHandler) Update(w http.ResponseWriter, r *http.Request) {
	s, ok := session(w, r)
	if !ok {
		return
	}

	var req dto.ServiceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	service, err := h.serviceUC.Update(r.Context(), s.OrganizationID, chi.URLParam(r, "id"), req.ToUseCaseInput())
	if err != nil {
		writeError(w, mapDomainError(err), "failed to update service", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.ServiceFromDomain(service))
}

// Delete removes a service.
func (h *ServiceHandler) Delete(w http.ResponseWriter, r *http.Request) {
	s, ok := session(w, r)
	if !ok {
		return
	}

	if err := h.serviceUC.Delete(r.Context(), s.OrganizationID, chi.URLParam(r, "id")); err != nil {
		writeError(w, mapDomainError(err), "failed to delete service", err.Error())
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func serviceFilterFromQuery(r *http.Request) (domain.ServiceFilter, error) {
	var filter domain.ServiceFilter

	from, err := parseTimeQuery(r, "from")
	if err != nil {
		return filter, err
	}
	to, err := parseTimeQuery(r, "to")
	if err != nil {
		return filter, err
	}

	filter.From = from
	filter.To = to
	filter.Type = domain.ServiceType(r.URL.Query().Get("type"))
	filter.Status = domain.ServiceStatus(r.URL.Query().Get("status"))
	filter.ClientID = r.URL.Query().Get("client_id")

	return filter, nil
}
