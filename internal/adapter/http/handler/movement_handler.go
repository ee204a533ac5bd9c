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

// MovementHandler handles cash movement HTTP requests.
type MovementHandler struct {
	movementUC *usecase.MovementUseCase
	metrics    *metrics.Metrics
}

// NewMovementHandler creates a new MovementHandler.
func NewMovementHandler(movementUC *usecase.MovementUseCase, m *metrics.Metrics) *MovementHandler {
	return &MovementHandler{movementUC: movementUC, metrics: m}
}

// Create records a new cash movement.
func (h *MovementHandler) Create(w http.ResponseWriter, r *http.Request) {
	s, ok := session(w, r)
	if !ok {
		return
	}

	var req dto.RecordMovementRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	movement, err := h.movementUC.Record(r.Context(), s.OrganizationID, req.ToUseCaseInput())
	if err != nil {
		writeError(w, mapDomainError(err), "failed to record movement", err.Error())
		return
	}

	h.metrics.MovementsRecorded.WithLabelValues(string(movement.Type), string(movement.Method)).Inc()
	h.metrics.MovementAmount.WithLabelValues(string(movement.Type)).Observe(movement.Amount)

	writeJSON(w, http.StatusCreated, dto.MovementFromDomain(movement))
}

// List lists the organization's movements, newest first.
func (h *MovementHandler) List(w http.ResponseWriter, r *http.Request) {
	s, ok := session(w, r)
	if !ok {
		return
	}

	filter, err := movementFilterFromQuery(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid filter", err.Error())
		return
	}

	movements, err := h.movementUC.List(r.Context(), s.OrganizationID, filter)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to list movements", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.MovementsFromDomain(movements))
}

// Get retrieves a movement by ID.
func (h *MovementHandler) Get(w http.ResponseWriter, r *http.Request) {
	s, ok := session(w, r)
	if !ok {
		return
	}

	movement, err := h.movementUC.Get(r.Context(), s.OrganizationID, chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, mapDomainError(err), "failed to get movement", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.MovementFromDomain(movement))
}

// Update merges a partial update into a movement.
func (h *MovementHandler) Update(w http.ResponseWriter, r *http.Request) {
	s, ok := session(w, r)
	if !ok {
		return
	}

	var req dto.UpdateMovementRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	movement, err := h.movementUC.Update(r.Context(), s.OrganizationID, chi.URLParam(r, "id"), req.ToUseCaseInput())
	if err != nil {
		writeError(w, mapDomainError(err), "failed to update movement", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.MovementFromDomain(movement))
}

// Delete removes a movement.
func (h *MovementHandler) Delete(w http.ResponseWriter, r *http.Request) {
	s, ok := session(w, r)
	if !ok {
		return
	}

	if err := h.movementUC.Delete(r.Context(), s.OrganizationID, chi.URLParam(r, "id")); err != nil {
		writeError(w, mapDomainError(err), "failed to delete movement", err.Error())
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func movementFilterFromQuery(r *http.Request) (domain.MovementFilter, error) {
	var filter domain.MovementFilter

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
	filter.Type = domain.MovementType(r.URL.Query().Get("type"))
	filter.Method = domain.PaymentMethod(r.URL.Query().Get("method"))

	return filter, nil
}
