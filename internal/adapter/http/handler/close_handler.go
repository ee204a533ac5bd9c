package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/auradigitalchile/agendamiento-fletes/internal/adapter/http/dto"
	"github.com/auradigitalchile/agendamiento-fletes/internal/domain"
	"github.com/auradigitalchile/agendamiento-fletes/internal/infrastructure/metrics"
	"github.com/auradigitalchile/agendamiento-fletes/internal/usecase"
)

// CloseHandler handles daily close HTTP requests.
type CloseHandler struct {
	closeUC *usecase.CloseUseCase
	statsUC *usecase.StatsUseCase
	metrics *metrics.Metrics
}

// NewCloseHandler creates a new CloseHandler.
func NewCloseHandler(closeUC *usecase.CloseUseCase, statsUC *usecase.StatsUseCase, m *metrics.Metrics) *CloseHandler {
	return &CloseHandler{closeUC: closeUC, statsUC: statsUC, metrics: m}
}

// Create snapshots the day identified by the request date. The snapshot is
// recomputed server-side from the day's movements; client-sent totals are
// never trusted.
func (h *CloseHandler) Create(w http.ResponseWriter, r *http.Request) {
	s, ok := session(w, r)
	if !ok {
		return
	}

	var req dto.CreateCloseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}
	if req.Date.IsZero() {
		writeError(w, http.StatusBadRequest, "invalid request body", "date is required")
		return
	}

	summary, err := h.statsUC.DaySummary(r.Context(), s.OrganizationID, req.Date)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to aggregate day", err.Error())
		return
	}

	close, err := h.closeUC.Create(r.Context(), s.OrganizationID, usecase.CreateCloseInput{
		Date:     req.Date,
		Summary:  summary,
		Notes:    req.Notes,
		ClosedBy: s.UserID,
	})
	if err != nil {
		if domain.IsConflict(err) {
			h.metrics.CloseConflicts.Inc()
		}
		writeError(w, mapDomainError(err), "failed to close day", err.Error())
		return
	}

	h.metrics.ClosesCreated.Inc()
	writeJSON(w, http.StatusCreated, dto.CloseFromDomain(close))
}

// GetByDate returns the close for the /{date} path segment (YYYY-MM-DD), or
// 404 while the day is still open.
func (h *CloseHandler) GetByDate(w http.ResponseWriter, r *http.Request) {
	s, ok := session(w, r)
	if !ok {
		return
	}

	date, err := time.Parse("2006-01-02", chi.URLParam(r, "date"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid date", "must use format YYYY-MM-DD")
		return
	}

	close, err := h.closeUC.GetByDate(r.Context(), s.OrganizationID, date)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to get close", err.Error())
		return
	}
	if close == nil {
		writeError(w, http.StatusNotFound, "day is not closed", "")
		return
	}

	writeJSON(w, http.StatusOK, dto.CloseFromDomain(close))
}

// List returns the organization's closes, optionally bounded by from/to.
func (h *CloseHandler) List(w http.ResponseWriter, r *http.Request) {
	s, ok := session(w, r)
	if !ok {
		return
	}

	from, err := parseTimeQuery(r, "from")
	if err != nil {
		writeError(w, mapDomainError(err), "invalid filter", err.Error())
		return
	}
	to, err := parseTimeQuery(r, "to")
	if err != nil {
		writeError(w, mapDomainError(err), "invalid filter", err.Error())
		return
	}

	closes, err := h.closeUC.List(r.Context(), s.OrganizationID, from, to)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to list closes", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.ClosesFromDomain(closes))
}
