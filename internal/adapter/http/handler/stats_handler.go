package handler

import (
	"net/http"

	"github.com/auradigitalchile/agendamiento-fletes/internal/adapter/http/dto"
	"github.com/auradigitalchile/agendamiento-fletes/internal/usecase"
)

// StatsHandler handles cash dashboard HTTP requests.
type StatsHandler struct {
	statsUC *usecase.StatsUseCase
}

// NewStatsHandler creates a new StatsHandler.
func NewStatsHandler(statsUC *usecase.StatsUseCase) *StatsHandler {
	return &StatsHandler{statsUC: statsUC}
}

// Summary aggregates the period bounded by ?start= and ?end=. Both default to
// the last four weeks ending now.
func (h *StatsHandler) Summary(w http.ResponseWriter, r *http.Request) {
	s, ok := session(w, r)
	if !ok {
		return
	}

	start, err := parseTimeQuery(r, "start")
	if err != nil {
		writeError(w, mapDomainError(err), "invalid period", err.Error())
		return
	}
	end, err := parseTimeQuery(r, "end")
	if err != nil {
		writeError(w, mapDomainError(err), "invalid period", err.Error())
		return
	}

	summary, err := h.statsUC.Summary(r.Context(), s.OrganizationID, usecase.StatsInput{
		StartDate: start,
		EndDate:   end,
	})
	if err != nil {
		writeError(w, mapDomainError(err), "failed to compute summary", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.SummaryFromDomain(summary))
}
