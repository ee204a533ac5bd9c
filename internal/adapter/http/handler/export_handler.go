package handler

import (
	"fmt"
	"net/http"

	"github.com/auradigitalchile/agendamiento-fletes/internal/infrastructure/metrics"
	"github.com/auradigitalchile/agendamiento-fletes/internal/usecase"
)

// ExportHandler serves the monthly services CSV.
type ExportHandler struct {
	exportUC *usecase.ExportUseCase
	metrics  *metrics.Metrics
}

// NewExportHandler creates a new ExportHandler.
func NewExportHandler(exportUC *usecase.ExportUseCase, m *metrics.Metrics) *ExportHandler {
	return &ExportHandler{exportUC: exportUC, metrics: m}
}

// Month streams the services of ?month=YYYY-MM as a CSV attachment.
func (h *ExportHandler) Month(w http.ResponseWriter, r *http.Request) {
	s, ok := session(w, r)
	if !ok {
		return
	}

	export, err := h.exportUC.MonthCSV(r.Context(), s.OrganizationID, r.URL.Query().Get("month"))
	if err != nil {
		writeError(w, mapDomainError(err), "failed to export services", err.Error())
		return
	}

	h.metrics.ExportsServed.Inc()

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", export.Filename))
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(export.Content))
}
