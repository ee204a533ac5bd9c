package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/auradigitalchile/agendamiento-fletes/internal/domain"
)

// exportHeader is the fixed CSV header row for monthly service exports.
var exportHeader = []string{
	"Fecha", "Cliente", "Teléfono", "Tipo", "Origen", "Destino", "Monto", "Estado", "Notas",
}

// ExportUseCase builds the monthly services CSV.
type ExportUseCase struct {
	serviceRepo ServiceRepository
}

// NewExportUseCase creates a new ExportUseCase.
func NewExportUseCase(serviceRepo ServiceRepository) *ExportUseCase {
	return &ExportUseCase{serviceRepo: serviceRepo}
}

// Export is a rendered CSV document ready to serve.
type Export struct {
	Filename string
	Content  string
}

// MonthCSV exports the month's services (oldest first) as CSV. month is
// "YYYY-MM". Every field is double-quoted with embedded quotes doubled; the
// header row stays unquoted, matching the historical export format consumers
// already parse.
func (uc *ExportUseCase) MonthCSV(ctx context.Context, orgID, month string) (*Export, error) {
	start, err := time.Parse("2006-01", month)
	if err != nil {
		return nil, domain.NewValidationError("month", "must use format YYYY-MM")
	}
	end := start.AddDate(0, 1, 0)

	services, err := uc.serviceRepo.List(ctx, orgID, domain.ServiceFilter{
		From: &start,
		To:   &end,
	}, true)
	if err != nil {
		return nil, err
	}

	var b strings.Builder
	b.WriteString(strings.Join(exportHeader, ","))

	for _, s := range services {
		row := []string{
			s.ScheduledDate.Format("02/01/2006 15:04"),
			s.ClientName,
			s.ClientPhone,
			string(s.Type),
			orDash(s.Origin),
			orDash(s.Destination),
			s.Price.String(),
			string(s.Status),
			orDash(s.Notes),
		}
		b.WriteString("\n")
		b.WriteString(quoteRow(row))
	}

	return &Export{
		Filename: fmt.Sprintf("servicios-%s.csv", month),
		Content:  b.String(),
	}, nil
}

// quoteRow joins fields with commas, wrapping each in double quotes and
// doubling embedded quotes. encoding/csv quotes only when necessary, so rows
// are built by hand to keep every field quoted.
func quoteRow(fields []string) string {
	quoted := make([]string, len(fields))
	for i, f := range fields {
		quoted[i] = `"` + strings.ReplaceAll(f, `"`, `""`) + `"`
	}
	return strings.Join(quoted, ",")
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
