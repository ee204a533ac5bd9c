package usecase_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/auradigitalchile/agendamiento-fletes/internal/domain"
	"github.com/auradigitalchile/agendamiento-fletes/internal/usecase"
	"github.com/auradigitalchile/agendamiento-fletes/internal/usecase/mocks"
)

func seedService(t *testing.T, repo *mocks.MockServiceRepository, service *domain.Service) {
	t.Helper()
	if service.OrganizationID == "" {
		service.OrganizationID = "org-1"
	}
	require.NoError(t, repo.Create(context.Background(), service))
}

func TestExportMonthCSV(t *testing.T) {
	serviceRepo := mocks.NewMockServiceRepository()
	uc := usecase.NewExportUseCase(serviceRepo)

	seedService(t, serviceRepo, &domain.Service{
		ID:            "svc-1",
		ClientName:    "María Pérez",
		ClientPhone:   "+56912345678",
		Type:          domain.ServiceMudanza,
		Status:        domain.StatusConfirmado,
		ScheduledDate: time.Date(2025, 6, 10, 14, 30, 0, 0, time.UTC),
		Price:         decimal.NewFromInt(85000),
		Origin:        "Av. Alemania 120, Temuco",
		Destination:   "Los Castaños 45, Padre Las Casas",
		Notes:         `Piano en el 3er piso, dijo "con cuidado"`,
	})
	seedService(t, serviceRepo, &domain.Service{
		ID:            "svc-2",
		ClientName:    "Pedro Soto",
		ClientPhone:   "+56987654321",
		Type:          domain.ServiceEscombros,
		Status:        domain.StatusPendiente,
		ScheduledDate: time.Date(2025, 6, 3, 9, 0, 0, 0, time.UTC),
		Price:         decimal.NewFromInt(25000),
	})
	// Outside the requested month.
	seedService(t, serviceRepo, &domain.Service{
		ID:            "svc-3",
		ClientName:    "Otro Cliente",
		ClientPhone:   "+56900000000",
		Type:          domain.ServiceFlete,
		Status:        domain.StatusFinalizado,
		ScheduledDate: time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC),
		Price:         decimal.NewFromInt(10000),
	})

	export, err := uc.MonthCSV(context.Background(), "org-1", "2025-06")
	require.NoError(t, err)

	assert.Equal(t, "servicios-2025-06.csv", export.Filename)

	lines := strings.Split(export.Content, "\n")
	require.Len(t, lines, 3)

	assert.Equal(t, "Fecha,Cliente,Teléfono,Tipo,Origen,Destino,Monto,Estado,Notas", lines[0], "header row is unquoted")
	assert.Equal(t,
		`"03/06/2025 09:00","Pedro Soto","+56987654321","ESCOMBROS","-","-","25000","PENDIENTE","-"`,
		lines[1], "rows are oldest first, every field quoted, blanks as dashes")
	assert.Equal(t,
		`"10/06/2025 14:30","María Pérez","+56912345678","MUDANZA","Av. Alemania 120, Temuco","Los Castaños 45, Padre Las Casas","85000","CONFIRMADO","Piano en el 3er piso, dijo ""con cuidado"""`,
		lines[2], "embedded quotes are doubled")
}

func TestExportMonthCSV_EmptyMonth(t *testing.T) {
	uc := usecase.NewExportUseCase(mocks.NewMockServiceRepository())

	export, err := uc.MonthCSV(context.Background(), "org-1", "2025-02")
	require.NoError(t, err)

	assert.Equal(t, "servicios-2025-02.csv", export.Filename)
	assert.Equal(t, "Fecha,Cliente,Teléfono,Tipo,Origen,Destino,Monto,Estado,Notas", export.Content, "header only, no trailing newline")
}

func TestExportMonthCSV_BadMonth(t *testing.T) {
	uc := usecase.NewExportUseCase(mocks.NewMockServiceRepository())

	_, err := uc.MonthCSV(context.Background(), "org-1", "junio-2025")
	assert.True(t, domain.IsValidation(err))
}
