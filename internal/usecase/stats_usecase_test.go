package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/auradigitalchile/agendamiento-fletes/internal/domain"
	"github.com/auradigitalchile/agendamiento-fletes/internal/usecase"
	"github.com/auradigitalchile/agendamiento-fletes/internal/usecase/mocks"
)

func newStatsFixture() (*usecase.StatsUseCase, *mocks.MockMovementRepository, *mocks.MockTransferAccountRepository) {
	movementRepo := mocks.NewMockMovementRepository()
	accountRepo := mocks.NewMockTransferAccountRepository()
	uc := usecase.NewStatsUseCase(movementRepo, accountRepo, mocks.NewMockClock(testNow))
	return uc, movementRepo, accountRepo
}

func seedMovement(t *testing.T, repo *mocks.MockMovementRepository, id string, mtype domain.MovementType, amount float64, date time.Time) {
	t.Helper()
	err := repo.Create(context.Background(), &domain.CashMovement{
		ID:             id,
		OrganizationID: "org-1",
		Type:           mtype,
		Amount:         amount,
		Method:         domain.MethodCash,
		Date:           date,
	})
	require.NoError(t, err)
}

func TestStatsSummary_DefaultWindow(t *testing.T) {
	uc, movementRepo, _ := newStatsFixture()

	seedMovement(t, movementRepo, "mv-in", domain.MovementIncome, 1000, testNow.AddDate(0, 0, -3))
	seedMovement(t, movementRepo, "mv-old", domain.MovementIncome, 9999, testNow.AddDate(0, 0, -40))

	summary, err := uc.Summary(context.Background(), "org-1", usecase.StatsInput{})
	require.NoError(t, err)

	assert.Equal(t, 1000.0, summary.TotalIncome, "movements older than four weeks fall outside the default window")
}

func TestStatsSummary_ExplicitRange(t *testing.T) {
	uc, movementRepo, _ := newStatsFixture()

	seedMovement(t, movementRepo, "mv-1", domain.MovementIncome, 1000, day(2025, 6, 2))
	seedMovement(t, movementRepo, "mv-2", domain.MovementExpense, 300, day(2025, 6, 3))
	seedMovement(t, movementRepo, "mv-3", domain.MovementIncome, 500, day(2025, 6, 20))

	start := day(2025, 6, 1)
	end := day(2025, 6, 10)
	summary, err := uc.Summary(context.Background(), "org-1", usecase.StatsInput{
		StartDate: &start,
		EndDate:   &end,
	})
	require.NoError(t, err)

	assert.Equal(t, 1000.0, summary.TotalIncome)
	assert.Equal(t, 300.0, summary.TotalExpense)
	assert.Equal(t, 700.0, summary.Balance)
}

func TestStatsSummary_ZeroFillsAccounts(t *testing.T) {
	uc, _, accountRepo := newStatsFixture()
	seedAccount(t, accountRepo, "org-1", "acc-1", "Transfer. Andrés", true)
	seedAccount(t, accountRepo, "org-1", "acc-2", "Transfer. Leonardo", true)

	summary, err := uc.Summary(context.Background(), "org-1", usecase.StatsInput{})
	require.NoError(t, err)

	assert.Equal(t, map[string]float64{"acc-1": 0, "acc-2": 0}, summary.AccountTotals)
}

func TestStatsDaySummary_BoundsToCalendarDay(t *testing.T) {
	uc, movementRepo, _ := newStatsFixture()

	seedMovement(t, movementRepo, "mv-morning", domain.MovementIncome, 400, day(2025, 6, 15).Add(8*time.Hour))
	seedMovement(t, movementRepo, "mv-night", domain.MovementIncome, 600, day(2025, 6, 15).Add(23*time.Hour+30*time.Minute))
	seedMovement(t, movementRepo, "mv-next-midnight", domain.MovementIncome, 100, day(2025, 6, 16))

	summary, err := uc.DaySummary(context.Background(), "org-1", testNow)
	require.NoError(t, err)

	assert.Equal(t, 1000.0, summary.TotalIncome, "midnight of the next day belongs to the next day")
}

func day(year int, month time.Month, d int) time.Time {
	return time.Date(year, month, d, 0, 0, 0, 0, time.UTC)
}
