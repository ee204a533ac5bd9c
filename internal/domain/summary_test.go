package domain_test

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/auradigitalchile/agendamiento-fletes/internal/domain"
)

func strptr(s string) *string { return &s }

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestSummarize_TwoAccountsScenario(t *testing.T) {
	accounts := []*domain.TransferAccount{
		{ID: "acc-a", Name: "Partner A", IsActive: true},
		{ID: "acc-b", Name: "Partner B", IsActive: true},
	}
	date := day("2024-01-01")
	movements := []*domain.CashMovement{
		{Type: domain.MovementIncome, Amount: 1000, Method: domain.MethodTransfer, TransferAccountID: strptr("acc-a"), Date: date},
		{Type: domain.MovementIncome, Amount: 500, Method: domain.MethodTransfer, TransferAccountID: strptr("acc-b"), Date: date},
		{Type: domain.MovementIncome, Amount: 200, Method: domain.MethodCash, Date: date},
		{Type: domain.MovementExpense, Amount: 150, Method: domain.MethodCash, Date: date},
	}

	s := domain.Summarize(movements, accounts, date.AddDate(0, 0, 1))

	assert.InDelta(t, 1700, s.TotalIncome, 1e-9)
	assert.InDelta(t, 150, s.TotalExpense, 1e-9)
	assert.InDelta(t, 1550, s.Balance, 1e-9)
	assert.InDelta(t, 200, s.CashTotal, 1e-9)
	assert.InDelta(t, 1000, s.AccountTotals["acc-a"], 1e-9)
	assert.InDelta(t, 500, s.AccountTotals["acc-b"], 1e-9)
}

func TestSummarize_Empty(t *testing.T) {
	s := domain.Summarize(nil, nil, day("2024-01-01"))

	assert.Zero(t, s.TotalIncome)
	assert.Zero(t, s.TotalExpense)
	assert.Zero(t, s.Balance)
	assert.Zero(t, s.CashTotal)
	assert.Empty(t, s.AccountTotals)
	assert.Empty(t, s.IncomeByCategory)
	assert.Empty(t, s.ExpenseByCategory)
	require.Len(t, s.WeeklyIncome, 4)
	for _, p := range s.WeeklyIncome {
		assert.Zero(t, p.Total)
	}
}

func TestSummarize_ZeroFillsActiveAccounts(t *testing.T) {
	accounts := []*domain.TransferAccount{
		{ID: "acc-a", Name: "A", IsActive: true},
		{ID: "acc-idle", Name: "Idle", IsActive: true},
	}
	movements := []*domain.CashMovement{
		{Type: domain.MovementIncome, Amount: 100, Method: domain.MethodTransfer, TransferAccountID: strptr("acc-a"), Date: day("2024-01-01")},
	}

	s := domain.Summarize(movements, accounts, day("2024-01-02"))

	total, ok := s.AccountTotals["acc-idle"]
	require.True(t, ok, "active account with no movements must still appear")
	assert.Zero(t, total)
	assert.Equal(t, []string{"acc-a", "acc-idle"}, s.AccountOrder)
}

func TestSummarize_InactiveAccountStillCounted(t *testing.T) {
	// Historical movements referencing a deactivated account keep their total
	// instead of silently dropping income.
	movements := []*domain.CashMovement{
		{Type: domain.MovementIncome, Amount: 300, Method: domain.MethodTransfer, TransferAccountID: strptr("acc-old"), Date: day("2024-01-01")},
	}

	s := domain.Summarize(movements, nil, day("2024-01-02"))

	assert.InDelta(t, 300, s.AccountTotals["acc-old"], 1e-9)
	assert.InDelta(t, 300, s.TotalIncome, 1e-9)
}

func TestSummarize_AccountTotalsPartitionTransferIncome(t *testing.T) {
	// Per-account totals must sum to the period's transfer income exactly:
	// nothing double-counted, nothing dropped.
	accounts := []*domain.TransferAccount{
		{ID: "a1", Name: "1", IsActive: true},
		{ID: "a2", Name: "2", IsActive: true},
		{ID: "a3", Name: "3", IsActive: true},
	}
	ids := []string{"a1", "a2", "a3", "a1", "a2", "a1"}
	amounts := []float64{10.5, 20.25, 7, 2.75, 100, 0.01}

	var ms []*domain.CashMovement
	var transferTotal float64
	for i := range ids {
		ms = append(ms, &domain.CashMovement{
			Type:              domain.MovementIncome,
			Amount:            amounts[i],
			Method:            domain.MethodTransfer,
			TransferAccountID: strptr(ids[i]),
			Date:              day("2024-03-10"),
		})
		transferTotal += amounts[i]
	}
	// Cash income must not leak into account totals.
	ms = append(ms, &domain.CashMovement{Type: domain.MovementIncome, Amount: 999, Method: domain.MethodCash, Date: day("2024-03-10")})

	s := domain.Summarize(ms, accounts, day("2024-03-11"))

	var sum float64
	for _, total := range s.AccountTotals {
		sum += total
	}
	assert.True(t, math.Abs(sum-transferTotal) < 1e-9, "sum=%v want=%v", sum, transferTotal)
}

func TestSummarize_CategoryOrderIsFirstAppearance(t *testing.T) {
	movements := []*domain.CashMovement{
		{Type: domain.MovementIncome, Amount: 10, Method: domain.MethodCash, Category: "Fletes", Date: day("2024-01-01")},
		{Type: domain.MovementIncome, Amount: 20, Method: domain.MethodCash, Category: "Mudanzas", Date: day("2024-01-01")},
		{Type: domain.MovementIncome, Amount: 5, Method: domain.MethodCash, Category: "Fletes", Date: day("2024-01-02")},
		{Type: domain.MovementIncome, Amount: 1, Method: domain.MethodCash, Date: day("2024-01-02")},
		{Type: domain.MovementExpense, Amount: 3, Method: domain.MethodCash, Category: "Bencina", Date: day("2024-01-02")},
	}

	s := domain.Summarize(movements, nil, day("2024-01-03"))

	require.Len(t, s.IncomeByCategory, 3)
	assert.Equal(t, "Fletes", s.IncomeByCategory[0].Category)
	assert.InDelta(t, 15, s.IncomeByCategory[0].Total, 1e-9)
	assert.Equal(t, "Mudanzas", s.IncomeByCategory[1].Category)
	assert.Equal(t, domain.Uncategorized, s.IncomeByCategory[2].Category)

	require.Len(t, s.ExpenseByCategory, 1)
	assert.Equal(t, "Bencina", s.ExpenseByCategory[0].Category)
}

func TestSummarize_WeeklyWindows(t *testing.T) {
	end := day("2024-02-01")
	movements := []*domain.CashMovement{
		// Falls in the last window [Jan 25, Feb 1).
		{Type: domain.MovementIncome, Amount: 100, Method: domain.MethodCash, Date: day("2024-01-28")},
		// Window start is inclusive.
		{Type: domain.MovementIncome, Amount: 40, Method: domain.MethodCash, Date: day("2024-01-25")},
		// Window end is exclusive; belongs to no window.
		{Type: domain.MovementIncome, Amount: 7, Method: domain.MethodCash, Date: end},
		// Second-to-last window [Jan 18, Jan 25).
		{Type: domain.MovementIncome, Amount: 30, Method: domain.MethodCash, Date: day("2024-01-20")},
		// Before all four windows.
		{Type: domain.MovementIncome, Amount: 1000, Method: domain.MethodCash, Date: day("2023-12-01")},
	}

	s := domain.Summarize(movements, nil, end)

	require.Len(t, s.WeeklyIncome, 4)
	assert.Equal(t, end.AddDate(0, 0, -21), s.WeeklyIncome[0].WeekEnd)
	assert.Equal(t, end, s.WeeklyIncome[3].WeekEnd)
	assert.Zero(t, s.WeeklyIncome[0].Total)
	assert.Zero(t, s.WeeklyIncome[1].Total)
	assert.InDelta(t, 30, s.WeeklyIncome[2].Total, 1e-9)
	assert.InDelta(t, 140, s.WeeklyIncome[3].Total, 1e-9)

	var windowed float64
	for _, p := range s.WeeklyIncome {
		windowed += p.Total
	}
	assert.InDelta(t, 170, windowed, 1e-9, "no movement may land in two windows")
}
