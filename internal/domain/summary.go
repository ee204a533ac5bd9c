package domain

import "time"

// Uncategorized is the bucket label for movements without a category.
const Uncategorized = "Sin categoría"

// CategoryTotal is one row of a category breakdown. Order of rows follows the
// first appearance of each category in the input, which the dashboard relies
// on for stable chart ordering.
type CategoryTotal struct {
	Category string
	Total    float64
}

// WeeklyIncome is one point of the four-week income trend, labeled with the
// window's end date.
type WeeklyIncome struct {
	WeekEnd time.Time
	Total   float64
}

// CashSummary is the aggregation of a period's movements.
type CashSummary struct {
	TotalIncome  float64
	TotalExpense float64
	Balance      float64
	// CashTotal sums INCOME movements settled in cash.
	CashTotal float64
	// AccountTotals sums TRANSFER income per active transfer account. Every
	// active account appears, with 0 when no movement references it.
	AccountTotals map[string]float64
	// AccountOrder lists AccountTotals keys in registry order (by name).
	AccountOrder      []string
	IncomeByCategory  []CategoryTotal
	ExpenseByCategory []CategoryTotal
	WeeklyIncome      []WeeklyIncome
}

// Summarize aggregates movements into period totals. It is a pure function of
// its inputs: movements for the period, the organization's active transfer
// accounts, and the period end used to anchor the weekly trend. An empty
// movement slice yields all-zero totals, not an error.
func Summarize(movements []*CashMovement, accounts []*TransferAccount, endDate time.Time) *CashSummary {
	s := &CashSummary{
		AccountTotals: make(map[string]float64, len(accounts)),
		AccountOrder:  make([]string, 0, len(accounts)),
	}

	// Every active account appears in the summary, even with no movements.
	for _, acc := range accounts {
		s.AccountTotals[acc.ID] = 0
		s.AccountOrder = append(s.AccountOrder, acc.ID)
	}

	var income, expense []*CashMovement
	for _, m := range movements {
		switch m.Type {
		case MovementIncome:
			income = append(income, m)
		case MovementExpense:
			expense = append(expense, m)
		}
	}

	for _, m := range income {
		s.TotalIncome += m.Amount
		switch m.Method {
		case MethodCash:
			s.CashTotal += m.Amount
		case MethodTransfer:
			if m.TransferAccountID != nil {
				if _, known := s.AccountTotals[*m.TransferAccountID]; known {
					s.AccountTotals[*m.TransferAccountID] += m.Amount
				} else {
					// Inactive accounts still referenced by historical rows
					// keep their totals rather than dropping the amount.
					s.AccountTotals[*m.TransferAccountID] = m.Amount
					s.AccountOrder = append(s.AccountOrder, *m.TransferAccountID)
				}
			}
		}
	}
	for _, m := range expense {
		s.TotalExpense += m.Amount
	}
	s.Balance = s.TotalIncome - s.TotalExpense

	s.IncomeByCategory = groupByCategory(income)
	s.ExpenseByCategory = groupByCategory(expense)
	s.WeeklyIncome = weeklyIncome(income, endDate)

	return s
}

// groupByCategory buckets movements by category in first-appearance order.
// Go maps do not preserve insertion order, so the order is tracked explicitly.
func groupByCategory(movements []*CashMovement) []CategoryTotal {
	totals := make(map[string]float64)
	order := make([]string, 0)

	for _, m := range movements {
		category := m.Category
		if category == "" {
			category = Uncategorized
		}
		if _, seen := totals[category]; !seen {
			order = append(order, category)
		}
		totals[category] += m.Amount
	}

	result := make([]CategoryTotal, 0, len(order))
	for _, category := range order {
		result = append(result, CategoryTotal{Category: category, Total: totals[category]})
	}
	return result
}

// weeklyIncome sums income over four non-overlapping 7-day windows ending at
// endDate, endDate-7d, endDate-14d and endDate-21d. Each window is half-open
// [start, end) so boundary instants are counted exactly once.
func weeklyIncome(income []*CashMovement, endDate time.Time) []WeeklyIncome {
	points := make([]WeeklyIncome, 0, 4)

	for i := 3; i >= 0; i-- {
		windowEnd := endDate.AddDate(0, 0, -7*i)
		windowStart := windowEnd.AddDate(0, 0, -7)

		var total float64
		for _, m := range income {
			if !m.Date.Before(windowStart) && m.Date.Before(windowEnd) {
				total += m.Amount
			}
		}
		points = append(points, WeeklyIncome{WeekEnd: windowEnd, Total: total})
	}

	return points
}
