package domain

import "time"

// DailyClose is an immutable end-of-day snapshot of the ledger's aggregated
// totals. At most one close exists per (organization, day); once created it is
// never updated or deleted, so later edits to movements do not flow back into
// it.
type DailyClose struct {
	ID             string
	OrganizationID string
	// Date is day-normalized (midnight UTC).
	Date      time.Time
	TotalCash float64
	// TransferTotals maps transfer account id to that account's summed income
	// for the day. Nil on rows written before the named-account model; the
	// reconciler backfills it from the legacy columns below.
	TransferTotals map[string]float64
	TotalExpenses  float64
	FinalCash      float64
	Notes          string
	ClosedBy       string
	CreatedAt      time.Time
	UpdatedAt      time.Time

	// Legacy two-bucket columns, kept nullable for reconciliation only.
	LegacyTransferAndres  *float64
	LegacyTransferHermano *float64
}

// DayOf normalizes t to midnight UTC, the granularity closes are keyed on.
func DayOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
