package usecase

import (
	"context"
	"time"

	"github.com/auradigitalchile/agendamiento-fletes/internal/domain"
)

// CloseUseCase records immutable end-of-day snapshots. Per (organization, day)
// the only transition is NoClose -> Closed; there is no edit or reopen.
type CloseUseCase struct {
	txManager TransactionManager
	closeRepo DailyCloseRepository
	retrier   Retrier
	idGen     IDGenerator
	clock     Clock
}

// NewCloseUseCase creates a new CloseUseCase.
func NewCloseUseCase(txManager TransactionManager, closeRepo DailyCloseRepository, retrier Retrier, idGen IDGenerator, clock Clock) *CloseUseCase {
	return &CloseUseCase{
		txManager: txManager,
		closeRepo: closeRepo,
		retrier:   retrier,
		idGen:     idGen,
		clock:     clock,
	}
}

// GetByDate returns the close for a date, or (nil, nil) when the day is open.
func (uc *CloseUseCase) GetByDate(ctx context.Context, orgID string, date time.Time) (*domain.DailyClose, error) {
	return uc.closeRepo.GetByDate(ctx, orgID, domain.DayOf(date))
}

// List returns the organization's closes in the period, newest first.
func (uc *CloseUseCase) List(ctx context.Context, orgID string, from, to *time.Time) ([]*domain.DailyClose, error) {
	return uc.closeRepo.List(ctx, orgID, from, to)
}

// CreateCloseInput snapshots an aggregation into a close.
type CreateCloseInput struct {
	Date     time.Time
	Summary  *domain.CashSummary
	Notes    string
	ClosedBy string
}

// Create snapshots the day's aggregation. The duplicate check runs first so
// the caller gets a conflict naming the date; the unique index on
// (organization_id, date) is the actual race guard, and the insert runs inside
// a transaction retried on transient failures. finalCash is derived, never
// taken from input.
func (uc *CloseUseCase) Create(ctx context.Context, orgID string, input CreateCloseInput) (*domain.DailyClose, error) {
	date := domain.DayOf(input.Date)

	existing, err := uc.closeRepo.GetByDate(ctx, orgID, date)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.NewDuplicateCloseError(date)
	}

	totals := make(map[string]float64, len(input.Summary.AccountTotals))
	for id, total := range input.Summary.AccountTotals {
		totals[id] = total
	}

	now := uc.clock.Now().UTC()
	close := &domain.DailyClose{
		ID:             uc.idGen.Generate(),
		OrganizationID: orgID,
		Date:           date,
		TotalCash:      input.Summary.CashTotal,
		TransferTotals: totals,
		TotalExpenses:  input.Summary.TotalExpense,
		FinalCash:      input.Summary.CashTotal - input.Summary.TotalExpense,
		Notes:          input.Notes,
		ClosedBy:       input.ClosedBy,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	err = uc.retrier.Retry(ctx, func() error {
		tx, err := uc.txManager.Begin(ctx)
		if err != nil {
			return err
		}
		if err := uc.closeRepo.Create(ctx, tx, close); err != nil {
			_ = tx.Rollback(ctx)
			return err
		}
		return tx.Commit(ctx)
	})
	if err != nil {
		return nil, err
	}

	return close, nil
}
