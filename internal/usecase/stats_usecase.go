package usecase

import (
	"context"
	"time"

	"github.com/auradigitalchile/agendamiento-fletes/internal/domain"
)

// StatsUseCase computes period summaries for the cash dashboard. The
// aggregation itself is the pure domain.Summarize; this usecase only loads the
// inputs. The movement read and the account read are not snapshot-consistent
// with each other: an account created between the two reads shows up with a
// zero total, which is accepted.
type StatsUseCase struct {
	movementRepo MovementRepository
	accountRepo  TransferAccountRepository
	clock        Clock
}

// NewStatsUseCase creates a new StatsUseCase.
func NewStatsUseCase(movementRepo MovementRepository, accountRepo TransferAccountRepository, clock Clock) *StatsUseCase {
	return &StatsUseCase{
		movementRepo: movementRepo,
		accountRepo:  accountRepo,
		clock:        clock,
	}
}

// StatsInput bounds the stats period. Nil dates default to the last four
// weeks ending now.
type StatsInput struct {
	StartDate *time.Time
	EndDate   *time.Time
}

// Summary aggregates the organization's movements for the period.
func (uc *StatsUseCase) Summary(ctx context.Context, orgID string, input StatsInput) (*domain.CashSummary, error) {
	end := uc.clock.Now().UTC()
	if input.EndDate != nil {
		end = input.EndDate.UTC()
	}
	start := end.AddDate(0, 0, -28)
	if input.StartDate != nil {
		start = input.StartDate.UTC()
	}

	movements, err := uc.movementRepo.List(ctx, orgID, domain.MovementFilter{
		From: &start,
		To:   &end,
	}, true)
	if err != nil {
		return nil, err
	}

	accounts, err := uc.accountRepo.List(ctx, orgID, true)
	if err != nil {
		return nil, err
	}

	return domain.Summarize(movements, accounts, end), nil
}

// DaySummary aggregates a single day, the input the daily close is built from.
func (uc *StatsUseCase) DaySummary(ctx context.Context, orgID string, date time.Time) (*domain.CashSummary, error) {
	start := domain.DayOf(date)
	end := start.AddDate(0, 0, 1)
	return uc.Summary(ctx, orgID, StatsInput{StartDate: &start, EndDate: &end})
}
