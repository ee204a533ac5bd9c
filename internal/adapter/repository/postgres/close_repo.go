package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/auradigitalchile/agendamiento-fletes/internal/domain"
	"github.com/auradigitalchile/agendamiento-fletes/internal/usecase"
)

// DailyCloseRepository implements usecase.DailyCloseRepository. transfer_totals
// is stored as JSONB keyed by transfer account id; the legacy_transfer_*
// columns survive from the two-bucket schema and are read only by the
// reconciler.
type DailyCloseRepository struct {
	pool *pgxpool.Pool
}

// NewDailyCloseRepository creates a new DailyCloseRepository.
func NewDailyCloseRepository(pool *pgxpool.Pool) *DailyCloseRepository {
	return &DailyCloseRepository{pool: pool}
}

const closeColumns = `id, organization_id, date, total_cash, transfer_totals, total_expenses,
	final_cash, notes, closed_by, legacy_transfer_andres, legacy_transfer_hermano,
	created_at, updated_at`

// Create inserts a close within a transaction. The unique index on
// (organization_id, date) is the race guard behind the one-close-per-day
// invariant; a violation maps to the same conflict the usecase pre-check
// reports.
func (r *DailyCloseRepository) Create(ctx context.Context, tx usecase.Transaction, close *domain.DailyClose) error {
	totals, err := json.Marshal(close.TransferTotals)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO daily_closes (` + closeColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`

	pgxTx := tx.(*Tx).PgxTx()
	_, err = pgxTx.Exec(ctx, query,
		close.ID,
		close.OrganizationID,
		close.Date,
		close.TotalCash,
		totals,
		close.TotalExpenses,
		close.FinalCash,
		close.Notes,
		close.ClosedBy,
		close.LegacyTransferAndres,
		close.LegacyTransferHermano,
		close.CreatedAt,
		close.UpdatedAt,
	)

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgErrUniqueViolation {
		return domain.NewDuplicateCloseError(close.Date)
	}

	return err
}

// GetByDate retrieves the close for a date, or (nil, nil) when the day is open.
func (r *DailyCloseRepository) GetByDate(ctx context.Context, orgID string, date time.Time) (*domain.DailyClose, error) {
	query := `
		SELECT ` + closeColumns + `
		FROM daily_closes
		WHERE organization_id = $1 AND date = $2
	`

	close, err := scanClose(r.pool.QueryRow(ctx, query, orgID, date))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}

	return close, err
}

// List retrieves the organization's closes in the period, newest first.
func (r *DailyCloseRepository) List(ctx context.Context, orgID string, from, to *time.Time) ([]*domain.DailyClose, error) {
	query := `
		SELECT ` + closeColumns + `
		FROM daily_closes
		WHERE organization_id = $1
	`
	args := []any{orgID}

	if from != nil {
		args = append(args, *from)
		query += fmt.Sprintf(` AND date >= $%d`, len(args))
	}
	if to != nil {
		args = append(args, *to)
		query += fmt.Sprintf(` AND date < $%d`, len(args))
	}

	query += ` ORDER BY date DESC`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var closes []*domain.DailyClose
	for rows.Next() {
		close, err := scanClose(rows)
		if err != nil {
			return nil, err
		}
		closes = append(closes, close)
	}

	return closes, rows.Err()
}

// ListLegacyPending retrieves closes still carrying two-bucket totals without
// a per-account totals map.
func (r *DailyCloseRepository) ListLegacyPending(ctx context.Context, orgID string) ([]*domain.DailyClose, error) {
	query := `
		SELECT ` + closeColumns + `
		FROM daily_closes
		WHERE organization_id = $1
		  AND transfer_totals IS NULL
		  AND (legacy_transfer_andres IS NOT NULL OR legacy_transfer_hermano IS NOT NULL)
		ORDER BY date ASC
	`

	rows, err := r.pool.Query(ctx, query, orgID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var closes []*domain.DailyClose
	for rows.Next() {
		close, err := scanClose(rows)
		if err != nil {
			return nil, err
		}
		closes = append(closes, close)
	}

	return closes, rows.Err()
}

// SetTransferTotals backfills the totals map on a legacy close. The
// transfer_totals IS NULL guard keeps the backfill write-once: a rerun matches
// no rows and already-migrated data is never overwritten.
func (r *DailyCloseRepository) SetTransferTotals(ctx context.Context, id string, totals map[string]float64) error {
	payload, err := json.Marshal(totals)
	if err != nil {
		return err
	}

	query := `
		UPDATE daily_closes
		SET transfer_totals = $2, updated_at = now()
		WHERE id = $1 AND transfer_totals IS NULL
	`

	_, err = r.pool.Exec(ctx, query, id, payload)

	return err
}

func scanClose(row pgx.Row) (*domain.DailyClose, error) {
	var close domain.DailyClose
	var totals []byte

	err := row.Scan(
		&close.ID,
		&close.OrganizationID,
		&close.Date,
		&close.TotalCash,
		&totals,
		&close.TotalExpenses,
		&close.FinalCash,
		&close.Notes,
		&close.ClosedBy,
		&close.LegacyTransferAndres,
		&close.LegacyTransferHermano,
		&close.CreatedAt,
		&close.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if totals != nil {
		if err := json.Unmarshal(totals, &close.TransferTotals); err != nil {
			return nil, err
		}
	}

	return &close, nil
}
