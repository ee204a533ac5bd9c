package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/auradigitalchile/agendamiento-fletes/internal/domain"
)

// MovementRepository implements usecase.MovementRepository.
type MovementRepository struct {
	pool *pgxpool.Pool
}

// NewMovementRepository creates a new MovementRepository.
func NewMovementRepository(pool *pgxpool.Pool) *MovementRepository {
	return &MovementRepository{pool: pool}
}

const movementColumns = `id, organization_id, type, amount, method, transfer_account_id, category, description, date, created_at, updated_at`

// Create inserts a new cash movement.
func (r *MovementRepository) Create(ctx context.Context, movement *domain.CashMovement) error {
	query := `
		INSERT INTO cash_movements (` + movementColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	_, err := r.pool.Exec(ctx, query,
		movement.ID,
		movement.OrganizationID,
		movement.Type,
		movement.Amount,
		movement.Method,
		movement.TransferAccountID,
		movement.Category,
		movement.Description,
		movement.Date,
		movement.CreatedAt,
		movement.UpdatedAt,
	)

	return err
}

// GetByID retrieves a movement scoped to the organization.
func (r *MovementRepository) GetByID(ctx context.Context, orgID, id string) (*domain.CashMovement, error) {
	query := `
		SELECT ` + movementColumns + `
		FROM cash_movements
		WHERE organization_id = $1 AND id = $2
	`

	movement, err := scanMovement(r.pool.QueryRow(ctx, query, orgID, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.NewNotFoundError("cash movement")
	}

	return movement, err
}

// List retrieves the organization's movements matching filter, ordered by date.
func (r *MovementRepository) List(ctx context.Context, orgID string, filter domain.MovementFilter, asc bool) ([]*domain.CashMovement, error) {
	query := `
		SELECT ` + movementColumns + `
		FROM cash_movements
		WHERE organization_id = $1
	`
	args := []any{orgID}

	if filter.From != nil {
		args = append(args, *filter.From)
		query += fmt.Sprintf(` AND date >= $%d`, len(args))
	}
	if filter.To != nil {
		args = append(args, *filter.To)
		query += fmt.Sprintf(` AND date < $%d`, len(args))
	}
	if filter.Type != "" {
		args = append(args, filter.Type)
		query += fmt.Sprintf(` AND type = $%d`, len(args))
	}
	if filter.Method != "" {
		args = append(args, filter.Method)
		query += fmt.Sprintf(` AND method = $%d`, len(args))
	}

	if asc {
		query += ` ORDER BY date ASC, created_at ASC`
	} else {
		query += ` ORDER BY date DESC, created_at DESC`
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var movements []*domain.CashMovement
	for rows.Next() {
		movement, err := scanMovement(rows)
		if err != nil {
			return nil, err
		}
		movements = append(movements, movement)
	}

	return movements, rows.Err()
}

// Update replaces a movement's mutable fields.
func (r *MovementRepository) Update(ctx context.Context, movement *domain.CashMovement) error {
	query := `
		UPDATE cash_movements
		SET type = $3, amount = $4, method = $5, transfer_account_id = $6,
		    category = $7, description = $8, date = $9, updated_at = $10
		WHERE organization_id = $1 AND id = $2
	`

	tag, err := r.pool.Exec(ctx, query,
		movement.OrganizationID,
		movement.ID,
		movement.Type,
		movement.Amount,
		movement.Method,
		movement.TransferAccountID,
		movement.Category,
		movement.Description,
		movement.Date,
		movement.UpdatedAt,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.NewNotFoundError("cash movement")
	}

	return nil
}

// Delete removes a movement scoped to the organization.
func (r *MovementRepository) Delete(ctx context.Context, orgID, id string) error {
	query := `DELETE FROM cash_movements WHERE organization_id = $1 AND id = $2`

	tag, err := r.pool.Exec(ctx, query, orgID, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.NewNotFoundError("cash movement")
	}

	return nil
}

// CountByTransferAccount counts movements referencing an account.
func (r *MovementRepository) CountByTransferAccount(ctx context.Context, accountID string) (int64, error) {
	query := `SELECT COUNT(*) FROM cash_movements WHERE transfer_account_id = $1`

	var count int64
	err := r.pool.QueryRow(ctx, query, accountID).Scan(&count)

	return count, err
}

// RetagLegacy rewrites movements still carrying a retired two-bucket method
// into TRANSFER movements referencing accountID. The transfer_account_id IS
// NULL guard makes the statement idempotent: rerunning it matches no rows.
func (r *MovementRepository) RetagLegacy(ctx context.Context, orgID, legacyMethod, accountID string) (int64, error) {
	query := `
		UPDATE cash_movements
		SET method = $3, transfer_account_id = $4, updated_at = now()
		WHERE organization_id = $1 AND method = $2 AND transfer_account_id IS NULL
	`

	tag, err := r.pool.Exec(ctx, query, orgID, legacyMethod, domain.MethodTransfer, accountID)
	if err != nil {
		return 0, err
	}

	return tag.RowsAffected(), nil
}

func scanMovement(row pgx.Row) (*domain.CashMovement, error) {
	var movement domain.CashMovement
	err := row.Scan(
		&movement.ID,
		&movement.OrganizationID,
		&movement.Type,
		&movement.Amount,
		&movement.Method,
		&movement.TransferAccountID,
		&movement.Category,
		&movement.Description,
		&movement.Date,
		&movement.CreatedAt,
		&movement.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	return &movement, nil
}
