package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/auradigitalchile/agendamiento-fletes/internal/domain"
	"github.com/auradigitalchile/agendamiento-fletes/internal/usecase"
)

const pgErrUniqueViolation = "23505"

// TransferAccountRepository implements usecase.TransferAccountRepository.
type TransferAccountRepository struct {
	pool *pgxpool.Pool
}

// NewTransferAccountRepository creates a new TransferAccountRepository.
func NewTransferAccountRepository(pool *pgxpool.Pool) *TransferAccountRepository {
	return &TransferAccountRepository{pool: pool}
}

const accountColumns = `id, organization_id, name, is_active, created_at, updated_at`

const insertAccountQuery = `
	INSERT INTO transfer_accounts (` + accountColumns + `)
	VALUES ($1, $2, $3, $4, $5, $6)
`

// Create inserts a new transfer account. The unique index on
// (organization_id, name) backs the per-organization name invariant.
func (r *TransferAccountRepository) Create(ctx context.Context, account *domain.TransferAccount) error {
	_, err := r.pool.Exec(ctx, insertAccountQuery,
		account.ID,
		account.OrganizationID,
		account.Name,
		account.IsActive,
		account.CreatedAt,
		account.UpdatedAt,
	)

	return mapAccountError(err)
}

// CreateTx inserts a new transfer account within a transaction.
func (r *TransferAccountRepository) CreateTx(ctx context.Context, tx usecase.Transaction, account *domain.TransferAccount) error {
	pgxTx := tx.(*Tx).PgxTx()

	_, err := pgxTx.Exec(ctx, insertAccountQuery,
		account.ID,
		account.OrganizationID,
		account.Name,
		account.IsActive,
		account.CreatedAt,
		account.UpdatedAt,
	)

	return mapAccountError(err)
}

// GetByID retrieves an account scoped to the organization.
func (r *TransferAccountRepository) GetByID(ctx context.Context, orgID, id string) (*domain.TransferAccount, error) {
	query := `
		SELECT ` + accountColumns + `
		FROM transfer_accounts
		WHERE organization_id = $1 AND id = $2
	`

	account, err := scanAccount(r.pool.QueryRow(ctx, query, orgID, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.NewNotFoundError("transfer account")
	}

	return account, err
}

// GetByName retrieves an account by name, or (nil, nil) when the name is free.
func (r *TransferAccountRepository) GetByName(ctx context.Context, orgID, name string) (*domain.TransferAccount, error) {
	query := `
		SELECT ` + accountColumns + `
		FROM transfer_accounts
		WHERE organization_id = $1 AND name = $2
	`

	account, err := scanAccount(r.pool.QueryRow(ctx, query, orgID, name))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}

	return account, err
}

// List retrieves the organization's accounts ordered by name.
func (r *TransferAccountRepository) List(ctx context.Context, orgID string, activeOnly bool) ([]*domain.TransferAccount, error) {
	query := `
		SELECT ` + accountColumns + `
		FROM transfer_accounts
		WHERE organization_id = $1
	`
	if activeOnly {
		query += ` AND is_active`
	}
	query += ` ORDER BY name ASC`

	rows, err := r.pool.Query(ctx, query, orgID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var accounts []*domain.TransferAccount
	for rows.Next() {
		account, err := scanAccount(rows)
		if err != nil {
			return nil, err
		}
		accounts = append(accounts, account)
	}

	return accounts, rows.Err()
}

// Update replaces an account's name and active flag.
func (r *TransferAccountRepository) Update(ctx context.Context, account *domain.TransferAccount) error {
	query := `
		UPDATE transfer_accounts
		SET name = $3, is_active = $4, updated_at = $5
		WHERE organization_id = $1 AND id = $2
	`

	tag, err := r.pool.Exec(ctx, query,
		account.OrganizationID,
		account.ID,
		account.Name,
		account.IsActive,
		account.UpdatedAt,
	)
	if err != nil {
		return mapAccountError(err)
	}
	if tag.RowsAffected() == 0 {
		return domain.NewNotFoundError("transfer account")
	}

	return nil
}

// Delete removes an account scoped to the organization.
func (r *TransferAccountRepository) Delete(ctx context.Context, orgID, id string) error {
	query := `DELETE FROM transfer_accounts WHERE organization_id = $1 AND id = $2`

	tag, err := r.pool.Exec(ctx, query, orgID, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.NewNotFoundError("transfer account")
	}

	return nil
}

// mapAccountError surfaces a unique-index race as the same conflict the
// usecase's pre-check reports.
func mapAccountError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgErrUniqueViolation {
		return domain.NewConflictError("a transfer account with that name already exists")
	}
	return err
}

func scanAccount(row pgx.Row) (*domain.TransferAccount, error) {
	var account domain.TransferAccount
	err := row.Scan(
		&account.ID,
		&account.OrganizationID,
		&account.Name,
		&account.IsActive,
		&account.CreatedAt,
		&account.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	return &account, nil
}
