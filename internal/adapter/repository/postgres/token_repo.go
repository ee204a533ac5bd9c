package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/auradigitalchile/agendamiento-fletes/internal/domain"
	"github.com/auradigitalchile/agendamiento-fletes/internal/usecase"
)

// TokenRepository implements usecase.TokenRepository.
type TokenRepository struct {
	pool *pgxpool.Pool
}

// NewTokenRepository creates a new TokenRepository.
func NewTokenRepository(pool *pgxpool.Pool) *TokenRepository {
	return &TokenRepository{pool: pool}
}

const tokenColumns = `id, token, purpose, user_id, email, new_email, expires_at, used, created_at`

// Create inserts a new action token.
func (r *TokenRepository) Create(ctx context.Context, token *domain.ActionToken) error {
	query := `
		INSERT INTO action_tokens (` + tokenColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := r.pool.Exec(ctx, query,
		token.ID,
		token.Token,
		token.Purpose,
		token.UserID,
		token.Email,
		token.NewEmail,
		token.ExpiresAt,
		token.Used,
		token.CreatedAt,
	)

	return err
}

// GetByToken retrieves a token by its value and purpose, or (nil, nil) when
// unknown. Expiry and the used flag are the caller's checks.
func (r *TokenRepository) GetByToken(ctx context.Context, token string, purpose domain.TokenPurpose) (*domain.ActionToken, error) {
	query := `
		SELECT ` + tokenColumns + `
		FROM action_tokens
		WHERE token = $1 AND purpose = $2
	`

	var record domain.ActionToken
	err := r.pool.QueryRow(ctx, query, token, purpose).Scan(
		&record.ID,
		&record.Token,
		&record.Purpose,
		&record.UserID,
		&record.Email,
		&record.NewEmail,
		&record.ExpiresAt,
		&record.Used,
		&record.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &record, nil
}

// MarkUsedTx flags a token consumed within a transaction.
func (r *TokenRepository) MarkUsedTx(ctx context.Context, tx usecase.Transaction, id string) error {
	query := `UPDATE action_tokens SET used = TRUE WHERE id = $1`

	pgxTx := tx.(*Tx).PgxTx()
	tag, err := pgxTx.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.NewNotFoundError("token")
	}

	return nil
}
