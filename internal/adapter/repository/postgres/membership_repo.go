package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/auradigitalchile/agendamiento-fletes/internal/domain"
	"github.com/auradigitalchile/agendamiento-fletes/internal/usecase"
)

// MembershipRepository implements usecase.MembershipRepository.
type MembershipRepository struct {
	pool *pgxpool.Pool
}

// NewMembershipRepository creates a new MembershipRepository.
func NewMembershipRepository(pool *pgxpool.Pool) *MembershipRepository {
	return &MembershipRepository{pool: pool}
}

// CreateTx inserts a new membership within a transaction.
func (r *MembershipRepository) CreateTx(ctx context.Context, tx usecase.Transaction, membership *domain.Membership) error {
	query := `
		INSERT INTO memberships (id, user_id, organization_id, role, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	pgxTx := tx.(*Tx).PgxTx()
	_, err := pgxTx.Exec(ctx, query,
		membership.ID,
		membership.UserID,
		membership.OrganizationID,
		membership.Role,
		membership.CreatedAt,
	)

	return err
}

// GetForUser retrieves the user's membership, or (nil, nil) when the user has
// no organization. Users currently belong to at most one organization; the
// oldest wins if more ever exist.
func (r *MembershipRepository) GetForUser(ctx context.Context, userID string) (*domain.Membership, error) {
	query := `
		SELECT id, user_id, organization_id, role, created_at
		FROM memberships
		WHERE user_id = $1
		ORDER BY created_at ASC
		LIMIT 1
	`

	var membership domain.Membership
	err := r.pool.QueryRow(ctx, query, userID).Scan(
		&membership.ID,
		&membership.UserID,
		&membership.OrganizationID,
		&membership.Role,
		&membership.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &membership, nil
}
