package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/auradigitalchile/agendamiento-fletes/internal/domain"
)

// ClientRepository implements usecase.ClientRepository.
type ClientRepository struct {
	pool *pgxpool.Pool
}

// NewClientRepository creates a new ClientRepository.
func NewClientRepository(pool *pgxpool.Pool) *ClientRepository {
	return &ClientRepository{pool: pool}
}

const clientColumns = `id, organization_id, name, phone, email, default_address, notes, created_at, updated_at`

// Create inserts a new client.
func (r *ClientRepository) Create(ctx context.Context, client *domain.Client) error {
	query := `
		INSERT INTO clients (` + clientColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := r.pool.Exec(ctx, query,
		client.ID,
		client.OrganizationID,
		client.Name,
		client.Phone,
		client.Email,
		client.DefaultAddress,
		client.Notes,
		client.CreatedAt,
		client.UpdatedAt,
	)

	return err
}

// GetByID retrieves a client scoped to the organization.
func (r *ClientRepository) GetByID(ctx context.Context, orgID, id string) (*domain.Client, error) {
	query := `
		SELECT ` + clientColumns + `
		FROM clients
		WHERE organization_id = $1 AND id = $2
	`

	client, err := scanClient(r.pool.QueryRow(ctx, query, orgID, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.NewNotFoundError("client")
	}

	return client, err
}

// List retrieves the organization's clients ordered by name.
func (r *ClientRepository) List(ctx context.Context, orgID string) ([]*domain.Client, error) {
	query := `
		SELECT ` + clientColumns + `
		FROM clients
		WHERE organization_id = $1
		ORDER BY name ASC
	`

	rows, err := r.pool.Query(ctx, query, orgID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var clients []*domain.Client
	for rows.Next() {
		client, err := scanClient(rows)
		if err != nil {
			return nil, err
		}
		clients = append(clients, client)
	}

	return clients, rows.Err()
}

// Update replaces a client's payload.
func (r *ClientRepository) Update(ctx context.Context, client *domain.Client) error {
	query := `
		UPDATE clients
		SET name = $3, phone = $4, email = $5, default_address = $6, notes = $7, updated_at = $8
		WHERE organization_id = $1 AND id = $2
	`

	tag, err := r.pool.Exec(ctx, query,
		client.OrganizationID,
		client.ID,
		client.Name,
		client.Phone,
		client.Email,
		client.DefaultAddress,
		client.Notes,
		client.UpdatedAt,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.NewNotFoundError("client")
	}

	return nil
}

// Delete removes a client. Services keep their inline client snapshot, so
// deleting a directory entry never touches scheduled work.
func (r *ClientRepository) Delete(ctx context.Context, orgID, id string) error {
	query := `DELETE FROM clients WHERE organization_id = $1 AND id = $2`

	tag, err := r.pool.Exec(ctx, query, orgID, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.NewNotFoundError("client")
	}

	return nil
}

func scanClient(row pgx.Row) (*domain.Client, error) {
	var client domain.Client
	err := row.Scan(
		&client.ID,
		&client.OrganizationID,
		&client.Name,
		&client.Phone,
		&client.Email,
		&client.DefaultAddress,
		&client.Notes,
		&client.CreatedAt,
		&client.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	return &client, nil
}
