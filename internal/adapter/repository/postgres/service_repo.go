package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/auradigitalchile/agendamiento-fletes/internal/domain"
)

// ServiceRepository implements usecase.ServiceRepository.
type ServiceRepository struct {
	pool *pgxpool.Pool
}

// NewServiceRepository creates a new ServiceRepository.
func NewServiceRepository(pool *pgxpool.Pool) *ServiceRepository {
	return &ServiceRepository{pool: pool}
}

const serviceColumns = `id, organization_id, client_id, client_name, client_phone, client_address,
	type, status, scheduled_date, price, origin, destination, cargo_description,
	requires_helper, debris_type, debris_quantity, notes, created_at, updated_at`

// Create inserts a new service.
func (r *ServiceRepository) Create(ctx context.Context, service *domain.Service) error {
	query := `
		INSERT INTO services (` + serviceColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)
	`

	_, err := r.pool.Exec(ctx, query,
		service.ID,
		service.OrganizationID,
		service.ClientID,
		service.ClientName,
		service.ClientPhone,
		service.ClientAddress,
		service.Type,
		service.Status,
		service.ScheduledDate,
		decimalToNumeric(service.Price),
		service.Origin,
		service.Destination,
		service.CargoDescription,
		service.RequiresHelper,
		service.DebrisType,
		service.DebrisQuantity,
		service.Notes,
		service.CreatedAt,
		service.UpdatedAt,
	)

	return err
}

// GetByID retrieves a service scoped to the organization.
func (r *ServiceRepository) GetByID(ctx context.Context, orgID, id string) (*domain.Service, error) {
	query := `
		SELECT ` + serviceColumns + `
		FROM services
		WHERE organization_id = $1 AND id = $2
	`

	service, err := scanService(r.pool.QueryRow(ctx, query, orgID, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.NewNotFoundError("service")
	}

	return service, err
}

// List retrieves the organization's services matching filter, ordered by
// scheduled date.
func (r *ServiceRepository) List(ctx context.Context, orgID string, filter domain.ServiceFilter, asc bool) ([]*domain.Service, error) {
	query := `
		SELECT ` + serviceColumns + `
		FROM services
		WHERE organization_id = $1
	`
	args := []any{orgID}

	if filter.Type != "" {
		args = append(args, filter.Type)
		query += fmt.Sprintf(` AND type = $%d`, len(args))
	}
	if filter.Status != "" {
		args = append(args, filter.Status)
		query += fmt.Sprintf(` AND status = $%d`, len(args))
	}
	if filter.ClientID != "" {
		args = append(args, filter.ClientID)
		query += fmt.Sprintf(` AND client_id = $%d`, len(args))
	}
	if filter.From != nil {
		args = append(args, *filter.From)
		query += fmt.Sprintf(` AND scheduled_date >= $%d`, len(args))
	}
	if filter.To != nil {
		args = append(args, *filter.To)
		query += fmt.Sprintf(` AND scheduled_date < $%d`, len(args))
	}

	if asc {
		query += ` ORDER BY scheduled_date ASC`
	} else {
		query += ` ORDER BY scheduled_date DESC`
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var services []*domain.Service
	for rows.Next() {
		service, err := scanService(rows)
		if err != nil {
			return nil, err
		}
		services = append(services, service)
	}

	return services, rows.Err()
}

// Update replaces a service's payload.
func (r *ServiceRepository) Update(ctx context.Context, service *domain.Service) error {
	query := `
		UPDATE services
		SET client_id = $3, client_name = $4, client_phone = $5, client_address = $6,
		    type = $7, status = $8, scheduled_date = $9, price = $10,
		    origin = $11, destination = $12, cargo_description = $13,
		    requires_helper = $14, debris_type = $15, debris_quantity = $16,
		    notes = $17, updated_at = $18
		WHERE organization_id = $1 AND id = $2
	`

	tag, err := r.pool.Exec(ctx, query,
		service.OrganizationID,
		service.ID,
		service.ClientID,
		service.ClientName,
		service.ClientPhone,
		service.ClientAddress,
		service.Type,
		service.Status,
		service.ScheduledDate,
		decimalToNumeric(service.Price),
		service.Origin,
		service.Destination,
		service.CargoDescription,
		service.RequiresHelper,
		service.DebrisType,
		service.DebrisQuantity,
		service.Notes,
		service.UpdatedAt,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.NewNotFoundError("service")
	}

	return nil
}

// Delete removes a service scoped to the organization.
func (r *ServiceRepository) Delete(ctx context.Context, orgID, id string) error {
	query := `DELETE FROM services WHERE organization_id = $1 AND id = $2`

	tag, err := r.pool.Exec(ctx, query, orgID, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.NewNotFoundError("service")
	}

	return nil
}

func scanService(row pgx.Row) (*domain.Service, error) {
	var service domain.Service
	var price pgtype.Numeric

	err := row.Scan(
		&service.ID,
		&service.OrganizationID,
		&service.ClientID,
		&service.ClientName,
		&service.ClientPhone,
		&service.ClientAddress,
		&service.Type,
		&service.Status,
		&service.ScheduledDate,
		&price,
		&service.Origin,
		&service.Destination,
		&service.CargoDescription,
		&service.RequiresHelper,
		&service.DebrisType,
		&service.DebrisQuantity,
		&service.Notes,
		&service.CreatedAt,
		&service.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	service.Price = numericToDecimal(price)

	return &service, nil
}

// Type conversion helpers.
func decimalToNumeric(d decimal.Decimal) pgtype.Numeric {
	var n pgtype.Numeric

	_ = n.Scan(d.String())

	return n
}

func numericToDecimal(n pgtype.Numeric) decimal.Decimal {
	if !n.Valid {
		return decimal.Zero
	}

	d, _ := decimal.NewFromString(n.Int.String())
	if n.Exp != 0 {
		d = d.Shift(n.Exp)
	}

	return d
}
