package usecase

import (
	"context"
	"time"

	"github.com/auradigitalchile/agendamiento-fletes/internal/domain"
)

// MovementRepository defines data access for cash movements. Every lookup is
// scoped by organization id; a row owned by another organization behaves as
// absent.
type MovementRepository interface {
	Create(ctx context.Context, movement *domain.CashMovement) error
	GetByID(ctx context.Context, orgID, id string) (*domain.CashMovement, error)
	// List returns movements matching filter, ordered by date descending when
	// asc is false (listing) or ascending when true (aggregation).
	List(ctx context.Context, orgID string, filter domain.MovementFilter, asc bool) ([]*domain.CashMovement, error)
	Update(ctx context.Context, movement *domain.CashMovement) error
	Delete(ctx context.Context, orgID, id string) error
	// CountByTransferAccount counts movements referencing a transfer account.
	CountByTransferAccount(ctx context.Context, accountID string) (int64, error)
	// RetagLegacy rewrites movements still carrying a retired method label to
	// method=TRANSFER with the given account. Only rows whose
	// transfer_account_id is NULL are touched, which makes the operation
	// idempotent. Returns the number of rows rewritten.
	RetagLegacy(ctx context.Context, orgID, legacyMethod, accountID string) (int64, error)
}

// TransferAccountRepository defines data access for transfer accounts.
type TransferAccountRepository interface {
	Create(ctx context.Context, account *domain.TransferAccount) error
	CreateTx(ctx context.Context, tx Transaction, account *domain.TransferAccount) error
	GetByID(ctx context.Context, orgID, id string) (*domain.TransferAccount, error)
	GetByName(ctx context.Context, orgID, name string) (*domain.TransferAccount, error)
	// List returns the organization's accounts ordered by name; activeOnly
	// restricts to isActive=true.
	List(ctx context.Context, orgID string, activeOnly bool) ([]*domain.TransferAccount, error)
	Update(ctx context.Context, account *domain.TransferAccount) error
	Delete(ctx context.Context, orgID, id string) error
}

// DailyCloseRepository defines data access for daily closes. Closes are
// append-only: there is deliberately no update or delete.
type DailyCloseRepository interface {
	Create(ctx context.Context, tx Transaction, close *domain.DailyClose) error
	// GetByDate returns the close for a day-normalized date, or (nil, nil)
	// when the day has not been closed.
	GetByDate(ctx context.Context, orgID string, date time.Time) (*domain.DailyClose, error)
	// List returns closes in the half-open window [from, to), newest first.
	List(ctx context.Context, orgID string, from, to *time.Time) ([]*domain.DailyClose, error)
	// ListLegacyPending returns closes that still carry the retired two-column
	// transfer totals and have no transfer_totals map yet.
	ListLegacyPending(ctx context.Context, orgID string) ([]*domain.DailyClose, error)
	// SetTransferTotals backfills the totals map on a legacy close. The update
	// is gated on transfer_totals IS NULL so reruns never clobber data.
	SetTransferTotals(ctx context.Context, id string, totals map[string]float64) error
}

// ServiceRepository defines data access for scheduled services.
type ServiceRepository interface {
	Create(ctx context.Context, service *domain.Service) error
	GetByID(ctx context.Context, orgID, id string) (*domain.Service, error)
	// List returns services matching filter ordered by scheduled date
	// descending, or ascending when asc is true (export).
	List(ctx context.Context, orgID string, filter domain.ServiceFilter, asc bool) ([]*domain.Service, error)
	Update(ctx context.Context, service *domain.Service) error
	Delete(ctx context.Context, orgID, id string) error
}

// ClientRepository defines data access for the client directory.
type ClientRepository interface {
	Create(ctx context.Context, client *domain.Client) error
	GetByID(ctx context.Context, orgID, id string) (*domain.Client, error)
	List(ctx context.Context, orgID string) ([]*domain.Client, error)
	Update(ctx context.Context, client *domain.Client) error
	Delete(ctx context.Context, orgID, id string) error
}

// UserRepository defines data access for users.
type UserRepository interface {
	CreateTx(ctx context.Context, tx Transaction, user *domain.User) error
	GetByID(ctx context.Context, id string) (*domain.User, error)
	// GetByEmail returns (nil, nil) when no user has the email.
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	UpdatePasswordTx(ctx context.Context, tx Transaction, userID, hashedPassword string, updatedAt time.Time) error
	UpdateEmailTx(ctx context.Context, tx Transaction, userID, email string, updatedAt time.Time) error
}

// OrganizationRepository defines data access for organizations.
type OrganizationRepository interface {
	CreateTx(ctx context.Context, tx Transaction, org *domain.Organization) error
	GetByID(ctx context.Context, id string) (*domain.Organization, error)
	// GetBySlug returns (nil, nil) when the slug is free.
	GetBySlug(ctx context.Context, slug string) (*domain.Organization, error)
	List(ctx context.Context) ([]*domain.Organization, error)
}

// MembershipRepository links users to organizations.
type MembershipRepository interface {
	CreateTx(ctx context.Context, tx Transaction, membership *domain.Membership) error
	// GetForUser returns the user's primary membership, or (nil, nil).
	GetForUser(ctx context.Context, userID string) (*domain.Membership, error)
}

// TokenRepository defines data access for single-use action tokens.
type TokenRepository interface {
	Create(ctx context.Context, token *domain.ActionToken) error
	// GetByToken returns (nil, nil) when the token string is unknown.
	GetByToken(ctx context.Context, token string, purpose domain.TokenPurpose) (*domain.ActionToken, error)
	MarkUsedTx(ctx context.Context, tx Transaction, id string) error
}

// Transaction represents a database transaction.
type Transaction interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// TransactionManager handles transaction lifecycle.
type TransactionManager interface {
	Begin(ctx context.Context) (Transaction, error)
}

// Retrier re-runs an operation on transient database failures.
type Retrier interface {
	Retry(ctx context.Context, operation func() error) error
}

// IDGenerator generates unique IDs.
type IDGenerator interface {
	Generate() string
}

// Clock supplies the current time, injectable for tests.
type Clock interface {
	Now() time.Time
}

// IdempotencyStore handles idempotency key storage.
type IdempotencyStore interface {
	// CheckAndSet atomically checks if key exists, sets if not.
	// Returns (exists, existingValue, error).
	CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error)
	// Update updates an existing key with the final response.
	Update(ctx context.Context, key string, response []byte, ttl time.Duration) error
}
