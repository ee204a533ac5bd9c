package usecase

import (
	"context"

	"github.com/auradigitalchile/agendamiento-fletes/internal/domain"
)

// TransferAccountUseCase manages the organization's named transfer accounts.
type TransferAccountUseCase struct {
	accountRepo  TransferAccountRepository
	movementRepo MovementRepository
	idGen        IDGenerator
	clock        Clock
}

// NewTransferAccountUseCase creates a new TransferAccountUseCase.
func NewTransferAccountUseCase(accountRepo TransferAccountRepository, movementRepo MovementRepository, idGen IDGenerator, clock Clock) *TransferAccountUseCase {
	return &TransferAccountUseCase{
		accountRepo:  accountRepo,
		movementRepo: movementRepo,
		idGen:        idGen,
		clock:        clock,
	}
}

// Create adds a transfer account. The name must be unique within the
// organization, counting inactive accounts.
func (uc *TransferAccountUseCase) Create(ctx context.Context, orgID, name string) (*domain.TransferAccount, error) {
	if err := domain.ValidateName("name", name); err != nil {
		return nil, err
	}

	existing, err := uc.accountRepo.GetByName(ctx, orgID, name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.NewConflictError("a transfer account with that name already exists")
	}

	now := uc.clock.Now().UTC()
	account := &domain.TransferAccount{
		ID:             uc.idGen.Generate(),
		OrganizationID: orgID,
		Name:           name,
		IsActive:       true,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := uc.accountRepo.Create(ctx, account); err != nil {
		return nil, err
	}

	return account, nil
}

// UpdateAccountInput is a partial update for a transfer account.
type UpdateAccountInput struct {
	Name     *string
	IsActive *bool
}

// Update renames and/or toggles an account. Renaming checks the new name
// against every other account in the organization; keeping the current name is
// always allowed. Deactivation never touches historical movements.
func (uc *TransferAccountUseCase) Update(ctx context.Context, orgID, id string, input UpdateAccountInput) (*domain.TransferAccount, error) {
	account, err := uc.accountRepo.GetByID(ctx, orgID, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil && *input.Name != account.Name {
		if err := domain.ValidateName("name", *input.Name); err != nil {
			return nil, err
		}
		duplicate, err := uc.accountRepo.GetByName(ctx, orgID, *input.Name)
		if err != nil {
			return nil, err
		}
		if duplicate != nil && duplicate.ID != account.ID {
			return nil, domain.NewConflictError("a transfer account with that name already exists")
		}
		account.Name = *input.Name
	}
	if input.IsActive != nil {
		account.IsActive = *input.IsActive
	}
	account.UpdatedAt = uc.clock.Now().UTC()

	if err := uc.accountRepo.Update(ctx, account); err != nil {
		return nil, err
	}

	return account, nil
}

// Delete removes an account that no movement references. Referenced accounts
// are refused with the blocking count so the caller can suggest deactivation
// instead.
func (uc *TransferAccountUseCase) Delete(ctx context.Context, orgID, id string) error {
	account, err := uc.accountRepo.GetByID(ctx, orgID, id)
	if err != nil {
		return err
	}

	count, err := uc.movementRepo.CountByTransferAccount(ctx, account.ID)
	if err != nil {
		return err
	}
	if count > 0 {
		return domain.NewReferencedError("transfer account has cash movements and cannot be deleted", count)
	}

	return uc.accountRepo.Delete(ctx, orgID, id)
}

// ListActive returns active accounts ordered by name, for selection lists and
// dashboard columns.
func (uc *TransferAccountUseCase) ListActive(ctx context.Context, orgID string) ([]*domain.TransferAccount, error) {
	return uc.accountRepo.List(ctx, orgID, true)
}

// ListAll returns every account, active or not, for the settings screen.
func (uc *TransferAccountUseCase) ListAll(ctx context.Context, orgID string) ([]*domain.TransferAccount, error) {
	return uc.accountRepo.List(ctx, orgID, false)
}
