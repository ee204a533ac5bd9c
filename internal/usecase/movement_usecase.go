package usecase

import (
	"context"
	"time"

	"github.com/auradigitalchile/agendamiento-fletes/internal/domain"
)

// MovementUseCase handles cash movement business logic.
type MovementUseCase struct {
	movementRepo MovementRepository
	accountRepo  TransferAccountRepository
	idGen        IDGenerator
	clock        Clock
}

// NewMovementUseCase creates a new MovementUseCase.
func NewMovementUseCase(movementRepo MovementRepository, accountRepo TransferAccountRepository, idGen IDGenerator, clock Clock) *MovementUseCase {
	return &MovementUseCase{
		movementRepo: movementRepo,
		accountRepo:  accountRepo,
		idGen:        idGen,
		clock:        clock,
	}
}

// RecordMovementInput represents input for recording a movement.
type RecordMovementInput struct {
	Type              domain.MovementType
	Amount            float64
	Method            domain.PaymentMethod
	TransferAccountID *string
	Category          string
	Description       string
	Date              *time.Time
}

// Record validates and persists a new cash movement for the organization.
// Date defaults to the current time when unspecified.
func (uc *MovementUseCase) Record(ctx context.Context, orgID string, input RecordMovementInput) (*domain.CashMovement, error) {
	now := uc.clock.Now().UTC()

	date := now
	if input.Date != nil {
		date = input.Date.UTC()
	}

	movement := &domain.CashMovement{
		ID:                uc.idGen.Generate(),
		OrganizationID:    orgID,
		Type:              input.Type,
		Amount:            input.Amount,
		Method:            input.Method,
		TransferAccountID: input.TransferAccountID,
		Category:          input.Category,
		Description:       input.Description,
		Date:              date,
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	if err := movement.Validate(); err != nil {
		return nil, err
	}
	if err := uc.checkTransferAccount(ctx, orgID, movement); err != nil {
		return nil, err
	}

	if err := uc.movementRepo.Create(ctx, movement); err != nil {
		return nil, err
	}

	return movement, nil
}

// List returns the organization's movements matching filter, newest first.
func (uc *MovementUseCase) List(ctx context.Context, orgID string, filter domain.MovementFilter) ([]*domain.CashMovement, error) {
	return uc.movementRepo.List(ctx, orgID, filter, false)
}

// Get retrieves one movement.
func (uc *MovementUseCase) Get(ctx context.Context, orgID, id string) (*domain.CashMovement, error) {
	return uc.movementRepo.GetByID(ctx, orgID, id)
}

// UpdateMovementInput carries a partial update; nil fields are left untouched.
type UpdateMovementInput struct {
	Type              *domain.MovementType
	Amount            *float64
	Method            *domain.PaymentMethod
	TransferAccountID *string
	ClearAccount      bool
	Category          *string
	Description       *string
	Date              *time.Time
}

// Update merges the provided fields into an existing movement and re-validates
// the transfer-account invariant when method or account change.
func (uc *MovementUseCase) Update(ctx context.Context, orgID, id string, input UpdateMovementInput) (*domain.CashMovement, error) {
	movement, err := uc.movementRepo.GetByID(ctx, orgID, id)
	if err != nil {
		return nil, err
	}

	if input.Type != nil {
		movement.Type = *input.Type
	}
	if input.Amount != nil {
		movement.Amount = *input.Amount
	}
	if input.Method != nil {
		movement.Method = *input.Method
	}
	if input.ClearAccount {
		movement.TransferAccountID = nil
	} else if input.TransferAccountID != nil {
		movement.TransferAccountID = input.TransferAccountID
	}
	if movement.Method == domain.MethodCash {
		movement.TransferAccountID = nil
	}
	if input.Category != nil {
		movement.Category = *input.Category
	}
	if input.Description != nil {
		movement.Description = *input.Description
	}
	if input.Date != nil {
		movement.Date = input.Date.UTC()
	}
	movement.UpdatedAt = uc.clock.Now().UTC()

	if err := movement.Validate(); err != nil {
		return nil, err
	}
	if err := uc.checkTransferAccount(ctx, orgID, movement); err != nil {
		return nil, err
	}

	if err := uc.movementRepo.Update(ctx, movement); err != nil {
		return nil, err
	}

	return movement, nil
}

// Delete removes a movement. Movements already captured in a daily close may
// be deleted: closes are point-in-time snapshots and are never recomputed.
func (uc *MovementUseCase) Delete(ctx context.Context, orgID, id string) error {
	return uc.movementRepo.Delete(ctx, orgID, id)
}

// checkTransferAccount resolves the referenced transfer account within the
// same organization. Active and inactive accounts both qualify; a missing or
// cross-tenant id fails validation.
func (uc *MovementUseCase) checkTransferAccount(ctx context.Context, orgID string, movement *domain.CashMovement) error {
	if movement.Method != domain.MethodTransfer {
		return nil
	}
	_, err := uc.accountRepo.GetByID(ctx, orgID, *movement.TransferAccountID)
	if err != nil {
		if domain.IsNotFound(err) {
			return domain.NewValidationError("transferAccountId", "unknown transfer account")
		}
		return err
	}
	return nil
}
