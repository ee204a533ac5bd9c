package usecase

import (
	"context"

	"github.com/auradigitalchile/agendamiento-fletes/internal/domain"
)

// ClientUseCase handles the recurring-client directory.
type ClientUseCase struct {
	clientRepo ClientRepository
	idGen      IDGenerator
	clock      Clock
}

// NewClientUseCase creates a new ClientUseCase.
func NewClientUseCase(clientRepo ClientRepository, idGen IDGenerator, clock Clock) *ClientUseCase {
	return &ClientUseCase{
		clientRepo: clientRepo,
		idGen:      idGen,
		clock:      clock,
	}
}

// ClientInput carries the client payload for create and update.
type ClientInput struct {
	Name           string
	Phone          string
	Email          string
	DefaultAddress string
	Notes          string
}

// Create adds a client to the directory.
func (uc *ClientUseCase) Create(ctx context.Context, orgID string, input ClientInput) (*domain.Client, error) {
	now := uc.clock.Now().UTC()
	client := &domain.Client{
		ID:             uc.idGen.Generate(),
		OrganizationID: orgID,
		Name:           input.Name,
		Phone:          input.Phone,
		Email:          input.Email,
		DefaultAddress: input.DefaultAddress,
		Notes:          input.Notes,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := client.Validate(); err != nil {
		return nil, err
	}

	if err := uc.clientRepo.Create(ctx, client); err != nil {
		return nil, err
	}

	return client, nil
}

// Get retrieves one client.
func (uc *ClientUseCase) Get(ctx context.Context, orgID, id string) (*domain.Client, error) {
	return uc.clientRepo.GetByID(ctx, orgID, id)
}

// List returns the organization's clients.
func (uc *ClientUseCase) List(ctx context.Context, orgID string) ([]*domain.Client, error) {
	return uc.clientRepo.List(ctx, orgID)
}

// Update replaces a client's payload.
func (uc *ClientUseCase) Update(ctx context.Context, orgID, id string, input ClientInput) (*domain.Client, error) {
	client, err := uc.clientRepo.GetByID(ctx, orgID, id)
	if err != nil {
		return nil, err
	}

	client.Name = input.Name
	client.Phone = input.Phone
	client.Email = input.Email
	client.DefaultAddress = input.DefaultAddress
	client.Notes = input.Notes
	client.UpdatedAt = uc.clock.Now().UTC()

	if err := client.Validate(); err != nil {
		return nil, err
	}

	if err := uc.clientRepo.Update(ctx, client); err != nil {
		return nil, err
	}

	return client, nil
}

// Delete removes a client from the directory.
func (uc *ClientUseCase) Delete(ctx context.Context, orgID, id string) error {
	return uc.clientRepo.Delete(ctx, orgID, id)
}
