package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/auradigitalchile/agendamiento-fletes/internal/domain"
)

// ServiceUseCase handles scheduled-service business logic.
type ServiceUseCase struct {
	serviceRepo ServiceRepository
	clientRepo  ClientRepository
	idGen       IDGenerator
	clock       Clock
}

// NewServiceUseCase creates a new ServiceUseCase.
func NewServiceUseCase(serviceRepo ServiceRepository, clientRepo ClientRepository, idGen IDGenerator, clock Clock) *ServiceUseCase {
	return &ServiceUseCase{
		serviceRepo: serviceRepo,
		clientRepo:  clientRepo,
		idGen:       idGen,
		clock:       clock,
	}
}

// ServiceInput carries the full service payload for create and update.
type ServiceInput struct {
	ClientID         *string
	ClientName       string
	ClientPhone      string
	ClientAddress    string
	Type             domain.ServiceType
	Status           domain.ServiceStatus
	ScheduledDate    time.Time
	Price            decimal.Decimal
	Origin           string
	Destination      string
	CargoDescription string
	RequiresHelper   bool
	DebrisType       domain.DebrisType
	DebrisQuantity   domain.DebrisQuantity
	Notes            string
}

// Create schedules a new service. Status defaults to PENDIENTE; a linked
// client, when given, must belong to the same organization.
func (uc *ServiceUseCase) Create(ctx context.Context, orgID string, input ServiceInput) (*domain.Service, error) {
	if input.Status == "" {
		input.Status = domain.StatusPendiente
	}

	now := uc.clock.Now().UTC()
	service := &domain.Service{
		ID:               uc.idGen.Generate(),
		OrganizationID:   orgID,
		ClientID:         input.ClientID,
		ClientName:       input.ClientName,
		ClientPhone:      input.ClientPhone,
		ClientAddress:    input.ClientAddress,
		Type:             input.Type,
		Status:           input.Status,
		ScheduledDate:    input.ScheduledDate.UTC(),
		Price:            input.Price,
		Origin:           input.Origin,
		Destination:      input.Destination,
		CargoDescription: input.CargoDescription,
		RequiresHelper:   input.RequiresHelper,
		DebrisType:       input.DebrisType,
		DebrisQuantity:   input.DebrisQuantity,
		Notes:            input.Notes,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	if err := service.Validate(); err != nil {
		return nil, err
	}
	if err := uc.checkClient(ctx, orgID, service.ClientID); err != nil {
		return nil, err
	}

	if err := uc.serviceRepo.Create(ctx, service); err != nil {
		return nil, err
	}

	return service, nil
}

// Get retrieves one service.
func (uc *ServiceUseCase) Get(ctx context.Context, orgID, id string) (*domain.Service, error) {
	return uc.serviceRepo.GetByID(ctx, orgID, id)
}

// List returns services matching filter, newest first.
func (uc *ServiceUseCase) List(ctx context.Context, orgID string, filter domain.ServiceFilter) ([]*domain.Service, error) {
	return uc.serviceRepo.List(ctx, orgID, filter, false)
}

// Update replaces a service's payload.
func (uc *ServiceUseCase) Update(ctx context.Context, orgID, id string, input ServiceInput) (*domain.Service, error) {
	service, err := uc.serviceRepo.GetByID(ctx, orgID, id)
	if err != nil {
		return nil, err
	}

	service.ClientID = input.ClientID
	service.ClientName = input.ClientName
	service.ClientPhone = input.ClientPhone
	service.ClientAddress = input.ClientAddress
	service.Type = input.Type
	service.Status = input.Status
	service.ScheduledDate = input.ScheduledDate.UTC()
	service.Price = input.Price
	service.Origin = input.Origin
	service.Destination = input.Destination
	service.CargoDescription = input.CargoDescription
	service.RequiresHelper = input.RequiresHelper
	service.DebrisType = input.DebrisType
	service.DebrisQuantity = input.DebrisQuantity
	service.Notes = input.Notes
	service.UpdatedAt = uc.clock.Now().UTC()

	if err := service.Validate(); err != nil {
		return nil, err
	}
	if err := uc.checkClient(ctx, orgID, service.ClientID); err != nil {
		return nil, err
	}

	if err := uc.serviceRepo.Update(ctx, service); err != nil {
		return nil, err
	}

	return service, nil
}

// Delete removes a service.
func (uc *ServiceUseCase) Delete(ctx context.Context, orgID, id string) error {
	return uc.serviceRepo.Delete(ctx, orgID, id)
}

func (uc *ServiceUseCase) checkClient(ctx context.Context, orgID string, clientID *string) error {
	if clientID == nil || *clientID == "" {
		return nil
	}
	_, err := uc.clientRepo.GetByID(ctx, orgID, *clientID)
	if err != nil {
		if domain.IsNotFound(err) {
			return domain.NewValidationError("clientId", "unknown client")
		}
		return err
	}
	return nil
}
