package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ServiceType is the kind of job being scheduled.
type ServiceType string

const (
	ServiceFlete     ServiceType = "FLETE"
	ServiceMudanza   ServiceType = "MUDANZA"
	ServiceEscombros ServiceType = "ESCOMBROS"
)

// IsValid reports whether the service type is known.
func (t ServiceType) IsValid() bool {
	switch t {
	case ServiceFlete, ServiceMudanza, ServiceEscombros:
		return true
	}
	return false
}

// ServiceStatus is the lifecycle state of a scheduled service.
type ServiceStatus string

const (
	StatusPendiente  ServiceStatus = "PENDIENTE"
	StatusConfirmado ServiceStatus = "CONFIRMADO"
	StatusFinalizado ServiceStatus = "FINALIZADO"
	StatusCancelado  ServiceStatus = "CANCELADO"
)

// IsValid reports whether the status is known.
func (s ServiceStatus) IsValid() bool {
	switch s {
	case StatusPendiente, StatusConfirmado, StatusFinalizado, StatusCancelado:
		return true
	}
	return false
}

// DebrisType describes debris-removal cargo.
type DebrisType string

const (
	DebrisObra   DebrisType = "OBRA"
	DebrisTierra DebrisType = "TIERRA"
	DebrisMadera DebrisType = "MADERA"
	DebrisAridos DebrisType = "ARIDOS"
	DebrisMixto  DebrisType = "MIXTO"
)

// DebrisQuantity is an approximate load size for debris jobs.
type DebrisQuantity string

const (
	DebrisPequeno     DebrisQuantity = "PEQUENO"
	DebrisMedioCamion DebrisQuantity = "MEDIO_CAMION"
	DebrisLleno       DebrisQuantity = "LLENO"
)

// Service is a scheduled freight, moving or debris-removal job. Client data is
// stored inline so one-off jobs don't require a directory entry; ClientID
// optionally links to a recurring client.
type Service struct {
	ID             string
	OrganizationID string
	ClientID       *string
	ClientName     string
	ClientPhone    string
	ClientAddress  string
	Type           ServiceType
	Status         ServiceStatus
	ScheduledDate  time.Time
	Price          decimal.Decimal
	// FLETE / MUDANZA fields.
	Origin           string
	Destination      string
	CargoDescription string
	RequiresHelper   bool
	// ESCOMBROS fields.
	DebrisType     DebrisType
	DebrisQuantity DebrisQuantity
	Notes          string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Validate checks service invariants.
func (s *Service) Validate() error {
	if s.ClientName == "" {
		return NewValidationError("clientName", "is required")
	}
	if s.ClientPhone == "" {
		return NewValidationError("clientPhone", "is required")
	}
	if !s.Type.IsValid() {
		return NewValidationError("type", "must be FLETE, MUDANZA or ESCOMBROS")
	}
	if !s.Status.IsValid() {
		return NewValidationError("status", "unknown status")
	}
	if s.ScheduledDate.IsZero() {
		return NewValidationError("scheduledDate", "is required")
	}
	if !s.Price.IsPositive() {
		return NewValidationError("price", "must be positive")
	}
	return nil
}

// ServiceFilter narrows a service listing; zero values mean no constraint.
type ServiceFilter struct {
	Type     ServiceType
	Status   ServiceStatus
	ClientID string
	From     *time.Time
	To       *time.Time
}
