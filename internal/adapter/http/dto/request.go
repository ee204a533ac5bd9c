package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/auradigitalchile/agendamiento-fletes/internal/domain"
	"github.com/auradigitalchile/agendamiento-fletes/internal/usecase"
)

// RecordMovementRequest represents a request to record a cash movement.
type RecordMovementRequest struct {
	Type              string     `json:"type"`
	Amount            float64    `json:"amount"`
	Method            string     `json:"method"`
	TransferAccountID *string    `json:"transfer_account_id,omitempty"`
	Category          string     `json:"category,omitempty"`
	Description       string     `json:"description,omitempty"`
	Date              *time.Time `json:"date,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *RecordMovementRequest) ToUseCaseInput() usecase.RecordMovementInput {
	return usecase.RecordMovementInput{
		Type:              domain.MovementType(r.Type),
		Amount:            r.Amount,
		Method:            domain.PaymentMethod(r.Method),
		TransferAccountID: r.TransferAccountID,
		Category:          r.Category,
		Description:       r.Description,
		Date:              r.Date,
	}
}

// UpdateMovementRequest represents a partial movement update. Absent fields
// are left untouched; clear_transfer_account detaches the account reference.
type UpdateMovementRequest struct {
	Type                 *string    `json:"type,omitempty"`
	Amount               *float64   `json:"amount,omitempty"`
	Method               *string    `json:"method,omitempty"`
	TransferAccountID    *string    `json:"transfer_account_id,omitempty"`
	ClearTransferAccount bool       `json:"clear_transfer_account,omitempty"`
	Category             *string    `json:"category,omitempty"`
	Description          *string    `json:"description,omitempty"`
	Date                 *time.Time `json:"date,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *UpdateMovementRequest) ToUseCaseInput() usecase.UpdateMovementInput {
	input := usecase.UpdateMovementInput{
		Amount:            r.Amount,
		TransferAccountID: r.TransferAccountID,
		ClearAccount:      r.ClearTransferAccount,
		Category:          r.Category,
		Description:       r.Description,
		Date:              r.Date,
	}
	if r.Type != nil {
		t := domain.MovementType(*r.Type)
		input.Type = &t
	}
	if r.Method != nil {
		m := domain.PaymentMethod(*r.Method)
		input.Method = &m
	}
	return input
}

// CreateAccountRequest represents a request to create a transfer account.
type CreateAccountRequest struct {
	Name string `json:"name"`
}

// UpdateAccountRequest represents a partial transfer account update.
type UpdateAccountRequest struct {
	Name     *string `json:"name,omitempty"`
	IsActive *bool   `json:"is_active,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *UpdateAccountRequest) ToUseCaseInput() usecase.UpdateAccountInput {
	return usecase.UpdateAccountInput{
		Name:     r.Name,
		IsActive: r.IsActive,
	}
}

// CreateCloseRequest represents a request to close a day.
type CreateCloseRequest struct {
	Date  time.Time `json:"date"`
	Notes string    `json:"notes,omitempty"`
}

// ServiceRequest represents the full service payload for create and update.
type ServiceRequest struct {
	ClientID         *string         `json:"client_id,omitempty"`
	ClientName       string          `json:"client_name"`
	ClientPhone      string          `json:"client_phone"`
	ClientAddress    string          `json:"client_address,omitempty"`
	Type             string          `json:"type"`
	Status           string          `json:"status,omitempty"`
	ScheduledDate    time.Time       `json:"scheduled_date"`
	Price            decimal.Decimal `json:"price"`
	Origin           string          `json:"origin,omitempty"`
	Destination      string          `json:"destination,omitempty"`
	CargoDescription string          `json:"cargo_description,omitempty"`
	RequiresHelper   bool            `json:"requires_helper,omitempty"`
	DebrisType       string          `json:"debris_type,omitempty"`
	DebrisQuantity   string          `json:"debris_quantity,omitempty"`
	Notes            string          `json:"notes,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *ServiceRequest) ToUseCaseInput() usecase.ServiceInput {
	return usecase.ServiceInput{
		ClientID:         r.ClientID,
		ClientName:       r.ClientName,
		ClientPhone:      r.ClientPhone,
		ClientAddress:    r.ClientAddress,
		Type:             domain.ServiceType(r.Type),
		Status:           domain.ServiceStatus(r.Status),
		ScheduledDate:    r.ScheduledDate,
		Price:            r.Price,
		Origin:           r.Origin,
		Destination:      r.Destination,
		CargoDescription: r.CargoDescription,
		RequiresHelper:   r.RequiresHelper,
		DebrisType:       domain.DebrisType(r.DebrisType),
		DebrisQuantity:   domain.DebrisQuantity(r.DebrisQuantity),
		Notes:            r.Notes,
	}
}

// ClientRequest represents the client payload for create and update.
type ClientRequest struct {
	Name           string `json:"name"`
	Phone          string `json:"phone"`
	Email          string `json:"email,omitempty"`
	DefaultAddress string `json:"default_address,omitempty"`
	Notes          string `json:"notes,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *ClientRequest) ToUseCaseInput() usecase.ClientInput {
	return usecase.ClientInput{
		Name:           r.Name,
		Phone:          r.Phone,
		Email:          r.Email,
		DefaultAddress: r.DefaultAddress,
		Notes:          r.Notes,
	}
}

// RegisterRequest represents a signup request.
type RegisterRequest struct {
	Email            string `json:"email"`
	Password         string `json:"password"`
	Name             string `json:"name"`
	OrganizationName string `json:"organization_name"`
}

// ToUseCaseInput converts to use case input.
func (r *RegisterRequest) ToUseCaseInput() usecase.RegisterInput {
	return usecase.RegisterInput{
		Email:            r.Email,
		Password:         r.Password,
		Name:             r.Name,
		OrganizationName: r.OrganizationName,
	}
}

// LoginRequest represents a login request.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// ForgotPasswordRequest represents a password reset request.
type ForgotPasswordRequest struct {
	Email string `json:"email"`
}

// ResetPasswordRequest consumes a reset token.
type ResetPasswordRequest struct {
	Token       string `json:"token"`
	NewPassword string `json:"new_password"`
}

// ChangePasswordRequest changes the session user's password.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

// ChangeEmailRequest requests an email change for the session user.
type ChangeEmailRequest struct {
	NewEmail string `json:"new_email"`
}

// VerifyEmailRequest consumes an email verification token.
type VerifyEmailRequest struct {
	Token string `json:"token"`
}
