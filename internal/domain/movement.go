package domain

import "time"

// MovementType classifies a cash movement.
type MovementType string

const (
	MovementIncome  MovementType = "INCOME"
	MovementExpense MovementType = "EXPENSE"
)

// IsValid reports whether the movement type is known.
func (t MovementType) IsValid() bool {
	return t == MovementIncome || t == MovementExpense
}

// PaymentMethod is how a movement was settled.
type PaymentMethod string

const (
	MethodCash     PaymentMethod = "CASH"
	MethodTransfer PaymentMethod = "TRANSFER"
)

// IsValid reports whether the payment method is one of the current values.
// Legacy rows may still carry retired method labels until the reconciler
// rewrites them; those never validate here.
func (m PaymentMethod) IsValid() bool {
	return m == MethodCash || m == MethodTransfer
}

// CashMovement is a single income or expense record in the daily ledger,
// scoped to an organization.
type CashMovement struct {
	ID                string
	OrganizationID    string
	Type              MovementType
	Amount            float64
	Method            PaymentMethod
	TransferAccountID *string
	Category          string
	Description       string
	Date              time.Time
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// Validate checks the movement invariants: positive amount, known type and
// method, and a transfer account exactly when the method is TRANSFER.
func (m *CashMovement) Validate() error {
	if !m.Type.IsValid() {
		return NewValidationError("type", "must be INCOME or EXPENSE")
	}
	if m.Amount <= 0 {
		return NewValidationError("amount", "must be positive")
	}
	if !m.Method.IsValid() {
		return NewValidationError("method", "must be CASH or TRANSFER")
	}
	if m.Method == MethodTransfer {
		if m.TransferAccountID == nil || *m.TransferAccountID == "" {
			return NewValidationError("transferAccountId", "required when method is TRANSFER")
		}
	} else if m.TransferAccountID != nil {
		return NewValidationError("transferAccountId", "only allowed when method is TRANSFER")
	}
	return nil
}

// MovementFilter narrows a movement listing. All fields are conjunctive;
// zero values mean "no constraint". From/To bound the movement date as a
// half-open window: From inclusive, To exclusive.
type MovementFilter struct {
	From   *time.Time
	To     *time.Time
	Type   MovementType
	Method PaymentMethod
}
