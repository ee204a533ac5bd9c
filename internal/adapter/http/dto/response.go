package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/auradigitalchile/agendamiento-fletes/internal/domain"
)

// MovementResponse represents a cash movement in API responses.
type MovementResponse struct {
	ID                string     `json:"id"`
	Type              string     `json:"type"`
	Amount            float64    `json:"amount"`
	Method            string     `json:"method"`
	TransferAccountID *string    `json:"transfer_account_id,omitempty"`
	Category          string     `json:"category,omitempty"`
	Description       string     `json:"description,omitempty"`
	Date              time.Time  `json:"date"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`
}

// MovementFromDomain converts a domain movement to a response.
func MovementFromDomain(m *domain.CashMovement) *MovementResponse {
	return &MovementResponse{
		ID:                m.ID,
		Type:              string(m.Type),
		Amount:            m.Amount,
		Method:            string(m.Method),
		TransferAccountID: m.TransferAccountID,
		Category:          m.Category,
		Description:       m.Description,
		Date:              m.Date,
		CreatedAt:         m.CreatedAt,
		UpdatedAt:         m.UpdatedAt,
	}
}

// MovementsFromDomain converts domain movements to responses.
func MovementsFromDomain(movements []*domain.CashMovement) []*MovementResponse {
	result := make([]*MovementResponse, len(movements))
	for i, m := range movements {
		result[i] = MovementFromDomain(m)
	}
	return result
}

// AccountResponse represents a transfer account in API responses.
type AccountResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// AccountFromDomain converts a domain account to a response.
func AccountFromDomain(a *domain.TransferAccount) *AccountResponse {
	return &AccountResponse{
		ID:        a.ID,
		Name:      a.Name,
		IsActive:  a.IsActive,
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
}

// AccountsFromDomain converts domain accounts to responses.
func AccountsFromDomain(accounts []*domain.TransferAccount) []*AccountResponse {
	result := make([]*AccountResponse, len(accounts))
	for i, a := range accounts {
		result[i] = AccountFromDomain(a)
	}
	return result
}

// CategoryTotalResponse is one row of a category breakdown.
type CategoryTotalResponse struct {
	Category string  `json:"category"`
	Total    float64 `json:"total"`
}

// WeeklyIncomeResponse is one point of the four-week income trend.
type WeeklyIncomeResponse struct {
	WeekEnd time.Time `json:"week_end"`
	Total   float64   `json:"total"`
}

// SummaryResponse represents a period aggregation in API responses.
// account_totals follows account_order so clients render columns stably.
type SummaryResponse struct {
	TotalIncome       float64                 `json:"total_income"`
	TotalExpense      float64                 `json:"total_expense"`
	Balance           float64                 `json:"balance"`
	CashTotal         float64                 `json:"cash_total"`
	AccountTotals     map[string]float64      `json:"account_totals"`
	AccountOrder      []string                `json:"account_order"`
	IncomeByCategory  []CategoryTotalResponse `json:"income_by_category"`
	ExpenseByCategory []CategoryTotalResponse `json:"expense_by_category"`
	WeeklyIncome      []WeeklyIncomeResponse  `json:"weekly_income"`
}

// SummaryFromDomain converts a domain summary to a response.
func SummaryFromDomain(s *domain.CashSummary) *SummaryResponse {
	income := make([]CategoryTotalResponse, len(s.IncomeByCategory))
	for i, c := range s.IncomeByCategory {
		income[i] = CategoryTotalResponse{Category: c.Category, Total: c.Total}
	}
	expense := make([]CategoryTotalResponse, len(s.ExpenseByCategory))
	for i, c := range s.ExpenseByCategory {
		expense[i] = CategoryTotalResponse{Category: c.Category, Total: c.Total}
	}
	weekly := make([]WeeklyIncomeResponse, len(s.WeeklyIncome))
	for i, w := range s.WeeklyIncome {
		weekly[i] = WeeklyIncomeResponse{WeekEnd: w.WeekEnd, Total: w.Total}
	}

	return &SummaryResponse{
		TotalIncome:       s.TotalIncome,
		TotalExpense:      s.TotalExpense,
		Balance:           s.Balance,
		CashTotal:         s.CashTotal,
		AccountTotals:     s.AccountTotals,
		AccountOrder:      s.AccountOrder,
		IncomeByCategory:  income,
		ExpenseByCategory: expense,
		WeeklyIncome:      weekly,
	}
}

// CloseResponse represents a daily close in API responses.
type CloseResponse struct {
	ID             string             `json:"id"`
	Date           time.Time          `json:"date"`
	TotalCash      float64            `json:"total_cash"`
	TransferTotals map[string]float64 `json:"transfer_totals"`
	TotalExpenses  float64            `json:"total_expenses"`
	FinalCash      float64            `json:"final_cash"`
	Notes          string             `json:"notes,omitempty"`
	ClosedBy       string             `json:"closed_by,omitempty"`
	CreatedAt      time.Time          `json:"created_at"`
}

// CloseFromDomain converts a domain close to a response.
func CloseFromDomain(c *domain.DailyClose) *CloseResponse {
	return &CloseResponse{
		ID:             c.ID,
		Date:           c.Date,
		TotalCash:      c.TotalCash,
		TransferTotals: c.TransferTotals,
		TotalExpenses:  c.TotalExpenses,
		FinalCash:      c.FinalCash,
		Notes:          c.Notes,
		ClosedBy:       c.ClosedBy,
		CreatedAt:      c.CreatedAt,
	}
}

// ClosesFromDomain converts domain closes to responses.
func ClosesFromDomain(closes []*domain.DailyClose) []*CloseResponse {
	result := make([]*CloseResponse, len(closes))
	for i, c := range closes {
		result[i] = CloseFromDomain(c)
	}
	return result
}

// ServiceResponse represents a scheduled service in API responses.
type ServiceResponse struct {
	ID               string          `json:"id"`
	ClientID         *string         `json:"client_id,omitempty"`
	ClientName       string          `json:"client_name"`
	ClientPhone      string          `json:"client_phone"`
	ClientAddress    string          `json:"client_address,omitempty"`
	Type             string          `json:"type"`
	Status           string          `json:"status"`
	ScheduledDate    time.Time       `json:"scheduled_date"`
	Price            decimal.Decimal `json:"price"`
	Origin           string          `json:"origin,omitempty"`
	Destination      string          `json:"destination,omitempty"`
	CargoDescription string          `json:"cargo_description,omitempty"`
	RequiresHelper   bool            `json:"requires_helper"`
	DebrisType       string          `json:"debris_type,omitempty"`
	DebrisQuantity   string          `json:"debris_quantity,omitempty"`
	Notes            string          `json:"notes,omitempty"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
}

// ServiceFromDomain converts a domain service to a response.
func ServiceFromDomain(s *domain.Service) *ServiceResponse {
	return &ServiceResponse{
		ID:               s.ID,
		ClientID:         s.ClientID,
		ClientName:       s.ClientName,
		ClientPhone:      s.ClientPhone,
		ClientAddress:    s.ClientAddress,
		Type:             string(s.Type),
		Status:           string(s.Status),
		ScheduledDate:    s.ScheduledDate,
		Price:            s.Price,
		Origin:           s.Origin,
		Destination:      s.Destination,
		CargoDescription: s.CargoDescription,
		RequiresHelper:   s.RequiresHelper,
		DebrisType:       string(s.DebrisType),
		DebrisQuantity:   string(s.DebrisQuantity),
		Notes:            s.Notes,
		CreatedAt:        s.CreatedAt,
		UpdatedAt:        s.UpdatedAt,
	}
}

// ServicesFromDomain converts domain services to responses.
func ServicesFromDomain(services []*domain.Service) []*ServiceResponse {
	result := make([]*ServiceResponse, len(services))
	for i, s := range services {
		result[i] = ServiceFromDomain(s)
	}
	return result
}

// ClientResponse represents a client in API responses.
type ClientResponse struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Phone          string    `json:"phone"`
	Email          string    `json:"email,omitempty"`
	DefaultAddress string    `json:"default_address,omitempty"`
	Notes          string    `json:"notes,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// ClientFromDomain converts a domain client to a response.
func ClientFromDomain(c *domain.Client) *ClientResponse {
	return &ClientResponse{
		ID:             c.ID,
		Name:           c.Name,
		Phone:          c.Phone,
		Email:          c.Email,
		DefaultAddress: c.DefaultAddress,
		Notes:          c.Notes,
		CreatedAt:      c.CreatedAt,
		UpdatedAt:      c.UpdatedAt,
	}
}

// ClientsFromDomain converts domain clients to responses.
func ClientsFromDomain(clients []*domain.Client) []*ClientResponse {
	result := make([]*ClientResponse, len(clients))
	for i, c := range clients {
		result[i] = ClientFromDomain(c)
	}
	return result
}

// UserResponse represents a user in API responses.
type UserResponse struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

// UserFromDomain converts a domain user to a response.
func UserFromDomain(u *domain.User) *UserResponse {
	return &UserResponse{
		ID:    u.ID,
		Email: u.Email,
		Name:  u.Name,
	}
}

// OrganizationResponse represents an organization in API responses.
type OrganizationResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// OrganizationFromDomain converts a domain organization to a response.
func OrganizationFromDomain(o *domain.Organization) *OrganizationResponse {
	return &OrganizationResponse{
		ID:   o.ID,
		Name: o.Name,
		Slug: o.Slug,
	}
}

// LoginResponse represents a successful login.
type LoginResponse struct {
	Token          string       `json:"token"`
	User           UserResponse `json:"user"`
	OrganizationID string       `json:"organization_id"`
	Role           string       `json:"role"`
}

// ErrorResponse represents an error in API responses.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
