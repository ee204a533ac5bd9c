package mocks

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/auradigitalchile/agendamiento-fletes/internal/domain"
	"github.com/auradigitalchile/agendamiento-fletes/internal/usecase"
)

// MockMovementRepository is an in-memory MovementRepository. Any *Func field
// overrides the default behavior for that method.
type MockMovementRepository struct {
	mu        sync.RWMutex
	movements map[string]*domain.CashMovement

	CreateFunc                 func(ctx context.Context, movement *domain.CashMovement) error
	GetByIDFunc                func(ctx context.Context, orgID, id string) (*domain.CashMovement, error)
	ListFunc                   func(ctx context.Context, orgID string, filter domain.MovementFilter, asc bool) ([]*domain.CashMovement, error)
	UpdateFunc                 func(ctx context.Context, movement *domain.CashMovement) error
	DeleteFunc                 func(ctx context.Context, orgID, id string) error
	CountByTransferAccountFunc func(ctx context.Context, accountID string) (int64, error)
	RetagLegacyFunc            func(ctx context.Context, orgID, legacyMethod, accountID string) (int64, error)
}

func NewMockMovementRepository() *MockMovementRepository {
	return &MockMovementRepository{movements: make(map[string]*domain.CashMovement)}
}

func (m *MockMovementRepository) Create(ctx context.Context, movement *domain.CashMovement) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, movement)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	copied := *movement
	m.movements[movement.ID] = &copied
	return nil
}

func (m *MockMovementRepository) GetByID(ctx context.Context, orgID, id string) (*domain.CashMovement, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, orgID, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if mv, ok := m.movements[id]; ok && mv.OrganizationID == orgID {
		copied := *mv
		return &copied, nil
	}
	return nil, domain.NewNotFoundError("cash movement")
}

func (m *MockMovementRepository) List(ctx context.Context, orgID string, filter domain.MovementFilter, asc bool) ([]*domain.CashMovement, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, orgID, filter, asc)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var result []*domain.CashMovement
	for _, mv := range m.movements {
		if mv.OrganizationID != orgID {
			continue
		}
		if filter.Type != "" && mv.Type != filter.Type {
			continue
		}
		if filter.Method != "" && mv.Method != filter.Method {
			continue
		}
		if filter.From != nil && mv.Date.Before(*filter.From) {
			continue
		}
		if filter.To != nil && !mv.Date.Before(*filter.To) {
			continue
		}
		copied := *mv
		result = append(result, &copied)
	}
	sort.Slice(result, func(i, j int) bool {
		if asc {
			return result[i].Date.Before(result[j].Date)
		}
		return result[j].Date.Before(result[i].Date)
	})
	return result, nil
}

func (m *MockMovementRepository) Update(ctx context.Context, movement *domain.CashMovement) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, movement)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.movements[movement.ID]; !ok {
		return domain.NewNotFoundError("cash movement")
	}
	copied := *movement
	m.movements[movement.ID] = &copied
	return nil
}

func (m *MockMovementRepository) Delete(ctx context.Context, orgID, id string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, orgID, id)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if mv, ok := m.movements[id]; ok && mv.OrganizationID == orgID {
		delete(m.movements, id)
		return nil
	}
	return domain.NewNotFoundError("cash movement")
}

func (m *MockMovementRepository) CountByTransferAccount(ctx context.Context, accountID string) (int64, error) {
	if m.CountByTransferAccountFunc != nil {
		return m.CountByTransferAccountFunc(ctx, accountID)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var count int64
	for _, mv := range m.movements {
		if mv.TransferAccountID != nil && *mv.TransferAccountID == accountID {
			count++
		}
	}
	return count, nil
}

func (m *MockMovementRepository) RetagLegacy(ctx context.Context, orgID, legacyMethod, accountID string) (int64, error) {
	if m.RetagLegacyFunc != nil {
		return m.RetagLegacyFunc(ctx, orgID, legacyMethod, accountID)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	var count int64
	for _, mv := range m.movements {
		if mv.OrganizationID == orgID && string(mv.Method) == legacyMethod && mv.TransferAccountID == nil {
			id := accountID
			mv.Method = domain.MethodTransfer
			mv.TransferAccountID = &id
			count++
		}
	}
	return count, nil
}

// Snapshot returns a copy of the stored movements for assertions.
func (m *MockMovementRepository) Snapshot() []*domain.CashMovement {
	m.mu.RLock()
	defer m.mu.RUnlock()
	result := make([]*domain.CashMovement, 0, len(m.movements))
	for _, mv := range m.movements {
		copied := *mv
		result = append(result, &copied)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result
}

// MockTransferAccountRepository is an in-memory TransferAccountRepository.
type MockTransferAccountRepository struct {
	mu       sync.RWMutex
	accounts map[string]*domain.TransferAccount

	CreateFunc    func(ctx context.Context, account *domain.TransferAccount) error
	GetByIDFunc   func(ctx context.Context, orgID, id string) (*domain.TransferAccount, error)
	GetByNameFunc func(ctx context.Context, orgID, name string) (*domain.TransferAccount, error)
	ListFunc      func(ctx context.Context, orgID string, activeOnly bool) ([]*domain.TransferAccount, error)
	UpdateFunc    func(ctx context.Context, account *domain.TransferAccount) error
	DeleteFunc    func(ctx context.Context, orgID, id string) error
}

func NewMockTransferAccountRepository() *MockTransferAccountRepository {
	return &MockTransferAccountRepository{accounts: make(map[string]*domain.TransferAccount)}
}

func (m *MockTransferAccountRepository) Create(ctx context.Context, account *domain.TransferAccount) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, account)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	copied := *account
	m.accounts[account.ID] = &copied
	return nil
}

func (m *MockTransferAccountRepository) CreateTx(ctx context.Context, tx usecase.Transaction, account *domain.TransferAccount) error {
	return m.Create(ctx, account)
}

func (m *MockTransferAccountRepository) GetByID(ctx context.Context, orgID, id string) (*domain.TransferAccount, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, orgID, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if acc, ok := m.accounts[id]; ok && acc.OrganizationID == orgID {
		copied := *acc
		return &copied, nil
	}
	return nil, domain.NewNotFoundError("transfer account")
}

func (m *MockTransferAccountRepository) GetByName(ctx context.Context, orgID, name string) (*domain.TransferAccount, error) {
	if m.GetByNameFunc != nil {
		return m.GetByNameFunc(ctx, orgID, name)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, acc := range m.accounts {
		if acc.OrganizationID == orgID && acc.Name == name {
			copied := *acc
			return &copied, nil
		}
	}
	return nil, nil
}

func (m *MockTransferAccountRepository) List(ctx context.Context, orgID string, activeOnly bool) ([]*domain.TransferAccount, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, orgID, activeOnly)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var result []*domain.TransferAccount
	for _, acc := range m.accounts {
		if acc.OrganizationID != orgID {
			continue
		}
		if activeOnly && !acc.IsActive {
			continue
		}
		copied := *acc
		result = append(result, &copied)
	}
	sort.Slice(result, func(i, j int) bool {
		return strings.ToLower(result[i].Name) < strings.ToLower(result[j].Name)
	})
	return result, nil
}

func (m *MockTransferAccountRepository) Update(ctx context.Context, account *domain.TransferAccount) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, account)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.accounts[account.ID]; !ok {
		return domain.NewNotFoundError("transfer account")
	}
	copied := *account
	m.accounts[account.ID] = &copied
	return nil
}

func (m *MockTransferAccountRepository) Delete(ctx context.Context, orgID, id string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, orgID, id)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if acc, ok := m.accounts[id]; ok && acc.OrganizationID == orgID {
		delete(m.accounts, id)
		return nil
	}
	return domain.NewNotFoundError("transfer account")
}

// MockDailyCloseRepository is an in-memory DailyCloseRepository.
type MockDailyCloseRepository struct {
	mu     sync.RWMutex
	closes map[string]*domain.DailyClose

	CreateFunc            func(ctx context.Context, tx usecase.Transaction, close *domain.DailyClose) error
	GetByDateFunc         func(ctx context.Context, orgID string, date time.Time) (*domain.DailyClose, error)
	ListFunc              func(ctx context.Context, orgID string, from, to *time.Time) ([]*domain.DailyClose, error)
	ListLegacyPendingFunc func(ctx context.Context, orgID string) ([]*domain.DailyClose, error)
	SetTransferTotalsFunc func(ctx context.Context, id string, totals map[string]float64) error
}

func NewMockDailyCloseRepository() *MockDailyCloseRepository {
	return &MockDailyCloseRepository{closes: make(map[string]*domain.DailyClose)}
}

func (m *MockDailyCloseRepository) Create(ctx context.Context, tx usecase.Transaction, close *domain.DailyClose) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, tx, close)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, c := range m.closes {
		if c.OrganizationID == close.OrganizationID && c.Date.Equal(close.Date) {
			return domain.NewDuplicateCloseError(close.Date)
		}
	}
	copied := *close
	m.closes[close.ID] = &copied
	return nil
}

func (m *MockDailyCloseRepository) GetByDate(ctx context.Context, orgID string, date time.Time) (*domain.DailyClose, error) {
	if m.GetByDateFunc != nil {
		return m.GetByDateFunc(ctx, orgID, date)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, c := range m.closes {
		if c.OrganizationID == orgID && c.Date.Equal(date) {
			copied := *c
			return &copied, nil
		}
	}
	return nil, nil
}

func (m *MockDailyCloseRepository) List(ctx context.Context, orgID string, from, to *time.Time) ([]*domain.DailyClose, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, orgID, from, to)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var result []*domain.DailyClose
	for _, c := range m.closes {
		if c.OrganizationID != orgID {
			continue
		}
		if from != nil && c.Date.Before(*from) {
			continue
		}
		if to != nil && !c.Date.Before(*to) {
			continue
		}
		copied := *c
		result = append(result, &copied)
	}
	sort.Slice(result, func(i, j int) bool { return result[j].Date.Before(result[i].Date) })
	return result, nil
}

func (m *MockDailyCloseRepository) ListLegacyPending(ctx context.Context, orgID string) ([]*domain.DailyClose, error) {
	if m.ListLegacyPendingFunc != nil {
		return m.ListLegacyPendingFunc(ctx, orgID)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var result []*domain.DailyClose
	for _, c := range m.closes {
		if c.OrganizationID != orgID || c.TransferTotals != nil {
			continue
		}
		if c.LegacyTransferAndres == nil && c.LegacyTransferHermano == nil {
			continue
		}
		copied := *c
		result = append(result, &copied)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Date.Before(result[j].Date) })
	return result, nil
}

func (m *MockDailyCloseRepository) SetTransferTotals(ctx context.Context, id string, totals map[string]float64) error {
	if m.SetTransferTotalsFunc != nil {
		return m.SetTransferTotalsFunc(ctx, id, totals)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.closes[id]
	if !ok {
		return domain.NewNotFoundError("daily close")
	}
	if c.TransferTotals != nil {
		return nil
	}
	copied := make(map[string]float64, len(totals))
	for k, v := range totals {
		copied[k] = v
	}
	c.TransferTotals = copied
	return nil
}

// Seed stores a close directly, bypassing the duplicate check.
func (m *MockDailyCloseRepository) Seed(close *domain.DailyClose) {
	m.mu.Lock()
	defer m.mu.Unlock()
	copied := *close
	m.closes[close.ID] = &copied
}

// Get returns a stored close by id for assertions.
func (m *MockDailyCloseRepository) Get(id string) *domain.DailyClose {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if c, ok := m.closes[id]; ok {
		copied := *c
		return &copied
	}
	return nil
}

// MockOrganizationRepository is an in-memory OrganizationRepository.
type MockOrganizationRepository struct {
	mu   sync.RWMutex
	orgs map[string]*domain.Organization

	ListFunc func(ctx context.Context) ([]*domain.Organization, error)
}

func NewMockOrganizationRepository() *MockOrganizationRepository {
	return &MockOrganizationRepository{orgs: make(map[string]*domain.Organization)}
}

func (m *MockOrganizationRepository) CreateTx(ctx context.Context, tx usecase.Transaction, org *domain.Organization) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	copied := *org
	m.orgs[org.ID] = &copied
	return nil
}

func (m *MockOrganizationRepository) GetByID(ctx context.Context, id string) (*domain.Organization, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if org, ok := m.orgs[id]; ok {
		copied := *org
		return &copied, nil
	}
	return nil, domain.NewNotFoundError("organization")
}

func (m *MockOrganizationRepository) GetBySlug(ctx context.Context, slug string) (*domain.Organization, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, org := range m.orgs {
		if org.Slug == slug {
			copied := *org
			return &copied, nil
		}
	}
	return nil, nil
}

func (m *MockOrganizationRepository) List(ctx context.Context) ([]*domain.Organization, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	result := make([]*domain.Organization, 0, len(m.orgs))
	for _, org := range m.orgs {
		copied := *org
		result = append(result, &copied)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

// MockUserRepository is an in-memory UserRepository.
type MockUserRepository struct {
	mu    sync.RWMutex
	users map[string]*domain.User

	GetByEmailFunc func(ctx context.Context, email string) (*domain.User, error)
}

func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{users: make(map[string]*domain.User)}
}

func (m *MockUserRepository) CreateTx(ctx context.Context, tx usecase.Transaction, user *domain.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	copied := *user
	m.users[user.ID] = &copied
	return nil
}

func (m *MockUserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if u, ok := m.users[id]; ok {
		copied := *u
		return &copied, nil
	}
	return nil, domain.NewNotFoundError("user")
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	if m.GetByEmailFunc != nil {
		return m.GetByEmailFunc(ctx, email)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, u := range m.users {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, nil
}

func (m *MockUserRepository) UpdatePasswordTx(ctx context.Context, tx usecase.Transaction, userID, hashedPassword string, updatedAt time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[userID]
	if !ok {
		return domain.NewNotFoundError("user")
	}
	u.HashedPassword = hashedPassword
	u.UpdatedAt = updatedAt
	return nil
}

func (m *MockUserRepository) UpdateEmailTx(ctx context.Context, tx usecase.Transaction, userID, email string, updatedAt time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[userID]
	if !ok {
		return domain.NewNotFoundError("user")
	}
	u.Email = email
	u.UpdatedAt = updatedAt
	return nil
}

// MockMembershipRepository is an in-memory MembershipRepository.
type MockMembershipRepository struct {
	mu          sync.RWMutex
	memberships map[string]*domain.Membership
}

func NewMockMembershipRepository() *MockMembershipRepository {
	return &MockMembershipRepository{memberships: make(map[string]*domain.Membership)}
}

func (m *MockMembershipRepository) CreateTx(ctx context.Context, tx usecase.Transaction, membership *domain.Membership) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	copied := *membership
	m.memberships[membership.ID] = &copied
	return nil
}

func (m *MockMembershipRepository) GetForUser(ctx context.Context, userID string) (*domain.Membership, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, mb := range m.memberships {
		if mb.UserID == userID {
			copied := *mb
			return &copied, nil
		}
	}
	return nil, nil
}

// MockTokenRepository is an in-memory TokenRepository.
type MockTokenRepository struct {
	mu     sync.RWMutex
	tokens map[string]*domain.ActionToken
}

func NewMockTokenRepository() *MockTokenRepository {
	return &MockTokenRepository{tokens: make(map[string]*domain.ActionToken)}
}

func (m *MockTokenRepository) Create(ctx context.Context, token *domain.ActionToken) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	copied := *token
	m.tokens[token.ID] = &copied
	return nil
}

func (m *MockTokenRepository) GetByToken(ctx context.Context, token string, purpose domain.TokenPurpose) (*domain.ActionToken, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, t := range m.tokens {
		if t.Token == token && t.Purpose == purpose {
			copied := *t
			return &copied, nil
		}
	}
	return nil, nil
}

func (m *MockTokenRepository) MarkUsedTx(ctx context.Context, tx usecase.Transaction, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.tokens[id]
	if !ok {
		return domain.NewNotFoundError("token")
	}
	t.Used = true
	return nil
}

// MockServiceRepository is an in-memory ServiceRepository.
type MockServiceRepository struct {
	mu       sync.RWMutex
	services map[string]*domain.Service

	ListFunc func(ctx context.Context, orgID string, filter domain.ServiceFilter, asc bool) ([]*domain.Service, error)
}

func NewMockServiceRepository() *MockServiceRepository {
	return &MockServiceRepository{services: make(map[string]*domain.Service)}
}

func (m *MockServiceRepository) Create(ctx context.Context, service *domain.Service) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	copied := *service
	m.services[service.ID] = &copied
	return nil
}

func (m *MockServiceRepository) GetByID(ctx context.Context, orgID, id string) (*domain.Service, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if s, ok := m.services[id]; ok && s.OrganizationID == orgID {
		copied := *s
		return &copied, nil
	}
	return nil, domain.NewNotFoundError("service")
}

func (m *MockServiceRepository) List(ctx context.Context, orgID string, filter domain.ServiceFilter, asc bool) ([]*domain.Service, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, orgID, filter, asc)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var result []*domain.Service
	for _, s := range m.services {
		if s.OrganizationID != orgID {
			continue
		}
		if filter.Type != "" && s.Type != filter.Type {
			continue
		}
		if filter.Status != "" && s.Status != filter.Status {
			continue
		}
		if filter.ClientID != "" && (s.ClientID == nil || *s.ClientID != filter.ClientID) {
			continue
		}
		if filter.From != nil && s.ScheduledDate.Before(*filter.From) {
			continue
		}
		if filter.To != nil && !s.ScheduledDate.Before(*filter.To) {
			continue
		}
		copied := *s
		result = append(result, &copied)
	}
	sort.Slice(result, func(i, j int) bool {
		if asc {
			return result[i].ScheduledDate.Before(result[j].ScheduledDate)
		}
		return result[j].ScheduledDate.Before(result[i].ScheduledDate)
	})
	return result, nil
}

func (m *MockServiceRepository) Update(ctx context.Context, service *domain.Service) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.services[service.ID]; !ok {
		return domain.NewNotFoundError("service")
	}
	copied := *service
	m.services[service.ID] = &copied
	return nil
}

func (m *MockServiceRepository) Delete(ctx context.Context, orgID, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if s, ok := m.services[id]; ok && s.OrganizationID == orgID {
		delete(m.services, id)
		return nil
	}
	return domain.NewNotFoundError("service")
}

// MockClientRepository is an in-memory ClientRepository.
type MockClientRepository struct {
	mu      sync.RWMutex
	clients map[string]*domain.Client
}

func NewMockClientRepository() *MockClientRepository {
	return &MockClientRepository{clients: make(map[string]*domain.Client)}
}

func (m *MockClientRepository) Create(ctx context.Context, client *domain.Client) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	copied := *client
	m.clients[client.ID] = &copied
	return nil
}

func (m *MockClientRepository) GetByID(ctx context.Context, orgID, id string) (*domain.Client, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if c, ok := m.clients[id]; ok && c.OrganizationID == orgID {
		copied := *c
		return &copied, nil
	}
	return nil, domain.NewNotFoundError("client")
}

func (m *MockClientRepository) List(ctx context.Context, orgID string) ([]*domain.Client, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var result []*domain.Client
	for _, c := range m.clients {
		if c.OrganizationID == orgID {
			copied := *c
			result = append(result, &copied)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

func (m *MockClientRepository) Update(ctx context.Context, client *domain.Client) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.clients[client.ID]; !ok {
		return domain.NewNotFoundError("client")
	}
	copied := *client
	m.clients[client.ID] = &copied
	return nil
}

func (m *MockClientRepository) Delete(ctx context.Context, orgID, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if c, ok := m.clients[id]; ok && c.OrganizationID == orgID {
		delete(m.clients, id)
		return nil
	}
	return domain.NewNotFoundError("client")
}

// MockIDGenerator returns sequential ids, or GenerateFunc's result.
type MockIDGenerator struct {
	mu   sync.Mutex
	next int

	GenerateFunc func() string
}

func NewMockIDGenerator() *MockIDGenerator {
	return &MockIDGenerator{}
}

func (m *MockIDGenerator) Generate() string {
	if m.GenerateFunc != nil {
		return m.GenerateFunc()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.next++
	return "id-" + itoa(m.next)
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	var digits []byte
	for n > 0 {
		digits = append([]byte{byte('0' + n%10)}, digits...)
		n /= 10
	}
	return string(digits)
}

// MockClock returns a fixed time.
type MockClock struct {
	Time time.Time
}

func NewMockClock(t time.Time) *MockClock {
	return &MockClock{Time: t}
}

func (m *MockClock) Now() time.Time {
	return m.Time
}

// MockTx is a no-op transaction.
type MockTx struct {
	Committed  bool
	RolledBack bool
}

func (t *MockTx) Commit(ctx context.Context) error {
	t.Committed = true
	return nil
}

func (t *MockTx) Rollback(ctx context.Context) error {
	t.RolledBack = true
	return nil
}

// MockTxManager hands out MockTx transactions.
type MockTxManager struct {
	mu  sync.Mutex
	Txs []*MockTx

	BeginFunc func(ctx context.Context) (usecase.Transaction, error)
}

func NewMockTxManager() *MockTxManager {
	return &MockTxManager{}
}

func (m *MockTxManager) Begin(ctx context.Context) (usecase.Transaction, error) {
	if m.BeginFunc != nil {
		return m.BeginFunc(ctx)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	tx := &MockTx{}
	m.Txs = append(m.Txs, tx)
	return tx, nil
}

// MockRetrier runs the operation once, without backoff.
type MockRetrier struct{}

func NewMockRetrier() *MockRetrier {
	return &MockRetrier{}
}

func (m *MockRetrier) Retry(ctx context.Context, operation func() error) error {
	return operation()
}
