package usecase

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/auradigitalchile/agendamiento-fletes/internal/domain"
)

const (
	resetTokenTTL        = 1 * time.Hour
	verificationTokenTTL = 24 * time.Hour
)

// AuthUseCase handles registration, credentials and the single-use token
// flows. The organization id a caller operates under always comes from the
// session established here, never from request input.
type AuthUseCase struct {
	txManager      TransactionManager
	userRepo       UserRepository
	orgRepo        OrganizationRepository
	membershipRepo MembershipRepository
	accountRepo    TransferAccountRepository
	tokenRepo      TokenRepository
	idGen          IDGenerator
	clock          Clock
}

// NewAuthUseCase creates a new AuthUseCase.
func NewAuthUseCase(
	txManager TransactionManager,
	userRepo UserRepository,
	orgRepo OrganizationRepository,
	membershipRepo MembershipRepository,
	accountRepo TransferAccountRepository,
	tokenRepo TokenRepository,
	idGen IDGenerator,
	clock Clock,
) *AuthUseCase {
	return &AuthUseCase{
		txManager:      txManager,
		userRepo:       userRepo,
		orgRepo:        orgRepo,
		membershipRepo: membershipRepo,
		accountRepo:    accountRepo,
		tokenRepo:      tokenRepo,
		idGen:          idGen,
		clock:          clock,
	}
}

// RegisterInput represents a signup request.
type RegisterInput struct {
	Email            string
	Password         string
	Name             string
	OrganizationName string
}

// Register creates the user, their organization, the OWNER membership and the
// two default transfer accounts as one all-or-nothing transaction.
func (uc *AuthUseCase) Register(ctx context.Context, input RegisterInput) (*domain.User, *domain.Organization, error) {
	if err := domain.ValidateEmail(input.Email); err != nil {
		return nil, nil, err
	}
	if err := domain.ValidatePassword(input.Password); err != nil {
		return nil, nil, err
	}
	if err := domain.ValidateName("name", input.Name); err != nil {
		return nil, nil, err
	}
	if err := domain.ValidateName("organizationName", input.OrganizationName); err != nil {
		return nil, nil, err
	}

	existing, err := uc.userRepo.GetByEmail(ctx, input.Email)
	if err != nil {
		return nil, nil, err
	}
	if existing != nil {
		return nil, nil, domain.NewConflictError("email is already registered")
	}

	slug, err := uc.uniqueSlug(ctx, input.OrganizationName)
	if err != nil {
		return nil, nil, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, nil, err
	}

	now := uc.clock.Now().UTC()
	user := &domain.User{
		ID:             uc.idGen.Generate(),
		Email:          input.Email,
		Name:           input.Name,
		HashedPassword: string(hashed),
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	org := &domain.Organization{
		ID:        uc.idGen.Generate(),
		Name:      input.OrganizationName,
		Slug:      slug,
		CreatedAt: now,
		UpdatedAt: now,
	}
	membership := &domain.Membership{
		ID:             uc.idGen.Generate(),
		UserID:         user.ID,
		OrganizationID: org.ID,
		Role:           domain.RoleOwner,
		CreatedAt:      now,
	}

	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return nil, nil, err
	}

	if err := uc.bootstrap(ctx, tx, user, org, membership, now); err != nil {
		_ = tx.Rollback(ctx)
		return nil, nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, nil, err
	}

	user.HashedPassword = ""
	return user, org, nil
}

func (uc *AuthUseCase) bootstrap(ctx context.Context, tx Transaction, user *domain.User, org *domain.Organization, membership *domain.Membership, now time.Time) error {
	if err := uc.userRepo.CreateTx(ctx, tx, user); err != nil {
		return err
	}
	if err := uc.orgRepo.CreateTx(ctx, tx, org); err != nil {
		return err
	}
	if err := uc.membershipRepo.CreateTx(ctx, tx, membership); err != nil {
		return err
	}
	for _, name := range []string{defaultAccountLeonardo, defaultAccountAndres} {
		account := &domain.TransferAccount{
			ID:             uc.idGen.Generate(),
			OrganizationID: org.ID,
			Name:           name,
			IsActive:       true,
			CreatedAt:      now,
			UpdatedAt:      now,
		}
		if err := uc.accountRepo.CreateTx(ctx, tx, account); err != nil {
			return err
		}
	}
	return nil
}

// Session is an authenticated user together with their organization.
type Session struct {
	User           *domain.User
	OrganizationID string
	Role           domain.Role
}

// Authenticate verifies credentials and resolves the user's organization.
func (uc *AuthUseCase) Authenticate(ctx context.Context, email, password string) (*Session, error) {
	user, err := uc.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.HashedPassword), []byte(password)); err != nil {
		return nil, domain.ErrUnauthorized
	}

	membership, err := uc.membershipRepo.GetForUser(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	if membership == nil {
		return nil, domain.ErrNoOrganization
	}

	user.HashedPassword = ""
	return &Session{
		User:           user,
		OrganizationID: membership.OrganizationID,
		Role:           membership.Role,
	}, nil
}

// RequestPasswordReset issues a single-use reset token. Whether the email is
// registered is never revealed: unknown addresses return an empty token and
// no error.
func (uc *AuthUseCase) RequestPasswordReset(ctx context.Context, email string) (string, error) {
	user, err := uc.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return "", err
	}
	if user == nil {
		return "", nil
	}

	token, err := randomToken()
	if err != nil {
		return "", err
	}

	now := uc.clock.Now().UTC()
	record := &domain.ActionToken{
		ID:        uc.idGen.Generate(),
		Token:     token,
		Purpose:   domain.TokenPasswordReset,
		UserID:    user.ID,
		Email:     user.Email,
		ExpiresAt: now.Add(resetTokenTTL),
		CreatedAt: now,
	}
	if err := uc.tokenRepo.Create(ctx, record); err != nil {
		return "", err
	}

	return token, nil
}

// ValidateResetToken checks a reset token without consuming it, for the reset
// form to show before asking for a new password.
func (uc *AuthUseCase) ValidateResetToken(ctx context.Context, token string) error {
	record, err := uc.tokenRepo.GetByToken(ctx, token, domain.TokenPasswordReset)
	if err != nil {
		return err
	}
	if record == nil || !record.Usable(uc.clock.Now().UTC()) {
		return domain.ErrInvalidToken
	}
	return nil
}

// ResetPassword consumes a reset token and sets the new password. Marking the
// token used and updating the password commit together, so a used token can
// never exist without the password change having applied.
func (uc *AuthUseCase) ResetPassword(ctx context.Context, token, newPassword string) error {
	if err := domain.ValidatePassword(newPassword); err != nil {
		return err
	}

	record, err := uc.tokenRepo.GetByToken(ctx, token, domain.TokenPasswordReset)
	if err != nil {
		return err
	}
	if record == nil || !record.Usable(uc.clock.Now().UTC()) {
		return domain.ErrInvalidToken
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	now := uc.clock.Now().UTC()
	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return err
	}
	if err := uc.userRepo.UpdatePasswordTx(ctx, tx, record.UserID, string(hashed), now); err != nil {
		_ = tx.Rollback(ctx)
		return err
	}
	if err := uc.tokenRepo.MarkUsedTx(ctx, tx, record.ID); err != nil {
		_ = tx.Rollback(ctx)
		return err
	}
	return tx.Commit(ctx)
}

// ChangePassword verifies the current password and sets a new one.
func (uc *AuthUseCase) ChangePassword(ctx context.Context, userID, currentPassword, newPassword string) error {
	if err := domain.ValidatePassword(newPassword); err != nil {
		return err
	}

	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.HashedPassword), []byte(currentPassword)); err != nil {
		return domain.ErrUnauthorized
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	now := uc.clock.Now().UTC()
	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return err
	}
	if err := uc.userRepo.UpdatePasswordTx(ctx, tx, userID, string(hashed), now); err != nil {
		_ = tx.Rollback(ctx)
		return err
	}
	return tx.Commit(ctx)
}

// RequestEmailChange issues a verification token for the new address.
func (uc *AuthUseCase) RequestEmailChange(ctx context.Context, userID, newEmail string) (string, error) {
	if err := domain.ValidateEmail(newEmail); err != nil {
		return "", err
	}

	taken, err := uc.userRepo.GetByEmail(ctx, newEmail)
	if err != nil {
		return "", err
	}
	if taken != nil {
		return "", domain.NewConflictError("email is already registered")
	}

	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return "", err
	}

	token, err := randomToken()
	if err != nil {
		return "", err
	}

	now := uc.clock.Now().UTC()
	record := &domain.ActionToken{
		ID:        uc.idGen.Generate(),
		Token:     token,
		Purpose:   domain.TokenEmailVerification,
		UserID:    user.ID,
		Email:     user.Email,
		NewEmail:  newEmail,
		ExpiresAt: now.Add(verificationTokenTTL),
		CreatedAt: now,
	}
	if err := uc.tokenRepo.Create(ctx, record); err != nil {
		return "", err
	}

	return token, nil
}

// VerifyEmail consumes a verification token and applies the new address,
// atomically with marking the token used.
func (uc *AuthUseCase) VerifyEmail(ctx context.Context, token string) error {
	record, err := uc.tokenRepo.GetByToken(ctx, token, domain.TokenEmailVerification)
	if err != nil {
		return err
	}
	if record == nil || !record.Usable(uc.clock.Now().UTC()) {
		return domain.ErrInvalidToken
	}

	now := uc.clock.Now().UTC()
	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return err
	}
	if err := uc.userRepo.UpdateEmailTx(ctx, tx, record.UserID, record.NewEmail, now); err != nil {
		_ = tx.Rollback(ctx)
		return err
	}
	if err := uc.tokenRepo.MarkUsedTx(ctx, tx, record.ID); err != nil {
		_ = tx.Rollback(ctx)
		return err
	}
	return tx.Commit(ctx)
}

// Me returns the session user's profile and organization.
func (uc *AuthUseCase) Me(ctx context.Context, userID, orgID string) (*domain.User, *domain.Organization, error) {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, nil, err
	}
	user.HashedPassword = ""

	org, err := uc.orgRepo.GetByID(ctx, orgID)
	if err != nil {
		return nil, nil, err
	}
	return user, org, nil
}

// uniqueSlug slugifies the organization name and de-duplicates with a numeric
// suffix.
func (uc *AuthUseCase) uniqueSlug(ctx context.Context, name string) (string, error) {
	base := domain.Slugify(name)
	if base == "" {
		base = "org"
	}

	slug := base
	for counter := 1; ; counter++ {
		existing, err := uc.orgRepo.GetBySlug(ctx, slug)
		if err != nil {
			return "", err
		}
		if existing == nil {
			return slug, nil
		}
		slug = fmt.Sprintf("%s-%d", base, counter)
	}
}

func randomToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
