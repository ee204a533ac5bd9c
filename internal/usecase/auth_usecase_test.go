package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/auradigitalchile/agendamiento-fletes/internal/domain"
	"github.com/auradigitalchile/agendamiento-fletes/internal/usecase"
	"github.com/auradigitalchile/agendamiento-fletes/internal/usecase/mocks"
)

type authFixture struct {
	uc          *usecase.AuthUseCase
	userRepo    *mocks.MockUserRepository
	orgRepo     *mocks.MockOrganizationRepository
	accountRepo *mocks.MockTransferAccountRepository
	tokenRepo   *mocks.MockTokenRepository
	txManager   *mocks.MockTxManager
}

func newAuthFixture() *authFixture {
	f := &authFixture{
		userRepo:    mocks.NewMockUserRepository(),
		orgRepo:     mocks.NewMockOrganizationRepository(),
		accountRepo: mocks.NewMockTransferAccountRepository(),
		tokenRepo:   mocks.NewMockTokenRepository(),
		txManager:   mocks.NewMockTxManager(),
	}
	f.uc = usecase.NewAuthUseCase(
		f.txManager,
		f.userRepo,
		f.orgRepo,
		mocks.NewMockMembershipRepository(),
		f.accountRepo,
		f.tokenRepo,
		mocks.NewMockIDGenerator(),
		mocks.NewMockClock(testNow),
	)
	return f
}

func registerInput() usecase.RegisterInput {
	return usecase.RegisterInput{
		Email:            "andres@fletessur.cl",
		Password:         "secreto123",
		Name:             "Andrés",
		OrganizationName: "Fletes Sur",
	}
}

func TestRegister_BootstrapsOrganization(t *testing.T) {
	f := newAuthFixture()

	user, org, err := f.uc.Register(context.Background(), registerInput())
	require.NoError(t, err)

	assert.Empty(t, user.HashedPassword, "hash never leaves the usecase")
	assert.Equal(t, "fletes-sur", org.Slug)

	// Registration seeds the two default transfer accounts.
	accounts, err := f.accountRepo.List(context.Background(), org.ID, true)
	require.NoError(t, err)
	require.Len(t, accounts, 2)
	names := []string{accounts[0].Name, accounts[1].Name}
	assert.ElementsMatch(t, []string{"Transfer. Andrés", "Transfer. Leonardo"}, names)

	session, err := f.uc.Authenticate(context.Background(), "andres@fletessur.cl", "secreto123")
	require.NoError(t, err)
	assert.Equal(t, org.ID, session.OrganizationID)
	assert.Equal(t, domain.RoleOwner, session.Role)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	f := newAuthFixture()

	_, _, err := f.uc.Register(context.Background(), registerInput())
	require.NoError(t, err)

	input := registerInput()
	input.OrganizationName = "Otra Empresa"
	_, _, err = f.uc.Register(context.Background(), input)
	assert.True(t, domain.IsConflict(err))
}

func TestRegister_SlugDeduplication(t *testing.T) {
	f := newAuthFixture()

	_, first, err := f.uc.Register(context.Background(), registerInput())
	require.NoError(t, err)

	input := registerInput()
	input.Email = "leonardo@fletessur.cl"
	_, second, err := f.uc.Register(context.Background(), input)
	require.NoError(t, err)

	assert.Equal(t, "fletes-sur", first.Slug)
	assert.Equal(t, "fletes-sur-1", second.Slug)
}

func TestRegister_WeakPassword(t *testing.T) {
	f := newAuthFixture()

	input := registerInput()
	input.Password = "abc"
	_, _, err := f.uc.Register(context.Background(), input)
	assert.True(t, domain.IsValidation(err))
}

func TestAuthenticate_WrongPassword(t *testing.T) {
	f := newAuthFixture()

	_, _, err := f.uc.Register(context.Background(), registerInput())
	require.NoError(t, err)

	_, err = f.uc.Authenticate(context.Background(), "andres@fletessur.cl", "incorrecta")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestAuthenticate_UnknownEmail(t *testing.T) {
	f := newAuthFixture()

	_, err := f.uc.Authenticate(context.Background(), "nadie@fletessur.cl", "secreto123")
	assert.ErrorIs(t, err, domain.ErrUnauthorized, "unknown email reads the same as a bad password")
}

func TestPasswordReset_FullFlow(t *testing.T) {
	f := newAuthFixture()

	_, _, err := f.uc.Register(context.Background(), registerInput())
	require.NoError(t, err)

	token, err := f.uc.RequestPasswordReset(context.Background(), "andres@fletessur.cl")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	require.NoError(t, f.uc.ValidateResetToken(context.Background(), token))
	require.NoError(t, f.uc.ResetPassword(context.Background(), token, "nuevaclave"))

	_, err = f.uc.Authenticate(context.Background(), "andres@fletessur.cl", "secreto123")
	assert.ErrorIs(t, err, domain.ErrUnauthorized, "old password no longer works")

	_, err = f.uc.Authenticate(context.Background(), "andres@fletessur.cl", "nuevaclave")
	assert.NoError(t, err)

	// The token is single-use.
	err = f.uc.ResetPassword(context.Background(), token, "otraclave")
	assert.ErrorIs(t, err, domain.ErrInvalidToken)
}

func TestPasswordReset_UnknownEmailIsSilent(t *testing.T) {
	f := newAuthFixture()

	token, err := f.uc.RequestPasswordReset(context.Background(), "nadie@fletessur.cl")
	require.NoError(t, err, "whether an email is registered is never revealed")
	assert.Empty(t, token)
}

func TestChangePassword_RequiresCurrent(t *testing.T) {
	f := newAuthFixture()

	user, _, err := f.uc.Register(context.Background(), registerInput())
	require.NoError(t, err)

	err = f.uc.ChangePassword(context.Background(), user.ID, "incorrecta", "nuevaclave")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	require.NoError(t, f.uc.ChangePassword(context.Background(), user.ID, "secreto123", "nuevaclave"))

	_, err = f.uc.Authenticate(context.Background(), "andres@fletessur.cl", "nuevaclave")
	assert.NoError(t, err)
}

func TestEmailChange_FullFlow(t *testing.T) {
	f := newAuthFixture()

	user, _, err := f.uc.Register(context.Background(), registerInput())
	require.NoError(t, err)

	token, err := f.uc.RequestEmailChange(context.Background(), user.ID, "nuevo@fletessur.cl")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	require.NoError(t, f.uc.VerifyEmail(context.Background(), token))

	updated, err := f.userRepo.GetByID(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, "nuevo@fletessur.cl", updated.Email)
}

func TestEmailChange_TakenAddress(t *testing.T) {
	f := newAuthFixture()

	user, _, err := f.uc.Register(context.Background(), registerInput())
	require.NoError(t, err)

	input := registerInput()
	input.Email = "leonardo@fletessur.cl"
	_, _, err = f.uc.Register(context.Background(), input)
	require.NoError(t, err)

	_, err = f.uc.RequestEmailChange(context.Background(), user.ID, "leonardo@fletessur.cl")
	assert.True(t, domain.IsConflict(err))
}
