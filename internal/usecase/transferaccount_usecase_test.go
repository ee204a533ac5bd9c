package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/auradigitalchile/agendamiento-fletes/internal/domain"
	"github.com/auradigitalchile/agendamiento-fletes/internal/usecase"
	"github.com/auradigitalchile/agendamiento-fletes/internal/usecase/mocks"
)

func newAccountUseCase() (*usecase.TransferAccountUseCase, *mocks.MockTransferAccountRepository, *mocks.MockMovementRepository) {
	accountRepo := mocks.NewMockTransferAccountRepository()
	movementRepo := mocks.NewMockMovementRepository()
	uc := usecase.NewTransferAccountUseCase(accountRepo, movementRepo, mocks.NewMockIDGenerator(), mocks.NewMockClock(testNow))
	return uc, accountRepo, movementRepo
}

func TestAccountCreate(t *testing.T) {
	uc, _, _ := newAccountUseCase()

	account, err := uc.Create(context.Background(), "org-1", "Banco Estado")
	require.NoError(t, err)

	assert.Equal(t, "Banco Estado", account.Name)
	assert.True(t, account.IsActive)
}

func TestAccountCreate_DuplicateName(t *testing.T) {
	uc, _, _ := newAccountUseCase()

	_, err := uc.Create(context.Background(), "org-1", "Banco Estado")
	require.NoError(t, err)

	_, err = uc.Create(context.Background(), "org-1", "Banco Estado")
	assert.True(t, domain.IsConflict(err))
}

func TestAccountCreate_InactiveNameStillTaken(t *testing.T) {
	uc, accountRepo, _ := newAccountUseCase()
	seedAccount(t, accountRepo, "org-1", "acc-1", "Banco Estado", false)

	_, err := uc.Create(context.Background(), "org-1", "Banco Estado")
	assert.True(t, domain.IsConflict(err), "inactive accounts keep their name reserved")
}

func TestAccountCreate_SameNameDifferentOrg(t *testing.T) {
	uc, _, _ := newAccountUseCase()

	_, err := uc.Create(context.Background(), "org-1", "Banco Estado")
	require.NoError(t, err)

	_, err = uc.Create(context.Background(), "org-2", "Banco Estado")
	assert.NoError(t, err, "uniqueness is per organization")
}

func TestAccountCreate_EmptyName(t *testing.T) {
	uc, _, _ := newAccountUseCase()

	_, err := uc.Create(context.Background(), "org-1", "  ")
	assert.True(t, domain.IsValidation(err))
}

func TestAccountUpdate_RenameConflict(t *testing.T) {
	uc, _, _ := newAccountUseCase()

	_, err := uc.Create(context.Background(), "org-1", "Banco Estado")
	require.NoError(t, err)
	second, err := uc.Create(context.Background(), "org-1", "Banco Chile")
	require.NoError(t, err)

	_, err = uc.Update(context.Background(), "org-1", second.ID, usecase.UpdateAccountInput{
		Name: strptr("Banco Estado"),
	})
	assert.True(t, domain.IsConflict(err))
}

func TestAccountUpdate_KeepOwnName(t *testing.T) {
	uc, _, _ := newAccountUseCase()

	account, err := uc.Create(context.Background(), "org-1", "Banco Estado")
	require.NoError(t, err)

	active := false
	updated, err := uc.Update(context.Background(), "org-1", account.ID, usecase.UpdateAccountInput{
		Name:     strptr("Banco Estado"),
		IsActive: &active,
	})
	require.NoError(t, err, "re-submitting the current name is not a conflict")
	assert.False(t, updated.IsActive)
}

func TestAccountDelete_BlockedByMovements(t *testing.T) {
	uc, _, movementRepo := newAccountUseCase()

	account, err := uc.Create(context.Background(), "org-1", "Banco Estado")
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		err := movementRepo.Create(context.Background(), &domain.CashMovement{
			ID:                "mv-" + string(rune('a'+i)),
			OrganizationID:    "org-1",
			Type:              domain.MovementIncome,
			Amount:            100,
			Method:            domain.MethodTransfer,
			TransferAccountID: &account.ID,
			Date:              testNow,
		})
		require.NoError(t, err)
	}

	err = uc.Delete(context.Background(), "org-1", account.ID)
	require.True(t, domain.IsConflict(err))

	var conflict *domain.ConflictError
	require.True(t, errors.As(err, &conflict))
	assert.Equal(t, int64(3), conflict.ReferenceCount)
}

func TestAccountDelete_Unreferenced(t *testing.T) {
	uc, accountRepo, _ := newAccountUseCase()

	account, err := uc.Create(context.Background(), "org-1", "Banco Estado")
	require.NoError(t, err)

	require.NoError(t, uc.Delete(context.Background(), "org-1", account.ID))

	_, err = accountRepo.GetByID(context.Background(), "org-1", account.ID)
	assert.True(t, domain.IsNotFound(err))
}

func TestAccountListActive_FiltersInactive(t *testing.T) {
	uc, accountRepo, _ := newAccountUseCase()
	seedAccount(t, accountRepo, "org-1", "acc-1", "Banco Estado", true)
	seedAccount(t, accountRepo, "org-1", "acc-2", "Banco Chile", false)

	active, err := uc.ListActive(context.Background(), "org-1")
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, "acc-1", active[0].ID)

	all, err := uc.ListAll(context.Background(), "org-1")
	require.NoError(t, err)
	assert.Len(t, all, 2)
}
