package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/auradigitalchile/agendamiento-fletes/internal/domain"
	"github.com/auradigitalchile/agendamiento-fletes/internal/usecase"
	"github.com/auradigitalchile/agendamiento-fletes/internal/usecase/mocks"
)

var testNow = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

func strptr(s string) *string { return &s }

func seedAccount(t *testing.T, repo *mocks.MockTransferAccountRepository, orgID, id, name string, active bool) {
	t.Helper()
	err := repo.Create(context.Background(), &domain.TransferAccount{
		ID:             id,
		OrganizationID: orgID,
		Name:           name,
		IsActive:       active,
		CreatedAt:      testNow,
		UpdatedAt:      testNow,
	})
	require.NoError(t, err)
}

func newMovementUseCase() (*usecase.MovementUseCase, *mocks.MockMovementRepository, *mocks.MockTransferAccountRepository) {
	movementRepo := mocks.NewMockMovementRepository()
	accountRepo := mocks.NewMockTransferAccountRepository()
	uc := usecase.NewMovementUseCase(movementRepo, accountRepo, mocks.NewMockIDGenerator(), mocks.NewMockClock(testNow))
	return uc, movementRepo, accountRepo
}

func TestMovementRecord_Cash(t *testing.T) {
	uc, _, _ := newMovementUseCase()

	movement, err := uc.Record(context.Background(), "org-1", usecase.RecordMovementInput{
		Type:     domain.MovementIncome,
		Amount:   1000,
		Method:   domain.MethodCash,
		Category: "Flete",
	})
	require.NoError(t, err)

	assert.Equal(t, "org-1", movement.OrganizationID)
	assert.Equal(t, 1000.0, movement.Amount)
	assert.Nil(t, movement.TransferAccountID)
	assert.Equal(t, testNow, movement.Date, "date defaults to the clock")
}

func TestMovementRecord_TransferRequiresAccount(t *testing.T) {
	uc, _, _ := newMovementUseCase()

	_, err := uc.Record(context.Background(), "org-1", usecase.RecordMovementInput{
		Type:   domain.MovementIncome,
		Amount: 500,
		Method: domain.MethodTransfer,
	})
	assert.True(t, domain.IsValidation(err))
}

func TestMovementRecord_UnknownTransferAccount(t *testing.T) {
	uc, _, _ := newMovementUseCase()

	_, err := uc.Record(context.Background(), "org-1", usecase.RecordMovementInput{
		Type:              domain.MovementIncome,
		Amount:            500,
		Method:            domain.MethodTransfer,
		TransferAccountID: strptr("acc-missing"),
	})
	assert.True(t, domain.IsValidation(err))
}

func TestMovementRecord_CrossTenantAccountRejected(t *testing.T) {
	uc, _, accountRepo := newMovementUseCase()
	seedAccount(t, accountRepo, "org-2", "acc-1", "Transfer. Andrés", true)

	_, err := uc.Record(context.Background(), "org-1", usecase.RecordMovementInput{
		Type:              domain.MovementIncome,
		Amount:            500,
		Method:            domain.MethodTransfer,
		TransferAccountID: strptr("acc-1"),
	})
	assert.True(t, domain.IsValidation(err), "another tenant's account must read as unknown")
}

func TestMovementRecord_InactiveAccountAccepted(t *testing.T) {
	uc, _, accountRepo := newMovementUseCase()
	seedAccount(t, accountRepo, "org-1", "acc-1", "Transfer. Leonardo", false)

	movement, err := uc.Record(context.Background(), "org-1", usecase.RecordMovementInput{
		Type:              domain.MovementIncome,
		Amount:            500,
		Method:            domain.MethodTransfer,
		TransferAccountID: strptr("acc-1"),
	})
	require.NoError(t, err)
	assert.Equal(t, "acc-1", *movement.TransferAccountID)
}

func TestMovementUpdate_SwitchToCashClearsAccount(t *testing.T) {
	uc, _, accountRepo := newMovementUseCase()
	seedAccount(t, accountRepo, "org-1", "acc-1", "Transfer. Andrés", true)

	created, err := uc.Record(context.Background(), "org-1", usecase.RecordMovementInput{
		Type:              domain.MovementIncome,
		Amount:            500,
		Method:            domain.MethodTransfer,
		TransferAccountID: strptr("acc-1"),
	})
	require.NoError(t, err)

	method := domain.MethodCash
	updated, err := uc.Update(context.Background(), "org-1", created.ID, usecase.UpdateMovementInput{
		Method: &method,
	})
	require.NoError(t, err)
	assert.Nil(t, updated.TransferAccountID)
}

func TestMovementUpdate_SwitchToTransferNeedsAccount(t *testing.T) {
	uc, _, _ := newMovementUseCase()

	created, err := uc.Record(context.Background(), "org-1", usecase.RecordMovementInput{
		Type:   domain.MovementIncome,
		Amount: 500,
		Method: domain.MethodCash,
	})
	require.NoError(t, err)

	method := domain.MethodTransfer
	_, err = uc.Update(context.Background(), "org-1", created.ID, usecase.UpdateMovementInput{
		Method: &method,
	})
	assert.True(t, domain.IsValidation(err))
}

func TestMovementDelete_AlwaysAllowed(t *testing.T) {
	uc, _, _ := newMovementUseCase()

	created, err := uc.Record(context.Background(), "org-1", usecase.RecordMovementInput{
		Type:   domain.MovementExpense,
		Amount: 200,
		Method: domain.MethodCash,
	})
	require.NoError(t, err)

	require.NoError(t, uc.Delete(context.Background(), "org-1", created.ID))

	_, err = uc.Get(context.Background(), "org-1", created.ID)
	assert.True(t, domain.IsNotFound(err))
}

func TestMovementGet_CrossTenant(t *testing.T) {
	uc, _, _ := newMovementUseCase()

	created, err := uc.Record(context.Background(), "org-1", usecase.RecordMovementInput{
		Type:   domain.MovementIncome,
		Amount: 100,
		Method: domain.MethodCash,
	})
	require.NoError(t, err)

	_, err = uc.Get(context.Background(), "org-2", created.ID)
	assert.True(t, domain.IsNotFound(err))
}
