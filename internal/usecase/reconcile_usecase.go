package usecase

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/auradigitalchile/agendamiento-fletes/internal/domain"
)

// Retired payment-method labels from the two-bucket schema. These constants
// exist only for the reconciler; no current code path writes them.
const (
	legacyMethodAndres  = "TRANSFERENCIA_ANDRES"
	legacyMethodHermano = "TRANSFERENCIA_HERMANO"

	defaultAccountAndres   = "Transfer. Andrés"
	defaultAccountLeonardo = "Transfer. Leonardo"
)

// ReconcileUseCase migrates historical data from the retired two-bucket
// transfer model to named, organization-scoped transfer accounts. Every step
// is gated so the run is idempotent and safe to interrupt and rerun:
// account creation checks by name, movement retagging only touches rows with
// transfer_account_id IS NULL, and close backfill only fills
// transfer_totals IS NULL.
type ReconcileUseCase struct {
	orgRepo      OrganizationRepository
	accountRepo  TransferAccountRepository
	movementRepo MovementRepository
	closeRepo    DailyCloseRepository
	idGen        IDGenerator
	clock        Clock
	logger       zerolog.Logger
}

// NewReconcileUseCase creates a new ReconcileUseCase.
func NewReconcileUseCase(
	orgRepo OrganizationRepository,
	accountRepo TransferAccountRepository,
	movementRepo MovementRepository,
	closeRepo DailyCloseRepository,
	idGen IDGenerator,
	clock Clock,
	logger zerolog.Logger,
) *ReconcileUseCase {
	return &ReconcileUseCase{
		orgRepo:      orgRepo,
		accountRepo:  accountRepo,
		movementRepo: movementRepo,
		closeRepo:    closeRepo,
		idGen:        idGen,
		clock:        clock,
		logger:       logger,
	}
}

// OrgResult reports what a run changed for one organization.
type OrgResult struct {
	OrganizationID    string
	AndresAccountID   string
	LeonardoAccountID string
	MovementsRetagged int64
	ClosesBackfilled  int
}

// RunAll reconciles every organization. One organization's failure is logged
// and skipped; the run continues so a partial failure stays manually
// rerunnable.
func (uc *ReconcileUseCase) RunAll(ctx context.Context) ([]*OrgResult, error) {
	orgs, err := uc.orgRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	results := make([]*OrgResult, 0, len(orgs))
	for _, org := range orgs {
		result, err := uc.RunOrganization(ctx, org.ID)
		if err != nil {
			uc.logger.Error().Err(err).
				Str("organization_id", org.ID).
				Str("organization", org.Name).
				Msg("reconciliation failed, skipping organization")
			continue
		}
		uc.logger.Info().
			Str("organization_id", org.ID).
			Int64("movements_retagged", result.MovementsRetagged).
			Int("closes_backfilled", result.ClosesBackfilled).
			Msg("organization reconciled")
		results = append(results, result)
	}

	return results, nil
}

// RunOrganization reconciles a single organization.
func (uc *ReconcileUseCase) RunOrganization(ctx context.Context, orgID string) (*OrgResult, error) {
	andres, err := uc.ensureAccount(ctx, orgID, defaultAccountAndres)
	if err != nil {
		return nil, err
	}
	leonardo, err := uc.ensureAccount(ctx, orgID, defaultAccountLeonardo)
	if err != nil {
		return nil, err
	}

	result := &OrgResult{
		OrganizationID:    orgID,
		AndresAccountID:   andres.ID,
		LeonardoAccountID: leonardo.ID,
	}

	// Bucket 1 -> Andrés, bucket 2 -> Leonardo. The repository guards on
	// transfer_account_id IS NULL, so already-migrated rows are untouched.
	n, err := uc.movementRepo.RetagLegacy(ctx, orgID, legacyMethodAndres, andres.ID)
	if err != nil {
		return nil, err
	}
	result.MovementsRetagged += n

	n, err = uc.movementRepo.RetagLegacy(ctx, orgID, legacyMethodHermano, leonardo.ID)
	if err != nil {
		return nil, err
	}
	result.MovementsRetagged += n

	// Backfill the totals map on closes still carrying the two legacy columns.
	pending, err := uc.closeRepo.ListLegacyPending(ctx, orgID)
	if err != nil {
		return nil, err
	}
	for _, close := range pending {
		totals := map[string]float64{
			andres.ID:   legacyAmount(close.LegacyTransferAndres),
			leonardo.ID: legacyAmount(close.LegacyTransferHermano),
		}
		if err := uc.closeRepo.SetTransferTotals(ctx, close.ID, totals); err != nil {
			return nil, err
		}
		result.ClosesBackfilled++
	}

	return result, nil
}

// ensureAccount finds the named account or creates it. Lookup by name first
// guarantees reruns never create duplicates.
func (uc *ReconcileUseCase) ensureAccount(ctx context.Context, orgID, name string) (*domain.TransferAccount, error) {
	account, err := uc.accountRepo.GetByName(ctx, orgID, name)
	if err != nil {
		return nil, err
	}
	if account != nil {
		return account, nil
	}

	now := uc.clock.Now().UTC()
	account = &domain.TransferAccount{
		ID:             uc.idGen.Generate(),
		OrganizationID: orgID,
		Name:           name,
		IsActive:       true,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := uc.accountRepo.Create(ctx, account); err != nil {
		return nil, err
	}
	return account, nil
}

func legacyAmount(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}
