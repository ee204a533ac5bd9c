package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	postgresRepo "github.com/auradigitalchile/agendamiento-fletes/internal/adapter/repository/postgres"
	"github.com/auradigitalchile/agendamiento-fletes/internal/infrastructure/config"
	"github.com/auradigitalchile/agendamiento-fletes/internal/infrastructure/logger"
	"github.com/auradigitalchile/agendamiento-fletes/internal/infrastructure/postgres"
	"github.com/auradigitalchile/agendamiento-fletes/internal/usecase"
)

func main() {
	_ = godotenv.Load()

	rootCmd := &cobra.Command{
		Use:   "fletes-cli",
		Short: "Fletes admin CLI",
		Long:  `Administrative commands for the fletes service: schema migrations and the legacy transfer reconciliation.`,
	}

	rootCmd.AddCommand(migrateCmd(), reconcileCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func migrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage the database schema",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "up",
			Short: "Apply pending migrations",
			RunE: func(cmd *cobra.Command, args []string) error {
				cfg, err := config.Load()
				if err != nil {
					return err
				}
				return postgres.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath)
			},
		},
		&cobra.Command{
			Use:   "down",
			Short: "Roll back the last migration",
			RunE: func(cmd *cobra.Command, args []string) error {
				cfg, err := config.Load()
				if err != nil {
					return err
				}
				return postgres.RunMigrationsDown(cfg.DatabaseURL, cfg.MigrationsPath)
			},
		},
	)

	return cmd
}

func reconcileCmd() *cobra.Command {
	var orgID string

	cmd := &cobra.Command{
		Use:   "reconcile",
		Short: "Migrate legacy two-bucket transfer data to named accounts",
		Long: `Creates the default transfer accounts where missing, retags movements still
carrying retired method labels and backfills per-account totals on old daily
closes. The run is idempotent; rerunning after a partial failure is safe.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			appLogger := logger.New(logger.Config{
				Level:  cfg.LogLevel,
				Format: cfg.LogFormat,
			})

			ctx := context.Background()
			pool, err := postgres.NewPool(ctx, cfg.DatabaseURL, cfg.DatabaseMaxConns, cfg.DatabaseMinConns)
			if err != nil {
				return err
			}
			defer pool.Close()

			reconcileUC := usecase.NewReconcileUseCase(
				postgresRepo.NewOrganizationRepository(pool),
				postgresRepo.NewTransferAccountRepository(pool),
				postgresRepo.NewMovementRepository(pool),
				postgresRepo.NewDailyCloseRepository(pool),
				postgresRepo.NewULIDGenerator(),
				usecase.SystemClock{},
				appLogger,
			)

			var results []*usecase.OrgResult
			if orgID != "" {
				result, err := reconcileUC.RunOrganization(ctx, orgID)
				if err != nil {
					return err
				}
				results = append(results, result)
			} else {
				results, err = reconcileUC.RunAll(ctx)
				if err != nil {
					return err
				}
			}

			for _, r := range results {
				fmt.Printf("org %s: retagged %d movements, backfilled %d closes\n",
					r.OrganizationID, r.MovementsRetagged, r.ClosesBackfilled)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&orgID, "org", "", "Reconcile a single organization by id")

	return cmd
}
