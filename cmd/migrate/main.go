package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"

	_ "github.com/lib/pq"
	"github.com/spf13/cobra"

	"rentledger-backend/internal/config"
	"rentledger-backend/internal/domain"
	"rentledger-backend/internal/logger"
	"rentledger-backend/internal/repository/postgres"
	"rentledger-backend/internal/service"
)

var (
	configPath string
	ownerID    string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "migrate",
		Short: "Legacy ledger migration tool",
		Long:  "Converts rentals from the embedded ledger format to normalized child tables with cached aggregates.",
	}
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "config/config.dev.yaml", "Path to configuration file")
	rootCmd.PersistentFlags().StringVar(&ownerID, "owner", "", "Owner whose rentals to operate on")

	rootCmd.AddCommand(scanCmd(), runCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func setup() (*sql.DB, service.MigrationService, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)

	db, err := sql.Open("postgres", cfg.GetDatabaseConnectionString())
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("failed to ping database: %w", err)
	}

	store := postgres.NewStore(db)
	return db, service.NewMigrationService(store.MigrationRepository, store.RentalRepository), nil
}

func scanCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "scan",
		Short: "List rentals still on the legacy ledger format",
		RunE: func(cmd *cobra.Command, args []string) error {
			if ownerID == "" {
				return errors.New("--owner is required")
			}
			db, svc, err := setup()
			if err != nil {
				return err
			}
			defer db.Close()

			pending, err := svc.ListUnmigrated(context.Background(), ownerID)
			if err != nil {
				return err
			}
			if len(pending) == 0 {
				fmt.Println("No pending migrations.")
				return nil
			}
			fmt.Printf("%d rentals pending migration:\n", len(pending))
			for _, rt := range pending {
				fmt.Printf("  %s (data_version=%d, created %s)\n", rt.ID, rt.DataVersion, rt.CreatedOn.Format("2006-01-02"))
			}
			return nil
		},
	}
}

func runCmd() *cobra.Command {
	var rentalID string
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Migrate pending rentals to the normalized format",
		RunE: func(cmd *cobra.Command, args []string) error {
			if ownerID == "" {
				return errors.New("--owner is required")
			}
			db, svc, err := setup()
			if err != nil {
				return err
			}
			defer db.Close()

			ctx := context.Background()
			if rentalID != "" {
				if err := svc.MigrateRental(ctx, ownerID, rentalID); err != nil {
					return err
				}
				fmt.Printf("Migrated rental %s\n", rentalID)
				return nil
			}

			migrated, err := svc.MigrateAll(ctx, ownerID)
			for _, id := range migrated {
				fmt.Printf("Migrated rental %s\n", id)
			}
			if err != nil {
				var partial *domain.PartialMigrationError
				if errors.As(err, &partial) {
					return fmt.Errorf("stopped at rental %s after %d migrated: %w", partial.RentalID, len(partial.Migrated), partial.Err)
				}
				return err
			}
			fmt.Printf("Done. %d rentals migrated.\n", len(migrated))
			return nil
		},
	}
	cmd.Flags().StringVar(&rentalID, "rental", "", "Migrate only this rental")
	return cmd
}
