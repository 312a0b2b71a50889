package main

// Run database migrations:
//   go run ./cmd/migrate up
//   go run ./cmd/migrate down
//   go run ./cmd/migrate version

import (
	"context"
	"database/sql"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"resumecraft/internal/shared/config"
	"resumecraft/internal/shared/storage/db"
	"resumecraft/internal/shared/telemetry"
)

var rootCmd = &cobra.Command{
	Use:           "migrate",
	Short:         "Apply or inspect the resumes database schema",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.AddCommand(
		&cobra.Command{
			Use:   "up",
			Short: "Apply all pending migrations",
			RunE: withDB(func(ctx context.Context, sqlDB *sql.DB) error {
				if err := db.RunMigrations(ctx, sqlDB); err != nil {
					return err
				}
				return printVersion(ctx, sqlDB)
			}),
		},
		&cobra.Command{
			Use:   "down",
			Short: "Roll back the most recent migration",
			RunE: withDB(func(ctx context.Context, sqlDB *sql.DB) error {
				if err := db.RollbackMigration(ctx, sqlDB); err != nil {
					return err
				}
				return printVersion(ctx, sqlDB)
			}),
		},
		&cobra.Command{
			Use:   "version",
			Short: "Print the current schema version",
			RunE:  withDB(printVersion),
		},
	)
}

func withDB(fn func(context.Context, *sql.DB) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, _ []string) error {
		cfg := config.Load()
		telemetry.Configure(os.Stderr, cfg.LogLevel)
		ctx := cmd.Context()

		sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, db.OptionsFromEnv(db.DefaultMigrateOptions()))
		if err != nil {
			return fmt.Errorf("connect database: %w", err)
		}
		defer sqlDB.Close()
		return fn(ctx, sqlDB)
	}
}

func printVersion(ctx context.Context, sqlDB *sql.DB) error {
	version, err := db.MigrationVersion(ctx, sqlDB)
	if err != nil {
		return err
	}
	fmt.Printf("schema version %d\n", version)
	return nil
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
