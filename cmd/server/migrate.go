package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"performer-directory-backend/internal/database"
	"performer-directory-backend/internal/logger"
)

func newMigrateCmd() *cobra.Command {
	var dbURL string

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending SQL migrations and exit",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if dbURL == "" {
				_ = godotenv.Load()
				dbURL = os.Getenv("DATABASE_URL")
			}
			if dbURL == "" {
				return fmt.Errorf("DATABASE_URL is required (or pass --database-url)")
			}

			log, err := logger.New(os.Getenv("ENVIRONMENT"))
			if err != nil {
				return fmt.Errorf("failed to build logger: %w", err)
			}
			defer log.Sync() //nolint:errcheck

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			db, err := database.Open(ctx, dbURL)
			if err != nil {
				return err
			}
			defer db.Close()

			return applyMigrations(ctx, db, log)
		},
	}

	cmd.Flags().StringVar(&dbURL, "database-url", "", "Postgres connection string (defaults to $DATABASE_URL)")
	return cmd
}

func applyMigrations(ctx context.Context, db *sql.DB, log *zap.Logger) error {
	applied, err := database.NewMigrator(db, log).Run(ctx)
	if err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}
	log.Info("migrations completed", zap.Int("applied", applied))
	return nil
}
