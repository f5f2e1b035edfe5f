package main

import (
	"context"
	"database/sql"
	"fmt"

	"team_status_bot/internal/app"
	"team_status_bot/internal/infra/config"
	idb "team_status_bot/internal/infra/database"
	"team_status_bot/internal/infra/logger"

	"github.com/jonboulle/clockwork"
	"github.com/spf13/cobra"
)

var (
	db            *sql.DB
	statusService *app.StatusService
	reminderRuns  *idb.PostgresReminderRepository
)

var rootCmd = &cobra.Command{
	Use:           "statusctl",
	Short:         "Administer the team status store",
	Long:          "statusctl applies migrations and inspects users and statuses in the team status database.",
	SilenceUsage:  true,
	SilenceErrors: false,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		logger.Init(cfg)

		db, err = idb.NewPostgresConnection(context.Background(), cfg.DatabaseURL, idb.CLIPool)
		if err != nil {
			return fmt.Errorf("connecting to database: %w", err)
		}
		statusService = app.NewStatusService(
			idb.NewPostgresUserRepository(db),
			idb.NewPostgresStatusRepository(db),
			clockwork.NewRealClock(),
			cfg.Location,
			logger.For("statusctl"),
		)
		reminderRuns = idb.NewPostgresReminderRepository(db)
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if db != nil {
			return db.Close()
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd, recentCmd, usersCmd, runsCmd)
}
