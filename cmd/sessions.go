package cmd

import (
	"fmt"
	"os"
	"time"

	authPostgres "github.com/lawateaditya/Stock-Management/internal/auth/postgres"
	"github.com/lawateaditya/Stock-Management/pkg/logger"

	"github.com/spf13/cobra"
	gormPostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var sessionsCmd = &cobra.Command{
	Use:   "sessions",
	Short: "Session store maintenance",
	Long:  `Maintenance commands for the server-side session store.`,
}

var purgeSessionsCmd = &cobra.Command{
	Use:   "purge",
	Short: "Delete expired sessions",
	Long:  `Delete sessions whose expiry has passed. Run periodically from cron; expired rows are never served, this only reclaims space.`,
	Run: func(cmd *cobra.Command, args []string) {
		purgeExpiredSessions()
	},
}

var purgeGracePeriod time.Duration

func purgeExpiredSessions() {
	cfg, err := loadConfig(".")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger.Init(cfg.Observability.Logging.Level, cfg.Observability.Logging.Format)
	log := logger.LoggerWrapper()

	db, err := initDB(cfg.Database)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to init db: %v\n", err)
		os.Exit(1)
	}
	defer db.Close()

	gormDB, err := gorm.Open(gormPostgres.New(gormPostgres.Config{Conn: db.DB}), &gorm.Config{
		TranslateError: true,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to init orm: %v\n", err)
		os.Exit(1)
	}

	repo := authPostgres.NewRepository(gormDB)

	cutoff := time.Now().Add(-purgeGracePeriod)
	deleted, err := repo.DeleteExpiredSessions(cutoff)
	if err != nil {
		log.Error("failed to purge expired sessions", "error", err)
		os.Exit(1)
	}

	log.Info("purged expired sessions", "count", deleted, "cutoff", cutoff.Format(time.RFC3339))
}

func init() {
	purgeSessionsCmd.Flags().DurationVar(&purgeGracePeriod, "grace", 0, "keep sessions that expired within this duration")
	sessionsCmd.AddCommand(purgeSessionsCmd)
}
