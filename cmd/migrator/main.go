package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/wp-content-migrator/internal/config"
	"github.com/wp-content-migrator/internal/database"
	"github.com/wp-content-migrator/internal/migration"
	"github.com/wp-content-migrator/internal/repository"
	"github.com/wp-content-migrator/internal/wordpress"
	"github.com/wp-content-migrator/pkg/logger"
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "migrator",
		Short:         "Migrates legacy newsroom content into WordPress",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	postsCmd := &cobra.Command{
		Use:   "posts",
		Short: "Migrate pending posts",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTable(cmd.Context(), func(ctx context.Context, runner *migration.Runner) (*migration.Summary, error) {
				return runner.RunPosts(ctx)
			})
		},
	}

	mediaCmd := &cobra.Command{
		Use:   "media",
		Short: "Migrate pending standalone images",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTable(cmd.Context(), func(ctx context.Context, runner *migration.Runner) (*migration.Summary, error) {
				return runner.RunMedia(ctx)
			})
		},
	}

	var migrationsPath string
	var down bool
	setupCmd := &cobra.Command{
		Use:   "setup",
		Short: "Build the migration source tables from the legacy schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			log := logger.New(cfg.Log.Level, cfg.Log.Format)
			db, err := database.New(&cfg.Database, log)
			if err != nil {
				return err
			}
			defer db.Close()

			if down {
				return db.MigrateDown(migrationsPath)
			}
			return db.RunMigrations(migrationsPath)
		},
	}
	setupCmd.Flags().StringVar(&migrationsPath, "migrations", "./migrations", "path to migration SQL files")
	setupCmd.Flags().BoolVar(&down, "down", false, "drop the migration source tables")

	rootCmd.AddCommand(postsCmd, mediaCmd, setupCmd)

	// An interrupted run leaves unmarked records pending; they are retried on
	// the next pass.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		log := logger.New("", "")
		log.Error().Err(err).Msg("Migration failed")
		os.Exit(1)
	}
}

func runTable(
	ctx context.Context,
	run func(context.Context, *migration.Runner) (*migration.Summary, error),
) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	log := logger.New(cfg.Log.Level, cfg.Log.Format)

	db, err := database.New(&cfg.Database, log)
	if err != nil {
		return err
	}
	defer db.Close()

	repos := repository.New(db)
	client := wordpress.NewClient(&cfg.WordPress, log)
	runner := migration.NewEngine(repos, client, cfg, log)

	_, err = run(ctx, runner)
	return err
}
