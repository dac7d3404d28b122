package main

import (
	"context"

	"github.com/fadedpez/bankroll/pkg/storage"
	"github.com/spf13/cobra"
)

// storeFlags select the backend the record commands operate on
type storeFlags struct {
	storage       string
	dbPath        string
	redisAddr     string
	redisPassword string
	redisDB       int
}

func (f *storeFlags) open(ctx context.Context) (*storage.Stores, error) {
	return storage.Open(ctx, &storage.Options{
		Type:          f.storage,
		Path:          f.dbPath,
		RedisAddr:     f.redisAddr,
		RedisPassword: f.redisPassword,
		RedisDB:       f.redisDB,
	})
}

func newRootCommand() *cobra.Command {
	flags := &storeFlags{}
	defaults := storage.NewOptions()

	cmd := &cobra.Command{
		Use:           "bankroll-admin",
		Short:         "Administer bankroll currency data",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&flags.storage, "storage", defaults.Type, "storage backend: sqlite or redis")
	cmd.PersistentFlags().StringVar(&flags.dbPath, "db", defaults.Path, "path to the SQLite database")
	cmd.PersistentFlags().StringVar(&flags.redisAddr, "redis-addr", defaults.RedisAddr, "Redis address")
	cmd.PersistentFlags().StringVar(&flags.redisPassword, "redis-password", "", "Redis password")
	cmd.PersistentFlags().IntVar(&flags.redisDB, "redis-db", 0, "Redis database number")

	cmd.AddCommand(
		newMigrateCommand(flags),
		newCreateMigrationCommand(),
		newOptOutCommand(flags),
		newRecordCommand(flags),
	)

	return cmd
}
