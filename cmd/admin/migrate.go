package main

import (
	"database/sql"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/fadedpez/bankroll/pkg/db/migrations"
	_ "github.com/mattn/go-sqlite3"
	"github.com/spf13/cobra"
)

func newMigrateCommand(flags *storeFlags) *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending SQLite migrations",
		Long: `Apply pending migrations to the SQLite database.

The migrations built into the binary are used unless --dir names a directory
of NNN_description.sql files.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var source fs.FS = migrations.Builtin()
			if dir != "" {
				source = os.DirFS(dir)
			}

			if err := os.MkdirAll(filepath.Dir(flags.dbPath), 0755); err != nil {
				return fmt.Errorf("error creating database directory: %w", err)
			}
			conn, err := sql.Open("sqlite3", flags.dbPath)
			if err != nil {
				return fmt.Errorf("error opening database: %w", err)
			}
			defer conn.Close()

			applied, err := migrations.NewMigrator(conn, source).MigrateUp()
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Applied %d migration(s) to %s\n", applied, flags.dbPath)
			return nil
		},
	}

	cmd.Flags().StringVar(&dir, "dir", "", "directory containing migrations (default: built-in)")
	return cmd
}

func newCreateMigrationCommand() *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:   "create-migration <description>",
		Short: "Create a new empty migration file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := migrations.CreateMigration(dir, args[0])
			if err != nil {
				return fmt.Errorf("error creating migration: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Created migration %s\n", path)
			return nil
		},
	}

	cmd.Flags().StringVar(&dir, "dir", filepath.Join("pkg", "db", "migrations", "sql"), "directory to store migrations")
	return cmd
}
