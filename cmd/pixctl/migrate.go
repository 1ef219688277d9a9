package main

import (
	"fmt"

	"pix-credit-service/internal/adapter/storage/postgres"
	"pix-credit-service/pkg/logger"

	"github.com/spf13/cobra"
)

func migrateCmd(opts *globalOpts) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage the database schema",
	}

	var steps int
	down := &cobra.Command{
		Use:   "down",
		Short: "Roll back migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withMigrator(opts, func(m *postgres.Migrator) error {
				return m.Down(steps)
			})
		},
	}
	down.Flags().IntVarP(&steps, "steps", "n", 1, "number of migrations to roll back")

	cmd.AddCommand(
		&cobra.Command{
			Use:   "up",
			Short: "Apply all pending migrations",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return withMigrator(opts, (*postgres.Migrator).Up)
			},
		},
		down,
		&cobra.Command{
			Use:   "version",
			Short: "Print the applied schema version",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return withMigrator(opts, func(m *postgres.Migrator) error {
					v, dirty, err := m.Version()
					if err != nil {
						return err
					}
					return opts.print(cmd.OutOrStdout(), map[string]any{"version": v, "dirty": dirty}, []field{
						{"version", fmt.Sprint(v)},
						{"dirty", fmt.Sprint(dirty)},
					})
				})
			},
		},
	)

	return cmd
}

func withMigrator(opts *globalOpts, fn func(*postgres.Migrator) error) (err error) {
	cfg, err := opts.loadConfig()
	if err != nil {
		return err
	}
	log := logger.New(cfg.Log.Level, true)

	m, err := postgres.NewMigrator(cfg.Database.MigrateURL(), log)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := m.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()
	return fn(m)
}
