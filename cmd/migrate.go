package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/m04kA/SMC-BayBookingService/internal/config"
	"github.com/m04kA/SMC-BayBookingService/internal/infra/storage/migrations"
	"github.com/m04kA/SMC-BayBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-BayBookingService/pkg/logger"
)

func newMigrateCmd(configPath *string) *cobra.Command {
	var list bool

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			if list {
				names, err := migrations.Names()
				if err != nil {
					return err
				}
				for _, name := range names {
					fmt.Fprintln(cmd.OutOrStdout(), name)
				}
				return nil
			}

			cfg, err := config.Load(*configPath)
			if err != nil {
				return err
			}
			if cfg.Database.Driver != config.DriverPostgres {
				return fmt.Errorf("migrate: database.driver is %q, nothing to migrate", cfg.Database.Driver)
			}

			log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
			if err != nil {
				return err
			}
			defer log.Close()

			ctx := context.Background()
			db, err := openDB(ctx, cfg.Database)
			if err != nil {
				return err
			}
			defer db.Close()

			applied, err := migrations.Up(ctx, dbmetrics.Wrap(db, nil), log)
			if err != nil {
				return err
			}
			log.Info("Migrations done, applied %d", applied)
			return nil
		},
	}
	cmd.Flags().BoolVar(&list, "list", false, "print embedded migrations without connecting")

	return cmd
}
