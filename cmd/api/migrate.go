package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fatflowers/hms-payment/internal/platform/db"
	"github.com/fatflowers/hms-payment/pkg/config"
)

func migrateCmd() *cobra.Command {
	var rollback bool
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply the database migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.New()
			if err != nil {
				return err
			}
			if err := db.RunMigrations(cmd.Context(), cfg.Database.DSN, rollback); err != nil {
				return err
			}
			if rollback {
				fmt.Println("rolled back latest migration")
			} else {
				fmt.Println("migrations applied")
			}
			return nil
		},
	}
	cmd.Flags().BoolVarP(&rollback, "rollback", "r", false, "Revert the latest applied migration")
	return cmd
}
