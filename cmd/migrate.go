package cmd

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// NewMigrateCommand creates the schema and exits. db.New already migrates, so
// this only opens the database.
func NewMigrateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			conn, err := load(cmd)
			if err != nil {
				return err
			}

			if sqlDB, err := conn.DB(); err == nil {
				defer sqlDB.Close()
			}

			zap.L().Info("Database schema is up to date")
			return nil
		},
	}
}
