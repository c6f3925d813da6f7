// Package cmd holds the command line entry points of the API server
package cmd

import (
	"fmt"

	"github.com/Tanmay7310/Mental-Health-Wellbeing/config"
	"github.com/Tanmay7310/Mental-Health-Wellbeing/db"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// NewRootCommand creates the root command. Running it without a subcommand
// starts the server.
func NewRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "mindtrap",
		Short:         "Mental health companion API",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd)
		},
	}

	cmd.PersistentFlags().AddFlagSet(config.Flags())

	cmd.AddCommand(NewServeCommand())
	cmd.AddCommand(NewMigrateCommand())
	cmd.AddCommand(NewSweepCommand())
	cmd.AddCommand(NewSecretCommand())

	return cmd
}

// load reads the configuration, sets up the global logger and opens the
// database. Every command except secret goes through here.
func load(cmd *cobra.Command) (*gorm.DB, error) {
	if err := config.Setup(cmd.Root().PersistentFlags()); err != nil {
		return nil, fmt.Errorf("invalid configuration, %w", err)
	}

	if err := config.SetupLogger(); err != nil {
		return nil, fmt.Errorf("failed to setup logger, %w", err)
	}

	conn, err := db.New()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database, %w", err)
	}

	zap.L().Debug("Database connection established")
	return conn, nil
}
