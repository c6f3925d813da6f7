package cmd

import (
	"fmt"

	"github.com/Tanmay7310/Mental-Health-Wellbeing/config"
	"github.com/spf13/cobra"
)

// NewSecretCommand prints a fresh jwt.secret. It doesn't read any config.
func NewSecretCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "secret",
		Short: "Generate a random JWT signing secret",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), config.GenSecret())
			return nil
		},
	}
}
