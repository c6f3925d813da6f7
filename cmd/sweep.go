package cmd

import (
	"fmt"
	"time"

	"github.com/Tanmay7310/Mental-Health-Wellbeing/internal/service"
	"github.com/spf13/cobra"
)

func NewSweepCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "sweep",
		Short: "Delete expired refresh tokens once",
		RunE: func(cmd *cobra.Command, args []string) error {
			conn, err := load(cmd)
			if err != nil {
				return err
			}

			if sqlDB, err := conn.DB(); err == nil {
				defer sqlDB.Close()
			}

			n, err := service.PurgeExpiredRefreshTokens(cmd.Context(), conn, time.Now())
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "removed %d expired refresh tokens\n", n)
			return nil
		},
	}
}
