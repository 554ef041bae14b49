package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yeisme/genovault/pkg/app"
	"github.com/yeisme/genovault/pkg/internal/storage"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "create or update the catalog schema",
	RunE: func(cmd *cobra.Command, _ []string) error {
		if _, err := app.Bootstrap(configPath); err != nil {
			return err
		}

		mgr, err := storage.Init(cmd.Context())
		if err != nil {
			return err
		}
		defer mgr.Close()

		if err := mgr.GetDBClient().Migrate(cmd.Context()); err != nil {
			return err
		}

		fmt.Fprintln(cmd.OutOrStdout(), "schema migrated")

		return nil
	},
}

func registerMigrateCommands() {
	rootCmd.AddCommand(migrateCmd)
}
