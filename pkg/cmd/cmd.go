// Package cmd 定义 genovault 命令行：serve（默认）、migrate、ingest 以及 config/db/mq/kv 工具命令.
package cmd

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/yeisme/genovault/pkg/app"
)

var (
	configPath string
	debug      bool
	noMigrate  bool

	rootCmd = &cobra.Command{
		Use:           "genovault",
		Short:         "Metadata catalog for genomic study archives",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          runServe,
	}

	serveCmd = &cobra.Command{
		Use:   "serve",
		Short: "start the HTTP API and scheduled jobs",
		RunE:  runServe,
	}
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", ".", "config file or directory")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "print viper debug output where supported")
	rootCmd.PersistentFlags().BoolVar(&noMigrate, "no-migrate", false, "skip schema migration on startup")

	rootCmd.AddCommand(serveCmd)
	registerMigrateCommands()
	registerIngestCommands()
	registerConfigsCommands()
	registerDBCommands()
	registerMQCommands()
	registerKVCommands()
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a, err := app.NewApp(ctx, configPath, !noMigrate)
	if err != nil {
		return err
	}

	return a.Run(ctx)
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.ExecuteContext(context.Background())
}
