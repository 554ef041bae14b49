package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yeisme/genovault/pkg/app"
	"github.com/yeisme/genovault/pkg/internal/jobs"
	"github.com/yeisme/genovault/pkg/internal/storage"
)

var (
	ingestDir      string
	ingestS3Prefix string

	ingestCmd = &cobra.Command{
		Use:   "ingest",
		Short: "import ENA analysis XML documents once",
		Example: "  genovault ingest --dir data/ena\n" +
			"  genovault ingest --s3-prefix ena/analyses/",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := app.Bootstrap(configPath)
			if err != nil {
				return err
			}

			// 命令行参数覆盖配置；S3 客户端只在 s3_prefix 非空时创建.
			if ingestDir != "" {
				cfg.Ingest.Dir, cfg.Ingest.S3Prefix = ingestDir, ""
			}

			if ingestS3Prefix != "" {
				cfg.Ingest.S3Prefix = ingestS3Prefix
			}

			mgr, err := storage.New(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer mgr.Close()

			if !noMigrate {
				if err := mgr.GetDBClient().Migrate(cmd.Context()); err != nil {
					return err
				}
			}

			in, src := jobs.NewIngest(mgr, app.Catalog(mgr, cfg), cfg.Ingest)

			rep, err := in.Run(cmd.Context(), src)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "batch %s from %s: %d imported, %d skipped, %d failed, %d files (%d attached)\n",
				rep.BatchID, rep.Source, rep.Documents, rep.Skipped, rep.Failed, rep.Files, rep.Attached)

			return nil
		},
	}
)

func registerIngestCommands() {
	ingestCmd.Flags().StringVar(&ingestDir, "dir", "", "local directory with *.xml documents")
	ingestCmd.Flags().StringVar(&ingestS3Prefix, "s3-prefix", "", "object storage prefix with *.xml documents")
	ingestCmd.MarkFlagsMutuallyExclusive("dir", "s3-prefix")

	rootCmd.AddCommand(ingestCmd)
}
