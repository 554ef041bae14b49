package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/yeisme/genovault/pkg/app"
	"github.com/yeisme/genovault/pkg/internal/model"
	"github.com/yeisme/genovault/pkg/internal/storage/db"
)

var (
	dbCmd = &cobra.Command{
		Use:   "db",
		Short: "catalog database commands",
	}

	dbTypesCmd = &cobra.Command{
		Use:     "types",
		Short:   "list the compiled-in database drivers",
		Aliases: []string{"ls"},
		Run: func(cmd *cobra.Command, _ []string) {
			for _, t := range db.GetRegisteredDBTypes() {
				fmt.Fprintln(cmd.OutOrStdout(), string(t))
			}
		},
	}

	dbStatsCmd = &cobra.Command{
		Use:   "stats",
		Short: "count rows per catalog table",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := app.Bootstrap(configPath)
			if err != nil {
				return err
			}

			client, err := db.New(cmd.Context(), &cfg.DB)
			if err != nil {
				return err
			}
			defer client.Close()

			tables := []struct {
				name  string
				model any
			}{
				{"studies", &model.Study{}},
				{"analyses", &model.Analysis{}},
				{"samples", &model.Sample{}},
				{"reference_sequences", &model.ReferenceSequence{}},
				{"taxonomies", &model.Taxonomy{}},
				{"files", &model.File{}},
				{"web_resources", &model.WebResource{}},
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "TABLE\tROWS")

			for _, t := range tables {
				var n int64
				if err := client.WithContext(cmd.Context()).Model(t.model).Count(&n).Error; err != nil {
					return fmt.Errorf("count %s: %w", t.name, err)
				}

				fmt.Fprintf(w, "%s\t%d\n", t.name, n)
			}

			return w.Flush()
		},
	}
)

func registerDBCommands() {
	dbCmd.AddCommand(dbTypesCmd, dbStatsCmd)
	rootCmd.AddCommand(dbCmd)
}
