package cmd

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/yeisme/genovault/pkg/app"
	"github.com/yeisme/genovault/pkg/internal/ingest"
	kv "github.com/yeisme/genovault/pkg/internal/storage/kv"
)

var (
	kvCmd = &cobra.Command{
		Use:     "kv",
		Short:   "inspect the key-value store backing the ingest ledger",
		Aliases: []string{"keyvalue"},
	}

	kvTypesCmd = &cobra.Command{
		Use:     "types",
		Short:   "list the registered kv backends",
		Aliases: []string{"list", "ls"},
		Run: func(cmd *cobra.Command, _ []string) {
			for _, t := range kv.GetRegisteredKVTypes() {
				fmt.Fprintln(cmd.OutOrStdout(), string(t))
			}
		},
	}

	kvLedgerCmd = &cobra.Command{
		Use:   "ledger",
		Short: "show documents recorded by previous ingest runs",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withLedger(cmd, func(l *ingest.Ledger) error {
				entries, err := l.Entries(cmd.Context())
				if err != nil {
					return err
				}

				w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
				fmt.Fprintln(w, "DIGEST\tKEY\tBATCH\tFILES\tATTACHED\tAT")

				for _, e := range entries {
					fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\t%s\n",
						e.Digest, e.Key, e.BatchID, e.Files, e.Attached, e.At.Format(time.RFC3339))
				}

				return w.Flush()
			})
		},
	}

	kvForgetAll bool

	kvForgetCmd = &cobra.Command{
		Use:   "forget [digest...]",
		Short: "drop ledger entries so the next ingest run re-reads those documents",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !kvForgetAll && len(args) == 0 {
				return fmt.Errorf("pass at least one digest or --all")
			}

			return withLedger(cmd, func(l *ingest.Ledger) error {
				if kvForgetAll {
					return l.Reset(cmd.Context())
				}

				for _, d := range args {
					ok, err := l.Forget(cmd.Context(), d)
					if err != nil {
						return err
					}

					if !ok {
						fmt.Fprintf(cmd.ErrOrStderr(), "%s: not in ledger\n", d)
					}
				}

				return nil
			})
		},
	}
)

// withLedger 只打开 KV，不需要数据库.
func withLedger(cmd *cobra.Command, fn func(*ingest.Ledger) error) error {
	cfg, err := app.Bootstrap(configPath)
	if err != nil {
		return err
	}

	client, err := kv.NewKVClient(cmd.Context(), &cfg.KV)
	if err != nil {
		return err
	}
	defer client.Close()

	return fn(ingest.NewLedger(client))
}

func registerKVCommands() {
	kvForgetCmd.Flags().BoolVar(&kvForgetAll, "all", false, "clear the whole ledger")

	kvCmd.AddCommand(kvTypesCmd, kvLedgerCmd, kvForgetCmd)
	rootCmd.AddCommand(kvCmd)
}
