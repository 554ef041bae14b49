package cmd

import (
	"fmt"

	"github.com/bytedance/sonic"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/yeisme/genovault/pkg/app"
	mq "github.com/yeisme/genovault/pkg/internal/storage/mq"
	"github.com/yeisme/genovault/pkg/queue"
)

var (
	mqCmd = &cobra.Command{
		Use:     "mq",
		Short:   "catalog event bus commands",
		Aliases: []string{"messagequeue"},
	}

	mqTypesCmd = &cobra.Command{
		Use:     "types",
		Short:   "list the registered mq backends",
		Aliases: []string{"list", "ls"},
		Run: func(cmd *cobra.Command, _ []string) {
			for _, t := range mq.GetRegisteredMQTypes() {
				fmt.Fprintln(cmd.OutOrStdout(), string(t))
			}
		},
	}

	mqTopicsCmd = &cobra.Command{
		Use:   "topics",
		Short: "list the topics the catalog publishes",
		Run: func(cmd *cobra.Command, _ []string) {
			for _, t := range queue.AllTopics() {
				fmt.Fprintln(cmd.OutOrStdout(), t)
			}
		},
	}

	mqTailCmd = &cobra.Command{
		Use:   "tail [topic...]",
		Short: "print catalog events as JSON lines until interrupted",
		Example: "  genovault mq tail\n" +
			"  genovault mq tail gv.study.linked gv.study.released",
		RunE: runTail,
	}
)

func runTail(cmd *cobra.Command, args []string) error {
	cfg, err := app.Bootstrap(configPath)
	if err != nil {
		return err
	}

	topics := args
	if len(topics) == 0 {
		topics = queue.AllTopics()
	}

	client, err := mq.New(cmd.Context(), &cfg.MQ)
	if err != nil {
		return err
	}
	defer client.Close()

	out := make(chan []byte)
	g, ctx := errgroup.WithContext(cmd.Context())

	for _, topic := range topics {
		msgs, err := client.Subscribe(ctx, topic)
		if err != nil {
			return fmt.Errorf("subscribe %s: %w", topic, err)
		}

		g.Go(func() error {
			for m := range msgs {
				ev, err := queue.ParseWatermillMessage[map[string]any](m)
				if err != nil {
					m.Nack()
					continue
				}

				line, err := sonic.Marshal(ev)
				m.Ack()

				if err != nil {
					continue
				}

				select {
				case out <- line:
				case <-ctx.Done():
					return nil
				}
			}

			return nil
		})
	}

	go func() {
		_ = g.Wait()
		close(out)
	}()

	for line := range out {
		fmt.Fprintln(cmd.OutOrStdout(), string(line))
	}

	return nil
}

func registerMQCommands() {
	mqCmd.AddCommand(mqTypesCmd, mqTopicsCmd, mqTailCmd)
	rootCmd.AddCommand(mqCmd)
}
