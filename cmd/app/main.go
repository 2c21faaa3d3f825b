package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"
	"uploads/base"
	"uploads/services/youtube"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "uploads <channel_handle>",
		Short:         "Save the watch URLs of every video a channel has uploaded",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			err := run(cmd, args[0])
			if err != nil {
				log.Error().Err(err).Str("handle", args[0]).Msg("Error occurred")
			}
			return err
		},
	}

	cmd.Flags().StringP("out", "o", ".", "directory for <channel_handle>.json")
	cmd.Flags().Duration("timeout", 30*time.Second, "timeout per outbound request")
	cmd.Flags().Int("max-pages", youtube.DefaultMaxPages, "abort after this many playlist pages")
	cmd.Flags().String("resolver", base.ResolverScrape, "how to find the channel id: scrape or api")

	return cmd
}

func run(cmd *cobra.Command, handle string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	b, err := base.LoadBase()
	if err != nil {
		return err
	}
	defer b.Kill()

	if err := applyFlags(cmd, b.Config); err != nil {
		return err
	}

	result, err := youtube.RunTasks(ctx, b, handle)
	if err != nil {
		return err
	}

	log.Info().
		Str("handle", result.Handle).
		Str("channel_id", result.ChannelID).
		Int("count", result.Document.Count).
		Dur("total_time", result.Elapsed).
		Msg("Completed")
	return nil
}

// applyFlags copies explicitly set flags over the loaded config.
func applyFlags(cmd *cobra.Command, config *base.Config) error {
	flags := cmd.Flags()
	if flags.Changed("out") {
		config.OutputDir, _ = flags.GetString("out")
	}
	if flags.Changed("timeout") {
		config.RequestTimeout, _ = flags.GetDuration("timeout")
	}
	if flags.Changed("max-pages") {
		config.MaxPages, _ = flags.GetInt("max-pages")
	}
	if flags.Changed("resolver") {
		resolver, _ := flags.GetString("resolver")
		if resolver != base.ResolverScrape && resolver != base.ResolverAPI {
			return &base.ConfigurationError{Fields: []string{"resolver"}}
		}
		config.Resolver = resolver
	}
	return nil
}
