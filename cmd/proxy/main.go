package main

import (
	"context"
	"net/url"
	"os"
	"strings"
	"time"
	"uploads/services/youtube"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

func main() {
	var (
		in      string
		out     string
		handle  string
		timeout time.Duration
	)

	cmd := &cobra.Command{
		Use:          "proxy",
		Short:        "Keep only the proxies that can fetch a channel page",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return filterProxies(cmd.Context(), in, out, handle, timeout)
		},
	}
	cmd.Flags().StringVar(&in, "in", "cmd/proxy/files/raw_proxies.txt", "raw proxy list")
	cmd.Flags().StringVar(&out, "out", "cmd/proxy/files/filtered_proxies.txt", "where to write working proxies")
	cmd.Flags().StringVar(&handle, "handle", "YouTube", "channel handle requested through each proxy")
	cmd.Flags().DurationVar(&timeout, "timeout", 15*time.Second, "timeout per proxy check")

	if err := cmd.ExecuteContext(context.Background()); err != nil {
		log.Error().Err(err).Msg("Proxy check failed")
		os.Exit(1)
	}
}

func filterProxies(ctx context.Context, in, out, handle string, timeout time.Duration) error {
	rawProxies, err := youtube.GetProxyList(in)
	if err != nil {
		return err
	}

	pageURL := youtube.ChannelPageURL(youtube.DefaultSiteURL, handle)
	filteredProxies := []string{}
	for _, proxy := range rawProxies {
		proxyURL, err := url.Parse(proxy)
		if err != nil {
			log.Warn().Err(err).Str("proxy", proxy).Msg("Skipping unparsable proxy")
			continue
		}

		client := youtube.NewSingleProxyClient(proxyURL, timeout)
		page, err := youtube.RequestChannelPage(ctx, client, pageURL)
		if err != nil {
			log.Info().Str("proxy", proxy).Msg("FAIL")
			continue
		}
		if _, ok := youtube.ExtractChannelID(page); !ok {
			log.Info().Str("proxy", proxy).Msg("NO CHANNEL ID")
			continue
		}
		log.Info().Str("proxy", proxy).Msg("Success")
		filteredProxies = append(filteredProxies, proxy)
	}

	return os.WriteFile(out, []byte(strings.Join(filteredProxies, "\n")), 0644)
}
