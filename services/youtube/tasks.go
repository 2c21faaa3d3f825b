package youtube

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"uploads/base"
	"uploads/models"

	"github.com/go-playground/validator/v10"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog/log"
	"google.golang.org/api/option"
)

// RunTasks collects every upload of handle, writes <handle>.json to the
// configured output directory and, when an archive database is configured,
// records the run there.
func RunTasks(ctx context.Context, b *base.Base, handle string) (*Run, error) {
	if err := ValidateHandle(handle); err != nil {
		return nil, err
	}

	collector, err := NewCollectorFromBase(ctx, b)
	if err != nil {
		return nil, err
	}

	log.Info().Str("handle", handle).Msg("Getting channel id")
	run, err := collector.Collect(ctx, handle)
	if err != nil {
		return nil, err
	}

	log.Info().Str("handle", handle).Int("count", run.Document.Count).Msg("Saving links")
	path, err := SaveDocument(b.Config.OutputDir, handle, run.Document)
	if err != nil {
		return nil, err
	}
	log.Info().Str("path", path).Msg("Saved document")

	if b.DB != nil {
		if err := archiveRun(ctx, b.DB.Queries, run); err != nil {
			return nil, err
		}
	}

	return run, nil
}

// ValidateHandle rejects handles that cannot double as a file name.
func ValidateHandle(handle string) error {
	validate := validator.New()
	if err := validate.Var(handle, `required,excludesall=/\?#`); err != nil {
		return &base.ConfigurationError{Fields: []string{"handle"}}
	}
	return nil
}

// NewCollectorFromBase wires the API client, the resolver selected by the
// config, and the optional cache.
func NewCollectorFromBase(ctx context.Context, b *base.Base) (*Collector, error) {
	api, err := NewAPIClient(ctx, b.Config.RequestTimeout, option.WithAPIKey(b.Env.YOUTUBE_API_KEY))
	if err != nil {
		return nil, fmt.Errorf("failed to create YouTube service: %w", err)
	}

	var resolver ChannelResolver
	switch b.Config.Resolver {
	case base.ResolverAPI:
		resolver = NewAPIResolver(api)
	default:
		client, err := scrapeClient(b)
		if err != nil {
			return nil, err
		}
		r := NewResolver(client, b.Config.RequestTimeout)
		if b.Config.SiteURL != "" {
			r = r.WithSiteURL(b.Config.SiteURL)
		}
		resolver = r
	}

	collector := NewCollector(resolver, NewFetcher(api, b.Config.MaxPages))
	if b.Cache != nil {
		collector = collector.WithCache(b.Cache)
	}
	return collector, nil
}

func scrapeClient(b *base.Base) (*http.Client, error) {
	if b.Env.PROXY_LIST_PATH == "" {
		return &http.Client{}, nil
	}
	proxies, err := GetProxyList(b.Env.PROXY_LIST_PATH)
	if err != nil {
		return nil, err
	}
	log.Debug().Int("proxies", len(proxies)).Msg("Scraping through proxies")
	return NewProxyClient(proxies, b.Config.RequestTimeout), nil
}

// RunArchive is the part of models.Queries used to record runs.
type RunArchive interface {
	GetLatestRunByHandle(ctx context.Context, handle string) (models.Run, error)
	CreateRun(ctx context.Context, arg models.CreateRunParams) (models.Run, error)
}

func archiveRun(ctx context.Context, archive RunArchive, run *Run) error {
	previous, err := archive.GetLatestRunByHandle(ctx, run.Handle)
	switch {
	case err == nil:
		log.Info().
			Str("handle", run.Handle).
			Int32("previous_count", previous.VideoCount).
			Int("count", run.Document.Count).
			Msg("Compared with previous run")
	case !errors.Is(err, pgx.ErrNoRows):
		return fmt.Errorf("reading previous run: %w", err)
	}

	created, err := archive.CreateRun(ctx, models.CreateRunParams{
		Handle:     run.Handle,
		ChannelID:  run.ChannelID,
		VideoCount: int32(run.Document.Count),
		Links:      run.Document.Links,
	})
	if err != nil {
		return fmt.Errorf("archiving run: %w", err)
	}
	log.Info().Int64("run_id", created.ID).Msg("Archived run")
	return nil
}
