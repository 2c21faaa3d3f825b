package youtube

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
)

// ChannelIDCache stores earlier handle resolutions.
type ChannelIDCache interface {
	Get(handle string) (string, bool, error)
	Set(handle, channelID string) error
}

// Run carries the values each stage hands to the next. A stage only ever
// fills in its own field.
type Run struct {
	Handle    string
	ChannelID string
	Document  *Document
	Elapsed   time.Duration
}

// Collector chains resolution, pagination and materialization for one handle.
type Collector struct {
	resolver ChannelResolver
	fetcher  *Fetcher
	cache    ChannelIDCache
}

func NewCollector(resolver ChannelResolver, fetcher *Fetcher) *Collector {
	return &Collector{resolver: resolver, fetcher: fetcher}
}

// WithCache enables the channel id cache; nil disables it.
func (c *Collector) WithCache(cache ChannelIDCache) *Collector {
	c.cache = cache
	return c
}

// Collect runs the stages in order and stops at the first failure.
func (c *Collector) Collect(ctx context.Context, handle string) (*Run, error) {
	start := time.Now()
	run := Run{Handle: handle}

	channelID, err := c.resolve(ctx, handle)
	if err != nil {
		return nil, err
	}
	run.ChannelID = channelID

	items, err := c.fetcher.FetchAllUploads(ctx, run.ChannelID)
	if err != nil {
		return nil, err
	}

	doc, err := Materialize(items)
	if err != nil {
		return nil, err
	}
	run.Document = doc
	run.Elapsed = time.Since(start)

	return &run, nil
}

func (c *Collector) resolve(ctx context.Context, handle string) (string, error) {
	if c.cache != nil {
		channelID, ok, err := c.cache.Get(handle)
		if err != nil {
			log.Warn().Err(err).Str("handle", handle).Msg("Channel id cache lookup failed")
		} else if ok {
			log.Info().Str("handle", handle).Str("channel_id", channelID).Msg("Channel id from cache")
			return channelID, nil
		}
	}

	channelID, err := c.resolver.Resolve(ctx, handle)
	if err != nil {
		return "", err
	}

	if c.cache != nil {
		if err := c.cache.Set(handle, channelID); err != nil {
			log.Warn().Err(err).Str("handle", handle).Msg("Channel id cache store failed")
		}
	}
	return channelID, nil
}
