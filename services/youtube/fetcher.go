package youtube

import (
	"context"
	"fmt"
	"iter"

	"github.com/rs/zerolog/log"
	ytapi "google.golang.org/api/youtube/v3"
)

// DefaultMaxPages bounds the pagination loop. At 50 items per page it allows
// a million uploads.
const DefaultMaxPages = 20000

// Fetcher walks a channel's uploads playlist page by page.
type Fetcher struct {
	api      DataAPI
	maxPages int
}

func NewFetcher(api DataAPI, maxPages int) *Fetcher {
	if maxPages <= 0 {
		maxPages = DefaultMaxPages
	}
	return &Fetcher{api: api, maxPages: maxPages}
}

// UploadsPlaylistID looks up the playlist that holds every upload of the
// channel.
func (f *Fetcher) UploadsPlaylistID(ctx context.Context, channelID string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	channels, err := f.api.ListChannels(ctx, channelID)
	if err != nil {
		log.Error().Err(err).Str("channel_id", channelID).Msg("Failed to get channel from YouTube API")
		return "", newAPIError(StageChannel, 0, err)
	}
	if len(channels) == 0 {
		return "", &ChannelNotFoundError{ChannelID: channelID, Reason: "no channel record returned"}
	}

	details := channels[0].ContentDetails
	if details == nil || details.RelatedPlaylists == nil || details.RelatedPlaylists.Uploads == "" {
		return "", &ChannelNotFoundError{ChannelID: channelID, Reason: "channel has no uploads playlist"}
	}
	return details.RelatedPlaylists.Uploads, nil
}

// Pages yields the playlist's pages in order. The next request is only sent
// once the consumer has taken the current page. Iteration ends after the first
// page without a continuation token, or with a single error.
func (f *Fetcher) Pages(ctx context.Context, playlistID string) iter.Seq2[*ytapi.PlaylistItemListResponse, error] {
	return func(yield func(*ytapi.PlaylistItemListResponse, error) bool) {
		token := ""
		for page := 0; ; page++ {
			if page >= f.maxPages {
				yield(nil, &PaginationInvariantError{
					PlaylistID: playlistID,
					Pages:      page,
					Reason:     fmt.Sprintf("more than %d pages", f.maxPages),
				})
				return
			}
			if err := ctx.Err(); err != nil {
				yield(nil, fmt.Errorf("fetching page %d: %w", page, err))
				return
			}

			resp, err := f.api.ListPlaylistItems(ctx, playlistID, token)
			if err != nil {
				log.Error().Err(err).Str("playlist_id", playlistID).Int("page", page).Msg("Failed to get videos from playlist")
				yield(nil, newAPIError(StagePlaylistItems, page, err))
				return
			}
			if !yield(resp, nil) {
				return
			}

			if resp.NextPageToken == "" {
				return
			}
			if resp.NextPageToken == token {
				yield(nil, &PaginationInvariantError{
					PlaylistID: playlistID,
					Pages:      page + 1,
					Reason:     "continuation token repeated",
				})
				return
			}
			token = resp.NextPageToken
		}
	}
}

// FetchAllUploads returns every item of the channel's uploads playlist in the
// order the API delivered them. Nothing is returned unless all pages succeed.
func (f *Fetcher) FetchAllUploads(ctx context.Context, channelID string) ([]*ytapi.PlaylistItem, error) {
	playlistID, err := f.UploadsPlaylistID(ctx, channelID)
	if err != nil {
		return nil, err
	}
	log.Info().Str("channel_id", channelID).Str("playlist_id", playlistID).Msg("Fetching uploads")

	return f.FetchPlaylist(ctx, playlistID)
}

func (f *Fetcher) FetchPlaylist(ctx context.Context, playlistID string) ([]*ytapi.PlaylistItem, error) {
	items := make([]*ytapi.PlaylistItem, 0)
	pages := 0
	for resp, err := range f.Pages(ctx, playlistID) {
		if err != nil {
			return nil, err
		}
		items = append(items, resp.Items...)
		pages++
		log.Debug().
			Str("playlist_id", playlistID).
			Int("page", pages).
			Int("items", len(resp.Items)).
			Int("total", len(items)).
			Msg("Fetched uploads page")
	}

	log.Info().Str("playlist_id", playlistID).Int("pages", pages).Int("video_count", len(items)).Msg("Completed fetching")
	return items, nil
}
