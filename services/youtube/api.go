package youtube

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
	"google.golang.org/api/option"
	ytapi "google.golang.org/api/youtube/v3"
)

// MaxPageSize is the largest page playlistItems.list will return.
const MaxPageSize = 50

// DataAPI is the subset of the YouTube Data API the collector needs.
type DataAPI interface {
	ListChannels(ctx context.Context, channelID string) ([]*ytapi.Channel, error)
	ListPlaylistItems(ctx context.Context, playlistID, pageToken string) (*ytapi.PlaylistItemListResponse, error)
}

// APIClient implements DataAPI on top of the generated YouTube v3 client.
type APIClient struct {
	service  *ytapi.Service
	pageSize int64
	timeout  time.Duration
}

// NewAPIClient creates the service. Callers pass the credential as an option,
// typically option.WithAPIKey.
func NewAPIClient(ctx context.Context, timeout time.Duration, opts ...option.ClientOption) (*APIClient, error) {
	service, err := ytapi.NewService(ctx, opts...)
	if err != nil {
		log.Error().Err(err).Msg("Failed to create YouTube service")
		return nil, err
	}
	return &APIClient{service: service, pageSize: MaxPageSize, timeout: timeout}, nil
}

func (c *APIClient) callContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if c.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, c.timeout)
}

func (c *APIClient) ListChannels(ctx context.Context, channelID string) ([]*ytapi.Channel, error) {
	ctx, cancel := c.callContext(ctx)
	defer cancel()

	response, err := c.service.Channels.
		List([]string{"contentDetails"}).
		Id(channelID).
		Context(ctx).
		Do()
	if err != nil {
		return nil, err
	}
	return response.Items, nil
}

func (c *APIClient) ListPlaylistItems(ctx context.Context, playlistID, pageToken string) (*ytapi.PlaylistItemListResponse, error) {
	ctx, cancel := c.callContext(ctx)
	defer cancel()

	call := c.service.PlaylistItems.
		List([]string{"snippet"}).
		PlaylistId(playlistID).
		MaxResults(c.pageSize).
		Context(ctx)

	if pageToken != "" {
		call = call.PageToken(pageToken)
	}

	return call.Do()
}

// LookupHandle asks the API for the channel owning handle. It returns an empty
// id when no channel matches.
func (c *APIClient) LookupHandle(ctx context.Context, handle string) (string, error) {
	ctx, cancel := c.callContext(ctx)
	defer cancel()

	response, err := c.service.Channels.
		List([]string{"id"}).
		ForHandle(handle).
		Context(ctx).
		Do()
	if err != nil {
		return "", err
	}
	if len(response.Items) == 0 {
		return "", nil
	}
	return response.Items[0].Id, nil
}

// APIResolver resolves handles through channels.list(forHandle) instead of
// scraping the channel page.
type APIResolver struct {
	client *APIClient
}

func NewAPIResolver(client *APIClient) *APIResolver {
	return &APIResolver{client: client}
}

func (r *APIResolver) Resolve(ctx context.Context, handle string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	forHandle := "@" + trimHandle(handle)
	channelID, err := r.client.LookupHandle(ctx, forHandle)
	if err != nil {
		return "", newAPIError(StageChannel, 0, err)
	}
	if channelID == "" {
		return "", &IdentifierNotFoundError{Handle: handle, URL: "channels.list?forHandle=" + forHandle}
	}

	log.Info().Str("handle", handle).Str("channel_id", channelID).Msg("Resolved channel id via API")
	return channelID, nil
}
