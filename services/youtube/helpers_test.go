package youtube

import (
	"context"
	"fmt"

	ytapi "google.golang.org/api/youtube/v3"
)

// fakeAPI serves a fixed set of pages keyed by the token that requests them.
type fakeAPI struct {
	channels   []*ytapi.Channel
	channelErr error
	pages      map[string]*ytapi.PlaylistItemListResponse
	pageErr    map[string]error

	channelCalls int
	tokens       []string
}

func (f *fakeAPI) ListChannels(ctx context.Context, channelID string) ([]*ytapi.Channel, error) {
	f.channelCalls++
	return f.channels, f.channelErr
}

func (f *fakeAPI) ListPlaylistItems(ctx context.Context, playlistID, pageToken string) (*ytapi.PlaylistItemListResponse, error) {
	f.tokens = append(f.tokens, pageToken)
	if err, ok := f.pageErr[pageToken]; ok {
		return nil, err
	}
	page, ok := f.pages[pageToken]
	if !ok {
		return nil, fmt.Errorf("unexpected token %q", pageToken)
	}
	return page, nil
}

func uploadsChannel(playlistID string) []*ytapi.Channel {
	return []*ytapi.Channel{{
		Id: "UCabc123",
		ContentDetails: &ytapi.ChannelContentDetails{
			RelatedPlaylists: &ytapi.ChannelContentDetailsRelatedPlaylists{Uploads: playlistID},
		},
	}}
}

func playlistItem(videoID string) *ytapi.PlaylistItem {
	return &ytapi.PlaylistItem{
		Id: "item-" + videoID,
		Snippet: &ytapi.PlaylistItemSnippet{
			ResourceId: &ytapi.ResourceId{Kind: "youtube#video", VideoId: videoID},
		},
	}
}

func playlistItems(prefix string, n int) []*ytapi.PlaylistItem {
	items := make([]*ytapi.PlaylistItem, n)
	for i := range items {
		items[i] = playlistItem(fmt.Sprintf("%s%d", prefix, i))
	}
	return items
}

// pagedFake splits n items into pages of 50 chained by tokens t1, t2, ...
func pagedFake(n int) *fakeAPI {
	f := &fakeAPI{channels: uploadsChannel("PL1"), pages: map[string]*ytapi.PlaylistItemListResponse{}}
	items := playlistItems("v", n)
	token := ""
	for page := 0; ; page++ {
		end := min((page+1)*MaxPageSize, n)
		resp := &ytapi.PlaylistItemListResponse{Items: items[page*MaxPageSize : end]}
		if end < n {
			resp.NextPageToken = fmt.Sprintf("t%d", page+1)
		}
		f.pages[token] = resp
		if resp.NextPageToken == "" {
			return f
		}
		token = resp.NextPageToken
	}
}
