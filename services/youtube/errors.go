package youtube

import (
	"errors"
	"fmt"

	"google.golang.org/api/googleapi"
)

// Stage names the outbound call that failed.
type Stage string

const (
	StageScrape        Stage = "scrape"
	StageChannel       Stage = "channel"
	StagePlaylistItems Stage = "playlist_items"
)

// FetchError is a failed or non-2xx outbound call. StatusCode is zero when the
// request never produced a response. Page is only meaningful for
// StagePlaylistItems.
type FetchError struct {
	Stage      Stage
	URL        string
	Page       int
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	msg := fmt.Sprintf("youtube: %s request failed", e.Stage)
	if e.Stage == StagePlaylistItems {
		msg += fmt.Sprintf(" at page %d", e.Page)
	}
	if e.StatusCode != 0 {
		msg += fmt.Sprintf(" with status %d", e.StatusCode)
	}
	if e.URL != "" {
		msg += " (" + e.URL + ")"
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *FetchError) Unwrap() error { return e.Err }

func newAPIError(stage Stage, page int, err error) *FetchError {
	fe := &FetchError{Stage: stage, Page: page, Err: err}
	var gerr *googleapi.Error
	if errors.As(err, &gerr) {
		fe.StatusCode = gerr.Code
	}
	return fe
}

// IdentifierNotFoundError means the channel page held no channel id marker.
type IdentifierNotFoundError struct {
	Handle string
	URL    string
}

func (e *IdentifierNotFoundError) Error() string {
	return fmt.Sprintf("youtube: channel id not found for handle %q (%s)", e.Handle, e.URL)
}

type ChannelNotFoundError struct {
	ChannelID string
	Reason    string
}

func (e *ChannelNotFoundError) Error() string {
	return fmt.Sprintf("youtube: channel %s not found: %s", e.ChannelID, e.Reason)
}

// MalformedItemError is a playlist item without snippet.resourceId.videoId.
type MalformedItemError struct {
	Index  int
	ItemID string
}

func (e *MalformedItemError) Error() string {
	return fmt.Sprintf("youtube: playlist item %d (%s) has no video id", e.Index, e.ItemID)
}

type PaginationInvariantError struct {
	PlaylistID string
	Pages      int
	Reason     string
}

func (e *PaginationInvariantError) Error() string {
	return fmt.Sprintf("youtube: pagination of %s stopped after %d pages: %s", e.PlaylistID, e.Pages, e.Reason)
}
