package youtube

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

const DefaultSiteURL = "https://www.youtube.com"

var channelIDPattern = regexp.MustCompile(`channel_id=([^"]+)`)

// ChannelResolver turns a channel handle into a channel id.
type ChannelResolver interface {
	Resolve(ctx context.Context, handle string) (string, error)
}

// Resolver scrapes the channel's public page for the channel id marker.
type Resolver struct {
	client  *http.Client
	siteURL string
	timeout time.Duration
}

func NewResolver(client *http.Client, timeout time.Duration) *Resolver {
	if client == nil {
		client = &http.Client{}
	}
	return &Resolver{client: client, siteURL: DefaultSiteURL, timeout: timeout}
}

// WithSiteURL points the resolver at another host, e.g. a test server.
func (r *Resolver) WithSiteURL(siteURL string) *Resolver {
	r.siteURL = strings.TrimRight(siteURL, "/")
	return r
}

func (r *Resolver) Resolve(ctx context.Context, handle string) (string, error) {
	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	pageURL := ChannelPageURL(r.siteURL, handle)
	page, err := RequestChannelPage(ctx, r.client, pageURL)
	if err != nil {
		return "", err
	}

	channelID, ok := ExtractChannelID(page)
	if !ok {
		return "", &IdentifierNotFoundError{Handle: handle, URL: pageURL}
	}

	log.Info().Str("handle", handle).Str("channel_id", channelID).Msg("Resolved channel id")
	return channelID, nil
}

// ChannelPageURL builds https://<site>/@<handle>/. A handle given with its
// leading @ is not doubled and the handle stays inside the path.
func ChannelPageURL(siteURL, handle string) string {
	return fmt.Sprintf("%s/@%s/", siteURL, url.PathEscape(trimHandle(handle)))
}

// ExtractChannelID returns everything between the first "channel_id=" and the
// next double quote.
func ExtractChannelID(page string) (string, bool) {
	matches := channelIDPattern.FindStringSubmatch(page)
	if len(matches) < 2 {
		return "", false
	}
	return matches[1], true
}

// RequestChannelPage performs a single GET and returns the body. Any non-2xx
// status is a FetchError.
func RequestChannelPage(ctx context.Context, client *http.Client, pageURL string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create GET request: %w", err)
	}
	req.Header.Set("Accept-Language", "en")

	resp, err := client.Do(req)
	if err != nil {
		return "", &FetchError{Stage: StageScrape, URL: pageURL, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", &FetchError{Stage: StageScrape, URL: pageURL, StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &FetchError{Stage: StageScrape, URL: pageURL, StatusCode: resp.StatusCode, Err: err}
	}

	return string(body), nil
}

func trimHandle(handle string) string {
	return strings.TrimPrefix(handle, "@")
}
