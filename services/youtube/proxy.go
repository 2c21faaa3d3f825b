package youtube

import (
	"fmt"
	"math/rand"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"
)

// GetProxyList reads one proxy URL per line, skipping blanks and # comments.
// Entries without a scheme are taken as http proxies.
func GetProxyList(path string) ([]string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading proxy list: %w", err)
	}

	var proxies []string
	for _, line := range strings.Split(string(b), "\n") {
		line = strings.TrimSpace(strings.ReplaceAll(line, "\r", ""))
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if !strings.Contains(line, "://") {
			line = "http://" + line
		}
		if _, err := url.Parse(line); err != nil {
			return nil, fmt.Errorf("invalid proxy %q: %w", line, err)
		}
		proxies = append(proxies, line)
	}
	return proxies, nil
}

// NewProxyClient returns a client that sends every request through a proxy
// picked at random from proxies. An empty list gives a direct client.
func NewProxyClient(proxies []string, timeout time.Duration) *http.Client {
	client := &http.Client{Timeout: timeout}
	if len(proxies) == 0 {
		return client
	}
	client.Transport = &http.Transport{
		Proxy: func(*http.Request) (*url.URL, error) {
			return getRandomProxyURL(proxies)
		},
	}
	return client
}

// NewSingleProxyClient pins the client to one proxy.
func NewSingleProxyClient(proxyURL *url.URL, timeout time.Duration) *http.Client {
	return &http.Client{
		Timeout:   timeout,
		Transport: &http.Transport{Proxy: http.ProxyURL(proxyURL)},
	}
}

func getRandomProxyURL(proxies []string) (*url.URL, error) {
	proxy := proxies[rand.Intn(len(proxies))]
	return url.Parse(proxy)
}
