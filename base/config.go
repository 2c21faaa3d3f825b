package base

import "time"

type Config struct {
	MaxPages       int
	RequestTimeout time.Duration
	OutputDir      string
	Resolver       string
	CacheTTL       time.Duration
	SiteURL        string
}

const (
	ResolverScrape = "scrape"
	ResolverAPI    = "api"
)

func DefaultConfig() *Config {
	return &Config{
		MaxPages:       20000,
		RequestTimeout: 30 * time.Second,
		OutputDir:      ".",
		Resolver:       ResolverScrape,
		CacheTTL:       24 * time.Hour,
		SiteURL:        "https://www.youtube.com",
	}
}

func (b *Base) loadConfig() {
	config := DefaultConfig()
	if b.Env != nil && b.Env.RESOLVER != "" {
		config.Resolver = b.Env.RESOLVER
	}

	b.Config = config
}
