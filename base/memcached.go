package base

import (
	"errors"
	"time"

	"github.com/bradfitz/gomemcache/memcache"
)

func (b *Base) loadMemcached() {
	if b.Env.MEMCACHED_URL == "" {
		return
	}
	b.Cache = NewMemcachedCache([]string{b.Env.MEMCACHED_URL}, "channel_id", b.Config.CacheTTL)
}

// MemcachedCache remembers which channel id a handle resolved to, so repeated
// runs for the same channel can skip the page scrape.
type MemcachedCache struct {
	client *memcache.Client
	prefix string
	ttl    time.Duration
}

func NewMemcachedCache(servers []string, prefix string, ttl time.Duration) *MemcachedCache {
	client := memcache.New(servers...)
	return &MemcachedCache{client: client, prefix: prefix, ttl: ttl}
}

func (mc *MemcachedCache) key(handle string) string {
	return mc.prefix + ":" + handle
}

// Get returns the cached channel id for handle. A miss is not an error.
func (mc *MemcachedCache) Get(handle string) (string, bool, error) {
	item, err := mc.client.Get(mc.key(handle))
	if errors.Is(err, memcache.ErrCacheMiss) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	if len(item.Value) == 0 {
		return "", false, nil
	}
	return string(item.Value), true, nil
}

func (mc *MemcachedCache) Set(handle, channelID string) error {
	return mc.client.Set(&memcache.Item{
		Key:        mc.key(handle),
		Value:      []byte(channelID),
		Expiration: int32(mc.ttl / time.Second),
	})
}
