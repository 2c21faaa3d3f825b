package base

import (
	"github.com/rs/zerolog/log"
)

type Base struct {
	Env    *Env
	Config *Config
	DB     *DB
	Cache  *MemcachedCache
}

// LoadBase reads the environment and opens the optional backends. Only the
// API key is mandatory; the archive database and the channel id cache are
// enabled by their URLs being set.
func LoadBase() (*Base, error) {

	base := Base{}

	if err := base.loadEnv(); err != nil {
		return nil, err
	}
	setupLogger(base.Env.LOG_LEVEL)
	base.loadConfig()
	if err := base.loadDB(); err != nil {
		return nil, err
	}
	base.loadMemcached()

	return &base, nil
}

func (base *Base) Kill() {
	base.killDB()
	log.Debug().Msg("Base released")
}
