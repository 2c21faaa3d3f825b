package base

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

type Env struct {
	YOUTUBE_API_KEY string `validate:"required"`
	DATABASE_URL    string
	MEMCACHED_URL   string
	PROXY_LIST_PATH string `validate:"omitempty,file"`
	LOG_LEVEL       string `validate:"omitempty,oneof=trace debug info warn error"`
	RESOLVER        string `validate:"omitempty,oneof=scrape api"`
}

// ConfigurationError reports environment variables that are missing or
// invalid. It is returned before any network call is made.
type ConfigurationError struct {
	Fields []string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("configuration error: missing or invalid %s", strings.Join(e.Fields, ", "))
}

func (base *Base) loadEnv() error {

	if err := godotenv.Load(".env"); err != nil {
		log.Debug().Msg("Warning .env does not exist")
	}

	env, err := ReadEnv()
	if err != nil {
		return err
	}

	base.Env = env
	return nil
}

// ReadEnv builds an Env from the process environment and validates it.
func ReadEnv() (*Env, error) {
	env := Env{
		YOUTUBE_API_KEY: strings.TrimSpace(os.Getenv("YOUTUBE_API_KEY")),
		DATABASE_URL:    os.Getenv("DATABASE_URL"),
		MEMCACHED_URL:   os.Getenv("MEMCACHED_URL"),
		PROXY_LIST_PATH: os.Getenv("PROXY_LIST_PATH"),
		LOG_LEVEL:       os.Getenv("LOG_LEVEL"),
		RESOLVER:        os.Getenv("RESOLVER"),
	}

	validate := validator.New(validator.WithRequiredStructEnabled())
	if err := validate.Struct(env); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			cerr := &ConfigurationError{}
			for _, fe := range verrs {
				cerr.Fields = append(cerr.Fields, fe.Field())
			}
			return nil, cerr
		}
		return nil, fmt.Errorf("validating environment: %w", err)
	}

	return &env, nil
}
