package base

// Optional run archive in postgres

import (
	"context"
	"fmt"
	"uploads/models"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"
)

type DB struct {
	Queries *models.Queries
	Pool    *pgxpool.Pool
}

func (base *Base) loadDB() error {
	if base.Env.DATABASE_URL == "" {
		log.Debug().Msg("DATABASE_URL not set, run archive disabled")
		return nil
	}

	pool, err := pgxpool.New(context.Background(), base.Env.DATABASE_URL)
	if err != nil {
		return fmt.Errorf("opening archive database: %w", err)
	}

	base.DB = &DB{
		Queries: models.New(pool),
		Pool:    pool,
	}
	return nil
}

func (base *Base) killDB() {
	if base.DB == nil {
		return
	}
	base.DB.Pool.Close()
}
