package main

import (
	"context"
	"fmt"
	"os"

	"github.com/jackc/pgx/v5"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

const schemaFilePath = "models/sql/schema.sql"

func pushSchema() error {
	ctx := context.Background()

	conn, err := loadDB(ctx)
	if err != nil {
		return err
	}
	defer conn.Close(ctx)

	schema, err := os.ReadFile(schemaFilePath)
	if err != nil {
		return err
	}
	tag, err := conn.Exec(ctx, string(schema))
	if err != nil {
		return fmt.Errorf("pushing schema: %w", err)
	}

	log.Info().Str("result", tag.String()).Msg("Schema pushed")
	return nil
}

func resetDB() error {
	ctx := context.Background()

	conn, err := loadDB(ctx)
	if err != nil {
		return err
	}
	defer conn.Close(ctx)

	if _, err := conn.Exec(ctx, "DROP TABLE IF EXISTS runs CASCADE;"); err != nil {
		return fmt.Errorf("dropping runs: %w", err)
	}

	log.Info().Msg("Run archive dropped")
	return nil
}

func loadDB(ctx context.Context) (*pgx.Conn, error) {
	if err := godotenv.Load(".env"); err != nil {
		log.Debug().Msg("Warning .env does not exist")
	}

	url := os.Getenv("DATABASE_URL")
	if url == "" {
		return nil, fmt.Errorf("DATABASE_URL is not set")
	}
	return pgx.Connect(ctx, url)
}
