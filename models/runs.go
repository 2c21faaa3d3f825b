package models

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
)

type Run struct {
	ID         int64
	Handle     string
	ChannelID  string
	VideoCount int32
	Links      []string
	CreatedAt  pgtype.Timestamptz
}

const createRun = `-- name: CreateRun :one
INSERT INTO runs (handle, channel_id, video_count, links)
VALUES ($1, $2, $3, $4)
RETURNING id, handle, channel_id, video_count, links, created_at
`

type CreateRunParams struct {
	Handle     string
	ChannelID  string
	VideoCount int32
	Links      []string
}

func (q *Queries) CreateRun(ctx context.Context, arg CreateRunParams) (Run, error) {
	row := q.db.QueryRow(ctx, createRun,
		arg.Handle,
		arg.ChannelID,
		arg.VideoCount,
		arg.Links,
	)
	var i Run
	err := row.Scan(
		&i.ID,
		&i.Handle,
		&i.ChannelID,
		&i.VideoCount,
		&i.Links,
		&i.CreatedAt,
	)
	return i, err
}

const getLatestRunByHandle = `-- name: GetLatestRunByHandle :one
SELECT id, handle, channel_id, video_count, links, created_at FROM runs
WHERE handle = $1
ORDER BY created_at DESC
LIMIT 1
`

func (q *Queries) GetLatestRunByHandle(ctx context.Context, handle string) (Run, error) {
	row := q.db.QueryRow(ctx, getLatestRunByHandle, handle)
	var i Run
	err := row.Scan(
		&i.ID,
		&i.Handle,
		&i.ChannelID,
		&i.VideoCount,
		&i.Links,
		&i.CreatedAt,
	)
	return i, err
}
