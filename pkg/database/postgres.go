package database

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewPostgresConnection(ctx context.Context, connString string) (*pgxpool.Pool, error) {
	config, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, err
	}

	// Transaction-mode poolers (PgBouncer) reject named prepared statements
	config.ConnConfig.DefaultQueryExecMode = pgx.QueryExecModeSimpleProtocol

	config.MaxConns = 25
	config.MinConns = 2
	config.MaxConnLifetime = time.Hour
	config.MaxConnIdleTime = 30 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, err
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	return pool, nil
}

// schema holds the tables the service needs. Company details live in a JSONB
// document on the job row.
const schema = `
CREATE TABLE IF NOT EXISTS users (
	id                UUID PRIMARY KEY,
	name              TEXT NOT NULL,
	username          TEXT NOT NULL,
	password_hash     TEXT NOT NULL,
	phone_number      TEXT NOT NULL DEFAULT '',
	gender            TEXT NOT NULL DEFAULT '',
	date_of_birth     DATE,
	membership_status TEXT NOT NULL DEFAULT 'Inactive',
	address           TEXT NOT NULL DEFAULT '',
	profile_picture   TEXT NOT NULL DEFAULT '',
	created_at        TIMESTAMPTZ NOT NULL,
	updated_at        TIMESTAMPTZ NOT NULL
);

CREATE UNIQUE INDEX IF NOT EXISTS users_username_key ON users (username);

CREATE TABLE IF NOT EXISTS jobs (
	id          UUID PRIMARY KEY,
	title       TEXT NOT NULL,
	type        TEXT NOT NULL,
	description TEXT NOT NULL,
	company     JSONB NOT NULL DEFAULT '{}'::jsonb,
	location    TEXT NOT NULL DEFAULT '',
	salary      DOUBLE PRECISION NOT NULL DEFAULT 0,
	posted_date DATE,
	status      TEXT NOT NULL DEFAULT 'open',
	created_by  UUID REFERENCES users (id) ON DELETE SET NULL,
	created_at  TIMESTAMPTZ NOT NULL,
	updated_at  TIMESTAMPTZ NOT NULL
);

CREATE INDEX IF NOT EXISTS jobs_created_at_idx ON jobs (created_at DESC);
`

// EnsureSchema creates missing tables and indexes. Safe to run on every start.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	if _, err := pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	return nil
}
