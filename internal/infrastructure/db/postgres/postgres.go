// Package postgres implements the repositories on PostgreSQL via the pgx
// stdlib driver. Every mutation goes through DB.WithTx, which carries the
// begin → validate → mutate → commit-or-rollback discipline for all writers.
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/storefrontlabs/storefront-api/internal/api/metrics"
	"github.com/storefrontlabs/storefront-api/internal/core/domain"
)

// PostgreSQL error codes checked for constraint classification.
const (
	uniqueViolationCode     = "23505"
	foreignKeyViolationCode = "23503"
)

type DB struct {
	sql *sql.DB
}

// Open connects to PostgreSQL and verifies connectivity with a ping.
func Open(ctx context.Context, dsn string) (*DB, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(10)
	db.SetConnMaxLifetime(15 * time.Minute)
	db.SetConnMaxIdleTime(5 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("postgres ping: %w", err)
	}
	return &DB{sql: db}, nil
}

// New wraps an existing connection pool. Used by tests.
func New(db *sql.DB) *DB {
	return &DB{sql: db}
}

func (d *DB) Close() error { return d.sql.Close() }

// Ping reports store connectivity for the readiness probe.
func (d *DB) Ping(ctx context.Context) error { return d.sql.PingContext(ctx) }

// WithTx runs fn inside a transaction. Begin failure maps to
// domain.ErrTransactionSetup; the deferred rollback guarantees a transaction
// handle is never leaked open, on error returns and on cancellation alike.
// Commit failure means the mutation was not applied.
//
// resource labels the mutation counter only.
func (d *DB) WithTx(ctx context.Context, resource string, fn func(tx *sql.Tx) error) error {
	tx, err := d.sql.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrTransactionSetup, err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := fn(tx); err != nil {
		metrics.MutationsTotal.WithLabelValues(resource, "rolled_back").Inc()
		return err
	}
	if err := tx.Commit(); err != nil {
		metrics.MutationsTotal.WithLabelValues(resource, "rolled_back").Inc()
		return fmt.Errorf("commit %s mutation: %w", resource, err)
	}
	metrics.MutationsTotal.WithLabelValues(resource, "committed").Inc()
	return nil
}

// isUniqueViolation reports whether err is a unique constraint rejection,
// which callers classify as a conflict distinct from a generic store error.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode
}

func isForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == foreignKeyViolationCode
}

// EnsureSchema creates the tables when they do not exist yet. The schema is
// intentionally minimal; production deployments may manage it externally.
func (d *DB) EnsureSchema(ctx context.Context) error {
	const schema = `
create table if not exists users (
	id            bigserial primary key,
	username      text not null unique,
	password_hash text not null,
	role          text not null check (role in ('admin', 'user')),
	created_at    timestamptz not null default now(),
	updated_at    timestamptz not null default now()
);

create table if not exists images (
	id        bigserial primary key,
	file_name text not null unique,
	path_name text not null unique,
	extension text not null
);

create table if not exists categories (
	id           bigserial primary key,
	name         text not null unique,
	image_id     bigint references images(id) on delete set null,
	is_featured  boolean not null default false,
	is_available boolean not null default true
);

create table if not exists products (
	id           bigserial primary key,
	name         text not null unique,
	price        double precision not null,
	description  text not null default '',
	category_id  bigint not null references categories(id) on delete cascade,
	image_id     bigint references images(id) on delete set null,
	is_featured  boolean not null default false,
	is_available boolean not null default true
);

create table if not exists cart_entries (
	id         bigserial primary key,
	user_id    bigint not null references users(id) on delete cascade,
	product_id bigint not null references products(id) on delete cascade,
	quantity   integer not null check (quantity > 0),
	unique (user_id, product_id)
);
create index if not exists cart_entries_user_idx on cart_entries(user_id);
`
	if _, err := d.sql.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	return nil
}
