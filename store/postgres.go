package store

import (
	"context"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq" // postgres driver
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/phanxgames/balloons"
)

// Schema creates the messages table if it is missing. It matches the table
// the hosted web client writes to.
const Schema = `CREATE TABLE IF NOT EXISTS balloons (
	id          UUID PRIMARY KEY DEFAULT gen_random_uuid(),
	message     TEXT NOT NULL,
	color       TEXT NOT NULL,
	text_size   DOUBLE PRECISION NOT NULL,
	text_color  TEXT NOT NULL,
	font_weight TEXT,
	font_style  TEXT,
	created_at  TIMESTAMPTZ NOT NULL DEFAULT now()
)`

const (
	insertQuery = `INSERT INTO balloons (message, color, text_size, text_color, font_weight, font_style)
VALUES ($1, $2, $3, $4, NULLIF($5, ''), NULLIF($6, ''))
RETURNING id, created_at`

	listQuery = `SELECT id, message, color, text_size, text_color,
	COALESCE(font_weight, '') AS font_weight,
	COALESCE(font_style, '') AS font_style,
	created_at
FROM balloons
ORDER BY created_at DESC
LIMIT $1 OFFSET $2`
)

// Postgres is a Store that talks to the messages database directly.
type Postgres struct {
	db     *sqlx.DB
	logger *zap.Logger
}

// OpenPostgres connects to dsn with the lib/pq driver and verifies the
// connection.
func OpenPostgres(ctx context.Context, dsn string, logger *zap.Logger) (*Postgres, error) {
	db, err := sqlx.ConnectContext(ctx, "postgres", dsn)
	if err != nil {
		return nil, errors.Wrap(err, "postgres: connect")
	}
	return NewPostgres(db, logger), nil
}

// NewPostgres wraps an open database handle.
func NewPostgres(db *sqlx.DB, logger *zap.Logger) *Postgres {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Postgres{db: db, logger: logger}
}

// Migrate applies Schema.
func (p *Postgres) Migrate(ctx context.Context) error {
	if _, err := p.db.ExecContext(ctx, Schema); err != nil {
		return errors.Wrap(err, "postgres: migrate")
	}
	return nil
}

// Add implements Store.
func (p *Postgres) Add(ctx context.Context, d balloons.Draft) (balloons.Item, error) {
	if err := d.Validate(); err != nil {
		return balloons.Item{}, err
	}

	item := d.Item()
	row := p.db.QueryRowxContext(ctx, insertQuery,
		d.Message, d.Color, d.TextSize, d.TextColor, d.FontWeight, d.FontStyle)
	if err := row.Scan(&item.ID, &item.CreatedAt); err != nil {
		return balloons.Item{}, errors.Wrap(err, "postgres: insert message")
	}
	p.logger.Info("message added", zap.String("id", item.ID))
	return item, nil
}

// List implements Store.
func (p *Postgres) List(ctx context.Context, page Page) ([]balloons.Item, error) {
	page = page.normalize()
	items := []balloons.Item{}
	if err := p.db.SelectContext(ctx, &items, listQuery, page.Limit, page.Offset); err != nil {
		return nil, errors.Wrap(err, "postgres: list messages")
	}
	return items, nil
}

// Close closes the database handle.
func (p *Postgres) Close() error {
	return p.db.Close()
}
