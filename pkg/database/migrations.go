package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rs/zerolog/log"
)

// Execer is the subset of *pgxpool.Pool that Migrate needs.
type Execer interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

var schema = []string{
	`CREATE TABLE IF NOT EXISTS products (
		id UUID PRIMARY KEY,
		name TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		price_cents BIGINT NOT NULL CHECK (price_cents >= 0),
		category TEXT NOT NULL CHECK (category IN ('cafes', 'bebidas', 'doces', 'especiais')),
		image_key TEXT,
		available BOOLEAN NOT NULL DEFAULT TRUE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_products_category ON products (category) WHERE available`,
	`CREATE TABLE IF NOT EXISTS orders (
		id UUID PRIMARY KEY,
		customer_name TEXT NOT NULL,
		customer_email TEXT NOT NULL,
		customer_address TEXT NOT NULL,
		customer_city TEXT NOT NULL,
		customer_phone TEXT,
		total_cents BIGINT NOT NULL CHECK (total_cents >= 0),
		status TEXT NOT NULL DEFAULT 'pending' CHECK (status IN ('pending', 'completed', 'cancelled')),
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_orders_created_at ON orders (created_at DESC)`,
	`CREATE TABLE IF NOT EXISTS order_items (
		order_id UUID NOT NULL REFERENCES orders (id) ON DELETE CASCADE,
		position INT NOT NULL,
		product_id UUID NOT NULL,
		product_name TEXT NOT NULL,
		quantity INT NOT NULL CHECK (quantity > 0),
		unit_price_cents BIGINT NOT NULL CHECK (unit_price_cents >= 0),
		PRIMARY KEY (order_id, position)
	)`,
	`CREATE TABLE IF NOT EXISTS cafe_tables (
		id INT PRIMARY KEY,
		capacity INT NOT NULL CHECK (capacity > 0),
		pos_x DOUBLE PRECISION NOT NULL,
		pos_y DOUBLE PRECISION NOT NULL,
		shape TEXT NOT NULL CHECK (shape IN ('round', 'square')),
		rotation INT NOT NULL DEFAULT 0
	)`,
	`CREATE TABLE IF NOT EXISTS reservations (
		id UUID PRIMARY KEY,
		table_id INT NOT NULL REFERENCES cafe_tables (id),
		client_name TEXT NOT NULL,
		people INT NOT NULL CHECK (people > 0),
		day TEXT NOT NULL CHECK (day IN ('Quarta', 'Quinta', 'Sexta', 'Sábado', 'Domingo')),
		time_slot TEXT NOT NULL CHECK (time_slot ~ '^(0[89]|1[0-9]|20):00$'),
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		UNIQUE (table_id, day, time_slot)
	)`,
	`CREATE TABLE IF NOT EXISTS admin_users (
		id UUID PRIMARY KEY,
		email TEXT NOT NULL UNIQUE,
		name TEXT NOT NULL,
		password_hash TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`INSERT INTO cafe_tables (id, capacity, pos_x, pos_y, shape, rotation) VALUES
		(1, 2, 15, 20, 'round', 0),
		(2, 2, 30, 20, 'round', 0),
		(3, 4, 50, 18, 'square', 0),
		(4, 4, 70, 18, 'square', 0),
		(5, 2, 85, 20, 'round', 0),
		(6, 4, 15, 45, 'square', 90),
		(7, 6, 35, 45, 'square', 0),
		(8, 6, 60, 45, 'square', 0),
		(9, 4, 85, 45, 'square', 90),
		(10, 2, 20, 70, 'round', 0),
		(11, 4, 40, 72, 'square', 0),
		(12, 4, 60, 72, 'square', 0),
		(13, 2, 80, 70, 'round', 0)
	ON CONFLICT (id) DO NOTHING`,
}

// Migrate creates the schema and seeds the floor plan. Every statement is idempotent.
func Migrate(ctx context.Context, db Execer) error {
	for i, stmt := range schema {
		if _, err := db.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("migration step %d failed: %w", i+1, err)
		}
	}
	log.Info().Int("steps", len(schema)).Msg("Database schema up to date")
	return nil
}
