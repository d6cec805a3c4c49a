// Package migration brings the PostgreSQL schema up to date on startup.
package migration

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"stallhub/internal/logging"
)

type migrationStep struct {
	Name string
	SQL  string
}

// steps run in order; every applied name is recorded in schema_migrations.
// Append new steps, never edit applied ones.
var steps = []migrationStep{
	{
		Name: "create_table_users",
		SQL: `CREATE TABLE IF NOT EXISTS users (
  id             UUID        PRIMARY KEY,
  email          TEXT        NOT NULL UNIQUE,
  name           TEXT        NOT NULL DEFAULT '',
  phone          TEXT        NOT NULL DEFAULT '',
  password_hash  TEXT        NOT NULL DEFAULT '',
  roles_json     JSONB       NOT NULL DEFAULT '[]'::jsonb,
  active         BOOLEAN     NOT NULL DEFAULT TRUE,
  email_verified BOOLEAN     NOT NULL DEFAULT FALSE,
  last_login_at  TIMESTAMPTZ,
  created_at     TIMESTAMPTZ NOT NULL DEFAULT now(),
  updated_at     TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_index_users_roles",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_users_roles ON users USING GIN (roles_json jsonb_path_ops);`,
	},
	{
		Name: "create_table_businesses",
		SQL: `CREATE TABLE IF NOT EXISTS businesses (
  id            UUID        PRIMARY KEY,
  slug          TEXT        NOT NULL UNIQUE,
  name          TEXT        NOT NULL,
  description   TEXT        NOT NULL DEFAULT '',
  owner_id      UUID        NOT NULL,
  active        BOOLEAN     NOT NULL DEFAULT TRUE,
  settings_json JSONB       NOT NULL DEFAULT '{}'::jsonb,
  created_at    TIMESTAMPTZ NOT NULL DEFAULT now(),
  updated_at    TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_table_stalls",
		SQL: `CREATE TABLE IF NOT EXISTS stalls (
  id          UUID        PRIMARY KEY,
  business_id UUID        NOT NULL REFERENCES businesses (id) ON DELETE CASCADE,
  name        TEXT        NOT NULL,
  description TEXT        NOT NULL DEFAULT '',
  active      BOOLEAN     NOT NULL DEFAULT TRUE,
  sort_order  INTEGER     NOT NULL DEFAULT 0,
  created_at  TIMESTAMPTZ NOT NULL DEFAULT now(),
  updated_at  TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_index_stalls_business",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_stalls_business ON stalls (business_id, sort_order);`,
	},
	{
		Name: "create_table_products",
		SQL: `CREATE TABLE IF NOT EXISTS products (
  id          UUID        PRIMARY KEY,
  business_id UUID        NOT NULL REFERENCES businesses (id) ON DELETE CASCADE,
  stall_id    UUID        NOT NULL REFERENCES stalls (id) ON DELETE CASCADE,
  name        TEXT        NOT NULL,
  description TEXT        NOT NULL DEFAULT '',
  category    TEXT        NOT NULL DEFAULT '',
  price_cents BIGINT      NOT NULL CHECK (price_cents > 0),
  available   BOOLEAN     NOT NULL DEFAULT TRUE,
  image_key   TEXT        NOT NULL DEFAULT '',
  created_at  TIMESTAMPTZ NOT NULL DEFAULT now(),
  updated_at  TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_index_products_stall",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_products_stall ON products (stall_id, category, name);`,
	},
	{
		Name: "create_table_carts",
		SQL: `CREATE TABLE IF NOT EXISTS carts (
  user_id     UUID        PRIMARY KEY REFERENCES users (id) ON DELETE CASCADE,
  business_id UUID,
  items_json  JSONB       NOT NULL DEFAULT '[]'::jsonb,
  updated_at  TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_table_orders",
		SQL: `CREATE TABLE IF NOT EXISTS orders (
  id             UUID        PRIMARY KEY,
  number         TEXT        NOT NULL UNIQUE,
  business_id    UUID        NOT NULL,
  stall_id       UUID        NOT NULL,
  customer_id    UUID        NOT NULL,
  customer_name  TEXT        NOT NULL DEFAULT '',
  status         TEXT        NOT NULL CHECK (status IN ('pending','confirmed','preparing','ready','fulfilled','cancelled')),
  items_json     JSONB       NOT NULL DEFAULT '[]'::jsonb,
  subtotal_cents BIGINT      NOT NULL CHECK (subtotal_cents >= 0),
  tax_cents      BIGINT      NOT NULL CHECK (tax_cents >= 0),
  total_cents    BIGINT      NOT NULL CHECK (total_cents >= 0),
  notes          TEXT        NOT NULL DEFAULT '',
  cancel_reason  TEXT        NOT NULL DEFAULT '',
  created_at     TIMESTAMPTZ NOT NULL DEFAULT now(),
  updated_at     TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_index_orders_business",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_orders_business ON orders (business_id, created_at DESC);`,
	},
	{
		Name: "create_index_orders_customer",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_orders_customer ON orders (customer_id, created_at DESC);`,
	},
	{
		Name: "create_index_orders_status",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_orders_status ON orders (status, created_at);`,
	},
	{
		Name: "create_table_order_status_events",
		SQL: `CREATE TABLE IF NOT EXISTS order_status_events (
  id          UUID        PRIMARY KEY,
  order_id    UUID        NOT NULL REFERENCES orders (id) ON DELETE CASCADE,
  from_status TEXT        NOT NULL DEFAULT '',
  to_status   TEXT        NOT NULL,
  actor_id    TEXT        NOT NULL DEFAULT '',
  reason      TEXT        NOT NULL DEFAULT '',
  created_at  TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_index_order_status_events_order",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_order_status_events_order ON order_status_events (order_id, created_at);`,
	},
	{
		Name: "create_table_magic_links",
		SQL: `CREATE TABLE IF NOT EXISTS magic_links (
  id         UUID        PRIMARY KEY,
  user_id    UUID        NOT NULL REFERENCES users (id) ON DELETE CASCADE,
  email      TEXT        NOT NULL,
  token_hash TEXT        NOT NULL UNIQUE,
  code_hash  TEXT        NOT NULL,
  purpose    TEXT        NOT NULL,
  attempts   INTEGER     NOT NULL DEFAULT 0,
  expires_at TIMESTAMPTZ NOT NULL,
  used_at    TIMESTAMPTZ,
  created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_index_magic_links_email",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_magic_links_email ON magic_links (email, created_at DESC) WHERE used_at IS NULL;`,
	},
}

const createMigrationsTable = `CREATE TABLE IF NOT EXISTS schema_migrations (
  name       TEXT        PRIMARY KEY,
  applied_at TIMESTAMPTZ NOT NULL DEFAULT now()
);`

// EnsureMigrated applies every step not yet recorded in schema_migrations.
func EnsureMigrated(ctx context.Context, db *sql.DB, logger *logging.Logger, dbHost string) error {
	start := time.Now()

	logger.Log(map[string]any{
		"component": "database",
		"event":     "db_migration_check",
		"status":    "starting",
		"db_host":   dbHost,
	})

	fail := func(step string, err error) error {
		logger.Log(map[string]any{
			"component":      "database",
			"event":          "db_migration_failed",
			"status":         "error",
			"migration_step": step,
			"error_message":  err.Error(),
			"db_host":        dbHost,
			"duration_ms":    time.Since(start).Milliseconds(),
		})
		return fmt.Errorf("migration step %s failed: %w", step, err)
	}

	if _, err := db.ExecContext(ctx, createMigrationsTable); err != nil {
		return fail("create_table_schema_migrations", err)
	}

	applied, err := appliedSteps(ctx, db)
	if err != nil {
		return fail("read_schema_migrations", err)
	}

	pending := 0
	for _, step := range steps {
		if applied[step.Name] {
			continue
		}
		pending++

		stepStart := time.Now()
		if _, err := db.ExecContext(ctx, step.SQL); err != nil {
			return fail(step.Name, err)
		}
		if _, err := db.ExecContext(ctx, `INSERT INTO schema_migrations (name) VALUES ($1)`, step.Name); err != nil {
			return fail(step.Name, err)
		}

		logger.Log(map[string]any{
			"component":        "database",
			"event":            "db_migration_step",
			"status":           "success",
			"migration_step":   step.Name,
			"db_host":          dbHost,
			"step_duration_ms": time.Since(stepStart).Milliseconds(),
		})
	}

	event := "db_migration_success"
	if pending == 0 {
		event = "db_migration_skip"
	}
	logger.Log(map[string]any{
		"component":     "database",
		"event":         event,
		"status":        "success",
		"steps_applied": pending,
		"db_host":       dbHost,
		"duration_ms":   time.Since(start).Milliseconds(),
	})
	return nil
}

func appliedSteps(ctx context.Context, db *sql.DB) (map[string]bool, error) {
	rows, err := db.QueryContext(ctx, `SELECT name FROM schema_migrations`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[string]bool)
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		out[name] = true
	}
	return out, rows.Err()
}
