package migration

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"time"
)

type migrationStep struct {
	Name string
	SQL  string
}

var steps = []migrationStep{
	{
		Name: "create_extension_uuid_ossp",
		SQL:  `CREATE EXTENSION IF NOT EXISTS "uuid-ossp";`,
	},
	{
		Name: "create_table_agent",
		SQL: `CREATE TABLE IF NOT EXISTS agent (
  id         UUID        PRIMARY KEY DEFAULT uuid_generate_v4(),
  firstname  TEXT        NOT NULL,
  lastname   TEXT        NOT NULL,
  is_active  BOOLEAN     NOT NULL DEFAULT TRUE,
  created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_table_client",
		SQL: `CREATE TABLE IF NOT EXISTS client (
  id                              UUID        PRIMARY KEY DEFAULT uuid_generate_v4(),
  firstname                       TEXT        NOT NULL,
  lastname                        TEXT        NOT NULL,
  prefix                          TEXT,
  email_address                   TEXT        UNIQUE,
  phone_number                    TEXT,
  contact_number_whatsapp         TEXT,
  email_internal_address          TEXT,
  email_internal_address_password TEXT,
  forward_email_address_clicker   TEXT,
  location_sms_receive            TEXT,
  socials                         TEXT,
  street                          TEXT,
  city                            TEXT,
  zipcode                         TEXT,
  country                         TEXT,
  employed                        BOOLEAN,
  job_title                       TEXT,
  average_salary                  NUMERIC,
  start_date                      TIMESTAMPTZ,
  end_date                        TIMESTAMPTZ,
  agent_id                        UUID        REFERENCES agent (id) ON DELETE SET NULL,
  client_responsive               BOOLEAN,
  created_at                      TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_index_client_agent_id",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_client_agent_id ON client (agent_id);`,
	},
	{
		Name: "create_index_client_lastname",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_client_lastname ON client (lastname);`,
	},
	{
		Name: "create_table_document",
		SQL: `CREATE TABLE IF NOT EXISTS document (
  id          UUID        PRIMARY KEY DEFAULT uuid_generate_v4(),
  client_id   UUID        NOT NULL REFERENCES client (id) ON DELETE CASCADE,
  type        TEXT        NOT NULL CHECK (type IN ('ID', 'Passport', 'Driver License', 'Proof of Address', 'Contract', 'Other')),
  status      TEXT        NOT NULL DEFAULT 'valid' CHECK (status IN ('valid', 'expired', 'pending')),
  id_number   TEXT,
  valid_until TIMESTAMPTZ,
  notes       TEXT,
  file_path   TEXT,
  upload_date TIMESTAMPTZ NOT NULL DEFAULT now(),
  created_at  TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_index_document_client_id",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_document_client_id ON document (client_id);`,
	},
	{
		Name: "create_index_document_created_at",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_document_created_at ON document (created_at);`,
	},
	{
		Name: "create_table_casino",
		SQL: `CREATE TABLE IF NOT EXISTS casino (
  id          UUID        PRIMARY KEY DEFAULT uuid_generate_v4(),
  casino_name TEXT        NOT NULL,
  website     TEXT,
  created_at  TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_table_casino_client",
		SQL: `CREATE TABLE IF NOT EXISTS casino_client (
  id         UUID        PRIMARY KEY DEFAULT uuid_generate_v4(),
  client_id  UUID        NOT NULL REFERENCES client (id) ON DELETE CASCADE,
  casino_id  UUID        NOT NULL REFERENCES casino (id) ON DELETE CASCADE,
  username   TEXT,
  created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_index_casino_client_client_id",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_casino_client_client_id ON casino_client (client_id);`,
	},
	{
		Name: "create_table_bank",
		SQL: `CREATE TABLE IF NOT EXISTS bank (
  id         UUID        PRIMARY KEY DEFAULT uuid_generate_v4(),
  name       TEXT        NOT NULL,
  website    TEXT,
  created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_table_bank_client",
		SQL: `CREATE TABLE IF NOT EXISTS bank_client (
  id             UUID        PRIMARY KEY DEFAULT uuid_generate_v4(),
  client_id      UUID        NOT NULL REFERENCES client (id) ON DELETE CASCADE,
  bank_id        UUID        NOT NULL REFERENCES bank (id) ON DELETE CASCADE,
  account_number TEXT,
  created_at     TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_index_bank_client_client_id",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_bank_client_client_id ON bank_client (client_id);`,
	},
	{
		Name: "create_table_client_contact_moment",
		SQL: `CREATE TABLE IF NOT EXISTS client_contact_moment (
  id        UUID        PRIMARY KEY DEFAULT uuid_generate_v4(),
  client_id UUID        NOT NULL REFERENCES client (id) ON DELETE CASCADE,
  date      TIMESTAMPTZ NOT NULL DEFAULT now(),
  notes     TEXT,
  user_id   UUID
);`,
	},
	{
		Name: "create_index_client_contact_moment_client_id",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_client_contact_moment_client_id ON client_contact_moment (client_id);`,
	},
}

// EnsureMigrated checks if the 'client' table exists and runs migrations if it doesn't.
func EnsureMigrated(ctx context.Context, db *sql.DB, loc *time.Location, dbHost string) error {
	start := time.Now()

	logJSON(loc, map[string]any{
		"component": "database",
		"event":     "db_migration_check",
		"status":    "starting",
		"db_host":   dbHost,
	})

	var exists bool
	query := "SELECT to_regclass('public.client') IS NOT NULL"
	err := db.QueryRowContext(ctx, query).Scan(&exists)
	if err != nil {
		logJSON(loc, map[string]any{
			"component":     "database",
			"event":         "db_migration_failed",
			"status":        "error",
			"error_message": fmt.Sprintf("failed to check sentinel table: %v", err),
			"db_host":       dbHost,
			"duration_ms":   time.Since(start).Milliseconds(),
		})
		return fmt.Errorf("failed to check sentinel table: %w", err)
	}

	if exists {
		logJSON(loc, map[string]any{
			"component":   "database",
			"event":       "db_migration_skip",
			"status":      "success",
			"msg":         "schema already exists, skipping migration",
			"db_host":     dbHost,
			"duration_ms": time.Since(start).Milliseconds(),
		})
		return nil
	}

	logJSON(loc, map[string]any{
		"component": "database",
		"event":     "db_migration_start",
		"status":    "in_progress",
		"db_host":   dbHost,
	})

	for _, step := range steps {
		stepStart := time.Now()
		_, err := db.ExecContext(ctx, step.SQL)
		if err != nil {
			logJSON(loc, map[string]any{
				"component":        "database",
				"event":            "db_migration_failed",
				"status":           "error",
				"migration_step":   step.Name,
				"error_message":    err.Error(),
				"db_host":          dbHost,
				"duration_ms":      time.Since(start).Milliseconds(),
				"step_duration_ms": time.Since(stepStart).Milliseconds(),
			})
			return fmt.Errorf("migration step %s failed: %w", step.Name, err)
		}

		logJSON(loc, map[string]any{
			"component":        "database",
			"event":            "db_migration_step",
			"status":           "success",
			"migration_step":   step.Name,
			"db_host":          dbHost,
			"step_duration_ms": time.Since(stepStart).Milliseconds(),
		})
	}

	logJSON(loc, map[string]any{
		"component":   "database",
		"event":       "db_migration_success",
		"status":      "success",
		"db_host":     dbHost,
		"duration_ms": time.Since(start).Milliseconds(),
	})

	return nil
}

func logJSON(loc *time.Location, data map[string]any) {
	data["ts"] = time.Now().In(loc).Format(time.RFC3339Nano)
	if _, ok := data["level"]; !ok {
		if data["status"] == "error" {
			data["level"] = "error"
		} else {
			data["level"] = "info"
		}
	}

	b, err := json.Marshal(data)
	if err != nil {
		log.Printf("failed to marshal migration log: %v", err)
		return
	}
	log.SetFlags(0)
	log.Println(string(b))
}
