package repository

import (
	"context"
	"database/sql"
	"log/slog"
	"strings"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"

	"github.com/valvetrack/valve-docs/internal/common"
)

// Open connects to the registry database. Postgres DSNs go through the pgx
// stdlib driver; anything else is treated as a sqlite file DSN, which is the
// local/default deployment.
func Open(ctx context.Context, cfg common.DatabaseConfig, logger *slog.Logger) (*sql.DB, error) {
	driver := "sqlite"
	if strings.HasPrefix(cfg.DSN, "postgres://") || strings.HasPrefix(cfg.DSN, "postgresql://") {
		driver = "pgx"
	}
	logger.Info("connecting to database", "driver", driver)

	db, err := sql.Open(driver, cfg.DSN)
	if err != nil {
		logger.Error("failed to open database", "error", err)
		return nil, common.WrapError(err, "open database")
	}
	db.SetMaxOpenConns(int(cfg.MaxConns))
	db.SetMaxIdleConns(int(cfg.MinConns))
	db.SetConnMaxLifetime(cfg.MaxConnLifetime)
	db.SetConnMaxIdleTime(cfg.MaxConnIdleTime)

	pingCtx := ctx
	if cfg.DialTimeout > 0 {
		var cancel context.CancelFunc
		pingCtx, cancel = context.WithTimeout(ctx, cfg.DialTimeout)
		defer cancel()
	}
	if err := db.PingContext(pingCtx); err != nil {
		logger.Error("failed to connect to database", "error", err)
		_ = db.Close()
		return nil, common.WrapError(err, "ping database")
	}

	if err := Migrate(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}

	logger.Info("successfully connected to database")
	return db, nil
}

// Migrate creates the registry tables when missing. Column types stick to
// TEXT/INTEGER so the same statements run on both engines; the UNIQUE
// constraint on serial_number is the storage-level guard against concurrent
// duplicate creation (a losing racer gets a constraint error, not a merge).
func Migrate(ctx context.Context, db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS valves (
			id TEXT PRIMARY KEY,
			organization_id TEXT,
			serial_number TEXT NOT NULL UNIQUE,
			brand TEXT NOT NULL DEFAULT '',
			model TEXT NOT NULL DEFAULT '',
			size TEXT NOT NULL DEFAULT '',
			location_tag TEXT NOT NULL DEFAULT '',
			last_calibration_date TEXT,
			last_service_date TEXT,
			created_at TEXT NOT NULL,
			updated_at TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS documents (
			id TEXT PRIMARY KEY,
			valve_id TEXT,
			document_type TEXT NOT NULL,
			document_number TEXT NOT NULL DEFAULT '',
			original_filename TEXT NOT NULL,
			stored_path TEXT NOT NULL DEFAULT '',
			content_hash TEXT NOT NULL DEFAULT '',
			file_size INTEGER NOT NULL DEFAULT 0,
			fields_json TEXT NOT NULL DEFAULT '{}',
			document_date TEXT,
			expiry_date TEXT,
			extracted INTEGER NOT NULL DEFAULT 0,
			needs_review INTEGER NOT NULL DEFAULT 0,
			review_reason TEXT NOT NULL DEFAULT '',
			uploaded_at TEXT NOT NULL,
			extracted_at TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_documents_valve ON documents (valve_id, uploaded_at)`,
	}
	for _, s := range stmts {
		if _, err := db.ExecContext(ctx, s); err != nil {
			return common.WrapError(err, "migrate schema")
		}
	}
	return nil
}

// Close closes the database connection gracefully.
func Close(db *sql.DB, logger *slog.Logger) {
	if db == nil {
		return
	}
	logger.Info("closing database connection")
	if err := db.Close(); err != nil {
		logger.Error("failed to close database", "error", err)
	}
}

// HealthCheck pings the database to catch DSN issues early.
func HealthCheck(ctx context.Context, db *sql.DB) error {
	return db.PingContext(ctx)
}
