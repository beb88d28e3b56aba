package storage

import (
	"database/sql"
	"strings"
	"time"

	"github.com/mattn/go-sqlite3"
)

// driverName is go-sqlite3 with a Unicode-aware lower function. SQLite's
// built-in lower() only folds ASCII.
const driverName = "sqlite3_unicode"

func init() {
	sql.Register(driverName, &sqlite3.SQLiteDriver{
		ConnectHook: func(conn *sqlite3.SQLiteConn) error {
			return conn.RegisterFunc("go_lower", strings.ToLower, true)
		},
	})
}

// New opens a SQLite database connection at the given path.
// The facts database is read-mostly, so it runs in WAL mode.
func New(path string) (*sql.DB, error) {
	db, err := sql.Open(driverName, path)
	if err != nil {
		return nil, err
	}

	if _, err := db.Exec("PRAGMA journal_mode = WAL;"); err != nil {
		_ = db.Close()
		return nil, err
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, err
	}

	return db, nil
}

// Migrate creates the facts table. It is idempotent.
func Migrate(db *sql.DB) error {
	schema := []string{
		`CREATE TABLE IF NOT EXISTS facts (
			id TEXT PRIMARY KEY,
			label TEXT NOT NULL,
			section TEXT,
			question TEXT NOT NULL DEFAULT '',
			answer TEXT NOT NULL DEFAULT '',
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);`,
		`CREATE INDEX IF NOT EXISTS idx_facts_label ON facts(label);`,
	}

	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			return err
		}
	}

	return nil
}
