package database

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// MemoryPath keeps the sample log in memory for the lifetime of the process
const MemoryPath = ":memory:"

// DB wraps sql.DB with the sample log queries
type DB struct {
	*sql.DB
}

// New creates a new database connection
func New(path string) (*DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("database open failed: %w", err)
	}

	// Every connection to :memory: is a separate database
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA synchronous=OFF"); err != nil {
		db.Close()
		return nil, fmt.Errorf("database pragma failed: %w", err)
	}

	return &DB{db}, nil
}

// InitSchema creates all necessary tables
func (db *DB) InitSchema() error {
	schema := `
    CREATE TABLE IF NOT EXISTS samples (
        id INTEGER PRIMARY KEY AUTOINCREMENT,
        iteration INTEGER NOT NULL,
        timestamp DATETIME NOT NULL,
        url TEXT NOT NULL,
        success BOOLEAN NOT NULL,
        error_kind TEXT,
        server_ip TEXT,
        effective_url TEXT,
        http_response_code INTEGER,
        name_lookup_time REAL,
        connect_time REAL,
        start_transfer_time REAL,
        total_time REAL
    );

    CREATE INDEX IF NOT EXISTS idx_samples_iteration ON samples(iteration);
    `

	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("schema creation failed: %w", err)
	}

	return nil
}
