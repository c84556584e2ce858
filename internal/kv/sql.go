package kv

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-sql-driver/mysql"
	_ "github.com/mattn/go-sqlite3"
)

// Dialect is a SQL flavor supported by SQLStore.
type Dialect string

const (
	DialectSQLite Dialect = "sqlite3"
	DialectMySQL  Dialect = "mysql"
)

// OpenTimeout bounds the connectivity check and schema migration.
const OpenTimeout = 5 * time.Second

// SQLStore keeps entries in a single kv_entries table.
type SQLStore struct {
	db      *sql.DB
	dialect Dialect
}

// OpenSQL connects, verifies connectivity and creates the table if needed.
func OpenSQL(ctx context.Context, dialect Dialect, dsn string) (*SQLStore, error) {
	dsn, err := normalizeDSN(dialect, dsn)
	if err != nil {
		return nil, err
	}

	db, err := sql.Open(string(dialect), dsn)
	if err != nil {
		return nil, unavailable("open "+string(dialect), err)
	}

	ctx, cancel := context.WithTimeout(ctx, OpenTimeout)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, unavailable("ping "+string(dialect), err)
	}
	s := &SQLStore{db: db, dialect: dialect}
	if err := s.migrate(ctx); err != nil {
		_ = db.Close()
		return nil, unavailable("migrate "+string(dialect), err)
	}
	return s, nil
}

// normalizeDSN validates dsn for the dialect before any connection is made.
func normalizeDSN(dialect Dialect, dsn string) (string, error) {
	dsn = strings.TrimSpace(dsn)
	if dsn == "" {
		return "", fmt.Errorf("%s: dsn required", dialect)
	}
	switch dialect {
	case DialectSQLite:
		if !strings.HasPrefix(dsn, "file:") && dsn != ":memory:" {
			if err := os.MkdirAll(filepath.Dir(dsn), 0o700); err != nil {
				return "", unavailable("create sqlite dir", err)
			}
		}
		return dsn, nil
	case DialectMySQL:
		cfg, err := mysql.ParseDSN(dsn)
		if err != nil {
			return "", fmt.Errorf("invalid mysql dsn: %w", err)
		}
		return cfg.FormatDSN(), nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnknownDriver, dialect)
	}
}

func (s *SQLStore) migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, createTableStatement(s.dialect))
	return err
}

func createTableStatement(dialect Dialect) string {
	if dialect == DialectMySQL {
		return `CREATE TABLE IF NOT EXISTS kv_entries (
    entry_key VARCHAR(191) NOT NULL PRIMARY KEY,
    entry_value LONGBLOB NOT NULL
)`
	}
	return `CREATE TABLE IF NOT EXISTS kv_entries (
    entry_key TEXT NOT NULL PRIMARY KEY,
    entry_value BLOB NOT NULL
)`
}

func upsertStatement(dialect Dialect) string {
	if dialect == DialectMySQL {
		return `INSERT INTO kv_entries (entry_key, entry_value) VALUES (?, ?)
ON DUPLICATE KEY UPDATE entry_value = VALUES(entry_value)`
	}
	return `INSERT INTO kv_entries (entry_key, entry_value) VALUES (?, ?)
ON CONFLICT(entry_key) DO UPDATE SET entry_value = excluded.entry_value`
}

// Get implements Store.
func (s *SQLStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var value []byte
	err := s.db.QueryRowContext(ctx, `SELECT entry_value FROM kv_entries WHERE entry_key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, unavailable("select "+key, err)
	}
	return value, true, nil
}

// Set implements Store.
func (s *SQLStore) Set(ctx context.Context, key string, value []byte) error {
	if value == nil {
		value = []byte{}
	}
	if _, err := s.db.ExecContext(ctx, upsertStatement(s.dialect), key, value); err != nil {
		return unavailable("upsert "+key, err)
	}
	return nil
}

// Close implements Store.
func (s *SQLStore) Close() error { return s.db.Close() }
