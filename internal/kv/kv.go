// Package kv defines the durable key-value collaborator the task list is
// persisted through, plus its file, SQL and in-memory backends.
package kv

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// Driver names accepted by Open.
const (
	DriverFile   = "file"
	DriverSQLite = "sqlite"
	DriverMySQL  = "mysql"
	DriverMemory = "memory"

	// FileName is the document the file driver writes inside Options.Dir.
	FileName = "tasks.json"

	// SQLiteFileName is the default database for the sqlite driver.
	SQLiteFileName = "tasks.db"
)

// ErrUnavailable marks a store that cannot be reached or read.
var ErrUnavailable = errors.New("storage unavailable")

// ErrUnknownDriver is returned by Open for an unsupported driver name.
var ErrUnknownDriver = errors.New("unknown storage driver")

// Store is an opaque durable key-value store.
type Store interface {
	// Get returns the value for key. ok is false when the key is absent.
	Get(ctx context.Context, key string) (value []byte, ok bool, err error)

	// Set writes value under key, replacing any previous value.
	Set(ctx context.Context, key string, value []byte) error

	// Close releases the underlying resources.
	Close() error
}

// Options selects and configures a backend.
type Options struct {
	// Driver is one of the Driver* constants. Empty means file.
	Driver string

	// DSN is the sqlite path or mysql DSN. The file driver ignores it.
	DSN string

	// Dir is the directory used for default file and sqlite locations.
	Dir string
}

// Open creates the store described by opts.
func Open(ctx context.Context, opts Options) (Store, error) {
	driver := strings.ToLower(strings.TrimSpace(opts.Driver))
	switch driver {
	case "", DriverFile:
		return NewFileStore(filepath.Join(opts.Dir, FileName)), nil
	case DriverSQLite:
		dsn := opts.DSN
		if dsn == "" {
			dsn = filepath.Join(opts.Dir, SQLiteFileName)
		}
		return openSQLStore(ctx, DialectSQLite, dsn)
	case DriverMySQL:
		return openSQLStore(ctx, DialectMySQL, opts.DSN)
	case DriverMemory:
		return NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownDriver, opts.Driver)
	}
}

// openSQLStore keeps a failed open from becoming a non-nil Store holding a nil pointer.
func openSQLStore(ctx context.Context, dialect Dialect, dsn string) (Store, error) {
	s, err := OpenSQL(ctx, dialect, dsn)
	if err != nil {
		return nil, err
	}
	return s, nil
}

func unavailable(op string, err error) error {
	return fmt.Errorf("%w: %s: %v", ErrUnavailable, op, err)
}
