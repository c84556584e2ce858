package kv

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func exerciseStore(t *testing.T, s Store) {
	t.Helper()
	ctx := context.Background()

	_, ok, err := s.Get(ctx, "tasks_stored")
	require.NoError(t, err)
	require.False(t, ok)

	require.NoError(t, s.Set(ctx, "tasks_stored", []byte(`[{"name":"a","completed":false}]`)))
	require.NoError(t, s.Set(ctx, "other", []byte("x")))

	v, ok, err := s.Get(ctx, "tasks_stored")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, `[{"name":"a","completed":false}]`, string(v))

	require.NoError(t, s.Set(ctx, "tasks_stored", []byte(`[]`)))
	v, ok, err = s.Get(ctx, "tasks_stored")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, `[]`, string(v))

	v, ok, err = s.Get(ctx, "other")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "x", string(v))
}

func TestMemoryStore(t *testing.T) {
	exerciseStore(t, NewMemoryStore())
}

func TestFileStore(t *testing.T) {
	exerciseStore(t, NewFileStore(filepath.Join(t.TempDir(), "nested", FileName)))
}

func TestFileStore_PersistsAcrossInstances(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	ctx := context.Background()

	require.NoError(t, NewFileStore(path).Set(ctx, "k", []byte("v")))

	v, ok, err := NewFileStore(path).Get(ctx, "k")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "v", string(v))

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	require.Len(t, entries, 1, "temp files must not be left behind")
}

func TestFileStore_CorruptDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))
	s := NewFileStore(path)
	ctx := context.Background()

	_, _, err := s.Get(ctx, "k")
	require.ErrorIs(t, err, ErrUnavailable)

	require.NoError(t, s.Set(ctx, "k", []byte("v")))
	v, ok, err := s.Get(ctx, "k")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "v", string(v))
}

func TestFileStore_EmptyDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, os.WriteFile(path, nil, 0o600))

	_, ok, err := NewFileStore(path).Get(context.Background(), "k")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestSQLiteStore(t *testing.T) {
	s, err := OpenSQL(context.Background(), DialectSQLite, filepath.Join(t.TempDir(), "db", SQLiteFileName))
	require.NoError(t, err)
	defer s.Close()

	exerciseStore(t, s)
}

func TestSQLiteStore_PersistsAcrossConnections(t *testing.T) {
	path := filepath.Join(t.TempDir(), SQLiteFileName)
	ctx := context.Background()

	s, err := OpenSQL(ctx, DialectSQLite, path)
	require.NoError(t, err)
	require.NoError(t, s.Set(ctx, "k", []byte("v")))
	require.NoError(t, s.Close())

	s, err = OpenSQL(ctx, DialectSQLite, path)
	require.NoError(t, err)
	defer s.Close()
	v, ok, err := s.Get(ctx, "k")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "v", string(v))
}

func TestNormalizeDSN(t *testing.T) {
	cases := []struct {
		name    string
		dialect Dialect
		dsn     string
		wantErr bool
	}{
		{"sqlite memory", DialectSQLite, ":memory:", false},
		{"sqlite uri", DialectSQLite, "file:tasks.db?cache=shared", false},
		{"sqlite empty", DialectSQLite, " ", true},
		{"mysql valid", DialectMySQL, "user:pass@tcp(127.0.0.1:3306)/tasks", false},
		{"mysql missing slash", DialectMySQL, "user:pass@tcp(127.0.0.1:3306)", true},
		{"mysql empty", DialectMySQL, "", true},
		{"unknown", Dialect("postgres"), "x", true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := normalizeDSN(tc.dialect, tc.dsn)
			if tc.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.NotEmpty(t, got)
		})
	}
}

func TestStatementsPerDialect(t *testing.T) {
	require.Contains(t, upsertStatement(DialectMySQL), "ON DUPLICATE KEY UPDATE")
	require.Contains(t, upsertStatement(DialectSQLite), "ON CONFLICT(entry_key)")
	require.Contains(t, createTableStatement(DialectMySQL), "VARCHAR(191)")
	require.Contains(t, createTableStatement(DialectSQLite), "entry_key TEXT")
}

func TestOpen(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	s, err := Open(ctx, Options{Dir: dir})
	require.NoError(t, err)
	fs, ok := s.(*FileStore)
	require.True(t, ok)
	require.Equal(t, filepath.Join(dir, FileName), fs.Path())

	s, err = Open(ctx, Options{Driver: "Memory"})
	require.NoError(t, err)
	require.IsType(t, &MemoryStore{}, s)

	s, err = Open(ctx, Options{Driver: DriverSQLite, Dir: dir})
	require.NoError(t, err)
	require.IsType(t, &SQLStore{}, s)
	require.NoError(t, s.Close())
	require.FileExists(t, filepath.Join(dir, SQLiteFileName))

	_, err = Open(ctx, Options{Driver: DriverMySQL, DSN: "no-slash"})
	require.Error(t, err)

	_, err = Open(ctx, Options{Driver: "redis"})
	require.ErrorIs(t, err, ErrUnknownDriver)
}
