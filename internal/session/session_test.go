package session_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"tasklist/internal/persist"
	"tasklist/internal/session"
	"tasklist/internal/tasks"
	"tasklist/internal/testutil"
)

func TestSession_Lifecycle(t *testing.T) {
	store := testutil.NewFakeStore()
	store.Put(persist.Key, `[{"name":"Buy milk","completed":false},{"name":"Walk dog","completed":false}]`)
	ctx := context.Background()

	s := session.Open(ctx, store, nil)
	require.True(t, s.HasStorage())
	require.Equal(t, 1, store.Gets)

	require.NoError(t, s.Tasks().Toggle(0))
	require.NoError(t, s.Tasks().Add("Read book"))
	require.NoError(t, s.Close(ctx))

	require.Equal(t, 1, store.Sets)
	require.Equal(t, 1, store.Closed)
	v, _ := store.Value(persist.Key)
	require.JSONEq(t, `[{"name":"Walk dog","completed":false},{"name":"Read book","completed":false}]`, v)

	reopened := session.Open(ctx, store, nil)
	require.Equal(t, []tasks.Task{{Name: "Walk dog"}, {Name: "Read book"}}, reopened.Tasks().Tasks())
}

func TestSession_CloseTwiceSavesOnce(t *testing.T) {
	store := testutil.NewFakeStore()
	ctx := context.Background()
	s := session.Open(ctx, store, nil)

	require.NoError(t, s.Close(ctx))
	require.NoError(t, s.Close(ctx))

	require.Equal(t, 1, store.Sets)
	require.Equal(t, 1, store.Closed)
}

func TestSession_WithoutStorage(t *testing.T) {
	ctx := context.Background()
	s := session.Open(ctx, nil, nil)
	require.False(t, s.HasStorage())
	require.Equal(t, 0, s.Tasks().Len())

	require.NoError(t, s.Tasks().Add("a"))
	require.NoError(t, s.Tasks().Toggle(0))
	require.NoError(t, s.Close(ctx))
	require.Equal(t, 0, s.Tasks().Len())
}

func TestSession_UnreachableStoreFailsOpen(t *testing.T) {
	store := testutil.NewFakeStore()
	store.GetErr = errors.New("connection refused")
	store.SetErr = errors.New("connection refused")
	ctx := context.Background()

	s := session.Open(ctx, store, nil)
	require.Equal(t, 0, s.Tasks().Len())
	require.NoError(t, s.Tasks().Add("a"))
	require.NoError(t, s.Close(ctx))
}

func TestSession_CloseReturnsStoreCloseError(t *testing.T) {
	store := testutil.NewFakeStore()
	store.CloseErr = errors.New("busy")
	ctx := context.Background()

	err := session.Open(ctx, store, nil).Close(ctx)

	require.EqualError(t, err, "busy")
	require.Equal(t, 1, store.Sets)
}
