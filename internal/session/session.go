// Package session owns the task list for one run of the application:
// one load when it opens, one save when it closes.
package session

import (
	"context"

	"go.uber.org/zap"

	"tasklist/internal/kv"
	"tasklist/internal/persist"
	"tasklist/internal/tasks"
)

// Session is the explicitly owned application state passed to every host.
type Session struct {
	list   *tasks.List
	store  kv.Store
	logger *zap.Logger
	closed bool
}

// Open loads the stored tasks. store may be nil when no durable storage is available.
func Open(ctx context.Context, store kv.Store, logger *zap.Logger) *Session {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Session{
		list:   tasks.NewList(persist.Load(ctx, store, logger)),
		store:  store,
		logger: logger,
	}
}

// Tasks returns the live task list.
func (s *Session) Tasks() *tasks.List { return s.list }

// Logger returns the session logger.
func (s *Session) Logger() *zap.Logger { return s.logger }

// HasStorage reports whether the session was opened with a store.
func (s *Session) HasStorage() bool { return s.store != nil }

// Close prunes completed tasks, saves the rest and closes the store.
// Only the first call has any effect.
func (s *Session) Close(ctx context.Context) error {
	if s.closed {
		return nil
	}
	s.closed = true
	persist.Save(ctx, s.store, s.list, s.logger)
	if s.store == nil {
		return nil
	}
	return s.store.Close()
}
