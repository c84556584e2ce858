// Package persist loads the task list at startup and saves it at shutdown.
//
// Both directions fail open: a missing, unreadable or unreachable store
// yields an empty list on load and a skipped write on save. Failures are
// logged, never returned.
package persist

import (
	"context"
	"encoding/json"

	"go.uber.org/zap"

	"tasklist/internal/kv"
	"tasklist/internal/tasks"
)

// Key is the single entry the task list is stored under.
const Key = "tasks_stored"

// Load reads the stored task sequence. store may be nil.
func Load(ctx context.Context, store kv.Store, logger *zap.Logger) []tasks.Task {
	logger = orNop(logger)
	if store == nil {
		logger.Debug("no storage; starting with an empty list")
		return []tasks.Task{}
	}

	data, ok, err := store.Get(ctx, Key)
	if err != nil {
		logger.Warn("load failed; starting with an empty list", zap.String("key", Key), zap.Error(err))
		return []tasks.Task{}
	}
	if !ok {
		logger.Debug("no stored tasks", zap.String("key", Key))
		return []tasks.Task{}
	}

	loaded, err := Decode(data)
	if err != nil {
		logger.Warn("stored tasks unreadable; starting with an empty list", zap.String("key", Key), zap.Error(err))
		return []tasks.Task{}
	}
	logger.Debug("tasks loaded", zap.Int("count", len(loaded)))
	return loaded
}

// Save prunes completed tasks from list and writes the remainder. store may be nil.
func Save(ctx context.Context, store kv.Store, list *tasks.List, logger *zap.Logger) {
	logger = orNop(logger)
	removed := list.PruneCompleted()
	if store == nil {
		logger.Debug("no storage; save skipped", zap.Int("pruned", removed))
		return
	}

	data, err := Encode(list.Tasks())
	if err != nil {
		logger.Warn("encode failed; save skipped", zap.Error(err))
		return
	}
	if err := store.Set(ctx, Key, data); err != nil {
		logger.Warn("save failed", zap.String("key", Key), zap.Error(err))
		return
	}
	logger.Debug("tasks saved", zap.Int("count", list.Len()), zap.Int("pruned", removed))
}

// record is the stored shape. A missing completed field decodes as false.
type record struct {
	Name      string `json:"name"`
	Completed bool   `json:"completed"`
}

// Encode serializes tasks as an ordered JSON array of {name, completed}.
func Encode(ts []tasks.Task) ([]byte, error) {
	records := make([]record, len(ts))
	for i, t := range ts {
		records[i] = record{Name: t.Name, Completed: t.Completed}
	}
	return json.Marshal(records)
}

// Decode parses an Encode payload. Records with a blank name are dropped.
func Decode(data []byte) ([]tasks.Task, error) {
	var records []record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, err
	}
	out := make([]tasks.Task, 0, len(records))
	for _, r := range records {
		if tasks.IsBlank(r.Name) {
			continue
		}
		out = append(out, tasks.Task{Name: r.Name, Completed: r.Completed})
	}
	return out, nil
}

func orNop(logger *zap.Logger) *zap.Logger {
	if logger == nil {
		return zap.NewNop()
	}
	return logger
}
