// Package tasks holds the in-memory task list and its two state transitions.
package tasks

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

// ErrEmptyName is returned by Add when the name is empty or whitespace only.
var ErrEmptyName = errors.New("name required")

// ErrIndexOutOfRange is returned by Toggle for a position outside the list.
var ErrIndexOutOfRange = errors.New("task number out of range")

// Task is a single named, completable unit of work.
type Task struct {
	Name      string
	Completed bool
}

// List is the ordered task sequence. Newest tasks are appended at the end.
// A List is owned by a single session and is not safe for concurrent use.
type List struct {
	items []Task
}

// NewList adopts tasks as the initial sequence.
func NewList(tasks []Task) *List {
	items := make([]Task, len(tasks))
	copy(items, tasks)
	return &List{items: items}
}

// Add appends an incomplete task. The name is stored verbatim, except that
// invalid UTF-8 sequences are replaced with U+FFFD so it persists unchanged.
func (l *List) Add(name string) error {
	if IsBlank(name) {
		return ErrEmptyName
	}
	l.items = append(l.items, Task{Name: strings.ToValidUTF8(name, string(utf8.RuneError))})
	return nil
}

// IsBlank reports whether name is empty or whitespace only.
func IsBlank(name string) bool {
	return strings.TrimSpace(name) == ""
}

// Toggle flips the completed flag of the task at storage position index.
func (l *List) Toggle(index int) error {
	if index < 0 || index >= len(l.items) {
		return fmt.Errorf("%w: %d (have %d)", ErrIndexOutOfRange, index, len(l.items))
	}
	l.items[index].Completed = !l.items[index].Completed
	return nil
}

// Tasks returns a copy of the tasks in storage order.
func (l *List) Tasks() []Task {
	out := make([]Task, len(l.items))
	copy(out, l.items)
	return out
}

// Len returns the number of tasks.
func (l *List) Len() int { return len(l.items) }

// PruneCompleted removes every completed task, keeping the order of the rest.
// Returns the number of tasks removed.
func (l *List) PruneCompleted() int {
	kept := l.items[:0]
	for _, t := range l.items {
		if !t.Completed {
			kept = append(kept, t)
		}
	}
	removed := len(l.items) - len(kept)
	// Clear the tail so pruned names are not retained by the backing array.
	for i := len(kept); i < len(l.items); i++ {
		l.items[i] = Task{}
	}
	l.items = kept
	return removed
}
