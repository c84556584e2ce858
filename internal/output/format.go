// Package output provides formatters shared by the CLI and the TUI.
package output

import (
	"fmt"
	"io"
	"strings"

	"tasklist/internal/tasks"
)

const (
	// Footer is printed below every rendered list.
	Footer = "Completed tasks delete upon closing."

	// Separator is the line between the list and the footer.
	Separator = "------------"
)

// StorageIndex maps a display row (newest first) to the storage position.
// Recompute it on every render; positions shift after add and prune.
func StorageIndex(displayIndex, length int) int {
	return length - 1 - displayIndex
}

// Heading returns the list heading with the task count.
func Heading(count int) string {
	return fmt.Sprintf("Tasklist - %d task(s)", count)
}

// Checkbox renders the completion state.
func Checkbox(completed bool) string {
	if completed {
		return "[x]"
	}
	return "[ ]"
}

// TaskLine formats a task line.
// Format: "{N:>4}  [x] {NAME}" where N is the 1-based storage position.
func TaskLine(storageIndex int, task tasks.Task) string {
	return fmt.Sprintf("%4d  %s %s", storageIndex+1, Checkbox(task.Completed), normalizeName(task.Name))
}

// FormatTask writes TaskLine followed by a newline.
func FormatTask(w io.Writer, storageIndex int, task tasks.Task) {
	fmt.Fprintln(w, TaskLine(storageIndex, task))
}

// FormatList writes the heading, the tasks newest first, and the footer.
func FormatList(w io.Writer, ts []tasks.Task) {
	fmt.Fprintln(w, Heading(len(ts)))
	for i := range ts {
		idx := StorageIndex(i, len(ts))
		FormatTask(w, idx, ts[idx])
	}
	fmt.Fprintln(w, Separator)
	fmt.Fprintln(w, Footer)
}

// normalizeName replaces newlines with spaces so each task stays on one line.
func normalizeName(name string) string {
	name = strings.ReplaceAll(name, "\r", " ")
	return strings.ReplaceAll(name, "\n", " ")
}
