package tasks_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"tasklist/internal/tasks"
)

func TestAdd_AppendsIncompleteTask(t *testing.T) {
	l := tasks.NewList(nil)

	require.NoError(t, l.Add("Buy milk"))

	require.Equal(t, []tasks.Task{{Name: "Buy milk", Completed: false}}, l.Tasks())
}

func TestAdd_AppendsAtEnd(t *testing.T) {
	l := tasks.NewList([]tasks.Task{{Name: "a"}, {Name: "b", Completed: true}})

	require.NoError(t, l.Add("c"))

	got := l.Tasks()
	require.Len(t, got, 3)
	require.Equal(t, tasks.Task{Name: "c"}, got[2])
	require.Equal(t, tasks.Task{Name: "b", Completed: true}, got[1])
}

func TestAdd_KeepsNameVerbatim(t *testing.T) {
	l := tasks.NewList(nil)

	require.NoError(t, l.Add("  padded "))

	require.Equal(t, "  padded ", l.Tasks()[0].Name)
}

func TestAdd_ReplacesInvalidUTF8(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  string
	}{
		{"latin1 byte", "caf\xe9", "caf\uFFFD"},
		{"truncated sequence", "ok \xe2\x9c", "ok \uFFFD"},
		{"valid unchanged", "café ✓", "café ✓"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			l := tasks.NewList(nil)

			require.NoError(t, l.Add(tc.input))

			require.Equal(t, tc.want, l.Tasks()[0].Name)
		})
	}
}

func TestAdd_DuplicateNamesAllowed(t *testing.T) {
	l := tasks.NewList(nil)

	require.NoError(t, l.Add("same"))
	require.NoError(t, l.Add("same"))

	require.Equal(t, 2, l.Len())
}

func TestAdd_RejectsEmpty(t *testing.T) {
	cases := []struct {
		name  string
		input string
	}{
		{"empty", ""},
		{"spaces", "   "},
		{"newline", "\n\t"},
		{"non-breaking space", "\u00a0"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			l := tasks.NewList([]tasks.Task{{Name: "keep", Completed: true}})
			before := l.Tasks()

			err := l.Add(tc.input)

			require.ErrorIs(t, err, tasks.ErrEmptyName)
			require.Equal(t, before, l.Tasks())
		})
	}
}

func TestToggle_FlipsOnlyTarget(t *testing.T) {
	l := tasks.NewList([]tasks.Task{{Name: "Buy milk"}, {Name: "Walk dog"}})

	require.NoError(t, l.Toggle(0))
	require.Equal(t, []tasks.Task{{Name: "Buy milk", Completed: true}, {Name: "Walk dog"}}, l.Tasks())

	require.NoError(t, l.Toggle(0))
	require.Equal(t, []tasks.Task{{Name: "Buy milk"}, {Name: "Walk dog"}}, l.Tasks())
}

func TestToggle_OutOfRange(t *testing.T) {
	l := tasks.NewList([]tasks.Task{{Name: "only"}})

	for _, idx := range []int{-1, 1, 5} {
		err := l.Toggle(idx)
		if !errors.Is(err, tasks.ErrIndexOutOfRange) {
			t.Errorf("Toggle(%d): expected ErrIndexOutOfRange, got %v", idx, err)
		}
	}
	require.Equal(t, []tasks.Task{{Name: "only"}}, l.Tasks())
}

func TestTasks_ReturnsCopy(t *testing.T) {
	l := tasks.NewList([]tasks.Task{{Name: "a"}})

	view := l.Tasks()
	view[0].Completed = true

	require.False(t, l.Tasks()[0].Completed)
}

func TestNewList_CopiesInput(t *testing.T) {
	in := []tasks.Task{{Name: "a"}}
	l := tasks.NewList(in)

	in[0].Name = "changed"

	require.Equal(t, "a", l.Tasks()[0].Name)
}

func TestPruneCompleted(t *testing.T) {
	l := tasks.NewList([]tasks.Task{
		{Name: "a", Completed: true},
		{Name: "b"},
		{Name: "c", Completed: true},
		{Name: "d"},
		{Name: "e"},
	})

	removed := l.PruneCompleted()

	require.Equal(t, 2, removed)
	want := []tasks.Task{{Name: "b"}, {Name: "d"}, {Name: "e"}}
	require.Equal(t, want, l.Tasks())

	// Second prune is a no-op.
	require.Equal(t, 0, l.PruneCompleted())
	require.Equal(t, want, l.Tasks())
}

func TestPruneCompleted_AllCompletedLeavesEmpty(t *testing.T) {
	l := tasks.NewList([]tasks.Task{{Name: "a", Completed: true}, {Name: "b", Completed: true}})

	require.Equal(t, 2, l.PruneCompleted())
	require.Equal(t, 0, l.Len())
	require.Empty(t, l.Tasks())

	require.NoError(t, l.Add("next"))
	require.Equal(t, []tasks.Task{{Name: "next"}}, l.Tasks())
}
