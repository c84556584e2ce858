// Package tui is the interactive host for the task list. Every message
// Bubble Tea delivers is one frame: Update mutates the list, View renders it.
package tui

import (
	"context"
	"errors"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"tasklist/internal/output"
	"tasklist/internal/tasks"
)

type focus int

const (
	focusInput focus = iota
	focusList
)

const helpLine = "tab switch focus • enter add • space/x toggle • ↑/↓ move • esc quit"

// Model renders and edits a task list owned by the caller.
type Model struct {
	list   *tasks.List
	input  textinput.Model
	focus  focus
	cursor int // display row, newest first
	status string
}

// New returns a model with the name input focused.
func New(list *tasks.List) Model {
	ti := textinput.New()
	ti.Placeholder = "Task name"
	ti.Prompt = "Task Name: "
	ti.CharLimit = 0
	ti.Width = 40
	ti.Focus()

	return Model{list: list, input: ti, focus: focusInput}
}

// Run starts the program on the terminal and blocks until the user quits.
// The list is not saved here; the caller closes the session afterwards.
func Run(ctx context.Context, list *tasks.List, out io.Writer) error {
	program := tea.NewProgram(New(list), tea.WithContext(ctx), tea.WithOutput(out))
	_, err := program.Run()
	if err != nil && errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		if msg.Width > 20 {
			m.input.Width = msg.Width - 20
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC, tea.KeyEsc:
		return m, tea.Quit
	case tea.KeyTab, tea.KeyShiftTab:
		return m.switchFocus(), nil
	}

	if m.focus == focusInput {
		return m.updateInput(msg)
	}
	return m.updateList(msg)
}

func (m Model) switchFocus() Model {
	if m.focus == focusInput {
		m.focus = focusList
		m.input.Blur()
	} else {
		m.focus = focusInput
		m.input.Focus()
	}
	m.cursor = clampCursor(m.cursor, m.list.Len())
	return m
}

func (m Model) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyEnter {
		// Empty names are ignored and the buffer is kept as typed.
		if err := m.list.Add(m.input.Value()); err != nil {
			return m, nil
		}
		m.input.Reset()
		m.cursor = 0
		m.status = ""
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	n := m.list.Len()
	switch {
	case msg.Type == tea.KeyUp || msg.String() == "k":
		m.cursor = clampCursor(m.cursor-1, n)
	case msg.Type == tea.KeyDown || msg.String() == "j":
		m.cursor = clampCursor(m.cursor+1, n)
	case msg.Type == tea.KeySpace || msg.Type == tea.KeyEnter || msg.String() == " " || msg.String() == "x":
		if n == 0 {
			return m, nil
		}
		m.cursor = clampCursor(m.cursor, n)
		if err := m.list.Toggle(output.StorageIndex(m.cursor, n)); err != nil {
			m.status = err.Error()
		}
	case msg.String() == "q":
		return m, tea.Quit
	}
	return m, nil
}

func (m Model) View() string {
	var b strings.Builder
	ts := m.list.Tasks()

	b.WriteString(output.Heading(len(ts)))
	b.WriteString("\n\n")
	b.WriteString(m.input.View())
	b.WriteString("\n\n")

	cursor := clampCursor(m.cursor, len(ts))
	for i := range ts {
		idx := output.StorageIndex(i, len(ts))
		marker := " "
		if m.focus == focusList && i == cursor {
			marker = ">"
		}
		b.WriteString(marker)
		b.WriteString(output.TaskLine(idx, ts[idx]))
		b.WriteString("\n")
	}

	b.WriteString(output.Separator)
	b.WriteString("\n")
	b.WriteString(output.Footer)
	b.WriteString("\n")
	if m.status != "" {
		b.WriteString(m.status)
		b.WriteString("\n")
	}
	b.WriteString(helpLine)
	b.WriteString("\n")
	return b.String()
}

func clampCursor(cursor, length int) int {
	if length == 0 || cursor < 0 {
		return 0
	}
	if cursor >= length {
		return length - 1
	}
	return cursor
}
