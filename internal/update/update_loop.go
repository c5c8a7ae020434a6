package update

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/tasklist/internal/model"
	"github.com/sandeepkv93/tasklist/internal/views"
)

const statusTTL = 5 * time.Second

func (m Model) Init() tea.Cmd {
	if m.InputFocused {
		return textinput.Blink
	}
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch typed := msg.(type) {
	case tea.KeyMsg:
		seq := m.statusSeq
		next, cmd := m.handleKey(typed)
		if next.statusSeq != seq && !next.Status.IsError && !next.Quitting {
			cmd = tea.Batch(cmd, clearStatusAfter(next.statusSeq))
		}
		return next, cmd
	case ClearStatusMsg:
		if typed.Seq == m.statusSeq {
			m.Status = StatusBar{}
		}
		return m, nil
	}
	return m, nil
}

// clearStatusAfter schedules the removal of an informational status. Errors
// stay until the next action replaces them.
func clearStatusAfter(seq int) tea.Cmd {
	return tea.Tick(statusTTL, func(time.Time) tea.Msg {
		return ClearStatusMsg{Seq: seq}
	})
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		m.Quitting = true
		return m, tea.Quit
	}
	if m.Palette.Active {
		return m.handlePaletteKey(msg)
	}
	if m.InputFocused {
		return m.handleInputKey(msg)
	}
	return m.handleListKey(msg)
}

func (m Model) handleInputKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		value := m.taskInput.Value()
		if m.Edit.Active {
			text, err := m.renameTask(m.Edit.Index, value)
			if err == nil {
				m.cancelEdit()
			}
			m.report(text, err)
			return m, nil
		}
		text, err := m.addTask(value)
		if err == nil {
			m.taskInput.SetValue("")
		}
		m.report(text, err)
		return m, nil
	case "esc", "tab":
		if m.Edit.Active {
			m.cancelEdit()
			m.setInfo("rename cancelled")
		}
		m.InputFocused = false
		m.taskInput.Blur()
		return m, nil
	case "up":
		m.moveCursor(-1)
		return m, nil
	case "down":
		m.moveCursor(1)
		return m, nil
	case m.Keys.Palette:
		if m.taskInput.Value() == "" && !m.Edit.Active {
			cmd := m.openPalette()
			return m, cmd
		}
	}
	var cmd tea.Cmd
	m.taskInput, cmd = m.taskInput.Update(msg)
	return m, cmd
}

func (m Model) handleListKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		m.moveCursor(-1)
	case "down", "j":
		m.moveCursor(1)
	case "enter", "tab", "a", "i":
		m.InputFocused = true
		cmd := m.taskInput.Focus()
		return m, cmd
	case m.Keys.Edit:
		text, err := m.beginEdit()
		m.report(text, err)
		if err == nil {
			cmd := m.taskInput.Focus()
			return m, cmd
		}
	case m.Keys.Delete:
		m.report(m.deleteSelected())
	case m.Keys.Complete, "x":
		m.report(m.completeSelected())
	case m.Keys.ViewAll:
		m.report(m.showFilter(model.FilterAll))
	case m.Keys.ViewCompleted:
		m.report(m.showFilter(model.FilterCompleted))
	case m.Keys.ViewPending:
		m.report(m.showFilter(model.FilterPending))
	case m.Keys.Theme:
		m.report(m.applyTheme(views.NextTheme(m.Theme).Name))
	case m.Keys.Palette:
		cmd := m.openPalette()
		return m, cmd
	case m.Keys.Help:
		m.HelpVisible = !m.HelpVisible
		if m.HelpVisible {
			m.setInfo("help shown")
		} else {
			m.setInfo("help hidden")
		}
	case m.Keys.Quit:
		m.Quitting = true
		return m, tea.Quit
	}
	return m, nil
}

func (m *Model) moveCursor(delta int) {
	next := m.Cursor + delta
	if next < 0 || next >= len(m.Rows) {
		return
	}
	m.Cursor = next
}

func (m *Model) applyTheme(name string) (string, error) {
	th, err := views.ThemeByName(name)
	if err != nil {
		return "", fail("Unknown theme!", err)
	}
	m.Theme = th
	return fmt.Sprintf("theme: %s", th.Name), nil
}

func (m Model) View() string {
	status := ""
	if m.Status.Text != "" {
		if m.Status.IsError {
			status = fmt.Sprintf("status: error: %s", m.Status.Text)
		} else {
			status = fmt.Sprintf("status: %s", m.Status.Text)
		}
	}

	rows := make([]views.TaskRowData, 0, len(m.Rows))
	for i, entry := range m.Rows {
		rows = append(rows, views.TaskRowData{
			Position: entry.Index + 1,
			Task:     entry.Task,
			Selected: i == m.Cursor && !m.Palette.Active,
		})
	}

	mode := "list"
	if m.InputFocused {
		mode = "input"
	}
	footer := fmt.Sprintf("mode: %s | keys: enter add | %s rename | %s delete | %s complete | %s/%s/%s all/completed/pending | %s theme | %s cmd | %s help | %s quit",
		mode, m.Keys.Edit, m.Keys.Delete, m.Keys.Complete,
		m.Keys.ViewAll, m.Keys.ViewCompleted, m.Keys.ViewPending,
		m.Keys.Theme, m.Keys.Palette, m.Keys.Help, m.Keys.Quit)

	return views.RenderApp(views.AppData{
		Header:        fmt.Sprintf("tasklist | view: %s | shown: %d/%d | theme: %s", m.Filter, len(m.Rows), m.Tasks.Len(), m.Theme.Name),
		InputView:     m.taskInput.View(),
		TaskPanel:     views.RenderTaskPanel(views.TaskPanelData{Filter: string(m.Filter), Rows: rows}, m.Theme),
		SidePanel:     m.renderCommandPalette() + m.renderHelpIfVisible(),
		Actions:       []string{"Add", "Update", "Delete", "Complete", "View All", "View Completed", "View Pending", "Change Theme"},
		StatusLine:    status,
		StatusIsError: m.Status.IsError,
		Footer:        footer,
	}, m.Theme)
}
