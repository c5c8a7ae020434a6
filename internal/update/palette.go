package update

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/tasklist/internal/commands"
	"github.com/sandeepkv93/tasklist/internal/model"
	"github.com/sandeepkv93/tasklist/internal/views"
)

func (m *Model) openPalette() tea.Cmd {
	m.Palette.Active = true
	m.Palette.Input = ""
	m.commandInput.SetValue("")
	m.setInfo("command palette active")
	return m.commandInput.Focus()
}

func (m *Model) closePalette() {
	m.Palette.Active = false
	m.Palette.Input = ""
	m.commandInput.SetValue("")
	m.commandInput.Blur()
}

func (m Model) handlePaletteKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.closePalette()
		m.setInfo("command palette closed")
		return m, nil
	case "enter":
		m.Palette.Input = m.commandInput.Value()
		return m.executePaletteCommand(), nil
	}
	if msg.Type == tea.KeyRunes {
		m.commandInput.SetValue(m.commandInput.Value() + string(msg.Runes))
		m.Palette.Input = m.commandInput.Value()
		return m, nil
	}
	var cmd tea.Cmd
	m.commandInput, cmd = m.commandInput.Update(msg)
	m.Palette.Input = m.commandInput.Value()
	return m, cmd
}

// executePaletteCommand runs the parsed command and shows its result, or
// its error, in the status bar.
func (m Model) executePaletteCommand() Model {
	raw := strings.TrimSpace(m.Palette.Input)
	m.closePalette()

	cmd, err := commands.Parse(raw)
	if err != nil {
		m.reportError(err)
		return m
	}

	res, err := commands.Execute(cmd, commands.Handlers{
		Add: func(a commands.AddArgs) (commands.Result, error) {
			msg, err := m.addTask(a.Name)
			return commands.Result{Message: msg}, err
		},
		Rename: func(r commands.RenameArgs) (commands.Result, error) {
			msg, err := m.renameSelected(r.Name)
			return commands.Result{Message: msg}, err
		},
		Delete: func() (commands.Result, error) {
			msg, err := m.deleteSelected()
			return commands.Result{Message: msg}, err
		},
		Complete: func() (commands.Result, error) {
			msg, err := m.completeSelected()
			return commands.Result{Message: msg}, err
		},
		Show: func(s commands.ShowArgs) (commands.Result, error) {
			f, perr := model.ParseFilter(s.Filter)
			if perr != nil {
				return commands.Result{}, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: "show requires one of: all, completed, pending"}
			}
			msg, err := m.showFilter(f)
			return commands.Result{Message: msg}, err
		},
		Theme: func(t commands.ThemeArgs) (commands.Result, error) {
			if _, terr := views.ThemeByName(t.Name); terr != nil {
				return commands.Result{}, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: terr.Error()}
			}
			msg, err := m.applyTheme(t.Name)
			return commands.Result{Message: msg}, err
		},
	})
	m.report(res.Message, err)
	return m
}

func (m Model) renderCommandPalette() string {
	return views.RenderCommandPalette(m.Palette.Active, m.Palette.Input)
}
