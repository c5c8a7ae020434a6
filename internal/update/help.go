package update

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/sandeepkv93/tasklist/internal/views"
)

type helpKeyMap struct {
	short []key.Binding
	full  [][]key.Binding
}

func (k helpKeyMap) ShortHelp() []key.Binding  { return k.short }
func (k helpKeyMap) FullHelp() [][]key.Binding { return k.full }

func (m Model) renderHelpIfVisible() string {
	if !m.HelpVisible {
		return ""
	}
	return m.renderHelpView()
}

func (m Model) renderHelpView() string {
	bindings := m.helpBindings()
	plain := make([]string, 0, len(bindings))
	for _, b := range bindings {
		plain = append(plain, fmt.Sprintf("%s: %s", b.Help().Key, b.Help().Desc))
	}
	return views.RenderHelpPanel(views.HelpPanelData{
		Filter:   string(m.Filter),
		Bindings: plain,
		HelpView: m.helpModel.View(helpKeyMap{
			short: bindings,
			full:  [][]key.Binding{bindings},
		}),
	}, m.Theme)
}

func binding(keys, desc string) key.Binding {
	return key.NewBinding(key.WithKeys(keys), key.WithHelp(keys, desc))
}

func (m Model) helpBindings() []key.Binding {
	return []key.Binding{
		binding("enter", "add task (or save rename)"),
		binding("esc", "leave the input / cancel rename"),
		binding("j/k", "move selection"),
		binding(m.Keys.Edit, "rename selected task"),
		binding(m.Keys.Delete, "delete selected task"),
		binding(m.Keys.Complete, "mark selected task completed"),
		binding(m.Keys.ViewAll, "view all tasks"),
		binding(m.Keys.ViewCompleted, "view completed tasks"),
		binding(m.Keys.ViewPending, "view pending tasks"),
		binding(m.Keys.Theme, "change theme"),
		binding(m.Keys.Palette, "open command palette"),
		binding(m.Keys.Help, "toggle help panel"),
		binding(m.Keys.Quit, "quit"),
	}
}
