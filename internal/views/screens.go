package views

import (
	"fmt"
	"strings"

	"github.com/sandeepkv93/tasklist/internal/model"
)

type TaskRowData struct {
	Position int
	Task     model.Task
	Selected bool
}

type TaskPanelData struct {
	Filter string
	Rows   []TaskRowData
}

type HelpPanelData struct {
	Filter   string
	Bindings []string
	HelpView string
}

func RenderTaskPanel(data TaskPanelData, theme Theme) string {
	st := theme.styles()
	var b strings.Builder
	b.WriteString(fmt.Sprintf("tasks (%s):\n", data.Filter))
	if len(data.Rows) == 0 {
		b.WriteString("  (no tasks)")
		return b.String()
	}
	for _, row := range data.Rows {
		cursor := " "
		if row.Selected {
			cursor = ">"
		}
		check := "[ ]"
		if row.Task.Completed {
			check = "[x]"
		}
		line := fmt.Sprintf("%s %s %d. %s", cursor, check, row.Position, row.Task)
		switch {
		case row.Selected:
			line = st.selected.Render(line)
		case row.Task.Completed:
			line = st.done.Render(line)
		default:
			line = st.row.Render(line)
		}
		b.WriteString(line + "\n")
	}
	return strings.TrimSuffix(b.String(), "\n")
}

func RenderCommandPalette(active bool, input string) string {
	if !active {
		return ""
	}
	return fmt.Sprintf("command: /%s", input)
}

// HelpMarkdown builds the markdown source for the help panel.
func HelpMarkdown(data HelpPanelData) string {
	var b strings.Builder
	b.WriteString("## Keys\n\n")
	for _, kb := range data.Bindings {
		b.WriteString("- " + kb + "\n")
	}
	b.WriteString("\n## Commands\n\n")
	b.WriteString("- `/add <name>`\n- `/rename <name>`\n- `/delete`\n- `/complete`\n")
	b.WriteString("- `/show all|completed|pending`\n- `/theme " + strings.Join(ThemeNames(), "|") + "`\n")
	return b.String()
}

func RenderHelpPanel(data HelpPanelData, theme Theme) string {
	return fmt.Sprintf("help (%s view):\n%s\n%s",
		strings.ToLower(data.Filter),
		RenderMarkdown(HelpMarkdown(data), theme.Markdown),
		data.HelpView,
	)
}
