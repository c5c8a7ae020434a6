package views

import (
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
)

type AppData struct {
	Header        string
	InputView     string
	TaskPanel     string
	SidePanel     string
	Actions       []string
	StatusLine    string
	StatusIsError bool
	Footer        string
}

const panelWidth = 58

func RenderApp(data AppData, theme Theme) string {
	st := theme.styles()

	main := st.panel.Width(panelWidth).Render(strings.TrimSpace(st.input.Render(data.InputView) + "\n\n" + data.TaskPanel))
	row := main
	if strings.TrimSpace(data.SidePanel) != "" {
		side := st.panel.Width(panelWidth).Render(data.SidePanel)
		row = lipgloss.JoinHorizontal(lipgloss.Top, main, side)
	}

	lines := []string{
		st.header.Render(data.Header),
		row,
	}
	if len(data.Actions) > 0 {
		buttons := make([]string, 0, len(data.Actions))
		for _, a := range data.Actions {
			buttons = append(buttons, st.button.Render(a))
		}
		lines = append(lines, strings.Join(buttons, " "))
	}
	if data.StatusLine != "" {
		if data.StatusIsError {
			lines = append(lines, st.errorMsg.Render(data.StatusLine))
		} else {
			lines = append(lines, st.status.Render(data.StatusLine))
		}
	}
	if data.Footer != "" {
		lines = append(lines, st.footer.Render(data.Footer))
	}
	return strings.Join(lines, "\n")
}

// RenderMarkdown renders md with the given glamour style, falling back to
// the raw text when rendering fails.
func RenderMarkdown(md string, style string) string {
	if strings.TrimSpace(md) == "" {
		return ""
	}
	if style == "" {
		style = "dark"
	}
	out, err := glamour.Render(md, style)
	if err != nil {
		return md
	}
	return strings.TrimSpace(out)
}
