package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Theme holds the colour choices for one render pass. It is a plain value:
// switching themes means passing a different Theme, never mutating styles
// shared between widgets.
type Theme struct {
	Name       string
	Background lipgloss.Color
	Foreground lipgloss.Color
	Button     lipgloss.Color
	Selection  lipgloss.Color
	Input      lipgloss.Color
	// Markdown is the glamour style used for the help panel.
	Markdown string
}

var (
	ThemeDark = Theme{
		Name:       "dark",
		Background: lipgloss.Color("#404040"),
		Foreground: lipgloss.Color("#FFFFFF"),
		Button:     lipgloss.Color("#4B6EAF"),
		Selection:  lipgloss.Color("#4B6EAF"),
		Input:      lipgloss.Color("#2B2B2B"),
		Markdown:   "dark",
	}
	ThemeLight = Theme{
		Name:       "light",
		Background: lipgloss.Color("#FFFFFF"),
		Foreground: lipgloss.Color("#000000"),
		Button:     lipgloss.Color("#FFFFFF"),
		Selection:  lipgloss.Color("#FAFAFA"),
		Input:      lipgloss.Color("#C0C0C0"),
		Markdown:   "light",
	}
	ThemeRose = Theme{
		Name:       "rose",
		Background: lipgloss.Color("#FFB6C1"),
		Foreground: lipgloss.Color("#000000"),
		Button:     lipgloss.Color("#FFC0CB"),
		Selection:  lipgloss.Color("#FF69B4"),
		Input:      lipgloss.Color("#FFF0F5"),
		Markdown:   "light",
	}
)

// Themes lists the built-in themes in picker order.
func Themes() []Theme {
	return []Theme{ThemeDark, ThemeLight, ThemeRose}
}

func ThemeNames() []string {
	out := make([]string, 0, len(Themes()))
	for _, th := range Themes() {
		out = append(out, th.Name)
	}
	return out
}

func ThemeByName(name string) (Theme, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	for _, th := range Themes() {
		if th.Name == key {
			return th, nil
		}
	}
	return Theme{}, fmt.Errorf("views: unknown theme %q (want one of %s)", name, strings.Join(ThemeNames(), ", "))
}

// NextTheme returns the theme after current in picker order, wrapping around.
func NextTheme(current Theme) Theme {
	all := Themes()
	for i, th := range all {
		if th.Name == current.Name {
			return all[(i+1)%len(all)]
		}
	}
	return all[0]
}

type styles struct {
	header   lipgloss.Style
	panel    lipgloss.Style
	input    lipgloss.Style
	row      lipgloss.Style
	selected lipgloss.Style
	done     lipgloss.Style
	button   lipgloss.Style
	status   lipgloss.Style
	errorMsg lipgloss.Style
	footer   lipgloss.Style
}

func (t Theme) styles() styles {
	return styles{
		header:   lipgloss.NewStyle().Bold(true).Foreground(t.Foreground).Background(t.Background).Padding(0, 1),
		panel:    lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(t.Selection).Padding(0, 1),
		input:    lipgloss.NewStyle().Foreground(t.Foreground).Background(t.Input),
		row:      lipgloss.NewStyle().Foreground(t.Foreground),
		selected: lipgloss.NewStyle().Bold(true).Foreground(t.Foreground).Background(t.Selection),
		done:     lipgloss.NewStyle().Faint(true).Strikethrough(true).Foreground(t.Foreground),
		button:   lipgloss.NewStyle().Foreground(t.Foreground).Background(t.Button).Padding(0, 1),
		status:   lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
		errorMsg: lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
		footer:   lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
	}
}
