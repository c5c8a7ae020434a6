package update

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/sandeepkv93/tasklist/internal/config"
	"github.com/sandeepkv93/tasklist/internal/model"
	"github.com/sandeepkv93/tasklist/internal/storage"
	"github.com/sandeepkv93/tasklist/internal/store"
	"github.com/sandeepkv93/tasklist/internal/views"
)

type StatusBar struct {
	Text    string
	IsError bool
}

type GlobalKeyMap struct {
	ViewAll       string
	ViewCompleted string
	ViewPending   string
	Edit          string
	Delete        string
	Complete      string
	Theme         string
	Palette       string
	Help          string
	Quit          string
}

type CommandPaletteState struct {
	Active bool
	Input  string
}

// EditState tracks an in-progress rename. Index is a store index captured
// when the rename started.
type EditState struct {
	Active bool
	Index  int
}

type Model struct {
	Tasks        *store.Store
	Filter       model.Filter
	Rows         store.View
	Cursor       int
	InputFocused bool
	Edit         EditState
	Theme        views.Theme
	Palette      CommandPaletteState
	HelpVisible  bool
	Status       StatusBar
	Keys         GlobalKeyMap
	Quitting     bool
	LastError    error

	repo         storage.Repository
	statusSeq    int
	taskInput    textinput.Model
	commandInput textinput.Model
	helpModel    help.Model
}

// ClearStatusMsg clears the status bar if it still shows the status with
// the same sequence number.
type ClearStatusMsg struct {
	Seq int
}

// NewModel returns a model over an empty, unsaved task list.
func NewModel() Model {
	m := Model{
		Tasks:        store.New(nil),
		Filter:       model.FilterAll,
		InputFocused: true,
		Theme:        views.ThemeDark,
		Keys: GlobalKeyMap{
			ViewAll:       "1",
			ViewCompleted: "2",
			ViewPending:   "3",
			Edit:          "e",
			Delete:        "d",
			Complete:      "c",
			Theme:         "t",
			Palette:       "/",
			Help:          "?",
			Quit:          "q",
		},
	}
	m.initBubbleComponents()
	m.refreshRows()
	return m
}

// NewModelWithConfig loads the task list from repo. Load problems never
// prevent startup: the model starts with whatever could be read and the
// error is shown in the status bar.
func NewModelWithConfig(repo storage.Repository, cfg config.Config) Model {
	m := NewModel()
	m.repo = repo
	if th, err := views.ThemeByName(cfg.Theme); err == nil {
		m.Theme = th
	} else if cfg.Theme != "" {
		log.Printf("theme: %v; using %s", err, m.Theme.Name)
	}
	if repo == nil {
		return m
	}

	ctx, cancel := context.WithTimeout(context.Background(), storageTimeout)
	defer cancel()
	tasks, err := repo.Load(ctx)
	switch {
	case err == nil:
	case errors.Is(err, storage.ErrMalformedLine):
		bad := storage.MalformedLines(err)
		for _, le := range bad {
			log.Printf("load: %v", le)
		}
		m.setError(fmt.Errorf("skipped %d malformed line(s): %w", len(bad), err), "Error loading tasks from file!")
	default:
		log.Printf("load: %v", err)
		tasks = nil
		m.setError(err, "Error loading tasks from file!")
	}
	m.Tasks = store.New(tasks)
	m.refreshRows()
	return m
}

func (m *Model) initBubbleComponents() {
	m.taskInput = textinput.New()
	m.taskInput.Prompt = "task> "
	m.taskInput.Placeholder = "new task name"
	m.taskInput.CharLimit = 256
	m.taskInput.Width = 48
	if m.InputFocused {
		m.taskInput.Focus()
	}

	m.commandInput = textinput.New()
	m.commandInput.Prompt = "/"
	m.commandInput.CharLimit = 256
	m.commandInput.Width = 48

	m.helpModel = help.New()
}

// refreshRows recomputes the displayed snapshot from the store and keeps the
// cursor inside it.
func (m *Model) refreshRows() {
	m.Rows = m.Tasks.Filter(m.Filter.Predicate())
	if m.Cursor >= len(m.Rows) {
		m.Cursor = len(m.Rows) - 1
	}
	if m.Cursor < 0 {
		m.Cursor = 0
	}
}

// selectedIndex maps the cursor to an index into the full store.
func (m Model) selectedIndex() (int, bool) {
	if len(m.Rows) == 0 || m.Cursor < 0 || m.Cursor >= len(m.Rows) {
		return 0, false
	}
	return m.Rows[m.Cursor].Index, true
}

func (m *Model) setInfo(text string) {
	m.statusSeq++
	m.Status = StatusBar{Text: text, IsError: false}
}

func (m *Model) setError(err error, text string) {
	m.LastError = err
	if err != nil {
		text = fmt.Sprintf("%s (%v)", text, err)
	}
	m.statusSeq++
	m.Status = StatusBar{Text: text, IsError: true}
}
