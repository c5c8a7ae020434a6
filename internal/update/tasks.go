package update

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/sandeepkv93/tasklist/internal/model"
	"github.com/sandeepkv93/tasklist/internal/store"
)

// storageTimeout bounds every load and save, including the wait for another
// instance's file lock.
var storageTimeout = 2 * time.Second

// actionError is a failed user action. Text is what the status bar shows;
// Err is the underlying cause, appended to Text unless quiet is set.
type actionError struct {
	Text  string
	Err   error
	quiet bool
}

func (e *actionError) Error() string {
	if e.Err == nil || e.quiet {
		return e.Text
	}
	return fmt.Sprintf("%s (%v)", e.Text, e.Err)
}

func (e *actionError) Unwrap() error { return e.Err }

func fail(text string, err error) error {
	return &actionError{Text: text, Err: err}
}

// report shows the outcome of an action in the status bar.
func (m *Model) report(msg string, err error) {
	if err != nil {
		m.reportError(err)
		return
	}
	m.LastError = nil
	m.setInfo(msg)
}

func (m *Model) reportError(err error) {
	var ae *actionError
	if errors.As(err, &ae) {
		m.setError(nil, ae.Error())
		m.LastError = ae.Err
		return
	}
	m.setError(nil, err.Error())
	m.LastError = err
}

func (m *Model) addTask(name string) (string, error) {
	if err := m.Tasks.Add(name); err != nil {
		return "", validationError(err)
	}
	m.refreshRows()
	return m.persist("Task added successfully!")
}

func (m *Model) beginEdit() (string, error) {
	index, ok := m.selectedIndex()
	if !ok {
		return "", fail("Select a task to update!", nil)
	}
	task, err := m.Tasks.At(index)
	if err != nil {
		return "", fail("Select a task to update!", err)
	}
	m.Edit = EditState{Active: true, Index: index}
	m.InputFocused = true
	m.taskInput.Prompt = "rename> "
	m.taskInput.SetValue(task.Name)
	m.taskInput.CursorEnd()
	return fmt.Sprintf("editing %q; enter to save, esc to cancel", task.Name), nil
}

func (m *Model) cancelEdit() {
	m.Edit = EditState{}
	m.taskInput.Prompt = "task> "
	m.taskInput.SetValue("")
}

func (m *Model) renameTask(index int, name string) (string, error) {
	if err := m.Tasks.Update(index, name); err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return "", fail("Select a task to update!", err)
		}
		return "", validationError(err)
	}
	m.refreshRows()
	return m.persist("Task updated successfully!")
}

func (m *Model) renameSelected(name string) (string, error) {
	index, ok := m.selectedIndex()
	if !ok {
		return "", fail("Select a task to update!", nil)
	}
	return m.renameTask(index, name)
}

func (m *Model) deleteSelected() (string, error) {
	index, ok := m.selectedIndex()
	if !ok {
		return "", fail("Select a task to delete!", nil)
	}
	if err := m.Tasks.Delete(index); err != nil {
		return "", fail("Select a task to delete!", err)
	}
	m.refreshRows()
	return m.persist("Task deleted successfully!")
}

func (m *Model) completeSelected() (string, error) {
	index, ok := m.selectedIndex()
	if !ok {
		return "", fail("Select a task to mark as complete!", nil)
	}
	res, err := m.Tasks.Complete(index)
	if err != nil {
		return "", fail("Select a task to mark as complete!", err)
	}
	if res == store.AlreadyCompleted {
		return "Task is already marked as completed!", nil
	}
	m.refreshRows()
	return m.persist("Task marked as completed!")
}

// showFilter switches the displayed view. An empty result leaves the current
// view in place.
func (m *Model) showFilter(f model.Filter) (string, error) {
	rows := m.Tasks.Filter(f.Predicate())
	if len(rows) == 0 {
		switch f {
		case model.FilterCompleted:
			return "No completed tasks to display!", nil
		case model.FilterPending:
			return "No pending tasks to display!", nil
		default:
			return "No tasks to display!", nil
		}
	}
	m.Filter = f
	m.Rows = rows
	m.Cursor = 0
	return fmt.Sprintf("Displaying %s tasks.", f), nil
}

// persist writes the full store. A failed save keeps the in-memory change
// and reports the error instead of success.
func (m *Model) persist(success string) (string, error) {
	if m.repo == nil {
		return success, nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), storageTimeout)
	defer cancel()
	if err := m.repo.Save(ctx, m.Tasks.Tasks()); err != nil {
		log.Printf("save: %v", err)
		return "", fail("Error saving tasks to file!", err)
	}
	return success, nil
}

func validationError(err error) error {
	switch {
	case errors.Is(err, model.ErrEmptyName):
		return &actionError{Text: "Task cannot be empty!", Err: err, quiet: true}
	case errors.Is(err, model.ErrReservedSequence):
		return &actionError{Text: fmt.Sprintf("Task cannot contain %q or line breaks!", model.FieldDelimiter), Err: err, quiet: true}
	case errors.Is(err, model.ErrNameTooLong):
		return &actionError{Text: fmt.Sprintf("Task name cannot exceed %d bytes!", model.MaxNameBytes), Err: err, quiet: true}
	default:
		return fail("Invalid task!", err)
	}
}
