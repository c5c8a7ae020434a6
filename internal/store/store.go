// Package store holds the authoritative, ordered in-memory task list.
//
// Tasks are values. Every index accepted or returned by a Store refers to the
// position in the full list, never to a position inside a filtered View.
package store

import (
	"fmt"

	"github.com/sandeepkv93/tasklist/internal/model"
)

type CompleteResult int

const (
	Completed CompleteResult = iota + 1
	AlreadyCompleted
)

func (r CompleteResult) String() string {
	switch r {
	case Completed:
		return "completed"
	case AlreadyCompleted:
		return "already_completed"
	default:
		return "unknown"
	}
}

// Entry is one row of a View: a copy of the task and its index in the store.
type Entry struct {
	Index int
	Task  model.Task
}

// View is a point-in-time snapshot; later store mutations do not affect it.
type View []Entry

func (v View) Tasks() []model.Task {
	out := make([]model.Task, 0, len(v))
	for _, e := range v {
		out = append(out, e.Task)
	}
	return out
}

type Store struct {
	tasks []model.Task
}

func New(tasks []model.Task) *Store {
	s := &Store{tasks: make([]model.Task, 0, len(tasks))}
	s.tasks = append(s.tasks, tasks...)
	return s
}

func (s *Store) Len() int {
	return len(s.tasks)
}

func (s *Store) At(index int) (model.Task, error) {
	if err := s.checkIndex(index); err != nil {
		return model.Task{}, err
	}
	return s.tasks[index], nil
}

// Tasks returns a copy of the full ordered list.
func (s *Store) Tasks() []model.Task {
	out := make([]model.Task, len(s.tasks))
	copy(out, s.tasks)
	return out
}

func (s *Store) Add(name string) error {
	trimmed, err := model.ValidateName(name)
	if err != nil {
		return err
	}
	s.tasks = append(s.tasks, model.Task{Name: trimmed})
	return nil
}

func (s *Store) Update(index int, newName string) error {
	if err := s.checkIndex(index); err != nil {
		return err
	}
	trimmed, err := model.ValidateName(newName)
	if err != nil {
		return err
	}
	s.tasks[index] = model.Task{Name: trimmed, Completed: s.tasks[index].Completed}
	return nil
}

func (s *Store) Delete(index int) error {
	if err := s.checkIndex(index); err != nil {
		return err
	}
	s.tasks = append(s.tasks[:index], s.tasks[index+1:]...)
	return nil
}

func (s *Store) Complete(index int) (CompleteResult, error) {
	if err := s.checkIndex(index); err != nil {
		return 0, err
	}
	if s.tasks[index].Completed {
		return AlreadyCompleted, nil
	}
	s.tasks[index].Completed = true
	return Completed, nil
}

func (s *Store) Filter(pred model.Predicate) View {
	if pred == nil {
		pred = model.All
	}
	out := make(View, 0, len(s.tasks))
	for i, t := range s.tasks {
		if pred(t) {
			out = append(out, Entry{Index: i, Task: t})
		}
	}
	return out
}

func (s *Store) checkIndex(index int) error {
	if index < 0 || index >= len(s.tasks) {
		return fmt.Errorf("%w: index %d out of range [0,%d)", model.ErrNotFound, index, len(s.tasks))
	}
	return nil
}
