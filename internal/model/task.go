package model

import (
	"errors"
	"fmt"
	"strings"
)

const (
	// FieldDelimiter separates the name and completion flag in the flat task file.
	FieldDelimiter = ";;"

	// MaxNameBytes caps a trimmed task name.
	MaxNameBytes = 4096
)

var (
	ErrValidation = errors.New("model: validation failed")
	ErrNotFound   = errors.New("model: task not found")

	ErrEmptyName        = fmt.Errorf("%w: task name is required", ErrValidation)
	ErrReservedSequence = fmt.Errorf("%w: task name contains a reserved sequence", ErrValidation)
	ErrNameTooLong      = fmt.Errorf("%w: task name is too long", ErrValidation)
)

type Task struct {
	Name      string
	Completed bool
}

// String is the row text shown in the task list.
func (t Task) String() string {
	if t.Completed {
		return t.Name + " (Completed)"
	}
	return t.Name
}

// ValidateName returns the trimmed name, or an error wrapping ErrValidation
// when the name is blank or could not survive a round trip through the task
// file.
func ValidateName(name string) (string, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return "", ErrEmptyName
	}
	if len(trimmed) > MaxNameBytes {
		return "", fmt.Errorf("%w: %d bytes, limit %d", ErrNameTooLong, len(trimmed), MaxNameBytes)
	}
	if strings.Contains(trimmed, FieldDelimiter) {
		return "", fmt.Errorf("%w: %q", ErrReservedSequence, FieldDelimiter)
	}
	if strings.ContainsAny(trimmed, "\r\n") {
		return "", fmt.Errorf("%w: line break", ErrReservedSequence)
	}
	return trimmed, nil
}
