package model

import (
	"fmt"
	"strings"
)

var ErrInvalidFilter = fmt.Errorf("%w: unknown filter", ErrValidation)

type Predicate func(Task) bool

func All(Task) bool { return true }

func CompletedOnly(t Task) bool { return t.Completed }

func PendingOnly(t Task) bool { return !t.Completed }

type Filter string

const (
	FilterAll       Filter = "all"
	FilterCompleted Filter = "completed"
	FilterPending   Filter = "pending"
)

func (f Filter) IsValid() bool {
	switch f {
	case FilterAll, FilterCompleted, FilterPending:
		return true
	default:
		return false
	}
}

func (f Filter) Predicate() Predicate {
	switch f {
	case FilterCompleted:
		return CompletedOnly
	case FilterPending:
		return PendingOnly
	default:
		return All
	}
}

func ParseFilter(raw string) (Filter, error) {
	f := Filter(strings.ToLower(strings.TrimSpace(raw)))
	if !f.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidFilter, raw)
	}
	return f, nil
}
