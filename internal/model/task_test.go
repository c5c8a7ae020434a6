package model

import (
	"errors"
	"strings"
	"testing"
)

func TestValidateNameTrims(t *testing.T) {
	got, err := ValidateName("  Buy milk \t")
	if err != nil {
		t.Fatalf("expected valid name, got error: %v", err)
	}
	if got != "Buy milk" {
		t.Fatalf("unexpected trimmed name: %q", got)
	}
}

func TestValidateNameRejectsBlank(t *testing.T) {
	for _, in := range []string{"", "   ", "\t\n"} {
		_, err := ValidateName(in)
		if !errors.Is(err, ErrValidation) || !errors.Is(err, ErrEmptyName) {
			t.Fatalf("ValidateName(%q): expected ErrEmptyName, got: %v", in, err)
		}
	}
}

func TestValidateNameRejectsReservedSequences(t *testing.T) {
	for _, in := range []string{"a;;b", "line\nbreak", "carriage\rreturn"} {
		_, err := ValidateName(in)
		if !errors.Is(err, ErrValidation) || !errors.Is(err, ErrReservedSequence) {
			t.Fatalf("ValidateName(%q): expected ErrReservedSequence, got: %v", in, err)
		}
	}
	if _, err := ValidateName("single ; semicolon"); err != nil {
		t.Fatalf("single semicolon should be allowed, got: %v", err)
	}
}

func TestValidateNameLength(t *testing.T) {
	atLimit := strings.Repeat("x", MaxNameBytes)
	if got, err := ValidateName("  " + atLimit + "  "); err != nil || got != atLimit {
		t.Fatalf("name at the limit should be accepted after trimming, got err: %v", err)
	}
	_, err := ValidateName(atLimit + "y")
	if !errors.Is(err, ErrValidation) || !errors.Is(err, ErrNameTooLong) {
		t.Fatalf("expected ErrNameTooLong, got: %v", err)
	}
}

func TestTaskString(t *testing.T) {
	if got := (Task{Name: "Write docs"}).String(); got != "Write docs" {
		t.Fatalf("unexpected pending string: %q", got)
	}
	if got := (Task{Name: "Write docs", Completed: true}).String(); got != "Write docs (Completed)" {
		t.Fatalf("unexpected completed string: %q", got)
	}
}

func TestParseFilter(t *testing.T) {
	cases := []struct {
		in   string
		want Filter
	}{
		{"all", FilterAll},
		{" Completed ", FilterCompleted},
		{"PENDING", FilterPending},
	}
	for _, tc := range cases {
		got, err := ParseFilter(tc.in)
		if err != nil {
			t.Fatalf("parse %q failed: %v", tc.in, err)
		}
		if got != tc.want {
			t.Fatalf("parse %q = %s, want %s", tc.in, got, tc.want)
		}
	}

	if _, err := ParseFilter("done"); !errors.Is(err, ErrInvalidFilter) {
		t.Fatalf("expected ErrInvalidFilter, got: %v", err)
	}
}

func TestFilterPredicates(t *testing.T) {
	done := Task{Name: "a", Completed: true}
	open := Task{Name: "b"}
	if !FilterAll.Predicate()(done) || !FilterAll.Predicate()(open) {
		t.Fatal("all filter should match every task")
	}
	if !FilterCompleted.Predicate()(done) || FilterCompleted.Predicate()(open) {
		t.Fatal("completed filter mismatch")
	}
	if FilterPending.Predicate()(done) || !FilterPending.Predicate()(open) {
		t.Fatal("pending filter mismatch")
	}
}
