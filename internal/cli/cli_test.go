package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sandeepkv93/tasklist/internal/update"
)

// chdir stands in for t.Chdir (Go 1.24+): restores the working directory when the test ends.
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	t.Cleanup(func() { _ = os.Chdir(prev) })
}

func run(t *testing.T, args ...string) (int, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := Execute(args, &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func tempFile(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "tasks.txt")
}

func TestAddListDoneRoundTrip(t *testing.T) {
	file := tempFile(t)

	if code, out, errOut := run(t, "--file", file, "add", "Buy", "milk"); code != 0 || !strings.Contains(out, "Task added successfully!") {
		t.Fatalf("add failed: code=%d out=%q err=%q", code, out, errOut)
	}
	if code, _, errOut := run(t, "--file", file, "add", "File taxes"); code != 0 {
		t.Fatalf("second add failed: %q", errOut)
	}
	if code, out, _ := run(t, "--file", file, "done", "2"); code != 0 || !strings.Contains(out, "Task marked as completed!") {
		t.Fatalf("done failed: code=%d out=%q", code, out)
	}
	if code, out, _ := run(t, "--file", file, "done", "2"); code != 0 || !strings.Contains(out, "already marked as completed") {
		t.Fatalf("second done: code=%d out=%q", code, out)
	}

	raw, err := os.ReadFile(file)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(raw) != "Buy milk;;false\nFile taxes;;true\n" {
		t.Fatalf("unexpected file: %q", raw)
	}

	_, out, _ := run(t, "--file", file, "list", "--pending")
	if strings.TrimSpace(out) != "1. [ ] Buy milk" {
		t.Fatalf("unexpected pending list: %q", out)
	}
	_, out, _ = run(t, "--file", file, "list", "--completed")
	if strings.TrimSpace(out) != "2. [x] File taxes" {
		t.Fatalf("unexpected completed list: %q", out)
	}
}

func TestRenameAndRemove(t *testing.T) {
	file := tempFile(t)
	if err := os.WriteFile(file, []byte("A;;true\nB;;false\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if code, _, errOut := run(t, "--file", file, "rename", "1", "Alpha"); code != 0 {
		t.Fatalf("rename failed: %q", errOut)
	}
	if code, _, errOut := run(t, "--file", file, "rm", "2"); code != 0 {
		t.Fatalf("rm failed: %q", errOut)
	}
	raw, _ := os.ReadFile(file)
	if string(raw) != "Alpha;;true\n" {
		t.Fatalf("unexpected file: %q", raw)
	}

	if code, _, _ := run(t, "--file", file, "rm", "1"); code != 0 {
		t.Fatal("removing last task failed")
	}
	_, out, _ := run(t, "--file", file, "list")
	if strings.TrimSpace(out) != "No tasks to display!" {
		t.Fatalf("unexpected list output: %q", out)
	}
}

func TestErrors(t *testing.T) {
	file := tempFile(t)
	cases := []struct {
		args []string
		want string
	}{
		{[]string{"add", "   "}, "Task cannot be empty!"},
		{[]string{"add", "a;;b"}, "reserved sequence"},
		{[]string{"done", "3"}, "no such task"},
		{[]string{"rm", "zero"}, "invalid task number"},
		{[]string{"rename", "0", "x"}, "invalid task number"},
		{[]string{"--backend", "mongo", "list"}, "unknown backend"},
		{[]string{"list", "--completed", "--pending"}, "none of the others"},
	}
	for _, tc := range cases {
		args := append([]string{"--file", file}, tc.args...)
		code, _, errOut := run(t, args...)
		if code != 1 || !strings.Contains(errOut, tc.want) {
			t.Fatalf("%v: code=%d stderr=%q, want %q", tc.args, code, errOut, tc.want)
		}
	}
}

func TestListWarnsOnMalformedLines(t *testing.T) {
	file := tempFile(t)
	if err := os.WriteFile(file, []byte("ok;;false\nbroken line\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	code, out, errOut := run(t, "--file", file, "list")
	if code != 0 {
		t.Fatalf("list failed: %q", errOut)
	}
	if strings.TrimSpace(out) != "1. [ ] ok" {
		t.Fatalf("unexpected output: %q", out)
	}
	if !strings.Contains(errOut, "line 2") {
		t.Fatalf("expected warning about line 2, got %q", errOut)
	}
}

func TestSQLiteBackend(t *testing.T) {
	db := filepath.Join(t.TempDir(), "tasks.db")
	if code, _, errOut := run(t, "--backend", "sqlite", "--file", db, "add", "From sqlite"); code != 0 {
		t.Fatalf("add failed: %q", errOut)
	}
	_, out, _ := run(t, "--backend", "sqlite", "--file", db, "list")
	if strings.TrimSpace(out) != "1. [ ] From sqlite" {
		t.Fatalf("unexpected output: %q", out)
	}
}

func TestConfigFileAndEnv(t *testing.T) {
	dir := t.TempDir()
	fromConfig := filepath.Join(dir, "config-tasks.txt")
	cfgPath := filepath.Join(dir, "tasklist.toml")
	if err := os.WriteFile(cfgPath, []byte("file = \""+filepath.ToSlash(fromConfig)+"\"\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if code, _, errOut := run(t, "--config", cfgPath, "add", "via config"); code != 0 {
		t.Fatalf("add failed: %q", errOut)
	}
	if _, err := os.Stat(fromConfig); err != nil {
		t.Fatalf("expected task file from config: %v", err)
	}

	fromEnv := filepath.Join(dir, "env-tasks.txt")
	t.Setenv("TASKLIST_FILE", fromEnv)
	if code, _, errOut := run(t, "--config", cfgPath, "add", "via env"); code != 0 {
		t.Fatalf("add failed: %q", errOut)
	}
	if _, err := os.Stat(fromEnv); err != nil {
		t.Fatalf("env should override config file: %v", err)
	}
}

func TestRootLaunchesTUI(t *testing.T) {
	file := tempFile(t)
	if err := os.WriteFile(file, []byte("A;;false\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	var got update.Model
	prev := runTUI
	runTUI = func(m update.Model) error {
		got = m
		return nil
	}
	t.Cleanup(func() { runTUI = prev })

	if code, _, errOut := run(t, "--file", file, "--theme", "rose"); code != 0 {
		t.Fatalf("root failed: %q", errOut)
	}
	if got.Tasks == nil || got.Tasks.Len() != 1 {
		t.Fatalf("expected model loaded with 1 task, got %#v", got.Tasks)
	}
	if got.Theme.Name != "rose" {
		t.Fatalf("expected rose theme, got %q", got.Theme.Name)
	}
}

func TestSQLiteBackendDefaultsToItsOwnFile(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	t.Setenv("TASKLIST_FILE", "")
	if err := os.WriteFile("tasks.txt", []byte("flat;;false\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	code, _, errOut := run(t, "--config", filepath.Join(dir, "absent.toml"), "--backend", "sqlite", "add", "In the db")
	if code != 0 {
		t.Fatalf("sqlite add without --file failed: %q", errOut)
	}
	if _, err := os.Stat(filepath.Join(dir, "tasks.db")); err != nil {
		t.Fatalf("expected tasks.db to be created: %v", err)
	}
	raw, _ := os.ReadFile("tasks.txt")
	if string(raw) != "flat;;false\n" {
		t.Fatalf("flat file should be untouched, got %q", raw)
	}
}
