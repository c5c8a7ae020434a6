package storage

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/gofrs/flock"
	"github.com/sandeepkv93/tasklist/internal/model"
)

const (
	lockRetryDelay = 25 * time.Millisecond

	// lineTextLimit bounds the line text kept in a LineError.
	lineTextLimit = 80
)

// LineError describes one line of the task file that could not be parsed.
// Load skips such lines and keeps going.
type LineError struct {
	Line   int
	Text   string
	Reason string
}

func (e *LineError) Error() string {
	return fmt.Sprintf("storage: line %d: %s: %q", e.Line, e.Reason, e.Text)
}

func (e *LineError) Unwrap() error {
	return ErrMalformedLine
}

// MalformedLines extracts every *LineError carried by err.
func MalformedLines(err error) []*LineError {
	if err == nil {
		return nil
	}
	var out []*LineError
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		for _, inner := range joined.Unwrap() {
			out = append(out, MalformedLines(inner)...)
		}
		return out
	}
	var le *LineError
	if errors.As(err, &le) {
		out = append(out, le)
	}
	return out
}

// FlatFile stores one task per line as name;;true|false. Names are written
// verbatim, so a name containing the delimiter would not load back; the
// store rejects such names before they reach Save.
type FlatFile struct {
	path string
	lock *flock.Flock
}

func NewFlatFile(path string) (*FlatFile, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("storage: empty task file path")
	}
	return &FlatFile{path: path, lock: flock.New(path + ".lock")}, nil
}

func (f *FlatFile) Close() error {
	return f.lock.Close()
}

// Load reads the task file. A missing file yields an empty list. Malformed
// lines are skipped; the returned error then wraps ErrMalformedLine and the
// tasks from the remaining lines are still returned.
func (f *FlatFile) Load(ctx context.Context) ([]model.Task, error) {
	if _, err := os.Stat(f.path); err != nil {
		if os.IsNotExist(err) {
			return []model.Task{}, nil
		}
		return nil, ioErr("stat", f.path, err)
	}
	if err := f.acquire(ctx, false); err != nil {
		return nil, err
	}
	defer func() { _ = f.lock.Unlock() }()

	file, err := os.Open(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			return []model.Task{}, nil
		}
		return nil, ioErr("open", f.path, err)
	}
	defer file.Close()

	tasks, err := Decode(file)
	if err != nil && !errors.Is(err, ErrMalformedLine) {
		return nil, ioErr("read", f.path, err)
	}
	return tasks, err
}

// Save rewrites the whole file through a temp file in the same directory.
func (f *FlatFile) Save(ctx context.Context, tasks []model.Task) error {
	dir := filepath.Dir(f.path)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return ioErr("mkdir", dir, err)
		}
	}
	if err := f.acquire(ctx, true); err != nil {
		return err
	}
	defer func() { _ = f.lock.Unlock() }()

	tmp, err := os.CreateTemp(dir, filepath.Base(f.path)+".*.tmp")
	if err != nil {
		return ioErr("create temp for", f.path, err)
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }()

	if err := Encode(tmp, tasks); err != nil {
		_ = tmp.Close()
		return ioErr("write", tmpName, err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return ioErr("sync", tmpName, err)
	}
	if err := tmp.Close(); err != nil {
		return ioErr("close", tmpName, err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		return ioErr("chmod", tmpName, err)
	}
	if err := os.Rename(tmpName, f.path); err != nil {
		return ioErr("rename", f.path, err)
	}
	return nil
}

func (f *FlatFile) acquire(ctx context.Context, exclusive bool) error {
	var (
		locked bool
		err    error
	)
	if exclusive {
		locked, err = f.lock.TryLockContext(ctx, lockRetryDelay)
	} else {
		locked, err = f.lock.TryRLockContext(ctx, lockRetryDelay)
	}
	if err != nil {
		return ioErr("lock", f.lock.Path(), err)
	}
	if !locked {
		return ioErr("lock", f.lock.Path(), errors.New("lock not acquired"))
	}
	return nil
}

// Encode writes tasks in the flat line format.
func Encode(w io.Writer, tasks []model.Task) error {
	bw := bufio.NewWriter(w)
	for _, t := range tasks {
		if _, err := bw.WriteString(t.Name + model.FieldDelimiter + strconv.FormatBool(t.Completed) + "\n"); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// Decode parses the flat line format. Lines of any length are read. Read
// failures are returned as is; malformed lines are collected into a joined
// error of *LineError values.
func Decode(r io.Reader) ([]model.Task, error) {
	br := bufio.NewReader(r)

	tasks := make([]model.Task, 0)
	var bad []error
	lineNo := 0
	for {
		raw, readErr := br.ReadString('\n')
		if readErr != nil && !errors.Is(readErr, io.EOF) {
			return nil, readErr
		}
		if raw != "" {
			lineNo++
			line := strings.TrimSuffix(strings.TrimSuffix(raw, "\n"), "\r")
			if strings.TrimSpace(line) != "" {
				task, lineErr := parseLine(lineNo, line)
				if lineErr != nil {
					bad = append(bad, lineErr)
				} else {
					tasks = append(tasks, task)
				}
			}
		}
		if readErr != nil {
			break
		}
	}
	return tasks, errors.Join(bad...)
}

func parseLine(lineNo int, line string) (model.Task, *LineError) {
	fields := strings.Split(line, model.FieldDelimiter)
	if len(fields) != 2 {
		reason := "missing field delimiter"
		if len(fields) > 2 {
			reason = fmt.Sprintf("expected 2 fields, got %d", len(fields))
		}
		return model.Task{}, newLineError(lineNo, line, reason)
	}
	name, err := model.ValidateName(fields[0])
	if err != nil {
		reason := "empty task name"
		if errors.Is(err, model.ErrNameTooLong) {
			reason = fmt.Sprintf("task name longer than %d bytes", model.MaxNameBytes)
		}
		return model.Task{}, newLineError(lineNo, line, reason)
	}
	return model.Task{
		Name:      name,
		Completed: strings.EqualFold(strings.TrimSpace(fields[1]), "true"),
	}, nil
}

func newLineError(lineNo int, line, reason string) *LineError {
	if len(line) > lineTextLimit {
		line = line[:lineTextLimit] + "..."
	}
	return &LineError{Line: lineNo, Text: line, Reason: reason}
}
