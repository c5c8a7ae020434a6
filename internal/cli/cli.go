// Package cli wires configuration, storage and the terminal UI behind a
// cobra command tree.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/sandeepkv93/tasklist/internal/config"
	"github.com/sandeepkv93/tasklist/internal/model"
	"github.com/sandeepkv93/tasklist/internal/storage"
	"github.com/sandeepkv93/tasklist/internal/store"
	"github.com/sandeepkv93/tasklist/internal/update"
)

// storageTimeout bounds a whole non-interactive command, including the wait
// for another instance's file lock.
const storageTimeout = 5 * time.Second

type options struct {
	configPath string
	overrides  config.Config
}

// runTUI is swapped out in tests.
var runTUI = func(m update.Model) error {
	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}

// Execute runs the command line and returns the process exit code.
func Execute(args []string, stdout, stderr io.Writer) int {
	root := NewRootCommand(stdout, stderr)
	root.SetArgs(args)
	if err := root.Execute(); err != nil {
		_, _ = fmt.Fprintln(stderr, "Error:", err)
		return 1
	}
	return 0
}

func NewRootCommand(stdout, stderr io.Writer) *cobra.Command {
	opts := &options{}
	root := &cobra.Command{
		Use:           "tasklist",
		Short:         "A small to-do list kept in a plain text file",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runInteractive(opts)
		},
	}
	root.SetOut(stdout)
	root.SetErr(stderr)

	flags := root.PersistentFlags()
	flags.StringVar(&opts.configPath, "config", config.DefaultConfigFile, "path to a TOML config file")
	flags.StringVarP(&opts.overrides.File, "file", "f", "", "task file path (default "+config.DefaultFile+", or "+config.DefaultSQLiteFile+" for sqlite)")
	flags.StringVar(&opts.overrides.Backend, "backend", "", "storage backend: file or sqlite")
	flags.StringVar(&opts.overrides.Theme, "theme", "", "colour theme: dark, light or rose")
	flags.StringVar(&opts.overrides.DebugLog, "debug-log", "", "append debug logs to this file")

	root.AddCommand(
		newListCommand(opts),
		newAddCommand(opts),
		newRenameCommand(opts),
		newRemoveCommand(opts),
		newDoneCommand(opts),
	)
	return root
}

func (o *options) resolve() (config.Config, error) {
	cfg, err := config.LoadFile(config.Default(), o.configPath)
	if err != nil {
		return config.Config{}, err
	}
	cfg = config.FromEnv(cfg)
	return config.Merge(cfg, o.overrides).Resolved(), nil
}

func runInteractive(opts *options) error {
	cfg, err := opts.resolve()
	if err != nil {
		return err
	}
	if cfg.DebugLog != "" {
		f, err := tea.LogToFile(cfg.DebugLog, "tasklist")
		if err != nil {
			return fmt.Errorf("open debug log: %w", err)
		}
		defer f.Close()
	} else {
		log.SetOutput(io.Discard)
	}

	repo, err := storage.Open(cfg.Backend, cfg.File)
	if err != nil {
		return err
	}
	defer repo.Close()

	log.Printf("starting: backend=%s file=%s theme=%s", cfg.Backend, cfg.File, cfg.Theme)
	return runTUI(update.NewModelWithConfig(repo, cfg))
}

// session is one load -> mutate -> save cycle for a non-interactive command.
type session struct {
	cmd    *cobra.Command
	ctx    context.Context
	cancel context.CancelFunc
	repo   storage.Repository
	tasks  *store.Store
}

func openSession(cmd *cobra.Command, opts *options) (*session, error) {
	cfg, err := opts.resolve()
	if err != nil {
		return nil, err
	}
	log.SetOutput(cmd.ErrOrStderr())
	log.SetFlags(0)

	repo, err := storage.Open(cfg.Backend, cfg.File)
	if err != nil {
		return nil, err
	}
	parent := cmd.Context()
	if parent == nil {
		parent = context.Background()
	}
	ctx, cancel := context.WithTimeout(parent, storageTimeout)
	tasks, err := repo.Load(ctx)
	if err != nil {
		if !errors.Is(err, storage.ErrMalformedLine) {
			cancel()
			_ = repo.Close()
			return nil, err
		}
		for _, le := range storage.MalformedLines(err) {
			log.Printf("warning: skipped %v", le)
		}
	}
	return &session{cmd: cmd, ctx: ctx, cancel: cancel, repo: repo, tasks: store.New(tasks)}, nil
}

func (s *session) close() {
	s.cancel()
	_ = s.repo.Close()
}

// commit saves the store and prints msg on success.
func (s *session) commit(msg string) error {
	if err := s.repo.Save(s.ctx, s.tasks.Tasks()); err != nil {
		return fmt.Errorf("Error saving tasks to file!: %w", err)
	}
	_, _ = fmt.Fprintln(s.cmd.OutOrStdout(), msg)
	return nil
}

// parseIndex converts a 1-based position from the command line into a store
// index.
func parseIndex(raw string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n < 1 {
		return 0, fmt.Errorf("invalid task number %q: want a positive integer", raw)
	}
	return n - 1, nil
}

func describe(err error) error {
	switch {
	case errors.Is(err, model.ErrEmptyName):
		return errors.New("Task cannot be empty!")
	case errors.Is(err, model.ErrNotFound):
		return fmt.Errorf("no such task: %w", err)
	default:
		return err
	}
}
