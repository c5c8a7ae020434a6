package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sandeepkv93/tasklist/internal/model"
	"github.com/sandeepkv93/tasklist/internal/store"
)

func newListCommand(opts *options) *cobra.Command {
	var completed, pending bool
	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "Print tasks with their numbers",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := openSession(cmd, opts)
			if err != nil {
				return err
			}
			defer s.close()

			filter := model.FilterAll
			empty := "No tasks to display!"
			switch {
			case completed:
				filter, empty = model.FilterCompleted, "No completed tasks to display!"
			case pending:
				filter, empty = model.FilterPending, "No pending tasks to display!"
			}
			rows := s.tasks.Filter(filter.Predicate())
			out := cmd.OutOrStdout()
			if len(rows) == 0 {
				_, _ = fmt.Fprintln(out, empty)
				return nil
			}
			for _, entry := range rows {
				_, _ = fmt.Fprintln(out, formatEntry(entry))
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&completed, "completed", false, "only completed tasks")
	cmd.Flags().BoolVar(&pending, "pending", false, "only pending tasks")
	cmd.MarkFlagsMutuallyExclusive("completed", "pending")
	return cmd
}

func newAddCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "add NAME...",
		Short: "Append a new pending task",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd, opts)
			if err != nil {
				return err
			}
			defer s.close()
			if err := s.tasks.Add(strings.Join(args, " ")); err != nil {
				return describe(err)
			}
			return s.commit("Task added successfully!")
		},
	}
}

func newRenameCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:     "rename NUMBER NAME...",
		Aliases: []string{"update"},
		Short:   "Rename a task, keeping its completion state",
		Args:    cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			index, err := parseIndex(args[0])
			if err != nil {
				return err
			}
			s, err := openSession(cmd, opts)
			if err != nil {
				return err
			}
			defer s.close()
			if err := s.tasks.Update(index, strings.Join(args[1:], " ")); err != nil {
				return describe(err)
			}
			return s.commit("Task updated successfully!")
		},
	}
}

func newRemoveCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:     "rm NUMBER",
		Aliases: []string{"delete"},
		Short:   "Delete a task",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			index, err := parseIndex(args[0])
			if err != nil {
				return err
			}
			s, err := openSession(cmd, opts)
			if err != nil {
				return err
			}
			defer s.close()
			if err := s.tasks.Delete(index); err != nil {
				return describe(err)
			}
			return s.commit("Task deleted successfully!")
		},
	}
}

func newDoneCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:     "done NUMBER",
		Aliases: []string{"complete"},
		Short:   "Mark a task completed",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			index, err := parseIndex(args[0])
			if err != nil {
				return err
			}
			s, err := openSession(cmd, opts)
			if err != nil {
				return err
			}
			defer s.close()
			res, err := s.tasks.Complete(index)
			if err != nil {
				return describe(err)
			}
			if res == store.AlreadyCompleted {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Task is already marked as completed!")
				return nil
			}
			return s.commit("Task marked as completed!")
		},
	}
}

func formatEntry(e store.Entry) string {
	check := "[ ]"
	if e.Task.Completed {
		check = "[x]"
	}
	return fmt.Sprintf("%d. %s %s", e.Index+1, check, e.Task.Name)
}
