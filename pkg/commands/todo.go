package commands

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/lyfocus/pkg/commands/options"
	"tableflip.dev/lyfocus/pkg/glyph"
	"tableflip.dev/lyfocus/pkg/printers"
)

func addTodo(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "todo",
		Short: "Add, complete and list todos.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return listTodos(cmd)
		},
	}

	add := &cobra.Command{
		Use:   "add",
		Short: "Add a todo.",
		Example: `
lyfocus todo add call the dentist
`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) < 1 {
				return errors.New("requires the todo text")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, func(ctx context.Context, s *session) error {
				t, err := s.Service.AddTodo(ctx, strings.Join(args, " "))
				if err != nil {
					return err
				}
				return show(cmd, t, func(pp *printers.PrettyPrint) {
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s %s (%d)\n", glyph.Open, t.Text, t.ID)
				})
			})
		},
	}

	toggle := &cobra.Command{
		Use:               "done <id>",
		Aliases:           []string{"toggle"},
		Short:             "Complete a todo, or reopen a completed one.",
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: idCompletions("todo"),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, func(ctx context.Context, s *session) error {
				id, err := options.ParseID(args[0])
				if err != nil {
					return err
				}
				t, o, err := s.Service.ToggleTodo(ctx, id)
				if err != nil {
					return err
				}
				return done(cmd, t, o, func(pp *printers.PrettyPrint) {
					if t.Completed {
						_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", glyph.Done, glyph.Strike(t.Text))
					} else {
						_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", glyph.Open, t.Text)
					}
				})
			})
		},
	}

	rm := &cobra.Command{
		Use:               "rm <id>",
		Short:             "Delete a todo.",
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: idCompletions("todo"),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, func(ctx context.Context, s *session) error {
				id, err := options.ParseID(args[0])
				if err != nil {
					return err
				}
				return s.Service.DeleteTodo(ctx, id)
			})
		},
	}

	ls := &cobra.Command{
		Use:   "ls",
		Short: "List todos.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return listTodos(cmd)
		},
	}

	cmd.AddCommand(add, toggle, rm, ls)
	topLevel.AddCommand(cmd)
}

func listTodos(cmd *cobra.Command) error {
	return withSession(cmd, func(ctx context.Context, s *session) error {
		todos := s.Service.Todos(ctx)
		return show(cmd, todos, func(pp *printers.PrettyPrint) {
			pp.Todos(todos)
		})
	})
}
