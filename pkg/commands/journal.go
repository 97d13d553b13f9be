package commands

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	base "github.com/n3wscott/cli-base/pkg/commands/options"

	"tableflip.dev/lyfocus/pkg/apperr"
	"tableflip.dev/lyfocus/pkg/commands/options"
	"tableflip.dev/lyfocus/pkg/printers"
	"tableflip.dev/lyfocus/pkg/prompt"
	"tableflip.dev/lyfocus/pkg/snake"
)

func addJournal(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "journal",
		Short: "Write and read journal entries.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return listJournal(cmd, &options.WindowOptions{})
		},
	}

	intr := &options.InteractiveOptions{}
	write := &cobra.Command{
		Use:   "write [text]",
		Short: base.Wrap80("Save a journal entry. Without text the saved draft is used; with -i you are asked today's prompt."),
		Example: `
lyfocus journal write today I finally fixed the bike
lyfocus journal write -i
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, func(ctx context.Context, s *session) error {
				text := strings.Join(args, " ")
				if text == "" && intr.Interactive {
					var err error
					text, err = snake.Text(prompt.Daily(time.Now()), nil, cmd.InOrStdin(), cmd.OutOrStdout())
					if err != nil {
						return err
					}
				}
				if text == "" {
					text = s.Service.JournalDraft(ctx)
				}
				if strings.TrimSpace(text) == "" {
					return apperr.Invalid("text", "nothing to save, write some text or a draft first")
				}
				e, o, err := s.Service.SaveJournal(ctx, text)
				if err != nil {
					return err
				}
				return done(cmd, e, o, func(pp *printers.PrettyPrint) {
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Saved entry %d\n", e.ID)
				})
			})
		},
	}
	options.InteractiveArgs(write, intr)

	edit := &cobra.Command{
		Use:   "edit <id> <text>",
		Short: "Replace the text of an entry.",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) < 2 {
				return errors.New("requires an entry id and the new text")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, func(ctx context.Context, s *session) error {
				id, err := options.ParseID(args[0])
				if err != nil {
					return err
				}
				e, err := s.Service.UpdateJournal(ctx, id, strings.Join(args[1:], " "))
				if err != nil {
					return err
				}
				return show(cmd, e, func(pp *printers.PrettyPrint) {
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Updated entry %d\n", e.ID)
				})
			})
		},
	}

	rm := &cobra.Command{
		Use:               "rm <id>",
		Short:             "Delete an entry.",
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: idCompletions("journal"),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, func(ctx context.Context, s *session) error {
				id, err := options.ParseID(args[0])
				if err != nil {
					return err
				}
				return s.Service.DeleteJournal(ctx, id)
			})
		},
	}

	wo := &options.WindowOptions{}
	ls := &cobra.Command{
		Use:   "ls",
		Short: "List entries, newest first.",
		Example: `
lyfocus journal ls
lyfocus journal ls --last=2w
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return listJournal(cmd, wo)
		},
	}
	options.AddWindowArgs(ls, wo, "")

	clearDraft := false
	draft := &cobra.Command{
		Use:   "draft [text]",
		Short: "Show, replace or clear the unsaved draft.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, func(ctx context.Context, s *session) error {
				if len(args) > 0 || clearDraft {
					s.Service.SetJournalDraft(ctx, strings.Join(args, " "))
				}
				d := s.Service.JournalDraft(ctx)
				return show(cmd, map[string]string{"draft": d}, func(pp *printers.PrettyPrint) {
					if d == "" {
						pp.Empty("no draft")
						return
					}
					_, _ = fmt.Fprintln(cmd.OutOrStdout(), d)
				})
			})
		},
	}
	draft.Flags().BoolVar(&clearDraft, "clear", false, "Clear the draft.")

	cmd.AddCommand(write, edit, rm, ls, draft)
	topLevel.AddCommand(cmd)
}

func listJournal(cmd *cobra.Command, wo *options.WindowOptions) error {
	days := 0
	if wo.Last != "" {
		var err error
		if days, err = wo.Days(); err != nil {
			return err
		}
	}
	return withSession(cmd, func(ctx context.Context, s *session) error {
		j := s.Service.RecentJournal(ctx, days)
		return show(cmd, j, func(pp *printers.PrettyPrint) {
			pp.Journal(j)
		})
	})
}
