package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"tableflip.dev/lyfocus/pkg/goal"
)

func addCompletions(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "completion [bash|zsh|fish]",
		Short: "Generates shell completion scripts",
		Long: `To load completion run

. <(lyfocus completion)

To configure your bash shell to load completions for each session add to your bashrc

# ~/.bashrc or ~/.profile
. <(lyfocus completion)
`,
		ValidArgs: []string{"bash", "zsh", "fish"},
		Args:      cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			shell := "bash"
			if len(args) == 1 {
				shell = args[0]
			}
			switch shell {
			case "bash":
				return topLevel.GenBashCompletion(os.Stdout)
			case "zsh":
				return topLevel.GenZshCompletion(os.Stdout)
			case "fish":
				return topLevel.GenFishCompletion(os.Stdout, true)
			default:
				return fmt.Errorf("unsupported shell %q", shell)
			}
		},
	}

	topLevel.AddCommand(cmd)
}

// idCompletions completes the first argument with the ids of one kind of
// record, described by their text.
func idCompletions(kind string) func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
	return func(cmd *cobra.Command, args []string, _ string) ([]string, cobra.ShellCompDirective) {
		if len(args) > 0 {
			return nil, cobra.ShellCompDirectiveNoFileComp
		}
		ctx := context.Background()
		s, err := openSession(ctx)
		if err != nil {
			return nil, cobra.ShellCompDirectiveNoFileComp
		}
		defer s.Close()

		var out []string
		switch kind {
		case "todo":
			for _, t := range s.Service.Todos(ctx) {
				out = append(out, fmt.Sprintf("%d\t%s", t.ID, t.Text))
			}
		case "habit":
			for _, h := range s.Service.Habits(ctx) {
				out = append(out, fmt.Sprintf("%d\t%s", h.ID, h.Name))
			}
		case "journal":
			for _, e := range s.Service.Journal(ctx) {
				out = append(out, fmt.Sprintf("%d\t%s", e.ID, e.Date.Local().Format("2006-01-02")))
			}
		case "goal":
			for _, g := range s.Service.Goals(ctx, goal.FilterAll) {
				out = append(out, fmt.Sprintf("%d\t%s", g.ID, g.Title))
			}
		}
		return out, cobra.ShellCompDirectiveNoFileComp
	}
}
