package commands

import (
	"github.com/spf13/cobra"

	base "github.com/n3wscott/cli-base/pkg/commands/options"

	"tableflip.dev/lyfocus/pkg/commands/options"
)

var (
	output = &options.OutputOptions{}
	ids    = &options.IDOptions{}
)

func New() *cobra.Command {

	cmd := &cobra.Command{
		Use:   "lyfocus",
		Short: base.Wrap80("Todos, habits, moods, journal and goals with streaks, XP and insights on the command line."),
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
	options.AddOutputArg(cmd, output)
	options.AddShowIDArgs(cmd, ids)

	AddCommands(cmd)
	return cmd
}

func AddCommands(topLevel *cobra.Command) {
	addTodo(topLevel)
	addHabit(topLevel)
	addMood(topLevel)
	addEnergy(topLevel)
	addGratitude(topLevel)
	addJournal(topLevel)
	addGoal(topLevel)
	addStatus(topLevel)
	addInsights(topLevel)
	addExport(topLevel)
	addImport(topLevel)
	addReset(topLevel)
	addTheme(topLevel)
	addPrompt(topLevel)
	addQuote(topLevel)
	addInfo(topLevel)
	addMCP(topLevel)
	addVersion(topLevel)
	addCompletions(topLevel)
}
