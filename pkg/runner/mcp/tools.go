package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"tableflip.dev/lyfocus/pkg/activity"
	"tableflip.dev/lyfocus/pkg/app"
	"tableflip.dev/lyfocus/pkg/apperr"
	"tableflip.dev/lyfocus/pkg/goal"
	"tableflip.dev/lyfocus/pkg/state"
	"tableflip.dev/lyfocus/pkg/timeutil"
)

// handler returns the value to encode as the tool result. Errors become
// tool errors, not protocol errors.
type handler func(ctx context.Context, request mcp.CallToolRequest) (any, error)

func registerTools(srv *server.MCPServer, svc *Service) {
	srv.AddTools(tools(svc)...)
}

func tools(svc *Service) []server.ServerTool {
	var out []server.ServerTool
	out = append(out, todoTools(svc)...)
	out = append(out, habitTools(svc)...)
	out = append(out, checkinTools(svc)...)
	out = append(out, journalTools(svc)...)
	out = append(out, goalTools(svc)...)
	out = append(out, reportTools(svc)...)
	return out
}

func tool(t mcp.Tool, h handler) server.ServerTool {
	return server.ServerTool{
		Tool: t,
		Handler: func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			v, err := h(ctx, request)
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}
			return toJSONResult(v)
		},
	}
}

func withID(description string) mcp.ToolOption {
	return mcp.WithNumber("id",
		mcp.Required(),
		mcp.Description(description),
	)
}

func idArg(request mcp.CallToolRequest) (int64, error) {
	raw, err := request.RequireFloat("id")
	if err != nil {
		return 0, err
	}
	return ID(raw)
}

func todoTools(svc *Service) []server.ServerTool {
	return []server.ServerTool{
		tool(mcp.NewTool("add_todo",
			mcp.WithDescription("Add an open todo."),
			mcp.WithString("text", mcp.Required(), mcp.Description("What needs doing.")),
		), func(ctx context.Context, request mcp.CallToolRequest) (any, error) {
			text, err := request.RequireString("text")
			if err != nil {
				return nil, err
			}
			return svc.App.AddTodo(ctx, text)
		}),
		tool(mcp.NewTool("toggle_todo",
			mcp.WithDescription("Complete an open todo or reopen a completed one. Completing pays XP."),
			withID("Todo id."),
		), func(ctx context.Context, request mcp.CallToolRequest) (any, error) {
			id, err := idArg(request)
			if err != nil {
				return nil, err
			}
			t, o, err := svc.App.ToggleTodo(ctx, id)
			if err != nil {
				return nil, err
			}
			return mutation(t, o), nil
		}),
		tool(mcp.NewTool("delete_todo",
			mcp.WithDescription("Delete a todo."),
			withID("Todo id."),
		), func(ctx context.Context, request mcp.CallToolRequest) (any, error) {
			id, err := idArg(request)
			if err != nil {
				return nil, err
			}
			return map[string]int64{"deleted": id}, svc.App.DeleteTodo(ctx, id)
		}),
		tool(mcp.NewTool("list_todos",
			mcp.WithDescription("List every todo, oldest first."),
		), func(ctx context.Context, _ mcp.CallToolRequest) (any, error) {
			return svc.App.Todos(ctx), nil
		}),
	}
}

func habitTools(svc *Service) []server.ServerTool {
	return []server.ServerTool{
		tool(mcp.NewTool("add_habit",
			mcp.WithDescription("Start tracking a daily habit."),
			mcp.WithString("name", mcp.Required(), mcp.Description("Habit name.")),
		), func(ctx context.Context, request mcp.CallToolRequest) (any, error) {
			name, err := request.RequireString("name")
			if err != nil {
				return nil, err
			}
			return svc.App.AddHabit(ctx, name)
		}),
		tool(mcp.NewTool("complete_habit",
			mcp.WithDescription("Mark a habit done today. Repeating it the same day changes nothing."),
			withID("Habit id."),
		), func(ctx context.Context, request mcp.CallToolRequest) (any, error) {
			id, err := idArg(request)
			if err != nil {
				return nil, err
			}
			h, changed, o, err := svc.App.CompleteHabit(ctx, id)
			if err != nil {
				return nil, err
			}
			return map[string]any{"habit": h, "changed": changed, "award": o.Award}, nil
		}),
		tool(mcp.NewTool("delete_habit",
			mcp.WithDescription("Stop tracking a habit."),
			withID("Habit id."),
		), func(ctx context.Context, request mcp.CallToolRequest) (any, error) {
			id, err := idArg(request)
			if err != nil {
				return nil, err
			}
			return map[string]int64{"deleted": id}, svc.App.DeleteHabit(ctx, id)
		}),
		tool(mcp.NewTool("list_habits",
			mcp.WithDescription("List habits with their streaks."),
		), func(ctx context.Context, _ mcp.CallToolRequest) (any, error) {
			return svc.App.Habits(ctx), nil
		}),
	}
}

func checkinTools(svc *Service) []server.ServerTool {
	moods := make([]string, 0, 5)
	for _, m := range activity.AllMoods() {
		moods = append(moods, string(m))
	}
	themes := make([]string, 0, 7)
	for _, t := range state.AllThemes() {
		themes = append(themes, string(t))
	}
	return []server.ServerTool{
		tool(mcp.NewTool("log_mood",
			mcp.WithDescription("Log today's mood. A later mood the same day replaces it."),
			mcp.WithString("mood", mcp.Required(), mcp.Enum(moods...)),
		), func(ctx context.Context, request mcp.CallToolRequest) (any, error) {
			raw, err := request.RequireString("mood")
			if err != nil {
				return nil, err
			}
			m, err := activity.ParseMood(raw)
			if err != nil {
				return nil, err
			}
			e, o, err := svc.App.LogMood(ctx, m)
			if err != nil {
				return nil, err
			}
			return mutation(e, o), nil
		}),
		tool(mcp.NewTool("log_energy",
			mcp.WithDescription("Log today's energy level from 0 to 10."),
			mcp.WithNumber("level", mcp.Required(), mcp.Description("Energy level, 0 to 10.")),
		), func(ctx context.Context, request mcp.CallToolRequest) (any, error) {
			level, err := request.RequireInt("level")
			if err != nil {
				return nil, err
			}
			e, o, err := svc.App.LogEnergy(ctx, level)
			if err != nil {
				return nil, err
			}
			return mutation(e, o), nil
		}),
		tool(mcp.NewTool("log_gratitude",
			mcp.WithDescription("Log one to three things the user is grateful for today."),
			mcp.WithArray("items",
				mcp.Required(),
				mcp.Description("One to three short items."),
				mcp.Items(map[string]any{"type": "string"}),
			),
		), func(ctx context.Context, request mcp.CallToolRequest) (any, error) {
			var args struct {
				Items []string `json:"items"`
			}
			if err := request.BindArguments(&args); err != nil {
				return nil, fmt.Errorf("invalid arguments: %w", err)
			}
			e, o, err := svc.App.LogGratitude(ctx, args.Items)
			if err != nil {
				return nil, err
			}
			return mutation(e, o), nil
		}),
		tool(mcp.NewTool("set_theme",
			mcp.WithDescription("Change the dashboard theme."),
			mcp.WithString("theme", mcp.Required(), mcp.Enum(themes...)),
		), func(ctx context.Context, request mcp.CallToolRequest) (any, error) {
			raw, err := request.RequireString("theme")
			if err != nil {
				return nil, err
			}
			t, err := state.ParseTheme(raw)
			if err != nil {
				return nil, err
			}
			return map[string]state.Theme{"theme": t}, svc.App.SetTheme(ctx, t)
		}),
	}
}

func journalTools(svc *Service) []server.ServerTool {
	return []server.ServerTool{
		tool(mcp.NewTool("save_journal",
			mcp.WithDescription("Save a journal entry dated now. Clears the draft."),
			mcp.WithString("text", mcp.Required()),
		), func(ctx context.Context, request mcp.CallToolRequest) (any, error) {
			text, err := request.RequireString("text")
			if err != nil {
				return nil, err
			}
			e, o, err := svc.App.SaveJournal(ctx, text)
			if err != nil {
				return nil, err
			}
			return mutation(e, o), nil
		}),
		tool(mcp.NewTool("update_journal",
			mcp.WithDescription("Replace the text of a journal entry."),
			withID("Entry id."),
			mcp.WithString("text", mcp.Required()),
		), func(ctx context.Context, request mcp.CallToolRequest) (any, error) {
			id, err := idArg(request)
			if err != nil {
				return nil, err
			}
			text, err := request.RequireString("text")
			if err != nil {
				return nil, err
			}
			return svc.App.UpdateJournal(ctx, id, text)
		}),
		tool(mcp.NewTool("delete_journal",
			mcp.WithDescription("Delete a journal entry."),
			withID("Entry id."),
		), func(ctx context.Context, request mcp.CallToolRequest) (any, error) {
			id, err := idArg(request)
			if err != nil {
				return nil, err
			}
			return map[string]int64{"deleted": id}, svc.App.DeleteJournal(ctx, id)
		}),
		tool(mcp.NewTool("set_journal_draft",
			mcp.WithDescription("Keep unsaved journal text. An empty text clears it."),
			mcp.WithString("text"),
		), func(ctx context.Context, request mcp.CallToolRequest) (any, error) {
			text := request.GetString("text", "")
			svc.App.SetJournalDraft(ctx, text)
			return map[string]string{"draft": text}, nil
		}),
		tool(mcp.NewTool("list_journal",
			mcp.WithDescription("List journal entries, oldest first."),
			mcp.WithString("last",
				mcp.Description("Only entries from this window, such as 3d or 2w. Empty lists every entry."),
			),
		), func(ctx context.Context, request mcp.CallToolRequest) (any, error) {
			days := 0
			if last := request.GetString("last", ""); last != "" {
				var err error
				if days, _, err = timeutil.ParseWindow(last); err != nil {
					return nil, apperr.Invalid("last", err.Error())
				}
			}
			return svc.App.RecentJournal(ctx, days), nil
		}),
	}
}

// goalArgs are the goal fields a tool may set. Nil means unchanged on update.
type goalArgs struct {
	Title        *string  `json:"title"`
	Description  *string  `json:"description"`
	Type         *string  `json:"type"`
	Target       *int     `json:"target"`
	Unit         *string  `json:"unit"`
	Deadline     *string  `json:"deadline"`
	Category     *string  `json:"category"`
	WeeklyTarget *int     `json:"weekly_target"`
	Milestones   []string `json:"milestones"`
}

func (a goalArgs) apply(spec goal.Spec) (goal.Spec, error) {
	set := func(dst *string, src *string) {
		if src != nil {
			*dst = strings.TrimSpace(*src)
		}
	}
	set(&spec.Title, a.Title)
	set(&spec.Description, a.Description)
	set(&spec.Unit, a.Unit)
	set(&spec.Deadline, a.Deadline)
	if a.Type != nil {
		t, err := goal.ParseType(*a.Type)
		if err != nil {
			return goal.Spec{}, err
		}
		spec.Type = t
	}
	if a.Category != nil {
		spec.Category = goal.Category(strings.ToLower(strings.TrimSpace(*a.Category)))
	}
	if a.Target != nil {
		spec.Target = *a.Target
	}
	if a.WeeklyTarget != nil {
		spec.WeeklyTarget = *a.WeeklyTarget
	}
	if a.Milestones != nil {
		spec.Milestones = a.Milestones
	}
	return spec, nil
}

func goalFields(required bool) []mcp.ToolOption {
	title := []mcp.PropertyOption{mcp.Description("Goal title.")}
	kind := []mcp.PropertyOption{mcp.Description("Goal type."), mcp.Enum(goalTypes()...)}
	if required {
		title = append(title, mcp.Required())
		kind = append(kind, mcp.Required())
	}
	categories := make([]string, 0, 7)
	for _, c := range goal.AllCategories() {
		categories = append(categories, string(c))
	}
	return []mcp.ToolOption{
		mcp.WithString("title", title...),
		mcp.WithString("type", kind...),
		mcp.WithString("description"),
		mcp.WithNumber("target", mcp.Description("Target value. Deadline and milestone goals set their own.")),
		mcp.WithString("unit", mcp.Description("Unit for numeric and habit goals.")),
		mcp.WithString("deadline", mcp.Description("Optional deadline as YYYY-MM-DD.")),
		mcp.WithString("category", mcp.Enum(categories...)),
		mcp.WithNumber("weekly_target", mcp.Description("Sessions per week, required for weekly goals.")),
		mcp.WithArray("milestones",
			mcp.Description("Ordered steps, required for milestone goals."),
			mcp.Items(map[string]any{"type": "string"}),
		),
	}
}

func goalTypes() []string {
	out := make([]string, 0, 7)
	for _, t := range goal.AllTypes() {
		out = append(out, string(t))
	}
	return out
}

func goalTools(svc *Service) []server.ServerTool {
	step := func(name, description string, extra []mcp.ToolOption, fn func(ctx context.Context, id int64, request mcp.CallToolRequest) (goal.Goal, app.Outcome, error)) server.ServerTool {
		opts := append([]mcp.ToolOption{mcp.WithDescription(description), withID("Goal id.")}, extra...)
		return tool(mcp.NewTool(name, opts...), func(ctx context.Context, request mcp.CallToolRequest) (any, error) {
			id, err := idArg(request)
			if err != nil {
				return nil, err
			}
			g, o, err := fn(ctx, id, request)
			if err != nil {
				return nil, err
			}
			return mutation(g, o), nil
		})
	}

	create := append([]mcp.ToolOption{mcp.WithDescription("Create a goal.")}, goalFields(true)...)
	update := append([]mcp.ToolOption{mcp.WithDescription("Change a goal's fields. Omitted fields and progress are kept."), withID("Goal id.")}, goalFields(false)...)

	return []server.ServerTool{
		tool(mcp.NewTool("create_goal", create...), func(ctx context.Context, request mcp.CallToolRequest) (any, error) {
			var args goalArgs
			if err := request.BindArguments(&args); err != nil {
				return nil, fmt.Errorf("invalid arguments: %w", err)
			}
			spec, err := args.apply(goal.Spec{})
			if err != nil {
				return nil, err
			}
			g, o, err := svc.App.CreateGoal(ctx, spec)
			if err != nil {
				return nil, err
			}
			return mutation(g, o), nil
		}),
		tool(mcp.NewTool("update_goal", update...), func(ctx context.Context, request mcp.CallToolRequest) (any, error) {
			id, err := idArg(request)
			if err != nil {
				return nil, err
			}
			var args goalArgs
			if err := request.BindArguments(&args); err != nil {
				return nil, fmt.Errorf("invalid arguments: %w", err)
			}
			current, err := svc.App.Goal(ctx, id)
			if err != nil {
				return nil, err
			}
			spec, err := args.apply(current.Spec())
			if err != nil {
				return nil, err
			}
			g, o, err := svc.App.UpdateGoal(ctx, id, spec)
			if err != nil {
				return nil, err
			}
			return mutation(g, o), nil
		}),
		step("increment_goal_progress", "Add a positive amount to a goal's progress. Weekly and milestone goals use record_weekly_progress and toggle_milestone instead.",
			[]mcp.ToolOption{mcp.WithNumber("amount", mcp.Required())},
			func(ctx context.Context, id int64, request mcp.CallToolRequest) (goal.Goal, app.Outcome, error) {
				amount, err := request.RequireFloat("amount")
				if err != nil {
					return goal.Goal{}, app.Outcome{}, err
				}
				return svc.App.IncrementProgress(ctx, id, amount)
			}),
		step("toggle_goal_completion", "Mark a goal complete or reopen it.", nil,
			func(ctx context.Context, id int64, _ mcp.CallToolRequest) (goal.Goal, app.Outcome, error) {
				return svc.App.ToggleGoalCompletion(ctx, id)
			}),
		step("record_weekly_progress", "Record one session of a weekly goal now.", nil,
			func(ctx context.Context, id int64, _ mcp.CallToolRequest) (goal.Goal, app.Outcome, error) {
				return svc.App.RecordWeeklyProgress(ctx, id)
			}),
		step("toggle_milestone", "Check or uncheck a milestone by its zero-based index.",
			[]mcp.ToolOption{mcp.WithNumber("index", mcp.Required())},
			func(ctx context.Context, id int64, request mcp.CallToolRequest) (goal.Goal, app.Outcome, error) {
				index, err := request.RequireInt("index")
				if err != nil {
					return goal.Goal{}, app.Outcome{}, err
				}
				return svc.App.ToggleMilestone(ctx, id, index)
			}),
		tool(mcp.NewTool("delete_goal",
			mcp.WithDescription("Delete a goal."),
			withID("Goal id."),
		), func(ctx context.Context, request mcp.CallToolRequest) (any, error) {
			id, err := idArg(request)
			if err != nil {
				return nil, err
			}
			return map[string]int64{"deleted": id}, svc.App.DeleteGoal(ctx, id)
		}),
		tool(mcp.NewTool("list_goals",
			mcp.WithDescription("List goals with summary counts."),
			mcp.WithString("filter", mcp.Enum(string(goal.FilterAll), string(goal.FilterActive), string(goal.FilterCompleted))),
		), func(ctx context.Context, request mcp.CallToolRequest) (any, error) {
			f := goal.Filter(request.GetString("filter", string(goal.FilterAll)))
			return map[string]any{
				"goals": svc.App.Goals(ctx, f),
				"stats": svc.App.GoalStats(ctx),
			}, nil
		}),
	}
}

func reportTools(svc *Service) []server.ServerTool {
	return []server.ServerTool{
		tool(mcp.NewTool("get_status",
			mcp.WithDescription("Streaks, level, today's counts and active goals."),
		), func(ctx context.Context, _ mcp.CallToolRequest) (any, error) {
			return svc.App.Status(ctx), nil
		}),
		tool(mcp.NewTool("get_insights",
			mcp.WithDescription("Weekly review, activity heatmap, trends and written insights."),
			mcp.WithNumber("days", mcp.Description("Heatmap window in days, default 28.")),
		), func(ctx context.Context, request mcp.CallToolRequest) (any, error) {
			return svc.Insights(ctx, request.GetInt("days", 0))
		}),
		{
			Tool: mcp.NewTool("export_data",
				mcp.WithDescription("Return a full backup as JSON. Pays the backup XP."),
			),
			Handler: func(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
				backup, _, err := svc.Export(ctx)
				if err != nil {
					return mcp.NewToolResultError(err.Error()), nil
				}
				return mcp.NewToolResultText(backup), nil
			},
		},
	}
}

func toJSONResult(data any) (*mcp.CallToolResult, error) {
	result, err := mcp.NewToolResultJSON(data)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("marshal error: %v", err)), nil
	}
	return result, nil
}
