package app

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/kushagra0526/VoiceNotebook-QA/internal/gamification"
	"github.com/kushagra0526/VoiceNotebook-QA/internal/output"
	"github.com/kushagra0526/VoiceNotebook-QA/internal/store"
)

var (
	goalTitle    string
	goalType     string
	goalTarget   float64
	goalUnit     string
	goalDeadline string
	goalPriority string
	goalStatus   string
)

var goalsCmd = &cobra.Command{
	Use:   "goals",
	Short: "List and manage goals",
	RunE:  runGoalsList,
}

var goalsAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Create a goal",
	Long: `Create a goal with a target and optional deadline.

Example:
  vnstats goals add --title "Record 20 voice notes" --target 20 --unit notes \
    --deadline 2026-09-30 --priority high`,
	RunE: runGoalsAdd,
}

var goalsProgressCmd = &cobra.Command{
	Use:   "progress <goal-id> <value>",
	Short: "Update a goal's progress",
	Args:  cobra.ExactArgs(2),
	RunE:  runGoalsProgress,
}

var goalsPauseCmd = &cobra.Command{
	Use:   "pause <goal-id>",
	Short: "Pause an active goal",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEnv()
		if err != nil {
			return err
		}
		defer e.Close()
		id, err := resolveGoalID(e, args[0])
		if err != nil {
			return err
		}
		if err := e.engine.PauseGoal(id); err != nil {
			return err
		}
		fmt.Println("paused", id)
		return nil
	},
}

func init() {
	goalsCmd.Flags().StringVar(&goalStatus, "status", "", "Filter by status (active, completed, paused, failed)")

	goalsAddCmd.Flags().StringVar(&goalTitle, "title", "", "Goal title (required)")
	goalsAddCmd.Flags().StringVar(&goalType, "type", "custom", "Goal type")
	goalsAddCmd.Flags().Float64Var(&goalTarget, "target", 0, "Target value (required)")
	goalsAddCmd.Flags().StringVar(&goalUnit, "unit", "", "Unit label")
	goalsAddCmd.Flags().StringVar(&goalDeadline, "deadline", "", "Deadline (YYYY-MM-DD)")
	goalsAddCmd.Flags().StringVar(&goalPriority, "priority", "medium", "Priority (low, medium, high)")
	_ = goalsAddCmd.MarkFlagRequired("title")
	_ = goalsAddCmd.MarkFlagRequired("target")

	goalsCmd.AddCommand(goalsAddCmd, goalsProgressCmd, goalsPauseCmd)
	rootCmd.AddCommand(goalsCmd)
}

func runGoalsList(cmd *cobra.Command, args []string) error {
	e, err := openEnv()
	if err != nil {
		return err
	}
	defer e.Close()

	goals, err := e.db.GetGoals(store.GoalStatus(goalStatus))
	if err != nil {
		return err
	}

	if flagJSON {
		return printJSON(goals)
	}
	if len(goals) == 0 {
		fmt.Println("no goals yet — try 'vnstats goals add'")
		return nil
	}

	fmt.Println(output.Section("Goals"))
	fmt.Println()
	tbl := output.NewTable("ID", "Title", "Progress", "Status", "Deadline")
	for _, g := range goals {
		deadline := "—"
		if !g.Deadline.IsZero() {
			deadline = g.Deadline.Format(store.DateFormat)
		}
		tbl.AddRow(shortID(g.ID), g.Title,
			output.GoalBar(g.Current, g.Target, g.Unit, 10),
			statusLabel(g.Status), deadline)
	}
	tbl.Print()
	fmt.Println()
	return nil
}

func runGoalsAdd(cmd *cobra.Command, args []string) error {
	e, err := openEnv()
	if err != nil {
		return err
	}
	defer e.Close()

	params := gamification.GoalParams{
		Type:     goalType,
		Title:    goalTitle,
		Target:   goalTarget,
		Unit:     goalUnit,
		Priority: store.GoalPriority(goalPriority),
	}
	if goalDeadline != "" {
		d, err := time.Parse(store.DateFormat, goalDeadline)
		if err != nil {
			return fmt.Errorf("parsing --deadline: %w", err)
		}
		params.Deadline = d.Add(24*time.Hour - time.Second)
	}

	g, err := e.engine.CreateGoal(params)
	if err != nil {
		return err
	}
	if flagJSON {
		return printJSON(g)
	}
	fmt.Printf("created goal %s (%s)\n", g.Title, g.ID)
	return nil
}

func runGoalsProgress(cmd *cobra.Command, args []string) error {
	e, err := openEnv()
	if err != nil {
		return err
	}
	defer e.Close()

	var value float64
	if _, err := fmt.Sscanf(args[1], "%f", &value); err != nil {
		return fmt.Errorf("parsing value %q: %w", args[1], err)
	}

	id, err := resolveGoalID(e, args[0])
	if err != nil {
		return err
	}
	g, err := e.engine.UpdateGoalProgress(id, value)
	if err != nil {
		return err
	}
	if flagJSON {
		return printJSON(g)
	}
	fmt.Printf("%s  %s\n", g.Title, output.GoalBar(g.Current, g.Target, g.Unit, 10))
	if g.Status == store.GoalCompleted {
		fmt.Println(output.StyleSuccess.Render("goal completed!"))
	}
	return nil
}

// resolveGoalID accepts a full goal ID or a unique prefix (the listing shows
// the first 8 characters).
func resolveGoalID(e *env, prefix string) (string, error) {
	goals, err := e.db.GetGoals("")
	if err != nil {
		return "", err
	}
	var match string
	for _, g := range goals {
		if g.ID == prefix {
			return g.ID, nil
		}
		if strings.HasPrefix(g.ID, prefix) {
			if match != "" {
				return "", fmt.Errorf("goal ID prefix %q is ambiguous", prefix)
			}
			match = g.ID
		}
	}
	if match == "" {
		return "", fmt.Errorf("no goal matches %q", prefix)
	}
	return match, nil
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func statusLabel(s store.GoalStatus) string {
	switch s {
	case store.GoalCompleted:
		return output.StyleSuccess.Render(string(s))
	case store.GoalFailed:
		return output.StyleError.Render(string(s))
	case store.GoalPaused:
		return output.StyleMuted.Render(string(s))
	default:
		return string(s)
	}
}
