package app

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kushagra0526/VoiceNotebook-QA/internal/output"
	"github.com/kushagra0526/VoiceNotebook-QA/internal/store"
)

func runDashboard(cmd *cobra.Command, args []string) error {
	e, err := openEnv()
	if err != nil {
		return err
	}
	defer e.Close()

	snap, err := e.service.Snapshot(cmd.Context())
	if err != nil {
		return fmt.Errorf("loading snapshot: %w", err)
	}

	if flagJSON {
		return printJSON(snap)
	}

	fmt.Println(output.Section("Your notebook"))
	printStat("Notes", fmt.Sprintf("%d", snap.TotalNotes))
	printStat("Voice recordings", fmt.Sprintf("%d", snap.VoiceRecordings))
	printStat("Documents", fmt.Sprintf("%d", snap.DocumentsProcessed))
	printStat("Searches", fmt.Sprintf("%d", snap.TotalSearches))
	printStat("Sessions", fmt.Sprintf("%d", snap.TotalSessions))

	fmt.Println(output.Section("Momentum"))
	fmt.Printf(" %s %s\n", output.StyleLabel.Render("Productivity"), output.ScoreBar(snap.ProductivityScore, 20))
	printStat("Streak", fmt.Sprintf("%d days", snap.StreakDays))
	printStat("Most active day", snap.MostActiveDay)
	if len(snap.PeakUsageHours) > 0 {
		hours := make([]string, len(snap.PeakUsageHours))
		for i, h := range snap.PeakUsageHours {
			hours[i] = fmt.Sprintf("%02d:00", h)
		}
		printStat("Peak hours", strings.Join(hours, ", "))
	}

	fmt.Println(output.Section("Progress"))
	fmt.Printf(" %s %s\n", output.StyleLabel.Render("Level"),
		output.StyleXP.Render(fmt.Sprintf("%d", snap.Level)))
	fmt.Printf(" %s %s\n", output.StyleLabel.Render("XP"),
		output.StyleXP.Render(fmt.Sprintf("%d", snap.XP)))

	challenges, err := todaysChallenges(e)
	if err != nil {
		return err
	}
	if len(challenges) > 0 {
		fmt.Println(output.Section("Today's challenges"))
		for _, c := range challenges {
			fmt.Printf(" %s %s\n", output.StyleLabel.Render(c.Title),
				output.GoalBar(c.Current, c.Target, c.Unit, 10))
		}
	}

	fmt.Println()
	return nil
}

func printStat(label, value string) {
	fmt.Printf(" %s %s\n", output.StyleLabel.Render(label), output.StyleBold.Render(value))
}

func todaysChallenges(e *env) ([]store.Goal, error) {
	goals, err := e.db.GetGoals("")
	if err != nil {
		return nil, err
	}
	var out []store.Goal
	for _, g := range goals {
		if g.Type == "daily_challenge" && strings.HasPrefix(g.ID, "challenge_") {
			if g.Status == store.GoalActive || g.Status == store.GoalCompleted {
				out = append(out, g)
			}
		}
	}
	if len(out) > 3 {
		out = out[:3]
	}
	return out, nil
}
