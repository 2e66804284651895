package app

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kushagra0526/VoiceNotebook-QA/internal/gamification"
	"github.com/kushagra0526/VoiceNotebook-QA/internal/output"
	"github.com/kushagra0526/VoiceNotebook-QA/internal/store"
)

var achievementsAll bool

var achievementsCmd = &cobra.Command{
	Use:   "achievements",
	Short: "Show unlocked achievements and milestones",
	RunE:  runAchievements,
}

func init() {
	achievementsCmd.Flags().BoolVar(&achievementsAll, "all", false, "Include locked achievements (hidden ones stay hidden)")
	rootCmd.AddCommand(achievementsCmd)
}

func runAchievements(cmd *cobra.Command, args []string) error {
	e, err := openEnv()
	if err != nil {
		return err
	}
	defer e.Close()

	unlocked, err := e.db.GetAchievements()
	if err != nil {
		return err
	}
	milestones, err := e.db.GetMilestones()
	if err != nil {
		return err
	}

	if flagJSON {
		return printJSON(map[string]any{
			"achievements": unlocked,
			"milestones":   milestones,
		})
	}

	byID := make(map[string]store.Achievement, len(unlocked))
	for _, a := range unlocked {
		byID[a.ID] = a
	}

	fmt.Println(output.Section("Achievements"))
	fmt.Println()
	tbl := output.NewTable("", "Title", "XP", "Unlocked").AlignRight(2)
	for _, def := range gamification.Catalog {
		a, ok := byID[def.ID]
		switch {
		case ok:
			tbl.AddRow(output.StyleSuccess.Render("★"), def.Title,
				fmt.Sprintf("%d", a.XPAwarded), a.UnlockedAt.Format(store.DateFormat))
		case achievementsAll && !def.Hidden:
			tbl.AddRow(output.StyleMuted.Render("☆"),
				output.StyleMuted.Render(def.Title),
				output.StyleMuted.Render(fmt.Sprintf("%d", def.XPReward)),
				output.StyleMuted.Render(def.Description))
		}
	}
	tbl.Print()

	if len(milestones) > 0 {
		fmt.Println(output.Section("Milestones"))
		fmt.Println()
		mt := output.NewTable("Milestone", "Reached")
		for _, m := range milestones {
			mt.AddRow(m.Title, m.FiredAt.Format(store.DateFormat))
		}
		mt.Print()
	}
	fmt.Println()
	return nil
}
