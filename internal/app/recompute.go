package app

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kushagra0526/VoiceNotebook-QA/internal/output"
)

var recomputeCmd = &cobra.Command{
	Use:   "recompute",
	Short: "Rebuild the analytics snapshot from stored events",
	Long: `Rebuild the aggregate snapshot from the stored event history and daily
usage rows, then re-check achievements and milestones and refresh insights.
The scheduler does this nightly; run it manually after importing data or to
pick up freshly awarded XP.`,
	RunE: runRecompute,
}

func init() {
	rootCmd.AddCommand(recomputeCmd)
}

func runRecompute(cmd *cobra.Command, args []string) error {
	e, err := openEnv()
	if err != nil {
		return err
	}
	defer e.Close()

	snap, err := e.service.Recompute(cmd.Context())
	if err != nil {
		return err
	}

	if flagJSON {
		return printJSON(snap)
	}
	fmt.Printf("snapshot rebuilt: level %s, %s XP, %d-day streak\n",
		output.StyleXP.Render(fmt.Sprintf("%d", snap.Level)),
		output.StyleXP.Render(fmt.Sprintf("%d", snap.XP)),
		snap.StreakDays)
	return nil
}
