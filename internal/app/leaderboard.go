package app

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kushagra0526/VoiceNotebook-QA/internal/leaderboard"
	"github.com/kushagra0526/VoiceNotebook-QA/internal/output"
)

var leaderboardTop int

var leaderboardCmd = &cobra.Command{
	Use:   "leaderboard",
	Short: "Show XP standings",
	Long: `Show the XP leaderboard. With the default static provider the standings
are demo rows plus your own; configure a redis provider to rank against a
shared backend.`,
	RunE: runLeaderboard,
}

func init() {
	leaderboardCmd.Flags().IntVar(&leaderboardTop, "top", 10, "Number of entries to show")
	rootCmd.AddCommand(leaderboardCmd)
}

func runLeaderboard(cmd *cobra.Command, args []string) error {
	e, err := openEnv()
	if err != nil {
		return err
	}
	defer e.Close()

	ctx := cmd.Context()

	var provider leaderboard.RankingProvider
	switch e.cfg.Leaderboard.Provider {
	case "redis":
		rp, err := leaderboard.NewRedisProvider(ctx, e.cfg.Leaderboard.RedisAddr)
		if err != nil {
			return err
		}
		defer func() { _ = rp.Close() }()
		provider = rp
	default:
		provider = leaderboard.NewStaticProvider()
	}

	// Record the local user's standing so it ranks alongside the rest.
	snap, err := e.service.Snapshot(ctx)
	if err != nil {
		return err
	}
	me := leaderboard.Entry{
		UserID:      e.cfg.Leaderboard.UserID,
		DisplayName: e.cfg.Leaderboard.Name,
		XP:          snap.XP,
		Level:       snap.Level,
	}
	if me.DisplayName == "" {
		me.DisplayName = me.UserID
	}
	if err := provider.Record(ctx, me); err != nil {
		return fmt.Errorf("recording standing: %w", err)
	}

	entries, err := provider.Top(ctx, leaderboardTop)
	if err != nil {
		return err
	}

	if flagJSON {
		return printJSON(entries)
	}

	fmt.Println(output.Section("Leaderboard"))
	fmt.Println()
	tbl := output.NewTable("Rank", "Name", "Level", "XP").AlignRight(0, 2, 3)
	for _, entry := range entries {
		name := entry.DisplayName
		if entry.UserID == me.UserID {
			name = output.StyleXP.Render(name + " (you)")
		}
		tbl.AddRow(fmt.Sprintf("%d", entry.Rank), name,
			fmt.Sprintf("%d", entry.Level), fmt.Sprintf("%d", entry.XP))
	}
	tbl.Print()
	fmt.Println()
	return nil
}
