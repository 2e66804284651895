package app

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kushagra0526/VoiceNotebook-QA/internal/analytics"
	"github.com/kushagra0526/VoiceNotebook-QA/internal/calculator"
	"github.com/kushagra0526/VoiceNotebook-QA/internal/output"
)

var statsRange string

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show usage metrics for a time range",
	Long: `Report usage totals, averages, and trend for the selected window.

Ranges: 24h, 7d, 30d, 90d, 1y, all.`,
	RunE: runStats,
}

func init() {
	statsCmd.Flags().StringVar(&statsRange, "range", "7d", "Reporting window")
	rootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, args []string) error {
	e, err := openEnv()
	if err != nil {
		return err
	}
	defer e.Close()

	m, err := e.service.Metrics(cmd.Context(), analytics.Range(statsRange))
	if err != nil {
		return err
	}

	if flagJSON {
		return printJSON(m)
	}

	fmt.Println(output.Section(fmt.Sprintf("Usage — last %s", m.Range)))
	printStat("Events", fmt.Sprintf("%d", m.TotalEvents))
	printStat("Items created", fmt.Sprintf("%d", m.ItemsCreated))
	printStat("Searches", fmt.Sprintf("%d", m.Searches))
	printStat("Recording time", fmt.Sprintf("%.0f min", m.RecordingMinutes))
	printStat("Time in app", fmt.Sprintf("%.0f min", m.TimeSpentMinutes))
	fmt.Printf(" %s %s %s\n", output.StyleLabel.Render("Avg daily score"),
		output.ScoreBar(m.AvgDailyScore, 20), trendLabel(m.Trend))

	if len(m.Weekly) > 0 {
		fmt.Println(output.Section("By week"))
		tbl := output.NewTable("Week of", "Items", "Searches", "Recording min", "Score").AlignRight(1, 2, 3, 4)
		for _, w := range m.Weekly {
			tbl.AddRow(w.WeekStart,
				fmt.Sprintf("%d", w.ItemsCreated),
				fmt.Sprintf("%d", w.SearchCount),
				fmt.Sprintf("%.0f", w.RecordingMinutes),
				fmt.Sprintf("%.0f", w.AvgProductivityScore))
		}
		fmt.Println()
		tbl.Print()
	}
	fmt.Println()
	return nil
}

func trendLabel(t calculator.Trend) string {
	switch t {
	case calculator.TrendUp:
		return output.StyleSuccess.Render("▲ trending up")
	case calculator.TrendDown:
		return output.StyleError.Render("▼ trending down")
	default:
		return output.StyleMuted.Render("─ stable")
	}
}
