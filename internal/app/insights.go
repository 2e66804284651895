package app

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kushagra0526/VoiceNotebook-QA/internal/output"
)

var (
	insightsCategory string
	insightsDismiss  string
)

var insightsCmd = &cobra.Command{
	Use:   "insights",
	Short: "Show generated insights and recommendations",
	RunE:  runInsights,
}

func init() {
	insightsCmd.Flags().StringVar(&insightsCategory, "category", "", "Filter insights by category")
	insightsCmd.Flags().StringVar(&insightsDismiss, "dismiss", "", "Dismiss a recommendation by ID")
	rootCmd.AddCommand(insightsCmd)
}

func runInsights(cmd *cobra.Command, args []string) error {
	e, err := openEnv()
	if err != nil {
		return err
	}
	defer e.Close()

	if insightsDismiss != "" {
		if err := e.service.DismissRecommendation(insightsDismiss); err != nil {
			return err
		}
		fmt.Println("dismissed", insightsDismiss)
		return nil
	}

	insights, err := e.service.Insights(insightsCategory)
	if err != nil {
		return err
	}
	recs, err := e.service.Recommendations()
	if err != nil {
		return err
	}

	if flagJSON {
		return printJSON(map[string]any{
			"insights":        insights,
			"recommendations": recs,
		})
	}

	if len(insights) == 0 && len(recs) == 0 {
		fmt.Println("nothing yet — insights appear as usage accumulates")
		return nil
	}

	if len(insights) > 0 {
		fmt.Println(output.Section("Insights"))
		for _, in := range insights {
			fmt.Printf("\n %s %s\n %s\n",
				output.StyleBold.Render(in.Title),
				output.StyleMuted.Render("("+in.Category+")"),
				in.Description)
		}
	}

	if len(recs) > 0 {
		fmt.Println(output.Section("Recommendations"))
		for _, r := range recs {
			fmt.Printf("\n %s %s\n %s\n",
				output.StyleWarning.Render(r.Title),
				output.StyleMuted.Render("(dismiss: --dismiss "+r.ID+")"),
				r.Description)
		}
	}
	fmt.Println()
	return nil
}
