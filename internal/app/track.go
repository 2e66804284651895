package app

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kushagra0526/VoiceNotebook-QA/internal/collector"
	"github.com/kushagra0526/VoiceNotebook-QA/internal/event"
	"github.com/kushagra0526/VoiceNotebook-QA/internal/store"
)

var (
	trackData     string
	trackDuration float64
	trackSession  string
)

var trackCmd = &cobra.Command{
	Use:   "track <event-type>",
	Short: "Record a usage event",
	Long: `Append one usage event to the analytics store and fold it into today's
usage counters.

Examples:
  vnstats track voice_recording_completed --duration 95
  vnstats track search_performed --data '{"query":"groceries","result_count":3}'
  vnstats track item_deleted`,
	Args: cobra.ExactArgs(1),
	RunE: runTrack,
}

func init() {
	trackCmd.Flags().StringVar(&trackData, "data", "", "Event payload as JSON")
	trackCmd.Flags().Float64Var(&trackDuration, "duration", 0, "Event duration in seconds")
	trackCmd.Flags().StringVar(&trackSession, "session", "cli", "Session ID to attach")
	rootCmd.AddCommand(trackCmd)
}

func runTrack(cmd *cobra.Command, args []string) error {
	typ := event.Type(args[0])
	if !typ.Valid() {
		names := make([]string, 0, len(event.Types()))
		for _, t := range event.Types() {
			names = append(names, string(t))
		}
		return fmt.Errorf("unknown event type %q (valid: %s)", args[0], strings.Join(names, ", "))
	}

	data := map[string]any{}
	if trackData != "" {
		if err := json.Unmarshal([]byte(trackData), &data); err != nil {
			return fmt.Errorf("parsing --data: %w", err)
		}
	}
	if trackDuration > 0 {
		data["duration"] = trackDuration
	}

	e, err := openEnv()
	if err != nil {
		return err
	}
	defer e.Close()

	ev := event.New(typ, trackSession, data)
	if err := e.db.AppendEvent(ev); err != nil {
		return fmt.Errorf("appending event: %w", err)
	}
	if err := collector.Apply(e.db, ev); err != nil {
		return fmt.Errorf("updating daily usage: %w", err)
	}
	if row, err := e.db.GetDailyUsage(ev.Timestamp.Format(store.DateFormat)); err == nil && row != nil {
		if err := e.engine.UpdateChallengesFromUsage(*row); err != nil {
			return fmt.Errorf("updating challenges: %w", err)
		}
	}

	if flagJSON {
		return printJSON(ev)
	}
	fmt.Printf("recorded %s (%s)\n", ev.Type, ev.ID)
	return nil
}
