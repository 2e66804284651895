package app

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/kushagra0526/VoiceNotebook-QA/internal/collector"
	"github.com/kushagra0526/VoiceNotebook-QA/internal/event"
)

// importAction is one entry of an exported action log.
type importAction struct {
	Type event.Type     `json:"type"`
	Data map[string]any `json:"data"`
}

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Replay an exported action log as a session",
	Long: `Read a JSON array of actions ({"type": ..., "data": {...}}) and run them
through the event collector as one session: events are buffered, flushed in
batches, and folded into today's usage counters. Unknown action types are
skipped with a warning.`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

func init() {
	rootCmd.AddCommand(importCmd)
}

func runImport(cmd *cobra.Command, args []string) error {
	raw, err := os.ReadFile(args[0])
	if err != nil {
		return err
	}
	var actions []importAction
	if err := json.Unmarshal(raw, &actions); err != nil {
		return fmt.Errorf("parsing %s: %w", args[0], err)
	}

	e, err := openEnv()
	if err != nil {
		return err
	}
	defer e.Close()

	col := collector.New(e.db, collector.Options{
		FlushInterval: time.Second,
		Logger:        logrus.StandardLogger(),
	})
	for _, a := range actions {
		col.Track(a.Type, a.Data)
	}
	sessionID := col.SessionID()
	col.Close()

	fmt.Printf("imported %d actions (session %s)\n", len(actions), sessionID)
	return nil
}
