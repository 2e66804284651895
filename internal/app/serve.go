package app

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/kushagra0526/VoiceNotebook-QA/internal/scheduler"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the background maintenance scheduler",
	Long: `Run in the foreground and execute the maintenance jobs on schedule:
nightly snapshot recomputation, midnight challenge rollover and goal expiry,
and the weekly event retention sweep. Stop with Ctrl-C.`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	e, err := openEnv()
	if err != nil {
		return err
	}
	defer e.Close()

	sched, err := scheduler.New(e.service, e.engine, e.db, e.cfg.RetentionDays, logrus.StandardLogger())
	if err != nil {
		return err
	}

	sched.Start()
	fmt.Println("scheduler running — press Ctrl-C to stop")

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	<-sig

	fmt.Println("\nstopping...")
	sched.Stop()
	return nil
}
