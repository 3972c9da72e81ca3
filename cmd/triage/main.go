package main

import (
	"os"

	"github.com/findajob/job-triage/internal/cli"
	"github.com/findajob/job-triage/pkg/log"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func main() {
	level := os.Getenv("TRIAGE_LOG_LEVEL")
	if level == "" {
		// stdout belongs to the triage view
		level = "error"
	}
	logger := log.InitLog(log.ParseLevel(level))
	defer func() { _ = logger.Sync() }()
	undo := zap.ReplaceGlobals(logger)
	defer undo()

	command := NewTriageCtlCommand()
	if err := command.Execute(); err != nil {
		os.Exit(1)
	}
}

func NewTriageCtlCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "triage [flags] [options]",
		Short: "triage reviews the processed jobs of the job-triage service.",
		Run: func(cmd *cobra.Command, args []string) {
			_ = cmd.Help()
			os.Exit(1)
		},
	}
	cmd.AddCommand(cli.NewCmdGet())
	cmd.AddCommand(cli.NewCmdSetStatus())
	cmd.AddCommand(cli.NewCmdTriage())
	cmd.AddCommand(cli.NewCmdVersion())

	return cmd
}
