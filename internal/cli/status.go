package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

type SetStatusOptions struct {
	GlobalOptions
}

func DefaultSetStatusOptions() *SetStatusOptions {
	return &SetStatusOptions{
		GlobalOptions: DefaultGlobalOptions(),
	}
}

func NewCmdSetStatus() *cobra.Command {
	o := DefaultSetStatusOptions()
	cmd := &cobra.Command{
		Use:     "set-status PROCESSED_JOB_ID STATUS",
		Short:   "Set the status of the job behind a processed job.",
		Example: "  triage set-status 42 interview_scheduled",
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := o.Complete(cmd, args); err != nil {
				return err
			}
			if err := o.Validate(args); err != nil {
				return err
			}
			return o.Run(cmd.Context(), args)
		},
		SilenceUsage: true,
	}
	o.Bind(cmd.Flags())
	return cmd
}

func (o *SetStatusOptions) Validate(args []string) error {
	if err := o.GlobalOptions.Validate(args); err != nil {
		return err
	}
	_, err := parseID(args[0])
	return err
}

// Run leaves the status check to the server, which owns the enumeration.
func (o *SetStatusOptions) Run(ctx context.Context, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	resp, err := o.Client().SetStatus(ctx, id, args[1])
	if err != nil {
		return fmt.Errorf("setting status of processed-job/%d: %w", id, err)
	}
	fmt.Fprintf(o.Out(), "job %d is now %s\n", resp.JobId, resp.Status)
	return nil
}
