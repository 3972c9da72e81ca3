package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	api "github.com/findajob/job-triage/api/v1alpha1"
	"github.com/findajob/job-triage/internal/client"
	"github.com/findajob/job-triage/internal/triage"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
)

const triageHelp = "[n]ext [p]revious [a]pplied [r]ejected [d]etails re[l]oad [q]uit"

type TriageOptions struct {
	GlobalOptions

	Query         client.ListQuery
	ViewStatePath string
	RedisURL      string
	RedisKey      string
	StrictWrites  bool
	Reset         bool
}

func DefaultTriageOptions() *TriageOptions {
	return &TriageOptions{
		GlobalOptions: DefaultGlobalOptions(),
		ViewStatePath: defaultViewStatePath(),
	}
}

func NewCmdTriage() *cobra.Command {
	o := DefaultTriageOptions()
	cmd := &cobra.Command{
		Use:   "triage",
		Short: "Review processed jobs one at a time.",
		Long: "Review processed jobs one at a time and mark them applied or rejected.\n" +
			"Keys: " + triageHelp,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := o.Complete(cmd, args); err != nil {
				return err
			}
			if err := o.Validate(args); err != nil {
				return err
			}
			return o.Run(cmd.Context(), cmd)
		},
		SilenceUsage: true,
	}
	o.Bind(cmd.Flags())
	return cmd
}

func (o *TriageOptions) Bind(fs *pflag.FlagSet) {
	o.GlobalOptions.Bind(fs)

	bindQuery(fs, &o.Query)
	fs.StringVar(&o.ViewStatePath, "view-state", o.ViewStatePath, "File keeping the view state between sessions")
	fs.StringVar(&o.RedisURL, "redis-url", o.RedisURL, "Keep the view state in redis instead, e.g. redis://localhost:6379/0")
	fs.StringVar(&o.RedisKey, "redis-key", o.RedisKey, "Redis key of the view state")
	fs.BoolVar(&o.StrictWrites, "strict", o.StrictWrites, "Stay on a job when its status write fails")
	fs.BoolVar(&o.Reset, "reset", o.Reset, "Ignore the saved view state")
}

func (o *TriageOptions) Complete(cmd *cobra.Command, args []string) error {
	if err := o.GlobalOptions.Complete(cmd, args); err != nil {
		return err
	}
	// an explicit query replaces the saved one
	for _, name := range []string{"status", "seniority", "employer", "title", "sort-by", "order"} {
		if cmd.Flags().Changed(name) {
			o.Reset = true
		}
	}
	return nil
}

func (o *TriageOptions) viewStore() (triage.ViewStore, func(), error) {
	if o.RedisURL != "" {
		store, err := triage.NewRedisViewStore(o.RedisURL, o.RedisKey)
		if err != nil {
			return nil, nil, err
		}
		return store, func() { _ = store.Close() }, nil
	}
	if o.ViewStatePath == "" {
		return nil, func() {}, nil
	}
	return triage.NewFileViewStore(o.ViewStatePath), func() {}, nil
}

func (o *TriageOptions) Run(ctx context.Context, cmd *cobra.Command) error {
	store, closeStore, err := o.viewStore()
	if err != nil {
		return err
	}
	defer closeStore()

	view := triage.ViewState{
		Filter: triage.Filter{
			Status:    o.Query.Status,
			Seniority: o.Query.Seniority,
			Employer:  o.Query.Employer,
			Title:     o.Query.Title,
		},
		SortBy: o.Query.SortBy,
		Order:  o.Query.Order,
		Page:   1,
	}
	if o.Reset && store != nil {
		if err := store.Save(ctx, view); err != nil {
			zap.S().Named("triage").Warnw("failed to reset view state", "error", err)
		}
	}

	session := triage.NewSession(o.Client(), store, view, triage.Options{StrictWrites: o.StrictWrites})
	return runTriageLoop(ctx, session, cmd.InOrStdin(), o.Out(), cmd.ErrOrStderr())
}

// runTriageLoop reads one key per line from in until q or end of input.
func runTriageLoop(ctx context.Context, session *triage.Session, in io.Reader, out, errOut io.Writer) error {
	session.Start(ctx)
	render(out, session.Snapshot(), false)

	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprintf(out, "%s > ", triageHelp)
		if !scanner.Scan() {
			fmt.Fprintln(out)
			return scanner.Err()
		}

		details := false
		switch strings.ToLower(strings.TrimSpace(scanner.Text())) {
		case "n":
			session.Advance(ctx)
		case "p":
			session.Regress(ctx)
		case "a":
			session.MarkApplied(ctx)
		case "r":
			session.MarkRejected(ctx)
		case "l":
			session.Reload(ctx)
		case "d":
			details = true
		case "q":
			return nil
		case "":
			continue
		default:
			fmt.Fprintf(errOut, "unknown key %q\n", scanner.Text())
			continue
		}

		reportFailures(session, errOut)
		render(out, session.Snapshot(), details)
	}
}

func reportFailures(session *triage.Session, errOut io.Writer) {
	for {
		select {
		case e := <-session.Events():
			if e.Kind == triage.EventStatusWriteFailed {
				fmt.Fprintf(errOut, "warning: setting processed-job/%d to %s failed: %v\n", e.ProcessedJobID, e.Status, e.Err)
			}
		default:
			return
		}
	}
}

func render(out io.Writer, snap triage.Snapshot, details bool) {
	switch snap.State {
	case triage.StateLoading:
		fmt.Fprintln(out, "loading...")
	case triage.StateEmpty:
		fmt.Fprintln(out, "no processed jobs match")
	case triage.StateError:
		fmt.Fprintf(out, "error: %s (press l to retry)\n", snap.Message)
	case triage.StateReady:
		renderJob(out, snap, details)
	}
}

func renderJob(out io.Writer, snap triage.Snapshot, details bool) {
	j := snap.Item
	fmt.Fprintf(out, "[%d/%d] %s at %s\n", snap.Position+1, snap.Total, j.Title, j.Employer)
	fmt.Fprintf(out, "  status: %s  seniority: %s  location: %s\n", j.Status, j.Seniority, j.Location)
	if j.Url != "" {
		fmt.Fprintf(out, "  %s\n", j.Url)
	}
	if j.Summary != nil {
		fmt.Fprintf(out, "  %s\n", summaryLine(j.Summary))
		if j.Summary.BackgroundAligns != nil {
			fmt.Fprintf(out, "  alignment: %d\n", j.Summary.BackgroundAligns.Total)
		}
	}
	if !details {
		return
	}
	if j.Summary != nil {
		for _, r := range j.Summary.Responsibilities {
			fmt.Fprintf(out, "  - %s\n", r)
		}
		for _, r := range j.Summary.Requirements {
			fmt.Fprintf(out, "  * %s\n", r)
		}
	}
	if l := j.CoverLetter; l != nil {
		fmt.Fprintln(out)
		if l.Raw != nil {
			fmt.Fprintln(out, *l.Raw)
			return
		}
		fmt.Fprintf(out, "%s\n\n%s\n\n%s\n", l.Subject, l.Body, l.Closing)
	}
}

func summaryLine(s *api.JobSummary) string {
	if s.Raw != nil {
		return *s.Raw
	}
	return s.Summary
}
