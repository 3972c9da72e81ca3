package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	api "github.com/findajob/job-triage/api/v1alpha1"
	"github.com/findajob/job-triage/internal/client"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/thoas/go-funk"
	"sigs.k8s.io/yaml"
)

const (
	jsonFormat = "json"
	yamlFormat = "yaml"
)

var (
	legalOutputTypes = []string{jsonFormat, yamlFormat}
)

type GetOptions struct {
	GlobalOptions

	Output string
	Query  client.ListQuery
}

func DefaultGetOptions() *GetOptions {
	return &GetOptions{
		GlobalOptions: DefaultGlobalOptions(),
	}
}

func NewCmdGet() *cobra.Command {
	o := DefaultGetOptions()
	cmd := &cobra.Command{
		Use:   "get (TYPE | TYPE/ID)",
		Short: "Display one or many resources.",
		Example: "  triage get processed-jobs --status new --sort-by seniority --order asc\n" +
			"  triage get processed-job/42 -o yaml\n" +
			"  triage get statuses",
		Args: cobra.ExactArgs(1),
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

func (o *GetOptions) Bind(fs *pflag.FlagSet) {
	o.GlobalOptions.Bind(fs)

	fs.StringVarP(&o.Output, "output", "o", o.Output, fmt.Sprintf("Output format. One of: (%s).", strings.Join(legalOutputTypes, ", ")))
	bindQuery(fs, &o.Query)
	fs.IntVar(&o.Query.Page, "page", 0, "Page to list, starting at 1")
	fs.IntVar(&o.Query.PageSize, "page-size", 0, "Number of items per page")
}

func bindQuery(fs *pflag.FlagSet, q *client.ListQuery) {
	fs.StringVar(&q.Status, "status", "", "Only jobs with this status")
	fs.StringVar(&q.Seniority, "seniority", "", "Only jobs with this seniority level")
	fs.StringVar(&q.Employer, "employer", "", "Only jobs whose employer contains this text")
	fs.StringVar(&q.Title, "title", "", "Only jobs whose title contains this text")
	fs.StringVar(&q.SortBy, "sort-by", "", "Sort key. One of: (created_at, status, seniority, title, employer).")
	fs.StringVar(&q.Order, "order", "", "Sort order. One of: (asc, desc).")
}

func (o *GetOptions) Complete(cmd *cobra.Command, args []string) error {
	if err := o.GlobalOptions.Complete(cmd, args); err != nil {
		return err
	}
	return nil
}

func (o *GetOptions) Validate(args []string) error {
	if err := o.GlobalOptions.Validate(args); err != nil {
		return err
	}

	_, _, err := parseAndValidateKindId(args[0])
	if err != nil {
		return err
	}

	if len(o.Output) > 0 && !funk.Contains(legalOutputTypes, o.Output) {
		return fmt.Errorf("output format must be one of %s", strings.Join(legalOutputTypes, ", "))
	}

	return nil
}

func (o *GetOptions) Run(ctx context.Context, args []string) error {
	c := o.Client()

	var response interface{}

	kind, id, err := parseAndValidateKindId(args[0])
	if err != nil {
		return err
	}
	switch {
	case kind == ProcessedJobKind && id != nil:
		response, err = c.GetProcessedJob(ctx, *id)
	case kind == ProcessedJobKind && id == nil:
		response, err = c.ListProcessedJobs(ctx, o.Query)
	case kind == JobStatusKind:
		response, err = c.ListJobStatuses(ctx)
	default:
		return fmt.Errorf("unsupported resource kind: %s", kind)
	}
	return processResponse(o.Out(), response, err, kind, id, o.Output)
}

func processResponse(out io.Writer, response interface{}, err error, kind string, id *int64, output string) error {
	errorPrefix := fmt.Sprintf("listing %s", plural(kind))
	if id != nil {
		errorPrefix = fmt.Sprintf("reading %s/%d", kind, *id)
	}

	if err != nil {
		return fmt.Errorf(errorPrefix+": %w", err)
	}

	switch output {
	case jsonFormat:
		marshalled, err := json.Marshal(response)
		if err != nil {
			return fmt.Errorf("marshalling resource: %w", err)
		}
		fmt.Fprintf(out, "%s\n", string(marshalled))
		return nil
	case yamlFormat:
		marshalled, err := yaml.Marshal(response)
		if err != nil {
			return fmt.Errorf("marshalling resource: %w", err)
		}
		fmt.Fprintf(out, "%s\n", string(marshalled))
		return nil
	default:
		return printTable(out, response)
	}
}

func printTable(out io.Writer, response interface{}) error {
	w := tabwriter.NewWriter(out, 0, 8, 1, '\t', 0)
	switch r := response.(type) {
	case *api.JobList:
		printJobsTable(w, r.Items...)
		fmt.Fprintf(w, "\npage %d, %d of %d\n", r.Page, len(r.Items), r.Total)
	case *api.JobView:
		printJobsTable(w, *r)
	case api.JobStatusList:
		fmt.Fprintln(w, "STATUS")
		for _, s := range r {
			fmt.Fprintln(w, s)
		}
	default:
		return fmt.Errorf("unknown resource type %T", response)
	}
	return w.Flush()
}

func printJobsTable(w *tabwriter.Writer, jobs ...api.JobView) {
	fmt.Fprintln(w, "ID\tJOB ID\tSTATUS\tSENIORITY\tEMPLOYER\tTITLE\tCREATED")
	for _, j := range jobs {
		fmt.Fprintf(w, "%d\t%d\t%s\t%s\t%s\t%s\t%s\n", j.Id, j.JobId, j.Status, j.Seniority, j.Employer, j.Title, j.CreatedAt.Format("2006-01-02"))
	}
}
