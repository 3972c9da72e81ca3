package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/findajob/job-triage/internal/client"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

type GlobalOptions struct {
	ServerUrl      string
	ConfigFilePath string
	Timeout        time.Duration

	out io.Writer
}

func DefaultGlobalOptions() GlobalOptions {
	return GlobalOptions{
		ServerUrl:      "http://localhost:8080",
		ConfigFilePath: client.DefaultConfigPath(),
		Timeout:        30 * time.Second,
	}
}

func (o *GlobalOptions) Bind(fs *pflag.FlagSet) {
	fs.StringVarP(&o.ServerUrl, "server-url", "u", o.ServerUrl, "Address of the server")
	fs.StringVar(&o.ConfigFilePath, "config", o.ConfigFilePath, "Path to the client config file, used when --server-url is not set")
	fs.DurationVar(&o.Timeout, "timeout", o.Timeout, "Timeout of every api call")
}

// Complete takes the server from the config file unless --server-url was given.
func (o *GlobalOptions) Complete(cmd *cobra.Command, args []string) error {
	o.out = cmd.OutOrStdout()

	if cmd.Flags().Changed("server-url") || o.ConfigFilePath == "" {
		return nil
	}
	cfg, err := client.ParseConfigFile(o.ConfigFilePath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	o.ServerUrl = cfg.Service.Server
	return nil
}

func (o *GlobalOptions) Validate(args []string) error {
	if o.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive")
	}
	cfg := client.NewDefault()
	cfg.Service.Server = o.ServerUrl
	return cfg.Validate()
}

func (o *GlobalOptions) Client() *client.JobsClient {
	return client.NewJobsClient(o.ServerUrl, o.Timeout)
}

func (o *GlobalOptions) Out() io.Writer {
	if o.out == nil {
		return os.Stdout
	}
	return o.out
}
