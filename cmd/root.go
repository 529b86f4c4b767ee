package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"hypertask-mcp/internal/client"
	"hypertask-mcp/internal/config"
	"hypertask-mcp/internal/mcperr"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// getenv is swapped out by tests.
var getenv = os.Getenv

var rootCmd = newRootCmd()

type rootOptions struct {
	url     string
	token   string
	timeout time.Duration
	verbose bool
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "hypertask-mcp <tool-name> [json-args]",
		Short: "Call tools on a remote MCP server",
		Long: `Call tools on a remote MCP server over streamable HTTP.

The endpoint and bearer token come from ` + config.EnvURL + ` and ` + config.EnvToken + `
unless overridden by flags. json-args must be a JSON object and defaults to {}.
Arguments after json-args are ignored.`,
		Example: `  hypertask-mcp list-tools
  hypertask-mcp create_task '{"title":"Buy milk"}'`,
		Args: cobra.MinimumNArgs(1),
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// argument errors print usage, failures after this point do not
			cmd.SilenceUsage = true
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCallTool(cmd, opts, args)
		},
		SilenceErrors: true,
	}
	cmd.CompletionOptions.DisableDefaultCmd = true

	flags := cmd.PersistentFlags()
	flags.StringVar(&opts.url, "url", config.DefaultURL, "MCP endpoint URL (env "+config.EnvURL+")")
	flags.StringVar(&opts.token, "token", "", "bearer token (env "+config.EnvToken+")")
	flags.DurationVar(&opts.timeout, "timeout", config.Defaults().Timeout, "abort a request after this long without network activity")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "log requests and responses to stderr")

	cmd.AddCommand(newListToolsCmd(opts))
	cmd.AddCommand(newExampleServerCmd(opts))

	return cmd
}

// Execute runs the root command; any error is printed to stderr and exits 1.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// config layers flags the user actually set over the environment.
func (o *rootOptions) config(cmd *cobra.Command) (config.Config, error) {
	cfg := config.FromEnv(getenv)
	cfg.Timeout = o.timeout
	cfg.Verbose = o.verbose

	flags := cmd.Flags()
	if flags.Changed("url") {
		cfg.URL = o.url
	}
	if flags.Changed("token") {
		cfg.Token = o.token
	}

	return cfg, cfg.Validate()
}

func (o *rootOptions) logger(cmd *cobra.Command) zerolog.Logger {
	return newLogger(cmd.ErrOrStderr(), o.verbose)
}

func (o *rootOptions) newClient(cmd *cobra.Command) (*client.Client, error) {
	cfg, err := o.config(cmd)
	if err != nil {
		return nil, err
	}
	return client.New(cfg, client.WithLogger(o.logger(cmd)))
}

func newLogger(w io.Writer, verbose bool) zerolog.Logger {
	level := zerolog.WarnLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: w, TimeFormat: `2006-01-02 15:04:05`}).
		Level(level).
		With().Timestamp().Logger()
}

func runCallTool(cmd *cobra.Command, opts *rootOptions, args []string) error {
	c, err := opts.newClient(cmd)
	if err != nil {
		return err
	}

	toolArgs := map[string]any{}
	if len(args) > 1 {
		toolArgs, err = parseToolArgs(args[1])
		if err != nil {
			return err
		}
	}

	resp, err := c.CallTool(cmd.Context(), args[0], toolArgs)
	if err != nil {
		return err
	}

	if payload := resp.ErrorJSON(); payload != nil {
		return errors.New(compactJSON(payload))
	}

	return printToolResult(cmd.OutOrStdout(), resp)
}

// parseToolArgs decodes the json-args argument. Numbers are kept verbatim.
func parseToolArgs(s string) (map[string]any, error) {
	dec := json.NewDecoder(strings.NewReader(s))
	dec.UseNumber()

	var args map[string]any
	if err := dec.Decode(&args); err != nil {
		return nil, mcperr.Configf("json-args must be a JSON object: %v", err)
	}
	if dec.More() {
		return nil, mcperr.Configf("json-args must be a single JSON object")
	}
	if args == nil {
		args = map[string]any{}
	}
	return args, nil
}
