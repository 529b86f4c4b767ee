package cmd

import (
	"fmt"
	"net"
	"os/signal"
	"syscall"

	"hypertask-mcp/internal/examplemcp"

	"github.com/spf13/cobra"
)

type exampleServerOptions struct {
	flavor string
	port   int
	path   string
	name   string
}

func newExampleServerCmd(root *rootOptions) *cobra.Command {
	opts := &exampleServerOptions{}

	cmd := &cobra.Command{
		Use:   "example-server",
		Short: "Run a local example MCP server",
		Long: `Run a local MCP server exposing echo, add and lower tools.

--flavor json answers with application/json bodies, --flavor sse answers with
text/event-stream message events. Point the client at it with --url.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := root.logger(cmd)

			handler, err := examplemcp.NewHandler(opts.flavor, opts.name, opts.path)
			if err != nil {
				return err
			}

			closeLine := &examplemcp.CloseLine{}
			defer closeLine.Close()

			listener, cancel, err := examplemcp.RunServerAsync(handler, opts.port, logger)
			if err != nil {
				return err
			}
			closeLine.Add(cancel)

			path := opts.path
			if opts.flavor == examplemcp.FlavorSSE {
				path = "/"
			}
			port := listener.Addr().(*net.TCPAddr).Port
			fmt.Fprintf(cmd.OutOrStdout(), "%s example MCP server listening on http://127.0.0.1:%d%s\n", opts.flavor, port, path)

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			<-ctx.Done()

			logger.Info().Msg("example server exiting")
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.flavor, "flavor", examplemcp.FlavorJSON, "response encoding: json or sse")
	cmd.Flags().IntVar(&opts.port, "port", 8080, "port to listen on (0 picks a free port)")
	cmd.Flags().StringVar(&opts.path, "path", "/mcp", "endpoint path (json flavor)")
	cmd.Flags().StringVar(&opts.name, "name", "hypertask-example", "server name reported in initialize")

	return cmd
}
