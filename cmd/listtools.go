package cmd

import (
	"fmt"

	"hypertask-mcp/internal/client"

	"github.com/spf13/cobra"
)

func newListToolsCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list-tools",
		Short: "List the tools the MCP server offers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := opts.newClient(cmd)
			if err != nil {
				return err
			}

			resp, err := c.ListTools(cmd.Context())
			if err != nil {
				return err
			}

			tools, ok := client.Tools(resp)
			if !ok {
				_, err = fmt.Fprintln(cmd.OutOrStdout(), indentJSON(resp.Raw))
				return err
			}
			return printTools(cmd.OutOrStdout(), tools)
		},
	}
}
