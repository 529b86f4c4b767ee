package cmd

import (
	"bytes"

	"github.com/spf13/cobra"
)

// CommandRunner executes cmd with args and returns what it wrote to stdout and
// stderr separately.
func CommandRunner(cmd *cobra.Command, args ...string) (stdout string, stderr string, err error) {
	var outBuf, errBuf bytes.Buffer
	cmd.SetOut(&outBuf)
	cmd.SetErr(&errBuf)
	cmd.SetArgs(args)

	err = cmd.Execute()

	return outBuf.String(), errBuf.String(), err
}
