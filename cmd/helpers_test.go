package cmd

import (
	"bytes"
	"testing"

	"github.com/spf13/cobra"
)

// newTestRoot builds the full command tree around ws with captured
// output.
func newTestRoot(ws Workspace, args ...string) (*cobra.Command, *bytes.Buffer, *bytes.Buffer) {
	root := BuildCommandTree(ws)
	stdout := new(bytes.Buffer)
	stderr := new(bytes.Buffer)
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.SetArgs(args)
	return root, stdout, stderr
}

// run executes args against ws and returns stdout and the error.
func run(t *testing.T, ws Workspace, args ...string) (string, error) {
	t.Helper()
	root, stdout, _ := newTestRoot(ws, args...)
	err := root.Execute()
	return stdout.String(), err
}
