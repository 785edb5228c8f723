// Command southpole estimates the greenhouse-gas emissions of South Pole
// energy logistics.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/rshade/southpole/internal/cli"
	"github.com/rshade/southpole/pkg/version"
)

// Exit codes.
const (
	exitOK          = 0
	exitError       = 1
	exitSweepFailed = 2
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	root := cli.NewRootCmd(version.GetVersion())
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	if err := root.Execute(); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitCode(err)
	}
	return exitOK
}

// exitCode maps an error to the process exit status. Partially failed
// sweeps get a distinct code since their output is still usable.
func exitCode(err error) int {
	var sweepErr *cli.SweepFailedError
	if errors.As(err, &sweepErr) {
		return exitSweepFailed
	}
	return exitError
}
