// Command observations manages the self-documentation observation store:
// behavioral notes recorded while working with the plugin ecosystem.
package main

import (
	"errors"
	"io"
	"os"

	"github.com/entrhq/forge-meta/pkg/observations"
	"github.com/entrhq/forge-meta/pkg/ui"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run executes the CLI and returns the process exit code.
func run(args []string, stdout, stderr io.Writer) int {
	status := ui.NewPrinter(stderr)
	a := &app{stdout: stdout, out: ui.NewPrinter(stdout), status: status}

	root := newRootCmd(a)
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	err := root.Execute()
	if a.closeLog != nil {
		a.closeLog()
	}
	if err == nil {
		return 0
	}

	var nf *notFoundError
	if errors.As(err, &nf) {
		status.Failure("Observation %s not found", nf.id)
	} else {
		status.Failure("%v", err)
	}
	return 1
}

type notFoundError struct {
	id string
}

func (e *notFoundError) Error() string { return "observation " + e.id + " not found" }

// checkNotFound converts the store's not-found error into the CLI's report.
func checkNotFound(err error, id string) error {
	if errors.Is(err, observations.ErrNotFound) {
		return &notFoundError{id: id}
	}
	return err
}
