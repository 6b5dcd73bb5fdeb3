package main

import (
	"fmt"
	"io"

	"github.com/entrhq/forge-meta/pkg/config"
	"github.com/entrhq/forge-meta/pkg/logging"
	"github.com/entrhq/forge-meta/pkg/observations"
	"github.com/entrhq/forge-meta/pkg/ui"
	"github.com/spf13/cobra"
)

// app holds what the subcommands share for one invocation.
type app struct {
	stdout   io.Writer
	out      *ui.Printer // confirmations, on stdout
	status   *ui.Printer // failures and warnings, on stderr
	store    *observations.FileStore
	closeLog func()
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:           "observations",
		Short:         "Manage self-documentation observations",
		Long:          `observations records behavioral notes about tools, skills, agents, MCP servers and configuration in a single JSON store, so they can be reviewed and filed upstream later.`,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.openStore()
		},
	}

	root.AddCommand(newListCmd(a), newAddCmd(a), newRemoveCmd(a), newGetCmd(a))
	return root
}

func (a *app) openStore() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logging.Configure(cfg.LogDirectory(), cfg.Debug)
	// On error NewLogger falls back to stderr and says so itself
	logger, _ := logging.NewLogger("observations")
	a.closeLog = func() { logger.Close() }

	a.store = observations.NewFileStore(cfg.ObservationsPath(),
		observations.WithWarnings(a.status),
		observations.WithLogger(logger),
	)
	logger.Debugf("using store %s", a.store.Path())
	return nil
}

// printJSON writes v as indented JSON followed by a newline.
func (a *app) printJSON(v any) error {
	data, err := observations.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode output: %w", err)
	}
	_, err = fmt.Fprintln(a.stdout, string(data))
	return err
}
