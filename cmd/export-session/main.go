// Command export-session converts a line-delimited JSON conversation log
// into a plain-text transcript that reads like the terminal session did.
package main

import (
	"errors"
	"io"
	"os"

	"github.com/atotto/clipboard"
	"github.com/entrhq/forge-meta/pkg/config"
	"github.com/entrhq/forge-meta/pkg/logging"
	"github.com/entrhq/forge-meta/pkg/transcript"
	"github.com/entrhq/forge-meta/pkg/ui"
	"github.com/spf13/cobra"
)

// errUsage reports a missing argument after the usage text has been shown.
var errUsage = errors.New("usage")

// writeClipboard is replaced in tests.
var writeClipboard = clipboard.WriteAll

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run executes the CLI and returns the process exit code.
func run(args []string, stdout, stderr io.Writer) int {
	status := ui.NewPrinter(stderr)
	out := ui.NewPrinter(stdout)

	cmd := newExportCmd(out, status)
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	err := cmd.Execute()
	switch {
	case err == nil:
		return 0
	case errors.Is(err, errUsage):
		return 1
	default:
		status.Failure("Error: %v", err)
		return 1
	}
}

func newExportCmd(out, status *ui.Printer) *cobra.Command {
	var copyToClipboard bool

	cmd := &cobra.Command{
		Use:   "export-session <session-file.jsonl> [output.txt]",
		Short: "Export a conversation log as a readable transcript",
		Example: `  export-session ~/.claude/projects/my-project/session-id.jsonl transcript.txt
  export-session session.jsonl --copy`,
		Args:          cobra.MaximumNArgs(2),
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				_ = cmd.Usage()
				return errUsage
			}

			cfg, err := config.Load()
			if err != nil {
				return err
			}
			logging.Configure(cfg.LogDirectory(), cfg.Debug)
			// On error NewLogger falls back to stderr and says so itself
			logger, _ := logging.NewLogger("export-session")
			defer logger.Close()

			output := cfg.TranscriptOutput()
			if len(args) > 1 {
				output = args[1]
			}

			report, err := transcript.Export(transcript.ExportOptions{
				InputPath:  args[0],
				OutputPath: output,
				Home:       cfg.Home,
				Logger:     logger,
			})
			if err != nil {
				logger.Errorf("export failed: %v", err)
				return err
			}

			out.Success("Exported session to: %s", report.OutputPath)
			if report.Summary != "" {
				out.Plain("  Summary: %s", report.Summary)
			}
			out.Plain("  File size: %.1f KB", report.SizeKB())

			if copyToClipboard {
				if err := writeClipboard(report.Transcript.String()); err != nil {
					logger.Warnf("clipboard: %v", err)
					status.Warning("Could not copy transcript to clipboard: %v", err)
				} else {
					out.Plain("  Copied to clipboard")
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&copyToClipboard, "copy", false, "also copy the transcript to the clipboard")
	return cmd
}
