package transcript

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/entrhq/forge-meta/pkg/logging"
)

// ExportOptions configures Export.
type ExportOptions struct {
	InputPath  string
	OutputPath string
	// Home is used to shorten the working directory in the header
	Home   string
	Logger *logging.Logger
}

// Report describes a finished export.
type Report struct {
	OutputPath string
	Summary    string
	SizeBytes  int64
	Transcript *Transcript
}

// SizeKB is the size of the written file in kilobytes.
func (r *Report) SizeKB() float64 {
	return float64(r.SizeBytes) / 1024
}

// Export reads the log at InputPath, renders it and writes the transcript
// to OutputPath in a single write, creating parent directories as needed.
// Nothing is written when the log cannot be read or parsed.
func Export(opts ExportOptions) (*Report, error) {
	logger := opts.Logger
	if logger == nil {
		logger = logging.Nop("transcript")
	}

	entries, err := ParseFile(opts.InputPath)
	if err != nil {
		return nil, err
	}
	logger.Debugf("parsed %d entries from %s", len(entries), opts.InputPath)

	r := &Renderer{Home: opts.Home}
	t := r.Render(entries)

	if err := writeOutput(opts.OutputPath, []byte(t.String())); err != nil {
		return nil, err
	}

	info, err := os.Stat(opts.OutputPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat %s: %w", opts.OutputPath, err)
	}
	logger.Infof("exported %s to %s (%d bytes)", opts.InputPath, opts.OutputPath, info.Size())

	return &Report{
		OutputPath: opts.OutputPath,
		Summary:    t.Info.Summary,
		SizeBytes:  info.Size(),
		Transcript: t,
	}, nil
}

func writeOutput(path string, data []byte) error {
	err := os.MkdirAll(filepath.Dir(path), 0755)
	if err == nil {
		err = os.WriteFile(path, data, 0644)
	}
	switch {
	case err == nil:
		return nil
	case errors.Is(err, os.ErrPermission):
		return fmt.Errorf("%w: %s", ErrOutputPermission, path)
	default:
		return fmt.Errorf("failed to write file: %w", err)
	}
}
