package transcript

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/tidwall/gjson"
)

var (
	ErrInputNotFound    = errors.New("session file not found")
	ErrInputPermission  = errors.New("permission denied reading")
	ErrOutputPermission = errors.New("permission denied writing to")
)

// LineError reports a log line that is not a JSON object.
type LineError struct {
	Line int // 1-based
	Err  error
}

func (e *LineError) Error() string {
	return fmt.Sprintf("invalid JSON on line %d: %v", e.Line, e.Err)
}

func (e *LineError) Unwrap() error { return e.Err }

// ParseFile reads and parses the log at path.
func ParseFile(path string) ([]Entry, error) {
	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		return nil, fmt.Errorf("%w: %s", ErrInputNotFound, path)
	case errors.Is(err, os.ErrPermission):
		return nil, fmt.Errorf("%w: %s", ErrInputPermission, path)
	case err != nil:
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes every line of data as one log entry. Blank lines are
// ignored. The first line that is not a JSON object aborts parsing with a
// *LineError and no entries are returned.
func Parse(data []byte) ([]Entry, error) {
	var entries []Entry
	for i, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSuffix(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		var obj map[string]json.RawMessage
		if err := json.Unmarshal([]byte(line), &obj); err != nil {
			return nil, &LineError{Line: i + 1, Err: err}
		}
		if obj == nil {
			return nil, &LineError{Line: i + 1, Err: errors.New("entry is null")}
		}
		entries = append(entries, decodeEntry(gjson.Parse(line)))
	}
	return entries, nil
}
