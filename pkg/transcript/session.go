package transcript

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
)

// SessionInfo is derived once from the whole log before rendering.
type SessionInfo struct {
	Version string
	Model   string
	Cwd     string
	Summary string
}

const (
	defaultVersion = "unknown"
	defaultCwd     = "~"

	modelVendorPrefix = "claude-"
	// Identifiers containing this belong to internal tooling, not the chat model
	modelInternalMarker = "code"
)

// ExtractSessionInfo scans entries for the latest version and working
// directory, the most frequent model, and the first summary. A working
// directory at or under home is shown relative to "~".
func ExtractSessionInfo(entries []Entry, home string) SessionInfo {
	info := SessionInfo{Version: defaultVersion, Cwd: defaultCwd}

	counts := make(map[string]int)
	var order []string
	haveSummary := false

	for _, e := range entries {
		if s, ok := e.(*SummaryEntry); ok && s.Summary != nil && !haveSummary {
			info.Summary = *s.Summary
			haveSummary = true
		}

		env := e.envelope()
		if env.Version != nil {
			info.Version = *env.Version
		}
		if env.Cwd != nil {
			info.Cwd = homeRelative(*env.Cwd, home)
		}
		if m := env.Model; strings.HasPrefix(m, modelVendorPrefix) && !strings.Contains(m, modelInternalMarker) {
			if counts[m] == 0 {
				order = append(order, m)
			}
			counts[m]++
		}
	}

	// Ties go to the model seen first
	best := 0
	for _, m := range order {
		if counts[m] > best {
			info.Model, best = m, counts[m]
		}
	}
	return info
}

func homeRelative(path, home string) string {
	home = strings.TrimRight(home, string(filepath.Separator))
	if home == "" {
		return path
	}
	if path == home || strings.HasPrefix(path, home+string(filepath.Separator)) {
		return "~" + path[len(home):]
	}
	return path
}

var (
	// <major>-<minor> where minor is a short number, not a date stamp
	modelVersionPattern = regexp.MustCompile(`(\d+)-(\d{1,2})(?:\D|$)`)
	// a lone major version, e.g. claude-3-opus or claude-opus-4-20250514
	modelMajorPattern = regexp.MustCompile(`(?:^|-)(\d{1,2})(?:-|$)`)
)

// ModelDisplayName turns a model identifier into a short friendly name:
//
//	claude-opus-4-5-20251101   -> Opus 4.5
//	claude-3-5-sonnet-20241022 -> Sonnet 3.5
//	claude-opus-4-20250514     -> Opus 4
func ModelDisplayName(modelID string) string {
	id := strings.ToLower(modelID)

	var family string
	switch {
	case strings.Contains(id, "opus"):
		family = "Opus"
	case strings.Contains(id, "sonnet"):
		family = "Sonnet"
	case strings.Contains(id, "haiku"):
		family = "Haiku"
	default:
		return "Claude"
	}

	if m := modelVersionPattern.FindStringSubmatch(id); m != nil {
		return fmt.Sprintf("%s %s.%s", family, m[1], m[2])
	}
	if m := modelMajorPattern.FindStringSubmatch(id); m != nil {
		return fmt.Sprintf("%s %s", family, m[1])
	}
	return family
}

// headerLines renders the decorative block at the top of a transcript.
func headerLines(info SessionInfo) []string {
	return []string{
		"",
		" * ▐▛███▜▌ *   Claude Code v" + info.Version,
		"* ▝▜█████▛▘ *  " + ModelDisplayName(info.Model) + " · Claude API",
		" *  ▘▘ ▝▝  *   " + info.Cwd,
		"",
	}
}
