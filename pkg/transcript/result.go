package transcript

import (
	"fmt"
	"strings"
)

const (
	// Results longer than this are summarized by line count only
	resultSummarizeLen = 2000
	// Results longer than this are truncated
	resultTruncateLen = 500
	// Truncated results with more lines than this show only resultHeadLines
	resultTruncateLines = 10
	resultHeadLines     = 5

	agentIDPrefix = "agentId:"
	// Marker the file-read tool puts after each line number
	lineNumberArrow = "→"
)

// toolResultLines renders every tool_result block of a user entry.
// Interrupted-request errors are left out.
func toolResultLines(e *UserEntry) []string {
	var lines []string
	for _, b := range e.Content.Blocks {
		result, ok := b.(*ToolResultBlock)
		if !ok || result.Interrupted() {
			continue
		}

		switch c := result.Content; {
		case c.Items != nil:
			for _, item := range c.Items {
				if item.Type != "text" || item.Text == "" || strings.HasPrefix(item.Text, agentIDPrefix) {
					continue
				}
				for _, line := range strings.Split(item.Text, "\n") {
					if strings.TrimSpace(line) != "" {
						lines = append(lines, line)
					}
				}
			}
		case c.Text != nil:
			lines = append(lines, formatResultText(*c.Text)...)
		}
	}
	return lines
}

// formatResultText keeps string results short: very long output becomes a
// line count, long output is truncated, and the rest is indented.
func formatResultText(content string) []string {
	n := len([]rune(content))

	if n > resultSummarizeLen {
		lines := strings.Split(content, "\n")
		numbered := 0
		for _, l := range lines {
			if strings.TrimSpace(l) != "" && strings.Contains(prefixRunes(l, 10), lineNumberArrow) {
				numbered++
			}
		}
		if numbered > 0 {
			return []string{fmt.Sprintf("  Read %d lines", numbered)}
		}
		return []string{fmt.Sprintf("  (%d lines)", len(lines))}
	}

	if n > resultTruncateLen {
		lines := strings.Split(content, "\n")
		if len(lines) > resultTruncateLines {
			out := make([]string, 0, resultHeadLines+1)
			for _, l := range lines[:resultHeadLines] {
				out = append(out, "  "+l)
			}
			return append(out, fmt.Sprintf("    ... (%d more lines)", len(lines)-resultHeadLines))
		}
		return strings.Split("  "+prefixRunes(content, resultTruncateLen)+"...", "\n")
	}

	lines := strings.Split(content, "\n")
	for i, l := range lines {
		lines[i] = "  " + l
	}
	return lines
}

func prefixRunes(s string, n int) string {
	r := []rune(s)
	if len(r) > n {
		return string(r[:n])
	}
	return s
}
