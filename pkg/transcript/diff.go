package transcript

import (
	"fmt"
	"strings"
)

const (
	// editDiffMaxLines bounds the removed+added preview built for an edit
	editDiffMaxLines = 15
	// editPreviewLines is how many diff lines an edit shows in the transcript
	editPreviewLines = 10
)

// LineChanges represents the number of lines added and removed in an edit.
type LineChanges struct {
	LinesAdded   int
	LinesRemoved int
}

// EditDiff is a compact removed/added preview of a string replacement.
type EditDiff struct {
	LineChanges
	Lines []string
}

// GenerateEditDiff lists up to maxLines/2 removed lines followed by up to
// maxLines/2 added lines, each group followed by a count of what was left
// out. maxLines is raised to at least 2.
func GenerateEditDiff(oldContent, newContent string, maxLines int) EditDiff {
	if maxLines < 2 {
		maxLines = 2
	}
	half := maxLines / 2

	oldLines := splitLines(oldContent)
	newLines := splitLines(newContent)

	diff := EditDiff{
		LineChanges: LineChanges{
			LinesAdded:   len(newLines),
			LinesRemoved: len(oldLines),
		},
	}

	for _, line := range head(oldLines, half) {
		diff.Lines = append(diff.Lines, "-"+line)
	}
	if len(oldLines) > half {
		diff.Lines = append(diff.Lines, fmt.Sprintf("  ... (%d more removed)", len(oldLines)-half))
	}
	for _, line := range head(newLines, half) {
		diff.Lines = append(diff.Lines, "+"+line)
	}
	if len(newLines) > half {
		diff.Lines = append(diff.Lines, fmt.Sprintf("  ... (%d more added)", len(newLines)-half))
	}
	return diff
}

// splitLines splits content on "\n". Empty content has no lines; a
// trailing newline counts as an extra, empty line.
func splitLines(content string) []string {
	if content == "" {
		return nil
	}
	return strings.Split(content, "\n")
}

func head(lines []string, n int) []string {
	if len(lines) > n {
		return lines[:n]
	}
	return lines
}
