package transcript

import (
	"strings"
)

const (
	boundaryWidth   = 80
	boundaryCaption = " Conversation compacted · ctrl+o for history "
	userPrefix      = "> "
)

// Markup wrapped around slash-command invocations and their local output
var commandTags = []string{
	"<command-name>",
	"<local-command-stdout>",
	"<command-args>",
	"<command-message>",
}

// Prefix of tool results that were logged as a stringified list
const serializedToolResultPrefix = "[{'tool_use_id'"

// Transcript is the rendered form of a log.
type Transcript struct {
	Info  SessionInfo
	Lines []string
}

// String joins the lines with newlines, without a trailing newline.
func (t *Transcript) String() string {
	return strings.Join(t.Lines, "\n")
}

// Renderer turns parsed entries into a transcript.
type Renderer struct {
	// Home is the user's home directory; working directories under it are
	// shown relative to "~".
	Home string
}

// window is the entry being rendered plus the one after it, which may
// hold the results of the current entry's tool calls.
type window struct {
	cur  Entry
	next Entry // nil for the last entry
}

func windows(entries []Entry) []window {
	out := make([]window, len(entries))
	for i, e := range entries {
		out[i].cur = e
		if i+1 < len(entries) {
			out[i].next = entries[i+1]
		}
	}
	return out
}

// followingResults returns the entry after cur when it carries tool results.
func (w window) followingResults() (*UserEntry, bool) {
	u, ok := w.next.(*UserEntry)
	if !ok || !u.HasToolResult() {
		return nil, false
	}
	return u, true
}

// Render produces the header and body for entries.
func (r *Renderer) Render(entries []Entry) *Transcript {
	t := &Transcript{Info: ExtractSessionInfo(entries, r.Home)}
	out := &lineWriter{}

	out.add(headerLines(t.Info)...)
	for _, w := range windows(entries) {
		r.renderEntry(out, w)
	}

	t.Lines = out.lines
	return t
}

func (r *Renderer) renderEntry(out *lineWriter, w window) {
	switch e := w.cur.(type) {
	case *SystemEntry:
		if e.IsCompactBoundary() {
			rule := strings.Repeat("═", boundaryWidth)
			out.add(rule, boundaryCaption, rule, "")
		}
		return
	case *UserEntry:
		if text, ok := userLine(e); ok {
			out.add(text, "")
		}
	case *AssistantEntry:
		out.add(assistantLines(e)...)
	default:
		return
	}

	if results, ok := w.followingResults(); ok {
		if lines := toolResultLines(results); len(lines) > 0 {
			out.add(lines...)
			out.add("")
		}
	}
}

// userLine renders a user message, or reports false when the entry is
// bookkeeping rather than something the user typed.
func userLine(e *UserEntry) (string, bool) {
	if e.IsMeta {
		return "", false
	}

	if e.Content.IsText {
		text := e.Content.Text
		for _, tag := range commandTags {
			if strings.Contains(text, tag) {
				return "", false
			}
		}
		if strings.HasPrefix(text, serializedToolResultPrefix) {
			return "", false
		}
		return userPrefix + text, true
	}

	// Tool results are rendered after the entry that made the calls
	if e.HasToolResult() {
		return "", false
	}

	var parts []string
	for _, b := range e.Content.Blocks {
		if tb, ok := b.(*TextBlock); ok {
			parts = append(parts, tb.Text)
		}
	}
	return userPrefix + strings.Join(parts, "\n"), true
}

func assistantLines(e *AssistantEntry) []string {
	blocks := e.Content.Blocks
	if e.Content.IsText {
		blocks = []Block{&TextBlock{Text: e.Content.Text}}
	}

	var lines []string
	for _, b := range blocks {
		switch b := b.(type) {
		case *TextBlock:
			if text := strings.TrimSpace(b.Text); text != "" {
				lines = append(lines, bullet+text, "")
			}
		case *ThinkingBlock:
			// not shown
		case *ToolUseBlock:
			lines = append(lines, toolUseLines(b)...)
		}
	}
	return lines
}

// lineWriter accumulates output, splitting multi-line strings so every
// element is a single line.
type lineWriter struct {
	lines []string
}

func (w *lineWriter) add(lines ...string) {
	for _, l := range lines {
		w.lines = append(w.lines, strings.Split(l, "\n")...)
	}
}
