package transcript

import (
	"bytes"
	"encoding/json"
	"fmt"
	"path"
	"strings"
	"unicode/utf8"

	"github.com/tidwall/gjson"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const (
	bullet       = "⏺ "
	resultMarker = "  ⎿  "

	// A lone string parameter shorter than this is shown without its key
	shortParamLen = 50
	paramIndent   = "\n      "
)

// ToolCall is a tool invocation classified by kind: ReadCall, WriteCall,
// EditCall, BashCall, TaskCall or GenericCall.
type ToolCall interface {
	toolCall()
}

type ReadCall struct {
	Input Params
}

type WriteCall struct {
	FilePath string
	Content  string
}

type EditCall struct {
	FilePath  string
	OldString string
	NewString string
}

type BashCall struct {
	Command string
}

// TaskCall launches a sub-agent; it is displayed under its description.
type TaskCall struct {
	Description string
	Input       Params
}

type GenericCall struct {
	Name  string
	Input Params
}

func (ReadCall) toolCall()    {}
func (WriteCall) toolCall()   {}
func (EditCall) toolCall()    {}
func (BashCall) toolCall()    {}
func (TaskCall) toolCall()    {}
func (GenericCall) toolCall() {}

// Call classifies the tool invocation.
func (b *ToolUseBlock) Call() ToolCall {
	switch b.Name {
	case "Read":
		return ReadCall{Input: b.Input}
	case "Write":
		return WriteCall{FilePath: b.Input.String("file_path"), Content: b.Input.String("content")}
	case "Edit":
		return EditCall{
			FilePath:  b.Input.String("file_path"),
			OldString: b.Input.String("old_string"),
			NewString: b.Input.String("new_string"),
		}
	case "Bash":
		return BashCall{Command: b.Input.String("command")}
	case "Task":
		desc := "Task"
		if d, ok := b.Input.Lookup("description"); ok {
			desc = d.String()
		}
		return TaskCall{Description: desc, Input: b.Input}
	default:
		return GenericCall{Name: b.Name, Input: b.Input}
	}
}

// displayName renders a raw tool name for the transcript, e.g.
// "web_search" -> "Web Search".
func displayName(name string) string {
	return cases.Title(language.Und).String(strings.ReplaceAll(name, "_", " "))
}

// toolUseLines renders one tool invocation.
func toolUseLines(b *ToolUseBlock) []string {
	switch c := b.Call().(type) {
	case EditCall:
		diff := GenerateEditDiff(c.OldString, c.NewString, editDiffMaxLines)
		lines := []string{
			fmt.Sprintf("%sUpdate(%s)", bullet, fileLabel(c.FilePath)),
			fmt.Sprintf("%sAdded %d lines, removed %d lines", resultMarker, diff.LinesAdded, diff.LinesRemoved),
		}
		for _, l := range head(diff.Lines, editPreviewLines) {
			lines = append(lines, "     "+l)
		}
		if len(diff.Lines) > editPreviewLines {
			lines = append(lines, fmt.Sprintf("     ... (%d more diff lines)", len(diff.Lines)-editPreviewLines))
		}
		return lines
	case WriteCall:
		n := strings.Count(c.Content, "\n") + 1
		return []string{fmt.Sprintf("%sWrite(%s - %d lines)", bullet, fileLabel(c.FilePath), n), resultMarker}
	case BashCall:
		if c.Command == "" {
			return []string{bullet + "Bash", resultMarker}
		}
		return []string{fmt.Sprintf("%sBash(%s)", bullet, c.Command), resultMarker}
	case ReadCall:
		params := formatParams(c.Input)
		if fp, ok := c.Input.Lookup("file_path"); ok {
			params = baseName(fp.String())
		}
		return invocation("Read", params)
	case TaskCall:
		return invocation(c.Description, formatParams(c.Input))
	case GenericCall:
		return invocation(displayName(c.Name), formatParams(c.Input))
	default:
		return nil
	}
}

func invocation(name, params string) []string {
	if params == "" {
		return []string{bullet + name, resultMarker}
	}
	return []string{fmt.Sprintf("%s%s(%s)", bullet, name, params), resultMarker}
}

// fileLabel is the base name of a tool's file path, or "file" when empty.
func fileLabel(p string) string {
	if p == "" {
		return "file"
	}
	return baseName(p)
}

// baseName is the final element of a slash- or backslash-separated path,
// "" when there is none.
func baseName(p string) string {
	p = strings.ReplaceAll(p, `\`, "/")
	base := path.Base(p)
	if base == "." || base == "/" {
		return ""
	}
	return base
}

// formatParams renders tool parameters compactly. A lone short string is
// shown bare; otherwise every parameter is listed as key: value.
func formatParams(params Params) string {
	if len(params) == 0 {
		return ""
	}

	if len(params) == 1 && params[0].Value.Type == gjson.String {
		if v := params[0].Value.String(); utf8.RuneCountInString(v) < shortParamLen {
			return v
		}
	}

	formatted := make([]string, 0, len(params))
	for _, p := range params {
		v := p.Value
		switch {
		case v.Type == gjson.String && strings.Contains(v.String(), "\n"):
			formatted = append(formatted, p.Key+": |\n  "+strings.ReplaceAll(v.String(), "\n", "\n  "))
		case v.IsObject() || v.IsArray():
			formatted = append(formatted, p.Key+": "+indentJSON(v.Raw))
		default:
			formatted = append(formatted, p.Key+": "+scalarString(v))
		}
	}
	return strings.Join(formatted, paramIndent)
}

func indentJSON(raw string) string {
	var buf bytes.Buffer
	if err := json.Indent(&buf, []byte(raw), "", "  "); err != nil {
		return raw
	}
	return buf.String()
}

// scalarString prints JSON scalars the way the transcript format expects:
// True, False and None for booleans and null.
func scalarString(v gjson.Result) string {
	switch v.Type {
	case gjson.True:
		return "True"
	case gjson.False:
		return "False"
	case gjson.Null:
		return "None"
	case gjson.Number:
		return v.Raw
	default:
		return v.String()
	}
}
