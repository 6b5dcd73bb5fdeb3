package transcript

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const headerLen = 5

// body renders lines and strips the header.
func body(t *testing.T, lines ...string) []string {
	t.Helper()
	r := &Renderer{Home: "/home/dev"}
	out := r.Render(mustParse(t, lines...))
	require.GreaterOrEqual(t, len(out.Lines), headerLen)
	return out.Lines[headerLen:]
}

func TestRenderSummaryAndUser(t *testing.T) {
	r := &Renderer{}
	out := r.Render(mustParse(t,
		`{"type":"summary","summary":"S"}`,
		`{"type":"user","message":{"content":"hi"}}`,
	))

	assert.Equal(t, "S", out.Info.Summary)
	assert.Equal(t, []string{
		"",
		" * ▐▛███▜▌ *   Claude Code vunknown",
		"* ▝▜█████▛▘ *  Claude · Claude API",
		" *  ▘▘ ▝▝  *   ~",
		"",
		"> hi",
		"",
	}, out.Lines)
	assert.True(t, strings.HasSuffix(out.String(), "\n> hi\n"))
}

func TestRenderBashWithResult(t *testing.T) {
	got := body(t,
		`{"type":"assistant","message":{"content":[{"type":"tool_use","id":"t1","name":"Bash","input":{"command":"ls -la","description":"List files"}}]}}`,
		`{"type":"user","message":{"content":[{"type":"tool_result","tool_use_id":"t1","content":"file1\nfile2"}]}}`,
	)
	assert.Equal(t, []string{
		"⏺ Bash(ls -la)",
		"  ⎿  ",
		"  file1",
		"  file2",
		"",
	}, got)
}

func TestRenderBashWithoutCommand(t *testing.T) {
	got := body(t, `{"type":"assistant","message":{"content":[{"type":"tool_use","name":"Bash","input":{}}]}}`)
	assert.Equal(t, []string{"⏺ Bash", "  ⎿  "}, got)
}

func TestRenderUserSkips(t *testing.T) {
	tests := []struct {
		name string
		line string
	}{
		{"meta", `{"type":"user","isMeta":true,"message":{"content":"context dump"}}`},
		{"command name", `{"type":"user","message":{"content":"<command-name>/clear</command-name>"}}`},
		{"command stdout", `{"type":"user","message":{"content":"<local-command-stdout>ok</local-command-stdout>"}}`},
		{"command args", `{"type":"user","message":{"content":"<command-args></command-args>"}}`},
		{"command message", `{"type":"user","message":{"content":"<command-message>init</command-message>"}}`},
		{"serialized tool result", `{"type":"user","message":{"content":"[{'tool_use_id': 'x', 'type': 'tool_result'}]"}}`},
		{"tool result list", `{"type":"user","message":{"content":[{"type":"tool_result","content":"x"}]}}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Empty(t, body(t, tt.line))
		})
	}
}

func TestRenderUserTextBlocks(t *testing.T) {
	got := body(t, `{"type":"user","message":{"content":[{"type":"text","text":"first"},{"type":"image"},{"type":"text","text":"second"}]}}`)
	assert.Equal(t, []string{"> first", "second", ""}, got)
}

func TestRenderAssistantText(t *testing.T) {
	got := body(t,
		`{"type":"assistant","message":{"content":[{"type":"thinking","thinking":"secret"},{"type":"text","text":"  Done.  "},{"type":"text","text":"   "}]}}`,
		`{"type":"assistant","message":{"content":"plain string"}}`,
	)
	assert.Equal(t, []string{"⏺ Done.", "", "⏺ plain string", ""}, got)
}

func TestRenderCompactBoundary(t *testing.T) {
	got := body(t,
		`{"type":"system","subtype":"compact_boundary"}`,
		`{"type":"user","message":{"content":[{"type":"tool_result","content":"not shown"}]}}`,
	)
	rule := strings.Repeat("═", 80)
	assert.Equal(t, []string{rule, " Conversation compacted · ctrl+o for history ", rule, ""}, got)
}

func TestRenderOtherSystemEntriesIgnored(t *testing.T) {
	assert.Empty(t, body(t, `{"type":"system","subtype":"informational","content":"x"}`))
}

func TestRenderToolCalls(t *testing.T) {
	tests := []struct {
		name  string
		input string
		tool  string
		want  []string
	}{
		{
			name: "read shows base name", tool: "Read",
			input: `{"file_path":"/home/dev/project/main.go","offset":10}`,
			want:  []string{"⏺ Read(main.go)", "  ⎿  "},
		},
		{
			name: "write counts lines", tool: "Write",
			input: `{"file_path":"/tmp/a.txt","content":"1\n2\n"}`,
			want:  []string{"⏺ Write(a.txt - 3 lines)", "  ⎿  "},
		},
		{
			name: "write without path", tool: "Write",
			input: `{"content":"x"}`,
			want:  []string{"⏺ Write(file - 1 lines)", "  ⎿  "},
		},
		{
			name: "edit summary and diff", tool: "Edit",
			input: `{"file_path":"src/app.go","old_string":"a\nb","new_string":"c"}`,
			want: []string{
				"⏺ Update(app.go)",
				"  ⎿  Added 1 lines, removed 2 lines",
				"     -a",
				"     -b",
				"     +c",
			},
		},
		{
			name: "single short param is bare", tool: "web_search",
			input: `{"query":"go generics"}`,
			want:  []string{"⏺ Web Search(go generics)", "  ⎿  "},
		},
		{
			name: "no params", tool: "ExitPlanMode",
			input: `{}`,
			want:  []string{"⏺ Exitplanmode", "  ⎿  "},
		},
		{
			name: "several params", tool: "Grep",
			input: `{"pattern":"foo","path":"src","-n":true,"head_limit":5,"type":null}`,
			want: []string{
				"⏺ Grep(pattern: foo",
				"      path: src",
				"      -n: True",
				"      head_limit: 5",
				"      type: None)",
				"  ⎿  ",
			},
		},
		{
			name: "structured param", tool: "TodoWrite",
			input: `{"todos":[{"content":"x"}]}`,
			want: []string{
				"⏺ Todowrite(todos: [",
				"  {",
				`    "content": "x"`,
				"  }",
				"])",
				"  ⎿  ",
			},
		},
		{
			name: "multi-line param", tool: "Notebook",
			input: `{"cell":"a\nb","id":"c1"}`,
			want: []string{
				"⏺ Notebook(cell: |",
				"  a",
				"  b",
				"      id: c1)",
				"  ⎿  ",
			},
		},
		{
			name: "long single param keeps key", tool: "WebFetch",
			input: fmt.Sprintf(`{"url":%q}`, "https://example.com/"+strings.Repeat("p", 40)),
			want:  []string{"⏺ Webfetch(url: https://example.com/" + strings.Repeat("p", 40) + ")", "  ⎿  "},
		},
		{
			name: "task uses description", tool: "Task",
			input: `{"description":"Explore repo","prompt":"look around"}`,
			want: []string{
				"⏺ Explore repo(description: Explore repo",
				"      prompt: look around)",
				"  ⎿  ",
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			line := fmt.Sprintf(`{"type":"assistant","message":{"content":[{"type":"tool_use","name":%q,"input":%s}]}}`, tt.tool, tt.input)
			assert.Equal(t, tt.want, body(t, line))
		})
	}
}

func TestRenderEditPreviewTruncated(t *testing.T) {
	old := strings.TrimSuffix(strings.Repeat("old\n", 20), "\n")
	line := fmt.Sprintf(`{"type":"assistant","message":{"content":[{"type":"tool_use","name":"Edit","input":{"file_path":"x.go","old_string":%q,"new_string":%q}}]}}`, old, old)

	got := body(t, line)
	require.Len(t, got, 2+10+1)
	assert.Equal(t, "  ⎿  Added 20 lines, removed 20 lines", got[1])
	assert.Equal(t, "       ... (13 more removed)", got[9])
	assert.Equal(t, "     +old", got[10])
	assert.Equal(t, "     ... (6 more diff lines)", got[12])
}

func TestRenderToolResults(t *testing.T) {
	call := `{"type":"assistant","message":{"content":[{"type":"tool_use","name":"Task","input":{"description":"Research"}}]}}`

	t.Run("agent text items", func(t *testing.T) {
		got := body(t, call,
			`{"type":"user","message":{"content":[{"type":"tool_result","content":[{"type":"text","text":"Found it\n\n  details"},{"type":"text","text":"agentId: a1b2"}]}]}}`,
		)
		assert.Equal(t, []string{"⏺ Research(Research)", "  ⎿  ", "Found it", "  details", ""}, got)
	})

	t.Run("interrupted request hidden", func(t *testing.T) {
		got := body(t, call,
			`{"type":"user","message":{"content":[{"type":"tool_result","is_error":true,"content":"[Request interrupted by user for tool use]"}]}}`,
		)
		assert.Equal(t, []string{"⏺ Research(Research)", "  ⎿  "}, got)
	})

	t.Run("other errors shown", func(t *testing.T) {
		got := body(t, call,
			`{"type":"user","message":{"content":[{"type":"tool_result","is_error":true,"content":"exit status 1"}]}}`,
		)
		assert.Equal(t, []string{"⏺ Research(Research)", "  ⎿  ", "  exit status 1", ""}, got)
	})

	t.Run("results after a user message", func(t *testing.T) {
		got := body(t,
			`{"type":"user","message":{"content":"go"}}`,
			`{"type":"user","message":{"content":[{"type":"tool_result","content":"ok"}]}}`,
		)
		assert.Equal(t, []string{"> go", "", "  ok", ""}, got)
	})

	t.Run("results not adjacent are dropped", func(t *testing.T) {
		got := body(t, call,
			`{"type":"summary","summary":"S"}`,
			`{"type":"user","message":{"content":[{"type":"tool_result","content":"late"}]}}`,
		)
		assert.Equal(t, []string{"⏺ Research(Research)", "  ⎿  "}, got)
	})
}

func TestFormatResultText(t *testing.T) {
	t.Run("short", func(t *testing.T) {
		assert.Equal(t, []string{"  one", "  two"}, formatResultText("one\ntwo"))
		assert.Equal(t, []string{"  "}, formatResultText(""))
	})

	t.Run("medium with many lines", func(t *testing.T) {
		lines := make([]string, 12)
		for i := range lines {
			lines[i] = fmt.Sprintf("line %02d %s", i, strings.Repeat("x", 50))
		}
		got := formatResultText(strings.Join(lines, "\n"))
		require.Len(t, got, 6)
		assert.Equal(t, "  "+lines[0], got[0])
		assert.Equal(t, "  "+lines[4], got[4])
		assert.Equal(t, "    ... (7 more lines)", got[5])
	})

	t.Run("medium with few lines", func(t *testing.T) {
		got := formatResultText(strings.Repeat("é", 600))
		assert.Equal(t, []string{"  " + strings.Repeat("é", 500) + "..."}, got)
	})

	t.Run("long numbered file", func(t *testing.T) {
		var b strings.Builder
		for i := 1; i <= 100; i++ {
			fmt.Fprintf(&b, "%6d→%s\n", i, strings.Repeat("c", 30))
		}
		assert.Equal(t, []string{"  Read 100 lines"}, formatResultText(b.String()))
	})

	t.Run("long plain output", func(t *testing.T) {
		content := strings.Repeat("z", 1500) + "\n" + strings.Repeat("z", 1500)
		assert.Equal(t, []string{"  (2 lines)"}, formatResultText(content))
	})
}
