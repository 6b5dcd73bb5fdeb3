package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/entrhq/forge-meta/pkg/observations"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupEnv(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "data", "observations.json")
	t.Setenv("HOME", dir)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
	t.Setenv("FORGE_META_OBSERVATIONS_FILE", path)
	t.Setenv("FORGE_META_DEBUG", "")
	return path
}

func runCLI(t *testing.T, args ...string) (int, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := run(args, &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func TestAddGetListRemove(t *testing.T) {
	setupEnv(t)

	code, out, errOut := runCLI(t, "add", "--description", "Skill ignored <frontmatter>", "--feature-area", "skills", "--context", "during review")
	require.Equal(t, 0, code, errOut)

	var added observations.Observation
	require.NoError(t, json.Unmarshal([]byte(out), &added))
	assert.True(t, strings.HasPrefix(added.ID, "obs-"))
	assert.True(t, strings.HasSuffix(added.ID, "-001"))
	assert.Equal(t, observations.StatusNew, added.Status)
	assert.Contains(t, out, "\n  \"description\": \"Skill ignored <frontmatter>\",\n")

	code, out, _ = runCLI(t, "get", added.ID)
	require.Equal(t, 0, code)
	var got observations.Observation
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, added, got)

	code, _, _ = runCLI(t, "add", "--description", "MCP timeout", "--feature-area", "mcp", "--issue-url", "https://example.com/1")
	require.Equal(t, 0, code)

	code, out, _ = runCLI(t, "list")
	require.Equal(t, 0, code)
	var list []observations.Observation
	require.NoError(t, json.Unmarshal([]byte(out), &list))
	require.Len(t, list, 2)
	assert.Equal(t, observations.StatusSubmitted, list[1].Status)

	code, out, _ = runCLI(t, "list", "--status", "submitted")
	require.Equal(t, 0, code)
	require.NoError(t, json.Unmarshal([]byte(out), &list))
	require.Len(t, list, 1)

	code, out, _ = runCLI(t, "remove", added.ID)
	require.Equal(t, 0, code)
	assert.Equal(t, "✓ Removed "+added.ID+"\n", out)

	code, out, _ = runCLI(t, "list")
	require.Equal(t, 0, code)
	require.NoError(t, json.Unmarshal([]byte(out), &list))
	assert.Len(t, list, 1)
}

func TestListEmptyStore(t *testing.T) {
	path := setupEnv(t)

	code, out, _ := runCLI(t, "list")
	require.Equal(t, 0, code)
	assert.Equal(t, "[]\n", out)

	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err), "list must not create the store")
}

func TestNotFound(t *testing.T) {
	path := setupEnv(t)
	code, _, _ := runCLI(t, "add", "--description", "x", "--feature-area", "tools")
	require.Equal(t, 0, code)
	before, err := os.ReadFile(path)
	require.NoError(t, err)

	for _, cmd := range []string{"get", "remove"} {
		t.Run(cmd, func(t *testing.T) {
			code, out, errOut := runCLI(t, cmd, "obs-19700101-001")
			assert.Equal(t, 1, code)
			assert.Empty(t, out)
			assert.Equal(t, "✗ Observation obs-19700101-001 not found\n", errOut)
		})
	}

	after, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestInvalidInput(t *testing.T) {
	setupEnv(t)

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"unknown feature area", []string{"add", "--description", "x", "--feature-area", "gui"}, "feature area \"gui\""},
		{"missing description", []string{"add", "--feature-area", "tools"}, "description"},
		{"remove without id", []string{"remove"}, "accepts 1 arg"},
		{"bad status filter", []string{"list", "--status", "closed"}, "status \"closed\""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, _, errOut := runCLI(t, tt.args...)
			assert.Equal(t, 1, code)
			assert.True(t, strings.HasPrefix(errOut, "✗ "), errOut)
			assert.Contains(t, errOut, tt.want)
		})
	}
}

func TestCorruptStoreRecovers(t *testing.T) {
	path := setupEnv(t)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0750))
	require.NoError(t, os.WriteFile(path, []byte("{oops"), 0600))

	code, out, errOut := runCLI(t, "list")
	require.Equal(t, 0, code)
	assert.Equal(t, "[]\n", out)
	assert.Contains(t, errOut, "⚠ Warning: Corrupted storage file. Starting fresh.")
}
