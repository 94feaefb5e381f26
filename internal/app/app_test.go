package app

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunPlainScenario(t *testing.T) {
	var buf bytes.Buffer

	code := run(context.Background(), []string{"inner-fn"}, false, &buf)

	assert.Equal(t, 0, code)
	assert.Equal(t, "inner-fn\n1\n3\n5\n7\n9\n", buf.String())
}

func TestRunExpressionWithStatistics(t *testing.T) {
	var buf bytes.Buffer

	code := run(context.Background(), []string{"-e", "i >= 8", "-s", "-x", "althex"}, false, &buf)

	assert.Equal(t, 0, code)
	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "expression\n0x8\n0x9\n"), out)
	assert.Contains(t, out, "10 values visited | 2 passed, 20.00% pass rate")
}

func TestRunJSON(t *testing.T) {
	var buf bytes.Buffer

	code := run(context.Background(), []string{"-j", "stateless"}, true, &buf)
	require.Equal(t, 0, code)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.NotEmpty(t, lines)

	for _, line := range lines {
		var event map[string]any
		assert.NoError(t, json.Unmarshal([]byte(line), &event), line)
	}
}

func TestRunControlFlow(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		wantCode int
		wantOut  string
	}{
		{name: "version", args: []string{"-v"}, wantCode: 0, wantOut: "OPTRUN version"},
		{name: "list", args: []string{"-l"}, wantCode: 0, wantOut: "two-closures"},
		{name: "usage", args: []string{"-h"}, wantCode: 1, wantOut: "[optional flags]"},
		{name: "unknown scenario", args: []string{"nope"}, wantCode: 1},
		{name: "pretty without json", args: []string{"-pretty"}, wantCode: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer

			code := run(context.Background(), tt.args, false, &buf)

			assert.Equal(t, tt.wantCode, code)
			assert.Contains(t, buf.String(), tt.wantOut)
		})
	}
}

func TestRunEmptyScenarioFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.yaml")
	require.NoError(t, os.WriteFile(path, []byte("scenarios: []\n"), 0o644))

	var buf bytes.Buffer

	code := run(context.Background(), []string{"-f", path}, false, &buf)

	assert.Equal(t, 1, code)
	assert.NotContains(t, buf.String(), "inner-fn")
}

func TestRunCancelledContext(t *testing.T) {
	var buf bytes.Buffer

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	code := run(ctx, []string{"inner-fn"}, false, &buf)

	assert.Equal(t, 0, code)
	assert.Empty(t, buf.String())
}
