package scenarios_test

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/pouriyajamshidi/optrun/scenarios"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const scenarioFile = `
scenarios:
  - name: thirds
    filter: "i % 3 == 0"
    format: althex
  - name: small
    description: values below four
    filter: "i < 4"
`

func TestLoad(t *testing.T) {
	loaded, err := scenarios.Load(strings.NewReader(scenarioFile))
	require.NoError(t, err)
	require.Len(t, loaded, 2)

	assert.Equal(t, "thirds", loaded[0].Name)
	assert.Equal(t, "i % 3 == 0", loaded[0].Description)
	assert.Equal(t, "values below four", loaded[1].Description)

	var buf bytes.Buffer
	_, err = newPlainRunner(&buf).ExecuteAll(context.Background(), loaded)
	require.NoError(t, err)

	assert.Equal(t, "thirds\n0x0\n0x3\n0x6\n0x9\nsmall\n0\n1\n2\n3\n", buf.String())
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{
			name:    "empty file",
			content: "",
			wantErr: "no scenarios defined",
		},
		{
			name:    "empty scenario list",
			content: "scenarios: []\n",
			wantErr: "no scenarios defined",
		},
		{
			name:    "empty mapping",
			content: "{}\n",
			wantErr: "no scenarios defined",
		},
		{
			name:    "invalid yaml",
			content: "scenarios: [",
			wantErr: "decode scenario file",
		},
		{
			name:    "unknown field",
			content: "scenarios:\n  - name: a\n    filter: i > 1\n    colour: red\n",
			wantErr: "decode scenario file",
		},
		{
			name:    "missing name",
			content: "scenarios:\n  - filter: i > 1\n",
			wantErr: "scenario #1: missing name",
		},
		{
			name:    "duplicate name",
			content: "scenarios:\n  - name: a\n    filter: i > 1\n  - name: a\n    filter: i > 2\n",
			wantErr: "scenario a: defined more than once",
		},
		{
			name:    "bad expression",
			content: "scenarios:\n  - name: a\n    filter: i +\n",
			wantErr: "scenario a",
		},
		{
			name:    "empty expression",
			content: "scenarios:\n  - name: a\n",
			wantErr: "expression cannot be empty",
		},
		{
			name:    "bad format",
			content: "scenarios:\n  - name: a\n    filter: i > 1\n    format: octal\n",
			wantErr: "unknown format",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := scenarios.Load(strings.NewReader(tt.content))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestFromExpression(t *testing.T) {
	sc, err := scenarios.FromExpression("cli", "i == 9 || i == 0", "")
	require.NoError(t, err)

	var buf bytes.Buffer
	stats, err := newPlainRunner(&buf).Execute(sc)
	require.NoError(t, err)

	assert.Equal(t, "cli\n0\n9\n", buf.String())
	assert.Equal(t, []int{0, 9}, stats.Passed)
}

func TestFromExpressionReportsEvaluationError(t *testing.T) {
	sc, err := scenarios.FromExpression("div", "i % (i - 5) == 0", "")
	require.NoError(t, err)

	var buf bytes.Buffer
	_, err = newPlainRunner(&buf).Execute(sc)
	if err == nil {
		t.Skip("expression language evaluated the modulo by zero without error")
	}
	assert.Contains(t, err.Error(), "scenario div")
}

func TestLoadWithoutScenarios(t *testing.T) {
	for _, content := range []string{"", "scenarios: []\n", "{}\n"} {
		_, err := scenarios.Load(strings.NewReader(content))
		assert.ErrorIs(t, err, scenarios.ErrNoScenarios, "content %q", content)
	}
}
