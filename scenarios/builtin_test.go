package scenarios_test

import (
	"bytes"
	"context"
	"errors"
	"slices"
	"testing"

	"github.com/pouriyajamshidi/optrun"
	"github.com/pouriyajamshidi/optrun/printers"
	"github.com/pouriyajamshidi/optrun/scenarios"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPlainRunner(buf *bytes.Buffer, opts ...optrun.RunnerOption) *optrun.Runner {
	p := printers.NewPlainPrinter(printers.WithWriter[*printers.PlainPrinter](buf))
	return optrun.NewRunner(append([]optrun.RunnerOption{optrun.WithPrinter(p)}, opts...)...)
}

func TestBuiltinOutput(t *testing.T) {
	var buf bytes.Buffer
	r := newPlainRunner(&buf)

	_, err := r.ExecuteAll(context.Background(), scenarios.Builtin())
	require.NoError(t, err)

	want := "no-filter\n" +
		"inner-fn\n1\n3\n5\n7\n9\n" +
		"stateless\n0\n3\n6\n9\n" +
		"read-local\n2\n3\n5\n7\n" +
		"mutate-local\n0\n1\n2\n3\n4\n5\n6\n7\n8\n9\n" +
		"two-closures\n0\n1\n4\n5\n8\n9\n" +
		"accumulate\n"

	assert.Equal(t, want, buf.String())
}

func TestBuiltinStatistics(t *testing.T) {
	tests := []struct {
		name        string
		wantVisited int
		wantPassed  []int
	}{
		{name: "no-filter", wantVisited: 0},
		{name: "inner-fn", wantVisited: 10, wantPassed: []int{1, 3, 5, 7, 9}},
		{name: "stateless", wantVisited: 10, wantPassed: []int{0, 3, 6, 9}},
		{name: "read-local", wantVisited: 10, wantPassed: []int{2, 3, 5, 7}},
		{name: "mutate-local", wantVisited: 10, wantPassed: []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}},
		{name: "two-closures", wantVisited: 10, wantPassed: []int{0, 1, 4, 5, 8, 9}},
		{name: "accumulate", wantVisited: 10, wantPassed: []int{0, 1, 4, 5, 8, 9}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			found, err := scenarios.Lookup(tt.name)
			require.NoError(t, err)
			require.Len(t, found, 1)

			var buf bytes.Buffer
			stats, err := newPlainRunner(&buf).Execute(found[0])
			require.NoError(t, err)

			assert.Len(t, stats.Visited, tt.wantVisited)
			assert.True(t, slices.Equal(tt.wantPassed, stats.Passed), "passed %v, want %v", stats.Passed, tt.wantPassed)
		})
	}
}

func TestBuiltinIsRepeatable(t *testing.T) {
	found, err := scenarios.Lookup("mutate-local", "accumulate")
	require.NoError(t, err)

	var buf bytes.Buffer
	r := newPlainRunner(&buf)

	for range 3 {
		_, err := r.ExecuteAll(context.Background(), found)
		require.NoError(t, err)
	}

	// Builtin hands out fresh closures on each call
	_, err = r.ExecuteAll(context.Background(), scenarios.Builtin())
	require.NoError(t, err)
}

func TestBuiltinRespectsRunnerFormat(t *testing.T) {
	found, err := scenarios.Lookup("stateless")
	require.NoError(t, err)

	var buf bytes.Buffer
	_, err = newPlainRunner(&buf, optrun.WithFormat(printers.FormatAltHex)).Execute(found[0])
	require.NoError(t, err)

	assert.Equal(t, "stateless\n0x0\n0x3\n0x6\n0x9\n", buf.String())
}

func TestLookup(t *testing.T) {
	found, err := scenarios.Lookup("accumulate", "no-filter")
	require.NoError(t, err)
	require.Len(t, found, 2)
	assert.Equal(t, "accumulate", found[0].Name)
	assert.Equal(t, "no-filter", found[1].Name)

	_, err = scenarios.Lookup("inner-fn", "does-not-exist")
	assert.True(t, errors.Is(err, scenarios.ErrUnknownScenario), "err = %v", err)
}

func TestNames(t *testing.T) {
	assert.Equal(t, []string{
		"no-filter",
		"inner-fn",
		"stateless",
		"read-local",
		"mutate-local",
		"two-closures",
		"accumulate",
	}, scenarios.Names())
}
