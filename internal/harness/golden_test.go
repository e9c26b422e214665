package harness

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunWithGolden_Rematch(t *testing.T) {
	scenario, err := LoadScenario(filepath.Join("testdata", "scenarios", "rematch.yaml"))
	require.NoError(t, err)

	result, err := RunWithGolden(t, scenario)
	require.NoError(t, err)
	assert.True(t, result.Pass, "errors: %v", result.Errors)
}

func TestMarshalTrace_Deterministic(t *testing.T) {
	scenario, err := LoadScenario(filepath.Join("testdata", "scenarios", "rematch.yaml"))
	require.NoError(t, err)

	first, err := Run(scenario)
	require.NoError(t, err)
	second, err := Run(scenario)
	require.NoError(t, err)

	a, err := MarshalTrace(scenario.Name, first.Trace)
	require.NoError(t, err)
	b, err := MarshalTrace(scenario.Name, second.Trace)
	require.NoError(t, err)
	assert.Equal(t, string(a), string(b))
}

func TestMarshalTrace_EmptyRosterIsArray(t *testing.T) {
	data, err := MarshalTrace("x", []TraceEvent{{Seq: 1, Action: ActionClear, Roster: []string{}}})
	require.NoError(t, err)
	assert.Contains(t, string(data), `"roster": []`)
	assert.Equal(t, byte('\n'), data[len(data)-1])
}
