package fixture

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func value(n int64) *int64 {
	return &n
}

func TestDecode(t *testing.T) {
	data := []byte(`
scenarios:
  - name: sum
    source: "1 + 1;"
    value: 2
  - source: "1 / 0;"
    error: EvaluationError
`)

	scenarios, err := Decode(data, "dir/cases.yaml")
	require.NoError(t, err)
	require.Len(t, scenarios, 2)

	assert.Equal(t, "sum", scenarios[0].Name)
	assert.Equal(t, int64(2), *scenarios[0].Value)
	assert.Equal(t, "dir/cases.yaml", scenarios[0].File)

	assert.Equal(t, "cases.yaml#2", scenarios[1].Name)
	assert.Nil(t, scenarios[1].Value)
}

func TestDecodeErrors(t *testing.T) {
	cases := []struct {
		data   string
		expect string
	}{
		{"scenarios: [", "decoding bad.yaml"},
		{"scenarios:\n  - name: empty\n    source: \"1;\"\n", `scenario "empty" expects neither a value nor an error`},
	}

	for _, c := range cases {
		_, err := Decode([]byte(c.data), "bad.yaml")
		require.Error(t, err, c.data)
		assert.Contains(t, err.Error(), c.expect, c.data)
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.yaml"), []byte("scenarios:\n  - name: second\n    source: \"2;\"\n    value: 2\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.yaml"), []byte("scenarios:\n  - name: first\n    source: \"1;\"\n    value: 1\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignored"), 0o644))

	scenarios, err := Load(dir)
	require.NoError(t, err)
	require.Len(t, scenarios, 2)
	assert.Equal(t, "first", scenarios[0].Name)
	assert.Equal(t, "second", scenarios[1].Name)
}

func TestRun(t *testing.T) {
	cases := []struct {
		scenario Scenario
		passed   bool
		problems int
	}{
		{Scenario{Name: "ok", Source: "println(3); 4;", Stdout: "3\n", Value: value(4)}, true, 0},
		{Scenario{Name: "value", Source: "4;", Value: value(5)}, false, 1},
		{Scenario{Name: "stdout", Source: "print(1); 0;", Value: value(0)}, false, 1},
		{Scenario{Name: "kind", Source: "1 / 0;", Error: "SyntaxError"}, false, 1},
		{Scenario{Name: "message", Source: "1 / 0;", Error: "EvaluationError", Message: "Oops."}, false, 1},
		{Scenario{Name: "missing error", Source: "1;", Error: "EvaluationError"}, false, 1},
		{Scenario{Name: "unexpected error", Source: "x;", Value: value(0)}, false, 1},
		{Scenario{Name: "error", Source: "1 / 0;", Error: "EvaluationError", Message: "Division by zero."}, true, 0},
	}

	for _, c := range cases {
		res := Run(c.scenario)
		assert.Equal(t, c.passed, res.Passed, res.String())
		assert.Len(t, res.Problems, c.problems, c.scenario.Name)
	}
}

func TestResultString(t *testing.T) {
	pass := Result{Scenario: Scenario{Name: "a"}, Passed: true}
	assert.Equal(t, "PASS a", pass.String())

	fail := Result{Scenario: Scenario{Name: "b"}, Problems: []string{"x", "y"}}
	assert.Equal(t, "FAIL b: x; y", fail.String())
}

func TestRunAll(t *testing.T) {
	scenarios := []Scenario{
		{Name: "one", Source: "1;", Value: value(1)},
		{Name: "two", Source: "2;", Value: value(2)},
		{Name: "three", Source: "3;", Value: value(4)},
	}

	results, err := RunAll(context.Background(), scenarios, 2)
	require.NoError(t, err)
	require.Len(t, results, 3)

	assert.True(t, results[0].Passed)
	assert.True(t, results[1].Passed)
	assert.False(t, results[2].Passed)
	assert.Equal(t, "three", results[2].Scenario.Name)
}

func TestRunAllCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := RunAll(ctx, []Scenario{{Name: "one", Source: "1;", Value: value(1)}}, 0)
	assert.ErrorIs(t, err, context.Canceled)
}
