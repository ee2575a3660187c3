package cinder_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.cinder.dev/internal/fixture"
)

func TestScenarios(t *testing.T) {
	scenarios, err := fixture.Load("testdata")
	require.NoError(t, err)
	require.NotEmpty(t, scenarios)

	results, err := fixture.RunAll(context.Background(), scenarios, 4)
	require.NoError(t, err)
	require.Len(t, results, len(scenarios))

	for _, res := range results {
		assert.True(t, res.Passed, res.String())
	}
}
