// Copyright (C) 2025 SolSentry Labs
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvaluateScenarios_FixedIdentityAndOrder(t *testing.T) {
	results := evaluateScenarios("an empty narrative")

	require.Len(t, results, 3)
	assert.Equal(t, "Authorization Check Test", results[0].TestCase)
	assert.Equal(t, "PDA Validation Test", results[1].TestCase)
	assert.Equal(t, "Integer Overflow Test", results[2].TestCase)
	for _, tr := range results {
		assert.False(t, tr.Passed)
		assert.NotEmpty(t, tr.Details)
	}
}

func TestEvaluateScenarios_PhrasePresence(t *testing.T) {
	report := "State changes are properly authorized. " +
		"Every PDA correctly validated against its seeds."

	results := evaluateScenarios(report)

	require.Len(t, results, 3)
	assert.True(t, results[0].Passed)
	assert.True(t, results[1].Passed)
	assert.False(t, results[2].Passed, "safe arithmetic is not mentioned")
}

func TestEvaluateScenarios_PhraseMatchIsVerbatim(t *testing.T) {
	// Case differences and paraphrases do not count.
	report := "Properly Authorized; arithmetic is safe; PDAs validated correctly."

	results := evaluateScenarios(report)

	require.Len(t, results, 3)
	assert.False(t, results[0].Passed)
	assert.False(t, results[1].Passed)
	assert.False(t, results[2].Passed)
}
