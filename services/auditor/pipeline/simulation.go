// Copyright (C) 2025 SolSentry Labs
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package pipeline

import (
	"context"
	"fmt"
	"strings"

	"github.com/solsentry/solsentry/services/auditor/datatypes"
	"go.opentelemetry.io/otel/attribute"
)

// scenarioChecks are the three fixed scenarios every simulation reports on.
// Each Passed flag is decided by verbatim presence of the phrase in the
// model narrative; no code is ever executed.
var scenarioChecks = []struct {
	testCase string
	phrase   string
}{
	{"Authorization Check Test", "properly authorized"},
	{"PDA Validation Test", "PDA correctly validated"},
	{"Integer Overflow Test", "safe arithmetic"},
}

// evaluateScenarios produces the three fixed-identity test results, in
// order, from the simulation narrative.
func evaluateScenarios(report string) []datatypes.TestResult {
	results := make([]datatypes.TestResult, 0, len(scenarioChecks))
	for _, check := range scenarioChecks {
		passed := strings.Contains(report, check.phrase)
		details := fmt.Sprintf("simulation narrative does not state %q", check.phrase)
		if passed {
			details = fmt.Sprintf("simulation reports %q", check.phrase)
		}
		results = append(results, datatypes.TestResult{
			TestCase: check.testCase,
			Passed:   passed,
			Details:  details,
		})
	}
	return results
}

// runSimulation executes Stage B: one model invocation referencing Stage A's
// findings, then the fixed scenario evaluation over the narrative.
//
// A model failure degrades to an error-annotated report with an empty test
// result sequence; downstream stages continue on the degraded data.
func (p *Pipeline) runSimulation(ctx context.Context, req *datatypes.AuditRequest,
	assessment datatypes.AssessmentResult) (datatypes.SimulationResult, bool) {

	ctx, span := pipelineTracer.Start(ctx, "Pipeline.Simulation")
	defer span.End()

	response, err := p.invoke(ctx, buildSimulationPrompt(req, assessment))
	if err != nil {
		p.logger.Warn("simulation stage degraded", "error", err)
		span.SetAttributes(attribute.Bool("audit.degraded", true))
		return datatypes.SimulationResult{
			SimulationReport: fmt.Sprintf("Scenario simulation could not be completed: %v", err),
			TestResults:      []datatypes.TestResult{},
		}, true
	}

	result := datatypes.SimulationResult{
		SimulationReport: response,
		TestResults:      evaluateScenarios(response),
	}
	passed := 0
	for _, tr := range result.TestResults {
		if tr.Passed {
			passed++
		}
	}
	span.SetAttributes(attribute.Int("audit.scenarios_passed", passed))
	return result, false
}
