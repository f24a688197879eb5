// Copyright (C) 2025 SolSentry Labs
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package pipeline

import (
	"fmt"
	"strings"

	"github.com/solsentry/solsentry/services/auditor/datatypes"
)

// assessmentPromptTemplate drives the static assessment pass.
// Args: file name, program ID, source code, optional scenario hints.
const assessmentPromptTemplate = `You are performing a security assessment of a Solana smart contract.

File: %s
Program ID: %s

Source code:
` + "```rust\n%s\n```" + `
%s
Review the program for security vulnerabilities, including but not limited to:
- Missing signer or ownership checks
- Unvalidated PDA derivations and account relationships
- Integer overflow or unchecked arithmetic
- Missing initialization checks and re-initialization attacks
- Arbitrary CPI targets

For every vulnerability, describe the flaw, where it occurs, and its impact.
Label each finding with a severity: critical, high, medium, or low.`

// simulationPromptTemplate drives the scenario simulation pass.
// Args: file name, assessment issues text, source code.
const simulationPromptTemplate = `You previously assessed the Solana program %s and reported:

%s

Now simulate how an attacker would exercise these findings, and how the
program behaves under three standard scenarios:

1. Authorization: attempt state changes without the expected signer. If the
   program rejects them, state exactly: properly authorized
2. PDA validation: attempt to substitute attacker-controlled accounts for
   derived addresses. If the program verifies derivations, state exactly: PDA correctly validated
3. Arithmetic: drive balances and counters toward their bounds. If the
   program uses checked math throughout, state exactly: safe arithmetic

Walk through each scenario step by step against this source:
` + "```rust\n%s\n```"

// remediationPromptTemplate drives the remediation pass.
// Args: file name, issues text, simulation report, test outcome lines, source code.
const remediationPromptTemplate = `You are fixing the Solana program %s.

Assessment findings:
%s

Simulation report:
%s

Scenario outcomes:
%s

Rewrite the program to fix every finding while preserving its intended
behavior. Respond in exactly this format, with both markers present:

FIXED_CODE:
` + "```rust\n<the complete rewritten program>\n```" + `

CHANGES_SUMMARY:
- <one bullet per change>

Original source:
` + "```rust\n%s\n```"

// buildAssessmentPrompt renders the Stage A prompt from the request,
// applying the file name and program ID placeholders when unset.
func buildAssessmentPrompt(req *datatypes.AuditRequest) string {
	scenarioBlock := ""
	if len(req.TestCases) > 0 {
		var b strings.Builder
		b.WriteString("\nCaller-supplied scenarios to consider:\n")
		for _, tc := range req.TestCases {
			fmt.Fprintf(&b, "- %s\n", tc)
		}
		scenarioBlock = b.String()
	}
	return fmt.Sprintf(assessmentPromptTemplate,
		req.FileNameOrDefault(), req.ProgramIDOrDefault(), req.Code, scenarioBlock)
}

// buildSimulationPrompt renders the Stage B prompt from Stage A's output.
func buildSimulationPrompt(req *datatypes.AuditRequest, assessment datatypes.AssessmentResult) string {
	return fmt.Sprintf(simulationPromptTemplate,
		req.FileNameOrDefault(), assessment.Issues, req.Code)
}

// buildRemediationPrompt renders the Stage C prompt from both prior stages.
func buildRemediationPrompt(req *datatypes.AuditRequest, assessment datatypes.AssessmentResult,
	simulation datatypes.SimulationResult) string {

	var outcomes strings.Builder
	for _, tr := range simulation.TestResults {
		status := "failed"
		if tr.Passed {
			status = "passed"
		}
		fmt.Fprintf(&outcomes, "- %s: %s\n", tr.TestCase, status)
	}
	if outcomes.Len() == 0 {
		outcomes.WriteString("- no scenario outcomes available\n")
	}
	return fmt.Sprintf(remediationPromptTemplate,
		req.FileNameOrDefault(), assessment.Issues, simulation.SimulationReport,
		outcomes.String(), req.Code)
}
