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
	"regexp"
	"strings"

	"github.com/solsentry/solsentry/services/auditor/datatypes"
	"go.opentelemetry.io/otel/attribute"
)

// NoSummaryPlaceholder is returned when the response carries no
// CHANGES_SUMMARY block.
const NoSummaryPlaceholder = "No summary provided."

// fixedCodePattern extracts the rewritten program from the FIXED_CODE
// marker's fenced block.
var fixedCodePattern = regexp.MustCompile("(?s)FIXED_CODE:\\s*```(?:rust)?\n?(.*?)```")

// changesSummaryPattern extracts everything after the CHANGES_SUMMARY
// marker up to the end of the response.
var changesSummaryPattern = regexp.MustCompile(`(?s)CHANGES_SUMMARY:\s*(.+)\z`)

// extractRemediation pattern-matches the two expected blocks out of the
// model response. Confidence is ConfidenceFull only when both matched;
// a failed code extraction falls back to the original input verbatim, and
// a failed summary extraction falls back to the constant placeholder.
func extractRemediation(response, originalCode string) datatypes.RemediationResult {
	result := datatypes.RemediationResult{Confidence: datatypes.ConfidenceFull}

	if m := fixedCodePattern.FindStringSubmatch(response); m != nil {
		result.FixedCode = strings.TrimSpace(m[1])
	} else {
		result.FixedCode = originalCode
		result.Confidence = datatypes.ConfidencePartial
	}

	if m := changesSummaryPattern.FindStringSubmatch(response); m != nil {
		result.ChangesSummary = strings.TrimSpace(m[1])
	} else {
		result.ChangesSummary = NoSummaryPlaceholder
		result.Confidence = datatypes.ConfidencePartial
	}
	return result
}

// runRemediation executes Stage C: one model invocation over both prior
// stages' output, then marker extraction of the fixed code and summary.
//
// A model failure degrades to the original input code, an error-annotated
// summary, and zero confidence.
func (p *Pipeline) runRemediation(ctx context.Context, req *datatypes.AuditRequest,
	assessment datatypes.AssessmentResult,
	simulation datatypes.SimulationResult) (datatypes.RemediationResult, bool) {

	ctx, span := pipelineTracer.Start(ctx, "Pipeline.Remediation")
	defer span.End()

	response, err := p.invoke(ctx, buildRemediationPrompt(req, assessment, simulation))
	if err != nil {
		p.logger.Warn("remediation stage degraded", "error", err)
		span.SetAttributes(attribute.Bool("audit.degraded", true))
		return datatypes.RemediationResult{
			FixedCode:      req.Code,
			ChangesSummary: fmt.Sprintf("Remediation could not be completed: %v", err),
			Confidence:     datatypes.ConfidenceFailed,
		}, true
	}

	result := extractRemediation(response, req.Code)
	span.SetAttributes(attribute.Int("audit.confidence", result.Confidence))
	return result, false
}
