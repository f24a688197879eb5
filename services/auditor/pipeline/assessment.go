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

// issueMarkerPattern counts marker tokens in the assessment narrative.
// This is an approximate signal, not a semantic count of distinct findings.
var issueMarkerPattern = regexp.MustCompile(`(?i)\b(vulnerabilit(?:y|ies)|issues?|findings?|warnings?)\b`)

// classifySeverity derives the coarse severity label from keyword presence,
// checked in fixed priority order. Returns low when nothing matches.
func classifySeverity(response string) string {
	lower := strings.ToLower(response)
	switch {
	case strings.Contains(lower, "critical"):
		return datatypes.SeverityCritical
	case strings.Contains(lower, "high"):
		return datatypes.SeverityHigh
	case strings.Contains(lower, "medium"):
		return datatypes.SeverityMedium
	default:
		return datatypes.SeverityLow
	}
}

// countIssueMarkers returns the number of marker-token matches in the text.
func countIssueMarkers(response string) int {
	return len(issueMarkerPattern.FindAllStringIndex(response, -1))
}

// runAssessment executes Stage A: one model invocation, then severity and
// issue-count classification over the accumulated response.
//
// A model failure degrades to a well-formed result (severity medium, zero
// issues, error text embedded in the narrative) instead of propagating; the
// pipeline never aborts here.
func (p *Pipeline) runAssessment(ctx context.Context, req *datatypes.AuditRequest) (datatypes.AssessmentResult, bool) {
	ctx, span := pipelineTracer.Start(ctx, "Pipeline.Assessment")
	defer span.End()

	response, err := p.invoke(ctx, buildAssessmentPrompt(req))
	if err != nil {
		p.logger.Warn("assessment stage degraded", "error", err)
		span.SetAttributes(attribute.Bool("audit.degraded", true))
		return datatypes.AssessmentResult{
			Issues:     fmt.Sprintf("Static assessment could not be completed: %v", err),
			Severity:   datatypes.SeverityMedium,
			IssueCount: 0,
		}, true
	}

	result := datatypes.AssessmentResult{
		Issues:     response,
		Severity:   classifySeverity(response),
		IssueCount: countIssueMarkers(response),
	}
	span.SetAttributes(
		attribute.String("audit.severity", result.Severity),
		attribute.Int("audit.issue_count", result.IssueCount),
	)
	return result, false
}
