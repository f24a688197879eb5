// Copyright (C) 2025 SolSentry Labs
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package main

import (
	"fmt"
	"strings"

	"github.com/solsentry/solsentry/pkg/ux"
	"github.com/solsentry/solsentry/services/auditor/datatypes"
)

// renderReport lays out the three stage results for the terminal.
// The fixed code block goes to the end so everything above it stays
// visible on one screen for typical programs.
func renderReport(report *datatypes.AuditReport) string {
	var b strings.Builder

	b.WriteString(ux.Styles.Title.Render("SolSentry Audit Report"))
	b.WriteString("\n")
	b.WriteString(ux.Styles.Muted.Render(fmt.Sprintf("audit %s  file %s  program %s",
		report.AuditID, report.FileName, report.ProgramID)))
	b.WriteString("\n\n")

	// Stage A
	b.WriteString(ux.Styles.Subtitle.Render("Assessment"))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("  severity: %s  issue markers: %d\n",
		ux.SeverityStyle(report.Assessment.Severity).Render(report.Assessment.Severity),
		report.Assessment.IssueCount))
	b.WriteString(indent(report.Assessment.Issues, "  "))
	b.WriteString("\n\n")

	// Stage B
	b.WriteString(ux.Styles.Subtitle.Render("Scenario Simulation"))
	b.WriteString("\n")
	if len(report.Simulation.TestResults) == 0 {
		b.WriteString(ux.Styles.Muted.Render("  no scenario results (stage degraded)"))
		b.WriteString("\n")
	}
	for _, tr := range report.Simulation.TestResults {
		mark := ux.Styles.StatusFail.String()
		if tr.Passed {
			mark = ux.Styles.StatusOK.String()
		}
		b.WriteString(fmt.Sprintf("  %s %s\n", mark, tr.TestCase))
	}
	b.WriteString("\n")

	// Stage C
	b.WriteString(ux.Styles.Subtitle.Render("Remediation"))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("  confidence: %s\n", renderConfidence(report.Remediation.Confidence)))
	b.WriteString(indent(report.Remediation.ChangesSummary, "  "))
	b.WriteString("\n")

	if len(report.HeuristicFindings) > 0 {
		b.WriteString("\n")
		b.WriteString(ux.Styles.Subtitle.Render("Heuristic Findings"))
		b.WriteString("\n")
		for _, f := range report.HeuristicFindings {
			b.WriteString(fmt.Sprintf("  line %d: %s\n", f.LineNumber, f.Description))
		}
	}

	b.WriteString("\n")
	b.WriteString(ux.Styles.Bold.Render("Fixed Code"))
	b.WriteString("\n")
	b.WriteString(report.Remediation.FixedCode)
	if !strings.HasSuffix(report.Remediation.FixedCode, "\n") {
		b.WriteString("\n")
	}

	return b.String()
}

func renderConfidence(confidence int) string {
	label := fmt.Sprintf("%d%%", confidence)
	switch {
	case confidence >= datatypes.ConfidenceFull:
		return ux.Styles.Success.Render(label)
	case confidence >= datatypes.ConfidencePartial:
		return ux.Styles.Warning.Render(label)
	default:
		return ux.Styles.Error.Render(label)
	}
}

func indent(text, prefix string) string {
	lines := strings.Split(strings.TrimSpace(text), "\n")
	for i, line := range lines {
		lines[i] = prefix + line
	}
	return strings.Join(lines, "\n")
}
