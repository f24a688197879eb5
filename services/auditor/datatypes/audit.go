// Copyright (C) 2025 SolSentry Labs
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package datatypes provides data structures for the auditor service.
//
// This file contains request and response types for the audit pipeline
// (POST /v1/audit). The types mirror the pipeline's three stages: an
// assessment pass, a scenario simulation pass, and a remediation pass.
package datatypes

import (
	"time"

	"github.com/go-playground/validator/v10"
)

// =============================================================================
// Limits
// =============================================================================

const (
	// MaxCodeBytes is the maximum size of a submitted program source.
	// Byte length, not rune count, to bound memory on hostile input.
	MaxCodeBytes = 256 * 1024 // 256KB

	// MaxTestCases is the maximum number of caller-supplied test case
	// descriptions per request.
	MaxTestCases = 32

	// MaxTestCaseBytes is the maximum byte length of a single test case
	// description.
	MaxTestCaseBytes = 512

	// DefaultFileName is used when the caller does not name the source file.
	DefaultFileName = "program.rs"

	// DefaultProgramID is used when the caller does not supply a program
	// address.
	DefaultProgramID = "Unknown"
)

// =============================================================================
// Shared Validator Instance
// =============================================================================

// auditValidate is the validator instance for audit datatypes.
// Initialized in init() with custom validators.
var auditValidate *validator.Validate

func init() {
	auditValidate = validator.New()
	_ = auditValidate.RegisterValidation("maxcodebytes", validateMaxCodeBytes)
	_ = auditValidate.RegisterValidation("maxtestcases", validateMaxTestCases)
	_ = auditValidate.RegisterValidation("maxtestcasebytes", validateMaxTestCaseBytes)
}

// validateMaxCodeBytes enforces MaxCodeBytes on the raw byte length of a
// string field.
func validateMaxCodeBytes(fl validator.FieldLevel) bool {
	return len(fl.Field().String()) <= MaxCodeBytes
}

// validateMaxTestCases enforces MaxTestCases on the slice length, so the
// struct tag tracks the constant instead of repeating the literal.
func validateMaxTestCases(fl validator.FieldLevel) bool {
	return fl.Field().Len() <= MaxTestCases
}

// validateMaxTestCaseBytes enforces MaxTestCaseBytes on one test case
// description.
func validateMaxTestCaseBytes(fl validator.FieldLevel) bool {
	return len(fl.Field().String()) <= MaxTestCaseBytes
}

// =============================================================================
// Chat Message
// =============================================================================

// Message is a single role-tagged message sent to an LLM backend.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// =============================================================================
// Audit Request
// =============================================================================

// AuditRequest is the body of POST /v1/audit.
//
// Code is the only required field. ProgramID and FileName default to
// placeholders when omitted; TestCases are forwarded verbatim to the
// assessment prompt. The request is immutable once bound.
type AuditRequest struct {
	// Code is the full program source to audit. Required, non-empty.
	Code string `json:"code" binding:"required" validate:"required,maxcodebytes"`

	// ProgramID is the on-chain address of the deployed program, if known.
	ProgramID string `json:"programId,omitempty" validate:"omitempty,max=64"`

	// FileName is the name of the submitted source file.
	FileName string `json:"fileName,omitempty" validate:"omitempty,max=255"`

	// TestCases are optional scenario hints the caller wants exercised.
	TestCases []string `json:"testCases,omitempty" validate:"omitempty,maxtestcases,dive,maxtestcasebytes"`
}

// Validate checks the request against the registered constraints.
func (r *AuditRequest) Validate() error {
	return auditValidate.Struct(r)
}

// FileNameOrDefault returns FileName, or DefaultFileName when unset.
func (r *AuditRequest) FileNameOrDefault() string {
	if r.FileName == "" {
		return DefaultFileName
	}
	return r.FileName
}

// ProgramIDOrDefault returns ProgramID, or DefaultProgramID when unset.
func (r *AuditRequest) ProgramIDOrDefault() string {
	if r.ProgramID == "" {
		return DefaultProgramID
	}
	return r.ProgramID
}

// =============================================================================
// Stage Results
// =============================================================================

// Severity labels, ordered from least to most severe. The assessment stage
// infers one of these from keyword presence in the model response; it is a
// coarse label, not a calibrated risk score.
const (
	SeverityLow      = "low"
	SeverityMedium   = "medium"
	SeverityHigh     = "high"
	SeverityCritical = "critical"
)

// AssessmentResult is the output of the assessment stage.
type AssessmentResult struct {
	// Issues is the accumulated model narrative describing findings.
	Issues string `json:"issues"`

	// Severity is one of the Severity* constants.
	Severity string `json:"severity"`

	// IssueCount is a naive marker-token count over the narrative, not a
	// semantic count of distinct findings.
	IssueCount int `json:"issueCount"`
}

// TestResult is one synthesized scenario outcome from the simulation stage.
// No code is executed; Passed reflects phrase presence in the model response.
type TestResult struct {
	TestCase string `json:"testCase"`
	Passed   bool   `json:"passed"`
	Details  string `json:"details"`
}

// SimulationResult is the output of the scenario simulation stage.
type SimulationResult struct {
	// SimulationReport is the accumulated model narrative.
	SimulationReport string `json:"simulationReport"`

	// TestResults always holds exactly three fixed-identity entries on a
	// successful model call, and is empty when the call failed.
	TestResults []TestResult `json:"testResults"`
}

// Remediation confidence constants. Confidence reflects only whether the
// expected output markers were found in the response, not fix correctness.
const (
	ConfidenceFailed  = 0
	ConfidencePartial = 60
	ConfidenceFull    = 85
)

// RemediationResult is the output of the remediation stage.
type RemediationResult struct {
	// FixedCode is the rewritten program, or the original input verbatim
	// when extraction (or the model call) failed.
	FixedCode string `json:"fixedCode"`

	// ChangesSummary describes the applied changes, or a constant
	// placeholder when no summary block was found.
	ChangesSummary string `json:"changesSummary"`

	// Confidence is one of ConfidenceFailed, ConfidencePartial,
	// ConfidenceFull.
	Confidence int `json:"confidence"`
}

// =============================================================================
// Audit Report
// =============================================================================

// HeuristicFinding is one advisory lexical finding attached to the report.
// It is produced by the heuristics inspector and never gates the pipeline.
type HeuristicFinding struct {
	LineNumber  int    `json:"lineNumber"`
	Matched     string `json:"matched"`
	RuleID      string `json:"ruleId"`
	Description string `json:"description"`
}

// AuditReport is the response body of POST /v1/audit, aggregating all three
// stage results for one request.
type AuditReport struct {
	AuditID   string    `json:"auditId"`
	FileName  string    `json:"fileName"`
	ProgramID string    `json:"programId"`
	StartedAt time.Time `json:"startedAt"`

	Assessment  AssessmentResult  `json:"assessment"`
	Simulation  SimulationResult  `json:"simulation"`
	Remediation RemediationResult `json:"remediation"`

	// HeuristicFindings are advisory; see services/heuristics.
	HeuristicFindings []HeuristicFinding `json:"heuristicFindings,omitempty"`
}
