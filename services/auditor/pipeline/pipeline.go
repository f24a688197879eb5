// Copyright (C) 2025 SolSentry Labs
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package pipeline implements the three-stage audit workflow: assessment,
// scenario simulation, and remediation. The stages run strictly in sequence,
// each wrapping exactly one model invocation whose streamed response is
// accumulated before deterministic post-processing.
//
// Stage failures never abort the pipeline. Each stage independently converts
// a model invocation error into a degraded-but-well-formed result, and the
// next stage operates on that degraded data as if it were a normal response.
package pipeline

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/solsentry/solsentry/services/auditor/datatypes"
	"github.com/solsentry/solsentry/services/auditor/observability"
	"github.com/solsentry/solsentry/services/llm"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

var pipelineTracer = otel.Tracer("solsentry.auditor.pipeline")

// ErrEmptyCode is returned by Run when the request carries no source text.
var ErrEmptyCode = errors.New("Code cannot be empty")

// Pipeline wires the three stages to one LLM client. It holds no per-request
// state; concurrent Run calls are independent.
type Pipeline struct {
	llmClient llm.LLMClient
	metrics   *observability.AuditMetrics
	logger    *slog.Logger
}

// New creates a Pipeline. metrics may be nil (tests); a nil logger falls
// back to slog.Default().
func New(llmClient llm.LLMClient, metrics *observability.AuditMetrics, logger *slog.Logger) *Pipeline {
	if logger == nil {
		logger = slog.Default()
	}
	return &Pipeline{llmClient: llmClient, metrics: metrics, logger: logger}
}

// invoke performs one model call with a single user-role message and
// accumulates the streamed response until the stream is exhausted.
func (p *Pipeline) invoke(ctx context.Context, prompt string) (string, error) {
	var buf []byte
	err := p.llmClient.ChatStream(ctx,
		[]datatypes.Message{{Role: "user", Content: prompt}},
		llm.GenerationParams{},
		llm.CollectTokens(&buf))
	if err != nil {
		return "", err
	}
	return string(buf), nil
}

// Run executes the full audit: assessment, then simulation, then
// remediation. The only error it returns is ErrEmptyCode from entry
// validation; every downstream failure is absorbed into degraded stage
// results per the audit contract.
func (p *Pipeline) Run(ctx context.Context, req *datatypes.AuditRequest) (*datatypes.AuditReport, error) {
	if strings.TrimSpace(req.Code) == "" {
		p.metrics.RecordAudit(false)
		return nil, ErrEmptyCode
	}

	ctx, span := pipelineTracer.Start(ctx, "Pipeline.Run")
	defer span.End()

	report := &datatypes.AuditReport{
		AuditID:   uuid.NewString(),
		FileName:  req.FileNameOrDefault(),
		ProgramID: req.ProgramIDOrDefault(),
		StartedAt: time.Now().UTC(),
	}
	span.SetAttributes(attribute.String("audit.id", report.AuditID))

	logger := p.logger
	if sc := trace.SpanContextFromContext(ctx); sc.HasTraceID() {
		logger = logger.With("trace_id", sc.TraceID().String())
	}
	logger.Info("audit started", "audit_id", report.AuditID,
		"file_name", report.FileName, "code_bytes", len(req.Code))

	p.metrics.AuditStarted()
	defer p.metrics.AuditEnded()

	start := time.Now()
	assessment, degraded := p.runAssessment(ctx, req)
	p.metrics.ObserveStage(observability.StageAssessment, time.Since(start),
		len(assessment.Issues), degraded)
	report.Assessment = assessment

	start = time.Now()
	simulation, degraded := p.runSimulation(ctx, req, assessment)
	p.metrics.ObserveStage(observability.StageSimulation, time.Since(start),
		len(simulation.SimulationReport), degraded)
	report.Simulation = simulation

	start = time.Now()
	remediation, degraded := p.runRemediation(ctx, req, assessment, simulation)
	p.metrics.ObserveStage(observability.StageRemediation, time.Since(start),
		len(remediation.FixedCode)+len(remediation.ChangesSummary), degraded)
	report.Remediation = remediation

	p.metrics.RecordAudit(true)
	logger.Info("audit completed", "audit_id", report.AuditID,
		"severity", assessment.Severity, "confidence", remediation.Confidence)
	return report, nil
}
