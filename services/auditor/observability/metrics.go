// Copyright (C) 2025 SolSentry Labs
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package observability provides Prometheus metrics for the auditor.
//
// Metrics cover the audit pipeline (per-stage duration and degradation) and
// the HTTP surface (request counts, active audits). They are exposed via the
// /metrics endpoint; all operations are thread-safe through Prometheus's
// internal locking.
package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const metricsNamespace = "solsentry"

const auditSubsystem = "audit"

// Stage labels one pipeline stage for metrics.
type Stage string

const (
	StageAssessment  Stage = "assessment"
	StageSimulation  Stage = "simulation"
	StageRemediation Stage = "remediation"
)

// AuditMetrics holds all Prometheus metrics for audit operations.
// Initialize once at startup via InitMetrics(). All methods are nil-safe so
// tests can run the pipeline without a registry.
type AuditMetrics struct {
	// AuditsTotal counts completed audits.
	// Labels: status (success, rejected)
	AuditsTotal *prometheus.CounterVec

	// StageDurationSeconds measures wall time per pipeline stage.
	// Labels: stage (assessment, simulation, remediation)
	StageDurationSeconds *prometheus.HistogramVec

	// DegradedStagesTotal counts stages that completed in degraded mode
	// after a model invocation failure.
	// Labels: stage
	DegradedStagesTotal *prometheus.CounterVec

	// ActiveAudits tracks audits currently in flight.
	ActiveAudits prometheus.Gauge

	// ResponseBytesTotal counts accumulated model response bytes per stage.
	// Labels: stage
	ResponseBytesTotal *prometheus.CounterVec
}

// DefaultMetrics is the singleton instance, set by InitMetrics().
var DefaultMetrics *AuditMetrics

// InitMetrics creates and registers all audit metrics on the default
// Prometheus registry. Call once at startup; a second call panics with a
// duplicate registration.
func InitMetrics() *AuditMetrics {
	DefaultMetrics = &AuditMetrics{
		AuditsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Subsystem: auditSubsystem,
				Name:      "audits_total",
				Help:      "Total number of audit requests by status",
			},
			[]string{"status"},
		),

		StageDurationSeconds: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: metricsNamespace,
				Subsystem: auditSubsystem,
				Name:      "stage_duration_seconds",
				Help:      "Wall time per pipeline stage in seconds",
				Buckets:   []float64{0.5, 1, 2.5, 5, 10, 30, 60, 120},
			},
			[]string{"stage"},
		),

		DegradedStagesTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Subsystem: auditSubsystem,
				Name:      "degraded_stages_total",
				Help:      "Stages completed in degraded mode after a model failure",
			},
			[]string{"stage"},
		),

		ActiveAudits: promauto.NewGauge(
			prometheus.GaugeOpts{
				Namespace: metricsNamespace,
				Subsystem: auditSubsystem,
				Name:      "active_audits",
				Help:      "Audits currently in flight",
			},
		),

		ResponseBytesTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Subsystem: auditSubsystem,
				Name:      "response_bytes_total",
				Help:      "Accumulated model response bytes per stage",
			},
			[]string{"stage"},
		),
	}
	return DefaultMetrics
}

// =============================================================================
// Helper Methods
// =============================================================================

// RecordAudit records a completed audit request.
func (m *AuditMetrics) RecordAudit(success bool) {
	if m == nil {
		return
	}
	status := "success"
	if !success {
		status = "rejected"
	}
	m.AuditsTotal.WithLabelValues(status).Inc()
}

// ObserveStage records one stage's duration and response size, and whether
// it degraded.
func (m *AuditMetrics) ObserveStage(stage Stage, elapsed time.Duration, responseBytes int, degraded bool) {
	if m == nil {
		return
	}
	m.StageDurationSeconds.WithLabelValues(string(stage)).Observe(elapsed.Seconds())
	m.ResponseBytesTotal.WithLabelValues(string(stage)).Add(float64(responseBytes))
	if degraded {
		m.DegradedStagesTotal.WithLabelValues(string(stage)).Inc()
	}
}

// AuditStarted increments the in-flight gauge.
func (m *AuditMetrics) AuditStarted() {
	if m == nil {
		return
	}
	m.ActiveAudits.Inc()
}

// AuditEnded decrements the in-flight gauge.
func (m *AuditMetrics) AuditEnded() {
	if m == nil {
		return
	}
	m.ActiveAudits.Dec()
}
