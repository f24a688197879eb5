// Copyright (C) 2025 SolSentry Labs
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package handlers contains the gin handlers for the auditor service.
package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"

	"github.com/solsentry/solsentry/services/auditor/datatypes"
	"github.com/solsentry/solsentry/services/auditor/pipeline"
	"github.com/solsentry/solsentry/services/heuristics"
)

var auditTracer = otel.Tracer("solsentry.auditor.handlers")

// HandleAudit runs the full three-stage audit over the submitted source.
//
// The pipeline itself never fails past entry validation; stage failures
// come back inside the report as degraded results, so the only non-200
// outcomes here are malformed or empty requests.
func HandleAudit(pipe *pipeline.Pipeline, inspector *heuristics.Inspector) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, span := auditTracer.Start(c.Request.Context(), "HandleAudit")
		defer span.End()

		var req datatypes.AuditRequest
		if err := c.BindJSON(&req); err != nil {
			// A missing or empty code field fails the binding's required
			// check; surface it with the same message the pipeline uses so
			// the contract does not depend on where the rejection happens.
			var vErrs validator.ValidationErrors
			if errors.As(err, &vErrs) {
				for _, fe := range vErrs {
					if fe.Field() == "Code" && fe.Tag() == "required" {
						slog.Warn("Rejected audit request", "error", err)
						c.JSON(http.StatusBadRequest, gin.H{"error": pipeline.ErrEmptyCode.Error()})
						return
					}
				}
			}
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			slog.Error("Failed to parse the audit request", "error", err)
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}
		if err := req.Validate(); err != nil {
			slog.Warn("Rejected audit request", "error", err)
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		report, err := pipe.Run(ctx, &req)
		if err != nil {
			if errors.Is(err, pipeline.ErrEmptyCode) {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			slog.Error("Audit pipeline failed", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		if inspector != nil {
			for _, f := range inspector.ScanSource(req.Code) {
				report.HeuristicFindings = append(report.HeuristicFindings, datatypes.HeuristicFinding{
					LineNumber:  f.LineNumber,
					Matched:     f.Matched,
					RuleID:      f.PatternID,
					Description: f.Description,
				})
			}
		}

		c.JSON(http.StatusOK, report)
	}
}
