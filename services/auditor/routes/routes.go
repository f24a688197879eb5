// Copyright (C) 2025 SolSentry Labs
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package routes

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/solsentry/solsentry/services/auditor/handlers"
	"github.com/solsentry/solsentry/services/auditor/middleware"
	"github.com/solsentry/solsentry/services/auditor/pipeline"
	"github.com/solsentry/solsentry/services/heuristics"
)

// Options carries the cross-cutting settings route registration needs.
type Options struct {
	// APIKey guards the /v1 group when non-empty.
	APIKey string

	// RateRPS and RateBurst bound audit throughput per client IP.
	// RateRPS <= 0 disables limiting.
	RateRPS   float64
	RateBurst int

	// RequestTimeout bounds each request context, model calls included.
	// <= 0 disables the bound.
	RequestTimeout time.Duration
}

func SetupRoutes(router *gin.Engine, pipe *pipeline.Pipeline, inspector *heuristics.Inspector, opts Options) {
	router.GET("/health", handlers.HealthCheck)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// API version 1 group
	v1 := router.Group("/v1")
	v1.Use(middleware.AuthMiddleware(opts.APIKey))
	v1.Use(middleware.RateLimitMiddleware(opts.RateRPS, opts.RateBurst))
	v1.Use(middleware.TimeoutMiddleware(opts.RequestTimeout))
	{
		v1.POST("/audit", handlers.HandleAudit(pipe, inspector))
		v1.POST("/audit/validate", handlers.HandleValidateProgram(inspector))
	}
}
