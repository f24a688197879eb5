// Copyright (C) 2025 SolSentry Labs
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/solsentry/solsentry/services/heuristics"
)

// ValidateRequest is the body of POST /v1/audit/validate.
type ValidateRequest struct {
	Code string `json:"code" binding:"required"`
}

// ValidateResponse reports whether the source lexically resembles a
// Solana program, with the individual rule hits.
type ValidateResponse struct {
	LooksLikeProgram bool                 `json:"looksLikeProgram"`
	Findings         []heuristics.Finding `json:"findings"`
}

// HandleValidateProgram is a cheap advisory pre-check. It never blocks a
// later audit; callers can use it to warn on pasted non-program text.
func HandleValidateProgram(inspector *heuristics.Inspector) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req ValidateRequest
		if err := c.BindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}
		if strings.TrimSpace(req.Code) == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Code cannot be empty"})
			return
		}

		resp := ValidateResponse{
			LooksLikeProgram: inspector.LooksLikeProgram(req.Code),
			Findings:         inspector.ScanSource(req.Code),
		}
		if resp.Findings == nil {
			resp.Findings = []heuristics.Finding{}
		}
		c.JSON(http.StatusOK, resp)
	}
}
