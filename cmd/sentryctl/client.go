// Copyright (C) 2025 SolSentry Labs
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/solsentry/solsentry/services/auditor/datatypes"
)

// apiClient is a thin HTTP client for the auditor service API.
type apiClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

func newAPIClient(baseURL, apiKey string, timeout time.Duration) *apiClient {
	return &apiClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// ValidateFinding mirrors one advisory rule hit in the validate response.
type ValidateFinding struct {
	LineNumber  int    `json:"line_number"`
	Matched     string `json:"matched_content"`
	PatternID   string `json:"pattern_id"`
	Description string `json:"pattern_description"`
}

// ValidateResult mirrors the body of POST /v1/audit/validate.
type ValidateResult struct {
	LooksLikeProgram bool              `json:"looksLikeProgram"`
	Findings         []ValidateFinding `json:"findings"`
}

// Audit submits the request and decodes the full audit report.
func (c *apiClient) Audit(ctx context.Context, req *datatypes.AuditRequest) (*datatypes.AuditReport, error) {
	var report datatypes.AuditReport
	if err := c.post(ctx, "/v1/audit", req, &report); err != nil {
		return nil, err
	}
	return &report, nil
}

// Validate runs the cheap lexical pre-check.
func (c *apiClient) Validate(ctx context.Context, code string) (*ValidateResult, error) {
	var result ValidateResult
	if err := c.post(ctx, "/v1/audit/validate", map[string]string{"code": code}, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Health probes GET /health.
func (c *apiClient) Health(ctx context.Context) error {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/health", nil)
	if err != nil {
		return err
	}
	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("health check returned status %d", resp.StatusCode)
	}
	return nil
}

func (c *apiClient) post(ctx context.Context, path string, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return err
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return decodeAPIError(resp)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

// decodeAPIError surfaces the service's error field when present, the
// raw body otherwise.
func decodeAPIError(resp *http.Response) error {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	var apiErr struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(raw, &apiErr); err == nil && apiErr.Error != "" {
		return fmt.Errorf("service returned %d: %s", resp.StatusCode, apiErr.Error)
	}
	return fmt.Errorf("service returned %d: %s", resp.StatusCode, strings.TrimSpace(string(raw)))
}
