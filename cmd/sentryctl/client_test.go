// Copyright (C) 2025 SolSentry Labs
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package main

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/solsentry/solsentry/services/auditor/datatypes"
)

func TestAPIClient_Audit(t *testing.T) {
	t.Parallel()

	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/v1/audit" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		gotAuth = r.Header.Get("Authorization")

		var req datatypes.AuditRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("server could not decode request: %v", err)
		}
		if req.Code == "" {
			t.Error("request reached server without code")
		}

		report := datatypes.AuditReport{
			AuditID:  "audit-1",
			FileName: req.FileName,
			Assessment: datatypes.AssessmentResult{
				Severity: datatypes.SeverityHigh,
			},
		}
		_ = json.NewEncoder(w).Encode(report)
	}))
	defer server.Close()

	client := newAPIClient(server.URL, "testkey", 5*time.Second)
	report, err := client.Audit(context.Background(), &datatypes.AuditRequest{
		Code:     "fn main() {}",
		FileName: "program.rs",
	})
	if err != nil {
		t.Fatalf("Audit failed: %v", err)
	}
	if report.AuditID != "audit-1" {
		t.Errorf("AuditID = %q, want %q", report.AuditID, "audit-1")
	}
	if report.Assessment.Severity != datatypes.SeverityHigh {
		t.Errorf("Severity = %q, want %q", report.Assessment.Severity, datatypes.SeverityHigh)
	}
	if gotAuth != "Bearer testkey" {
		t.Errorf("Authorization header = %q, want bearer token", gotAuth)
	}
}

func TestAPIClient_SurfacesServiceError(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":"Code cannot be empty"}`))
	}))
	defer server.Close()

	client := newAPIClient(server.URL, "", 5*time.Second)
	_, err := client.Audit(context.Background(), &datatypes.AuditRequest{})
	if err == nil {
		t.Fatal("expected error from 400 response")
	}
	if !strings.Contains(err.Error(), "Code cannot be empty") {
		t.Errorf("error %q does not surface the service message", err)
	}
}

func TestAPIClient_Health(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/health" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	}))
	defer server.Close()

	client := newAPIClient(server.URL, "", 5*time.Second)
	if err := client.Health(context.Background()); err != nil {
		t.Errorf("Health failed: %v", err)
	}
}

func TestRenderReport_ContainsStageSections(t *testing.T) {
	t.Parallel()

	report := &datatypes.AuditReport{
		AuditID:   "audit-9",
		FileName:  "vault.rs",
		ProgramID: "Unknown",
		Assessment: datatypes.AssessmentResult{
			Issues:     "Missing signer check on withdraw.",
			Severity:   datatypes.SeverityCritical,
			IssueCount: 2,
		},
		Simulation: datatypes.SimulationResult{
			TestResults: []datatypes.TestResult{
				{TestCase: "Authorization Check Test", Passed: false, Details: "not stated"},
			},
		},
		Remediation: datatypes.RemediationResult{
			FixedCode:      "fn withdraw(signer: &Signer) {}",
			ChangesSummary: "Added a signer constraint.",
			Confidence:     datatypes.ConfidenceFull,
		},
	}

	out := renderReport(report)
	for _, want := range []string{
		"Assessment",
		"Scenario Simulation",
		"Remediation",
		"Authorization Check Test",
		"Added a signer constraint.",
		"fn withdraw(signer: &Signer) {}",
		"audit-9",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("rendered report missing %q", want)
		}
	}
}
