// Copyright (C) 2025 SolSentry Labs
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package datatypes

import (
	"strings"
	"testing"
)

func TestAuditRequestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		req     AuditRequest
		wantErr bool
	}{
		{
			name: "minimal valid request",
			req:  AuditRequest{Code: "pub fn process() {}"},
		},
		{
			name:    "missing code",
			req:     AuditRequest{ProgramID: "TokenkegQfeZyiNwAJbNbGKPFXCWuBvf9Ss623VQ5DA"},
			wantErr: true,
		},
		{
			name:    "code over byte limit",
			req:     AuditRequest{Code: strings.Repeat("a", MaxCodeBytes+1)},
			wantErr: true,
		},
		{
			name: "code at byte limit",
			req:  AuditRequest{Code: strings.Repeat("a", MaxCodeBytes)},
		},
		{
			name: "full request",
			req: AuditRequest{
				Code:      "pub fn process() {}",
				ProgramID: "TokenkegQfeZyiNwAJbNbGKPFXCWuBvf9Ss623VQ5DA",
				FileName:  "token.rs",
				TestCases: []string{"double spend", "authority bypass"},
			},
		},
		{
			name: "too many test cases",
			req: AuditRequest{
				Code:      "pub fn process() {}",
				TestCases: make([]string, MaxTestCases+1),
			},
			wantErr: true,
		},
		{
			name: "test case at byte limit",
			req: AuditRequest{
				Code:      "pub fn process() {}",
				TestCases: []string{strings.Repeat("a", MaxTestCaseBytes)},
			},
		},
		{
			name: "oversized test case",
			req: AuditRequest{
				Code:      "pub fn process() {}",
				TestCases: []string{strings.Repeat("a", MaxTestCaseBytes+1)},
			},
			wantErr: true,
		},
		{
			name: "oversized program id",
			req: AuditRequest{
				Code:      "pub fn process() {}",
				ProgramID: strings.Repeat("x", 65),
			},
			wantErr: true,
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			err := tc.req.Validate()
			if tc.wantErr && err == nil {
				t.Fatal("expected validation error, got nil")
			}
			if !tc.wantErr && err != nil {
				t.Fatalf("unexpected validation error: %v", err)
			}
		})
	}
}

func TestAuditRequestDefaults(t *testing.T) {
	t.Parallel()

	req := AuditRequest{Code: "fn main() {}"}
	if got := req.FileNameOrDefault(); got != DefaultFileName {
		t.Errorf("FileNameOrDefault() = %q, want %q", got, DefaultFileName)
	}
	if got := req.ProgramIDOrDefault(); got != DefaultProgramID {
		t.Errorf("ProgramIDOrDefault() = %q, want %q", got, DefaultProgramID)
	}

	req.FileName = "vault.rs"
	req.ProgramID = "Vault111111111111111111111111111111111111111"
	if got := req.FileNameOrDefault(); got != "vault.rs" {
		t.Errorf("FileNameOrDefault() = %q, want explicit name", got)
	}
	if got := req.ProgramIDOrDefault(); got != req.ProgramID {
		t.Errorf("ProgramIDOrDefault() = %q, want explicit id", got)
	}
}
