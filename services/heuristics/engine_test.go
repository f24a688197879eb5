// Copyright (C) 2025 SolSentry Labs
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package heuristics

import (
	"testing"
)

func TestInspector(t *testing.T) {
	inspector, err := NewInspector()
	if err != nil {
		t.Fatalf("Failed to initialize inspector: %v", err)
	}

	tests := []struct {
		name            string
		input           string
		looksLike       bool
		shouldFind      bool
		expectedSet     string
		expectedPattern string
	}{
		{
			name:      "Plain text",
			input:     "This is a perfectly ordinary paragraph about the weather.",
			looksLike: false,
		},
		{
			name:            "Native program import",
			input:           "use solana_program::account_info::AccountInfo;",
			looksLike:       true,
			shouldFind:      true,
			expectedSet:     "solana_program_markers",
			expectedPattern: "solana-import",
		},
		{
			name:            "Entrypoint macro",
			input:           "entrypoint!(process_instruction);",
			looksLike:       true,
			shouldFind:      true,
			expectedSet:     "solana_program_markers",
			expectedPattern: "entrypoint-macro",
		},
		{
			name:            "Anchor program attribute",
			input:           "#[program]\npub mod vault {}",
			looksLike:       true,
			shouldFind:      true,
			expectedSet:     "anchor_markers",
			expectedPattern: "program-attribute",
		},
		{
			name:            "Risky unwrap without markers",
			input:           "let value = maybe_value.unwrap();",
			looksLike:       false,
			shouldFind:      true,
			expectedSet:     "risky_constructs",
			expectedPattern: "unchecked-unwrap",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := inspector.LooksLikeProgram(tc.input); got != tc.looksLike {
				t.Errorf("LooksLikeProgram = %v, want %v", got, tc.looksLike)
			}

			findings := inspector.ScanSource(tc.input)
			if !tc.shouldFind {
				if len(findings) != 0 {
					t.Errorf("Expected 0 findings, got %d", len(findings))
				}
				return
			}
			if len(findings) == 0 {
				t.Fatalf("Expected to find '%s' but got 0 findings", tc.expectedPattern)
			}
			first := findings[0]
			if first.RuleSet != tc.expectedSet {
				t.Errorf("Expected rule set '%s', got '%s'", tc.expectedSet, first.RuleSet)
			}
			if first.PatternID != tc.expectedPattern {
				t.Errorf("Expected pattern ID '%s', got '%s'", tc.expectedPattern, first.PatternID)
			}
			if first.LineNumber < 1 {
				t.Errorf("Line numbers are 1-based, got %d", first.LineNumber)
			}
		})
	}
}

func TestScanSource_LineNumbers(t *testing.T) {
	inspector, err := NewInspector()
	if err != nil {
		t.Fatalf("Failed to initialize inspector: %v", err)
	}

	source := "use anchor_lang::prelude::*;\n\nlet v = x.unwrap();\n"
	findings := inspector.ScanSource(source)

	if len(findings) != 2 {
		t.Fatalf("Expected 2 findings, got %d", len(findings))
	}
	if findings[0].LineNumber != 1 {
		t.Errorf("First finding should be on line 1, got %d", findings[0].LineNumber)
	}
	if findings[1].LineNumber != 3 {
		t.Errorf("Second finding should be on line 3, got %d", findings[1].LineNumber)
	}
}
