// Copyright (C) 2025 SolSentry Labs
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package validation provides input validation utilities for security-critical operations.
//
// This package contains validators for user-provided inputs that end up in
// file paths or outbound requests. Using these validators prevents path
// traversal and keeps malformed on-chain addresses out of audit reports.
package validation

import (
	"fmt"
	"regexp"
	"strings"
)

// programIDPattern matches base58-encoded Solana addresses.
// Base58 excludes 0, O, I and l; on-chain addresses decode to 32 bytes,
// which lands in the 32-44 character range.
var programIDPattern = regexp.MustCompile(`^[1-9A-HJ-NP-Za-km-z]{32,44}$`)

// fileNamePattern matches bare source file names: no separators, no
// leading dot, a conservative character set.
var fileNamePattern = regexp.MustCompile(`^[A-Za-z0-9_][A-Za-z0-9_\-.]{0,254}$`)

// ValidateProgramID validates a Solana program address.
//
// Valid addresses:
//   - 32-44 characters
//   - Base58 alphabet (no 0, O, I, l)
//
// Returns an error if the address is invalid.
//
// Example:
//
//	if err := validation.ValidateProgramID(id); err != nil {
//	    return fmt.Errorf("invalid program id: %w", err)
//	}
func ValidateProgramID(programID string) error {
	if programID == "" {
		return fmt.Errorf("program id cannot be empty")
	}

	if !programIDPattern.MatchString(programID) {
		return fmt.Errorf("invalid program id format: %q (must be 32-44 base58 characters)", programID)
	}

	return nil
}

// ValidateFileName validates a submitted source file name. It rejects
// path separators and traversal sequences so the name is safe to echo
// into reports and log lines.
func ValidateFileName(name string) error {
	if name == "" {
		return fmt.Errorf("file name cannot be empty")
	}
	if strings.ContainsAny(name, `/\`) || strings.Contains(name, "..") {
		return fmt.Errorf("file name must not contain path separators or traversal sequences: %q", name)
	}
	if !fileNamePattern.MatchString(name) {
		return fmt.Errorf("invalid file name: %q", name)
	}
	return nil
}

// SanitizeProgramID normalizes and validates a program address.
// Returns the trimmed address if valid, or an error if invalid.
func SanitizeProgramID(programID string) (string, error) {
	normalized := strings.TrimSpace(programID)
	if err := ValidateProgramID(normalized); err != nil {
		return "", err
	}
	return normalized, nil
}
