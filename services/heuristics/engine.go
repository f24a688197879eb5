// Copyright (C) 2025 SolSentry Labs
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package heuristics provides a shallow lexical inspector for submitted
// source text. It answers two advisory questions: does the text plausibly
// resemble a Solana program, and does it contain constructs worth flagging.
// The inspector never gates the audit pipeline's control flow.
package heuristics

import (
	"fmt"
	"strings"

	"github.com/solsentry/solsentry/services/heuristics/rules"
	"gopkg.in/yaml.v3"
)

// Inspector holds the compiled lexical rule catalog.
type Inspector struct {
	RuleSets []RuleSet
}

// NewInspector loads and compiles the rule catalog embedded in the binary.
//
// It unmarshals the embedded YAML, compiles all regex patterns, and sorts
// rule sets by priority. Returns an error if the embedded YAML is malformed
// or contains an invalid regex.
func NewInspector() (*Inspector, error) {
	var ruleFile RuleFile
	if err := yaml.Unmarshal(rules.ProgramPatterns, &ruleFile); err != nil {
		return nil, fmt.Errorf("failed to unmarshal the embedded rule file: %w", err)
	}
	if err := ruleFile.Compile(); err != nil {
		return nil, fmt.Errorf("failed to compile a rule pattern: %w", err)
	}
	ruleFile.SortByPriority()
	return &Inspector{RuleSets: ruleFile.RuleSets}, nil
}

// LooksLikeProgram reports whether the source contains at least one marker
// pattern. It is a quick boolean check over the whole text, optimized for
// request-path use.
func (i *Inspector) LooksLikeProgram(source string) bool {
	for _, set := range i.RuleSets {
		if set.Kind != KindMarker {
			continue
		}
		for _, re := range set.compiled {
			if re.MatchString(source) {
				return true
			}
		}
	}
	return false
}

// ScanSource audits the source line by line against every pattern and
// returns a finding for each match, with line numbers and matched text.
func (i *Inspector) ScanSource(source string) []Finding {
	var findings []Finding
	lines := strings.Split(source, "\n")
	for lineNum, line := range lines {
		for _, set := range i.RuleSets {
			for _, pattern := range set.Patterns {
				match := pattern.compiled.FindString(line)
				if match == "" {
					continue
				}
				findings = append(findings, Finding{
					LineNumber:  lineNum + 1,
					Matched:     strings.TrimSpace(match),
					RuleSet:     set.Name,
					Kind:        set.Kind,
					PatternID:   pattern.ID,
					Description: pattern.Description,
				})
			}
		}
	}
	return findings
}
