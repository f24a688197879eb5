// Copyright (C) 2025 SolSentry Labs
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package heuristics

import (
	"fmt"
	"regexp"
	"sort"

	"gopkg.in/yaml.v3"
)

// RuleKind classifies what a matched pattern indicates about the source.
type RuleKind string

const (
	// KindMarker patterns indicate the text plausibly is a Solana program.
	KindMarker RuleKind = "marker"

	// KindRisky patterns indicate a fragile construct worth flagging.
	KindRisky RuleKind = "risky"
)

func (k *RuleKind) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	incoming := RuleKind(s)
	switch incoming {
	case KindMarker, KindRisky:
		*k = incoming
		return nil
	default:
		return fmt.Errorf("invalid value for rule kind: %q", incoming)
	}
}

// RuleFile is the YAML shape of the embedded pattern catalog.
type RuleFile struct {
	RuleSets []RuleSet `yaml:"rulesets"`
}

// RuleSet groups patterns of one kind with a match priority.
type RuleSet struct {
	Name        string           `yaml:"name"`
	Description string           `yaml:"description"`
	Kind        RuleKind         `yaml:"kind"`
	Priority    int              `yaml:"priority"`
	Patterns    []Pattern        `yaml:"patterns"`
	compiled    []*regexp.Regexp `yaml:"-"`
}

// Pattern is one named regex within a rule set.
type Pattern struct {
	ID          string         `yaml:"id"`
	Description string         `yaml:"description"`
	Regex       string         `yaml:"regex"`
	compiled    *regexp.Regexp `yaml:"-"`
}

// Compile compiles every pattern regex, failing on the first invalid one.
func (f *RuleFile) Compile() error {
	for i := range f.RuleSets {
		for j := range f.RuleSets[i].Patterns {
			pattern := &f.RuleSets[i].Patterns[j]
			re, err := regexp.Compile(pattern.Regex)
			if err != nil {
				return fmt.Errorf("failed to compile the regex %s: %w", pattern.Regex, err)
			}
			f.RuleSets[i].compiled = append(f.RuleSets[i].compiled, re)
			pattern.compiled = re
		}
	}
	return nil
}

// SortByPriority orders rule sets from highest to lowest priority.
func (f *RuleFile) SortByPriority() {
	sort.Slice(f.RuleSets, func(i, j int) bool {
		return f.RuleSets[i].Priority > f.RuleSets[j].Priority
	})
}

// Finding is one line-level match against the source text.
type Finding struct {
	LineNumber  int      `json:"line_number"`
	Matched     string   `json:"matched_content"`
	RuleSet     string   `json:"ruleset_name"`
	Kind        RuleKind `json:"kind"`
	PatternID   string   `json:"pattern_id"`
	Description string   `json:"pattern_description"`
}
