// Copyright (C) 2025 SolSentry Labs
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package rules embeds the lexical pattern catalog into the binary so the
// inspector's rules are immutable at runtime and travel with the executable.
package rules

import (
	_ "embed"
)

// ProgramPatterns holds the raw byte content of program_patterns.yaml,
// populated at compile time. Pass these bytes directly to yaml.Unmarshal.
//
//go:embed program_patterns.yaml
var ProgramPatterns []byte
