// Copyright (C) 2025 SolSentry Labs
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package ux

import (
	"strings"
	"testing"
)

func TestSeverityStyle_RendersLabel(t *testing.T) {
	for _, severity := range []string{"critical", "high", "medium", "low", "unknown"} {
		out := SeverityStyle(severity).Render(severity)
		if !strings.Contains(out, severity) {
			t.Errorf("SeverityStyle(%q).Render lost the label: %q", severity, out)
		}
	}
}

func TestSeverityStyle_CriticalIsBold(t *testing.T) {
	if !SeverityStyle("critical").GetBold() {
		t.Error("critical severity should render bold")
	}
	if SeverityStyle("low").GetBold() {
		t.Error("low severity should not render bold")
	}
}
