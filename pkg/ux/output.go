// Copyright (C) 2025 SolSentry Labs
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package ux provides rich terminal output styling for the SolSentry CLI.
package ux

import (
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
)

// SolSentry color palette - Solana purples and signal colors
var (
	// Primary palette (brightest to darkest)
	ColorVioletBright  = lipgloss.Color("#B26EF7") // Bright violet - highlights
	ColorVioletPrimary = lipgloss.Color("#9945FF") // Primary violet - main brand color
	ColorVioletDeep    = lipgloss.Color("#7A2FE0") // Deep violet - borders, accents
	ColorTealAccent    = lipgloss.Color("#14F195") // Teal accent - success states
	ColorSlate         = lipgloss.Color("#4A4A5C") // Slate - muted text, borders

	// Semantic colors (keeping standard conventions for clarity)
	ColorSuccess = lipgloss.Color("#14F195") // Solana green for success
	ColorWarning = lipgloss.Color("#F4D03F") // Gold/amber for warnings
	ColorError   = lipgloss.Color("#E74C3C") // Red for errors
	ColorMuted   = lipgloss.Color("#4A4A5C") // Slate for muted text
)

// Styles provides pre-configured lipgloss styles
var Styles = struct {
	// Text styles
	Title     lipgloss.Style
	Subtitle  lipgloss.Style
	Bold      lipgloss.Style
	Muted     lipgloss.Style
	Success   lipgloss.Style
	Warning   lipgloss.Style
	Error     lipgloss.Style
	Highlight lipgloss.Style

	// Box styles
	Box        lipgloss.Style
	WarningBox lipgloss.Style
	ErrorBox   lipgloss.Style

	// Status indicators
	StatusOK    lipgloss.Style
	StatusFail  lipgloss.Style
	StatusEmpty lipgloss.Style
}{
	// Text styles
	Title:     lipgloss.NewStyle().Bold(true).Foreground(ColorVioletBright),
	Subtitle:  lipgloss.NewStyle().Foreground(ColorVioletPrimary),
	Bold:      lipgloss.NewStyle().Bold(true),
	Muted:     lipgloss.NewStyle().Foreground(ColorSlate),
	Success:   lipgloss.NewStyle().Foreground(ColorSuccess),
	Warning:   lipgloss.NewStyle().Foreground(ColorWarning),
	Error:     lipgloss.NewStyle().Foreground(ColorError),
	Highlight: lipgloss.NewStyle().Foreground(ColorVioletBright).Bold(true),

	// Box styles
	Box: lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorVioletDeep).
		Padding(0, 1),
	WarningBox: lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorWarning).
		Padding(0, 1),
	ErrorBox: lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorError).
		Padding(0, 1),

	// Status indicators
	StatusOK:    lipgloss.NewStyle().SetString("✓").Foreground(ColorSuccess),
	StatusFail:  lipgloss.NewStyle().SetString("✗").Foreground(ColorError),
	StatusEmpty: lipgloss.NewStyle().SetString("○").Foreground(ColorSlate),
}

// SeverityStyle returns the style for a severity label. Unknown labels
// render muted rather than alarming.
func SeverityStyle(severity string) lipgloss.Style {
	switch severity {
	case "critical":
		return lipgloss.NewStyle().Bold(true).Foreground(ColorError)
	case "high":
		return Styles.Error
	case "medium":
		return Styles.Warning
	case "low":
		return Styles.Success
	default:
		return Styles.Muted
	}
}

// Successf prints a green check line to stderr.
func Successf(format string, args ...any) {
	fmt.Fprintln(os.Stderr, Styles.StatusOK.String()+" "+Styles.Success.Render(fmt.Sprintf(format, args...)))
}

// Errorf prints a red cross line to stderr.
func Errorf(format string, args ...any) {
	fmt.Fprintln(os.Stderr, Styles.StatusFail.String()+" "+Styles.Error.Render(fmt.Sprintf(format, args...)))
}

// Infof prints a muted status line to stderr.
func Infof(format string, args ...any) {
	fmt.Fprintln(os.Stderr, Styles.Muted.Render(fmt.Sprintf(format, args...)))
}
