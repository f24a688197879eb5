// Copyright (C) 2025 SolSentry Labs
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/solsentry/solsentry/pkg/logging"
	"github.com/solsentry/solsentry/pkg/ux"
	"github.com/solsentry/solsentry/pkg/validation"
	"github.com/solsentry/solsentry/services/auditor/datatypes"
)

// --- Global Command Variables ---
var (
	serverURL  string
	apiKey     string
	programID  string
	rawJSON    bool
	reqTimeout time.Duration

	logger = logging.Default()

	rootCmd = &cobra.Command{
		Use:   "sentryctl",
		Short: "A cli for the SolSentry smart contract auditing service",
		Long: `Sentryctl submits Solana program source to a SolSentry auditor
service and renders the three-stage audit report in the terminal.`,
	}

	auditCmd = &cobra.Command{
		Use:   "audit [file]",
		Short: "Run a full audit of a program source file",
		Args:  cobra.ExactArgs(1),
		RunE:  runAudit,
	}

	validateCmd = &cobra.Command{
		Use:   "validate [file]",
		Short: "Check whether a file lexically resembles a Solana program",
		Args:  cobra.ExactArgs(1),
		RunE:  runValidate,
	}

	healthCmd = &cobra.Command{
		Use:   "health",
		Short: "Check the auditor service liveness",
		RunE:  runHealth,
	}
)

func init() {
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", envOr("SOLSENTRY_SERVER_URL", "http://localhost:8080"), "Auditor service base URL")
	rootCmd.PersistentFlags().StringVar(&apiKey, "api-key", os.Getenv("SOLSENTRY_API_KEY"), "API key for the auditor service")
	rootCmd.PersistentFlags().BoolVar(&rawJSON, "json", false, "Print the raw JSON response instead of the rendered report")
	rootCmd.PersistentFlags().DurationVar(&reqTimeout, "timeout", 120*time.Second, "Client-side request timeout")

	auditCmd.Flags().StringVar(&programID, "program-id", "", "On-chain address of the deployed program")

	rootCmd.AddCommand(auditCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(healthCmd)
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// readSource loads and sanity-checks the file named on the command line.
func readSource(path string) (code, fileName string, err error) {
	fileName = filepath.Base(path)
	if err := validation.ValidateFileName(fileName); err != nil {
		return "", "", err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", "", fmt.Errorf("cannot read %s: %w", path, err)
	}
	if len(data) == 0 {
		return "", "", fmt.Errorf("%s is empty", path)
	}
	if len(data) > datatypes.MaxCodeBytes {
		return "", "", fmt.Errorf("%s is %d bytes, above the %d byte limit", path, len(data), datatypes.MaxCodeBytes)
	}
	return string(data), fileName, nil
}

func runAudit(cmd *cobra.Command, args []string) error {
	code, fileName, err := readSource(args[0])
	if err != nil {
		ux.Errorf("%v", err)
		return err
	}

	req := datatypes.AuditRequest{Code: code, FileName: fileName}
	if programID != "" {
		sanitized, err := validation.SanitizeProgramID(programID)
		if err != nil {
			ux.Errorf("%v", err)
			return err
		}
		req.ProgramID = sanitized
	}

	client := newAPIClient(serverURL, apiKey, reqTimeout)
	ux.Infof("auditing %s via %s", fileName, serverURL)
	logger.Info("audit submitted", "file", fileName, "bytes", len(code))

	report, err := client.Audit(cmd.Context(), &req)
	if err != nil {
		ux.Errorf("audit failed: %v", err)
		return err
	}

	if rawJSON {
		return printJSON(report)
	}
	fmt.Println(renderReport(report))
	return nil
}

func runValidate(cmd *cobra.Command, args []string) error {
	code, fileName, err := readSource(args[0])
	if err != nil {
		ux.Errorf("%v", err)
		return err
	}

	client := newAPIClient(serverURL, apiKey, reqTimeout)
	result, err := client.Validate(cmd.Context(), code)
	if err != nil {
		ux.Errorf("validation failed: %v", err)
		return err
	}

	if rawJSON {
		return printJSON(result)
	}
	if result.LooksLikeProgram {
		ux.Successf("%s looks like a Solana program (%d rule hits)", fileName, len(result.Findings))
	} else {
		ux.Errorf("%s does not look like a Solana program", fileName)
	}
	for _, f := range result.Findings {
		fmt.Printf("  line %d: %s (%s)\n", f.LineNumber, f.Description, f.PatternID)
	}
	return nil
}

func runHealth(cmd *cobra.Command, args []string) error {
	client := newAPIClient(serverURL, apiKey, reqTimeout)
	if err := client.Health(cmd.Context()); err != nil {
		ux.Errorf("service unreachable: %v", err)
		return err
	}
	ux.Successf("auditor service at %s is healthy", serverURL)
	return nil
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
