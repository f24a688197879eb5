// Copyright (C) 2025 SolSentry Labs
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package main

import (
	"log/slog"
	"os"
	"strconv"
	"time"
)

// Config holds the service settings read from the environment.
type Config struct {
	Port           string
	RequestTimeout time.Duration
	APIKey         string
	RateRPS        float64
	RateBurst      int
	BackendType    string
}

// LoadConfig reads the environment once at startup. Malformed values log
// a warning and fall back to the default rather than aborting.
func LoadConfig() Config {
	cfg := Config{
		Port:           envOr("AUDITOR_PORT", "8080"),
		RequestTimeout: 10 * time.Second,
		APIKey:         os.Getenv("SOLSENTRY_API_KEY"),
		RateRPS:        2,
		RateBurst:      5,
		BackendType:    os.Getenv("LLM_BACKEND_TYPE"),
	}

	if raw := os.Getenv("AUDITOR_REQUEST_TIMEOUT"); raw != "" {
		d, err := time.ParseDuration(raw)
		if err != nil {
			slog.Warn("Invalid AUDITOR_REQUEST_TIMEOUT, using default", "value", raw, "error", err)
		} else {
			cfg.RequestTimeout = d
		}
	}
	if raw := os.Getenv("AUDITOR_RATE_RPS"); raw != "" {
		f, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			slog.Warn("Invalid AUDITOR_RATE_RPS, using default", "value", raw, "error", err)
		} else {
			cfg.RateRPS = f
		}
	}
	if raw := os.Getenv("AUDITOR_RATE_BURST"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			slog.Warn("Invalid AUDITOR_RATE_BURST, using default", "value", raw, "error", err)
		} else {
			cfg.RateBurst = n
		}
	}
	return cfg
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
