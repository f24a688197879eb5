// Copyright (C) 2025 SolSentry Labs
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package llm provides pluggable LLM backends behind a single client
// interface. The audit pipeline depends only on LLMClient, which lets tests
// substitute a deterministic stub for the live model.
package llm

import (
	"context"

	"github.com/solsentry/solsentry/services/auditor/datatypes"
)

// GenerationParams are optional sampling controls forwarded to a backend.
// Nil pointer fields mean "use the backend default".
type GenerationParams struct {
	Temperature *float32 `json:"temperature"`
	TopK        *int     `json:"top_k"`
	TopP        *float32 `json:"top_p"`
	MaxTokens   *int     `json:"max_tokens"`
	Stop        []string `json:"stop"`
}

// LLMClient defines the standard interface for any LLM backend.
//
// Generate performs a single-prompt completion. Chat performs a full
// conversation completion. ChatStream streams the response incrementally
// through the callback; the call blocks until the stream is drained or the
// callback returns an error.
type LLMClient interface {
	Generate(ctx context.Context, prompt string, params GenerationParams) (string, error)
	Chat(ctx context.Context, messages []datatypes.Message, params GenerationParams) (string, error)
	ChatStream(ctx context.Context, messages []datatypes.Message, params GenerationParams,
		callback StreamCallback) error
}
