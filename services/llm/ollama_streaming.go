// Copyright (C) 2025 SolSentry Labs
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package llm

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/solsentry/solsentry/services/auditor/datatypes"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

// maxStreamLineBytes bounds a single NDJSON line from the server.
const maxStreamLineBytes = 1024 * 1024

// ollamaStreamChunk is one NDJSON line of a streaming chat response.
type ollamaStreamChunk struct {
	Message    datatypes.Message `json:"message"`
	Thinking   string            `json:"thinking,omitempty"`
	Done       bool              `json:"done"`
	DoneReason string            `json:"done_reason,omitempty"`
	Error      string            `json:"error,omitempty"`
}

// =============================================================================
// Stream Processor
// =============================================================================

// DefaultStreamProcessor applies StreamConfig limits to a chunk sequence and
// forwards the surviving content to a StreamCallback. One processor serves
// one stream; it is not safe for concurrent use.
type DefaultStreamProcessor struct {
	cfg    StreamConfig
	logger *slog.Logger

	tokenCount     int
	responseLength int
	thinkingLength int
}

// NewDefaultStreamProcessor creates a processor for a single stream.
// A nil logger falls back to slog.Default().
func NewDefaultStreamProcessor(cfg StreamConfig, logger *slog.Logger) *DefaultStreamProcessor {
	if logger == nil {
		logger = slog.Default()
	}
	return &DefaultStreamProcessor{cfg: cfg, logger: logger}
}

// GetTokenCount returns the number of content fragments emitted so far.
func (p *DefaultStreamProcessor) GetTokenCount() int { return p.tokenCount }

// GetResponseLength returns the accumulated visible response length in bytes.
func (p *DefaultStreamProcessor) GetResponseLength() int { return p.responseLength }

// GetThinkingLength returns the accumulated thinking length in bytes.
func (p *DefaultStreamProcessor) GetThinkingLength() int { return p.thinkingLength }

// ProcessChunk handles one stream chunk. It returns done=true when the
// stream should stop, either because the server marked the chunk final or
// because the chunk carried an error.
func (p *DefaultStreamProcessor) ProcessChunk(ctx context.Context, chunk *ollamaStreamChunk,
	callback StreamCallback) (bool, error) {

	if chunk.Error != "" {
		if cbErr := callback(StreamEvent{Type: StreamEventError, Error: chunk.Error}); cbErr != nil {
			return true, cbErr
		}
		return true, fmt.Errorf("ollama stream error: %s", chunk.Error)
	}

	if chunk.Thinking != "" && !p.cfg.RedactThinking {
		fragment := truncateToBudget(chunk.Thinking, p.cfg.MaxThinkingLength, p.thinkingLength)
		if fragment != "" {
			p.thinkingLength += len(fragment)
			if err := callback(StreamEvent{Type: StreamEventThinking, Content: fragment}); err != nil {
				return true, err
			}
		}
	}

	if chunk.Message.Content != "" {
		fragment := truncateToBudget(chunk.Message.Content, p.cfg.MaxResponseLength, p.responseLength)
		if fragment != "" {
			p.tokenCount++
			p.responseLength += len(fragment)
			if err := callback(StreamEvent{Type: StreamEventToken, Content: fragment}); err != nil {
				return true, err
			}
		} else {
			p.logger.Warn("stream response length limit reached, dropping content",
				"limit", p.cfg.MaxResponseLength)
		}
	}

	if chunk.Done {
		if err := callback(StreamEvent{Type: StreamEventDone}); err != nil {
			return true, err
		}
		return true, nil
	}
	return false, nil
}

// truncateToBudget trims fragment so that used+len(fragment) stays within
// limit. A zero limit means unlimited. Cuts land on a rune boundary so the
// accumulated response never ends in a split UTF-8 sequence.
func truncateToBudget(fragment string, limit, used int) string {
	if limit <= 0 {
		return fragment
	}
	remaining := limit - used
	if remaining <= 0 {
		return ""
	}
	if len(fragment) > remaining {
		cut := remaining
		for cut > 0 && !utf8.RuneStart(fragment[cut]) {
			cut--
		}
		return fragment[:cut]
	}
	return fragment
}

// =============================================================================
// ChatStream
// =============================================================================

// ChatStream implements the LLMClient interface. Chunks arrive as NDJSON
// lines; the stream ends on the server's done flag or a chunk error.
func (o *OllamaClient) ChatStream(ctx context.Context, messages []datatypes.Message,
	params GenerationParams, callback StreamCallback) error {
	return o.ChatStreamWithConfig(ctx, messages, params, callback, o.streamConfig)
}

// ChatStreamWithConfig is ChatStream with per-call stream limits.
func (o *OllamaClient) ChatStreamWithConfig(ctx context.Context, messages []datatypes.Message,
	params GenerationParams, callback StreamCallback, cfg StreamConfig) error {

	ctx, span := tracer.Start(ctx, "OllamaClient.ChatStream")
	defer span.End()
	span.SetAttributes(
		attribute.String("llm.model", o.model),
		attribute.Int("llm.num_messages", len(messages)),
	)

	payload := ollamaChatRequest{
		Model:    o.model,
		Messages: messages,
		Stream:   true,
		Options:  samplingOptions(params),
	}
	reqBody, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal stream request to Ollama: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, o.baseURL+"/api/chat",
		strings.NewReader(string(reqBody)))
	if err != nil {
		return fmt.Errorf("failed to create stream request to Ollama: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/x-ndjson")

	resp, err := o.httpClient.Do(req)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		slog.Error("Ollama stream request failed", "error", err)
		return fmt.Errorf("Ollama API call failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxStreamLineBytes))
		err := fmt.Errorf("ollama stream failed with status %d: %s", resp.StatusCode,
			strings.TrimSpace(string(body)))
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	processor := NewDefaultStreamProcessor(cfg, slog.Default())
	scanner := bufio.NewScanner(resp.Body)
	scanner.Buffer(make([]byte, 64*1024), maxStreamLineBytes)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		var chunk ollamaStreamChunk
		if err := json.Unmarshal([]byte(line), &chunk); err != nil {
			span.RecordError(err)
			return fmt.Errorf("failed to parse stream chunk from Ollama: %w", err)
		}
		done, err := processor.ProcessChunk(ctx, &chunk, callback)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			return err
		}
		if done {
			span.SetAttributes(attribute.Int("llm.response_bytes", processor.GetResponseLength()))
			return nil
		}
	}
	if err := scanner.Err(); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return fmt.Errorf("ollama stream read failed: %w", err)
	}
	// Server closed the connection without a done chunk. Treat the drained
	// stream as complete; the accumulated content is all there is.
	slog.Warn("Ollama stream ended without done flag")
	return nil
}
