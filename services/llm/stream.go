// Copyright (C) 2025 SolSentry Labs
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package llm

// =============================================================================
// Stream Event Types
// =============================================================================

// StreamEventType discriminates events emitted during a streaming response.
type StreamEventType int

const (
	// StreamEventToken is a fragment of visible response content.
	StreamEventToken StreamEventType = iota

	// StreamEventThinking is a fragment of model reasoning, emitted only
	// when the backend surfaces it and redaction is off.
	StreamEventThinking

	// StreamEventDone marks normal end of stream.
	StreamEventDone

	// StreamEventError carries a backend-reported error. The stream ends
	// after this event.
	StreamEventError
)

// StreamEvent is one incremental unit of a streamed model response.
type StreamEvent struct {
	Type    StreamEventType
	Content string
	Error   string
}

// StreamCallback receives stream events in arrival order. Returning a
// non-nil error stops the stream; the error is propagated to the caller
// of ChatStream.
type StreamCallback func(event StreamEvent) error

// =============================================================================
// Stream Configuration
// =============================================================================

// StreamConfig bounds a streaming response. Zero limits mean unlimited.
type StreamConfig struct {
	// RedactThinking suppresses StreamEventThinking events entirely.
	RedactThinking bool

	// MaxThinkingLength caps accumulated thinking bytes. Excess fragments
	// are truncated to fit, then dropped.
	MaxThinkingLength int

	// MaxResponseLength caps accumulated visible response bytes. Excess
	// fragments are truncated to fit, then dropped.
	MaxResponseLength int
}

// DefaultStreamConfig returns the limits used when callers do not supply
// their own. The response cap matches MaxCodeBytes-scale audit responses
// with generous headroom.
func DefaultStreamConfig() StreamConfig {
	return StreamConfig{
		RedactThinking:    false,
		MaxThinkingLength: 256 * 1024,
		MaxResponseLength: 1024 * 1024,
	}
}

// CollectTokens returns a StreamCallback that appends visible content to
// dst, ignoring thinking and done events. Error events are left to the
// transport, which reports them through ChatStream's return value.
func CollectTokens(dst *[]byte) StreamCallback {
	return func(event StreamEvent) error {
		if event.Type == StreamEventToken {
			*dst = append(*dst, event.Content...)
		}
		return nil
	}
}
