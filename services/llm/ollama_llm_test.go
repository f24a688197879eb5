// Copyright (C) 2025 SolSentry Labs
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"testing"

	"github.com/solsentry/solsentry/services/auditor/datatypes"
)

// =============================================================================
// Non-Streaming Chat Tests (with Mock Server)
// =============================================================================

func TestOllamaChat_Success(t *testing.T) {
	t.Parallel()

	server := newMockOllamaServer(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/chat" {
			t.Errorf("Expected path /api/chat, got %s", r.URL.Path)
		}
		if r.Header.Get("Content-Type") != "application/json" {
			t.Errorf("Expected Content-Type: application/json, got %s", r.Header.Get("Content-Type"))
		}

		var req ollamaChatRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("Failed to decode request body: %v", err)
		}
		if req.Stream {
			t.Error("Non-streaming chat should send stream=false")
		}
		if req.Model != "test-model" {
			t.Errorf("Expected model 'test-model', got %s", req.Model)
		}
		if len(req.Messages) != 2 {
			t.Errorf("Expected 2 messages, got %d", len(req.Messages))
		}

		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintln(w, `{"message":{"role":"assistant","content":"No issues found"},"done":true}`)
	})
	defer server.Close()

	client := newTestOllamaClient(server.URL, "test-model")

	got, err := client.Chat(context.Background(), []datatypes.Message{
		{Role: "system", Content: "You audit Solana programs"},
		{Role: "user", Content: "Audit this program"},
	}, GenerationParams{})

	if err != nil {
		t.Fatalf("Chat returned error: %v", err)
	}
	if got != "No issues found" {
		t.Errorf("Expected 'No issues found', got %q", got)
	}
}

func TestOllamaGenerate_WrapsPromptAsUserMessage(t *testing.T) {
	t.Parallel()

	server := newMockOllamaServer(func(w http.ResponseWriter, r *http.Request) {
		var req ollamaChatRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("Failed to decode request body: %v", err)
		}
		if len(req.Messages) != 1 {
			t.Fatalf("Expected 1 message, got %d", len(req.Messages))
		}
		if req.Messages[0].Role != "user" {
			t.Errorf("Expected role 'user', got %s", req.Messages[0].Role)
		}
		if req.Messages[0].Content != "Summarize the findings" {
			t.Errorf("Prompt was not forwarded, got %q", req.Messages[0].Content)
		}

		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintln(w, `{"message":{"role":"assistant","content":"Two findings"},"done":true}`)
	})
	defer server.Close()

	client := newTestOllamaClient(server.URL, "test-model")

	got, err := client.Generate(context.Background(), "Summarize the findings", GenerationParams{})

	if err != nil {
		t.Fatalf("Generate returned error: %v", err)
	}
	if got != "Two findings" {
		t.Errorf("Expected 'Two findings', got %q", got)
	}
}

func TestOllamaChat_ModelNotFound(t *testing.T) {
	t.Parallel()

	server := newMockOllamaServer(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		fmt.Fprintln(w, `{"error":"model 'test-model' not found"}`)
	})
	defer server.Close()

	client := newTestOllamaClient(server.URL, "test-model")

	_, err := client.Chat(context.Background(), []datatypes.Message{
		{Role: "user", Content: "Hi"},
	}, GenerationParams{})

	if err == nil {
		t.Fatal("Chat should return error for a missing model")
	}
	if !strings.Contains(err.Error(), "ollama pull") {
		t.Errorf("Error should tell the operator to pull the model, got: %v", err)
	}
}

func TestOllamaChat_ServerError(t *testing.T) {
	t.Parallel()

	server := newMockOllamaServer(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		fmt.Fprintln(w, `{"error":"internal server error"}`)
	})
	defer server.Close()

	client := newTestOllamaClient(server.URL, "test-model")

	_, err := client.Chat(context.Background(), []datatypes.Message{
		{Role: "user", Content: "Hi"},
	}, GenerationParams{})

	if err == nil {
		t.Fatal("Chat should return error for HTTP 500")
	}
	if !strings.Contains(err.Error(), "status 500") {
		t.Errorf("Error should mention status 500, got: %v", err)
	}
}

func TestOllamaChat_MalformedResponse(t *testing.T) {
	t.Parallel()

	server := newMockOllamaServer(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintln(w, `{not json`)
	})
	defer server.Close()

	client := newTestOllamaClient(server.URL, "test-model")

	_, err := client.Chat(context.Background(), []datatypes.Message{
		{Role: "user", Content: "Hi"},
	}, GenerationParams{})

	if err == nil {
		t.Fatal("Chat should return error for an unparseable response body")
	}
	if !strings.Contains(err.Error(), "parse") {
		t.Errorf("Error should mention the parse failure, got: %v", err)
	}
}
