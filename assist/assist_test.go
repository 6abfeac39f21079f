// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package assist

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/danielhkuo/ballotbox/models"
)

func TestSummarizePlatform(t *testing.T) {
	var gotPath, gotAuth string
	var gotBody summarizeCall

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("Failed to decode request: %v", err)
		}
		json.NewEncoder(w).Encode(summarizeResult{Summary: "A summary."})
	}))
	defer srv.Close()

	client := NewHTTPClient(srv.URL, "secret-key")
	summary, err := client.SummarizePlatform(context.Background(), "A long platform text.")
	if err != nil {
		t.Fatalf("SummarizePlatform failed: %v", err)
	}

	if summary != "A summary." {
		t.Errorf("Unexpected summary: %q", summary)
	}
	if gotPath != "/v1/summarize" {
		t.Errorf("Unexpected path: %q", gotPath)
	}
	if gotAuth != "Bearer secret-key" {
		t.Errorf("Unexpected auth header: %q", gotAuth)
	}
	if gotBody.PlatformText != "A long platform text." {
		t.Errorf("Platform text not forwarded: %q", gotBody.PlatformText)
	}
}

func TestChat(t *testing.T) {
	var gotBody chatCall

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/chat" {
			t.Errorf("Unexpected path: %q", r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("Failed to decode request: %v", err)
		}
		json.NewEncoder(w).Encode(chatResult{Response: "An answer."})
	}))
	defer srv.Close()

	client := NewHTTPClient(srv.URL, "")
	history := []models.ChatTurn{{User: "Earlier question"}}
	response, err := client.Chat(context.Background(), "A question?", history)
	if err != nil {
		t.Fatalf("Chat failed: %v", err)
	}

	if response != "An answer." {
		t.Errorf("Unexpected response: %q", response)
	}
	if gotBody.Query != "A question?" {
		t.Errorf("Query not forwarded: %q", gotBody.Query)
	}
	if len(gotBody.History) != 1 || gotBody.History[0].User != "Earlier question" {
		t.Errorf("History not forwarded: %v", gotBody.History)
	}
	// the scope-limiting system prompt always rides along
	if !strings.Contains(gotBody.System, "election") {
		t.Errorf("System prompt missing: %q", gotBody.System)
	}
}

func TestChatNoAuthHeaderWithoutKey(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "" {
			t.Errorf("Expected no auth header, got %q", got)
		}
		json.NewEncoder(w).Encode(chatResult{Response: "ok"})
	}))
	defer srv.Close()

	client := NewHTTPClient(srv.URL, "")
	if _, err := client.Chat(context.Background(), "A question?", nil); err != nil {
		t.Fatalf("Chat failed: %v", err)
	}
}

func TestUpstreamErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "overloaded", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	client := NewHTTPClient(srv.URL, "")
	if _, err := client.SummarizePlatform(context.Background(), "text"); err == nil {
		t.Error("Expected an error on non-200 status")
	}
	if _, err := client.Chat(context.Background(), "query", nil); err == nil {
		t.Error("Expected an error on non-200 status")
	}
}

func TestContextCancellation(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	client := NewHTTPClient(srv.URL, "")
	if _, err := client.SummarizePlatform(ctx, "text"); err == nil {
		t.Error("Expected an error from a cancelled context")
	}
}
