// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package assist

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/danielhkuo/ballotbox/models"
)

// chatSystemPrompt scopes the assistant to election processes and history.
const chatSystemPrompt = `You are a helpful and informative AI assistant specializing in election processes and the history of elections around the world.
Provide clear, concise, and accurate answers. Avoid expressing personal opinions or speculating.
If a question is outside the scope of election processes or history, politely state that you can only answer questions related to election systems, procedures, and historical facts about elections.`

// Client is the generative-text boundary: both operations are pure
// request/response calls with no effect on election data.
type Client interface {
	SummarizePlatform(ctx context.Context, platformText string) (string, error)
	Chat(ctx context.Context, query string, history []models.ChatTurn) (string, error)
}

// HTTPClient talks to the assistant service over JSON/HTTP.
type HTTPClient struct {
	baseURL string
	apiKey  string
	hc      *http.Client
}

func NewHTTPClient(baseURL, apiKey string) *HTTPClient {
	return &HTTPClient{
		baseURL: baseURL,
		apiKey:  apiKey,
		hc:      &http.Client{Timeout: 30 * time.Second},
	}
}

type summarizeCall struct {
	PlatformText string `json:"platform_text"`
}

type summarizeResult struct {
	Summary string `json:"summary"`
}

func (c *HTTPClient) SummarizePlatform(ctx context.Context, platformText string) (string, error) {
	var out summarizeResult
	if err := c.post(ctx, "/v1/summarize", summarizeCall{PlatformText: platformText}, &out); err != nil {
		return "", err
	}
	return out.Summary, nil
}

type chatCall struct {
	System  string            `json:"system"`
	Query   string            `json:"query"`
	History []models.ChatTurn `json:"history,omitempty"`
}

type chatResult struct {
	Response string `json:"response"`
}

func (c *HTTPClient) Chat(ctx context.Context, query string, history []models.ChatTurn) (string, error) {
	var out chatResult
	call := chatCall{System: chatSystemPrompt, Query: query, History: history}
	if err := c.post(ctx, "/v1/chat", call, &out); err != nil {
		return "", err
	}
	return out.Response, nil
}

func (c *HTTPClient) post(ctx context.Context, path string, in, out interface{}) error {
	body, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("failed to encode assistant request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build assistant request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.hc.Do(req)
	if err != nil {
		return fmt.Errorf("assistant request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("assistant returned status %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode assistant response: %w", err)
	}
	return nil
}
