// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"log/slog"
	"net/http"

	"github.com/danielhkuo/ballotbox/assist"
	"github.com/danielhkuo/ballotbox/middleware"
	"github.com/danielhkuo/ballotbox/models"
)

// AssistHandler proxies the generative-text boundary. Neither operation
// touches election data.
type AssistHandler struct {
	client assist.Client
}

func NewAssistHandler(client assist.Client) *AssistHandler {
	return &AssistHandler{client: client}
}

// Summarize handles POST /assist/summarize
func (h *AssistHandler) Summarize(w http.ResponseWriter, r *http.Request) {
	if h.client == nil {
		middleware.ErrorResponse(w, http.StatusServiceUnavailable, "Assistant is not configured.")
		return
	}

	var req models.SummarizePlatformRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if req.PlatformText == "" {
		middleware.ValidationErrorResponse(w, "Invalid data provided.", map[string][]string{
			"platformText": {"platformText is required."},
		})
		return
	}

	summary, err := h.client.SummarizePlatform(r.Context(), req.PlatformText)
	if err != nil {
		slog.Error("failed to summarize platform", "error", err)
		middleware.ErrorResponse(w, http.StatusBadGateway, "Failed to generate summary.")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.SummarizePlatformResponse{Summary: summary})
}

// Chat handles POST /assist/chat
func (h *AssistHandler) Chat(w http.ResponseWriter, r *http.Request) {
	if h.client == nil {
		middleware.ErrorResponse(w, http.StatusServiceUnavailable, "Assistant is not configured.")
		return
	}

	var req models.ChatRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if req.Query == "" {
		middleware.ValidationErrorResponse(w, "Invalid data provided.", map[string][]string{
			"query": {"query is required."},
		})
		return
	}

	response, err := h.client.Chat(r.Context(), req.Query, req.History)
	if err != nil {
		slog.Error("failed to answer chat query", "error", err)
		middleware.ErrorResponse(w, http.StatusBadGateway, "Failed to answer question.")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.ChatResponse{Response: response})
}
