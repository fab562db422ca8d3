// Package relay implements the send endpoint: it validates an inbound
// request, resolves project credentials, forwards the message and each
// file to Telegram in order, and aggregates per-item outcomes.
package relay

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/remotenode/telegram-relay/internal/config"
	"github.com/remotenode/telegram-relay/internal/telegram"
)

// Handler serves the send endpoint. It is stateless across requests: the
// project credential list is re-read from the environment on every call.
type Handler struct {
	client      *telegram.Client
	projectsVar string
	logger      *slog.Logger
}

// NewHandler creates the send handler. projectsVar names the environment
// variable holding the project credential list; empty selects the default.
func NewHandler(client *telegram.Client, projectsVar string, logger *slog.Logger) *Handler {
	return &Handler{
		client:      client,
		projectsVar: projectsVar,
		logger:      logger,
	}
}

// ServeHTTP implements http.Handler. The handler owns method dispatch so
// the endpoint behaves like a single serverless function: OPTIONS is the
// CORS preflight, POST is the send operation, everything else is 405.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	setCORSHeaders(w)

	if r.Method == http.MethodOptions {
		w.WriteHeader(http.StatusOK)
		requestsTotal.WithLabelValues("200").Inc()
		return
	}

	if r.Method != http.MethodPost {
		h.writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	ctx, span := otel.Tracer("relay").Start(r.Context(), "relay.send")
	defer span.End()

	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.ProjectID == "" {
		h.writeError(w, http.StatusBadRequest, "projectId is required")
		return
	}
	if req.Message == "" && len(req.Files) == 0 {
		h.writeError(w, http.StatusBadRequest, "Either message or files must be provided")
		return
	}

	span.SetAttributes(
		attribute.String("relay.project_id", req.ProjectID),
		attribute.Int("relay.files", len(req.Files)),
	)

	projects, err := config.LoadProjects(h.projectsVar)
	if err != nil {
		h.internalError(w, span, req.ProjectID, err)
		return
	}

	project, ok := config.FindProject(projects, req.ProjectID)
	if !ok {
		h.writeError(w, http.StatusNotFound, "Project configuration not found for ID: "+req.ProjectID)
		return
	}

	results := make([]OutcomeItem, 0, len(req.Files)+1)

	if req.Message != "" {
		raw, err := h.client.SendMessage(ctx, project.BotToken, project.ChannelID, req.Message)
		if err != nil {
			// A message failure aborts the whole request; no files are sent.
			sendsTotal.WithLabelValues("message", "error").Inc()
			h.internalError(w, span, req.ProjectID, err)
			return
		}
		sendsTotal.WithLabelValues("message", "ok").Inc()
		results = append(results, OutcomeItem{Type: "message", Result: raw})
	}

	// A caption is only forwarded when no standalone message was sent. In
	// that branch the message is empty, so no real caption ever reaches
	// Telegram — this mirrors the endpoint this service replaces.
	var caption string
	if req.Message == "" {
		caption = req.Message
	}

	for _, f := range req.Files {
		item := OutcomeItem{Type: "file", Filename: f.Filename}

		raw, err := h.sendFile(ctx, project, f, caption)
		if err != nil {
			// Per-file failures are non-fatal: record and keep going.
			sendsTotal.WithLabelValues("document", "error").Inc()
			h.logger.Warn("file send failed",
				"project_id", req.ProjectID,
				"filename", f.Filename,
				"error", err)
			item.Error = err.Error()
		} else {
			sendsTotal.WithLabelValues("document", "ok").Inc()
			item.Result = raw
		}

		results = append(results, item)
	}

	h.logger.Info("relay complete", "project_id", req.ProjectID, "results", len(results))
	h.writeJSON(w, http.StatusOK, Response{
		Success:   true,
		ProjectID: req.ProjectID,
		Results:   results,
	})
}

// sendFile decodes one attachment and forwards it as a document. Decode
// and upstream failures share the per-file error path.
func (h *Handler) sendFile(ctx context.Context, project config.ProjectConfig, f FileAttachment, caption string) (json.RawMessage, error) {
	content, err := base64.StdEncoding.DecodeString(f.Content)
	if err != nil {
		return nil, fmt.Errorf("invalid base64 content: %w", err)
	}
	return h.client.SendDocument(ctx, project.BotToken, project.ChannelID, f.Filename, content, caption)
}

// internalError is the top-level catch: classification is reduced to a
// generic 500 and only the failure's message text survives.
func (h *Handler) internalError(w http.ResponseWriter, span trace.Span, projectID string, err error) {
	span.RecordError(err)
	span.SetStatus(codes.Error, "relay failed")
	h.logger.Error("relay failed", "project_id", projectID, "error", err)
	h.writeJSON(w, http.StatusInternalServerError, ErrorResponse{
		Error:   "Internal server error",
		Message: err.Error(),
	})
}

func (h *Handler) writeError(w http.ResponseWriter, status int, msg string) {
	h.writeJSON(w, status, ErrorResponse{Error: msg})
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Error("encode response", "error", err)
	}
	requestsTotal.WithLabelValues(strconv.Itoa(status)).Inc()
}

// setCORSHeaders is applied to every response so browser callers can use
// the endpoint directly.
func setCORSHeaders(w http.ResponseWriter) {
	h := w.Header()
	h.Set("Access-Control-Allow-Origin", "*")
	h.Set("Access-Control-Allow-Methods", "POST, OPTIONS")
	h.Set("Access-Control-Allow-Headers", "Content-Type")
}
