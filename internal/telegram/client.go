// Package telegram is a thin HTTP client for the two Bot API methods the
// relay needs: sendMessage and sendDocument.
//
// No external Telegram library is used — the package talks to the Bot API
// via raw net/http. Responses are passed through as opaque JSON: the relay
// never interprets the Telegram schema beyond the HTTP status.
package telegram

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	neturl "net/url"
	"time"
)

const (
	// DefaultBaseURL is the production Bot API endpoint.
	DefaultBaseURL = "https://api.telegram.org"

	maxResponseBytes = 10 << 20 // prevent unbounded reads from API responses
)

// Client issues Bot API calls. The bot token is a per-call argument because
// credentials are resolved per request, not per process.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient creates a client against the given API base URL. An empty
// baseURL selects the production endpoint.
func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL: baseURL,
		http: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
}

// sendMessageRequest is the request body for the sendMessage method.
type sendMessageRequest struct {
	ChatID    string `json:"chat_id"`
	Text      string `json:"text"`
	ParseMode string `json:"parse_mode,omitempty"`
}

// SendMessage sends an HTML-formatted text message to the given chat and
// returns the raw Bot API response body.
func (c *Client) SendMessage(ctx context.Context, token, chatID, text string) (json.RawMessage, error) {
	payload, err := json.Marshal(sendMessageRequest{
		ChatID:    chatID,
		Text:      text,
		ParseMode: "HTML",
	})
	if err != nil {
		return nil, fmt.Errorf("telegram: marshal sendMessage request: %w", err)
	}

	return c.post(ctx, token, "sendMessage", "application/json", bytes.NewReader(payload))
}

// SendDocument uploads raw bytes as a document with the given filename,
// attaching a caption only when one is non-empty. It returns the raw Bot
// API response body. No size or MIME checks are performed locally; any
// limits are enforced upstream.
func (c *Client) SendDocument(ctx context.Context, token, chatID, filename string, content []byte, caption string) (json.RawMessage, error) {
	var buf bytes.Buffer
	form := multipart.NewWriter(&buf)

	if err := form.WriteField("chat_id", chatID); err != nil {
		return nil, fmt.Errorf("telegram: write sendDocument form: %w", err)
	}
	if caption != "" {
		if err := form.WriteField("caption", caption); err != nil {
			return nil, fmt.Errorf("telegram: write sendDocument form: %w", err)
		}
	}

	part, err := form.CreateFormFile("document", filename)
	if err != nil {
		return nil, fmt.Errorf("telegram: create sendDocument file part: %w", err)
	}
	if _, err := part.Write(content); err != nil {
		return nil, fmt.Errorf("telegram: write sendDocument file part: %w", err)
	}
	if err := form.Close(); err != nil {
		return nil, fmt.Errorf("telegram: finalize sendDocument form: %w", err)
	}

	return c.post(ctx, token, "sendDocument", form.FormDataContentType(), &buf)
}

// post sends one Bot API request and returns the raw response body. A
// non-2xx status yields an *APIError carrying the body text.
func (c *Client) post(ctx context.Context, token, method, contentType string, body io.Reader) (json.RawMessage, error) {
	url := fmt.Sprintf("%s/bot%s/%s", c.baseURL, token, method)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, body)
	if err != nil {
		return nil, fmt.Errorf("telegram: create %s request: %w", method, err)
	}
	req.Header.Set("Content-Type", contentType)

	resp, err := c.http.Do(req)
	if err != nil {
		// Unwrap the url.Error before reporting: its message carries the
		// token-bearing URL.
		var ue *neturl.Error
		if errors.As(err, &ue) {
			err = ue.Err
		}
		return nil, fmt.Errorf("telegram: %s request failed: %w", method, err)
	}

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	_ = resp.Body.Close()
	if err != nil {
		return nil, fmt.Errorf("telegram: read %s response: %w", method, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &APIError{
			Method: method,
			Status: resp.StatusCode,
			Body:   string(respBody),
		}
	}

	return json.RawMessage(respBody), nil
}
