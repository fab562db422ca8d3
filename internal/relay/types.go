package relay

import "encoding/json"

// Request is the inbound send request. At least one of Message or Files
// must be present; the handler enforces this before dispatching.
type Request struct {
	ProjectID string           `json:"projectId"`
	Message   string           `json:"message,omitempty"`
	Files     []FileAttachment `json:"files,omitempty"`
}

// FileAttachment is one file to forward. Content is base64-encoded.
// MimeType is accepted for forward compatibility but not used downstream —
// Telegram derives the type from the filename and bytes.
type FileAttachment struct {
	Filename string `json:"filename"`
	Content  string `json:"content"`
	MimeType string `json:"mimeType,omitempty"`
}

// OutcomeItem records one send attempt. Exactly one of Result or Error is
// set. Items are ordered message first (when sent), then files in request
// order.
type OutcomeItem struct {
	Type     string          `json:"type"`
	Filename string          `json:"filename,omitempty"`
	Result   json.RawMessage `json:"result,omitempty"`
	Error    string          `json:"error,omitempty"`
}

// Response is the success envelope. Success is true even when individual
// files failed; callers must inspect per-item Error fields.
type Response struct {
	Success   bool          `json:"success"`
	ProjectID string        `json:"projectId"`
	Results   []OutcomeItem `json:"results"`
}

// ErrorResponse is the envelope for all non-200 responses.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
