package client

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/alexchen/atelier"
)

// Fixed user-facing strings for relay failures. The missing-credential case
// is distinguished from generic failure by the API_KEY marker in the error
// payload; nothing else about the error leaks to the visitor.
const (
	MissingKeyMessage     = "The assistant is not configured yet: no API key is set on the server."
	GenericFailureMessage = "The assistant is temporarily unavailable. Please try again in a moment."
	missingKeyMarker      = "API_KEY"
)

// Relay forwards conversational turns to the site's chat endpoint. Unlike
// the sync client, failures here are not silent: every outcome is a string
// the widget can append to the transcript. There is no retry and no way to
// cancel a request once sent.
type Relay struct {
	endpoint string
	client   *http.Client
}

// NewRelay creates a Relay against the chat endpoint URL.
func NewRelay(endpoint string) *Relay {
	return &Relay{
		endpoint: endpoint,
		client:   &http.Client{Timeout: 60 * time.Second},
	}
}

type relayRequest struct {
	Message string                `json:"message"`
	History []atelier.ChatMessage `json:"history"`
}

// Send forwards message plus the rolling transcript and returns text to
// append to the conversation: the generated reply on success, one of the
// fixed failure strings otherwise. The outgoing history is exactly the
// prior turns, unmodified, followed by the new user turn; the transcript
// grows without bound by design.
func (r *Relay) Send(ctx context.Context, message string, history []atelier.ChatMessage) string {
	transcript := make([]atelier.ChatMessage, 0, len(history)+1)
	transcript = append(transcript, history...)
	transcript = append(transcript, atelier.ChatMessage{Role: "user", Content: message})

	payload, err := json.Marshal(relayRequest{Message: message, History: transcript})
	if err != nil {
		return GenericFailureMessage
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.endpoint, bytes.NewReader(payload))
	if err != nil {
		return GenericFailureMessage
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		return GenericFailureMessage
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return GenericFailureMessage
	}

	if resp.StatusCode != http.StatusOK {
		var errPayload struct {
			Error   string `json:"error"`
			Details string `json:"details"`
		}
		_ = json.Unmarshal(body, &errPayload)
		if strings.Contains(errPayload.Error, missingKeyMarker) || strings.Contains(errPayload.Details, missingKeyMarker) {
			return MissingKeyMessage
		}
		return GenericFailureMessage
	}

	var ok struct {
		Text string `json:"text"`
	}
	if err := json.Unmarshal(body, &ok); err != nil || ok.Text == "" {
		return GenericFailureMessage
	}
	return ok.Text
}
