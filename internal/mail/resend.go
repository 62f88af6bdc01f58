package mail

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
)

const (
	defaultResendBaseURL = "https://api.resend.com"
	defaultTimeout       = 8 * time.Second
)

// ResendClient dispatches email through the Resend transactional API. When no
// API key is configured, it serves fake sends so local development works
// without credentials.
type ResendClient struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

// NewResendClient constructs a client. baseURL may be empty for production.
func NewResendClient(apiKey, baseURL string) *ResendClient {
	base := strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if base == "" {
		base = defaultResendBaseURL
	}
	return &ResendClient{
		baseURL: base,
		apiKey:  strings.TrimSpace(apiKey),
		http:    &http.Client{Timeout: defaultTimeout},
	}
}

type resendPayload struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	ReplyTo string   `json:"reply_to,omitempty"`
	Subject string   `json:"subject"`
	HTML    string   `json:"html,omitempty"`
	Text    string   `json:"text,omitempty"`
}

type resendResponse struct {
	ID string `json:"id"`
}

// Send posts the message to the provider and returns its message id.
func (c *ResendClient) Send(ctx context.Context, msg Message) (string, error) {
	if c == nil || c.apiKey == "" {
		return fakeMessageID(), nil
	}

	endpoint, err := url.JoinPath(c.baseURL, "emails")
	if err != nil {
		return "", err
	}
	payload, err := json.Marshal(resendPayload{
		From:    msg.From,
		To:      []string{msg.To},
		ReplyTo: msg.ReplyTo,
		Subject: msg.Subject,
		HTML:    msg.HTML,
		Text:    msg.Text,
	})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 400 {
		return "", fmt.Errorf("mail: resend status %d: %s", resp.StatusCode, drainError(resp.Body))
	}

	var out resendResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", err
	}
	return strings.TrimSpace(out.ID), nil
}

func fakeMessageID() string {
	return "dev_" + strings.ToLower(ulid.Make().String())
}

func drainError(r io.Reader) string {
	if r == nil {
		return ""
	}
	b, _ := io.ReadAll(io.LimitReader(r, 256))
	return strings.TrimSpace(string(b))
}
