package telegram

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"
)

const (
	// DefaultBaseURL is the public Bot API endpoint
	DefaultBaseURL = "https://api.telegram.org"

	/* DefaultTimeout bounds a single sendMessage/getMe round trip
	 * A hanging Telegram API must not pin a request worker indefinitely
	 */
	DefaultTimeout = 15 * time.Second
)

// Message is a single outgoing message for the sendMessage call
type Message struct {
	ChatID                string
	Text                  string
	ParseMode             ParseMode
	DisableWebPagePreview bool
	DisableNotification   bool
	MessageThreadID       *int64
}

/* sendMessageRequest is the wire shape of the sendMessage body
 * Fields with no value are omitted rather than sent as null
 */
type sendMessageRequest struct {
	ChatID                string `json:"chat_id"`
	Text                  string `json:"text"`
	ParseMode             string `json:"parse_mode,omitempty"`
	DisableWebPagePreview bool   `json:"disable_web_page_preview,omitempty"`
	DisableNotification   bool   `json:"disable_notification,omitempty"`
	MessageThreadID       *int64 `json:"message_thread_id,omitempty"`
}

// Client wraps the Telegram Bot HTTP API
type Client struct {
	httpClient *http.Client
	baseURL    string
	timeout    time.Duration
}

// NewClient creates a Bot API client. Empty baseURL and zero timeout
// fall back to DefaultBaseURL and DefaultTimeout.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    baseURL,
		timeout:    timeout,
	}
}

/* SendMessage performs one sendMessage call
 * A single attempt, no retries, no backoff: a message Telegram refuses to
 * parse will fail identically on every retry, and transient failures are
 * the external caller's to retry
 */
func (c *Client) SendMessage(ctx context.Context, token string, msg Message) Outcome {
	body := sendMessageRequest{
		ChatID:                msg.ChatID,
		Text:                  msg.Text,
		DisableWebPagePreview: msg.DisableWebPagePreview,
		DisableNotification:   msg.DisableNotification,
		MessageThreadID:       msg.MessageThreadID,
	}
	if msg.ParseMode.Validate() == nil {
		body.ParseMode = msg.ParseMode.String()
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return UnreachableOutcome(Network, fmt.Errorf("marshaling sendMessage body: %w", err))
	}

	url := fmt.Sprintf("%s/bot%s/sendMessage", c.baseURL, token)
	return c.do(ctx, http.MethodPost, url, payload)
}

// TestConnection performs a getMe call to verify a bot token
func (c *Client) TestConnection(ctx context.Context, token string) Outcome {
	url := fmt.Sprintf("%s/bot%s/getMe", c.baseURL, token)
	return c.do(ctx, http.MethodGet, url, nil)
}

func (c *Client) do(ctx context.Context, method, url string, payload []byte) Outcome {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	var reqBody io.Reader
	if payload != nil {
		reqBody = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reqBody)
	if err != nil {
		return UnreachableOutcome(Network, fmt.Errorf("building request: %w", err))
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return UnreachableOutcome(classifyTransport(err), fmt.Errorf("calling telegram: %w", err))
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return UnreachableOutcome(classifyTransport(err), fmt.Errorf("reading telegram response: %w", err))
	}

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return SentOutcome(resp.StatusCode, string(raw))
	}
	return RejectedOutcome(resp.StatusCode, string(raw))
}

// classifyTransport separates timeouts from other network failures
func classifyTransport(err error) TransportKind {
	if errors.Is(err, context.DeadlineExceeded) {
		return Timeout
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return Timeout
	}
	return Network
}
