package mailrelay

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/mail"
	"strings"
	"time"

	pkgerrors "github.com/dmaher/scrapbill-backend/pkg/errors"
)

const errorBodyReadLimit int64 = 1024

var errBaseURLRequired = errors.New("mail relay base url is required")

// Client calls the outbound mail relay used to deliver rendered documents.
type Client struct {
	httpClient *http.Client
	baseURL    string
	from       string
}

// Option configures optional client behavior.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// NewClient builds the mail relay client.
func NewClient(baseURL, fromAddress string, timeout time.Duration, opts ...Option) (*Client, error) {
	trimmed := strings.TrimSpace(baseURL)
	if trimmed == "" {
		return nil, errBaseURLRequired
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	client := &Client{
		baseURL:    strings.TrimRight(trimmed, "/"),
		from:       strings.TrimSpace(fromAddress),
		httpClient: &http.Client{Timeout: timeout},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(client)
		}
	}
	return client, nil
}

// Attachment is a file included with an outbound message.
type Attachment struct {
	Filename    string
	ContentType string
	Data        []byte
}

// Message describes one outbound email.
type Message struct {
	To          string
	Subject     string
	Body        string
	Attachments []Attachment
}

// Send posts the message to the relay.
func (c *Client) Send(ctx context.Context, msg Message) error {
	if c == nil {
		return pkgerrors.New(pkgerrors.CodeDependency, "mail relay client not configured")
	}
	to := strings.TrimSpace(msg.To)
	if to == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "recipient address is required")
	}
	if _, err := mail.ParseAddress(to); err != nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "recipient address is invalid")
	}

	type wireAttachment struct {
		Filename    string `json:"filename"`
		ContentType string `json:"contentType"`
		Content     string `json:"content"`
	}
	payload := struct {
		From        string           `json:"from"`
		To          string           `json:"to"`
		Subject     string           `json:"subject"`
		Body        string           `json:"body"`
		Attachments []wireAttachment `json:"attachments,omitempty"`
	}{
		From:    c.from,
		To:      to,
		Subject: msg.Subject,
		Body:    msg.Body,
	}
	for _, att := range msg.Attachments {
		payload.Attachments = append(payload.Attachments, wireAttachment{
			Filename:    att.Filename,
			ContentType: att.ContentType,
			Content:     base64.StdEncoding.EncodeToString(att.Data),
		})
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "marshal mail payload")
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/send", bytes.NewReader(body))
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "build mail request")
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "execute mail request")
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusAccepted {
		msgBody, _ := io.ReadAll(io.LimitReader(resp.Body, errorBodyReadLimit))
		return pkgerrors.Wrap(pkgerrors.CodeDependency, fmt.Errorf("status %d: %s", resp.StatusCode, strings.TrimSpace(string(msgBody))), "mail relay request failed")
	}
	return nil
}
