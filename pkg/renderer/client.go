package renderer

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	pkgerrors "github.com/dmaher/scrapbill-backend/pkg/errors"
)

const (
	errorBodyReadLimit int64 = 1024
	pdfBodyReadLimit   int64 = 32 << 20
)

var errBaseURLRequired = errors.New("renderer base url is required")

// Client calls the document render service, which turns a document payload
// into a printable PDF.
type Client struct {
	httpClient *http.Client
	baseURL    string
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

// NewClient builds the render service client.
func NewClient(baseURL string, timeout time.Duration, opts ...Option) (*Client, error) {
	trimmed := strings.TrimSpace(baseURL)
	if trimmed == "" {
		return nil, errBaseURLRequired
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	client := &Client{
		baseURL:    strings.TrimRight(trimmed, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(client)
		}
	}
	return client, nil
}

// RenderRequest describes the payload sent to the render service.
type RenderRequest struct {
	Kind     string `json:"kind"`
	Number   string `json:"number"`
	Document any    `json:"document"`
}

// RenderPDF posts the document payload and returns the rendered PDF bytes.
func (c *Client) RenderPDF(ctx context.Context, req RenderRequest) ([]byte, error) {
	if c == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "renderer client not configured")
	}
	if strings.TrimSpace(req.Kind) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "render kind is required")
	}

	payload, err := json.Marshal(req)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "marshal render request")
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/render", bytes.NewReader(payload))
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "build render request")
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/pdf")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "execute render request")
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, errorBodyReadLimit))
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, fmt.Errorf("status %d: %s", resp.StatusCode, strings.TrimSpace(string(msg))), "render request failed")
	}

	pdf, err := io.ReadAll(io.LimitReader(resp.Body, pdfBodyReadLimit))
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "read rendered pdf")
	}
	if len(pdf) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "render service returned an empty document")
	}
	return pdf, nil
}
