package mailrelay

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"testing"
	"time"
)

func TestClientSendRequest(t *testing.T) {
	const expectedURL = "http://relay.test/send"

	var capturedURL string
	var capturedPayload map[string]any

	rt := roundTripFunc(func(req *http.Request) (*http.Response, error) {
		capturedURL = req.URL.String()
		bodyBytes, err := io.ReadAll(req.Body)
		if err != nil {
			t.Fatalf("read request body: %v", err)
		}
		if err := json.Unmarshal(bodyBytes, &capturedPayload); err != nil {
			t.Fatalf("unmarshal request body: %v", err)
		}
		return &http.Response{
			StatusCode: http.StatusAccepted,
			Body:       io.NopCloser(strings.NewReader("")),
			Header:     http.Header{},
		}, nil
	})

	client, err := NewClient("http://relay.test/", "billing@example.com", 5*time.Second, WithHTTPClient(&http.Client{Transport: rt}))
	if err != nil {
		t.Fatalf("new client: %v", err)
	}

	err = client.Send(context.Background(), Message{
		To:      "customer@example.com",
		Subject: "Invoice A0001",
		Body:    "Please find your invoice attached.",
		Attachments: []Attachment{
			{Filename: "invoice-A0001.pdf", ContentType: "application/pdf", Data: []byte("%PDF-1.7")},
		},
	})
	if err != nil {
		t.Fatalf("send: %v", err)
	}

	if capturedURL != expectedURL {
		t.Fatalf("unexpected URL %q", capturedURL)
	}
	if capturedPayload["from"] != "billing@example.com" {
		t.Fatalf("unexpected from %q", capturedPayload["from"])
	}
	if capturedPayload["to"] != "customer@example.com" {
		t.Fatalf("unexpected to %q", capturedPayload["to"])
	}

	attachments, ok := capturedPayload["attachments"].([]any)
	if !ok || len(attachments) != 1 {
		t.Fatalf("expected one attachment, got %v", capturedPayload["attachments"])
	}
	att := attachments[0].(map[string]any)
	decoded, err := base64.StdEncoding.DecodeString(att["content"].(string))
	if err != nil {
		t.Fatalf("decode attachment: %v", err)
	}
	if string(decoded) != "%PDF-1.7" {
		t.Fatalf("unexpected attachment content %q", decoded)
	}
}

func TestClientSendRejectsInvalidRecipient(t *testing.T) {
	client, err := NewClient("http://relay.test", "billing@example.com", time.Second)
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	if err := client.Send(context.Background(), Message{To: "not-an-address"}); err == nil {
		t.Fatalf("expected error for invalid recipient")
	}
	if err := client.Send(context.Background(), Message{}); err == nil {
		t.Fatalf("expected error for empty recipient")
	}
}

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}
