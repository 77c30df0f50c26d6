package controllers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/dmaher/scrapbill-backend/internal/calc"
)

func TestCalculateInvoiceCoercesStringNumbers(t *testing.T) {
	body := `{
		"includeGst": true,
		"items": [{"quantity": "2", "price": "10.5"}],
		"postGstDeductions": [{"amount": "abc"}]
	}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/calculations/invoice", strings.NewReader(body))
	resp := httptest.NewRecorder()
	CalculateInvoice(testLogger())(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("unexpected status %d: %s", resp.Code, resp.Body.String())
	}

	var envelope struct {
		Data calc.InvoiceResult `json:"data"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("unmarshal result: %v", err)
	}
	if envelope.Data.ItemsTotal != 21 {
		t.Fatalf("unexpected items total %v", envelope.Data.ItemsTotal)
	}
	if envelope.Data.GSTAmount != 2.1 {
		t.Fatalf("unexpected gst %v", envelope.Data.GSTAmount)
	}
	if envelope.Data.FinalTotal != 23.1 {
		t.Fatalf("unexpected final total %v", envelope.Data.FinalTotal)
	}
}

func TestCalculateInvoiceDefaultsGSTOn(t *testing.T) {
	body := `{"items": [{"quantity": 2, "price": 50}]}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/calculations/invoice", strings.NewReader(body))
	resp := httptest.NewRecorder()
	CalculateInvoice(testLogger())(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("unexpected status %d: %s", resp.Code, resp.Body.String())
	}

	var envelope struct {
		Data calc.InvoiceResult `json:"data"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("unmarshal result: %v", err)
	}
	if envelope.Data.GSTAmount != 10 {
		t.Fatalf("gst %v, want 10 when includeGst is omitted", envelope.Data.GSTAmount)
	}
	if envelope.Data.FinalTotal != 110 {
		t.Fatalf("unexpected final total %v", envelope.Data.FinalTotal)
	}
}

func TestCalculateDocketDefaultsGSTRate(t *testing.T) {
	body := `{
		"includeGst": true,
		"items": [{"gross": 10, "price": 10}]
	}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/calculations/docket", strings.NewReader(body))
	resp := httptest.NewRecorder()
	CalculateDocket(testLogger())(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("unexpected status %d: %s", resp.Code, resp.Body.String())
	}

	var envelope struct {
		Data calc.DocketResult `json:"data"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("unmarshal result: %v", err)
	}
	if envelope.Data.GSTAmount != 10 {
		t.Fatalf("gst %v, want 10 at the default rate", envelope.Data.GSTAmount)
	}
	if envelope.Data.FinalTotal != 110 {
		t.Fatalf("unexpected final total %v", envelope.Data.FinalTotal)
	}
}

func TestCalculateDocketUsesConfiguredGSTRate(t *testing.T) {
	body := `{
		"includeGst": true,
		"gstPercentage": 15,
		"items": [{"gross": 100, "tare": 0, "price": 1}]
	}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/calculations/docket", strings.NewReader(body))
	resp := httptest.NewRecorder()
	CalculateDocket(testLogger())(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("unexpected status %d: %s", resp.Code, resp.Body.String())
	}

	var envelope struct {
		Data calc.DocketResult `json:"data"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("unmarshal result: %v", err)
	}
	if envelope.Data.GSTAmount != 15 {
		t.Fatalf("unexpected gst %v", envelope.Data.GSTAmount)
	}
	if envelope.Data.FinalTotal != 115 {
		t.Fatalf("unexpected final total %v", envelope.Data.FinalTotal)
	}
}

func TestCalculateInvoiceRejectsMalformedJSON(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/calculations/invoice", strings.NewReader(`{"items":`))
	resp := httptest.NewRecorder()
	CalculateInvoice(testLogger())(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
}
