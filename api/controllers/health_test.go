package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dmaher/scrapbill-backend/pkg/config"
)

type stubPinger struct {
	err error
}

func (p *stubPinger) Ping(context.Context) error {
	return p.err
}

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.App.Env = "test"
	return cfg
}

func TestHealthLiveReportsEnvironment(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/health/live", nil)
	resp := httptest.NewRecorder()
	HealthLive(testConfig())(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("unexpected status %d", resp.Code)
	}
	if got := resp.Header().Get("X-ScrapBill-Env"); got != "test" {
		t.Fatalf("unexpected env header %q", got)
	}
}

func TestHealthReadyAllChecksPass(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/health/ready", nil)
	resp := httptest.NewRecorder()
	HealthReady(testConfig(), testLogger(), &stubPinger{}, &stubPinger{})(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("unexpected status %d: %s", resp.Code, resp.Body.String())
	}
	var envelope struct {
		Data struct {
			Status string            `json:"status"`
			Checks map[string]string `json:"checks"`
		} `json:"data"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("unmarshal payload: %v", err)
	}
	if envelope.Data.Status != "ready" || envelope.Data.Checks["db"] != "ok" || envelope.Data.Checks["redis"] != "ok" {
		t.Fatalf("unexpected payload %+v", envelope.Data)
	}
}

func TestHealthReadyDegradedWhenStoreDown(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/health/ready", nil)
	resp := httptest.NewRecorder()
	HealthReady(testConfig(), testLogger(), &stubPinger{err: errors.New("connection refused")}, &stubPinger{})(resp, req)

	if resp.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", resp.Code)
	}
	var envelope struct {
		Data struct {
			Status string            `json:"status"`
			Checks map[string]string `json:"checks"`
		} `json:"data"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("unmarshal payload: %v", err)
	}
	if envelope.Data.Status != "degraded" || envelope.Data.Checks["db"] != "down" {
		t.Fatalf("unexpected payload %+v", envelope.Data)
	}
}

func TestHealthReadySkipsUnconfiguredStores(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/health/ready", nil)
	resp := httptest.NewRecorder()
	HealthReady(testConfig(), testLogger(), &stubPinger{}, nil)(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("unexpected status %d: %s", resp.Code, resp.Body.String())
	}
	var envelope struct {
		Data struct {
			Checks map[string]string `json:"checks"`
		} `json:"data"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("unmarshal payload: %v", err)
	}
	if envelope.Data.Checks["redis"] != "skipped" {
		t.Fatalf("unexpected payload %+v", envelope.Data)
	}
}
