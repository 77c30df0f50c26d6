package routes

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/dmaher/scrapbill-backend/internal/delivery"
	"github.com/dmaher/scrapbill-backend/internal/dockets"
	"github.com/dmaher/scrapbill-backend/internal/forms"
	"github.com/dmaher/scrapbill-backend/internal/invoices"
	"github.com/dmaher/scrapbill-backend/internal/settings"
	"github.com/dmaher/scrapbill-backend/pkg/config"
	"github.com/dmaher/scrapbill-backend/pkg/logger"
)

type stubInvoiceService struct{ invoices.Service }

type stubDocketService struct{ dockets.Service }

type stubSettingsService struct{ settings.Service }

type stubDeliveryService struct{ delivery.Service }

func testRouter(t *testing.T) http.Handler {
	t.Helper()
	logg := logger.New(logger.Options{ServiceName: "test", Output: io.Discard})
	reg, err := forms.NewRegistry(forms.RegistryParams{
		QuietPeriod: time.Minute,
		Logger:      logg,
	})
	if err != nil {
		t.Fatalf("build registry: %v", err)
	}
	t.Cleanup(reg.CloseAll)

	cfg := &config.Config{}
	cfg.App.Env = "test"

	return NewRouter(
		cfg,
		logg,
		nil,
		nil,
		reg,
		&stubInvoiceService{},
		&stubDocketService{},
		&stubSettingsService{},
		&stubDeliveryService{},
	)
}

func TestRouterServesLiveness(t *testing.T) {
	router := testRouter(t)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/health/live", nil))

	if resp.Code != http.StatusOK {
		t.Fatalf("unexpected status %d: %s", resp.Code, resp.Body.String())
	}
}

func TestRouterReadyWithNoStoresConfigured(t *testing.T) {
	router := testRouter(t)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/health/ready", nil))

	if resp.Code != http.StatusOK {
		t.Fatalf("unexpected status %d: %s", resp.Code, resp.Body.String())
	}
	if !strings.Contains(resp.Body.String(), `"skipped"`) {
		t.Fatalf("expected skipped checks, got %s", resp.Body.String())
	}
}

func TestRouterDispatchesCalculations(t *testing.T) {
	router := testRouter(t)
	body := strings.NewReader(`{"includeGst":true,"items":[{"quantity":1,"price":10}]}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/calculations/invoice", body)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("unexpected status %d: %s", resp.Code, resp.Body.String())
	}
	if !strings.Contains(resp.Body.String(), `"finalTotal":11`) {
		t.Fatalf("unexpected payload %s", resp.Body.String())
	}
}

func TestRouterExposesMetrics(t *testing.T) {
	router := testRouter(t)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	if resp.Code != http.StatusOK {
		t.Fatalf("unexpected status %d", resp.Code)
	}
}

func TestRouterUnknownRoute(t *testing.T) {
	router := testRouter(t)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/api/v1/unknown", nil))

	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.Code)
	}
}

func TestRouterMethodNotAllowed(t *testing.T) {
	router := testRouter(t)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, httptest.NewRequest(http.MethodPatch, "/api/v1/calculations/invoice", nil))

	if resp.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected 405, got %d", resp.Code)
	}
}
