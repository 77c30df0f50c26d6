package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/dmaher/scrapbill-backend/api/responses"
	"github.com/dmaher/scrapbill-backend/pkg/config"
	"github.com/dmaher/scrapbill-backend/pkg/logger"
)

const readinessTimeout = 2 * time.Second

type pinger interface {
	Ping(ctx context.Context) error
}

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-ScrapBill-Env", cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady checks the backing stores. A nil pinger is treated as not
// configured and skipped.
func HealthReady(cfg *config.Config, logg *logger.Logger, dbP, redisP pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-ScrapBill-Env", cfg.App.Env)

		ctx, cancel := context.WithTimeout(r.Context(), readinessTimeout)
		defer cancel()

		checks := map[string]string{}
		ready := true

		checks["db"] = checkDependency(ctx, logg, "db", dbP, &ready)
		checks["redis"] = checkDependency(ctx, logg, "redis", redisP, &ready)

		status := map[string]any{"status": "ready", "checks": checks}
		if !ready {
			status["status"] = "degraded"
			responses.WriteSuccessStatus(w, http.StatusServiceUnavailable, status)
			return
		}
		responses.WriteSuccess(w, status)
	}
}

func checkDependency(ctx context.Context, logg *logger.Logger, name string, p pinger, ready *bool) string {
	if p == nil {
		return "skipped"
	}
	if err := p.Ping(ctx); err != nil {
		*ready = false
		if logg != nil {
			logg.Error(logg.WithField(ctx, "dependency", name), "readiness check failed", err)
		}
		return "down"
	}
	return "ok"
}
