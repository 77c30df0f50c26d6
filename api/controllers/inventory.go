package controllers

import (
	"net/http"
	"strings"
	"time"

	"github.com/dmaher/scrapbill-backend/api/responses"
	"github.com/dmaher/scrapbill-backend/api/validators"
	"github.com/dmaher/scrapbill-backend/internal/dockets"
	"github.com/dmaher/scrapbill-backend/pkg/enums"
	pkgerrors "github.com/dmaher/scrapbill-backend/pkg/errors"
	"github.com/dmaher/scrapbill-backend/pkg/logger"
)

const reportDateLayout = "2006-01-02"

// InventoryReport aggregates docket line items into per-metal stock totals.
func InventoryReport(svc dockets.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		params := dockets.InventoryParams{
			Metal: validators.SanitizeString(r.URL.Query().Get("metal"), 100),
		}

		from, err := parseReportDate(r, "from")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		params.From = from

		to, err := parseReportDate(r, "to")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		params.To = to

		if raw := strings.TrimSpace(r.URL.Query().Get("docketType")); raw != "" {
			docketType, err := enums.ParseDocketType(raw)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid docketType"))
				return
			}
			params.DocketType = &docketType
		}

		report, err := svc.InventoryReport(r.Context(), params)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, report)
	}
}

func parseReportDate(r *http.Request, key string) (*time.Time, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return nil, nil
	}
	parsed, err := time.Parse(reportDateLayout, raw)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid "+key+" date, expected YYYY-MM-DD")
	}
	return &parsed, nil
}
