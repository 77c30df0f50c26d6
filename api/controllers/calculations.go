package controllers

import (
	"net/http"

	"github.com/dmaher/scrapbill-backend/api/responses"
	"github.com/dmaher/scrapbill-backend/api/validators"
	"github.com/dmaher/scrapbill-backend/internal/calc"
	"github.com/dmaher/scrapbill-backend/pkg/logger"
)

// CalculateInvoice derives invoice totals from the posted form state
// without touching any stored document.
func CalculateInvoice(logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var input calc.InvoiceInput
		if err := validators.DecodeJSONBody(r, &input); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, calc.InvoiceTotals(input))
	}
}

// CalculateDocket derives docket totals from the posted form state.
func CalculateDocket(logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var input calc.DocketInput
		if err := validators.DecodeJSONBody(r, &input); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, calc.DocketTotals(input))
	}
}
