package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/dmaher/scrapbill-backend/api/responses"
	"github.com/dmaher/scrapbill-backend/api/validators"
	"github.com/dmaher/scrapbill-backend/internal/calc"
	"github.com/dmaher/scrapbill-backend/internal/forms"
	"github.com/dmaher/scrapbill-backend/pkg/enums"
	pkgerrors "github.com/dmaher/scrapbill-backend/pkg/errors"
	"github.com/dmaher/scrapbill-backend/pkg/logger"
)

type openFormRequest struct {
	Kind string `json:"kind" validate:"required,oneof=invoice docket"`
}

// FormOpen starts a live form session for one document kind.
func FormOpen(reg *forms.Registry, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req openFormRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		session, err := reg.Open(enums.FormKind(req.Kind))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, session)
	}
}

// FormUpdateState pushes the latest form state into a session and returns
// the instantly recomputed rows. Aggregates follow once the quiet period
// elapses.
func FormUpdateState(reg *forms.Registry, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := sessionIDParam(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		session, err := reg.Get(id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		switch session.Kind {
		case enums.FormKindInvoice:
			var input calc.InvoiceInput
			if err := validators.DecodeJSONBody(r, &input); err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}
			rows, err := reg.UpdateInvoice(id, input)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}
			responses.WriteSuccess(w, map[string]any{"items": rows})
		case enums.FormKindDocket:
			var input calc.DocketInput
			if err := validators.DecodeJSONBody(r, &input); err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}
			rows, err := reg.UpdateDocket(id, input)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}
			responses.WriteSuccess(w, map[string]any{"items": rows})
		default:
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "form session holds an unknown document kind"))
		}
	}
}

// FormTotals returns the most recently published aggregate pass. The
// payload is pending until the first quiet period has elapsed.
func FormTotals(reg *forms.Registry, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := sessionIDParam(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		session, err := reg.Get(id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		switch session.Kind {
		case enums.FormKindInvoice:
			totals, ok, err := reg.InvoiceTotals(id)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}
			writeTotals(w, totals, ok)
		case enums.FormKindDocket:
			totals, ok, err := reg.DocketTotals(id)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}
			writeTotals(w, totals, ok)
		default:
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "form session holds an unknown document kind"))
		}
	}
}

// FormClose tears down a session and cancels any pending aggregate pass.
func FormClose(reg *forms.Registry, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := sessionIDParam(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := reg.Close(id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "closed"})
	}
}

func writeTotals(w http.ResponseWriter, totals any, published bool) {
	if !published {
		responses.WriteSuccess(w, map[string]any{"pending": true})
		return
	}
	responses.WriteSuccess(w, map[string]any{"pending": false, "totals": totals})
}

func sessionIDParam(r *http.Request) (uuid.UUID, error) {
	raw := chi.URLParam(r, "sessionId")
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid session id")
	}
	return id, nil
}
