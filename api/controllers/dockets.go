package controllers

import (
	"net/http"
	"strings"

	"github.com/dmaher/scrapbill-backend/api/responses"
	"github.com/dmaher/scrapbill-backend/api/validators"
	"github.com/dmaher/scrapbill-backend/internal/delivery"
	"github.com/dmaher/scrapbill-backend/internal/dockets"
	"github.com/dmaher/scrapbill-backend/pkg/enums"
	pkgerrors "github.com/dmaher/scrapbill-backend/pkg/errors"
	"github.com/dmaher/scrapbill-backend/pkg/logger"
)

// DocketCreate saves a new docket draft, assigning the next SCRDKT number.
func DocketCreate(svc dockets.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var input dockets.SaveDraftInput
		if err := validators.DecodeJSONBody(r, &input); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		input.ID = nil
		dto, err := svc.SaveDraft(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, dto)
	}
}

// DocketUpdate saves the full form state over an existing docket.
func DocketUpdate(svc dockets.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := idParam(r, "docketId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var input dockets.SaveDraftInput
		if err := validators.DecodeJSONBody(r, &input); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		input.ID = &id
		dto, err := svc.SaveDraft(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, dto)
	}
}

// DocketGet returns one stored docket with derived totals.
func DocketGet(svc dockets.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := idParam(r, "docketId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		dto, err := svc.Get(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, dto)
	}
}

// DocketList returns a cursor-paginated docket listing.
func DocketList(svc dockets.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		params := dockets.ListParams{
			Search: validators.SanitizeString(r.URL.Query().Get("search"), 100),
			Cursor: strings.TrimSpace(r.URL.Query().Get("cursor")),
		}

		if raw := strings.TrimSpace(r.URL.Query().Get("status")); raw != "" {
			status, err := enums.ParseDocumentStatus(raw)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid status filter"))
				return
			}
			params.Status = &status
		}
		if raw := strings.TrimSpace(r.URL.Query().Get("docketType")); raw != "" {
			docketType, err := enums.ParseDocketType(raw)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid docket type filter"))
				return
			}
			params.DocketType = &docketType
		}

		limit, err := validators.ParseQueryInt(r, "limit", 0, 1, 100)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		params.Limit = limit

		result, err := svc.List(r.Context(), params)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		writeList(w, result.Items, result.NextCursor)
	}
}

// DocketDelete removes a docket and its line items.
func DocketDelete(svc dockets.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := idParam(r, "docketId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := svc.Delete(r.Context(), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}

// DocketSetStatus transitions the document lifecycle state.
func DocketSetStatus(svc dockets.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := idParam(r, "docketId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var req setStatusRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		status, err := enums.ParseDocumentStatus(req.Status)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid status"))
			return
		}
		dto, err := svc.SetStatus(r.Context(), id, status)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, dto)
	}
}

// DocketPrint bumps the print counter and returns the new count.
func DocketPrint(svc dockets.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := idParam(r, "docketId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		count, err := svc.IncrementPrintCount(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]int{"printQty": count})
	}
}

// DocketNextNumber previews the number the next created docket will get.
func DocketNextNumber(svc dockets.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		number, err := svc.NextNumber(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"nextNumber": number})
	}
}

// DocketEmail renders the docket to PDF and mails it out.
func DocketEmail(svc delivery.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := idParam(r, "docketId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var input delivery.EmailInput
		if err := validators.DecodeJSONBody(r, &input); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		result, err := svc.EmailDocket(r.Context(), id, input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}

// DocketPDF streams the rendered document.
func DocketPDF(svc delivery.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := idParam(r, "docketId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		pdf, filename, err := svc.RenderDocketPDF(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		writePDF(w, pdf, filename)
	}
}
