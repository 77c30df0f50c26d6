package delivery

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/dmaher/scrapbill-backend/internal/dockets"
	"github.com/dmaher/scrapbill-backend/internal/invoices"
	"github.com/dmaher/scrapbill-backend/pkg/enums"
	pkgerrors "github.com/dmaher/scrapbill-backend/pkg/errors"
	"github.com/dmaher/scrapbill-backend/pkg/mailrelay"
	"github.com/dmaher/scrapbill-backend/pkg/renderer"
)

const (
	kindInvoice = "invoice"
	kindDocket  = "docket"
)

type invoiceReader interface {
	Get(ctx context.Context, id uuid.UUID) (*invoices.InvoiceDTO, error)
	SetStatus(ctx context.Context, id uuid.UUID, status enums.DocumentStatus) (*invoices.InvoiceDTO, error)
}

type docketReader interface {
	Get(ctx context.Context, id uuid.UUID) (*dockets.DocketDTO, error)
	SetStatus(ctx context.Context, id uuid.UUID, status enums.DocumentStatus) (*dockets.DocketDTO, error)
}

type pdfRenderer interface {
	RenderPDF(ctx context.Context, req renderer.RenderRequest) ([]byte, error)
}

type mailSender interface {
	Send(ctx context.Context, msg mailrelay.Message) error
}

// EmailInput overrides the outbound message. Blank fields fall back to
// values derived from the document.
type EmailInput struct {
	To      string `json:"to" validate:"omitempty,email"`
	Subject string `json:"subject" validate:"omitempty,max=200"`
	Body    string `json:"body" validate:"omitempty,max=5000"`
}

// EmailResult reports where the document went.
type EmailResult struct {
	SentTo     string `json:"sentTo"`
	Filename   string `json:"filename"`
	MarkedSent bool   `json:"markedSent"`
}

// Service renders billing documents to PDF and emails them out.
type Service interface {
	RenderInvoicePDF(ctx context.Context, id uuid.UUID) ([]byte, string, error)
	RenderDocketPDF(ctx context.Context, id uuid.UUID) ([]byte, string, error)
	EmailInvoice(ctx context.Context, id uuid.UUID, input EmailInput) (*EmailResult, error)
	EmailDocket(ctx context.Context, id uuid.UUID, input EmailInput) (*EmailResult, error)
}

type service struct {
	invoices invoiceReader
	dockets  docketReader
	renderer pdfRenderer
	mailer   mailSender
}

// NewService wires document lookup, PDF rendering and the mail relay.
func NewService(inv invoiceReader, dkt docketReader, rdr pdfRenderer, mailer mailSender) (Service, error) {
	if inv == nil {
		return nil, fmt.Errorf("invoice service required")
	}
	if dkt == nil {
		return nil, fmt.Errorf("docket service required")
	}
	if rdr == nil {
		return nil, fmt.Errorf("renderer client required")
	}
	if mailer == nil {
		return nil, fmt.Errorf("mail client required")
	}
	return &service{invoices: inv, dockets: dkt, renderer: rdr, mailer: mailer}, nil
}

func (s *service) RenderInvoicePDF(ctx context.Context, id uuid.UUID) ([]byte, string, error) {
	doc, err := s.invoices.Get(ctx, id)
	if err != nil {
		return nil, "", err
	}
	pdf, err := s.renderer.RenderPDF(ctx, renderer.RenderRequest{
		Kind:     kindInvoice,
		Number:   doc.ScrinvNumber,
		Document: doc,
	})
	if err != nil {
		return nil, "", err
	}
	return pdf, doc.ScrinvNumber + ".pdf", nil
}

func (s *service) RenderDocketPDF(ctx context.Context, id uuid.UUID) ([]byte, string, error) {
	doc, err := s.dockets.Get(ctx, id)
	if err != nil {
		return nil, "", err
	}
	pdf, err := s.renderer.RenderPDF(ctx, renderer.RenderRequest{
		Kind:     kindDocket,
		Number:   doc.ScrdktNumber,
		Document: doc,
	})
	if err != nil {
		return nil, "", err
	}
	return pdf, doc.ScrdktNumber + ".pdf", nil
}

func (s *service) EmailInvoice(ctx context.Context, id uuid.UUID, input EmailInput) (*EmailResult, error) {
	doc, err := s.invoices.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	to := strings.TrimSpace(input.To)
	if to == "" {
		to = strings.TrimSpace(doc.BillTo.Email)
	}
	if to == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "no recipient address on invoice")
	}

	pdf, err := s.renderer.RenderPDF(ctx, renderer.RenderRequest{
		Kind:     kindInvoice,
		Number:   doc.ScrinvNumber,
		Document: doc,
	})
	if err != nil {
		return nil, err
	}

	filename := doc.ScrinvNumber + ".pdf"
	msg := mailrelay.Message{
		To:      to,
		Subject: defaultString(input.Subject, "Invoice "+doc.ScrinvNumber),
		Body:    defaultString(input.Body, "Please find invoice "+doc.ScrinvNumber+" attached."),
		Attachments: []mailrelay.Attachment{{
			Filename:    filename,
			ContentType: "application/pdf",
			Data:        pdf,
		}},
	}
	if err := s.mailer.Send(ctx, msg); err != nil {
		return nil, err
	}

	result := EmailResult{SentTo: to, Filename: filename}
	if doc.Status == enums.DocumentStatusDraft {
		if _, err := s.invoices.SetStatus(ctx, id, enums.DocumentStatusSent); err != nil {
			return &result, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "invoice emailed but status update failed")
		}
		result.MarkedSent = true
	}
	return &result, nil
}

func (s *service) EmailDocket(ctx context.Context, id uuid.UUID, input EmailInput) (*EmailResult, error) {
	doc, err := s.dockets.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	to := strings.TrimSpace(input.To)
	if to == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "recipient address required for docket email")
	}

	pdf, err := s.renderer.RenderPDF(ctx, renderer.RenderRequest{
		Kind:     kindDocket,
		Number:   doc.ScrdktNumber,
		Document: doc,
	})
	if err != nil {
		return nil, err
	}

	filename := doc.ScrdktNumber + ".pdf"
	msg := mailrelay.Message{
		To:      to,
		Subject: defaultString(input.Subject, "Docket "+doc.ScrdktNumber),
		Body:    defaultString(input.Body, "Please find docket "+doc.ScrdktNumber+" attached."),
		Attachments: []mailrelay.Attachment{{
			Filename:    filename,
			ContentType: "application/pdf",
			Data:        pdf,
		}},
	}
	if err := s.mailer.Send(ctx, msg); err != nil {
		return nil, err
	}

	result := EmailResult{SentTo: to, Filename: filename}
	if doc.Status == enums.DocumentStatusDraft {
		if _, err := s.dockets.SetStatus(ctx, id, enums.DocumentStatusSent); err != nil {
			return &result, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "docket emailed but status update failed")
		}
		result.MarkedSent = true
	}
	return &result, nil
}

func defaultString(value, fallback string) string {
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return value
}
