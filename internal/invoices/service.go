package invoices

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/dmaher/scrapbill-backend/internal/calc"
	"github.com/dmaher/scrapbill-backend/pkg/db"
	"github.com/dmaher/scrapbill-backend/pkg/db/models"
	"github.com/dmaher/scrapbill-backend/pkg/enums"
	pkgerrors "github.com/dmaher/scrapbill-backend/pkg/errors"
	pkgpagination "github.com/dmaher/scrapbill-backend/pkg/pagination"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type invoicesRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Invoice, error)
	LatestNumber(ctx context.Context) (string, error)
	List(ctx context.Context, opts listQuery) ([]models.Invoice, error)
	Save(ctx context.Context, tx *gorm.DB, inv *models.Invoice) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status enums.DocumentStatus) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// Service exposes invoice drafting, listing, numbering and status
// transitions.
type Service interface {
	SaveDraft(ctx context.Context, input SaveDraftInput) (*InvoiceDTO, error)
	Get(ctx context.Context, id uuid.UUID) (*InvoiceDTO, error)
	List(ctx context.Context, params ListParams) (*ListResult, error)
	Delete(ctx context.Context, id uuid.UUID) error
	SetStatus(ctx context.Context, id uuid.UUID, status enums.DocumentStatus) (*InvoiceDTO, error)
	NextNumber(ctx context.Context) (string, error)
}

type service struct {
	repo invoicesRepository
	tx   txRunner
}

// NewService builds an invoice service backed by the provided stack.
func NewService(repo invoicesRepository, tx txRunner) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("invoice repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	return &service{repo: repo, tx: tx}, nil
}

func (s *service) SaveDraft(ctx context.Context, input SaveDraftInput) (*InvoiceDTO, error) {
	if input.InvoiceType == "" {
		input.InvoiceType = enums.InvoiceTypeContainer
	}
	if !input.InvoiceType.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown invoice type")
	}
	if input.Currency == "" {
		input.Currency = enums.CurrencyAUD
	}
	if !input.Currency.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown currency")
	}

	totals := calc.InvoiceTotals(calc.InvoiceInput{
		Items:             input.Items,
		TransportItems:    input.TransportItems,
		PreGSTDeductions:  input.PreGSTDeductions,
		PostGSTDeductions: input.PostGSTDeductions,
		IncludeGST:        input.IncludeGST,
	})

	var inv *models.Invoice
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		var err error
		if input.ID == nil {
			inv, err = s.newInvoice(ctx)
		} else {
			inv, err = s.repo.FindByID(ctx, *input.ID)
			if errors.Is(err, gorm.ErrRecordNotFound) {
				err = pkgerrors.New(pkgerrors.CodeNotFound, "invoice not found")
			}
		}
		if err != nil {
			return err
		}

		applyInput(inv, input, totals)
		if err := s.repo.Save(ctx, tx, inv); err != nil {
			if db.IsUniqueViolation(err) {
				return pkgerrors.Wrap(pkgerrors.CodeConflict, err, "invoice number already assigned")
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toDTO(inv), nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*InvoiceDTO, error) {
	inv, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "invoice not found")
		}
		return nil, err
	}
	return toDTO(inv), nil
}

func (s *service) List(ctx context.Context, params ListParams) (*ListResult, error) {
	cursor, err := pkgpagination.ParseCursor(params.Cursor)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid cursor")
	}

	limit := pkgpagination.NormalizeLimit(params.Limit)
	rows, err := s.repo.List(ctx, listQuery{
		status: params.Status,
		search: params.Search,
		limit:  pkgpagination.LimitWithBuffer(params.Limit),
		cursor: cursor,
	})
	if err != nil {
		return nil, err
	}

	result := &ListResult{Items: make([]ListItem, 0, len(rows))}
	for i := range rows {
		if i == limit {
			last := rows[i-1]
			result.NextCursor = pkgpagination.EncodeCursor(pkgpagination.Cursor{CreatedAt: last.CreatedAt, ID: last.ID})
			break
		}
		result.Items = append(result.Items, toListItem(&rows[i]))
	}
	return result, nil
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "invoice not found")
		}
		return err
	}
	return nil
}

func (s *service) SetStatus(ctx context.Context, id uuid.UUID, status enums.DocumentStatus) (*InvoiceDTO, error) {
	if !status.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown document status")
	}
	if err := s.repo.UpdateStatus(ctx, id, status); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "invoice not found")
		}
		return nil, err
	}
	return s.Get(ctx, id)
}

func (s *service) NextNumber(ctx context.Context) (string, error) {
	latest, err := s.repo.LatestNumber(ctx)
	if err != nil {
		return "", err
	}
	return nextScrinvNumber(latest)
}

func (s *service) newInvoice(ctx context.Context) (*models.Invoice, error) {
	number, err := s.NextNumber(ctx)
	if err != nil {
		return nil, err
	}
	return &models.Invoice{
		ID:           uuid.New(),
		ScrinvNumber: number,
		Status:       enums.DocumentStatusDraft,
	}, nil
}

func applyInput(inv *models.Invoice, input SaveDraftInput, totals calc.InvoiceResult) {
	inv.InvoiceType = input.InvoiceType
	inv.Currency = input.Currency
	inv.IncludeGST = input.IncludeGST.Or(true)
	inv.ShowTransport = input.ShowTransport
	inv.InvoiceDate = input.InvoiceDate

	inv.BillFromName = input.BillFrom.Name
	inv.BillFromPhone = input.BillFrom.Phone
	inv.BillFromEmail = input.BillFrom.Email
	inv.BillFromABN = input.BillFrom.ABN
	inv.BillFromAddress = input.BillFrom.Address

	inv.BillToName = input.BillTo.Name
	inv.BillToPhone = input.BillTo.Phone
	inv.BillToEmail = input.BillTo.Email
	inv.BillToABN = input.BillTo.ABN
	inv.BillToAddress = input.BillTo.Address

	inv.BankName = input.Bank.BankName
	inv.AccountName = input.Bank.AccountName
	inv.BSB = input.Bank.BSB
	inv.AccountNumber = input.Bank.AccountNumber

	inv.Notes = input.Notes
	inv.PrivateNotes = input.PrivateNotes

	inv.ItemsTotal = money(totals.ItemsTotal)
	inv.TransportTotal = money(totals.TransportTotal)
	inv.PreGSTDeductionTotal = money(totals.PreGSTDeductionTotal)
	inv.PostGSTDeductionTotal = money(totals.PostGSTDeductionTotal)
	inv.GrossTotal = money(totals.GrossTotal)
	inv.GSTAmount = money(totals.GSTAmount)
	inv.FinalTotal = money(totals.FinalTotal)

	inv.Items = make([]models.InvoiceItem, 0, len(input.Items))
	for i, row := range input.Items {
		inv.Items = append(inv.Items, models.InvoiceItem{
			ID:              uuid.New(),
			InvoiceID:       inv.ID,
			Position:        i,
			Seal:            row.Seal,
			ContainerNumber: row.ContainerNumber,
			Metal:           row.Metal,
			Description:     row.Description,
			Quantity:        row.Quantity.Ptr(),
			Price:           row.Price.Ptr(),
			Unit:            row.Unit,
		})
	}

	inv.TransportItems = make([]models.TransportItem, 0, len(input.TransportItems))
	for i, row := range input.TransportItems {
		inv.TransportItems = append(inv.TransportItems, models.TransportItem{
			ID:          uuid.New(),
			InvoiceID:   inv.ID,
			Position:    i,
			Name:        row.Name,
			NumOfCtr:    row.NumOfCtr.Ptr(),
			PricePerCtr: row.PricePerCtr.Ptr(),
		})
	}

	inv.Deductions = make([]models.InvoiceDeduction, 0, len(input.PreGSTDeductions)+len(input.PostGSTDeductions))
	for i, row := range input.PreGSTDeductions {
		inv.Deductions = append(inv.Deductions, models.InvoiceDeduction{
			ID:        uuid.New(),
			InvoiceID: inv.ID,
			Position:  i,
			Stage:     enums.DeductionStagePre,
			Label:     row.Label,
			Amount:    row.Amount.Ptr(),
		})
	}
	for i, row := range input.PostGSTDeductions {
		inv.Deductions = append(inv.Deductions, models.InvoiceDeduction{
			ID:        uuid.New(),
			InvoiceID: inv.ID,
			Position:  i,
			Stage:     enums.DeductionStagePost,
			Label:     row.Label,
			Amount:    row.Amount.Ptr(),
		})
	}
}
