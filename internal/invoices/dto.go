package invoices

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/dmaher/scrapbill-backend/internal/calc"
	"github.com/dmaher/scrapbill-backend/pkg/db/models"
	"github.com/dmaher/scrapbill-backend/pkg/enums"
)

// Party is one side of the billing relationship on an invoice.
type Party struct {
	Name    string `json:"name" validate:"omitempty,max=200"`
	Phone   string `json:"phone" validate:"omitempty,max=50"`
	Email   string `json:"email" validate:"omitempty,email"`
	ABN     string `json:"abn" validate:"omitempty,max=20"`
	Address string `json:"address" validate:"omitempty,max=500"`
}

// BankDetails is the payment destination printed on the invoice.
type BankDetails struct {
	BankName      string `json:"bankName" validate:"omitempty,max=100"`
	AccountName   string `json:"accountName" validate:"omitempty,max=200"`
	BSB           string `json:"bsb" validate:"omitempty,max=10"`
	AccountNumber string `json:"accountNumber" validate:"omitempty,max=20"`
}

// SaveDraftInput is the full editable state of an invoice form at save time.
// A nil ID creates a new invoice and assigns the next number.
type SaveDraftInput struct {
	ID *uuid.UUID `json:"id" validate:"omitempty"`

	InvoiceType   enums.InvoiceType `json:"invoiceType" validate:"omitempty"`
	Currency      enums.Currency    `json:"currency" validate:"omitempty"`
	IncludeGST    calc.Bool         `json:"includeGst"`
	ShowTransport bool              `json:"showTransport"`
	InvoiceDate   *time.Time        `json:"invoiceDate"`

	BillFrom Party       `json:"billFrom"`
	BillTo   Party       `json:"billTo"`
	Bank     BankDetails `json:"bank"`

	Notes        string `json:"notes" validate:"omitempty,max=2000"`
	PrivateNotes string `json:"privateNotes" validate:"omitempty,max=2000"`

	Items             []calc.InvoiceRow   `json:"items" validate:"max=200,dive"`
	TransportItems    []calc.TransportRow `json:"transportItems" validate:"max=50,dive"`
	PreGSTDeductions  []calc.DeductionRow `json:"preGstDeductions" validate:"max=50,dive"`
	PostGSTDeductions []calc.DeductionRow `json:"postGstDeductions" validate:"max=50,dive"`
}

// InvoiceDTO is the outward shape of a stored invoice, with totals derived
// fresh from the line items.
type InvoiceDTO struct {
	ID           uuid.UUID            `json:"id"`
	ScrinvNumber string               `json:"scrinvNumber"`
	Status       enums.DocumentStatus `json:"status"`
	InvoiceType  enums.InvoiceType    `json:"invoiceType"`
	Currency     enums.Currency       `json:"currency"`

	IncludeGST    bool       `json:"includeGst"`
	ShowTransport bool       `json:"showTransport"`
	InvoiceDate   *time.Time `json:"invoiceDate,omitempty"`

	BillFrom Party       `json:"billFrom"`
	BillTo   Party       `json:"billTo"`
	Bank     BankDetails `json:"bank"`

	Notes        string `json:"notes,omitempty"`
	PrivateNotes string `json:"privateNotes,omitempty"`

	Items             []calc.InvoiceRow   `json:"items"`
	TransportItems    []calc.TransportRow `json:"transportItems"`
	PreGSTDeductions  []calc.DeductionRow `json:"preGstDeductions"`
	PostGSTDeductions []calc.DeductionRow `json:"postGstDeductions"`

	ItemsTotal            float64 `json:"itemsTotal"`
	TransportTotal        float64 `json:"transportTotal"`
	PreGSTDeductionTotal  float64 `json:"preGstDeductionTotal"`
	PostGSTDeductionTotal float64 `json:"postGstDeductionTotal"`
	GrossTotal            float64 `json:"grossTotal"`
	GSTAmount             float64 `json:"gstAmount"`
	FinalTotal            float64 `json:"finalTotal"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ListParams filters and paginates invoice listings.
type ListParams struct {
	Status *enums.DocumentStatus
	Search string
	Limit  int
	Cursor string
}

// ListItem is the trimmed row shape used by invoice listings.
type ListItem struct {
	ID           uuid.UUID            `json:"id"`
	ScrinvNumber string               `json:"scrinvNumber"`
	Status       enums.DocumentStatus `json:"status"`
	BillToName   string               `json:"billToName"`
	InvoiceDate  *time.Time           `json:"invoiceDate,omitempty"`
	FinalTotal   float64              `json:"finalTotal"`
	Currency     enums.Currency       `json:"currency"`
	CreatedAt    time.Time            `json:"createdAt"`
}

// ListResult carries one page of invoices plus the follow-on cursor.
type ListResult struct {
	Items      []ListItem
	NextCursor string
}

func toDTO(inv *models.Invoice) *InvoiceDTO {
	dto := &InvoiceDTO{
		ID:            inv.ID,
		ScrinvNumber:  inv.ScrinvNumber,
		Status:        inv.Status,
		InvoiceType:   inv.InvoiceType,
		Currency:      inv.Currency,
		IncludeGST:    inv.IncludeGST,
		ShowTransport: inv.ShowTransport,
		InvoiceDate:   inv.InvoiceDate,
		BillFrom: Party{
			Name:    inv.BillFromName,
			Phone:   inv.BillFromPhone,
			Email:   inv.BillFromEmail,
			ABN:     inv.BillFromABN,
			Address: inv.BillFromAddress,
		},
		BillTo: Party{
			Name:    inv.BillToName,
			Phone:   inv.BillToPhone,
			Email:   inv.BillToEmail,
			ABN:     inv.BillToABN,
			Address: inv.BillToAddress,
		},
		Bank: BankDetails{
			BankName:      inv.BankName,
			AccountName:   inv.AccountName,
			BSB:           inv.BSB,
			AccountNumber: inv.AccountNumber,
		},
		Notes:                 inv.Notes,
		PrivateNotes:          inv.PrivateNotes,
		ItemsTotal:            inv.ItemsTotal.InexactFloat64(),
		TransportTotal:        inv.TransportTotal.InexactFloat64(),
		PreGSTDeductionTotal:  inv.PreGSTDeductionTotal.InexactFloat64(),
		PostGSTDeductionTotal: inv.PostGSTDeductionTotal.InexactFloat64(),
		GrossTotal:            inv.GrossTotal.InexactFloat64(),
		GSTAmount:             inv.GSTAmount.InexactFloat64(),
		FinalTotal:            inv.FinalTotal.InexactFloat64(),
		CreatedAt:             inv.CreatedAt,
		UpdatedAt:             inv.UpdatedAt,
	}

	dto.Items = calc.InvoiceItemTotals(rowsFromModels(inv.Items))
	dto.TransportItems = transportFromModels(inv.TransportItems)
	for _, d := range inv.Deductions {
		row := calc.DeductionRow{Key: d.ID.String(), Label: d.Label, Amount: calc.FromPtr(d.Amount)}
		if d.Stage == enums.DeductionStagePost {
			dto.PostGSTDeductions = append(dto.PostGSTDeductions, row)
		} else {
			dto.PreGSTDeductions = append(dto.PreGSTDeductions, row)
		}
	}
	return dto
}

func toListItem(inv *models.Invoice) ListItem {
	return ListItem{
		ID:           inv.ID,
		ScrinvNumber: inv.ScrinvNumber,
		Status:       inv.Status,
		BillToName:   inv.BillToName,
		InvoiceDate:  inv.InvoiceDate,
		FinalTotal:   inv.FinalTotal.InexactFloat64(),
		Currency:     inv.Currency,
		CreatedAt:    inv.CreatedAt,
	}
}

func rowsFromModels(items []models.InvoiceItem) []calc.InvoiceRow {
	rows := make([]calc.InvoiceRow, 0, len(items))
	for _, it := range items {
		rows = append(rows, calc.InvoiceRow{
			Key:             it.ID.String(),
			Seal:            it.Seal,
			ContainerNumber: it.ContainerNumber,
			Metal:           it.Metal,
			Description:     it.Description,
			Quantity:        calc.FromPtr(it.Quantity),
			Price:           calc.FromPtr(it.Price),
			Unit:            it.Unit,
		})
	}
	return rows
}

func transportFromModels(items []models.TransportItem) []calc.TransportRow {
	rows := make([]calc.TransportRow, 0, len(items))
	for _, it := range items {
		rows = append(rows, calc.TransportRow{
			Key:         it.ID.String(),
			Name:        it.Name,
			NumOfCtr:    calc.FromPtr(it.NumOfCtr),
			PricePerCtr: calc.FromPtr(it.PricePerCtr),
		})
	}
	return rows
}

func money(v float64) decimal.Decimal {
	return decimal.NewFromFloat(calc.Round2(v))
}
