package dockets

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/dmaher/scrapbill-backend/internal/calc"
	"github.com/dmaher/scrapbill-backend/pkg/db/models"
	"github.com/dmaher/scrapbill-backend/pkg/enums"
)

// Company is the weighbridge operator block printed on a docket.
type Company struct {
	Name    string `json:"name" validate:"omitempty,max=200"`
	Phone   string `json:"phone" validate:"omitempty,max=50"`
	Email   string `json:"email" validate:"omitempty,email"`
	ABN     string `json:"abn" validate:"omitempty,max=20"`
	Address string `json:"address" validate:"omitempty,max=500"`
}

// Customer identifies who delivered or received the metal.
type Customer struct {
	Name    string     `json:"name" validate:"omitempty,max=200"`
	Address string     `json:"address" validate:"omitempty,max=500"`
	Phone   string     `json:"phone" validate:"omitempty,max=50"`
	ABN     string     `json:"abn" validate:"omitempty,max=20"`
	License string     `json:"license" validate:"omitempty,max=50"`
	Rego    string     `json:"rego" validate:"omitempty,max=20"`
	DOB     *time.Time `json:"dob"`
	PayID   string     `json:"payid" validate:"omitempty,max=100"`
}

// SaveDraftInput is the full editable state of a docket form at save time.
// A nil ID creates a new docket and assigns the next number.
type SaveDraftInput struct {
	ID *uuid.UUID `json:"id" validate:"omitempty"`

	DocketType enums.DocketType `json:"docketType" validate:"omitempty"`
	Currency   enums.Currency   `json:"currency" validate:"omitempty"`

	IncludeGST    calc.Bool   `json:"includeGst"`
	GSTPercentage calc.Number `json:"gstPercentage"`
	DocketDate    *time.Time  `json:"docketDate"`
	DocketTime    string      `json:"docketTime" validate:"omitempty,max=20"`

	Company  Company  `json:"company"`
	Customer Customer `json:"customer"`

	BSB           string `json:"bsb" validate:"omitempty,max=10"`
	AccountNumber string `json:"accountNumber" validate:"omitempty,max=20"`
	Notes         string `json:"notes" validate:"omitempty,max=2000"`

	Items             []calc.DocketRow    `json:"items" validate:"max=200,dive"`
	PreGSTDeductions  []calc.DeductionRow `json:"preGstDeductions" validate:"max=50,dive"`
	PostGSTDeductions []calc.DeductionRow `json:"postGstDeductions" validate:"max=50,dive"`
}

// DocketDTO is the outward shape of a stored docket.
type DocketDTO struct {
	ID           uuid.UUID            `json:"id"`
	ScrdktNumber string               `json:"scrdktNumber"`
	Status       enums.DocumentStatus `json:"status"`
	DocketType   enums.DocketType     `json:"docketType"`
	Currency     enums.Currency       `json:"currency"`

	IncludeGST    bool       `json:"includeGst"`
	GSTPercentage float64    `json:"gstPercentage"`
	DocketDate    *time.Time `json:"docketDate,omitempty"`
	DocketTime    string     `json:"docketTime,omitempty"`
	PrintQty      int        `json:"printQty"`

	Company  Company  `json:"company"`
	Customer Customer `json:"customer"`

	BSB           string `json:"bsb,omitempty"`
	AccountNumber string `json:"accountNumber,omitempty"`
	Notes         string `json:"notes,omitempty"`

	Items             []calc.DocketRow    `json:"items"`
	PreGSTDeductions  []calc.DeductionRow `json:"preGstDeductions"`
	PostGSTDeductions []calc.DeductionRow `json:"postGstDeductions"`

	ItemsTotal            float64 `json:"itemsTotal"`
	PreGSTDeductionTotal  float64 `json:"preGstDeductionTotal"`
	PostGSTDeductionTotal float64 `json:"postGstDeductionTotal"`
	GrossTotal            float64 `json:"grossTotal"`
	GSTAmount             float64 `json:"gstAmount"`
	FinalTotal            float64 `json:"finalTotal"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ListParams filters and paginates docket listings.
type ListParams struct {
	Status     *enums.DocumentStatus
	DocketType *enums.DocketType
	Search     string
	Limit      int
	Cursor     string
}

// ListItem is the trimmed row shape used by docket listings.
type ListItem struct {
	ID           uuid.UUID            `json:"id"`
	ScrdktNumber string               `json:"scrdktNumber"`
	Status       enums.DocumentStatus `json:"status"`
	DocketType   enums.DocketType     `json:"docketType"`
	CustomerName string               `json:"customerName"`
	DocketDate   *time.Time           `json:"docketDate,omitempty"`
	FinalTotal   float64              `json:"finalTotal"`
	Currency     enums.Currency       `json:"currency"`
	CreatedAt    time.Time            `json:"createdAt"`
}

// ListResult carries one page of dockets plus the follow-on cursor.
type ListResult struct {
	Items      []ListItem
	NextCursor string
}

func toDTO(d *models.Docket) *DocketDTO {
	dto := &DocketDTO{
		ID:            d.ID,
		ScrdktNumber:  d.ScrdktNumber,
		Status:        d.Status,
		DocketType:    d.DocketType,
		Currency:      d.Currency,
		IncludeGST:    d.IncludeGST,
		GSTPercentage: d.GSTPercentage,
		DocketDate:    d.DocketDate,
		DocketTime:    d.DocketTime,
		PrintQty:      d.PrintQty,
		Company: Company{
			Name:    d.CompanyName,
			Phone:   d.CompanyPhone,
			Email:   d.CompanyEmail,
			ABN:     d.CompanyABN,
			Address: d.CompanyAddress,
		},
		Customer: Customer{
			Name:    d.CustomerName,
			Address: d.CustomerAddress,
			Phone:   d.CustomerPhone,
			ABN:     d.CustomerABN,
			License: d.CustomerLicense,
			Rego:    d.CustomerRego,
			DOB:     d.CustomerDOB,
			PayID:   d.CustomerPayID,
		},
		BSB:                   d.BSB,
		AccountNumber:         d.AccountNumber,
		Notes:                 d.Notes,
		ItemsTotal:            d.ItemsTotal.InexactFloat64(),
		PreGSTDeductionTotal:  d.PreGSTDeductionTotal.InexactFloat64(),
		PostGSTDeductionTotal: d.PostGSTDeductionTotal.InexactFloat64(),
		GrossTotal:            d.GrossTotal.InexactFloat64(),
		GSTAmount:             d.GSTAmount.InexactFloat64(),
		FinalTotal:            d.FinalTotal.InexactFloat64(),
		CreatedAt:             d.CreatedAt,
		UpdatedAt:             d.UpdatedAt,
	}

	dto.Items = calc.DocketItemTotals(rowsFromModels(d.Items))
	for _, ded := range d.Deductions {
		row := calc.DeductionRow{Key: ded.ID.String(), Label: ded.Label, Amount: calc.FromPtr(ded.Amount)}
		if ded.Stage == enums.DeductionStagePost {
			dto.PostGSTDeductions = append(dto.PostGSTDeductions, row)
		} else {
			dto.PreGSTDeductions = append(dto.PreGSTDeductions, row)
		}
	}
	return dto
}

func toListItem(d *models.Docket) ListItem {
	return ListItem{
		ID:           d.ID,
		ScrdktNumber: d.ScrdktNumber,
		Status:       d.Status,
		DocketType:   d.DocketType,
		CustomerName: d.CustomerName,
		DocketDate:   d.DocketDate,
		FinalTotal:   d.FinalTotal.InexactFloat64(),
		Currency:     d.Currency,
		CreatedAt:    d.CreatedAt,
	}
}

func rowsFromModels(items []models.DocketItem) []calc.DocketRow {
	rows := make([]calc.DocketRow, 0, len(items))
	for _, it := range items {
		rows = append(rows, calc.DocketRow{
			Key:   it.ID.String(),
			Metal: it.Metal,
			Notes: it.RowNotes,
			Gross: calc.FromPtr(it.Gross),
			Tare:  calc.FromPtr(it.Tare),
			Price: calc.FromPtr(it.Price),
			Unit:  it.Unit,
		})
	}
	return rows
}

func money(v float64) decimal.Decimal {
	return decimal.NewFromFloat(calc.Round2(v))
}
