package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/dmaher/scrapbill-backend/pkg/enums"
)

// Invoice is the persisted form of a scrap-metal sales invoice. Monetary
// aggregates are recomputed from the line items on every save and stored for
// list views and rendered documents.
type Invoice struct {
	ID           uuid.UUID            `gorm:"column:id;type:uuid;primaryKey"`
	ScrinvNumber string               `gorm:"column:scrinv_number;uniqueIndex;not null"`
	Status       enums.DocumentStatus `gorm:"column:status;not null;default:'Draft'"`
	InvoiceType  enums.InvoiceType    `gorm:"column:invoice_type;not null;default:'Container'"`
	Currency     enums.Currency       `gorm:"column:currency;not null;default:'AUD'"`

	IncludeGST    bool       `gorm:"column:include_gst;not null;default:true"`
	ShowTransport bool       `gorm:"column:show_transport;not null;default:false"`
	InvoiceDate   *time.Time `gorm:"column:invoice_date;type:date"`

	BillFromName    string `gorm:"column:bill_from_name"`
	BillFromPhone   string `gorm:"column:bill_from_phone"`
	BillFromEmail   string `gorm:"column:bill_from_email"`
	BillFromABN     string `gorm:"column:bill_from_abn"`
	BillFromAddress string `gorm:"column:bill_from_address"`

	BillToName    string `gorm:"column:bill_to_name"`
	BillToPhone   string `gorm:"column:bill_to_phone"`
	BillToEmail   string `gorm:"column:bill_to_email"`
	BillToABN     string `gorm:"column:bill_to_abn"`
	BillToAddress string `gorm:"column:bill_to_address"`

	BankName      string `gorm:"column:bank_name"`
	AccountName   string `gorm:"column:account_name"`
	BSB           string `gorm:"column:bsb"`
	AccountNumber string `gorm:"column:account_number"`

	Notes        string `gorm:"column:notes"`
	PrivateNotes string `gorm:"column:private_notes"`

	ItemsTotal            decimal.Decimal `gorm:"column:items_total;type:numeric(12,2);not null;default:0"`
	TransportTotal        decimal.Decimal `gorm:"column:transport_total;type:numeric(12,2);not null;default:0"`
	PreGSTDeductionTotal  decimal.Decimal `gorm:"column:pre_gst_deduction_total;type:numeric(12,2);not null;default:0"`
	PostGSTDeductionTotal decimal.Decimal `gorm:"column:post_gst_deduction_total;type:numeric(12,2);not null;default:0"`
	GrossTotal            decimal.Decimal `gorm:"column:gross_total;type:numeric(12,2);not null;default:0"`
	GSTAmount             decimal.Decimal `gorm:"column:gst_amount;type:numeric(12,2);not null;default:0"`
	FinalTotal            decimal.Decimal `gorm:"column:final_total;type:numeric(12,2);not null;default:0"`

	Items          []InvoiceItem      `gorm:"foreignKey:InvoiceID;constraint:OnDelete:CASCADE"`
	TransportItems []TransportItem    `gorm:"foreignKey:InvoiceID;constraint:OnDelete:CASCADE"`
	Deductions     []InvoiceDeduction `gorm:"foreignKey:InvoiceID;constraint:OnDelete:CASCADE"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
