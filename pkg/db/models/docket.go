package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/dmaher/scrapbill-backend/pkg/enums"
)

// Docket is a persisted weighbridge docket. Unlike invoices the GST rate is
// stored per document and GST is off unless explicitly enabled.
type Docket struct {
	ID           uuid.UUID            `gorm:"column:id;type:uuid;primaryKey"`
	ScrdktNumber string               `gorm:"column:scrdkt_number;uniqueIndex;not null"`
	Status       enums.DocumentStatus `gorm:"column:status;not null;default:'Draft'"`
	DocketType   enums.DocketType     `gorm:"column:docket_type;not null;default:'Supplier'"`
	Currency     enums.Currency       `gorm:"column:currency;not null;default:'AUD'"`

	IncludeGST    bool       `gorm:"column:include_gst;not null;default:false"`
	GSTPercentage float64    `gorm:"column:gst_percentage;type:numeric(6,3);not null;default:10"`
	DocketDate    *time.Time `gorm:"column:docket_date;type:date"`
	DocketTime    string     `gorm:"column:docket_time"`
	PrintQty      int        `gorm:"column:print_qty;not null;default:0"`

	CompanyName    string `gorm:"column:company_name"`
	CompanyPhone   string `gorm:"column:company_phone"`
	CompanyEmail   string `gorm:"column:company_email"`
	CompanyABN     string `gorm:"column:company_abn"`
	CompanyAddress string `gorm:"column:company_address"`

	CustomerName    string     `gorm:"column:customer_name"`
	CustomerAddress string     `gorm:"column:customer_address"`
	CustomerPhone   string     `gorm:"column:customer_phone"`
	CustomerABN     string     `gorm:"column:customer_abn"`
	CustomerLicense string     `gorm:"column:customer_license"`
	CustomerRego    string     `gorm:"column:customer_rego"`
	CustomerDOB     *time.Time `gorm:"column:customer_dob;type:date"`
	CustomerPayID   string     `gorm:"column:customer_payid"`

	BSB           string `gorm:"column:bsb"`
	AccountNumber string `gorm:"column:account_number"`

	Notes string `gorm:"column:notes"`

	ItemsTotal            decimal.Decimal `gorm:"column:items_total;type:numeric(12,2);not null;default:0"`
	PreGSTDeductionTotal  decimal.Decimal `gorm:"column:pre_gst_deduction_total;type:numeric(12,2);not null;default:0"`
	PostGSTDeductionTotal decimal.Decimal `gorm:"column:post_gst_deduction_total;type:numeric(12,2);not null;default:0"`
	GrossTotal            decimal.Decimal `gorm:"column:gross_total;type:numeric(12,2);not null;default:0"`
	GSTAmount             decimal.Decimal `gorm:"column:gst_amount;type:numeric(12,2);not null;default:0"`
	FinalTotal            decimal.Decimal `gorm:"column:final_total;type:numeric(12,2);not null;default:0"`

	Items      []DocketItem      `gorm:"foreignKey:DocketID;constraint:OnDelete:CASCADE"`
	Deductions []DocketDeduction `gorm:"foreignKey:DocketID;constraint:OnDelete:CASCADE"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
