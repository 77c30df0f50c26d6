package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/dmaher/scrapbill-backend/pkg/enums"
)

// InvoiceDeduction is a labelled amount subtracted from an invoice either
// before or after GST, depending on Stage.
type InvoiceDeduction struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	InvoiceID uuid.UUID `gorm:"column:invoice_id;type:uuid;not null;index"`
	Position  int       `gorm:"column:position;not null;default:0"`

	Stage  enums.DeductionStage `gorm:"column:stage;not null;default:'pre'"`
	Label  string               `gorm:"column:label"`
	Amount *float64             `gorm:"column:amount;type:numeric(14,4)"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

// DocketDeduction is the docket counterpart of InvoiceDeduction.
type DocketDeduction struct {
	ID       uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	DocketID uuid.UUID `gorm:"column:docket_id;type:uuid;not null;index"`
	Position int       `gorm:"column:position;not null;default:0"`

	Stage  enums.DeductionStage `gorm:"column:stage;not null;default:'pre'"`
	Label  string               `gorm:"column:label"`
	Amount *float64             `gorm:"column:amount;type:numeric(14,4)"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
