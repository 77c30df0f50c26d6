package models

import (
	"time"

	"github.com/google/uuid"
)

// InvoiceItem is one metal line on an invoice. Quantity and Price stay
// nullable so half-filled rows survive a draft save; a row only contributes
// to the totals once both are present.
type InvoiceItem struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	InvoiceID uuid.UUID `gorm:"column:invoice_id;type:uuid;not null;index"`
	Position  int       `gorm:"column:position;not null;default:0"`

	Seal            string   `gorm:"column:seal"`
	ContainerNumber string   `gorm:"column:container_number"`
	Metal           string   `gorm:"column:metal"`
	Description     string   `gorm:"column:description"`
	Quantity        *float64 `gorm:"column:quantity;type:numeric(14,4)"`
	Price           *float64 `gorm:"column:price;type:numeric(14,4)"`
	Unit            string   `gorm:"column:unit"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
