package models

import (
	"time"

	"github.com/google/uuid"
)

// TransportItem is a freight line on a container invoice, priced per
// container count.
type TransportItem struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	InvoiceID uuid.UUID `gorm:"column:invoice_id;type:uuid;not null;index"`
	Position  int       `gorm:"column:position;not null;default:0"`

	Name        string   `gorm:"column:name"`
	NumOfCtr    *float64 `gorm:"column:num_of_ctr;type:numeric(14,4)"`
	PricePerCtr *float64 `gorm:"column:price_per_ctr;type:numeric(14,4)"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
