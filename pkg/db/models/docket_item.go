package models

import (
	"time"

	"github.com/google/uuid"
)

// DocketItem is one weighed line on a docket. Net weight is derived from
// gross minus tare and never stored.
type DocketItem struct {
	ID       uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	DocketID uuid.UUID `gorm:"column:docket_id;type:uuid;not null;index"`
	Position int       `gorm:"column:position;not null;default:0"`

	Metal    string   `gorm:"column:metal"`
	RowNotes string   `gorm:"column:row_notes"`
	Gross    *float64 `gorm:"column:gross;type:numeric(14,4)"`
	Tare     *float64 `gorm:"column:tare;type:numeric(14,4)"`
	Price    *float64 `gorm:"column:price;type:numeric(14,4)"`
	Unit     string   `gorm:"column:unit"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
