package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// GlobalSetting is a single key/value pair of business configuration, for
// example the default GST percentage or the trading name printed on
// documents.
type GlobalSetting struct {
	Key       string    `gorm:"column:key;primaryKey"`
	Value     string    `gorm:"column:value"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

// UnitOption is a selectable weight or quantity unit.
type UnitOption struct {
	ID       uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	Value    string    `gorm:"column:value;uniqueIndex;not null"`
	Label    string    `gorm:"column:label"`
	Position int       `gorm:"column:position;not null;default:0"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}

// CurrencyOption is a selectable billing currency.
type CurrencyOption struct {
	ID       uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	Code     string    `gorm:"column:code;uniqueIndex;not null"`
	Symbol   string    `gorm:"column:symbol"`
	Label    string    `gorm:"column:label"`
	Position int       `gorm:"column:position;not null;default:0"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}

// MetalOption is a known metal grade. Aliases hold alternate spellings so
// the inventory report can fold them into one bucket.
type MetalOption struct {
	ID      uuid.UUID      `gorm:"column:id;type:uuid;primaryKey"`
	Name    string         `gorm:"column:name;uniqueIndex;not null"`
	Aliases pq.StringArray `gorm:"column:aliases;type:text[]"`
	Active  bool           `gorm:"column:active;not null;default:true"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

// SavedCompany is a reusable party block that can be dropped into the
// bill-from or bill-to side of a document. Role is "from" or "to".
type SavedCompany struct {
	ID   uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	Role string    `gorm:"column:role;not null;index"`

	Name    string `gorm:"column:name;not null"`
	Phone   string `gorm:"column:phone"`
	Email   string `gorm:"column:email"`
	ABN     string `gorm:"column:abn"`
	Address string `gorm:"column:address"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

// BankAccount is a saved payment destination printed on invoices.
type BankAccount struct {
	ID uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`

	BankName      string `gorm:"column:bank_name"`
	AccountName   string `gorm:"column:account_name;not null"`
	BSB           string `gorm:"column:bsb"`
	AccountNumber string `gorm:"column:account_number"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
