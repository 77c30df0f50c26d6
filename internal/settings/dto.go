package settings

import (
	"github.com/google/uuid"

	"github.com/dmaher/scrapbill-backend/pkg/db/models"
)

// SettingDTO is one key/value pair of business configuration.
type SettingDTO struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// UpsertSettingInput writes one configuration key.
type UpsertSettingInput struct {
	Key   string `json:"key" validate:"required,max=100"`
	Value string `json:"value" validate:"max=1000"`
}

type UnitDTO struct {
	ID       uuid.UUID `json:"id"`
	Value    string    `json:"value"`
	Label    string    `json:"label"`
	Position int       `json:"position"`
}

type CreateUnitInput struct {
	Value    string `json:"value" validate:"required,max=20"`
	Label    string `json:"label" validate:"max=100"`
	Position int    `json:"position" validate:"min=0"`
}

type CurrencyDTO struct {
	ID       uuid.UUID `json:"id"`
	Code     string    `json:"code"`
	Symbol   string    `json:"symbol"`
	Label    string    `json:"label"`
	Position int       `json:"position"`
}

type CreateCurrencyInput struct {
	Code     string `json:"code" validate:"required,len=3"`
	Symbol   string `json:"symbol" validate:"max=8"`
	Label    string `json:"label" validate:"max=100"`
	Position int    `json:"position" validate:"min=0"`
}

type MetalDTO struct {
	ID      uuid.UUID `json:"id"`
	Name    string    `json:"name"`
	Aliases []string  `json:"aliases"`
	Active  bool      `json:"active"`
}

type SaveMetalInput struct {
	ID      *uuid.UUID `json:"id"`
	Name    string     `json:"name" validate:"required,max=100"`
	Aliases []string   `json:"aliases" validate:"max=20,dive,max=100"`
	Active  bool       `json:"active"`
}

type CompanyDTO struct {
	ID      uuid.UUID `json:"id"`
	Role    string    `json:"role"`
	Name    string    `json:"name"`
	Phone   string    `json:"phone"`
	Email   string    `json:"email"`
	ABN     string    `json:"abn"`
	Address string    `json:"address"`
}

type SaveCompanyInput struct {
	ID      *uuid.UUID `json:"id"`
	Role    string     `json:"role" validate:"required,oneof=from to"`
	Name    string     `json:"name" validate:"required,max=200"`
	Phone   string     `json:"phone" validate:"max=50"`
	Email   string     `json:"email" validate:"omitempty,email"`
	ABN     string     `json:"abn" validate:"max=20"`
	Address string     `json:"address" validate:"max=500"`
}

type BankAccountDTO struct {
	ID            uuid.UUID `json:"id"`
	BankName      string    `json:"bankName"`
	AccountName   string    `json:"accountName"`
	BSB           string    `json:"bsb"`
	AccountNumber string    `json:"accountNumber"`
}

type SaveBankAccountInput struct {
	ID            *uuid.UUID `json:"id"`
	BankName      string     `json:"bankName" validate:"max=100"`
	AccountName   string     `json:"accountName" validate:"required,max=200"`
	BSB           string     `json:"bsb" validate:"max=10"`
	AccountNumber string     `json:"accountNumber" validate:"max=20"`
}

// Selectors bundles every dropdown list a document form needs into one
// payload so the UI can populate itself in a single round trip.
type Selectors struct {
	Settings     []SettingDTO     `json:"settings"`
	Units        []UnitDTO        `json:"units"`
	Currencies   []CurrencyDTO    `json:"currencies"`
	Metals       []MetalDTO       `json:"metals"`
	Companies    []CompanyDTO     `json:"companies"`
	BankAccounts []BankAccountDTO `json:"bankAccounts"`
}

func toSettingDTO(m models.GlobalSetting) SettingDTO {
	return SettingDTO{Key: m.Key, Value: m.Value}
}

func toUnitDTO(m models.UnitOption) UnitDTO {
	return UnitDTO{ID: m.ID, Value: m.Value, Label: m.Label, Position: m.Position}
}

func toCurrencyDTO(m models.CurrencyOption) CurrencyDTO {
	return CurrencyDTO{ID: m.ID, Code: m.Code, Symbol: m.Symbol, Label: m.Label, Position: m.Position}
}

func toMetalDTO(m models.MetalOption) MetalDTO {
	return MetalDTO{ID: m.ID, Name: m.Name, Aliases: append([]string{}, m.Aliases...), Active: m.Active}
}

func toCompanyDTO(m models.SavedCompany) CompanyDTO {
	return CompanyDTO{
		ID:      m.ID,
		Role:    m.Role,
		Name:    m.Name,
		Phone:   m.Phone,
		Email:   m.Email,
		ABN:     m.ABN,
		Address: m.Address,
	}
}

func toBankAccountDTO(m models.BankAccount) BankAccountDTO {
	return BankAccountDTO{
		ID:            m.ID,
		BankName:      m.BankName,
		AccountName:   m.AccountName,
		BSB:           m.BSB,
		AccountNumber: m.AccountNumber,
	}
}
