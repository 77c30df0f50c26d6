package settings

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/dmaher/scrapbill-backend/pkg/db"
	"github.com/dmaher/scrapbill-backend/pkg/db/models"
	pkgerrors "github.com/dmaher/scrapbill-backend/pkg/errors"
)

type settingsRepository interface {
	AllSettings(ctx context.Context) ([]models.GlobalSetting, error)
	UpsertSetting(ctx context.Context, row *models.GlobalSetting) error
	ListUnits(ctx context.Context) ([]models.UnitOption, error)
	CreateUnit(ctx context.Context, row *models.UnitOption) error
	DeleteUnit(ctx context.Context, id uuid.UUID) error
	ListCurrencies(ctx context.Context) ([]models.CurrencyOption, error)
	CreateCurrency(ctx context.Context, row *models.CurrencyOption) error
	DeleteCurrency(ctx context.Context, id uuid.UUID) error
	ListMetals(ctx context.Context, activeOnly bool) ([]models.MetalOption, error)
	CreateMetal(ctx context.Context, row *models.MetalOption) error
	UpdateMetal(ctx context.Context, row *models.MetalOption) error
	ListCompanies(ctx context.Context, role string) ([]models.SavedCompany, error)
	SaveCompany(ctx context.Context, row *models.SavedCompany) error
	DeleteCompany(ctx context.Context, id uuid.UUID) error
	ListBankAccounts(ctx context.Context) ([]models.BankAccount, error)
	SaveBankAccount(ctx context.Context, row *models.BankAccount) error
	DeleteBankAccount(ctx context.Context, id uuid.UUID) error
}

// Service manages business configuration and the reusable option lists
// behind the document form dropdowns.
type Service interface {
	Settings(ctx context.Context) ([]SettingDTO, error)
	UpsertSetting(ctx context.Context, input UpsertSettingInput) (*SettingDTO, error)
	Units(ctx context.Context) ([]UnitDTO, error)
	CreateUnit(ctx context.Context, input CreateUnitInput) (*UnitDTO, error)
	DeleteUnit(ctx context.Context, id uuid.UUID) error
	Currencies(ctx context.Context) ([]CurrencyDTO, error)
	CreateCurrency(ctx context.Context, input CreateCurrencyInput) (*CurrencyDTO, error)
	DeleteCurrency(ctx context.Context, id uuid.UUID) error
	Metals(ctx context.Context, activeOnly bool) ([]MetalDTO, error)
	SaveMetal(ctx context.Context, input SaveMetalInput) (*MetalDTO, error)
	Companies(ctx context.Context, role string) ([]CompanyDTO, error)
	SaveCompany(ctx context.Context, input SaveCompanyInput) (*CompanyDTO, error)
	DeleteCompany(ctx context.Context, id uuid.UUID) error
	BankAccounts(ctx context.Context) ([]BankAccountDTO, error)
	SaveBankAccount(ctx context.Context, input SaveBankAccountInput) (*BankAccountDTO, error)
	DeleteBankAccount(ctx context.Context, id uuid.UUID) error
	FormSelectors(ctx context.Context) (*Selectors, error)
}

type service struct {
	repo settingsRepository
}

// NewService builds a settings service backed by the provided repository.
func NewService(repo settingsRepository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("settings repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) Settings(ctx context.Context) ([]SettingDTO, error) {
	rows, err := s.repo.AllSettings(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list settings")
	}
	out := make([]SettingDTO, 0, len(rows))
	for _, row := range rows {
		out = append(out, toSettingDTO(row))
	}
	return out, nil
}

func (s *service) UpsertSetting(ctx context.Context, input UpsertSettingInput) (*SettingDTO, error) {
	key := strings.TrimSpace(input.Key)
	if key == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "setting key required")
	}
	row := models.GlobalSetting{Key: key, Value: input.Value}
	if err := s.repo.UpsertSetting(ctx, &row); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "upsert setting")
	}
	dto := toSettingDTO(row)
	return &dto, nil
}

func (s *service) Units(ctx context.Context) ([]UnitDTO, error) {
	rows, err := s.repo.ListUnits(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list units")
	}
	out := make([]UnitDTO, 0, len(rows))
	for _, row := range rows {
		out = append(out, toUnitDTO(row))
	}
	return out, nil
}

func (s *service) CreateUnit(ctx context.Context, input CreateUnitInput) (*UnitDTO, error) {
	value := strings.TrimSpace(input.Value)
	if value == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "unit value required")
	}
	row := models.UnitOption{
		ID:       uuid.New(),
		Value:    value,
		Label:    input.Label,
		Position: input.Position,
	}
	if err := s.repo.CreateUnit(ctx, &row); err != nil {
		if db.IsUniqueViolation(err) {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "unit already exists")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create unit")
	}
	dto := toUnitDTO(row)
	return &dto, nil
}

func (s *service) DeleteUnit(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.DeleteUnit(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "unit not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "delete unit")
	}
	return nil
}

func (s *service) Currencies(ctx context.Context) ([]CurrencyDTO, error) {
	rows, err := s.repo.ListCurrencies(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list currencies")
	}
	out := make([]CurrencyDTO, 0, len(rows))
	for _, row := range rows {
		out = append(out, toCurrencyDTO(row))
	}
	return out, nil
}

func (s *service) CreateCurrency(ctx context.Context, input CreateCurrencyInput) (*CurrencyDTO, error) {
	code := strings.ToUpper(strings.TrimSpace(input.Code))
	if len(code) != 3 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "currency code must be three letters")
	}
	row := models.CurrencyOption{
		ID:       uuid.New(),
		Code:     code,
		Symbol:   input.Symbol,
		Label:    input.Label,
		Position: input.Position,
	}
	if err := s.repo.CreateCurrency(ctx, &row); err != nil {
		if db.IsUniqueViolation(err) {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "currency already exists")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create currency")
	}
	dto := toCurrencyDTO(row)
	return &dto, nil
}

func (s *service) DeleteCurrency(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.DeleteCurrency(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "currency not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "delete currency")
	}
	return nil
}

func (s *service) Metals(ctx context.Context, activeOnly bool) ([]MetalDTO, error) {
	rows, err := s.repo.ListMetals(ctx, activeOnly)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list metals")
	}
	out := make([]MetalDTO, 0, len(rows))
	for _, row := range rows {
		out = append(out, toMetalDTO(row))
	}
	return out, nil
}

func (s *service) SaveMetal(ctx context.Context, input SaveMetalInput) (*MetalDTO, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "metal name required")
	}
	row := models.MetalOption{
		Name:    name,
		Aliases: normalizeAliases(input.Aliases),
		Active:  input.Active,
	}
	if input.ID == nil {
		row.ID = uuid.New()
		if err := s.repo.CreateMetal(ctx, &row); err != nil {
			if db.IsUniqueViolation(err) {
				return nil, pkgerrors.New(pkgerrors.CodeConflict, "metal already exists")
			}
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create metal")
		}
	} else {
		row.ID = *input.ID
		if err := s.repo.UpdateMetal(ctx, &row); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, pkgerrors.New(pkgerrors.CodeNotFound, "metal not found")
			}
			if db.IsUniqueViolation(err) {
				return nil, pkgerrors.New(pkgerrors.CodeConflict, "metal already exists")
			}
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update metal")
		}
	}
	dto := toMetalDTO(row)
	return &dto, nil
}

func (s *service) Companies(ctx context.Context, role string) ([]CompanyDTO, error) {
	if role != "" && role != "from" && role != "to" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "company role must be from or to")
	}
	rows, err := s.repo.ListCompanies(ctx, role)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list companies")
	}
	out := make([]CompanyDTO, 0, len(rows))
	for _, row := range rows {
		out = append(out, toCompanyDTO(row))
	}
	return out, nil
}

func (s *service) SaveCompany(ctx context.Context, input SaveCompanyInput) (*CompanyDTO, error) {
	if input.Role != "from" && input.Role != "to" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "company role must be from or to")
	}
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "company name required")
	}
	row := models.SavedCompany{
		Role:    input.Role,
		Name:    name,
		Phone:   input.Phone,
		Email:   input.Email,
		ABN:     input.ABN,
		Address: input.Address,
	}
	if input.ID == nil {
		row.ID = uuid.New()
	} else {
		row.ID = *input.ID
	}
	if err := s.repo.SaveCompany(ctx, &row); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "save company")
	}
	dto := toCompanyDTO(row)
	return &dto, nil
}

func (s *service) DeleteCompany(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.DeleteCompany(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "company not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "delete company")
	}
	return nil
}

func (s *service) BankAccounts(ctx context.Context) ([]BankAccountDTO, error) {
	rows, err := s.repo.ListBankAccounts(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list bank accounts")
	}
	out := make([]BankAccountDTO, 0, len(rows))
	for _, row := range rows {
		out = append(out, toBankAccountDTO(row))
	}
	return out, nil
}

func (s *service) SaveBankAccount(ctx context.Context, input SaveBankAccountInput) (*BankAccountDTO, error) {
	accountName := strings.TrimSpace(input.AccountName)
	if accountName == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "account name required")
	}
	row := models.BankAccount{
		BankName:      input.BankName,
		AccountName:   accountName,
		BSB:           input.BSB,
		AccountNumber: input.AccountNumber,
	}
	if input.ID == nil {
		row.ID = uuid.New()
	} else {
		row.ID = *input.ID
	}
	if err := s.repo.SaveBankAccount(ctx, &row); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "save bank account")
	}
	dto := toBankAccountDTO(row)
	return &dto, nil
}

func (s *service) DeleteBankAccount(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.DeleteBankAccount(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "bank account not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "delete bank account")
	}
	return nil
}

func (s *service) FormSelectors(ctx context.Context) (*Selectors, error) {
	out := Selectors{}
	var err error
	if out.Settings, err = s.Settings(ctx); err != nil {
		return nil, err
	}
	if out.Units, err = s.Units(ctx); err != nil {
		return nil, err
	}
	if out.Currencies, err = s.Currencies(ctx); err != nil {
		return nil, err
	}
	if out.Metals, err = s.Metals(ctx, true); err != nil {
		return nil, err
	}
	if out.Companies, err = s.Companies(ctx, ""); err != nil {
		return nil, err
	}
	if out.BankAccounts, err = s.BankAccounts(ctx); err != nil {
		return nil, err
	}
	return &out, nil
}

func normalizeAliases(in []string) []string {
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, alias := range in {
		alias = strings.TrimSpace(alias)
		if alias == "" {
			continue
		}
		key := strings.ToLower(alias)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, alias)
	}
	return out
}
