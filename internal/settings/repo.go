package settings

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/dmaher/scrapbill-backend/pkg/db/models"
)

// Repository persists business configuration and the option lists the
// document forms draw their dropdowns from.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) (*Repository, error) {
	if db == nil {
		return nil, fmt.Errorf("gorm db required")
	}
	return &Repository{db: db}, nil
}

func (r *Repository) AllSettings(ctx context.Context) ([]models.GlobalSetting, error) {
	var rows []models.GlobalSetting
	if err := r.db.WithContext(ctx).Order("key ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *Repository) UpsertSetting(ctx context.Context, row *models.GlobalSetting) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
		}).
		Create(row).Error
}

func (r *Repository) ListUnits(ctx context.Context) ([]models.UnitOption, error) {
	var rows []models.UnitOption
	if err := r.db.WithContext(ctx).Order("position ASC, value ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *Repository) CreateUnit(ctx context.Context, row *models.UnitOption) error {
	return r.db.WithContext(ctx).Create(row).Error
}

func (r *Repository) DeleteUnit(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.UnitOption{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *Repository) ListCurrencies(ctx context.Context) ([]models.CurrencyOption, error) {
	var rows []models.CurrencyOption
	if err := r.db.WithContext(ctx).Order("position ASC, code ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *Repository) CreateCurrency(ctx context.Context, row *models.CurrencyOption) error {
	return r.db.WithContext(ctx).Create(row).Error
}

func (r *Repository) DeleteCurrency(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.CurrencyOption{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *Repository) ListMetals(ctx context.Context, activeOnly bool) ([]models.MetalOption, error) {
	q := r.db.WithContext(ctx).Order("name ASC")
	if activeOnly {
		q = q.Where("active = ?", true)
	}
	var rows []models.MetalOption
	if err := q.Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *Repository) CreateMetal(ctx context.Context, row *models.MetalOption) error {
	return r.db.WithContext(ctx).Create(row).Error
}

func (r *Repository) UpdateMetal(ctx context.Context, row *models.MetalOption) error {
	res := r.db.WithContext(ctx).Model(&models.MetalOption{}).
		Where("id = ?", row.ID).
		Updates(map[string]any{
			"name":    row.Name,
			"aliases": row.Aliases,
			"active":  row.Active,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *Repository) ListCompanies(ctx context.Context, role string) ([]models.SavedCompany, error) {
	q := r.db.WithContext(ctx).Order("name ASC")
	if role != "" {
		q = q.Where("role = ?", role)
	}
	var rows []models.SavedCompany
	if err := q.Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *Repository) SaveCompany(ctx context.Context, row *models.SavedCompany) error {
	return r.db.WithContext(ctx).Save(row).Error
}

func (r *Repository) DeleteCompany(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.SavedCompany{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *Repository) ListBankAccounts(ctx context.Context) ([]models.BankAccount, error) {
	var rows []models.BankAccount
	if err := r.db.WithContext(ctx).Order("account_name ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *Repository) SaveBankAccount(ctx context.Context, row *models.BankAccount) error {
	return r.db.WithContext(ctx).Save(row).Error
}

func (r *Repository) DeleteBankAccount(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.BankAccount{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
