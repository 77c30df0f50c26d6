package dockets

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/dmaher/scrapbill-backend/pkg/db/models"
	"github.com/dmaher/scrapbill-backend/pkg/enums"
	pkgpagination "github.com/dmaher/scrapbill-backend/pkg/pagination"
)

// Repository exposes docket persistence operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a docket repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

type listQuery struct {
	status     *enums.DocumentStatus
	docketType *enums.DocketType
	search     string
	limit      int
	cursor     *pkgpagination.Cursor
}

// inventoryQuery filters the docket items feeding the inventory report.
type inventoryQuery struct {
	from       *time.Time
	to         *time.Time
	metal      string
	docketType *enums.DocketType
}

// inventoryRow is one stored docket line with the fields the report needs.
type inventoryRow struct {
	Metal string
	Unit  string
	Gross *float64
	Tare  *float64
	Price *float64
}

// FindByID loads a docket with its items and deductions in form order.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Docket, error) {
	var d models.Docket
	err := r.db.WithContext(ctx).
		Preload("Items", orderByPosition).
		Preload("Deductions", orderByPosition).
		First(&d, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// Count reports how many dockets exist; the numbering index starts there.
func (r *Repository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&models.Docket{}).Count(&n).Error; err != nil {
		return 0, err
	}
	return n, nil
}

// NumberExists reports whether a docket already holds the number.
func (r *Repository) NumberExists(ctx context.Context, number string) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&models.Docket{}).
		Where("scrdkt_number = ?", number).
		Count(&n).Error
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// List returns dockets using cursor pagination.
func (r *Repository) List(ctx context.Context, opts listQuery) ([]models.Docket, error) {
	query := r.db.WithContext(ctx).Model(&models.Docket{})

	if opts.status != nil {
		query = query.Where("status = ?", *opts.status)
	}
	if opts.docketType != nil {
		query = query.Where("docket_type = ?", *opts.docketType)
	}
	if search := strings.TrimSpace(opts.search); search != "" {
		pattern := "%" + strings.ToLower(search) + "%"
		query = query.Where("LOWER(scrdkt_number) LIKE ? OR LOWER(customer_name) LIKE ?", pattern, pattern)
	}
	if opts.cursor != nil {
		query = query.Where("(created_at < ?) OR (created_at = ? AND id < ?)", opts.cursor.CreatedAt, opts.cursor.CreatedAt, opts.cursor.ID)
	}

	query = query.Order("created_at DESC").Order("id DESC").Limit(opts.limit)

	var rows []models.Docket
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// Save writes the docket header and replaces its child collections inside
// the supplied transaction.
func (r *Repository) Save(ctx context.Context, tx *gorm.DB, d *models.Docket) error {
	db := tx.WithContext(ctx)

	items := d.Items
	deductions := d.Deductions
	d.Items = nil
	d.Deductions = nil

	if err := db.Save(d).Error; err != nil {
		return err
	}

	if err := db.Where("docket_id = ?", d.ID).Delete(&models.DocketItem{}).Error; err != nil {
		return err
	}
	if err := db.Where("docket_id = ?", d.ID).Delete(&models.DocketDeduction{}).Error; err != nil {
		return err
	}

	if len(items) > 0 {
		if err := db.Create(&items).Error; err != nil {
			return err
		}
	}
	if len(deductions) > 0 {
		if err := db.Create(&deductions).Error; err != nil {
			return err
		}
	}

	d.Items = items
	d.Deductions = deductions
	return nil
}

// UpdateStatus sets the document status.
func (r *Repository) UpdateStatus(ctx context.Context, id uuid.UUID, status enums.DocumentStatus) error {
	result := r.db.WithContext(ctx).
		Model(&models.Docket{}).
		Where("id = ?", id).
		Update("status", status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// IncrementPrintCount bumps print_qty and returns the new value.
func (r *Repository) IncrementPrintCount(ctx context.Context, id uuid.UUID) (int, error) {
	result := r.db.WithContext(ctx).
		Model(&models.Docket{}).
		Where("id = ?", id).
		Update("print_qty", gorm.Expr("print_qty + 1"))
	if result.Error != nil {
		return 0, result.Error
	}
	if result.RowsAffected == 0 {
		return 0, gorm.ErrRecordNotFound
	}

	var qty int
	err := r.db.WithContext(ctx).
		Model(&models.Docket{}).
		Select("print_qty").
		Where("id = ?", id).
		Scan(&qty).Error
	return qty, err
}

// Delete removes a docket; children go with it via the cascade.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.Docket{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// DeleteStaleDrafts removes never-sent drafts last touched before the
// cutoff, returning the ids it deleted.
func (r *Repository) DeleteStaleDrafts(ctx context.Context, cutoff time.Time) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := r.db.WithContext(ctx).
		Model(&models.Docket{}).
		Select("id").
		Where("status = ? AND updated_at < ?", enums.DocumentStatusDraft, cutoff).
		Scan(&ids).Error
	if err != nil {
		return nil, err
	}

	for _, id := range ids {
		if err := r.Delete(ctx, id); err != nil {
			return nil, err
		}
	}
	return ids, nil
}

// InventoryRows returns the saved docket lines matching the report filters.
func (r *Repository) InventoryRows(ctx context.Context, opts inventoryQuery) ([]inventoryRow, error) {
	query := r.db.WithContext(ctx).
		Table("docket_items").
		Select("docket_items.metal, docket_items.unit, docket_items.gross, docket_items.tare, docket_items.price").
		Joins("JOIN dockets ON dockets.id = docket_items.docket_id")

	if opts.from != nil {
		query = query.Where("dockets.docket_date >= ?", *opts.from)
	}
	if opts.to != nil {
		query = query.Where("dockets.docket_date <= ?", *opts.to)
	}
	if metal := strings.TrimSpace(opts.metal); metal != "" {
		query = query.Where("LOWER(docket_items.metal) LIKE ?", "%"+strings.ToLower(metal)+"%")
	}
	if opts.docketType != nil {
		query = query.Where("dockets.docket_type = ?", *opts.docketType)
	}

	var rows []inventoryRow
	if err := query.Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func orderByPosition(db *gorm.DB) *gorm.DB {
	return db.Order("position ASC")
}
