package invoices

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

// Repository exposes invoice persistence operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs an invoice repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

type listQuery struct {
	status *enums.DocumentStatus
	search string
	limit  int
	cursor *pkgpagination.Cursor
}

// FindByID loads an invoice with its line items, transport items and
// deductions, all in form order.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Invoice, error) {
	var inv models.Invoice
	err := r.db.WithContext(ctx).
		Preload("Items", orderByPosition).
		Preload("TransportItems", orderByPosition).
		Preload("Deductions", orderByPosition).
		First(&inv, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &inv, nil
}

// LatestNumber returns the highest assigned invoice number, or "" when no
// invoice exists yet. Numbers are fixed width so lexical order is series
// order.
func (r *Repository) LatestNumber(ctx context.Context) (string, error) {
	var number string
	err := r.db.WithContext(ctx).
		Model(&models.Invoice{}).
		Select("scrinv_number").
		Order("scrinv_number DESC").
		Limit(1).
		Scan(&number).Error
	if err != nil {
		return "", err
	}
	return number, nil
}

// List returns invoices using cursor pagination.
func (r *Repository) List(ctx context.Context, opts listQuery) ([]models.Invoice, error) {
	query := r.db.WithContext(ctx).Model(&models.Invoice{})

	if opts.status != nil {
		query = query.Where("status = ?", *opts.status)
	}
	if search := strings.TrimSpace(opts.search); search != "" {
		pattern := "%" + strings.ToLower(search) + "%"
		query = query.Where("LOWER(scrinv_number) LIKE ? OR LOWER(bill_to_name) LIKE ?", pattern, pattern)
	}
	if opts.cursor != nil {
		query = query.Where("(created_at < ?) OR (created_at = ? AND id < ?)", opts.cursor.CreatedAt, opts.cursor.CreatedAt, opts.cursor.ID)
	}

	query = query.Order("created_at DESC").Order("id DESC").Limit(opts.limit)

	var rows []models.Invoice
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// Save writes the invoice header and replaces its child collections inside
// the supplied transaction.
func (r *Repository) Save(ctx context.Context, tx *gorm.DB, inv *models.Invoice) error {
	db := tx.WithContext(ctx)

	items := inv.Items
	transport := inv.TransportItems
	deductions := inv.Deductions
	inv.Items = nil
	inv.TransportItems = nil
	inv.Deductions = nil

	if err := db.Save(inv).Error; err != nil {
		return err
	}

	if err := db.Where("invoice_id = ?", inv.ID).Delete(&models.InvoiceItem{}).Error; err != nil {
		return err
	}
	if err := db.Where("invoice_id = ?", inv.ID).Delete(&models.TransportItem{}).Error; err != nil {
		return err
	}
	if err := db.Where("invoice_id = ?", inv.ID).Delete(&models.InvoiceDeduction{}).Error; err != nil {
		return err
	}

	if len(items) > 0 {
		if err := db.Create(&items).Error; err != nil {
			return err
		}
	}
	if len(transport) > 0 {
		if err := db.Create(&transport).Error; err != nil {
			return err
		}
	}
	if len(deductions) > 0 {
		if err := db.Create(&deductions).Error; err != nil {
			return err
		}
	}

	inv.Items = items
	inv.TransportItems = transport
	inv.Deductions = deductions
	return nil
}

// UpdateStatus sets the document status.
func (r *Repository) UpdateStatus(ctx context.Context, id uuid.UUID, status enums.DocumentStatus) error {
	result := r.db.WithContext(ctx).
		Model(&models.Invoice{}).
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

// Delete removes an invoice; children go with it via the cascade.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.Invoice{}, "id = ?", id)
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
		Model(&models.Invoice{}).
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

func orderByPosition(db *gorm.DB) *gorm.DB {
	return db.Order("position ASC")
}
