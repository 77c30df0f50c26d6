package invoices

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/dmaher/scrapbill-backend/pkg/db/models"
	"github.com/dmaher/scrapbill-backend/pkg/enums"
	pkgpagination "github.com/dmaher/scrapbill-backend/pkg/pagination"
)

func setupInvoicesTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)

	invoices := `
CREATE TABLE IF NOT EXISTS invoices (
  id TEXT PRIMARY KEY,
  scrinv_number TEXT NOT NULL UNIQUE,
  status TEXT NOT NULL DEFAULT 'Draft',
  invoice_type TEXT NOT NULL DEFAULT 'Container',
  currency TEXT NOT NULL DEFAULT 'AUD',
  include_gst INTEGER NOT NULL DEFAULT 1,
  show_transport INTEGER NOT NULL DEFAULT 0,
  invoice_date DATE,
  bill_from_name TEXT,
  bill_from_phone TEXT,
  bill_from_email TEXT,
  bill_from_abn TEXT,
  bill_from_address TEXT,
  bill_to_name TEXT,
  bill_to_phone TEXT,
  bill_to_email TEXT,
  bill_to_abn TEXT,
  bill_to_address TEXT,
  bank_name TEXT,
  account_name TEXT,
  bsb TEXT,
  account_number TEXT,
  notes TEXT,
  private_notes TEXT,
  items_total NUMERIC NOT NULL DEFAULT 0,
  transport_total NUMERIC NOT NULL DEFAULT 0,
  pre_gst_deduction_total NUMERIC NOT NULL DEFAULT 0,
  post_gst_deduction_total NUMERIC NOT NULL DEFAULT 0,
  gross_total NUMERIC NOT NULL DEFAULT 0,
  gst_amount NUMERIC NOT NULL DEFAULT 0,
  final_total NUMERIC NOT NULL DEFAULT 0,
  created_at DATETIME,
  updated_at DATETIME
);`
	invoiceItems := `
CREATE TABLE IF NOT EXISTS invoice_items (
  id TEXT PRIMARY KEY,
  invoice_id TEXT NOT NULL,
  position INTEGER NOT NULL DEFAULT 0,
  seal TEXT,
  container_number TEXT,
  metal TEXT,
  description TEXT,
  quantity NUMERIC,
  price NUMERIC,
  unit TEXT,
  created_at DATETIME,
  updated_at DATETIME
);`
	transportItems := `
CREATE TABLE IF NOT EXISTS transport_items (
  id TEXT PRIMARY KEY,
  invoice_id TEXT NOT NULL,
  position INTEGER NOT NULL DEFAULT 0,
  name TEXT,
  num_of_ctr NUMERIC,
  price_per_ctr NUMERIC,
  created_at DATETIME,
  updated_at DATETIME
);`
	deductions := `
CREATE TABLE IF NOT EXISTS invoice_deductions (
  id TEXT PRIMARY KEY,
  invoice_id TEXT NOT NULL,
  position INTEGER NOT NULL DEFAULT 0,
  stage TEXT NOT NULL DEFAULT 'pre',
  label TEXT,
  amount NUMERIC,
  created_at DATETIME,
  updated_at DATETIME
);`
	for _, ddl := range []string{invoices, invoiceItems, transportItems, deductions} {
		require.NoError(t, db.Exec(ddl).Error)
	}
	return db
}

func floatPtr(v float64) *float64 { return &v }

func newTestInvoice(number string) *models.Invoice {
	return &models.Invoice{
		ID:           uuid.New(),
		ScrinvNumber: number,
		Status:       enums.DocumentStatusDraft,
		InvoiceType:  enums.InvoiceTypeContainer,
		Currency:     enums.CurrencyAUD,
		IncludeGST:   true,
		BillToName:   "Apex Metals",
	}
}

func TestRepositorySaveReplacesChildCollections(t *testing.T) {
	db := setupInvoicesTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	inv := newTestInvoice("A0001")
	inv.Items = []models.InvoiceItem{
		{ID: uuid.New(), InvoiceID: inv.ID, Position: 0, Metal: "Copper", Quantity: floatPtr(10), Price: floatPtr(2)},
		{ID: uuid.New(), InvoiceID: inv.ID, Position: 1, Metal: "Steel", Quantity: floatPtr(5), Price: floatPtr(1)},
	}
	inv.Deductions = []models.InvoiceDeduction{
		{ID: uuid.New(), InvoiceID: inv.ID, Stage: enums.DeductionStagePre, Label: "Freight", Amount: floatPtr(3)},
	}
	require.NoError(t, repo.Save(ctx, db, inv))

	inv.Items = []models.InvoiceItem{
		{ID: uuid.New(), InvoiceID: inv.ID, Position: 0, Metal: "Brass", Quantity: floatPtr(7), Price: floatPtr(4)},
	}
	inv.Deductions = nil
	require.NoError(t, repo.Save(ctx, db, inv))

	loaded, err := repo.FindByID(ctx, inv.ID)
	require.NoError(t, err)
	require.Len(t, loaded.Items, 1)
	assert.Equal(t, "Brass", loaded.Items[0].Metal)
	assert.Empty(t, loaded.Deductions)
}

func TestRepositoryFindByIDOrdersChildrenByPosition(t *testing.T) {
	db := setupInvoicesTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	inv := newTestInvoice("A0001")
	inv.Items = []models.InvoiceItem{
		{ID: uuid.New(), InvoiceID: inv.ID, Position: 2, Metal: "Steel"},
		{ID: uuid.New(), InvoiceID: inv.ID, Position: 0, Metal: "Copper"},
		{ID: uuid.New(), InvoiceID: inv.ID, Position: 1, Metal: "Brass"},
	}
	require.NoError(t, repo.Save(ctx, db, inv))

	loaded, err := repo.FindByID(ctx, inv.ID)
	require.NoError(t, err)
	require.Len(t, loaded.Items, 3)
	assert.Equal(t, "Copper", loaded.Items[0].Metal)
	assert.Equal(t, "Brass", loaded.Items[1].Metal)
	assert.Equal(t, "Steel", loaded.Items[2].Metal)
}

func TestRepositoryLatestNumber(t *testing.T) {
	db := setupInvoicesTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	number, err := repo.LatestNumber(ctx)
	require.NoError(t, err)
	assert.Empty(t, number)

	require.NoError(t, repo.Save(ctx, db, newTestInvoice("A0007")))
	require.NoError(t, repo.Save(ctx, db, newTestInvoice("A0012")))

	number, err = repo.LatestNumber(ctx)
	require.NoError(t, err)
	assert.Equal(t, "A0012", number)
}

func TestRepositoryListFiltersAndPaginates(t *testing.T) {
	db := setupInvoicesTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	numbers := []string{"A0001", "A0002", "A0003"}
	for i, number := range numbers {
		inv := newTestInvoice(number)
		inv.CreatedAt = base.Add(time.Duration(i) * time.Hour)
		inv.UpdatedAt = inv.CreatedAt
		if number == "A0002" {
			inv.Status = enums.DocumentStatusPaid
		}
		require.NoError(t, repo.Save(ctx, db, inv))
	}

	paid := enums.DocumentStatusPaid
	rows, err := repo.List(ctx, listQuery{status: &paid, limit: 10})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "A0002", rows[0].ScrinvNumber)

	rows, err = repo.List(ctx, listQuery{search: "a000", limit: 2})
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "A0003", rows[0].ScrinvNumber)

	cursor := &pkgpagination.Cursor{CreatedAt: rows[1].CreatedAt, ID: rows[1].ID}
	rows, err = repo.List(ctx, listQuery{limit: 2, cursor: cursor})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "A0001", rows[0].ScrinvNumber)
}

func TestRepositoryUpdateStatusUnknownID(t *testing.T) {
	db := setupInvoicesTestDB(t)
	repo := NewRepository(db)

	err := repo.UpdateStatus(context.Background(), uuid.New(), enums.DocumentStatusSent)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestRepositoryDeleteStaleDrafts(t *testing.T) {
	db := setupInvoicesTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	stale := newTestInvoice("A0001")
	require.NoError(t, repo.Save(ctx, db, stale))
	require.NoError(t, db.Model(&models.Invoice{}).
		Where("id = ?", stale.ID).
		UpdateColumn("updated_at", time.Now().Add(-30*24*time.Hour)).Error)

	sent := newTestInvoice("A0002")
	sent.Status = enums.DocumentStatusSent
	require.NoError(t, repo.Save(ctx, db, sent))
	require.NoError(t, db.Model(&models.Invoice{}).
		Where("id = ?", sent.ID).
		UpdateColumn("updated_at", time.Now().Add(-30*24*time.Hour)).Error)

	fresh := newTestInvoice("A0003")
	require.NoError(t, repo.Save(ctx, db, fresh))

	ids, err := repo.DeleteStaleDrafts(ctx, time.Now().Add(-14*24*time.Hour))
	require.NoError(t, err)
	require.Len(t, ids, 1)
	assert.Equal(t, stale.ID, ids[0])

	_, err = repo.FindByID(ctx, stale.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	_, err = repo.FindByID(ctx, sent.ID)
	assert.NoError(t, err)
}
