package dockets

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/dmaher/scrapbill-backend/internal/calc"
	"github.com/dmaher/scrapbill-backend/pkg/db"
	"github.com/dmaher/scrapbill-backend/pkg/db/models"
	"github.com/dmaher/scrapbill-backend/pkg/enums"
	pkgerrors "github.com/dmaher/scrapbill-backend/pkg/errors"
	pkgpagination "github.com/dmaher/scrapbill-backend/pkg/pagination"
)

// numberScanLimit caps how many consecutive taken numbers the generator
// skips before giving up.
const numberScanLimit = 1000

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type docketsRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Docket, error)
	Count(ctx context.Context) (int64, error)
	NumberExists(ctx context.Context, number string) (bool, error)
	List(ctx context.Context, opts listQuery) ([]models.Docket, error)
	Save(ctx context.Context, tx *gorm.DB, d *models.Docket) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status enums.DocumentStatus) error
	IncrementPrintCount(ctx context.Context, id uuid.UUID) (int, error)
	Delete(ctx context.Context, id uuid.UUID) error
	InventoryRows(ctx context.Context, opts inventoryQuery) ([]inventoryRow, error)
}

// Service exposes docket drafting, listing, numbering, printing and the
// inventory report.
type Service interface {
	SaveDraft(ctx context.Context, input SaveDraftInput) (*DocketDTO, error)
	Get(ctx context.Context, id uuid.UUID) (*DocketDTO, error)
	List(ctx context.Context, params ListParams) (*ListResult, error)
	Delete(ctx context.Context, id uuid.UUID) error
	SetStatus(ctx context.Context, id uuid.UUID, status enums.DocumentStatus) (*DocketDTO, error)
	IncrementPrintCount(ctx context.Context, id uuid.UUID) (int, error)
	NextNumber(ctx context.Context) (string, error)
	InventoryReport(ctx context.Context, params InventoryParams) (*InventoryReport, error)
}

type service struct {
	repo docketsRepository
	tx   txRunner
}

// NewService builds a docket service backed by the provided stack.
func NewService(repo docketsRepository, tx txRunner) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("docket repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	return &service{repo: repo, tx: tx}, nil
}

func (s *service) SaveDraft(ctx context.Context, input SaveDraftInput) (*DocketDTO, error) {
	if input.DocketType == "" {
		input.DocketType = enums.DocketTypeSupplier
	}
	if !input.DocketType.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown docket type")
	}
	if input.Currency == "" {
		input.Currency = enums.CurrencyAUD
	}
	if !input.Currency.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown currency")
	}
	if !input.GSTPercentage.Set() {
		input.GSTPercentage = calc.N(10)
	}

	totals := calc.DocketTotals(calc.DocketInput{
		Items:             input.Items,
		PreGSTDeductions:  input.PreGSTDeductions,
		PostGSTDeductions: input.PostGSTDeductions,
		IncludeGST:        input.IncludeGST,
		GSTPercentage:     input.GSTPercentage,
	})

	var d *models.Docket
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		var err error
		if input.ID == nil {
			d, err = s.newDocket(ctx)
		} else {
			d, err = s.repo.FindByID(ctx, *input.ID)
			if errors.Is(err, gorm.ErrRecordNotFound) {
				err = pkgerrors.New(pkgerrors.CodeNotFound, "docket not found")
			}
		}
		if err != nil {
			return err
		}

		applyInput(d, input, totals)
		if err := s.repo.Save(ctx, tx, d); err != nil {
			if db.IsUniqueViolation(err) {
				return pkgerrors.Wrap(pkgerrors.CodeConflict, err, "docket number already assigned")
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toDTO(d), nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*DocketDTO, error) {
	d, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "docket not found")
		}
		return nil, err
	}
	return toDTO(d), nil
}

func (s *service) List(ctx context.Context, params ListParams) (*ListResult, error) {
	cursor, err := pkgpagination.ParseCursor(params.Cursor)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid cursor")
	}

	limit := pkgpagination.NormalizeLimit(params.Limit)
	rows, err := s.repo.List(ctx, listQuery{
		status:     params.Status,
		docketType: params.DocketType,
		search:     params.Search,
		limit:      pkgpagination.LimitWithBuffer(params.Limit),
		cursor:     cursor,
	})
	if err != nil {
		return nil, err
	}

	result := &ListResult{Items: make([]ListItem, 0, len(rows))}
	for i := range rows {
		if i == limit {
			last := rows[i-1]
			result.NextCursor = pkgpagination.EncodeCursor(pkgpagination.Cursor{CreatedAt: last.CreatedAt, ID: last.ID})
			break
		}
		result.Items = append(result.Items, toListItem(&rows[i]))
	}
	return result, nil
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "docket not found")
		}
		return err
	}
	return nil
}

func (s *service) SetStatus(ctx context.Context, id uuid.UUID, status enums.DocumentStatus) (*DocketDTO, error) {
	if !status.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown document status")
	}
	if err := s.repo.UpdateStatus(ctx, id, status); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "docket not found")
		}
		return nil, err
	}
	return s.Get(ctx, id)
}

func (s *service) IncrementPrintCount(ctx context.Context, id uuid.UUID) (int, error) {
	qty, err := s.repo.IncrementPrintCount(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, pkgerrors.New(pkgerrors.CodeNotFound, "docket not found")
		}
		return 0, err
	}
	return qty, nil
}

// NextNumber derives the next docket number from the rolling count and
// walks past numbers that are already taken.
func (s *service) NextNumber(ctx context.Context) (string, error) {
	index, err := s.repo.Count(ctx)
	if err != nil {
		return "", err
	}

	for skip := 0; skip < numberScanLimit; skip++ {
		number, err := scrdktNumberAt(index + int64(skip))
		if err != nil {
			return "", err
		}
		taken, err := s.repo.NumberExists(ctx, number)
		if err != nil {
			return "", err
		}
		if !taken {
			return number, nil
		}
	}
	return "", pkgerrors.New(pkgerrors.CodeExhausted, "no free docket number near the rolling index")
}

func (s *service) newDocket(ctx context.Context) (*models.Docket, error) {
	number, err := s.NextNumber(ctx)
	if err != nil {
		return nil, err
	}
	return &models.Docket{
		ID:           uuid.New(),
		ScrdktNumber: number,
		Status:       enums.DocumentStatusDraft,
	}, nil
}

func applyInput(d *models.Docket, input SaveDraftInput, totals calc.DocketResult) {
	d.DocketType = input.DocketType
	d.Currency = input.Currency
	d.IncludeGST = input.IncludeGST.Or(false)
	d.GSTPercentage = input.GSTPercentage.Float()
	d.DocketDate = input.DocketDate
	d.DocketTime = input.DocketTime

	d.CompanyName = input.Company.Name
	d.CompanyPhone = input.Company.Phone
	d.CompanyEmail = input.Company.Email
	d.CompanyABN = input.Company.ABN
	d.CompanyAddress = input.Company.Address

	d.CustomerName = input.Customer.Name
	d.CustomerAddress = input.Customer.Address
	d.CustomerPhone = input.Customer.Phone
	d.CustomerABN = input.Customer.ABN
	d.CustomerLicense = input.Customer.License
	d.CustomerRego = input.Customer.Rego
	d.CustomerDOB = input.Customer.DOB
	d.CustomerPayID = input.Customer.PayID

	d.BSB = input.BSB
	d.AccountNumber = input.AccountNumber
	d.Notes = input.Notes

	d.ItemsTotal = money(totals.ItemsTotal)
	d.PreGSTDeductionTotal = money(totals.PreGSTDeductionTotal)
	d.PostGSTDeductionTotal = money(totals.PostGSTDeductionTotal)
	d.GrossTotal = money(totals.GrossTotal)
	d.GSTAmount = money(totals.GSTAmount)
	d.FinalTotal = money(totals.FinalTotal)

	d.Items = make([]models.DocketItem, 0, len(input.Items))
	for i, row := range input.Items {
		d.Items = append(d.Items, models.DocketItem{
			ID:       uuid.New(),
			DocketID: d.ID,
			Position: i,
			Metal:    row.Metal,
			RowNotes: row.Notes,
			Gross:    row.Gross.Ptr(),
			Tare:     row.Tare.Ptr(),
			Price:    row.Price.Ptr(),
			Unit:     row.Unit,
		})
	}

	d.Deductions = make([]models.DocketDeduction, 0, len(input.PreGSTDeductions)+len(input.PostGSTDeductions))
	for i, row := range input.PreGSTDeductions {
		d.Deductions = append(d.Deductions, models.DocketDeduction{
			ID:       uuid.New(),
			DocketID: d.ID,
			Position: i,
			Stage:    enums.DeductionStagePre,
			Label:    row.Label,
			Amount:   row.Amount.Ptr(),
		})
	}
	for i, row := range input.PostGSTDeductions {
		d.Deductions = append(d.Deductions, models.DocketDeduction{
			ID:       uuid.New(),
			DocketID: d.ID,
			Position: i,
			Stage:    enums.DeductionStagePost,
			Label:    row.Label,
			Amount:   row.Amount.Ptr(),
		})
	}
}
