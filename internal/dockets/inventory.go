package dockets

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/dmaher/scrapbill-backend/internal/calc"
	"github.com/dmaher/scrapbill-backend/pkg/enums"
	pkgerrors "github.com/dmaher/scrapbill-backend/pkg/errors"
)

// InventoryParams filters the inventory report.
type InventoryParams struct {
	From       *time.Time
	To         *time.Time
	Metal      string
	DocketType *enums.DocketType
}

// InventoryLine aggregates the weighed metal for one metal/unit pair.
type InventoryLine struct {
	Metal     string  `json:"metal"`
	Unit      string  `json:"unit"`
	NetWeight float64 `json:"netWeight"`
	Value     float64 `json:"value"`
	RowCount  int     `json:"rowCount"`
}

// InventoryTotal is the grand total for one unit across all metals.
type InventoryTotal struct {
	Unit      string  `json:"unit"`
	NetWeight float64 `json:"netWeight"`
	Value     float64 `json:"value"`
}

// InventoryReport is the aggregated stock position derived from dockets.
type InventoryReport struct {
	Lines  []InventoryLine  `json:"lines"`
	Totals []InventoryTotal `json:"totals"`
}

// InventoryReport aggregates docket lines by metal and unit. Net weight per
// row is clamped at zero so over-tared rows cannot shrink the stock figure.
func (s *service) InventoryReport(ctx context.Context, params InventoryParams) (*InventoryReport, error) {
	if params.From != nil && params.To != nil && params.To.Before(*params.From) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "report range ends before it starts")
	}
	if params.DocketType != nil && !params.DocketType.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown docket type")
	}

	rows, err := s.repo.InventoryRows(ctx, inventoryQuery{
		from:       params.From,
		to:         params.To,
		metal:      params.Metal,
		docketType: params.DocketType,
	})
	if err != nil {
		return nil, err
	}

	type bucketKey struct {
		metal string
		unit  string
	}
	buckets := make(map[bucketKey]*InventoryLine)

	for _, row := range rows {
		metal := strings.TrimSpace(row.Metal)
		if metal == "" {
			continue
		}

		net := calc.Round2(ptrValue(row.Gross) - ptrValue(row.Tare))
		if net < 0 {
			net = 0
		}
		value := calc.Round2(net * ptrValue(row.Price))

		key := bucketKey{metal: strings.ToLower(metal), unit: row.Unit}
		line, ok := buckets[key]
		if !ok {
			line = &InventoryLine{Metal: metal, Unit: row.Unit}
			buckets[key] = line
		}
		line.NetWeight = calc.Round2(line.NetWeight + net)
		line.Value = calc.Round2(line.Value + value)
		line.RowCount++
	}

	report := &InventoryReport{Lines: make([]InventoryLine, 0, len(buckets))}
	unitTotals := make(map[string]*InventoryTotal)
	for _, line := range buckets {
		report.Lines = append(report.Lines, *line)

		total, ok := unitTotals[line.Unit]
		if !ok {
			total = &InventoryTotal{Unit: line.Unit}
			unitTotals[line.Unit] = total
		}
		total.NetWeight = calc.Round2(total.NetWeight + line.NetWeight)
		total.Value = calc.Round2(total.Value + line.Value)
	}

	sort.Slice(report.Lines, func(i, j int) bool {
		if report.Lines[i].Metal != report.Lines[j].Metal {
			return report.Lines[i].Metal < report.Lines[j].Metal
		}
		return report.Lines[i].Unit < report.Lines[j].Unit
	})

	report.Totals = make([]InventoryTotal, 0, len(unitTotals))
	for _, total := range unitTotals {
		report.Totals = append(report.Totals, *total)
	}
	sort.Slice(report.Totals, func(i, j int) bool {
		return report.Totals[i].Unit < report.Totals[j].Unit
	})

	return report, nil
}

func ptrValue(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}
