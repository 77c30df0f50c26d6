package calc

// DocketRow is one weighed line on a docket form.
type DocketRow struct {
	Key   string `json:"key"`
	Metal string `json:"metal"`
	Notes string `json:"notes,omitempty"`
	Gross Number `json:"gross"`
	Tare  Number `json:"tare"`
	Price Number `json:"price"`
	Unit  string `json:"unit"`

	// Net and Total are derived, never entered. Net may be negative; the
	// form highlights that but the calculation does not clamp it.
	Net   float64 `json:"net"`
	Total float64 `json:"total"`
}

// DocketInput carries everything the docket totals depend on.
type DocketInput struct {
	Items             []DocketRow    `json:"items"`
	PreGSTDeductions  []DeductionRow `json:"preGstDeductions"`
	PostGSTDeductions []DeductionRow `json:"postGstDeductions"`

	// IncludeGST defaults to off when absent. GSTPercentage defaults to
	// 10 when absent; a present but unparseable rate stays 0.
	IncludeGST    Bool   `json:"includeGst"`
	GSTPercentage Number `json:"gstPercentage"`
}

// DocketResult is the full set of derived docket totals.
type DocketResult struct {
	Items                 []DocketRow `json:"items"`
	ItemsTotal            float64     `json:"itemsTotal"`
	PreGSTDeductionTotal  float64     `json:"preGstDeductionTotal"`
	PostGSTDeductionTotal float64     `json:"postGstDeductionTotal"`
	GrossTotal            float64     `json:"grossTotal"`
	GSTAmount             float64     `json:"gstAmount"`
	FinalTotal            float64     `json:"finalTotal"`
}

// DocketItemTotals returns a copy of the rows with Net and Total populated:
// net = round2(gross - tare), total = round2(net * price).
func DocketItemTotals(items []DocketRow) []DocketRow {
	out := make([]DocketRow, len(items))
	for i, row := range items {
		row.Net = Round2(row.Gross.Float() - row.Tare.Float())
		row.Total = Round2(row.Net * row.Price.Float())
		out[i] = row
	}
	return out
}

// DocketTotals computes the cascading aggregate totals. Unlike invoices the
// GST rate is an input, GST applies to a negative gross as well, and
// post-GST deductions are summed whether or not GST is enabled.
func DocketTotals(in DocketInput) DocketResult {
	items := DocketItemTotals(in.Items)

	var itemsTotal float64
	for _, row := range items {
		itemsTotal += row.Total
	}

	var preGST float64
	for _, d := range in.PreGSTDeductions {
		preGST += d.Amount.Float()
	}

	var postGST float64
	for _, d := range in.PostGSTDeductions {
		postGST += d.Amount.Float()
	}

	itemsTotal = Round2(itemsTotal)
	grossTotal := Round2(itemsTotal - preGST)

	rate := 10.0
	if in.GSTPercentage.Set() {
		rate = in.GSTPercentage.Float()
	}

	var gstAmount float64
	if in.IncludeGST.Or(false) {
		gstAmount = Round2(grossTotal * (rate / 100))
	}

	return DocketResult{
		Items:                 items,
		ItemsTotal:            itemsTotal,
		PreGSTDeductionTotal:  Round2(preGST),
		PostGSTDeductionTotal: Round2(postGST),
		GrossTotal:            grossTotal,
		GSTAmount:             gstAmount,
		FinalTotal:            Round2(grossTotal + gstAmount - postGST),
	}
}
