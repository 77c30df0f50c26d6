package calc

// InvoiceRow is one editable metal line on an invoice form.
type InvoiceRow struct {
	Key             string `json:"key"`
	Seal            string `json:"seal,omitempty"`
	ContainerNumber string `json:"containerNumber,omitempty"`
	Metal           string `json:"metal,omitempty"`
	Description     string `json:"description"`
	Quantity        Number `json:"quantity"`
	Price           Number `json:"price"`
	Unit            string `json:"unit"`

	// Total is derived, never entered.
	Total float64 `json:"total"`
}

// TransportRow is one freight line, priced per container count.
type TransportRow struct {
	Key         string `json:"key"`
	Name        string `json:"name"`
	NumOfCtr    Number `json:"numOfCtr"`
	PricePerCtr Number `json:"pricePerCtr"`
}

// DeductionRow is a labelled amount subtracted from a document total.
type DeductionRow struct {
	Key    string `json:"key"`
	Label  string `json:"label"`
	Amount Number `json:"amount"`
}

// InvoiceInput carries everything the invoice totals depend on.
type InvoiceInput struct {
	Items             []InvoiceRow   `json:"items"`
	TransportItems    []TransportRow `json:"transportItems"`
	PreGSTDeductions  []DeductionRow `json:"preGstDeductions"`
	PostGSTDeductions []DeductionRow `json:"postGstDeductions"`

	// IncludeGST defaults to on when absent; invoices charge GST unless
	// it is explicitly switched off.
	IncludeGST Bool `json:"includeGst"`
}

// InvoiceResult is the full set of derived invoice totals.
type InvoiceResult struct {
	Items                 []InvoiceRow `json:"items"`
	ItemsTotal            float64      `json:"itemsTotal"`
	TransportTotal        float64      `json:"transportTotal"`
	PreGSTDeductionTotal  float64      `json:"preGstDeductionTotal"`
	PostGSTDeductionTotal float64      `json:"postGstDeductionTotal"`
	GrossTotal            float64      `json:"grossTotal"`
	GSTAmount             float64      `json:"gstAmount"`
	FinalTotal            float64      `json:"finalTotal"`
}

// invoiceGSTRate is fixed for invoices. Dockets carry their own rate.
const invoiceGSTRate = 0.10

// InvoiceItemTotals returns a copy of the rows with Total populated as
// round2(quantity * price). Rows with a missing quantity or price total 0.
func InvoiceItemTotals(items []InvoiceRow) []InvoiceRow {
	out := make([]InvoiceRow, len(items))
	for i, row := range items {
		row.Total = Round2(row.Quantity.Float() * row.Price.Float())
		out[i] = row
	}
	return out
}

// InvoiceTotals computes the cascading aggregate totals. Pre-GST deductions
// come off before GST is applied. Post-GST deductions only apply while GST
// is enabled; with GST off they are ignored entirely, not just zero-rated.
func InvoiceTotals(in InvoiceInput) InvoiceResult {
	items := InvoiceItemTotals(in.Items)

	var itemsTotal float64
	for _, row := range items {
		itemsTotal += row.Total
	}

	var transportTotal float64
	for _, row := range in.TransportItems {
		transportTotal += row.NumOfCtr.Float() * row.PricePerCtr.Float()
	}

	var preGST float64
	for _, d := range in.PreGSTDeductions {
		preGST += d.Amount.Float()
	}

	itemsTotal = Round2(itemsTotal)
	transportTotal = Round2(transportTotal)
	grossTotal := Round2(itemsTotal + transportTotal - preGST)

	var gstAmount float64
	var postGST float64
	if in.IncludeGST.Or(true) {
		gstAmount = Round2(grossTotal * invoiceGSTRate)
		for _, d := range in.PostGSTDeductions {
			postGST += d.Amount.Float()
		}
	}

	return InvoiceResult{
		Items:                 items,
		ItemsTotal:            itemsTotal,
		TransportTotal:        transportTotal,
		PreGSTDeductionTotal:  Round2(preGST),
		PostGSTDeductionTotal: Round2(postGST),
		GrossTotal:            grossTotal,
		GSTAmount:             gstAmount,
		FinalTotal:            Round2(grossTotal + gstAmount - postGST),
	}
}
