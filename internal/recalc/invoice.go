package recalc

import (
	"sync"
	"time"

	"github.com/dmaher/scrapbill-backend/internal/calc"
	"github.com/dmaher/scrapbill-backend/pkg/metrics"
)

const documentInvoice = "invoice"

// InvoiceRecalculator drives the two-tier recalculation for one invoice
// form session. Row totals update synchronously on every change; the
// aggregate summary updates only after the quiet period, and only when one
// of the headline figures actually moved.
type InvoiceRecalculator struct {
	mu        sync.Mutex
	input     calc.InvoiceInput
	published calc.InvoiceResult
	hasResult bool

	debounce *Debouncer
	onChange func(calc.InvoiceResult)
	metrics  *metrics.RecalcMetrics
}

// NewInvoiceRecalculator builds a recalculator. onChange fires from the
// timer goroutine whenever a fresh aggregate result is published; it may be
// nil. metrics may be nil.
func NewInvoiceRecalculator(quiet time.Duration, onChange func(calc.InvoiceResult), m *metrics.RecalcMetrics) *InvoiceRecalculator {
	return &InvoiceRecalculator{
		debounce: NewDebouncer(quiet),
		onChange: onChange,
		metrics:  m,
	}
}

// Update takes the latest form state, returns the instantly recomputed rows
// and restarts the quiet period for the aggregate pass.
func (r *InvoiceRecalculator) Update(in calc.InvoiceInput) []calc.InvoiceRow {
	rows := calc.InvoiceItemTotals(in.Items)
	in.Items = rows

	r.mu.Lock()
	r.input = in
	r.mu.Unlock()

	r.debounce.Schedule(r.recompute)
	return rows
}

// Aggregates returns the most recently published aggregate result. The
// second return is false until the first aggregate pass has run.
func (r *InvoiceRecalculator) Aggregates() (calc.InvoiceResult, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.published, r.hasResult
}

// Flush runs any pending aggregate pass immediately and returns the current
// result. Used when the form is submitted before the quiet period elapses.
func (r *InvoiceRecalculator) Flush() calc.InvoiceResult {
	r.debounce.Flush()

	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.hasResult {
		r.published = calc.InvoiceTotals(r.input)
		r.hasResult = true
	}
	return r.published
}

// Close cancels any pending aggregate pass.
func (r *InvoiceRecalculator) Close() {
	r.debounce.Close()
}

func (r *InvoiceRecalculator) recompute() {
	started := time.Now()

	r.mu.Lock()
	in := r.input
	r.mu.Unlock()

	result := calc.InvoiceTotals(in)
	r.metrics.ObserveCompute(documentInvoice, time.Since(started))
	r.metrics.IncPass(documentInvoice)

	r.mu.Lock()
	if r.hasResult &&
		r.published.FinalTotal == result.FinalTotal &&
		r.published.GSTAmount == result.GSTAmount &&
		r.published.GrossTotal == result.GrossTotal {
		r.mu.Unlock()
		r.metrics.IncSuppressed(documentInvoice)
		return
	}
	r.published = result
	r.hasResult = true
	onChange := r.onChange
	r.mu.Unlock()

	if onChange != nil {
		onChange(result)
	}
}
