package recalc

import (
	"sync"
	"time"

	"github.com/dmaher/scrapbill-backend/internal/calc"
	"github.com/dmaher/scrapbill-backend/pkg/metrics"
)

const documentDocket = "docket"

// DocketRecalculator is the docket counterpart of InvoiceRecalculator.
// Same timing contract, docket semantics (per-row net, configurable GST
// rate, ungated post-GST deductions).
type DocketRecalculator struct {
	mu        sync.Mutex
	input     calc.DocketInput
	published calc.DocketResult
	hasResult bool

	debounce *Debouncer
	onChange func(calc.DocketResult)
	metrics  *metrics.RecalcMetrics
}

// NewDocketRecalculator builds a recalculator. onChange and metrics may be
// nil.
func NewDocketRecalculator(quiet time.Duration, onChange func(calc.DocketResult), m *metrics.RecalcMetrics) *DocketRecalculator {
	return &DocketRecalculator{
		debounce: NewDebouncer(quiet),
		onChange: onChange,
		metrics:  m,
	}
}

// Update takes the latest form state, returns the instantly recomputed rows
// and restarts the quiet period for the aggregate pass.
func (r *DocketRecalculator) Update(in calc.DocketInput) []calc.DocketRow {
	rows := calc.DocketItemTotals(in.Items)
	in.Items = rows

	r.mu.Lock()
	r.input = in
	r.mu.Unlock()

	r.debounce.Schedule(r.recompute)
	return rows
}

// Aggregates returns the most recently published aggregate result. The
// second return is false until the first aggregate pass has run.
func (r *DocketRecalculator) Aggregates() (calc.DocketResult, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.published, r.hasResult
}

// Flush runs any pending aggregate pass immediately and returns the current
// result.
func (r *DocketRecalculator) Flush() calc.DocketResult {
	r.debounce.Flush()

	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.hasResult {
		r.published = calc.DocketTotals(r.input)
		r.hasResult = true
	}
	return r.published
}

// Close cancels any pending aggregate pass.
func (r *DocketRecalculator) Close() {
	r.debounce.Close()
}

func (r *DocketRecalculator) recompute() {
	started := time.Now()

	r.mu.Lock()
	in := r.input
	r.mu.Unlock()

	result := calc.DocketTotals(in)
	r.metrics.ObserveCompute(documentDocket, time.Since(started))
	r.metrics.IncPass(documentDocket)

	r.mu.Lock()
	if r.hasResult &&
		r.published.FinalTotal == result.FinalTotal &&
		r.published.GSTAmount == result.GSTAmount &&
		r.published.GrossTotal == result.GrossTotal {
		r.mu.Unlock()
		r.metrics.IncSuppressed(documentDocket)
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
