package recalc

import (
	"sync"
	"testing"
	"time"

	"github.com/dmaher/scrapbill-backend/internal/calc"
)

func TestInvoiceRecalculatorInstantRows(t *testing.T) {
	r := NewInvoiceRecalculator(time.Hour, nil, nil)
	defer r.Close()

	rows := r.Update(calc.InvoiceInput{
		Items:      []calc.InvoiceRow{{Key: "a", Quantity: calc.N(2), Price: calc.N(50)}},
		IncludeGST: calc.B(true),
	})

	if len(rows) != 1 || rows[0].Total != 100 {
		t.Fatalf("instant rows not recomputed: %+v", rows)
	}

	// aggregate pass has not run yet
	if _, ok := r.Aggregates(); ok {
		t.Fatalf("aggregates should not be published before the quiet period")
	}
}

func TestInvoiceRecalculatorPublishesAfterQuietPeriod(t *testing.T) {
	published := make(chan calc.InvoiceResult, 1)
	r := NewInvoiceRecalculator(15*time.Millisecond, func(res calc.InvoiceResult) {
		published <- res
	}, nil)
	defer r.Close()

	r.Update(calc.InvoiceInput{
		Items:      []calc.InvoiceRow{{Key: "a", Quantity: calc.N(2), Price: calc.N(50)}},
		IncludeGST: calc.B(true),
	})

	select {
	case res := <-published:
		if res.FinalTotal != 110 {
			t.Fatalf("finalTotal=%v, want 110", res.FinalTotal)
		}
	case <-time.After(time.Second):
		t.Fatalf("aggregate result was never published")
	}

	if res, ok := r.Aggregates(); !ok || res.FinalTotal != 110 {
		t.Fatalf("aggregates not retained: ok=%v res=%+v", ok, res)
	}
}

func TestInvoiceRecalculatorBurstPublishesLastStateOnce(t *testing.T) {
	var mu sync.Mutex
	var results []calc.InvoiceResult

	r := NewInvoiceRecalculator(25*time.Millisecond, func(res calc.InvoiceResult) {
		mu.Lock()
		results = append(results, res)
		mu.Unlock()
	}, nil)
	defer r.Close()

	for _, price := range []float64{10, 20, 30, 40, 50} {
		r.Update(calc.InvoiceInput{
			Items:      []calc.InvoiceRow{{Key: "a", Quantity: calc.N(2), Price: calc.N(price)}},
			IncludeGST: calc.B(true),
		})
		time.Sleep(2 * time.Millisecond)
	}

	time.Sleep(150 * time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	if len(results) != 1 {
		t.Fatalf("expected one publish for the burst, got %d", len(results))
	}
	if results[0].FinalTotal != 110 {
		t.Fatalf("expected totals from the last change, got %+v", results[0])
	}
}

func TestInvoiceRecalculatorSuppressesUnchangedResult(t *testing.T) {
	var mu sync.Mutex
	publishes := 0

	r := NewInvoiceRecalculator(10*time.Millisecond, func(calc.InvoiceResult) {
		mu.Lock()
		publishes++
		mu.Unlock()
	}, nil)
	defer r.Close()

	in := calc.InvoiceInput{
		Items:      []calc.InvoiceRow{{Key: "a", Quantity: calc.N(1), Price: calc.N(100)}},
		IncludeGST: calc.B(true),
	}

	r.Update(in)
	time.Sleep(60 * time.Millisecond)

	// identical input again: recompute runs but must not republish
	r.Update(in)
	time.Sleep(60 * time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	if publishes != 1 {
		t.Fatalf("expected one publish for identical results, got %d", publishes)
	}
}

func TestInvoiceRecalculatorFlush(t *testing.T) {
	r := NewInvoiceRecalculator(time.Hour, nil, nil)
	defer r.Close()

	r.Update(calc.InvoiceInput{
		Items:      []calc.InvoiceRow{{Key: "a", Quantity: calc.N(2), Price: calc.N(100)}},
		IncludeGST: calc.B(true),
	})

	res := r.Flush()
	if res.FinalTotal != 220 {
		t.Fatalf("finalTotal=%v, want 220", res.FinalTotal)
	}
}

func TestInvoiceRecalculatorCloseCancelsPending(t *testing.T) {
	published := make(chan calc.InvoiceResult, 1)
	r := NewInvoiceRecalculator(15*time.Millisecond, func(res calc.InvoiceResult) {
		published <- res
	}, nil)

	r.Update(calc.InvoiceInput{
		Items:      []calc.InvoiceRow{{Key: "a", Quantity: calc.N(1), Price: calc.N(10)}},
		IncludeGST: calc.B(true),
	})
	r.Close()

	select {
	case <-published:
		t.Fatalf("publish fired after close")
	case <-time.After(80 * time.Millisecond):
	}
}
