package forms

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/dmaher/scrapbill-backend/internal/calc"
	"github.com/dmaher/scrapbill-backend/pkg/enums"
	pkgerrors "github.com/dmaher/scrapbill-backend/pkg/errors"
	"github.com/dmaher/scrapbill-backend/pkg/logger"
)

func newTestRegistry(t *testing.T, quiet time.Duration) *Registry {
	t.Helper()
	reg, err := NewRegistry(RegistryParams{
		QuietPeriod: quiet,
		SessionTTL:  time.Hour,
		Logger:      logger.New(logger.Options{ServiceName: "forms-test", Level: zerolog.ErrorLevel}),
	})
	if err != nil {
		t.Fatalf("new registry: %v", err)
	}
	t.Cleanup(reg.CloseAll)
	return reg
}

func TestRegistryOpenAndUpdateInvoice(t *testing.T) {
	reg := newTestRegistry(t, 10*time.Millisecond)

	sess, err := reg.Open(enums.FormKindInvoice)
	if err != nil {
		t.Fatalf("open: %v", err)
	}

	rows, err := reg.UpdateInvoice(sess.ID, calc.InvoiceInput{
		Items:      []calc.InvoiceRow{{Key: "a", Quantity: calc.N(2), Price: calc.N(50)}},
		IncludeGST: calc.B(true),
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if len(rows) != 1 || rows[0].Total != 100 {
		t.Fatalf("unexpected instant rows %+v", rows)
	}

	// aggregates appear once the quiet period passes
	deadline := time.Now().Add(time.Second)
	for {
		res, ok, err := reg.InvoiceTotals(sess.ID)
		if err != nil {
			t.Fatalf("totals: %v", err)
		}
		if ok {
			if res.FinalTotal != 110 {
				t.Fatalf("finalTotal=%v, want 110", res.FinalTotal)
			}
			break
		}
		if time.Now().After(deadline) {
			t.Fatalf("aggregates never published")
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestRegistryKindMismatch(t *testing.T) {
	reg := newTestRegistry(t, time.Hour)

	sess, err := reg.Open(enums.FormKindDocket)
	if err != nil {
		t.Fatalf("open: %v", err)
	}

	_, err = reg.UpdateInvoice(sess.ID, calc.InvoiceInput{})
	appErr := pkgerrors.As(err)
	if appErr == nil || appErr.Code() != pkgerrors.CodeStateConflict {
		t.Fatalf("expected state conflict, got %v", err)
	}
}

func TestRegistryUnknownSession(t *testing.T) {
	reg := newTestRegistry(t, time.Hour)

	_, _, err := reg.DocketTotals(uuid.New())
	appErr := pkgerrors.As(err)
	if appErr == nil || appErr.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}

	if err := reg.Close(uuid.New()); err == nil {
		t.Fatalf("closing unknown session should fail")
	}
}

func TestRegistrySweepClosesIdleSessions(t *testing.T) {
	reg := newTestRegistry(t, time.Hour)

	fresh, err := reg.Open(enums.FormKindInvoice)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	stale, err := reg.Open(enums.FormKindDocket)
	if err != nil {
		t.Fatalf("open: %v", err)
	}

	// age only the stale session past the TTL
	now := time.Now()
	reg.now = func() time.Time { return now.Add(2 * time.Hour) }
	if _, err := reg.UpdateInvoice(fresh.ID, calc.InvoiceInput{IncludeGST: calc.B(true)}); err != nil {
		t.Fatalf("touch fresh: %v", err)
	}

	if n := reg.Sweep(); n != 1 {
		t.Fatalf("expected 1 swept session, got %d", n)
	}
	if _, err := reg.Get(stale.ID); err == nil {
		t.Fatalf("stale session should be gone")
	}
	if _, err := reg.Get(fresh.ID); err != nil {
		t.Fatalf("fresh session should survive: %v", err)
	}
}

func TestRegistryOpenRejectsUnknownKind(t *testing.T) {
	reg := newTestRegistry(t, time.Hour)

	_, err := reg.Open(enums.FormKind("ledger"))
	appErr := pkgerrors.As(err)
	if appErr == nil || appErr.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}
