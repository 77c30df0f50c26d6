package calc

import (
	"encoding/json"
	"testing"
)

func TestDocketItemTotalsNegativeNet(t *testing.T) {
	got := DocketItemTotals([]DocketRow{
		{Key: "a", Metal: "Copper", Gross: N(10), Tare: N(15), Price: N(5)},
	})

	if got[0].Net != -5 {
		t.Fatalf("net=%v, want -5", got[0].Net)
	}
	if got[0].Total != -25 {
		t.Fatalf("total=%v, want -25", got[0].Total)
	}
}

func TestDocketItemTotalsMissingWeightsDefaultToZero(t *testing.T) {
	got := DocketItemTotals([]DocketRow{
		{Key: "a", Metal: "Steel", Gross: N(120.4), Tare: Number{}, Price: N(0.5)},
		{Key: "b", Metal: "Brass", Gross: Number{}, Tare: Number{}, Price: N(9)},
	})

	if got[0].Net != 120.4 {
		t.Fatalf("net=%v, want 120.4", got[0].Net)
	}
	if got[0].Total != 60.2 {
		t.Fatalf("total=%v, want 60.2", got[0].Total)
	}
	if got[1].Net != 0 || got[1].Total != 0 {
		t.Fatalf("empty row should derive zeros, got %+v", got[1])
	}
}

func TestDocketTotalsConfigurableRate(t *testing.T) {
	res := DocketTotals(DocketInput{
		Items:         []DocketRow{{Key: "a", Gross: N(100), Tare: N(0), Price: N(2)}},
		IncludeGST:    B(true),
		GSTPercentage: N(15),
	})

	if res.GrossTotal != 200 {
		t.Fatalf("grossTotal=%v, want 200", res.GrossTotal)
	}
	if res.GSTAmount != 30 {
		t.Fatalf("gstAmount=%v, want 30", res.GSTAmount)
	}
	if res.FinalTotal != 230 {
		t.Fatalf("finalTotal=%v, want 230", res.FinalTotal)
	}
}

func TestDocketTotalsDefaultRateWhenOmitted(t *testing.T) {
	var in DocketInput
	if err := json.Unmarshal([]byte(`{"items":[{"key":"a","gross":10,"price":10}],"includeGst":true}`), &in); err != nil {
		t.Fatalf("decode: %v", err)
	}

	res := DocketTotals(in)
	if res.GSTAmount != 10 {
		t.Fatalf("gstAmount=%v, want 10 at the default rate", res.GSTAmount)
	}
	if res.FinalTotal != 110 {
		t.Fatalf("finalTotal=%v, want 110", res.FinalTotal)
	}
}

func TestDocketTotalsExplicitZeroRate(t *testing.T) {
	var in DocketInput
	if err := json.Unmarshal([]byte(`{"items":[{"key":"a","gross":10,"price":10}],"includeGst":true,"gstPercentage":0}`), &in); err != nil {
		t.Fatalf("decode: %v", err)
	}

	res := DocketTotals(in)
	if res.GSTAmount != 0 {
		t.Fatalf("gstAmount=%v, want 0 for an explicit zero rate", res.GSTAmount)
	}
	if res.FinalTotal != 100 {
		t.Fatalf("finalTotal=%v, want 100", res.FinalTotal)
	}
}

func TestDocketTotalsItemsTotalRounded(t *testing.T) {
	res := DocketTotals(DocketInput{
		Items: []DocketRow{
			{Key: "a", Gross: N(0.1), Tare: N(0), Price: N(1)},
			{Key: "b", Gross: N(0.2), Tare: N(0), Price: N(1)},
		},
		IncludeGST: B(false),
	})

	if res.ItemsTotal != 0.3 {
		t.Fatalf("itemsTotal=%v, want 0.3", res.ItemsTotal)
	}
	if res.GrossTotal != 0.3 {
		t.Fatalf("grossTotal=%v, want 0.3", res.GrossTotal)
	}
}

func TestDocketTotalsGSTOnNegativeGross(t *testing.T) {
	res := DocketTotals(DocketInput{
		Items:         []DocketRow{{Key: "a", Gross: N(10), Tare: N(15), Price: N(5)}},
		IncludeGST:    B(true),
		GSTPercentage: N(10),
	})

	if res.GrossTotal != -25 {
		t.Fatalf("grossTotal=%v, want -25", res.GrossTotal)
	}
	if res.GSTAmount != -2.5 {
		t.Fatalf("gstAmount=%v, want -2.5", res.GSTAmount)
	}
	if res.FinalTotal != -27.5 {
		t.Fatalf("finalTotal=%v, want -27.5", res.FinalTotal)
	}
}

func TestDocketTotalsPostGSTNotGatedByIncludeGST(t *testing.T) {
	res := DocketTotals(DocketInput{
		Items:             []DocketRow{{Key: "a", Gross: N(100), Tare: N(0), Price: N(1)}},
		PostGSTDeductions: []DeductionRow{{Key: "d1", Label: "cash advance", Amount: N(20)}},
		IncludeGST:        B(false),
		GSTPercentage:     N(10),
	})

	if res.PostGSTDeductionTotal != 20 {
		t.Fatalf("postGstDeductionTotal=%v, want 20 even with GST off", res.PostGSTDeductionTotal)
	}
	if res.GSTAmount != 0 {
		t.Fatalf("gstAmount=%v, want 0", res.GSTAmount)
	}
	if res.FinalTotal != 80 {
		t.Fatalf("finalTotal=%v, want 80", res.FinalTotal)
	}
}

func TestDocketTotalsPreGSTBeforeGST(t *testing.T) {
	res := DocketTotals(DocketInput{
		Items:            []DocketRow{{Key: "a", Gross: N(300), Tare: N(100), Price: N(1)}},
		PreGSTDeductions: []DeductionRow{{Key: "d1", Label: "contamination", Amount: N(50)}},
		IncludeGST:       B(true),
		GSTPercentage:    N(10),
	})

	if res.GrossTotal != 150 {
		t.Fatalf("grossTotal=%v, want 150", res.GrossTotal)
	}
	if res.GSTAmount != 15 {
		t.Fatalf("gstAmount=%v, want 15", res.GSTAmount)
	}
	if res.FinalTotal != 165 {
		t.Fatalf("finalTotal=%v, want 165", res.FinalTotal)
	}
}
