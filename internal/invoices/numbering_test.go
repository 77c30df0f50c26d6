package invoices

import (
	"testing"

	pkgerrors "github.com/dmaher/scrapbill-backend/pkg/errors"
)

func TestNextScrinvNumber(t *testing.T) {
	cases := []struct {
		current string
		want    string
	}{
		{current: "", want: "A0001"},
		{current: "A0001", want: "A0002"},
		{current: "A0999", want: "A1000"},
		{current: "A9999", want: "B0001"},
		{current: "M4821", want: "M4822"},
		{current: "Y9999", want: "Z0001"},
	}

	for _, tc := range cases {
		got, err := nextScrinvNumber(tc.current)
		if err != nil {
			t.Fatalf("next(%q): %v", tc.current, err)
		}
		if got != tc.want {
			t.Fatalf("next(%q)=%q, want %q", tc.current, got, tc.want)
		}
	}
}

func TestNextScrinvNumberExhaustion(t *testing.T) {
	_, err := nextScrinvNumber("Z9999")
	appErr := pkgerrors.As(err)
	if appErr == nil || appErr.Code() != pkgerrors.CodeExhausted {
		t.Fatalf("expected exhaustion error, got %v", err)
	}
}

func TestNextScrinvNumberMalformed(t *testing.T) {
	for _, bad := range []string{"0001A", "AA001", "A001", "A00000", "a0001", "A0000"} {
		if _, err := nextScrinvNumber(bad); err == nil {
			t.Fatalf("expected error for %q", bad)
		}
	}
}
