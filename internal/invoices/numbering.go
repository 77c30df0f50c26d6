package invoices

import (
	pkgerrors "github.com/dmaher/scrapbill-backend/pkg/errors"
)

// Invoice numbers run A0001 through Z9999: a single letter series with four
// digits, rolling to the next letter after 9999.
const (
	firstScrinvNumber = "A0001"
	scrinvDigitsMax   = 9999
)

func nextScrinvNumber(current string) (string, error) {
	if current == "" {
		return firstScrinvNumber, nil
	}
	letter, digits, ok := parseScrinvNumber(current)
	if !ok {
		return "", pkgerrors.New(pkgerrors.CodeInternal, "stored invoice number is malformed").WithDetails(current)
	}

	if digits < scrinvDigitsMax {
		return formatScrinvNumber(letter, digits+1), nil
	}
	if letter == 'Z' {
		return "", pkgerrors.New(pkgerrors.CodeExhausted, "invoice number series is exhausted")
	}
	return formatScrinvNumber(letter+1, 1), nil
}

func parseScrinvNumber(s string) (letter byte, digits int, ok bool) {
	if len(s) != 5 {
		return 0, 0, false
	}
	letter = s[0]
	if letter < 'A' || letter > 'Z' {
		return 0, 0, false
	}
	for i := 1; i < 5; i++ {
		c := s[i]
		if c < '0' || c > '9' {
			return 0, 0, false
		}
		digits = digits*10 + int(c-'0')
	}
	if digits == 0 {
		return 0, 0, false
	}
	return letter, digits, true
}

func formatScrinvNumber(letter byte, digits int) string {
	return string(letter) + pad4(digits)
}

func pad4(n int) string {
	buf := []byte{'0', '0', '0', '0'}
	for i := 3; i >= 0 && n > 0; i-- {
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	return string(buf)
}
