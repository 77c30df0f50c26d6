package dockets

import (
	pkgerrors "github.com/dmaher/scrapbill-backend/pkg/errors"
)

// Docket numbers look like SCRDKT3F0412: the SCRDKT prefix, a series digit
// 1-9, a series letter A-Z, then four digits 0000-9999. The rolling index
// walks the digits first, then the letter, then the leading digit. The
// series opens at SCRDKT1A0001 and each letter rollover lands on its 0000,
// so SCRDKT1B0000 follows SCRDKT1A9999 and the range ends at SCRDKT9Z9999.
const (
	scrdktPrefix    = "SCRDKT"
	scrdktPerLetter = 10000
	scrdktPerDigit  = scrdktPerLetter * 26
	scrdktCapacity  = scrdktPerDigit*9 - 1
)

func scrdktNumberAt(index int64) (string, error) {
	if index < 0 {
		return "", pkgerrors.New(pkgerrors.CodeInternal, "negative docket number index")
	}
	if index >= scrdktCapacity {
		return "", pkgerrors.New(pkgerrors.CodeExhausted, "docket number series is exhausted")
	}

	n := index + 1
	digits := int(n % scrdktPerLetter)
	letter := byte('A' + (n/scrdktPerLetter)%26)
	lead := byte('1' + n/scrdktPerDigit)

	return scrdktPrefix + string(lead) + string(letter) + pad4(digits), nil
}

func pad4(n int) string {
	buf := []byte{'0', '0', '0', '0'}
	for i := 3; i >= 0 && n > 0; i-- {
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	return string(buf)
}
