package enums

import "fmt"

// Currency represents the denominations billing documents can be issued in.
type Currency string

const (
	CurrencyAUD Currency = "AUD"
	CurrencyNZD Currency = "NZD"
	CurrencyUSD Currency = "USD"
)

var validCurrencies = []Currency{
	CurrencyAUD,
	CurrencyNZD,
	CurrencyUSD,
}

// String implements fmt.Stringer.
func (c Currency) String() string {
	return string(c)
}

// IsValid reports whether the currency is recognized.
func (c Currency) IsValid() bool {
	for _, candidate := range validCurrencies {
		if candidate == c {
			return true
		}
	}
	return false
}

// Symbol returns the display symbol used on rendered documents.
func (c Currency) Symbol() string {
	switch c {
	case CurrencyUSD:
		return "US$"
	case CurrencyNZD:
		return "NZ$"
	default:
		return "$"
	}
}

// ParseCurrency converts a raw string into a Currency.
func ParseCurrency(value string) (Currency, error) {
	for _, candidate := range validCurrencies {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid currency %q", value)
}
