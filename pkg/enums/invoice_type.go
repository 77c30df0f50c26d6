package enums

import "fmt"

// InvoiceType distinguishes the invoice layouts supported by the forms.
type InvoiceType string

const (
	InvoiceTypeContainer InvoiceType = "Container"
	InvoiceTypePickup    InvoiceType = "Pickup"
	InvoiceTypeSimple    InvoiceType = "Simple"
)

var validInvoiceTypes = []InvoiceType{
	InvoiceTypeContainer,
	InvoiceTypePickup,
	InvoiceTypeSimple,
}

// String implements fmt.Stringer.
func (t InvoiceType) String() string {
	return string(t)
}

// IsValid reports whether the invoice type is recognized.
func (t InvoiceType) IsValid() bool {
	for _, candidate := range validInvoiceTypes {
		if candidate == t {
			return true
		}
	}
	return false
}

// ParseInvoiceType converts a raw string into an InvoiceType.
func ParseInvoiceType(value string) (InvoiceType, error) {
	for _, candidate := range validInvoiceTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid invoice type %q", value)
}
