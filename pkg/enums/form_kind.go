package enums

import "fmt"

// FormKind identifies which document type a live form session edits.
type FormKind string

const (
	FormKindInvoice FormKind = "invoice"
	FormKindDocket  FormKind = "docket"
)

var validFormKinds = []FormKind{
	FormKindInvoice,
	FormKindDocket,
}

// String implements fmt.Stringer.
func (k FormKind) String() string {
	return string(k)
}

// IsValid reports whether the form kind is recognized.
func (k FormKind) IsValid() bool {
	for _, candidate := range validFormKinds {
		if candidate == k {
			return true
		}
	}
	return false
}

// ParseFormKind converts a raw string into a FormKind.
func ParseFormKind(value string) (FormKind, error) {
	for _, candidate := range validFormKinds {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid form kind %q", value)
}
