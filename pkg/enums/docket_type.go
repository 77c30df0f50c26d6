package enums

import "fmt"

// DocketType records which side of the weighbridge the docket covers.
type DocketType string

const (
	DocketTypeCustomer DocketType = "Customer"
	DocketTypeSupplier DocketType = "Supplier"
)

var validDocketTypes = []DocketType{
	DocketTypeCustomer,
	DocketTypeSupplier,
}

// String implements fmt.Stringer.
func (t DocketType) String() string {
	return string(t)
}

// IsValid reports whether the docket type is recognized.
func (t DocketType) IsValid() bool {
	for _, candidate := range validDocketTypes {
		if candidate == t {
			return true
		}
	}
	return false
}

// ParseDocketType converts a raw string into a DocketType.
func ParseDocketType(value string) (DocketType, error) {
	for _, candidate := range validDocketTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid docket type %q", value)
}
