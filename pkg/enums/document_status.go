package enums

import "fmt"

// DocumentStatus tracks the lifecycle of a billing document.
type DocumentStatus string

const (
	DocumentStatusDraft DocumentStatus = "Draft"
	DocumentStatusSent  DocumentStatus = "Sent"
	DocumentStatusPaid  DocumentStatus = "Paid"
)

var validDocumentStatuses = []DocumentStatus{
	DocumentStatusDraft,
	DocumentStatusSent,
	DocumentStatusPaid,
}

// String implements fmt.Stringer.
func (s DocumentStatus) String() string {
	return string(s)
}

// IsValid reports whether the status is recognized.
func (s DocumentStatus) IsValid() bool {
	for _, candidate := range validDocumentStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseDocumentStatus converts a raw string into a DocumentStatus.
func ParseDocumentStatus(value string) (DocumentStatus, error) {
	for _, candidate := range validDocumentStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid document status %q", value)
}
