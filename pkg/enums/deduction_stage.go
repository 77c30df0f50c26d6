package enums

import "fmt"

// DeductionStage marks whether a deduction applies before or after GST.
type DeductionStage string

const (
	DeductionStagePre  DeductionStage = "pre"
	DeductionStagePost DeductionStage = "post"
)

var validDeductionStages = []DeductionStage{
	DeductionStagePre,
	DeductionStagePost,
}

// String implements fmt.Stringer.
func (s DeductionStage) String() string {
	return string(s)
}

// IsValid reports whether the stage is recognized.
func (s DeductionStage) IsValid() bool {
	for _, candidate := range validDeductionStages {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseDeductionStage converts a raw string into a DeductionStage.
func ParseDeductionStage(value string) (DeductionStage, error) {
	for _, candidate := range validDeductionStages {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid deduction stage %q", value)
}
