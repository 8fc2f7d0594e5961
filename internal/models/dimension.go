package models

// Dimensions are the four fixed issue categories used to classify negative
// reviews. The order here is the canonical rendering order for reports.
var Dimensions = []string{"质量", "服务", "物流", "价格"}

// DimensionSummary maps each canonical dimension to a negative-review count.
type DimensionSummary map[string]int

// DefaultDimensionSummary returns an all-zero summary over the four canonical
// dimensions.
func DefaultDimensionSummary() DimensionSummary {
	s := make(DimensionSummary, len(Dimensions))
	for _, d := range Dimensions {
		s[d] = 0
	}
	return s
}

// Normalized merges s over the zero default so that exactly the four canonical
// keys are present. Unknown keys are dropped.
func (s DimensionSummary) Normalized() DimensionSummary {
	out := DefaultDimensionSummary()
	for _, d := range Dimensions {
		if v, ok := s[d]; ok {
			out[d] = v
		}
	}
	return out
}
