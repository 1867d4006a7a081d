package scoring

// Severity tiers a composite z-score. The cutoffs follow standard-normal tail
// probabilities and are not configurable.
type Severity string

// Severity tiers, worst first.
const (
	SeverityCritical Severity = "critical"
	SeverityHigh     Severity = "high"
	SeverityModerate Severity = "moderate"
	SeverityMinor    Severity = "minor"
	SeverityNone     Severity = "none"
)

// Tier cutoffs on the composite z-score. Each lower bound is inclusive.
const (
	highFloor     = -2.0
	moderateFloor = -1.0
	minorFloor    = -0.5
)

// Severities lists every tier, worst first.
func Severities() []Severity {
	return []Severity{SeverityCritical, SeverityHigh, SeverityModerate, SeverityMinor, SeverityNone}
}

// SeverityFor classifies a composite z-score:
// z < -2 critical, [-2,-1) high, [-1,-0.5) moderate, [-0.5,0) minor, z >= 0 none.
func SeverityFor(z float64) Severity {
	switch {
	case z < highFloor:
		return SeverityCritical
	case z < moderateFloor:
		return SeverityHigh
	case z < minorFloor:
		return SeverityModerate
	case z < 0:
		return SeverityMinor
	default:
		return SeverityNone
	}
}

// IsWeakLink reports whether the tier belongs on a weak-links list.
func (s Severity) IsWeakLink() bool {
	return s == SeverityCritical || s == SeverityHigh
}

// NeedsExplanation reports whether the tier requires a full explanation.
func (s Severity) NeedsExplanation() bool {
	return s == SeverityCritical || s == SeverityHigh || s == SeverityModerate
}
