// Package domain contains core business entities and types for composite
// metabolic health scoring from laboratory measurements (CBC differential,
// lipid panel, liver enzymes, glycemic markers, anthropometry).
//
// Derived biomarker indices (NLR, SII, TyG, FIB-4, eGDR, ...) are classified
// into severity bands, aggregated into four physiological domains, and
// synthesized into an overall 0-100 risk score.
package domain

import "fmt"

// Severity is the ordinal severity of a classified biomarker index.
// SeverityNA marks an index whose value could not be computed; it is
// excluded from all aggregation denominators.
type Severity int

const (
	SeverityNA       Severity = -1
	SeverityNormal   Severity = 0
	SeverityMild     Severity = 1
	SeverityModerate Severity = 2
	SeveritySevere   Severity = 3
)

// IsValid reports whether the severity is one of the defined ordinals.
func (s Severity) IsValid() bool {
	return s >= SeverityNA && s <= SeveritySevere
}

// Present reports whether the severity carries a real ordinal, i.e. the
// underlying index value was computable.
func (s Severity) Present() bool {
	return s >= SeverityNormal && s <= SeveritySevere
}

// Ordinal returns the 0-3 aggregation weight. NA contributes nothing;
// callers filter with Present before aggregating.
func (s Severity) Ordinal() int {
	if !s.Present() {
		return 0
	}
	return int(s)
}

// String returns the canonical severity name for reports and audit logs.
func (s Severity) String() string {
	switch s {
	case SeverityNormal:
		return "Normal"
	case SeverityMild:
		return "Mild"
	case SeverityModerate:
		return "Moderate"
	case SeveritySevere:
		return "Severe"
	default:
		return "NA"
	}
}

// LogFields returns structured logging fields for audit trails.
func (s Severity) LogFields() map[string]any {
	return map[string]any{
		"severity": s.String(),
		"ordinal":  int(s),
		"present":  s.Present(),
	}
}

// Direction tags a cutoff table with which end of the value range is
// clinically adverse. Both directions run through the same classification
// contract; the flag drives table validation and catalog output only.
type Direction string

const (
	HigherIsWorse Direction = "HIGHER_IS_WORSE"
	LowerIsWorse  Direction = "LOWER_IS_WORSE"
)

// IsValid reports whether the direction is one of the two defined tags.
func (d Direction) IsValid() bool {
	return d == HigherIsWorse || d == LowerIsWorse
}

// String returns the string representation of the direction.
func (d Direction) String() string {
	return string(d)
}

// Sex is the closed two-valued sex enumeration used by sex-adjusted
// formulas (HSI). Unrecognized raw input normalizes to SexMale.
type Sex string

const (
	SexMale   Sex = "M"
	SexFemale Sex = "F"
)

// IsValid reports whether the sex value is one of the two defined values.
func (s Sex) IsValid() bool {
	return s == SexMale || s == SexFemale
}

// String returns the string representation of the sex value.
func (s Sex) String() string {
	return string(s)
}

// RiskCategory is the ordinal overall risk category synthesized from the
// 0-100 total score.
type RiskCategory string

const (
	RiskVeryLow  RiskCategory = "Very Low"
	RiskMild     RiskCategory = "Mild"
	RiskModerate RiskCategory = "Moderate"
	RiskHigh     RiskCategory = "High"
)

// IsValid reports whether the risk category is defined.
func (r RiskCategory) IsValid() bool {
	switch r {
	case RiskVeryLow, RiskMild, RiskModerate, RiskHigh:
		return true
	default:
		return false
	}
}

// String returns the string representation of the risk category.
func (r RiskCategory) String() string {
	return string(r)
}

// LogFields returns structured logging fields for audit trails.
func (r RiskCategory) LogFields() map[string]any {
	return map[string]any{
		"risk_category": string(r),
		"is_valid":      r.IsValid(),
	}
}

// DomainName identifies one of the four fixed physiological domains.
type DomainName string

const (
	DomainInflammation DomainName = "Inflammation"
	DomainOxidative    DomainName = "Oxidative / Hb-MCV"
	DomainEndothelial  DomainName = "Endothelial"
	DomainMetabolic    DomainName = "Metabolic / IR / Liver"
)

// AllDomains lists the four domains in report order.
func AllDomains() []DomainName {
	return []DomainName{DomainInflammation, DomainOxidative, DomainEndothelial, DomainMetabolic}
}

// IsValid reports whether the domain name is one of the four fixed domains.
func (d DomainName) IsValid() bool {
	switch d {
	case DomainInflammation, DomainOxidative, DomainEndothelial, DomainMetabolic:
		return true
	default:
		return false
	}
}

// String returns the display name of the domain.
func (d DomainName) String() string {
	return string(d)
}

// DomainLabelNA marks a domain with zero computable member indices.
// Absence must stay visibly distinct from a zero-risk "Normal" label.
const DomainLabelNA = "NA"

// SeverityFromOrdinal converts a raw 0-3 ordinal into a Severity.
func SeverityFromOrdinal(ord int) (Severity, error) {
	if ord < int(SeverityNormal) || ord > int(SeveritySevere) {
		return SeverityNA, fmt.Errorf("severity ordinal out of range: %d", ord)
	}
	return Severity(ord), nil
}
