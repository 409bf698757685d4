package xccdf

import "strings"

// severityAliases maps recognized severity attribute values to a normalized severity.
var severityAliases = map[string]Severity{
	"high":     SeverityHigh,
	"medium":   SeverityMedium,
	"low":      SeverityLow,
	"critical": SeverityHigh,
	"i":        SeverityHigh,
	"ii":       SeverityMedium,
	"iii":      SeverityLow,
}

// ExtractSeverity infers the severity of a rule-result.
//
// An explicit severity attribute wins when it is one of the recognized values.
// Otherwise the STIG rule id naming convention is consulted (_CAT1_ or -CC- for
// high, _CAT2_ for medium, _CAT3_ for low), and medium is the fallback.
func ExtractSeverity(idref, severityAttr string) Severity {
	if s, ok := severityAliases[strings.ToLower(severityAttr)]; ok {
		return s
	}

	switch {
	case strings.Contains(idref, "_CAT1_") || strings.Contains(idref, "-CC-"):
		return SeverityHigh
	case strings.Contains(idref, "_CAT2_"):
		return SeverityMedium
	case strings.Contains(idref, "_CAT3_"):
		return SeverityLow
	}

	return SeverityMedium
}

// SeverityToCategory converts a severity to its STIG category.
// Unrecognized severities map to CAT2.
func SeverityToCategory(s Severity) Category {
	switch s {
	case SeverityHigh:
		return CAT1
	case SeverityMedium:
		return CAT2
	case SeverityLow:
		return CAT3
	default:
		return CAT2
	}
}
