package xccdf

// Namespace URIs of the two supported XCCDF schema versions.
const (
	NamespaceV12 = "http://checklists.nist.gov/xccdf/1.2"
	NamespaceV11 = "http://checklists.nist.gov/xccdf/1.1"
)

// Status is the text of a rule-result's result element.
// Values outside the constants below are carried through verbatim.
type Status string

const (
	StatusPass          Status = "pass"
	StatusFail          Status = "fail"
	StatusNotApplicable Status = "notapplicable"
	StatusNotChecked    Status = "notchecked"
	StatusNotSelected   Status = "notselected"
	StatusUnknown       Status = "unknown"
)

// Severity is the normalized severity of a control.
type Severity string

const (
	SeverityHigh   Severity = "high"
	SeverityMedium Severity = "medium"
	SeverityLow    Severity = "low"
)

// Category is a STIG finding category.
type Category string

const (
	CAT1 Category = "CAT1"
	CAT2 Category = "CAT2"
	CAT3 Category = "CAT3"
)

// Key returns the lower-cased key used in score and grouping maps ("cat1").
func (c Category) Key() string {
	switch c {
	case CAT1:
		return "cat1"
	case CAT3:
		return "cat3"
	default:
		return "cat2"
	}
}

// Categories lists the STIG categories in scoring order.
var Categories = []Category{CAT1, CAT2, CAT3}

// ControlRecord is one evaluated rule from a scan result.
type ControlRecord struct {
	ControlID string   `json:"control_id" yaml:"control_id"`
	Status    Status   `json:"status" yaml:"status"`
	Severity  Severity `json:"severity" yaml:"severity"`
	Category  Category `json:"category" yaml:"category"`
}

// ParsedResult is the output of Parse. Error is set, and Controls empty,
// only when the document was not well-formed XML.
type ParsedResult struct {
	Controls []ControlRecord `json:"controls" yaml:"controls"`
	Total    int             `json:"total" yaml:"total"`
	Parsed   bool            `json:"parsed" yaml:"parsed"`
	Error    string          `json:"error,omitempty" yaml:"error,omitempty"`
}

// OK reports whether the document parsed successfully.
func (p ParsedResult) OK() bool {
	return p.Parsed && p.Error == ""
}
