package xccdf

// Defaults for FilterFindings.
const (
	DefaultFilterStatus = StatusFail
	DefaultMaxFindings  = 50
)

type filterOptions struct {
	status Status
	max    int
}

// FilterOption configures FilterFindings.
type FilterOption func(*filterOptions)

// WithStatus selects controls with the given status.
func WithStatus(s Status) FilterOption {
	return func(o *filterOptions) {
		o.status = s
	}
}

// WithMaxResults caps the number of returned controls. A negative value drops
// that many matches from the end instead.
func WithMaxResults(n int) FilterOption {
	return func(o *filterOptions) {
		o.max = n
	}
}

// FilterFindings returns the first matching controls in document order.
// By default it returns up to 50 failed controls.
func FilterFindings(parsed ParsedResult, opts ...FilterOption) []ControlRecord {
	o := filterOptions{status: DefaultFilterStatus, max: DefaultMaxFindings}
	for _, opt := range opts {
		opt(&o)
	}

	matched := []ControlRecord{}
	for _, c := range parsed.Controls {
		if c.Status == o.status {
			matched = append(matched, c)
		}
	}

	limit := o.max
	if limit < 0 {
		limit += len(matched)
		if limit < 0 {
			limit = 0
		}
	}
	if limit < len(matched) {
		matched = matched[:limit]
	}
	return matched
}

// Categorized groups controls by STIG category.
type Categorized struct {
	Cat1 []ControlRecord `json:"cat1" yaml:"cat1"`
	Cat2 []ControlRecord `json:"cat2" yaml:"cat2"`
	Cat3 []ControlRecord `json:"cat3" yaml:"cat3"`
}

// Get returns the controls of category c.
func (g Categorized) Get(c Category) []ControlRecord {
	switch c {
	case CAT1:
		return g.Cat1
	case CAT3:
		return g.Cat3
	default:
		return g.Cat2
	}
}

// CategorizeFindings partitions every control into cat1, cat2 and cat3,
// keeping document order within each group.
func CategorizeFindings(parsed ParsedResult) Categorized {
	g := Categorized{
		Cat1: []ControlRecord{},
		Cat2: []ControlRecord{},
		Cat3: []ControlRecord{},
	}
	for _, c := range parsed.Controls {
		switch c.Category {
		case CAT1:
			g.Cat1 = append(g.Cat1, c)
		case CAT2:
			g.Cat2 = append(g.Cat2, c)
		case CAT3:
			g.Cat3 = append(g.Cat3, c)
		}
	}
	return g
}
