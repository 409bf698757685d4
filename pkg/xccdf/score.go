package xccdf

import "strconv"

// Default threshold percentages.
const (
	DefaultCritical = 100
	DefaultWarning  = 95
	DefaultInfo     = 80
)

// ComplianceStatus is the qualitative outcome of scoring.
type ComplianceStatus string

const (
	ComplianceError     ComplianceStatus = "error"
	ComplianceCritical  ComplianceStatus = "critical"
	ComplianceWarning   ComplianceStatus = "warning"
	ComplianceInfo      ComplianceStatus = "info"
	ComplianceCompliant ComplianceStatus = "compliant"
)

// Thresholds holds percentage cutoffs. A nil field falls back to its default,
// so callers may override a single key. Ordering between keys is not validated.
type Thresholds struct {
	Critical *int `json:"critical,omitempty" yaml:"critical,omitempty"`
	Warning  *int `json:"warning,omitempty" yaml:"warning,omitempty"`
	Info     *int `json:"info,omitempty" yaml:"info,omitempty"`
}

// DefaultThresholds returns {critical: 100, warning: 95, info: 80}.
func DefaultThresholds() Thresholds {
	critical, warning, info := DefaultCritical, DefaultWarning, DefaultInfo
	return Thresholds{Critical: &critical, Warning: &warning, Info: &info}
}

// Merge returns t with nil fields filled from fallback.
func (t Thresholds) Merge(fallback Thresholds) Thresholds {
	if t.Critical == nil {
		t.Critical = fallback.Critical
	}
	if t.Warning == nil {
		t.Warning = fallback.Warning
	}
	if t.Info == nil {
		t.Info = fallback.Info
	}
	return t
}

// CriticalValue returns the critical cutoff or its default.
func (t *Thresholds) CriticalValue() int {
	if t == nil || t.Critical == nil {
		return DefaultCritical
	}
	return *t.Critical
}

// WarningValue returns the warning cutoff or its default.
func (t *Thresholds) WarningValue() int {
	if t == nil || t.Warning == nil {
		return DefaultWarning
	}
	return *t.Warning
}

// InfoValue returns the info cutoff or its default.
func (t *Thresholds) InfoValue() int {
	if t == nil || t.Info == nil {
		return DefaultInfo
	}
	return *t.Info
}

// CategoryScore is the pass/fail breakdown of one STIG category.
type CategoryScore struct {
	Score  float64 `json:"score" yaml:"score"`
	Passed int     `json:"passed" yaml:"passed"`
	Failed int     `json:"failed" yaml:"failed"`
	Total  int     `json:"total" yaml:"total"`
}

// ScoreResult is the aggregate compliance score of a parsed scan.
type ScoreResult struct {
	Total          int                      `json:"total" yaml:"total"`
	Passed         int                      `json:"passed" yaml:"passed"`
	Failed         int                      `json:"failed" yaml:"failed"`
	NotApplicable  int                      `json:"not_applicable" yaml:"not_applicable"`
	NotChecked     int                      `json:"not_checked" yaml:"not_checked"`
	Score          float64                  `json:"score" yaml:"score"`
	Status         ComplianceStatus         `json:"status" yaml:"status"`
	CategoryScores map[string]CategoryScore `json:"category_scores" yaml:"category_scores"`
}

// CalculateScore scores the controls of a parsed scan.
//
// The overall score is passed/(passed+failed)*100, rounded to two decimals. A
// category with no passed or failed controls scores 100. Any CAT1 score below 100
// makes the status critical; otherwise the overall score is compared against the
// warning and then the info threshold. A scan with no controls yields status error.
// A nil thresholds uses the defaults.
func CalculateScore(parsed ParsedResult, thresholds *Thresholds) ScoreResult {
	controls := parsed.Controls
	if len(controls) == 0 {
		return ScoreResult{
			Score:          0.0,
			Status:         ComplianceError,
			CategoryScores: map[string]CategoryScore{},
		}
	}

	res := ScoreResult{
		Total:          len(controls),
		CategoryScores: make(map[string]CategoryScore, len(Categories)),
	}
	for _, c := range controls {
		switch c.Status {
		case StatusPass:
			res.Passed++
		case StatusFail:
			res.Failed++
		case StatusNotApplicable:
			res.NotApplicable++
		case StatusNotChecked, StatusNotSelected:
			res.NotChecked++
		}
	}

	score := 0.0
	if applicable := res.Passed + res.Failed; applicable > 0 {
		score = float64(res.Passed) / float64(applicable) * 100
	}

	for _, cat := range Categories {
		var cs CategoryScore
		for _, c := range controls {
			if c.Category != cat {
				continue
			}
			cs.Total++
			switch c.Status {
			case StatusPass:
				cs.Passed++
			case StatusFail:
				cs.Failed++
			}
		}
		cs.Score = 100.0
		if applicable := cs.Passed + cs.Failed; applicable > 0 {
			cs.Score = float64(cs.Passed) / float64(applicable) * 100
		}
		res.CategoryScores[cat.Key()] = cs
	}

	// First match wins. With default cutoffs, info is only reached below both warning and info.
	switch {
	case res.CategoryScores[CAT1.Key()].Score < 100:
		res.Status = ComplianceCritical
	case score < float64(thresholds.WarningValue()):
		res.Status = ComplianceWarning
	case score < float64(thresholds.InfoValue()):
		res.Status = ComplianceInfo
	default:
		res.Status = ComplianceCompliant
	}

	res.Score = round2(score)
	return res
}

// round2 rounds to two decimals on the exact binary value, so ties go to even.
func round2(v float64) float64 {
	r, _ := strconv.ParseFloat(strconv.FormatFloat(v, 'f', 2, 64), 64)
	return r
}
