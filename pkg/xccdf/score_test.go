package xccdf

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func control(id string, status Status, severity Severity) ControlRecord {
	return ControlRecord{
		ControlID: id,
		Status:    status,
		Severity:  severity,
		Category:  SeverityToCategory(severity),
	}
}

func parsedOf(controls ...ControlRecord) ParsedResult {
	return ParsedResult{Controls: controls, Total: len(controls), Parsed: true}
}

func intPtr(v int) *int {
	return &v
}

func TestCalculateScoreEmpty(t *testing.T) {
	for name, parsed := range map[string]ParsedResult{
		"no controls":  parsedOf(),
		"parse failed": Parse("<broken"),
	} {
		t.Run(name, func(t *testing.T) {
			res := CalculateScore(parsed, nil)

			assert.Equal(t, 0.0, res.Score)
			assert.Equal(t, ComplianceError, res.Status)
			assert.Equal(t, 0, res.Total)
			assert.Equal(t, 0, res.Passed)
			assert.Equal(t, 0, res.Failed)
			assert.NotNil(t, res.CategoryScores)
			assert.Empty(t, res.CategoryScores)
		})
	}
}

func TestCalculateScoreCAT1FailureIsCritical(t *testing.T) {
	var controls []ControlRecord
	controls = append(controls,
		control("cat1-a", StatusFail, SeverityHigh),
		control("cat1-b", StatusFail, SeverityHigh),
	)
	for i := 0; i < 8; i++ {
		controls = append(controls, control("cat2", StatusPass, SeverityMedium))
	}

	res := CalculateScore(parsedOf(controls...), nil)

	assert.Equal(t, 10, res.Total)
	assert.Equal(t, 8, res.Passed)
	assert.Equal(t, 2, res.Failed)
	assert.Equal(t, 80.0, res.Score)
	assert.Equal(t, 0.0, res.CategoryScores["cat1"].Score)
	assert.Equal(t, 100.0, res.CategoryScores["cat2"].Score)
	assert.Equal(t, ComplianceCritical, res.Status)
}

func TestCalculateScoreAllPassIsCompliant(t *testing.T) {
	var controls []ControlRecord
	for i := 0; i < 5; i++ {
		controls = append(controls, control("r", StatusPass, SeverityHigh))
	}

	res := CalculateScore(parsedOf(controls...), nil)

	assert.Equal(t, 100.0, res.Score)
	assert.Equal(t, ComplianceCompliant, res.Status)
	assert.Equal(t, CategoryScore{Score: 100.0, Passed: 5, Total: 5}, res.CategoryScores["cat1"])
	assert.Equal(t, CategoryScore{Score: 100.0}, res.CategoryScores["cat2"])
	assert.Equal(t, CategoryScore{Score: 100.0}, res.CategoryScores["cat3"])
}

func TestCalculateScoreCriticalIgnoresThresholds(t *testing.T) {
	var controls []ControlRecord
	controls = append(controls, control("cat1", StatusFail, SeverityHigh))
	for i := 0; i < 99; i++ {
		controls = append(controls, control("cat3", StatusPass, SeverityLow))
	}
	lenient := Thresholds{Critical: intPtr(0), Warning: intPtr(0), Info: intPtr(0)}

	res := CalculateScore(parsedOf(controls...), &lenient)

	assert.Equal(t, 99.0, res.Score)
	assert.Equal(t, ComplianceCritical, res.Status)
}

func TestCalculateScoreStatusBranches(t *testing.T) {
	// 8 pass, 2 fail in CAT2 -> 80%
	var controls []ControlRecord
	for i := 0; i < 8; i++ {
		controls = append(controls, control("p", StatusPass, SeverityMedium))
	}
	controls = append(controls,
		control("f1", StatusFail, SeverityMedium),
		control("f2", StatusFail, SeverityLow),
	)
	parsed := parsedOf(controls...)

	tests := []struct {
		name       string
		thresholds *Thresholds
		expected   ComplianceStatus
	}{
		{"defaults below warning", nil, ComplianceWarning},
		{"below info only", &Thresholds{Warning: intPtr(50), Info: intPtr(90)}, ComplianceInfo},
		{"warning key only, info default", &Thresholds{Warning: intPtr(70)}, ComplianceCompliant},
		{"info key only, warning default", &Thresholds{Info: intPtr(10)}, ComplianceWarning},
		{"at warning cutoff", &Thresholds{Warning: intPtr(80)}, ComplianceCompliant},
		{"info branch with warning default lowered", &Thresholds{Warning: intPtr(60), Info: intPtr(81)}, ComplianceInfo},
		{"critical key is not used for status", &Thresholds{Critical: intPtr(100), Warning: intPtr(0), Info: intPtr(0)}, ComplianceCompliant},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := CalculateScore(parsed, tt.thresholds)
			assert.Equal(t, 80.0, res.Score)
			assert.Equal(t, tt.expected, res.Status)
		})
	}
}

func TestCalculateScoreBuckets(t *testing.T) {
	parsed := parsedOf(
		control("a", StatusPass, SeverityMedium),
		control("b", StatusFail, SeverityMedium),
		control("c", StatusNotApplicable, SeverityMedium),
		control("d", StatusNotChecked, SeverityLow),
		control("e", StatusNotSelected, SeverityLow),
		control("f", "error", SeverityLow),
		control("g", StatusUnknown, SeverityLow),
		control("h", "PASS", SeverityLow),
	)

	res := CalculateScore(parsed, nil)

	assert.Equal(t, 8, res.Total)
	assert.Equal(t, 1, res.Passed)
	assert.Equal(t, 1, res.Failed)
	assert.Equal(t, 1, res.NotApplicable)
	assert.Equal(t, 2, res.NotChecked)
	assert.Equal(t, 50.0, res.Score)
	assert.Equal(t, CategoryScore{Score: 50.0, Passed: 1, Failed: 1, Total: 3}, res.CategoryScores["cat2"])
	assert.Equal(t, CategoryScore{Score: 100.0, Total: 5}, res.CategoryScores["cat3"])
}

func TestCalculateScoreNoApplicableControls(t *testing.T) {
	parsed := parsedOf(
		control("a", StatusNotApplicable, SeverityHigh),
		control("b", StatusNotChecked, SeverityMedium),
	)

	res := CalculateScore(parsed, nil)

	assert.Equal(t, 0.0, res.Score)
	for _, key := range []string{"cat1", "cat2", "cat3"} {
		assert.Equal(t, 100.0, res.CategoryScores[key].Score, key)
	}
	assert.Equal(t, ComplianceWarning, res.Status)
}

func TestCalculateScoreRounding(t *testing.T) {
	parsed := parsedOf(
		control("a", StatusPass, SeverityMedium),
		control("b", StatusPass, SeverityMedium),
		control("c", StatusFail, SeverityMedium),
	)

	res := CalculateScore(parsed, nil)

	assert.Equal(t, 66.67, res.Score)
	assert.InDelta(t, 200.0/3.0, res.CategoryScores["cat2"].Score, 1e-9)
	assert.NotEqual(t, 66.67, res.CategoryScores["cat2"].Score)
}

func TestCalculateScoreRoundingTies(t *testing.T) {
	tests := []struct {
		passed, total int
		want          float64
	}{
		{1, 32, 3.12},
		{5, 32, 15.62},
		{1, 160, 0.62},
		{1, 800, 0.12},
		{1, 8, 12.5},
		{2, 3, 66.67},
	}

	for _, tt := range tests {
		var controls []ControlRecord
		for i := 0; i < tt.total; i++ {
			status := StatusFail
			if i < tt.passed {
				status = StatusPass
			}
			controls = append(controls, control(fmt.Sprintf("r%d", i), status, SeverityMedium))
		}

		res := CalculateScore(parsedOf(controls...), nil)
		assert.Equal(t, tt.want, res.Score, "%d/%d", tt.passed, tt.total)
	}
}

func TestCalculateScoreFromParsedDocument(t *testing.T) {
	res := CalculateScore(Parse(sccResultV12), nil)

	require.Len(t, res.CategoryScores, 3)
	assert.Equal(t, 3, res.Total)
	assert.Equal(t, 50.0, res.Score)
	assert.Equal(t, 1, res.NotApplicable)
	assert.Equal(t, ComplianceCritical, res.Status)
}

func TestThresholdsMerge(t *testing.T) {
	merged := Thresholds{Warning: intPtr(90)}.Merge(DefaultThresholds())

	assert.Equal(t, 100, merged.CriticalValue())
	assert.Equal(t, 90, merged.WarningValue())
	assert.Equal(t, 80, merged.InfoValue())

	var none *Thresholds
	assert.Equal(t, DefaultWarning, none.WarningValue())
	assert.Equal(t, DefaultInfo, none.InfoValue())
	assert.Equal(t, DefaultCritical, none.CriticalValue())
}
