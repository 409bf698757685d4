package xccdf

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mixedScan() ParsedResult {
	statuses := []Status{
		StatusPass, StatusNotApplicable, StatusFail, StatusPass, StatusNotApplicable,
		StatusFail, StatusNotChecked, StatusPass, StatusNotApplicable, StatusFail,
	}
	severities := []Severity{SeverityHigh, SeverityMedium, SeverityLow}

	var controls []ControlRecord
	for i, s := range statuses {
		controls = append(controls, control(fmt.Sprintf("r%d", i), s, severities[i%3]))
	}
	return parsedOf(controls...)
}

func ids(controls []ControlRecord) []string {
	out := make([]string, 0, len(controls))
	for _, c := range controls {
		out = append(out, c.ControlID)
	}
	return out
}

func TestFilterFindingsDefaultsToFail(t *testing.T) {
	got := FilterFindings(mixedScan())

	assert.Equal(t, []string{"r2", "r5", "r9"}, ids(got))
}

func TestFilterFindingsByStatus(t *testing.T) {
	got := FilterFindings(mixedScan(), WithStatus(StatusNotApplicable))

	assert.Equal(t, []string{"r1", "r4", "r8"}, ids(got))
}

func TestFilterFindingsMaxResults(t *testing.T) {
	tests := []struct {
		max      int
		expected []string
	}{
		{0, []string{}},
		{1, []string{"r0"}},
		{2, []string{"r0", "r3"}},
		{50, []string{"r0", "r3", "r7"}},
		{-1, []string{"r0", "r3"}},
		{-5, []string{}},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("max=%d", tt.max), func(t *testing.T) {
			got := FilterFindings(mixedScan(), WithStatus(StatusPass), WithMaxResults(tt.max))
			assert.Equal(t, tt.expected, ids(got))
		})
	}
}

func TestFilterFindingsDefaultCap(t *testing.T) {
	var controls []ControlRecord
	for i := 0; i < 60; i++ {
		controls = append(controls, control(fmt.Sprintf("f%02d", i), StatusFail, SeverityMedium))
	}

	got := FilterFindings(parsedOf(controls...))

	require.Len(t, got, DefaultMaxFindings)
	assert.Equal(t, "f00", got[0].ControlID)
	assert.Equal(t, "f49", got[49].ControlID)
}

func TestFilterFindingsNoMatches(t *testing.T) {
	got := FilterFindings(mixedScan(), WithStatus("informational"))

	assert.NotNil(t, got)
	assert.Empty(t, got)
	assert.Empty(t, FilterFindings(Parse("not xml")))
}

func TestCategorizeFindingsPartitions(t *testing.T) {
	parsed := mixedScan()

	got := CategorizeFindings(parsed)

	assert.Equal(t, []string{"r0", "r3", "r6", "r9"}, ids(got.Cat1))
	assert.Equal(t, []string{"r1", "r4", "r7"}, ids(got.Cat2))
	assert.Equal(t, []string{"r2", "r5", "r8"}, ids(got.Cat3))
	assert.Equal(t, parsed.Total, len(got.Cat1)+len(got.Cat2)+len(got.Cat3))
	assert.Equal(t, got.Cat1, got.Get(CAT1))
	assert.Equal(t, got.Cat3, got.Get(CAT3))
}

func TestCategorizeFindingsEmpty(t *testing.T) {
	got := CategorizeFindings(Parse(""))

	assert.NotNil(t, got.Cat1)
	assert.NotNil(t, got.Cat2)
	assert.NotNil(t, got.Cat3)
	assert.Empty(t, got.Cat1)
}
