package xccdf

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractSeverity(t *testing.T) {
	tests := []struct {
		name     string
		idref    string
		attr     string
		expected Severity
	}{
		{"attr high", "r", "high", SeverityHigh},
		{"attr medium", "r", "medium", SeverityMedium},
		{"attr low", "r", "low", SeverityLow},
		{"attr critical", "r", "critical", SeverityHigh},
		{"attr roman I", "r", "I", SeverityHigh},
		{"attr roman ii", "r", "ii", SeverityMedium},
		{"attr roman III", "r", "III", SeverityLow},
		{"attr mixed case", "r", "HiGh", SeverityHigh},
		{"attr wins over idref", "SV-1_CAT3_rule", "critical", SeverityHigh},
		{"attr low wins over CAT1 idref", "SV-1_CAT1_rule", "low", SeverityLow},
		{"unrecognized attr falls back to idref", "SV-1_CAT3_rule", "info", SeverityLow},
		{"idref CAT1", "xccdf_rule_CAT1_x", "", SeverityHigh},
		{"idref CC", "WN22-CC-000010", "", SeverityHigh},
		{"idref CAT2", "xccdf_rule_CAT2_x", "", SeverityMedium},
		{"idref CAT3", "xccdf_rule_CAT3_x", "", SeverityLow},
		{"idref CAT1 before CAT3", "a_CAT3_b_CAT1_c", "", SeverityHigh},
		{"idref CAT2 before CAT3", "a_CAT3_b_CAT2_c", "", SeverityMedium},
		{"idref match is case sensitive", "a_cat1_b", "", SeverityMedium},
		{"idref needs both underscores", "CAT1_rule", "", SeverityMedium},
		{"default", "SV-254238r848541_rule", "", SeverityMedium},
		{"empty", "", "", SeverityMedium},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ExtractSeverity(tt.idref, tt.attr))
		})
	}
}

func TestSeverityToCategory(t *testing.T) {
	assert.Equal(t, CAT1, SeverityToCategory(SeverityHigh))
	assert.Equal(t, CAT2, SeverityToCategory(SeverityMedium))
	assert.Equal(t, CAT3, SeverityToCategory(SeverityLow))

	for _, other := range []Severity{"", "critical", "HIGH", "info", "iii"} {
		assert.Equal(t, CAT2, SeverityToCategory(other), "severity %q", other)
	}
}

func TestParsedSeverityPrecedence(t *testing.T) {
	doc := `<Benchmark xmlns="http://checklists.nist.gov/xccdf/1.2">
  <rule-result idref="SV-9_CAT3_rule" severity="critical"><result>fail</result></rule-result>
  <rule-result idref="SV-9_CAT3_rule"><result>fail</result></rule-result>
</Benchmark>`

	res := Parse(doc)

	assert.Equal(t, SeverityHigh, res.Controls[0].Severity)
	assert.Equal(t, CAT1, res.Controls[0].Category)
	assert.Equal(t, SeverityLow, res.Controls[1].Severity)
	assert.Equal(t, CAT3, res.Controls[1].Category)
}

func TestCategoryKey(t *testing.T) {
	assert.Equal(t, "cat1", CAT1.Key())
	assert.Equal(t, "cat2", CAT2.Key())
	assert.Equal(t, "cat3", CAT3.Key())
}
