package wrappers

import (
	"context"
	"fmt"
	"strings"

	"github.com/user/stigscore/pkg/xccdf"
)

// ScoreWrapper implements the Tool interface for scoring the loaded scan
type ScoreWrapper struct {
	Scan       *xccdf.ParsedResult
	Thresholds xccdf.Thresholds
}

func (s *ScoreWrapper) Name() string {
	return "GetComplianceScore"
}

func (s *ScoreWrapper) Description() string {
	return "Calculates the compliance score of the loaded XCCDF scan: overall percentage, per-category (CAT1/CAT2/CAT3) scores, counts by status and the compliance status (critical, warning, info, compliant or error)."
}

func (s *ScoreWrapper) Schema() map[string]interface{} {
	return map[string]interface{}{
		"type":       "object",
		"properties": map[string]interface{}{},
	}
}

func (s *ScoreWrapper) Execute(ctx context.Context, args map[string]interface{}, progress func(string)) (string, error) {
	if s.Scan == nil {
		return "Error: no scan loaded.", nil
	}

	res := xccdf.CalculateScore(*s.Scan, &s.Thresholds)
	return FormatScore(res, s.Thresholds), nil
}

// FormatScore renders a score result as a short text report
func FormatScore(res xccdf.ScoreResult, t xccdf.Thresholds) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Compliance Status: %s\n", strings.ToUpper(string(res.Status))))
	sb.WriteString(fmt.Sprintf("Overall Score: %.2f%% (warning < %d, info < %d)\n", res.Score, t.WarningValue(), t.InfoValue()))
	sb.WriteString(fmt.Sprintf("Controls: %d total, %d passed, %d failed, %d not applicable, %d not checked\n",
		res.Total, res.Passed, res.Failed, res.NotApplicable, res.NotChecked))

	for _, cat := range xccdf.Categories {
		cs, ok := res.CategoryScores[cat.Key()]
		if !ok {
			continue
		}
		sb.WriteString(fmt.Sprintf("  %s: %.2f%% (%d passed, %d failed, %d total)\n", cat, cs.Score, cs.Passed, cs.Failed, cs.Total))
	}
	return sb.String()
}
