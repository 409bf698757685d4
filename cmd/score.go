package cmd

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/user/stigscore/pkg/config"
	"github.com/user/stigscore/pkg/wrappers"
	"github.com/user/stigscore/pkg/xccdf"
)

// Report wraps a score with the metadata a pipeline needs to file it.
type Report struct {
	ReportID    string            `json:"report_id" yaml:"report_id"`
	Source      string            `json:"source" yaml:"source"`
	GeneratedAt string            `json:"generated_at" yaml:"generated_at"`
	ParseError  string            `json:"parse_error,omitempty" yaml:"parse_error,omitempty"`
	Thresholds  xccdf.Thresholds  `json:"thresholds" yaml:"thresholds"`
	Score       xccdf.ScoreResult `json:"score" yaml:"score"`
}

var complianceStatuses = []xccdf.ComplianceStatus{
	xccdf.ComplianceError,
	xccdf.ComplianceCritical,
	xccdf.ComplianceWarning,
	xccdf.ComplianceInfo,
	xccdf.ComplianceCompliant,
}

var scoreCmd = &cobra.Command{
	Use:   "score <file|->",
	Short: "Calculate overall and per-category compliance scores",
	Long: `Calculate the compliance score of an XCCDF result.

Thresholds come from flags, then the config file, then the defaults
(critical 100, warning 95, info 80), resolved per key. With --fail-on the
command exits with status 2 when the compliance status is one of the listed
values, e.g. --fail-on critical,error.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig()
		if err != nil {
			return err
		}

		thresholds := cfg.ResolveThresholds(thresholdFlags(cmd))
		failOn := cfg.FailOn
		if cmd.Flags().Changed("fail-on") {
			raw, _ := cmd.Flags().GetString("fail-on")
			failOn = splitList(raw)
		}
		gate, err := parseFailOn(failOn)
		if err != nil {
			return err
		}

		res, err := loadScan(cmd, args[0])
		if err != nil {
			return err
		}

		report := Report{
			ReportID:    uuid.New().String(),
			Source:      args[0],
			GeneratedAt: time.Now().UTC().Format(time.RFC3339),
			ParseError:  res.Error,
			Thresholds:  thresholds,
			Score:       xccdf.CalculateScore(res, &thresholds),
		}

		if err := render(cmd.OutOrStdout(), report, func(w io.Writer) error {
			_, err := io.WriteString(w, wrappers.FormatScore(report.Score, thresholds))
			return err
		}); err != nil {
			return err
		}

		if !res.OK() {
			return parseFailure(args[0], res)
		}
		if gate[report.Score.Status] {
			return &ExitError{Code: 2, Err: fmt.Errorf("compliance status %q is listed in --fail-on", report.Score.Status)}
		}
		return nil
	},
}

// thresholdFlags returns only the threshold flags the user actually set.
func thresholdFlags(cmd *cobra.Command) xccdf.Thresholds {
	var t xccdf.Thresholds
	for name, dst := range map[string]**int{
		"critical": &t.Critical,
		"warning":  &t.Warning,
		"info":     &t.Info,
	} {
		if cmd.Flags().Changed(name) {
			v, _ := cmd.Flags().GetInt(name)
			*dst = &v
		}
	}
	return t
}

func parseFailOn(values []string) (map[xccdf.ComplianceStatus]bool, error) {
	gate := make(map[xccdf.ComplianceStatus]bool, len(values))
	for _, v := range values {
		s := xccdf.ComplianceStatus(strings.ToLower(v))
		known := false
		for _, k := range complianceStatuses {
			if s == k {
				known = true
				break
			}
		}
		if !known {
			return nil, fmt.Errorf("unknown compliance status %q in fail-on (want one of error, critical, warning, info, compliant)", v)
		}
		gate[s] = true
	}
	return gate, nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func addThresholdOnlyFlags(c *cobra.Command) {
	c.Flags().Int("critical", xccdf.DefaultCritical, "Critical threshold percentage")
	c.Flags().Int("warning", xccdf.DefaultWarning, "Warning threshold percentage")
	c.Flags().Int("info", xccdf.DefaultInfo, "Info threshold percentage")
}

func addThresholdFlags(c *cobra.Command) {
	addThresholdOnlyFlags(c)
	c.Flags().String("fail-on", "", "Comma-separated compliance statuses that make the command exit 2")
}

func init() {
	addThresholdFlags(scoreCmd)
	rootCmd.AddCommand(scoreCmd)
}
