package cmd

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/user/stigscore/pkg/logger"
	"github.com/user/stigscore/pkg/xccdf"
)

// render writes v in the selected output format. text renders the human form.
func render(w io.Writer, v interface{}, text func(io.Writer) error) error {
	switch OutputFormat {
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	case "text":
		return text(w)
	default:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	}
}

// loadScan parses the XCCDF document at source, or stdin when source is "-".
// The returned error covers I/O only; XML errors are in the result.
func loadScan(cmd *cobra.Command, source string) (xccdf.ParsedResult, error) {
	var (
		res xccdf.ParsedResult
		err error
	)
	if source == "-" {
		res, err = xccdf.ParseReader(cmd.InOrStdin())
	} else {
		res, err = xccdf.ParseFile(source)
	}
	if err != nil {
		return res, err
	}

	log := logger.WithField("source", source)
	if !res.OK() {
		log.Warnf("scan result could not be parsed: %s", res.Error)
	} else {
		log.Debugf("parsed %d controls", res.Total)
	}
	return res, nil
}

// parseFailure reports a scan that failed to parse. The caller has already
// printed the structured result.
func parseFailure(source string, res xccdf.ParsedResult) error {
	return &ExitError{Code: 1, Err: fmt.Errorf("%s: %s", source, res.Error)}
}
