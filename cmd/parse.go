package cmd

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/user/stigscore/pkg/xccdf"
)

var parseCmd = &cobra.Command{
	Use:   "parse <file|->",
	Short: "Parse an XCCDF result file into control records",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		res, err := loadScan(cmd, args[0])
		if err != nil {
			return err
		}

		if err := render(cmd.OutOrStdout(), res, func(w io.Writer) error {
			return writeControls(w, res.Controls)
		}); err != nil {
			return err
		}

		if !res.OK() {
			return parseFailure(args[0], res)
		}
		return nil
	},
}

func writeControls(w io.Writer, controls []xccdf.ControlRecord) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "CATEGORY\tSEVERITY\tSTATUS\tCONTROL")
	for _, c := range controls {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", c.Category, c.Severity, c.Status, c.ControlID)
	}
	return tw.Flush()
}

func init() {
	rootCmd.AddCommand(parseCmd)
}
