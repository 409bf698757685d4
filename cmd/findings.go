package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/user/stigscore/pkg/xccdf"
)

var findingsCmd = &cobra.Command{
	Use:   "findings <file|->",
	Short: "List controls with a given status (default: failed)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		status, _ := cmd.Flags().GetString("status")
		limit, _ := cmd.Flags().GetInt("max")

		res, err := loadScan(cmd, args[0])
		if err != nil {
			return err
		}
		if !res.OK() {
			if err := render(cmd.OutOrStdout(), res, func(w io.Writer) error { return nil }); err != nil {
				return err
			}
			return parseFailure(args[0], res)
		}

		found := xccdf.FilterFindings(res, xccdf.WithStatus(xccdf.Status(status)), xccdf.WithMaxResults(limit))
		return render(cmd.OutOrStdout(), found, func(w io.Writer) error {
			return writeControls(w, found)
		})
	},
}

var categorizeCmd = &cobra.Command{
	Use:   "categorize <file|->",
	Short: "Group all controls by STIG category",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		res, err := loadScan(cmd, args[0])
		if err != nil {
			return err
		}
		if !res.OK() {
			if err := render(cmd.OutOrStdout(), res, func(w io.Writer) error { return nil }); err != nil {
				return err
			}
			return parseFailure(args[0], res)
		}

		groups := xccdf.CategorizeFindings(res)
		return render(cmd.OutOrStdout(), groups, func(w io.Writer) error {
			for _, cat := range xccdf.Categories {
				controls := groups.Get(cat)
				fmt.Fprintf(w, "%s (%d)\n", cat, len(controls))
				for _, c := range controls {
					fmt.Fprintf(w, "  %-14s %s\n", c.Status, c.ControlID)
				}
			}
			return nil
		})
	},
}

func init() {
	findingsCmd.Flags().StringP("status", "s", string(xccdf.DefaultFilterStatus), "Result status to match")
	findingsCmd.Flags().IntP("max", "m", xccdf.DefaultMaxFindings, "Maximum number of controls to list")

	rootCmd.AddCommand(findingsCmd)
	rootCmd.AddCommand(categorizeCmd)
}
