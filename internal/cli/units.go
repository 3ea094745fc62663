package cli

import (
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/lucrnz/msconv"
)

var unitsCmd = &cobra.Command{
	Use:   "units",
	Short: "List the accepted unit suffixes",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		table := tablewriter.NewWriter(cmd.OutOrStdout())
		table.SetHeader([]string{"Unit", "Milliseconds", "Suffixes"})
		table.SetAutoWrapText(false)
		for _, u := range msconv.Units() {
			suffixes := u.Suffixes()
			for i, s := range suffixes {
				if s == "" {
					suffixes[i] = `""`
				}
			}
			table.Append([]string{u.String(), strconv.FormatInt(u.Milliseconds(), 10), strings.Join(suffixes, ", ")})
		}
		table.Render()
		return nil
	},
}
