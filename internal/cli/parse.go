package cli

import (
	"strconv"

	"github.com/spf13/cobra"

	"github.com/lucrnz/msconv"
	"github.com/lucrnz/msconv/internal/batch"
)

var (
	parseFlags batchFlags
	parseStd   bool
)

var parseCmd = &cobra.Command{
	Use:   "parse [VALUE...]",
	Short: "Convert durations such as \"1d\" or \"2.5 hrs\" into milliseconds",
	Example: `  msconv parse 1d "2.5 hrs"
  msconv parse -- -100
  msconv parse --std 90s
  msconv parse -k -i durations.txt.zst -O ms.txt`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runBatch(cmd, args, &parseFlags, parseFunc(parseStd))
	},
}

func init() {
	parseFlags.register(parseCmd)
	parseCmd.Flags().BoolVarP(&parseStd, "std", "s", false, "Print Go time.Duration strings (negative values are rejected)")
}

func parseFunc(std bool) batch.Func {
	if std {
		return func(value string) (string, error) {
			d, err := msconv.ParseStdDuration(value)
			if err != nil {
				return "", err
			}
			return d.String(), nil
		}
	}
	return func(value string) (string, error) {
		ms, err := msconv.ParseDuration(value)
		if err != nil {
			return "", err
		}
		return strconv.FormatInt(ms, 10), nil
	}
}
