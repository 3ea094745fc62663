package cli

import (
	"fmt"
	"math"

	"github.com/hako/durafmt"
	"github.com/spf13/cobra"

	"github.com/lucrnz/msconv"
	"github.com/lucrnz/msconv/internal/batch"
)

var (
	formatFlags batchFlags
	formatUnit  string
	formatLong  bool
	formatFull  bool
)

var formatCmd = &cobra.Command{
	Use:   "format [VALUE...]",
	Short: "Render millisecond counts as \"14d\", \"7 days\" or in a chosen unit",
	Long: `Render durations in a human-readable form.

Each VALUE is read like "msconv parse" reads it, so a bare number is a
millisecond count and "36h" is reformatted as "2d".`,
	Example: `  msconv format 1209600000          # 14d
  msconv format --long 604800000    # 7 days
  msconv format --unit " hrs" 36h   # 36 hrs
  msconv format --full 90061000     # 1 day 1 hour 1 minute 1 second`,
	PreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Flags().Changed("unit") {
			if _, err := msconv.LookupUnit(formatUnit); err != nil {
				return fmt.Errorf("invalid --unit value: %w", err)
			}
		}
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		fn := formatFunc(formatStyle(cmd), formatUnit)
		return runBatch(cmd, args, &formatFlags, fn)
	},
}

func init() {
	formatFlags.register(formatCmd)
	formatCmd.Flags().StringVarP(&formatUnit, "unit", "u", "", "Render in this unit; the suffix is printed as given (e.g., \"d\", \" days\")")
	formatCmd.Flags().BoolVarP(&formatLong, "long", "l", false, "Spell out the unit (\"1 day\", \"7 days\")")
	formatCmd.Flags().BoolVar(&formatFull, "full", false, "Break the duration down into all units (\"1 day 1 hour\"); values beyond about 292 years are rejected")
	formatCmd.MarkFlagsMutuallyExclusive("unit", "long", "full")
}

type style int

const (
	styleAuto style = iota
	styleUnit
	styleLong
	styleFull
)

func formatStyle(cmd *cobra.Command) style {
	switch {
	case cmd.Flags().Changed("unit"):
		return styleUnit
	case formatLong:
		return styleLong
	case formatFull:
		return styleFull
	default:
		return styleAuto
	}
}

func formatFunc(s style, unit string) batch.Func {
	return func(value string) (string, error) {
		ms, err := msconv.ParseDuration(value)
		if err != nil {
			return "", err
		}
		switch s {
		case styleUnit:
			return msconv.FormatDuration(ms, unit)
		case styleLong:
			return msconv.FormatDurationAutoLong(ms)
		case styleFull:
			return formatFullDuration(ms)
		default:
			return msconv.FormatDurationAuto(ms)
		}
	}
}

// formatFullDuration renders every non-zero unit, e.g. "1 day 1 hour". The
// magnitude must fit a time.Duration, about 292 years.
func formatFullDuration(ms int64) (string, error) {
	if ms == math.MinInt64 {
		return "", fmt.Errorf("%w: %d ms does not fit a time.Duration", msconv.ErrOutOfRange, ms)
	}
	sign := ""
	if ms < 0 {
		sign = "-"
		ms = -ms
	}
	d, err := msconv.ToDuration(ms)
	if err != nil {
		return "", err
	}
	if d == 0 {
		return "0 milliseconds", nil
	}
	return sign + durafmt.Parse(d).String(), nil
}
