package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/lucrnz/msconv"
	"github.com/lucrnz/msconv/internal/cleanup"
	"github.com/lucrnz/msconv/internal/logging"
	"github.com/lucrnz/msconv/internal/version"
)

// ErrRejected is returned when --keep-going skipped at least one value.
var ErrRejected = errors.New("some values were rejected")

// Exit codes
const (
	ExitOK          = 0
	ExitFailure     = 1
	ExitInvalidData = 2
	ExitInterrupted = 130
)

var (
	logLevel  string
	logFormat string

	tracker *cleanup.Tracker
)

var rootCmd = &cobra.Command{
	Use:   "msconv",
	Short: "Convert human-readable durations to milliseconds and back",
	Long: `msconv

Converts durations such as "1d", "2.5 hrs" or "-100" into milliseconds, and
millisecond counts back into "14d" or "7 days".

Values are taken from the command line or, with --input, one per line from a
plain, gzip, bzip2, xz or zstd file.
`,
	Version:           version.Print(),
	PersistentPreRunE: setupLogging,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", logging.DefaultLevel(), "Log level: debug, info, warn or error (default from $"+logging.EnvLevel+")")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "text", "Log format: text or json")

	rootCmd.AddCommand(parseCmd, formatCmd, unitsCmd)

	// Silence usage output for runtime errors, but show it for flag errors
	// SilenceErrors is true so we can control error output format in main()
	rootCmd.SilenceUsage = true
	rootCmd.SilenceErrors = true

	// Show usage only when there's a flag parsing error
	rootCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		_ = cmd.Usage()
		return err
	})
}

func setupLogging(cmd *cobra.Command, _ []string) error {
	logger, err := logging.Options{Level: logLevel, Format: logFormat}.Logger(cmd.ErrOrStderr())
	if err != nil {
		return fmt.Errorf("invalid logging flags: %w", err)
	}
	if tracker != nil {
		tracker.SetLogger(logger)
	}
	cmd.SetContext(logging.WithContext(cmd.Context(), logger))
	return nil
}

// ExecuteContext runs the root command. Temporary output files are
// registered with t so the caller can remove them after an interrupt.
func ExecuteContext(ctx context.Context, t *cleanup.Tracker) error {
	tracker = t
	if tracker == nil {
		tracker = cleanup.NewTracker(nil)
	}
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		// Show usage for required flag errors (not caught by SetFlagErrorFunc)
		if strings.Contains(err.Error(), "required flag") {
			_ = rootCmd.Usage()
		}
		return err
	}
	return nil
}

// ExitCode maps an error returned by ExecuteContext to a process exit code.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitOK
	case errors.Is(err, context.Canceled):
		return ExitInterrupted
	case errors.Is(err, ErrRejected), msconv.IsInputError(err):
		return ExitInvalidData
	default:
		return ExitFailure
	}
}
