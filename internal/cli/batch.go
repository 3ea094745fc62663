package cli

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/lucrnz/msconv/internal/batch"
	"github.com/lucrnz/msconv/internal/input"
	"github.com/lucrnz/msconv/internal/logging"
	"github.com/lucrnz/msconv/internal/progress"
	"github.com/lucrnz/msconv/internal/util"
)

// batchFlags are the input/output options shared by parse and format.
type batchFlags struct {
	input            string
	output           string
	keepGoing        bool
	quiet            bool
	maxBytesStr      string
	progressLines    int64
	progressInterval time.Duration
}

func (f *batchFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.input, "input", "i", "", "Read values from a file, one per line (\"-\" for stdin; gzip, bzip2, xz and zstd are detected)")
	cmd.Flags().StringVarP(&f.output, "output", "O", "", "Write results to this file instead of stdout (written atomically)")
	cmd.Flags().BoolVarP(&f.keepGoing, "keep-going", "k", false, "Log and skip invalid values instead of stopping at the first one")
	cmd.Flags().BoolVarP(&f.quiet, "quiet", "q", false, "Do not log progress")
	cmd.Flags().StringVarP(&f.maxBytesStr, "max-bytes", "M", "64MiB", "Maximum decompressed input size (e.g., \"64MiB\", \"1GB\", 0 = unlimited)")
	cmd.Flags().Int64Var(&f.progressLines, "progress-lines", 100_000, "Log progress every N input lines")
	cmd.Flags().Var(util.NewDurationValue(2*time.Second, &f.progressInterval), "progress-interval", "Log progress at this interval (e.g., \"2s\", \"1 min\"; 0 = off)")
}

// runBatch converts args, or the lines of --input when no args are given,
// with fn and writes one result per line.
func runBatch(cmd *cobra.Command, args []string, f *batchFlags, fn batch.Func) error {
	ctx := cmd.Context()
	logger := logging.FromContext(ctx)

	if len(args) > 0 && f.input != "" {
		return fmt.Errorf("cannot combine values on the command line with --input")
	}
	src := f.input
	if len(args) == 0 && src == "" {
		src = "-"
	}

	maxBytes, err := util.ParseByteSize(f.maxBytesStr)
	if err != nil {
		return fmt.Errorf("invalid --max-bytes value: %w", err)
	}

	var w io.Writer = cmd.OutOrStdout()
	var out *util.AtomicFile
	if f.output != "" && f.output != "-" {
		out, err = util.CreateAtomic(f.output)
		if err != nil {
			return err
		}
		release := tracker.Register(out.TempPath())
		defer release()
		defer out.Abort()
		w = out
	}

	opts := batch.Options{KeepGoing: f.keepGoing, Logger: logger}

	var stats batch.Stats
	if len(args) > 0 {
		stats, err = batch.RunValues(ctx, args, w, fn, opts)
	} else {
		stats, err = runInput(cmd, src, f, w, fn, opts, maxBytes)
	}
	if err != nil {
		return err
	}

	if out != nil {
		if err := out.Commit(); err != nil {
			return err
		}
		logger.Debug("output_written", "file", out.Target(), "lines", stats.Converted)
	}

	if stats.Rejected > 0 {
		return fmt.Errorf("%w: %d of %d", ErrRejected, stats.Rejected, stats.Lines)
	}
	return nil
}

func runInput(cmd *cobra.Command, src string, f *batchFlags, w io.Writer, fn batch.Func, opts batch.Options, maxBytes int64) (batch.Stats, error) {
	ctx := cmd.Context()
	in, err := openInput(ctx, cmd, src, maxBytes)
	if err != nil {
		return batch.Stats{}, err
	}
	// Once aborted, a reader goroutine may still sit in Read, so the
	// decompressor is left alone.
	stopAbort := context.AfterFunc(ctx, in.Abort)
	defer func() {
		if stopAbort() {
			in.Close()
		}
	}()

	opts.Logger.Debug("input_opened", "file", src, "compression", in.Type.String())

	counter := progress.New(f.progressLines, f.progressInterval, opts.Logger, f.quiet)
	opts.Progress = counter
	opts.BytesRead = in.BytesRead

	counter.Start()
	stats, err := batch.Run(ctx, in, w, fn, opts)
	counter.Stop()
	return stats, err
}

// openInput opens src in the background, since sniffing the header of an
// idle stdin blocks until the first byte arrives.
func openInput(ctx context.Context, cmd *cobra.Command, src string, maxBytes int64) (*input.Reader, error) {
	type opened struct {
		in  *input.Reader
		err error
	}
	ch := make(chan opened, 1)
	go func() {
		var o opened
		if src == "-" {
			o.in, o.err = input.NewReader(cmd.InOrStdin(), maxBytes)
		} else {
			o.in, o.err = input.Open(src, maxBytes)
		}
		ch <- o
	}()

	select {
	case o := <-ch:
		return o.in, o.err
	case <-ctx.Done():
		go func() {
			if o := <-ch; o.in != nil {
				o.in.Close()
			}
		}()
		return nil, ctx.Err()
	}
}
