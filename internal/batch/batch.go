package batch

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/lucrnz/msconv/internal/progress"
)

// Func converts one input value into one output line.
type Func func(value string) (string, error)

// Options configures a batch run.
type Options struct {
	// KeepGoing logs and counts rejected values instead of stopping at the
	// first one.
	KeepGoing bool
	Logger    *slog.Logger
	Progress  *progress.Counter
	// BytesRead reports how much input has been consumed, for progress logs.
	BytesRead func() int64
}

// Stats summarizes a batch run.
type Stats struct {
	Lines     int64
	Converted int64
	Rejected  int64
}

type runner struct {
	ctx   context.Context
	out   *bufio.Writer
	fn    Func
	opts  Options
	stats Stats
}

// Run applies fn to every line of r and writes one result line per value to
// w. Blank lines and lines starting with '#' are skipped; surrounding
// whitespace is trimmed. Lines are read in a separate goroutine so a
// cancelled context stops the run even while r blocks.
//
// A line longer than the read buffer is cut to its first bufferSize bytes
// and handed to fn like any other value.
func Run(ctx context.Context, r io.Reader, w io.Writer, fn Func, opts Options) (Stats, error) {
	b := newRunner(ctx, w, fn, opts)

	lines := make(chan string)
	readErr := make(chan error, 1)
	quit := make(chan struct{})
	defer close(quit)
	go readLines(bufio.NewReaderSize(r, bufferSize), lines, readErr, quit)

	var lineNo int64
	for {
		select {
		case <-ctx.Done():
			b.out.Flush()
			return b.stats, ctx.Err()
		case text, ok := <-lines:
			if !ok {
				if err := ctx.Err(); err != nil {
					b.out.Flush()
					return b.stats, err
				}
				if err := <-readErr; err != nil {
					b.out.Flush()
					return b.stats, fmt.Errorf("failed to read input: %w", err)
				}
				return b.finish()
			}
			lineNo++
			line := strings.TrimSpace(text)
			if line == "" || strings.HasPrefix(line, "#") {
				continue
			}
			if err := b.handle(lineNo, line); err != nil {
				return b.stats, err
			}
		}
	}
}

// bufferSize bounds the part of a line kept in memory.
const bufferSize = 64 * 1024

// readLines sends every line of br on lines until EOF, a read error or quit.
// The terminal error (nil at EOF) is sent on errc before lines is closed.
func readLines(br *bufio.Reader, lines chan<- string, errc chan<- error, quit <-chan struct{}) {
	defer close(lines)
	for {
		line, err := readLine(br)
		if err != nil {
			if err == io.EOF {
				err = nil
			}
			errc <- err
			return
		}
		select {
		case lines <- line:
		case <-quit:
			return
		}
	}
}

// readLine returns the next line without its line ending. Only the first
// buffer of an overlong line is kept; the rest is discarded.
func readLine(br *bufio.Reader) (string, error) {
	frag, more, err := br.ReadLine()
	if err != nil {
		return "", err
	}
	line := string(frag)
	for more {
		_, more, err = br.ReadLine()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", err
		}
	}
	return line, nil
}

// RunValues is Run over values given directly, such as command-line
// arguments. Values are used as given: nothing is trimmed or skipped.
func RunValues(ctx context.Context, values []string, w io.Writer, fn Func, opts Options) (Stats, error) {
	b := newRunner(ctx, w, fn, opts)
	for i, v := range values {
		if err := b.handle(int64(i+1), v); err != nil {
			return b.stats, err
		}
	}
	return b.finish()
}

func newRunner(ctx context.Context, w io.Writer, fn Func, opts Options) *runner {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	return &runner{ctx: ctx, out: bufio.NewWriter(w), fn: fn, opts: opts}
}

func (b *runner) handle(lineNo int64, value string) error {
	if err := b.ctx.Err(); err != nil {
		b.out.Flush()
		return err
	}
	b.stats.Lines++

	result, err := b.fn(value)
	if b.opts.Progress != nil {
		var read int64
		if b.opts.BytesRead != nil {
			read = b.opts.BytesRead()
		}
		b.opts.Progress.Update(err != nil, read)
	}
	if err != nil {
		if !b.opts.KeepGoing {
			b.out.Flush()
			return fmt.Errorf("line %d: %w", lineNo, err)
		}
		b.stats.Rejected++
		b.opts.Logger.Warn("line_rejected", "line", lineNo, "value", value, "error", err)
		return nil
	}

	b.stats.Converted++
	if _, err := b.out.WriteString(result + "\n"); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (b *runner) finish() (Stats, error) {
	if err := b.out.Flush(); err != nil {
		return b.stats, fmt.Errorf("failed to write output: %w", err)
	}
	return b.stats, nil
}
